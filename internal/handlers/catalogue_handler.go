package handlers

import (
	"fmt"
	"net/http"

	"go-inventory-admin/internal/models"
	"go-inventory-admin/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CatalogueHandler struct {
	db *gorm.DB
}

func NewCatalogueHandler(db *gorm.DB) *CatalogueHandler {
	return &CatalogueHandler{db: db}
}

func (h *CatalogueHandler) List(c *gin.Context) {
	var catalogues []models.Catalogue
	if err := h.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Order("id").Find(&catalogues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch catalogues"})
		return
	}
	c.JSON(http.StatusOK, catalogues)
}

func (h *CatalogueHandler) Get(c *gin.Context) {
	var catalogue models.Catalogue
	if err := h.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).First(&catalogue, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catalogue not found"})
		return
	}
	c.JSON(http.StatusOK, catalogue)
}

type CreateCatalogueRequest struct {
	Name     string `json:"name" binding:"required"`
	Products []uint `json:"products" binding:"required"`
}

// Create stores a named, ordered product selection. The order of the
// request's products array is preserved.
func (h *CatalogueHandler) Create(c *gin.Context) {
	var req CreateCatalogueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and products are required"})
		return
	}

	actor := actorFrom(c)
	catalogue := models.Catalogue{Name: req.Name, CreatedBy: actor.Name}
	for i, productID := range req.Products {
		var count int64
		if err := h.db.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil || count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown product %d", productID)})
			return
		}
		catalogue.Items = append(catalogue.Items, models.CatalogueItem{ProductID: productID, Position: i})
	}

	if err := h.db.Create(&catalogue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create catalogue"})
		return
	}
	details := fmt.Sprintf("Created catalogue: %s", catalogue.Name)
	_ = services.LogActivity(h.db, actor, "Create", "Catalogue", details)
	c.JSON(http.StatusCreated, catalogue)
}

func (h *CatalogueHandler) Delete(c *gin.Context) {
	var catalogue models.Catalogue
	if err := h.db.First(&catalogue, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catalogue not found"})
		return
	}
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("catalogue_id = ?", catalogue.ID).Delete(&models.CatalogueItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&catalogue).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete catalogue"})
		return
	}
	details := fmt.Sprintf("Deleted catalogue: %s", catalogue.Name)
	_ = services.LogActivity(h.db, actorFrom(c), "Delete", "Catalogue", details)
	c.JSON(http.StatusOK, gin.H{"message": "Catalogue deleted successfully"})
}
