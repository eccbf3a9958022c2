package handlers

import (
	"fmt"
	"net/http"

	"go-inventory-admin/internal/models"
	"go-inventory-admin/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	db *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{db: db}
}

func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	if err := h.db.Order("id").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil || category.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if err := h.db.Create(&category).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create category (duplicate name?)"})
		return
	}
	details := fmt.Sprintf("Created category: %s", category.Name)
	_ = services.LogActivity(h.db, actorFrom(c), "Create", "Category", details)
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var category models.Category
	if err := h.db.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	delete(updateData, "id")
	if err := h.db.Model(&category).Updates(columnKeys(updateData)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	if err := h.db.First(&category, category.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	details := fmt.Sprintf("Updated category: %s", category.Name)
	_ = services.LogActivity(h.db, actorFrom(c), "Update", "Category", details)
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	var category models.Category
	if err := h.db.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	if err := h.db.Delete(&category).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not delete category"})
		return
	}
	details := fmt.Sprintf("Deleted category: %s", category.Name)
	_ = services.LogActivity(h.db, actorFrom(c), "Delete", "Category", details)
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
