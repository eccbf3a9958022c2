package handlers

import (
	"net/http"

	"go-inventory-admin/internal/database"
	"go-inventory-admin/internal/models"
	"go-inventory-admin/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, database.GetSettings(h.db))
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if settings.GSTRate < 0 || settings.GSTRate > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "GST rate must be between 0 and 100"})
		return
	}
	if settings.SessionTimeoutMinutes < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session timeout cannot be negative"})
		return
	}
	if err := database.SaveSettings(h.db, settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}
	_ = services.LogActivity(h.db, actorFrom(c), "Update", "Settings", "Updated system settings")
	c.JSON(http.StatusOK, database.GetSettings(h.db))
}

// Backup dumps every collection as one JSON document.
func (h *SettingsHandler) Backup(c *gin.Context) {
	var (
		products   []models.Product
		categories []models.Category
		invoices   []models.Invoice
		catalogues []models.Catalogue
		users      []models.User
		logs       []models.ActivityLog
		movements  []models.StockMovement
	)
	queries := []error{
		h.db.Find(&products).Error,
		h.db.Find(&categories).Error,
		h.db.Preload("Items").Find(&invoices).Error,
		h.db.Preload("Items").Find(&catalogues).Error,
		h.db.Find(&users).Error,
		h.db.Find(&logs).Error,
		h.db.Find(&movements).Error,
	}
	for _, err := range queries {
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build backup"})
			return
		}
	}

	c.Header("Content-Disposition", `attachment; filename="backup.json"`)
	c.JSON(http.StatusOK, gin.H{
		"products":       products,
		"categories":     categories,
		"invoices":       invoices,
		"catalogues":     catalogues,
		"users":          users,
		"logs":           logs,
		"stockMovements": movements,
		"settings":       database.GetSettings(h.db),
	})
}

// Reset wipes all collections back to the first-run seed dataset.
func (h *SettingsHandler) Reset(c *gin.Context) {
	if err := database.Reset(h.db); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data reset to seed state"})
}
