package handlers

import (
	"net/http"
	"time"

	"go-inventory-admin/internal/database"
	"go-inventory-admin/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

// Dashboard returns the landing-page KPI summary.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := database.GetDashboardSummary(h.db, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Stock returns the status distribution and per-category valuation.
func (h *ReportHandler) Stock(c *gin.Context) {
	report, err := database.GetStockReport(h.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build stock report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// Invoices returns revenue totals and the average invoice value.
func (h *ReportHandler) Invoices(c *gin.Context) {
	report, err := database.GetInvoiceReport(h.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build invoice report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// Logs lists the activity trail, newest first.
func (h *ReportHandler) Logs(c *gin.Context) {
	var logs []models.ActivityLog
	if err := h.db.Order("id desc").Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity log"})
		return
	}
	c.JSON(http.StatusOK, logs)
}
