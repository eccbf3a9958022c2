package handlers

import (
	"net/http"
	"strings"

	"go-inventory-admin/internal/models"
	"go-inventory-admin/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StockHandler struct {
	db  *gorm.DB
	svc *services.StockService
}

func NewStockHandler(db *gorm.DB, svc *services.StockService) *StockHandler {
	return &StockHandler{db: db, svc: svc}
}

type AdjustStockRequest struct {
	ProductID uint   `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Action    string `json:"action" binding:"required"` // 'add' or 'reduce'
	Reason    string `json:"reason"`
}

// Adjust applies a manual stock correction through the ledger.
func (h *StockHandler) Adjust(c *gin.Context) {
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var action string
	switch strings.ToLower(req.Action) {
	case "add":
		action = models.StockActionAdded
	case "reduce":
		action = models.StockActionReduced
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action must be 'add' or 'reduce'"})
		return
	}

	movement, err := h.svc.Adjust(req.ProductID, req.Quantity, action, req.Reason, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, movement)
}

// Movements lists the stock ledger, newest first.
func (h *StockHandler) Movements(c *gin.Context) {
	var movements []models.StockMovement
	query := h.db.Order("id desc")
	if productID := c.Query("productId"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	if err := query.Find(&movements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock movements"})
		return
	}
	c.JSON(http.StatusOK, movements)
}
