package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"go-inventory-admin/internal/database"
	"go-inventory-admin/internal/models"
	"go-inventory-admin/internal/pdfgen"
	"go-inventory-admin/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InvoiceHandler struct {
	db  *gorm.DB
	svc *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{db: db, svc: svc}
}

// Create builds the invoice and applies the stock side effects as one
// unit of work.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input services.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	invoice, err := h.svc.Create(input, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	var invoices []models.Invoice
	if err := h.db.Preload("Items").Order("created_at desc").Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	var invoice models.Invoice
	if err := h.db.Preload("Items").First(&invoice, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Invoice ID"})
		return
	}
	if err := h.svc.Delete(uint(id), actorFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}

// PDF renders the invoice as a downloadable document.
func (h *InvoiceHandler) PDF(c *gin.Context) {
	var invoice models.Invoice
	if err := h.db.Preload("Items").First(&invoice, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	names := make(map[uint]string)
	for _, item := range invoice.Items {
		var product models.Product
		if err := h.db.First(&product, item.ProductID).Error; err == nil {
			names[item.ProductID] = product.Name
		}
	}

	settings := database.GetSettings(h.db)
	doc, err := pdfgen.RenderInvoice(invoice, names, settings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render PDF"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, invoice.InvoiceNo))
	c.Data(http.StatusOK, "application/pdf", doc)
}
