package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go-inventory-admin/internal/models"
	"go-inventory-admin/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// productView decorates a product with its derived stock status.
type productView struct {
	models.Product
	Status string `json:"status"`
}

// filteredProducts applies the list/export query filters: category,
// status (in|low|out) and q (name or SKU substring).
func (h *ProductHandler) filteredProducts(c *gin.Context) ([]models.Product, error) {
	query := h.db.Model(&models.Product{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("name LIKE ? OR sku LIKE ?", like, like)
	}
	var products []models.Product
	if err := query.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}

	status := c.Query("status")
	if status == "" {
		return products, nil
	}
	want := map[string]string{
		"in":  models.StockStatusIn,
		"low": models.StockStatusLow,
		"out": models.StockStatusOut,
	}[strings.ToLower(status)]
	filtered := products[:0]
	for _, p := range products {
		if p.StockStatus() == want {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// List returns all products matching the optional filters.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.filteredProducts(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	views := make([]productView, len(products))
	for i, p := range products {
		views[i] = productView{Product: p, Status: p.StockStatus()}
	}
	c.JSON(http.StatusOK, views)
}

// Get returns one product by id.
func (h *ProductHandler) Get(c *gin.Context) {
	var product models.Product
	if err := h.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, productView{Product: product, Status: product.StockStatus()})
}

// Create adds a new product.
func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if product.Name == "" || product.SKU == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and SKU are required"})
		return
	}
	if product.Price.IsNegative() || product.CostPrice.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prices cannot be negative"})
		return
	}
	if product.Stock < 0 || product.ReorderLevel < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock and reorder level cannot be negative"})
		return
	}

	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create product (duplicate SKU?)"})
		return
	}
	details := fmt.Sprintf("Created product: %s", product.Name)
	_ = services.LogActivity(h.db, actorFrom(c), "Create", "Product", details)
	c.JSON(http.StatusCreated, product)
}

// Update applies a partial update; only the fields present in the JSON
// body are written.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}

	var product models.Product
	if err := h.db.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	delete(updateData, "id")

	if err := h.db.Model(&product).Updates(columnKeys(updateData)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	if err := h.db.First(&product, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	details := fmt.Sprintf("Updated product: %s", product.Name)
	_ = services.LogActivity(h.db, actorFrom(c), "Update", "Product", details)
	c.JSON(http.StatusOK, productView{Product: product, Status: product.StockStatus()})
}

// Delete removes a product.
func (h *ProductHandler) Delete(c *gin.Context) {
	var product models.Product
	if err := h.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err := h.db.Delete(&product).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not delete product"})
		return
	}
	details := fmt.Sprintf("Deleted product: %s", product.Name)
	_ = services.LogActivity(h.db, actorFrom(c), "Delete", "Product", details)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// ExportCSV streams the filtered product list as CSV, honoring the same
// filters as List.
func (h *ProductHandler) ExportCSV(c *gin.Context) {
	products, err := h.filteredProducts(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="products.csv"`)
	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Name", "SKU", "Category", "Price", "CostPrice", "Stock", "ReorderLevel", "Status"})
	for _, p := range products {
		_ = w.Write([]string{
			p.Name,
			p.SKU,
			p.Category,
			p.Price.StringFixed(2),
			p.CostPrice.StringFixed(2),
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.ReorderLevel),
			p.StockStatus(),
		})
	}
	w.Flush()
}

// NextSKU proposes the next sequential SKU for a category, in the form
// <first four letters of category>-NNNN.
func (h *ProductHandler) NextSKU(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}
	var count int64
	if err := h.db.Model(&models.Product{}).Where("category = ?", category).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
		return
	}
	prefix := strings.ToUpper(category)
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	c.JSON(http.StatusOK, gin.H{"sku": fmt.Sprintf("%s-%04d", prefix, count+1)})
}
