package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User - An operator account. Only two roles exist today but the
// column stays a plain string so new roles don't need a migration.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:100" json:"name"`
	Email        string     `gorm:"uniqueIndex;size:120" json:"email"`
	PasswordHash string     `json:"-"` // Never return this in JSON
	Role         string     `gorm:"size:30" json:"role"` // 'Super Admin', 'Admin'
	LastLogin    *time.Time `json:"lastLogin"`
	CreatedAt    time.Time  `json:"createdAt"`
}

const (
	RoleSuperAdmin = "Super Admin"
	RoleAdmin      = "Admin"
)

// Category - Products reference a category by name, not by key.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:60" json:"name"`
	Description string `json:"description"`
}

// Product - The inventory itself.
type Product struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:150" json:"name"`
	SKU          string          `gorm:"uniqueIndex;size:40" json:"sku"`
	Category     string          `gorm:"size:60" json:"category"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(12,2)" json:"costPrice"`
	Stock        int             `json:"stock"`
	ReorderLevel int             `json:"reorderLevel"`
	Featured     bool            `json:"featured"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Stock status labels derived from Stock vs ReorderLevel.
const (
	StockStatusIn  = "In Stock"
	StockStatusLow = "Low Stock"
	StockStatusOut = "Out of Stock"
)

// StockStatus derives the display status: stock of zero is out,
// anything at or below the reorder level is low.
func (p *Product) StockStatus() string {
	switch {
	case p.Stock == 0:
		return StockStatusOut
	case p.Stock <= p.ReorderLevel:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// Invoice - The sale document. Immutable once created except for deletion.
type Invoice struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	InvoiceNo       string          `gorm:"uniqueIndex;size:30" json:"invoiceNo"`
	Items           []InvoiceItem   `gorm:"foreignKey:InvoiceID" json:"items"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(14,2)" json:"total"`
	Discount        decimal.Decimal `gorm:"type:decimal(14,2)" json:"discount"`
	Tax             decimal.Decimal `gorm:"type:decimal(14,2)" json:"tax"`
	FinalAmount     decimal.Decimal `gorm:"type:decimal(14,2)" json:"finalAmount"`
	CustomerName    string          `gorm:"size:150" json:"customerName"`
	CustomerContact string          `gorm:"size:150" json:"customerContact"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// InvoiceItem - One line of an invoice. Price is the unit price
// snapshotted at the time of sale.
type InvoiceItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	InvoiceID uint            `json:"invoiceId"`
	ProductID uint            `json:"productId"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
}

// Stock movement actions.
const (
	StockActionAdded   = "Added"
	StockActionReduced = "Reduced"
)

// StockMovement - Append-only audit record of a stock change.
// NewStock = PreviousStock +/- Quantity, clamped at zero on reductions.
type StockMovement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductID     uint      `json:"productId"`
	ProductName   string    `gorm:"size:150" json:"productName"`
	Action        string    `gorm:"size:10" json:"action"` // 'Added' or 'Reduced'
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previousStock"`
	NewStock      int       `json:"newStock"`
	Reason        string    `json:"reason"`
	UserID        uint      `json:"userId"`
	UserName      string    `gorm:"size:100" json:"userName"`
	CreatedAt     time.Time `json:"timestamp"`
}

// Catalogue - A named, ordered selection of products.
type Catalogue struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:150" json:"name"`
	Items     []CatalogueItem `gorm:"foreignKey:CatalogueID" json:"items"`
	CreatedBy string          `gorm:"size:100" json:"createdBy"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CatalogueItem - Position keeps the operator's ordering stable.
type CatalogueItem struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CatalogueID uint `json:"catalogueId"`
	ProductID   uint `json:"productId"`
	Position    int  `json:"position"`
}

// ActivityLog - Append-only trail of operator actions.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"userId"`
	Action    string    `gorm:"size:50" json:"action"`
	Entity    string    `gorm:"size:50" json:"entity"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"timestamp"`
}

// Settings - Singleton row (ID is always 1).
type Settings struct {
	ID                    uint    `gorm:"primaryKey" json:"-"`
	CompanyName           string  `gorm:"size:150" json:"companyName"`
	GSTRate               float64 `json:"gstRate"` // percentage, 0-100
	Currency              string  `gorm:"size:10" json:"currency"`
	InvoiceNumberFormat   string  `gorm:"size:30" json:"invoiceNumberFormat"`
	SessionTimeoutMinutes int     `json:"sessionTimeoutMinutes"`
}

// DefaultSessionTimeout applies when the settings row is missing or unset.
const DefaultSessionTimeout = 15 * time.Minute

// SessionTimeout converts the configured minutes to a duration.
func (s *Settings) SessionTimeout() time.Duration {
	if s.SessionTimeoutMinutes <= 0 {
		return DefaultSessionTimeout
	}
	return time.Duration(s.SessionTimeoutMinutes) * time.Minute
}
