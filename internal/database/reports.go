package database

import (
	"sort"
	"time"

	"go-inventory-admin/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardSummary is the landing-page analytics payload.
type DashboardSummary struct {
	TotalProducts  int64                `json:"totalProducts"`
	TotalUnits     int                  `json:"totalUnits"`
	LowStockCount  int                  `json:"lowStockCount"`
	TotalInvoices  int64                `json:"totalInvoices"`
	MonthlyRevenue decimal.Decimal      `json:"monthlyRevenue"`
	InventoryValue decimal.Decimal      `json:"inventoryValue"`
	RecentActivity []models.ActivityLog `json:"recentActivity"`
	RecentInvoices []models.Invoice     `json:"recentInvoices"`
}

// GetDashboardSummary aggregates the dashboard KPIs. Revenue counts
// invoices created in the same calendar month as now; inventory value
// is cost price times units on hand.
func GetDashboardSummary(db *gorm.DB, now time.Time) (*DashboardSummary, error) {
	var s DashboardSummary

	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		return nil, err
	}
	s.TotalProducts = int64(len(products))
	s.InventoryValue = decimal.Zero
	for _, p := range products {
		s.TotalUnits += p.Stock
		if p.Stock <= p.ReorderLevel {
			s.LowStockCount++
		}
		s.InventoryValue = s.InventoryValue.Add(p.CostPrice.Mul(decimal.NewFromInt(int64(p.Stock))))
	}

	var invoices []models.Invoice
	if err := db.Find(&invoices).Error; err != nil {
		return nil, err
	}
	s.TotalInvoices = int64(len(invoices))
	s.MonthlyRevenue = decimal.Zero
	for _, inv := range invoices {
		if inv.CreatedAt.Year() == now.Year() && inv.CreatedAt.Month() == now.Month() {
			s.MonthlyRevenue = s.MonthlyRevenue.Add(inv.FinalAmount)
		}
	}

	if err := db.Order("id desc").Limit(5).Find(&s.RecentActivity).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Items").Order("created_at desc").Limit(5).Find(&s.RecentInvoices).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ValuationItem is a single product row of the stock valuation report.
type ValuationItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	CostPrice decimal.Decimal `json:"costPrice"`
	TotalCost decimal.Decimal `json:"totalCost"`
}

// CategoryGroup is one category's slice of the valuation report.
type CategoryGroup struct {
	CategoryName string          `json:"categoryName"`
	Items        []ValuationItem `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// StockReport combines the status distribution with a per-category
// valuation of inventory at cost.
type StockReport struct {
	InStock    int             `json:"inStock"`
	LowStock   int             `json:"lowStock"`
	OutOfStock int             `json:"outOfStock"`
	Categories []CategoryGroup `json:"categories"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// GetStockReport calculates the total monetary value of all physical
// inventory, grouped by category.
func GetStockReport(db *gorm.DB) (*StockReport, error) {
	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		return nil, err
	}

	report := StockReport{GrandTotal: decimal.Zero}
	grouped := make(map[string]*CategoryGroup)
	for _, p := range products {
		switch p.StockStatus() {
		case models.StockStatusOut:
			report.OutOfStock++
		case models.StockStatusLow:
			report.LowStock++
		default:
			report.InStock++
		}

		catName := p.Category
		if catName == "" {
			catName = "Uncategorized"
		}
		group, ok := grouped[catName]
		if !ok {
			group = &CategoryGroup{CategoryName: catName, Subtotal: decimal.Zero}
			grouped[catName] = group
		}
		itemTotal := p.CostPrice.Mul(decimal.NewFromInt(int64(p.Stock)))
		group.Items = append(group.Items, ValuationItem{
			Name:      p.Name,
			Quantity:  p.Stock,
			CostPrice: p.CostPrice,
			TotalCost: itemTotal,
		})
		group.Subtotal = group.Subtotal.Add(itemTotal)
		report.GrandTotal = report.GrandTotal.Add(itemTotal)
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		report.Categories = append(report.Categories, *grouped[name])
	}
	return &report, nil
}

// InvoiceReport summarizes billing activity.
type InvoiceReport struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	InvoiceCount   int64           `json:"invoiceCount"`
	AverageInvoice decimal.Decimal `json:"averageInvoice"`
}

// GetInvoiceReport totals all invoices and derives the average value.
func GetInvoiceReport(db *gorm.DB) (*InvoiceReport, error) {
	var invoices []models.Invoice
	if err := db.Find(&invoices).Error; err != nil {
		return nil, err
	}
	report := InvoiceReport{
		TotalRevenue:   decimal.Zero,
		InvoiceCount:   int64(len(invoices)),
		AverageInvoice: decimal.Zero,
	}
	for _, inv := range invoices {
		report.TotalRevenue = report.TotalRevenue.Add(inv.FinalAmount)
	}
	if report.InvoiceCount > 0 {
		report.AverageInvoice = report.TotalRevenue.Div(decimal.NewFromInt(report.InvoiceCount))
	}
	return &report, nil
}
