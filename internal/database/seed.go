package database

import (
	"fmt"
	"time"

	"go-inventory-admin/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultSettings returns the factory settings used on first run.
func DefaultSettings() models.Settings {
	return models.Settings{
		ID:                    1,
		CompanyName:           "N.P. Trigunayat Systems",
		GSTRate:               18,
		Currency:              "₹",
		InvoiceNumberFormat:   "INV-YYYY-NNN",
		SessionTimeoutMinutes: 15,
	}
}

// Seed populates every collection with the fixed first-run dataset.
// The presence of the settings row marks the store as initialized, so
// calling Seed on an already-seeded database is a no-op.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Settings{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range seedCategories() {
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
		}
		for _, p := range seedProducts() {
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		for _, inv := range seedInvoices() {
			if err := tx.Create(&inv).Error; err != nil {
				return err
			}
		}
		cat := seedCatalogue()
		if err := tx.Create(&cat).Error; err != nil {
			return err
		}
		admin, err := seedAdmin()
		if err != nil {
			return err
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		settings := DefaultSettings()
		return tx.Create(&settings).Error
	})
}

// Reset wipes every collection and reseeds the fixed dataset.
func Reset(db *gorm.DB) error {
	tables := []any{
		&models.ActivityLog{},
		&models.StockMovement{},
		&models.CatalogueItem{},
		&models.Catalogue{},
		&models.InvoiceItem{},
		&models.Invoice{},
		&models.Product{},
		&models.Category{},
		&models.User{},
		&models.Settings{},
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, t := range tables {
			if err := tx.Where("1 = 1").Delete(t).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return Seed(db)
}

func seedCategories() []models.Category {
	return []models.Category{
		{Name: "Electronics", Description: "Electronic components and devices"},
		{Name: "Mechanical", Description: "Mechanical parts and assemblies"},
		{Name: "Software", Description: "Software and licenses"},
		{Name: "Hardware", Description: "Hardware components"},
		{Name: "Accessories", Description: "Accessories and add-ons"},
	}
}

func seedProducts() []models.Product {
	p := func(name, sku, category, desc string, price, cost int64, stock, reorder int, featured bool, created string) models.Product {
		return models.Product{
			Name:         name,
			SKU:          sku,
			Category:     category,
			Description:  desc,
			Price:        decimal.NewFromInt(price),
			CostPrice:    decimal.NewFromInt(cost),
			Stock:        stock,
			ReorderLevel: reorder,
			Featured:     featured,
			CreatedAt:    seedDate(created),
		}
	}
	return []models.Product{
		p("Laptop HP Pavilion 15", "ELEC-0001", "Electronics", "15-inch laptop with Intel i7 processor", 75000, 65000, 12, 5, true, "2025-11-01"),
		p("Monitor Dell 24 inch", "ELEC-0002", "Electronics", "Full HD 24-inch monitor", 15000, 12000, 3, 5, false, "2025-11-02"),
		p("USB Cable Type-C", "ACCS-0001", "Accessories", "High-speed USB 3.0 Type-C cable, 2 meters", 299, 150, 45, 20, false, "2025-11-03"),
		p("Mechanical Keyboard RGB", "ACCS-0002", "Accessories", "Mechanical keyboard with RGB backlight", 5999, 3500, 8, 5, true, "2025-11-04"),
		p("Wireless Mouse Logitech", "ACCS-0003", "Accessories", "Wireless mouse with ergonomic design", 2499, 1200, 0, 10, false, "2025-11-05"),
		p("Processor Intel i7-12700K", "HARD-0001", "Hardware", "High-performance desktop processor", 35000, 28000, 6, 3, true, "2025-11-06"),
		p("RAM DDR5 32GB", "HARD-0002", "Hardware", "DDR5 memory 32GB dual channel", 18000, 14000, 15, 8, false, "2025-11-07"),
		p("SSD Samsung 1TB", "HARD-0003", "Hardware", "NVMe SSD 1TB storage", 8500, 6500, 22, 10, false, "2025-11-08"),
		p("Power Supply 850W Gold", "HARD-0004", "Hardware", "80+ Gold certified 850W power supply", 9999, 7000, 4, 3, false, "2025-11-09"),
		p("Graphics Card RTX 4070", "HARD-0005", "Hardware", "NVIDIA RTX 4070 graphics card", 65000, 55000, 2, 2, true, "2025-11-10"),
		p("Monitor Arm Stand", "MECH-0001", "Mechanical", "Adjustable monitor arm for dual monitors", 3500, 2000, 18, 8, false, "2025-11-11"),
		p("Laptop Cooling Pad", "ACCS-0004", "Accessories", "Dual fan cooling pad for laptops", 1999, 1000, 7, 5, false, "2025-11-12"),
		p("Windows 11 Pro License", "SOFT-0001", "Software", "Windows 11 Professional license key", 15000, 8000, 50, 20, false, "2025-11-13"),
		p("Cable Organizer Kit", "MECH-0002", "Mechanical", "Complete cable management kit", 1299, 600, 25, 15, false, "2025-11-13"),
		p("Office Chair Pro", "MECH-0003", "Mechanical", "Ergonomic office chair with lumbar support", 18999, 12000, 5, 2, true, "2025-11-13"),
	}
}

func seedInvoices() []models.Invoice {
	return []models.Invoice{
		{
			InvoiceNo: "INV-2025-001",
			Items: []models.InvoiceItem{
				{ProductID: 1, Qty: 1, Price: decimal.NewFromInt(75000)},
				{ProductID: 3, Qty: 2, Price: decimal.NewFromInt(299)},
			},
			Subtotal:        decimal.NewFromInt(75598),
			Discount:        decimal.Zero,
			Tax:             decimal.RequireFromString("13607.64"),
			FinalAmount:     decimal.RequireFromString("89205.64"),
			CustomerName:    "Tech Solutions Pvt Ltd",
			CustomerContact: "contact@techsol.com",
			CreatedAt:       seedDate("2025-11-10"),
		},
		{
			InvoiceNo: "INV-2025-002",
			Items: []models.InvoiceItem{
				{ProductID: 4, Qty: 3, Price: decimal.NewFromInt(5999)},
				{ProductID: 5, Qty: 2, Price: decimal.NewFromInt(2499)},
			},
			Subtotal:        decimal.NewFromInt(22497),
			Discount:        decimal.NewFromInt(2000),
			Tax:             decimal.RequireFromString("3689.46"),
			FinalAmount:     decimal.RequireFromString("24186.46"),
			CustomerName:    "Digital Hub India",
			CustomerContact: "sales@digitalhub.in",
			CreatedAt:       seedDate("2025-11-11"),
		},
	}
}

func seedCatalogue() models.Catalogue {
	productIDs := []uint{1, 2, 3, 4, 6, 7, 8, 10, 12, 13, 15}
	items := make([]models.CatalogueItem, len(productIDs))
	for i, id := range productIDs {
		items[i] = models.CatalogueItem{ProductID: id, Position: i}
	}
	return models.Catalogue{
		Name:      "General Product Catalogue 2025",
		Items:     items,
		CreatedBy: "Admin User",
		CreatedAt: seedDate("2025-11-12"),
	}
}

func seedAdmin() (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		Name:         "Admin User",
		Email:        "admin@np.com",
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
		CreatedAt:    seedDate("2025-01-01"),
	}, nil
}

func seedDate(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}
