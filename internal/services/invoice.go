package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-inventory-admin/internal/database"
	"go-inventory-admin/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceLine is one priced line of an invoice being computed.
type InvoiceLine struct {
	ProductID uint
	Qty       int
	Price     decimal.Decimal
}

// InvoiceTotals is the output of the calculator.
type InvoiceTotals struct {
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	FinalAmount decimal.Decimal
}

// ComputeTotals derives invoice amounts from line items, a flat discount
// and a GST percentage:
//
//	subtotal = sum(qty * unit price)
//	taxable  = subtotal - discount
//	tax      = taxable * rate/100
//	final    = taxable + tax
//
// The discount is subtracted without a floor at zero: a discount larger
// than the subtotal yields negative taxable, tax and final amounts.
func ComputeTotals(lines []InvoiceLine, discount, gstRate decimal.Decimal) (InvoiceTotals, error) {
	if len(lines) == 0 {
		return InvoiceTotals{}, ErrNoItems
	}
	if discount.IsNegative() {
		return InvoiceTotals{}, ErrNegativeDiscount
	}
	subtotal := decimal.Zero
	for _, l := range lines {
		if l.Qty <= 0 {
			return InvoiceTotals{}, ErrInvalidQuantity
		}
		if l.Price.IsNegative() {
			return InvoiceTotals{}, ErrNegativePrice
		}
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(gstRate).Div(decimal.NewFromInt(100))
	return InvoiceTotals{
		Subtotal:    subtotal,
		Tax:         tax,
		FinalAmount: taxable.Add(tax),
	}, nil
}

// InvoiceService owns invoice creation and deletion, including the
// stock side effects of a sale.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// InvoiceItemInput is one requested line. A zero price means "use the
// product's current price".
type InvoiceItemInput struct {
	ProductID uint            `json:"productId" binding:"required"`
	Qty       int             `json:"qty" binding:"required"`
	Price     decimal.Decimal `json:"price"`
}

// CreateInvoiceInput is the request body for invoice creation.
type CreateInvoiceInput struct {
	Items           []InvoiceItemInput `json:"items" binding:"required"`
	Discount        decimal.Decimal    `json:"discount"`
	CustomerName    string             `json:"customerName" binding:"required"`
	CustomerContact string             `json:"customerContact"`
}

// Create writes the invoice, decrements stock for every line (clamped at
// zero), records one stock movement per line and one activity entry, all
// in a single transaction. Nothing persists if any step fails.
func (s *InvoiceService) Create(in CreateInvoiceInput, actor Actor) (*models.Invoice, error) {
	settings := database.GetSettings(s.db)
	gstRate := decimal.NewFromFloat(settings.GSTRate)

	var created models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		lines := make([]InvoiceLine, 0, len(in.Items))
		for _, item := range in.Items {
			if item.Qty <= 0 {
				return ErrInvalidQuantity
			}
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w %d", ErrProductNotFound, item.ProductID)
				}
				return err
			}
			price := item.Price
			if price.IsZero() {
				price = product.Price
			}
			lines = append(lines, InvoiceLine{ProductID: product.ID, Qty: item.Qty, Price: price})
		}

		totals, err := ComputeTotals(lines, in.Discount, gstRate)
		if err != nil {
			return err
		}
		invoiceNo, err := nextInvoiceNo(tx, settings.InvoiceNumberFormat, time.Now())
		if err != nil {
			return err
		}

		inv := models.Invoice{
			InvoiceNo:       invoiceNo,
			Subtotal:        totals.Subtotal,
			Discount:        in.Discount,
			Tax:             totals.Tax,
			FinalAmount:     totals.FinalAmount,
			CustomerName:    in.CustomerName,
			CustomerContact: in.CustomerContact,
			CreatedAt:       time.Now(),
		}
		for _, l := range lines {
			inv.Items = append(inv.Items, models.InvoiceItem{
				ProductID: l.ProductID,
				Qty:       l.Qty,
				Price:     l.Price,
			})
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}

		// Re-read each product under lock so repeated lines of the same
		// product see the running total, not the pre-invoice stock.
		for _, l := range lines {
			var product models.Product
			if err := forUpdate(tx).First(&product, l.ProductID).Error; err != nil {
				return err
			}
			prev := product.Stock
			newStock := prev - l.Qty
			if newStock < 0 {
				newStock = 0
			}
			if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
				Update("stock", newStock).Error; err != nil {
				return err
			}
			movement := models.StockMovement{
				ProductID:     product.ID,
				ProductName:   product.Name,
				Action:        models.StockActionReduced,
				Quantity:      l.Qty,
				PreviousStock: prev,
				NewStock:      newStock,
				Reason:        "invoice sale",
				UserID:        actor.ID,
				UserName:      actor.Name,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}

		details := fmt.Sprintf("Created invoice %s for %s", invoiceNo, in.CustomerName)
		if err := LogActivity(tx, actor, "Create", "Invoice", details); err != nil {
			return err
		}
		created = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes an invoice and its lines. Stock is not restored; the
// movement records remain as the audit trail of the original sale.
func (s *InvoiceService) Delete(id uint, actor Actor) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.First(&inv, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: invoice %d", ErrNotFound, id)
			}
			return err
		}
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&inv).Error; err != nil {
			return err
		}
		details := fmt.Sprintf("Deleted invoice %s", inv.InvoiceNo)
		return LogActivity(tx, actor, "Delete", "Invoice", details)
	})
}

// nextInvoiceNo allocates the next sequential number. The configured
// format uses YYYY and NNN placeholders, e.g. INV-YYYY-NNN.
func nextInvoiceNo(tx *gorm.DB, format string, now time.Time) (string, error) {
	var count int64
	if err := tx.Model(&models.Invoice{}).Count(&count).Error; err != nil {
		return "", err
	}
	if !strings.Contains(format, "NNN") {
		format = "INV-YYYY-NNN"
	}
	no := strings.Replace(format, "YYYY", strconv.Itoa(now.Year()), 1)
	no = strings.Replace(no, "NNN", fmt.Sprintf("%03d", count+1), 1)
	return no, nil
}
