package pdfgen

import (
	"bytes"
	"fmt"

	"go-inventory-admin/internal/models"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// RenderInvoice lays out a single invoice as an A4 PDF. productNames
// supplies display names for line items whose product still exists;
// missing entries fall back to the product id.
func RenderInvoice(inv models.Invoice, productNames map[uint]string, settings models.Settings) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, asciiOnly(settings.CompanyName))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice No: %s", inv.InvoiceNo))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", inv.CreatedAt.Format("02 Jan 2006")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Customer: %s", asciiOnly(inv.CustomerName)))
	pdf.Ln(6)
	if inv.CustomerContact != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Contact: %s", asciiOnly(inv.CustomerContact)))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Line item table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range inv.Items {
		name, ok := productNames[item.ProductID]
		if !ok {
			name = fmt.Sprintf("Product #%d", item.ProductID)
		}
		amount := item.Price.Mul(decimal.NewFromInt(int64(item.Qty)))
		pdf.CellFormat(90, 8, asciiOnly(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Qty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, item.Price.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totals block, amounts rounded to two decimals for display only.
	totals := []struct {
		label string
		value decimal.Decimal
	}{
		{"Subtotal", inv.Subtotal},
		{"Discount", inv.Discount},
		{fmt.Sprintf("Tax (%.2f%%)", settings.GSTRate), inv.Tax},
		{"Total", inv.FinalAmount},
	}
	for i, row := range totals {
		style := ""
		if i == len(totals)-1 {
			style = "B"
		}
		pdf.SetFont("Arial", style, 11)
		pdf.CellFormat(150, 7, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, row.value.StringFixed(2), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// asciiOnly strips characters the core PDF fonts cannot encode.
func asciiOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r < 128 {
			out = append(out, r)
		}
	}
	return string(out)
}
