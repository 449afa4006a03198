// Package invoice renders order invoices as PDF documents for download
// links and email attachments.
package invoice

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"klubnika/models"
)

// Render produces the invoice PDF for one order. Legacy orders without
// a stored breakdown fall back to backing the subtotal out of the grand
// total at 5% GST.
func Render(o *models.Order, customer *models.User) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "KLUBNIKA - INVOICE", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Klubnika Restaurant", "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, "123 Food Street, Kolkata", "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 6, fmt.Sprintf("Order ID: %s", o.ID.Hex()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", o.CreatedAt.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Customer: %s", customer.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Mobile: %s", customer.Mobile), "", 1, "L", false, 0, "")

	address := o.DeliveryAddress
	if address == "" {
		address = "Dine-in"
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Delivery Address: %s", address), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// item table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(100, 8, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(60, 8, "Price", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	for _, item := range o.Items {
		title := item.Title
		if len(title) > 35 {
			title = title[:35] + "..."
		}
		pdf.CellFormat(100, 8, title, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(60, 8, item.Price, "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	subTotal := o.SubTotal
	gst := o.GSTAmount
	if subTotal == 0 {
		subTotal = o.TotalAmount / 1.05
		gst = o.TotalAmount - subTotal
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(130, 7, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(60, 7, fmt.Sprintf("Rs. %.2f", subTotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(130, 7, "GST (5%):", "", 0, "R", false, 0, "")
	pdf.CellFormat(60, 7, fmt.Sprintf("Rs. %.2f", gst), "", 1, "R", false, 0, "")
	if o.DeliveryCharge > 0 {
		pdf.CellFormat(130, 7, "Delivery:", "", 0, "R", false, 0, "")
		pdf.CellFormat(60, 7, fmt.Sprintf("Rs. %.2f", o.DeliveryCharge), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(130, 10, "Grand Total:", "", 0, "R", false, 0, "")
	pdf.CellFormat(60, 10, fmt.Sprintf("Rs. %.2f", o.TotalAmount), "", 1, "R", false, 0, "")

	pdf.SetY(-40)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Thank you for dining with us!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the download name for an order's invoice.
func Filename(o *models.Order) string {
	return fmt.Sprintf("invoice-%s.pdf", o.ID.Hex())
}
