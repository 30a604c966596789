package service

import (
	"bytes"
	"fmt"

	"tableside/internal/domain"

	"github.com/go-pdf/fpdf"
)

var (
	pdfHeaderColor = [3]int{30, 58, 95}
	pdfMutedColor  = [3]int{127, 140, 141}
	pdfAltRowColor = [3]int{241, 245, 249}
)

// PDFReceiptRenderer renders the stored receipt snapshot, never a live
// re-read of the orders.
type PDFReceiptRenderer struct {
	RestaurantName string
}

func NewPDFReceiptRenderer() *PDFReceiptRenderer {
	return &PDFReceiptRenderer{}
}

func (r *PDFReceiptRenderer) Render(receipt *domain.Receipt) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	pdf.SetFillColor(pdfHeaderColor[0], pdfHeaderColor[1], pdfHeaderColor[2])
	pdf.Rect(0, 0, pageWidth, 8, "F")

	pdf.SetY(20)
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(pdfHeaderColor[0], pdfHeaderColor[1], pdfHeaderColor[2])
	pdf.CellFormat(0, 10, "RECEIPT", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(pdfMutedColor[0], pdfMutedColor[1], pdfMutedColor[2])
	pdf.CellFormat(0, 6, fmt.Sprintf("Receipt #%d  -  %s", receipt.ID,
		receipt.CreatedAt.Format("02 Jan 2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Customer: %s (%s)", receipt.CustomerName, receipt.CustomerPhone), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Table: %d", receipt.TableNo), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(pdfHeaderColor[0], pdfHeaderColor[1], pdfHeaderColor[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(80, 8, "Item", "", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Price", "", 0, "R", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Subtotal", "", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, item := range receipt.Items {
		fill := i%2 == 1
		pdf.SetFillColor(pdfAltRowColor[0], pdfAltRowColor[1], pdfAltRowColor[2])
		pdf.CellFormat(80, 7, item.Title, "", 0, "L", fill, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.Price), "", 0, "R", fill, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "", 0, "R", fill, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", item.Subtotal), "", 1, "R", fill, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(130, 9, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 9, fmt.Sprintf("%.2f", receipt.Total), "T", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(pdfMutedColor[0], pdfMutedColor[1], pdfMutedColor[2])
	pdf.CellFormat(0, 5, "Thank you for dining with us.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output error: %w", err)
	}
	return buf.Bytes(), nil
}

var _ ReceiptRenderer = (*PDFReceiptRenderer)(nil)
