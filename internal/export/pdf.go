package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 14.0 // mm
	pdfRowHeight  = 8.0
	pdfTitleSize  = 16.0
	pdfBodySize   = 10.0
	pdfIDColWidth = 20.0
)

// WritePDF renders t as a single-table A4 document
func WritePDF(w io.Writer, t Table) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetTitle(firstNonEmpty(t.Title, t.Sheet), true)
	pdf.SetCreator("geoadmin", true)
	pdf.AddPage()
	// The core Helvetica font only covers cp1252; other runes print as '.'
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1252")

	if t.Title != "" {
		pdf.SetFont("Helvetica", "", pdfTitleSize)
		pdf.CellFormat(0, 10, tr(t.Title), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	widths := columnWidths(pdf, len(t.Headers))

	// Header row
	pdf.SetFont("Helvetica", "B", pdfBodySize)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range t.Headers {
		pdf.CellFormat(widths[i], pdfRowHeight, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", pdfBodySize)
	pdf.SetTextColor(0, 0, 0)
	for n, row := range t.Rows {
		// Striped rows
		if n%2 == 1 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for i := range t.Headers {
			var cell string
			if i < len(row) {
				cell = fmt.Sprint(row[i])
			}
			pdf.CellFormat(widths[i], pdfRowHeight, tr(cell), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdf.Output(w)
}

// columnWidths gives the ID column a fixed width and splits the rest of
// the page evenly.
func columnWidths(pdf *fpdf.Fpdf, n int) []float64 {
	if n == 0 {
		return nil
	}
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right

	widths := make([]float64, n)
	if n == 1 {
		widths[0] = usable
		return widths
	}
	widths[0] = pdfIDColWidth
	rest := (usable - pdfIDColWidth) / float64(n-1)
	for i := 1; i < n; i++ {
		widths[i] = rest
	}
	return widths
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
