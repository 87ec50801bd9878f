package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Report is a titled PDF with filter and summary lines above a table.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Filters     []string
	Summary     []string
	Table       Table
}

const (
	pdfFont     = "Helvetica"
	pdfMargin   = 12.0
	pdfRowH     = 6.0
	pdfFontSize = 8.0
)

// The core fonts are cp1252. Letters outside it fall back to their
// closest Latin form.
var turkishFallback = strings.NewReplacer(
	"ğ", "g", "Ğ", "G",
	"ş", "s", "Ş", "S",
	"ı", "i", "İ", "I",
	"₺", "TL",
)

// PDF writes r as an A4 landscape document.
func PDF(w io.Writer, r Report) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AliasNbPages("")

	cp := pdf.UnicodeTranslatorFromDescriptor("")
	tr := func(s string) string { return cp(turkishFallback.Replace(s)) }

	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont(pdfFont, "I", 7)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("EDEON ENERJİ - Sayfa %d/{nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 9, tr(r.Title), "", 1, "L", false, 0, "")

	pdf.SetFont(pdfFont, "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 5, tr("Oluşturma: "+r.GeneratedAt.Format(dateTimeLayout)), "", 1, "L", false, 0, "")
	for _, f := range r.Filters {
		pdf.CellFormat(0, 5, tr(f), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	if len(r.Summary) > 0 {
		pdf.SetFont(pdfFont, "B", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 7, tr("Özet"), "", 1, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 9)
		for _, line := range r.Summary {
			pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	drawTable(pdf, tr, r.Table)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func drawTable(pdf *fpdf.Fpdf, tr func(string) string, t Table) {
	if len(t.Headers) == 0 {
		return
	}
	pageW, _ := pdf.GetPageSize()
	widths := columnWidths(t, pageW-2*pdfMargin)

	header := func() {
		pdf.SetFont(pdfFont, "B", pdfFontSize)
		pdf.SetFillColor(255, 193, 7)
		pdf.SetTextColor(0, 0, 0)
		for i, h := range t.Headers {
			pdf.CellFormat(widths[i], pdfRowH+1, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(pdfFont, "", pdfFontSize)
	}

	header()
	_, pageH := pdf.GetPageSize()
	for n, row := range t.Rows {
		if pdf.GetY()+pdfRowH > pageH-pdfMargin-6 {
			pdf.AddPage()
			header()
		}
		fill := n%2 == 1
		pdf.SetFillColor(245, 245, 245)
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = fit(pdf, tr(row[i]), widths[i]-2)
			}
			pdf.CellFormat(widths[i], pdfRowH, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(t.Rows) == 0 {
		pdf.SetFont(pdfFont, "I", pdfFontSize)
		pdf.CellFormat(0, pdfRowH, tr("Kayıt bulunamadı"), "1", 1, "C", false, 0, "")
	}
}

// columnWidths scales the relative widths of t to total. Missing widths
// share the page evenly.
func columnWidths(t Table, total float64) []float64 {
	n := len(t.Headers)
	rel := make([]float64, n)
	var sum float64
	for i := range rel {
		rel[i] = 1
		if i < len(t.Widths) && t.Widths[i] > 0 {
			rel[i] = t.Widths[i]
		}
		sum += rel[i]
	}
	out := make([]float64, n)
	for i := range rel {
		out[i] = rel[i] / sum * total
	}
	return out
}

// fit shortens the single byte encoded s with "..." until it is at
// most w wide.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	n := len(s)
	for n > 0 && pdf.GetStringWidth(s[:n]+"...") > w {
		n--
	}
	return s[:n] + "..."
}
