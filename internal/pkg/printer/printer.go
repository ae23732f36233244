// Package printer renders A4 statements and report tables as PDF.
package printer

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const (
	pageWidth  = 210.0
	margin     = 15.0
	lineHeight = 7.0
	font       = "Helvetica"
)

// Document is a single printable statement. Text is UTF-8; it is translated
// to the code page of the core fonts when written.
type Document struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// New starts a portrait document with title and an optional subtitle line.
func New(title, subtitle string) *Document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	d := &Document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetFont(font, "B", 16)
	pdf.CellFormat(0, 10, d.tr(title), "", 1, "L", false, 0, "")
	if subtitle != "" {
		pdf.SetFont(font, "", 10)
		pdf.CellFormat(0, 6, d.tr(subtitle), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
	return d
}

// Field writes a "label: value" line.
func (d *Document) Field(label, value string) {
	d.pdf.SetFont(font, "B", 11)
	d.pdf.CellFormat(55, lineHeight, d.tr(label+":"), "", 0, "L", false, 0, "")
	d.pdf.SetFont(font, "", 11)
	d.pdf.CellFormat(0, lineHeight, d.tr(value), "", 1, "L", false, 0, "")
}

// Section writes a bold heading with a rule under it.
func (d *Document) Section(title string) {
	d.pdf.Ln(3)
	d.pdf.SetFont(font, "B", 12)
	d.pdf.CellFormat(0, lineHeight, d.tr(title), "B", 1, "L", false, 0, "")
	d.pdf.Ln(1)
}

// Line writes a description and a right aligned amount.
func (d *Document) Line(description, amount string) {
	d.pdf.SetFont(font, "", 11)
	d.pdf.CellFormat(pageWidth-2*margin-40, lineHeight, d.tr(description), "", 0, "L", false, 0, "")
	d.pdf.CellFormat(40, lineHeight, d.tr(amount), "", 1, "R", false, 0, "")
}

// Total is Line in bold with a rule above.
func (d *Document) Total(description, amount string) {
	d.pdf.SetFont(font, "B", 11)
	d.pdf.CellFormat(pageWidth-2*margin-40, lineHeight, d.tr(description), "T", 0, "L", false, 0, "")
	d.pdf.CellFormat(40, lineHeight, d.tr(amount), "T", 1, "R", false, 0, "")
}

// Table writes headers and rows with columns sharing the page width
// equally. Columns after the first are right aligned.
func (d *Document) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	width := (pageWidth - 2*margin) / float64(len(headers))
	align := func(i int) string {
		if i == 0 {
			return "L"
		}
		return "R"
	}

	d.pdf.SetFont(font, "B", 10)
	d.pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		d.pdf.CellFormat(width, lineHeight, d.tr(h), "1", 0, align(i), true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont(font, "", 10)
	for _, row := range rows {
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			d.pdf.CellFormat(width, lineHeight, d.tr(cell), "1", 0, align(i), false, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

// Signature leaves room for a signature over name.
func (d *Document) Signature(name string) {
	d.pdf.Ln(20)
	x := d.pdf.GetX()
	y := d.pdf.GetY()
	d.pdf.Line(x, y, x+80, y)
	d.pdf.SetFont(font, "", 10)
	d.pdf.CellFormat(80, 6, d.tr(name), "", 1, "C", false, 0, "")
}

// Bytes finishes the document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Money formats v as Brazilian currency, e.g. "R$ 1.234,56".
func Money(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	fixed := v.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, grouped.String(), frac)
}

// Date formats t as dd/mm/yyyy.
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}
