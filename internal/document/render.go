package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// DefaultPlaceholder is rendered when the transcript is empty. An empty
// transcript is a normal outcome and must still produce a document.
const DefaultPlaceholder = "No speech detected."

// Layout describes the fixed page geometry. Units are millimeters except
// FontSize, which is in points.
type Layout struct {
	Orientation string  // "P" or "L"
	PageSize    string  // "A4", "A3", "Letter", "Legal"
	Margin      float64 // uniform page margin
	FontFamily  string  // core font name (Arial, Courier, Times)
	FontSize    float64
	LineHeight  float64
}

// DefaultLayout returns A4 portrait with 10mm margins, Arial 12 and a 10mm
// line height.
func DefaultLayout() Layout {
	return Layout{
		Orientation: "P",
		PageSize:    "A4",
		Margin:      10,
		FontFamily:  "Arial",
		FontSize:    12,
		LineHeight:  10,
	}
}

// Document is a fully serialized page stream. Pages and Lines describe the
// layout outcome for logging and metrics.
type Document struct {
	Bytes []byte
	Pages int
	Lines int
}

// Renderer lays transcript text out into paginated PDF documents.
type Renderer struct {
	layout      Layout
	placeholder string
}

// NewRenderer creates a renderer with the given geometry. An empty
// placeholder falls back to DefaultPlaceholder.
func NewRenderer(layout Layout, placeholder string) *Renderer {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &Renderer{layout: layout, placeholder: placeholder}
}

// Pinned document dates keep output byte-identical for identical text.
var fixedDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// newPDF constructs an fpdf instance with the renderer's geometry applied.
func (r *Renderer) newPDF() *fpdf.Fpdf {
	pdf := fpdf.New(r.layout.Orientation, "mm", r.layout.PageSize, "")
	pdf.SetCreationDate(fixedDate)
	pdf.SetModificationDate(fixedDate)
	pdf.SetCompression(false) // keep page streams inspectable

	pdf.SetMargins(r.layout.Margin, r.layout.Margin, r.layout.Margin)
	pdf.SetAutoPageBreak(false, r.layout.Margin)
	pdf.SetFont(r.layout.FontFamily, "", r.layout.FontSize)
	return pdf
}

// LinesPerPage returns how many wrapped lines fit on one page.
func (r *Renderer) LinesPerPage() int {
	pdf := r.newPDF()
	_, pageH := pdf.GetPageSize()
	n := int((pageH - 2*r.layout.Margin) / r.layout.LineHeight)
	if n < 1 {
		n = 1
	}
	return n
}

// Render lays text out into a paginated PDF and serializes it. Empty text is
// replaced by the placeholder phrase, so a document is always produced.
// Runes outside the core font's repertoire are substituted by the font's
// fallback glyph; text content can never fail the render.
func (r *Renderer) Render(text string) (*Document, error) {
	if strings.TrimSpace(text) == "" {
		text = r.placeholder
	}

	pdf := r.newPDF()
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	usableW := pageW - 2*r.layout.Margin
	linesPerPage := int((pageH - 2*r.layout.Margin) / r.layout.LineHeight)
	if linesPerPage < 1 {
		linesPerPage = 1
	}

	lines := pdf.SplitText(translate(text), usableW)

	pdf.AddPage()
	row := 0
	for _, line := range lines {
		if row == linesPerPage {
			pdf.AddPage()
			row = 0
		}
		pdf.CellFormat(usableW, r.layout.LineHeight, line, "", 1, "L", false, 0, "")
		row++
	}

	if pdf.Err() {
		return nil, fmt.Errorf("failed to lay out document: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}

	return &Document{
		Bytes: buf.Bytes(),
		Pages: pdf.PageNo(),
		Lines: len(lines),
	}, nil
}
