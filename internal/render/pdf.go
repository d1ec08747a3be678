package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Fixed output file attributes.
const (
	Filename = "detailed_notes.pdf"
	MIMEType = "application/pdf"
)

// Spacing after blocks, in points.
const (
	titleSpacing = 12
	blockSpacing = 8
	pageMargin   = 72
	bulletIndent = 18
)

// Document is a rendered PDF held in memory. It is never stored.
type Document struct {
	Filename string
	MIMEType string
	Blocks   int // drawn blocks, title included
	data     []byte
}

// Reader returns a reader positioned at the start of the document.
func (d *Document) Reader() *bytes.Reader { return bytes.NewReader(d.data) }

// Bytes returns the raw PDF.
func (d *Document) Bytes() []byte { return d.data }

// Len returns the document size in bytes.
func (d *Document) Len() int { return len(d.data) }

// Renderer draws notes onto A4 pages.
type Renderer struct {
	Author string
}

// Render lays out notes and draws them. An empty title means DefaultTitle.
func (r *Renderer) Render(notes, title string) (*Document, error) {
	blocks := Layout(notes, title)

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(blocks[0].Text, true)
	pdf.SetCreator("go_studynotes", true)
	if r.Author != "" {
		pdf.SetAuthor(r.Author, true)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	for _, b := range blocks {
		drawBlock(pdf, tr, b)
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return &Document{Filename: Filename, MIMEType: MIMEType, Blocks: len(blocks), data: buf.Bytes()}, nil
}

func drawBlock(pdf *fpdf.Fpdf, tr func(string) string, b Block) {
	switch b.Kind {
	case BlockTitle:
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 22, tr(b.Text), "", "C", false)
		pdf.Ln(titleSpacing)
	case BlockHeading:
		size := 15.0 - float64(b.Level)
		if size < 10 {
			size = 10
		}
		pdf.SetFont("Helvetica", "B", size)
		pdf.MultiCell(0, size+4, tr(b.Text), "", "L", false)
		pdf.Ln(blockSpacing)
	case BlockBullet:
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetLeftMargin(pageMargin + bulletIndent)
		pdf.SetX(pageMargin + bulletIndent)
		pdf.MultiCell(0, 12, tr(b.Marker+" "+b.Text), "", "L", false)
		pdf.SetLeftMargin(pageMargin)
		pdf.Ln(blockSpacing)
	case BlockRule:
		w, _ := pdf.GetPageSize()
		y := pdf.GetY() + 4
		pdf.Line(pageMargin, y, w-pageMargin, y)
		pdf.Ln(blockSpacing + 4)
	default:
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 12, tr(b.Text), "", "L", false)
		pdf.Ln(blockSpacing)
	}
}
