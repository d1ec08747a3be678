package render

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	r := &Renderer{}
	doc, err := r.Render("Topic A\nKey point", "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if doc.Filename != "detailed_notes.pdf" || doc.MIMEType != "application/pdf" {
		t.Errorf("unexpected file attributes %q %q", doc.Filename, doc.MIMEType)
	}
	if doc.Blocks != 3 {
		t.Errorf("Blocks = %d, want title + 2", doc.Blocks)
	}

	data, err := io.ReadAll(doc.Reader())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
	if len(data) != doc.Len() {
		t.Errorf("reader returned %d bytes, Len() = %d", len(data), doc.Len())
	}

	// A second reader starts from the beginning again.
	again, _ := io.ReadAll(doc.Reader())
	if !bytes.Equal(data, again) {
		t.Error("Reader() is not positioned at the start")
	}
}

func TestRenderTitleOnly(t *testing.T) {
	doc, err := (&Renderer{}).Render("\n \n", "Empty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if doc.Blocks != 1 {
		t.Errorf("Blocks = %d, want 1", doc.Blocks)
	}
}

func TestRenderLongAndUnicodeNotes(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("# Überblick — Zellbiologie\n")
	for i := 0; i < 200; i++ {
		sb.WriteString("- point with café, naïve, “quotes” and a fairly long tail that wraps across the line width of an A4 page\n")
	}
	doc, err := (&Renderer{Author: "go_studynotes"}).Render(sb.String(), "Notes ✓")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if doc.Blocks != 202 {
		t.Errorf("Blocks = %d, want 202", doc.Blocks)
	}
	if doc.Len() == 0 {
		t.Error("empty document")
	}
}
