// Package pipeline runs one submission: validate the link, summarize the
// video, and for detailed notes compose and render a PDF.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_studynotes/internal/engine"
	"github.com/anatolykoptev/go_studynotes/internal/render"
)

var (
	// ErrBlankLink is returned before any outbound call when the link is blank.
	ErrBlankLink = errors.New("please enter a valid YouTube link")
	// ErrUnknownMode is returned for a mode that is neither summary nor notes.
	ErrUnknownMode = errors.New("unknown output mode")
)

// Mode is the user-selected output style.
type Mode int

const (
	QuickSummary Mode = iota
	DetailedNotes
)

// Display labels, as offered by the form.
const (
	QuickSummaryLabel  = "Quick Summary"
	DetailedNotesLabel = "Detailed PDF Notes"
)

func (m Mode) String() string {
	if m == DetailedNotes {
		return DetailedNotesLabel
	}
	return QuickSummaryLabel
}

// Modes lists the selectable modes in form order.
var Modes = []Mode{QuickSummary, DetailedNotes}

// ParseMode accepts a display label or a short identifier. Empty means QuickSummary.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "quick summary", "quick", "summary":
		return QuickSummary, nil
	case "detailed pdf notes", "detailed", "notes", "pdf":
		return DetailedNotes, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Summarizer produces a free-text summary of the video behind link.
type Summarizer interface {
	Summarize(ctx context.Context, link, mode string) (string, error)
}

// Composer turns a summary into study notes.
type Composer interface {
	Compose(ctx context.Context, summary string) (string, error)
}

// Renderer draws notes into a downloadable document.
type Renderer interface {
	Render(notes, title string) (*render.Document, error)
}

// Request is one form submission.
type Request struct {
	Link  string
	Mode  Mode
	Title string // overrides Pipeline.Title when set
}

// Result carries what the presentation layer shows. Notes and Document are
// set only in DetailedNotes mode.
type Result struct {
	Mode     Mode
	Summary  string
	Notes    string
	Document *render.Document
}

// Pipeline wires the three stages. Stages run strictly in sequence.
type Pipeline struct {
	Summarizer Summarizer
	Composer   Composer
	Renderer   Renderer
	Title      string // document title; empty means render.DefaultTitle
}

// Run validates req and executes the stages its mode needs. Stage errors are
// wrapped with the stage name and returned without retry.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	link := strings.TrimSpace(req.Link)
	if link == "" {
		engine.IncrRejectedSubmissions()
		return nil, ErrBlankLink
	}
	if req.Mode != QuickSummary && req.Mode != DetailedNotes {
		engine.IncrRejectedSubmissions()
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, req.Mode)
	}

	res := &Result{Mode: req.Mode}

	err := engine.TrackOperation(ctx, "summarize", func(ctx context.Context) error {
		summary, err := p.Summarizer.Summarize(ctx, link, req.Mode.String())
		res.Summary = summary
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	slog.Debug("pipeline: summary ready", slog.String("mode", req.Mode.String()), slog.Int("chars", len(res.Summary)))

	if req.Mode == QuickSummary {
		return res, nil
	}

	notes, err := p.Composer.Compose(ctx, res.Summary)
	if err != nil {
		return nil, fmt.Errorf("compose notes: %w", err)
	}
	res.Notes = notes

	title := p.Title
	if req.Title != "" {
		title = req.Title
	}
	doc, err := p.Renderer.Render(notes, title)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	engine.IncrPDFRenders()
	res.Document = doc
	return res, nil
}
