package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_studynotes/internal/render"
)

// trace records stage invocations in order.
type trace struct {
	calls []string
}

type fakeSummarizer struct {
	t       *trace
	summary string
	err     error
	links   []string
	modes   []string
}

func (f *fakeSummarizer) Summarize(_ context.Context, link, mode string) (string, error) {
	f.t.calls = append(f.t.calls, "summarize")
	f.links = append(f.links, link)
	f.modes = append(f.modes, mode)
	return f.summary, f.err
}

type fakeComposer struct {
	t         *trace
	notes     string
	err       error
	summaries []string
}

func (f *fakeComposer) Compose(_ context.Context, summary string) (string, error) {
	f.t.calls = append(f.t.calls, "compose")
	f.summaries = append(f.summaries, summary)
	return f.notes, f.err
}

type recordingRenderer struct {
	t      *trace
	inner  render.Renderer
	err    error
	notes  []string
	titles []string
}

func (f *recordingRenderer) Render(notes, title string) (*render.Document, error) {
	f.t.calls = append(f.t.calls, "render")
	f.notes = append(f.notes, notes)
	f.titles = append(f.titles, title)
	if f.err != nil {
		return nil, f.err
	}
	return f.inner.Render(notes, title)
}

func newFakes(summary, notes string) (*trace, *fakeSummarizer, *fakeComposer, *recordingRenderer, *Pipeline) {
	tr := &trace{}
	s := &fakeSummarizer{t: tr, summary: summary}
	c := &fakeComposer{t: tr, notes: notes}
	r := &recordingRenderer{t: tr}
	return tr, s, c, r, &Pipeline{Summarizer: s, Composer: c, Renderer: r}
}

func TestRunBlankLink(t *testing.T) {
	for _, link := range []string{"", " ", "\t\n", "   \r\n  "} {
		for _, mode := range Modes {
			tr, _, _, _, p := newFakes("s", "n")
			res, err := p.Run(context.Background(), Request{Link: link, Mode: mode})
			require.ErrorIs(t, err, ErrBlankLink, "link %q mode %s", link, mode)
			assert.Nil(t, res)
			assert.Empty(t, tr.calls, "no stage may run for a blank link")
		}
	}
}

func TestRunQuickSummary(t *testing.T) {
	summaries := []string{"short", "# Heading\n- a\n- b", ""}
	for _, summary := range summaries {
		tr, s, c, r, p := newFakes(summary, "unused")
		res, err := p.Run(context.Background(), Request{Link: "https://www.youtube.com/watch?v=abc123", Mode: QuickSummary})
		require.NoError(t, err)

		assert.Equal(t, []string{"summarize"}, tr.calls)
		assert.Equal(t, summary, res.Summary)
		assert.Empty(t, res.Notes)
		assert.Nil(t, res.Document, "no file is offered in quick summary mode")
		assert.Empty(t, c.summaries)
		assert.Empty(t, r.notes)
		assert.Equal(t, []string{"Quick Summary"}, s.modes)
	}
}

func TestRunDetailedNotes(t *testing.T) {
	tr, s, c, r, p := newFakes("Topic A\nKey point", "Topic A\nKey point")
	link := "https://www.youtube.com/watch?v=abc123"

	res, err := p.Run(context.Background(), Request{Link: "  " + link + " ", Mode: DetailedNotes})
	require.NoError(t, err)

	assert.Equal(t, []string{"summarize", "compose", "render"}, tr.calls)
	assert.Equal(t, []string{link}, s.links, "link is trimmed before summarizing")
	assert.Equal(t, []string{"Detailed PDF Notes"}, s.modes)
	assert.Equal(t, []string{"Topic A\nKey point"}, c.summaries, "composer receives exactly the summary")
	assert.Equal(t, []string{"Topic A\nKey point"}, r.notes)
	assert.Equal(t, []string{""}, r.titles)

	require.NotNil(t, res.Document)
	assert.Equal(t, 3, res.Document.Blocks, "title + two body paragraphs")
	assert.Equal(t, "detailed_notes.pdf", res.Document.Filename)
	assert.Equal(t, "application/pdf", res.Document.MIMEType)
	assert.Equal(t, "Topic A\nKey point", res.Notes)
}

func TestRunStageErrors(t *testing.T) {
	boom := errors.New("upstream 503")

	t.Run("summarizer", func(t *testing.T) {
		tr, s, _, _, p := newFakes("", "")
		s.err = boom
		_, err := p.Run(context.Background(), Request{Link: "x", Mode: DetailedNotes})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"summarize"}, tr.calls)
	})

	t.Run("composer", func(t *testing.T) {
		tr, _, c, _, p := newFakes("s", "")
		c.err = boom
		_, err := p.Run(context.Background(), Request{Link: "x", Mode: DetailedNotes})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"summarize", "compose"}, tr.calls)
	})

	t.Run("renderer", func(t *testing.T) {
		tr, _, _, r, p := newFakes("s", "n")
		r.err = boom
		_, err := p.Run(context.Background(), Request{Link: "x", Mode: DetailedNotes})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"summarize", "compose", "render"}, tr.calls)
	})

	t.Run("unknown mode", func(t *testing.T) {
		tr, _, _, _, p := newFakes("s", "n")
		_, err := p.Run(context.Background(), Request{Link: "x", Mode: Mode(7)})
		require.ErrorIs(t, err, ErrUnknownMode)
		assert.Empty(t, tr.calls)
	})
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", QuickSummary, false},
		{"Quick Summary", QuickSummary, false},
		{"quick", QuickSummary, false},
		{"Detailed PDF Notes", DetailedNotes, false},
		{" NOTES ", DetailedNotes, false},
		{"pdf", DetailedNotes, false},
		{"video", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownMode, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, mustParse(t, got.String()), "String() round-trips")
	}
}

func mustParse(t *testing.T, s string) Mode {
	t.Helper()
	m, err := ParseMode(s)
	require.NoError(t, err)
	return m
}

func TestRunTitleOverride(t *testing.T) {
	_, _, _, r, p := newFakes("summary", "notes")
	p.Title = "Biology 101"

	_, err := p.Run(context.Background(), Request{Link: "https://youtu.be/abcdefghijk", Mode: DetailedNotes})
	require.NoError(t, err)
	_, err = p.Run(context.Background(), Request{Link: "https://youtu.be/abcdefghijk", Mode: DetailedNotes, Title: "Lecture 3"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Biology 101", "Lecture 3"}, r.titles)
}
