// Package study turns a video into study material: the Summarizer plays the
// captions-aware agent, the Composer turns a summary into structured notes.
package study

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_studynotes/internal/engine"
	"github.com/anatolykoptev/go_studynotes/internal/engine/sources"
)

// VideoSource is the agent's captions & metadata tool.
type VideoSource interface {
	FetchVideo(ctx context.Context, link string) (engine.VideoData, error)
}

// Summarizer asks a chat model, primed with the video's captions and
// metadata, for a summary of the requested kind.
type Summarizer struct {
	Video              VideoSource
	LLM                engine.Completer
	TranscriptMaxChars int
}

// NewSummarizer wires the YouTube tool and the summary model from engine.Cfg.
func NewSummarizer() *Summarizer {
	return &Summarizer{
		Video:              sources.YouTube{},
		LLM:                engine.ClientCompleter(engine.Cfg.SummaryLLM),
		TranscriptMaxChars: engine.Cfg.TranscriptMaxChars,
	}
}

// Summarize returns the agent's free-text answer for link. mode only shapes
// the wording of the instruction ("quick summary", "detailed pdf notes").
//
// A failing video tool does not fail the call: its error is handed to the
// model as tool output and the model still answers. The caption fetch itself
// retries transient HTTP statuses; the model call is made exactly once and
// its error is returned as is.
func (s *Summarizer) Summarize(ctx context.Context, link, mode string) (string, error) {
	var toolOutput string
	video, err := s.Video.FetchVideo(ctx, link)
	switch {
	case err != nil:
		slog.Warn("summarizer: video tool failed, passing error to model",
			slog.String("link", link), slog.Any("error", err))
		toolOutput = fmt.Sprintf("(tool error: %v)", err)
	case video.Transcript == "":
		slog.Warn("summarizer: no captions, summarizing from metadata",
			slog.String("id", video.ID), slog.String("title", video.Title))
		fallthrough
	default:
		toolOutput = sources.FormatVideoData(video, s.TranscriptMaxChars)
	}

	out, err := s.LLM(ctx, engine.SummarizerDescription, buildPrompt(link, mode, toolOutput))
	if err != nil {
		return "", fmt.Errorf("summary model: %w", err)
	}
	engine.IncrSummaries()
	return engine.CleanReply(out), nil
}

// SummaryPrompt builds the agent instruction followed by the tool output.
func SummaryPrompt(link, mode string, video engine.VideoData, maxChars int) string {
	return buildPrompt(link, mode, sources.FormatVideoData(video, maxChars))
}

func buildPrompt(link, mode, toolOutput string) string {
	instruction := fmt.Sprintf(engine.SummarizerInstruction, strings.ToLower(mode), link)
	return instruction + fmt.Sprintf(engine.VideoToolBlock, toolOutput)
}
