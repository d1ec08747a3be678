package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	Summaries           atomic.Int64
	Notes               atomic.Int64
	PDFRenders          atomic.Int64
	LLMCalls            atomic.Int64
	LLMErrors           atomic.Int64
	TranscriptRequests  atomic.Int64
	TranscriptErrors    atomic.Int64
	RejectedSubmissions atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"summaries":            metrics.Summaries.Load(),
		"notes":                metrics.Notes.Load(),
		"pdf_renders":          metrics.PDFRenders.Load(),
		"llm_calls":            metrics.LLMCalls.Load(),
		"llm_errors":           metrics.LLMErrors.Load(),
		"transcript_requests":  metrics.TranscriptRequests.Load(),
		"transcript_errors":    metrics.TranscriptErrors.Load(),
		"rejected_submissions": metrics.RejectedSubmissions.Load(),
		"cache_hits":           hits,
		"cache_misses":         misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"summaries", "notes", "pdf_renders",
		"llm_calls", "llm_errors",
		"transcript_requests", "transcript_errors",
		"rejected_submissions",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sub-packages.
func IncrSummaries()           { metrics.Summaries.Add(1) }
func IncrNotes()               { metrics.Notes.Add(1) }
func IncrPDFRenders()          { metrics.PDFRenders.Add(1) }
func IncrTranscriptRequests()  { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptErrors()    { metrics.TranscriptErrors.Add(1) }
func IncrRejectedSubmissions() { metrics.RejectedSubmissions.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 30*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
