package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	SummaryModel       string
	NotesModel         string
	LLMTemperature     float64
	LLMMaxTokens       int

	TranscriptMaxChars int
	TranscriptLangs    []string
	FetchTimeout       time.Duration

	CacheTTL             time.Duration // 0 = transcript cache disabled
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	HTTPClient    *http.Client
	BrowserClient *BrowserClient // nil = plain HTTP only for watch pages

	SummaryLLM *llm.Client // agent model
	NotesLLM   *llm.Client // note composer model
}

// Defaults used when a Config field is left zero.
const (
	DefaultLLMAPIBase         = "https://api.groq.com/openai/v1"
	DefaultSummaryModel       = "meta-llama/llama-4-scout-17b-16e-instruct"
	DefaultNotesModel         = "llama-3.3-70b-versatile"
	DefaultTranscriptMaxChars = 12000
	DefaultFetchTimeout       = 20 * time.Second
)

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, study).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.LLMAPIBase == "" {
		c.LLMAPIBase = DefaultLLMAPIBase
	}
	if c.SummaryModel == "" {
		c.SummaryModel = DefaultSummaryModel
	}
	if c.NotesModel == "" {
		c.NotesModel = DefaultNotesModel
	}
	if c.TranscriptMaxChars <= 0 {
		c.TranscriptMaxChars = DefaultTranscriptMaxChars
	}
	if len(c.TranscriptLangs) == 0 {
		c.TranscriptLangs = []string{"en"}
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.FetchTimeout}
	}
	cfg = c
	Cfg = &cfg
}

// NewLLMClient builds an OpenAI-compatible chat client for model using the
// shared credentials and sampling parameters of c.
func NewLLMClient(c Config, model string) *llm.Client {
	return llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, model,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(&http.Client{Timeout: 120 * time.Second}),
	)
}
