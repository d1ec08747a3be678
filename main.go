// go_studynotes: YouTube lecture summarizer and study-notes PDF generator.
//
// Serves a browser form (link + output type) and exposes the same pipeline
// as two MCP tools: video_summary and study_notes_pdf.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/anatolykoptev/go_studynotes/internal/engine"
	"github.com/anatolykoptev/go_studynotes/internal/notesserver"
	"github.com/anatolykoptev/go_studynotes/internal/pipeline"
	"github.com/anatolykoptev/go_studynotes/internal/render"
	"github.com/anatolykoptev/go_studynotes/internal/study"
	"github.com/anatolykoptev/go_studynotes/internal/webui"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8892")
	webPort = env.Str("WEB_PORT", "8501")
)

func main() {
	initEngine()

	p := &pipeline.Pipeline{
		Summarizer: study.NewSummarizer(),
		Composer:   study.NewComposer(),
		Renderer:   &render.Renderer{Author: "go_studynotes"},
		Title:      env.Str("NOTES_TITLE", render.DefaultTitle),
	}

	slog.Info("starting go_studynotes",
		slog.String("web_port", webPort),
		slog.String("mcp_port", mcpPort),
		slog.String("summary_model", engine.Cfg.SummaryModel),
		slog.String("notes_model", engine.Cfg.NotesModel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui := webui.New(p, webui.Config{
		Port:           webPort,
		RateLimitRPS:   env.Float("RATE_LIMIT_RPS", 1),
		RateLimitBurst: env.Int("RATE_LIMIT_BURST", 3),
		WriteTimeout:   600 * time.Second,
	})
	go func() {
		if err := ui.ListenAndServe(ctx); err != nil {
			slog.Error("web ui failed", slog.Any("error", err))
			stop()
		}
	}()

	if mcpPort == "" || mcpPort == "off" {
		<-ctx.Done()
		return
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_studynotes",
		Version: version,
	}, nil)

	notesserver.RegisterTools(server, p)
	slog.Info("tools registered", slog.Int("count", 2))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_studynotes",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		LLMAPIKey:            env.Str("GROQ_API_KEY", env.Str("LLM_API_KEY", "")),
		LLMAPIKeyFallbacks:   env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", engine.DefaultLLMAPIBase),
		SummaryModel:         env.Str("SUMMARY_MODEL", engine.DefaultSummaryModel),
		NotesModel:           env.Str("NOTES_MODEL", engine.DefaultNotesModel),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.3),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 4096),
		TranscriptMaxChars:   env.Int("TRANSCRIPT_MAX_CHARS", engine.DefaultTranscriptMaxChars),
		TranscriptLangs:      env.List("TRANSCRIPT_LANGS", "en"),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", engine.DefaultFetchTimeout),
		CacheTTL:             env.Duration("CACHE_TTL", 0),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 200),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
	if c.LLMAPIKey == "" {
		slog.Warn("GROQ_API_KEY is not set, model calls will fail")
	}

	var opts []stealth.ClientOption
	opts = append(opts, stealth.WithTimeout(15))

	if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Error("stealth client init failed", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
		slog.Info("stealth browser client initialized")
	}

	c.SummaryLLM = engine.NewLLMClient(c, c.SummaryModel)
	c.NotesLLM = engine.NewLLMClient(c, c.NotesModel)

	engine.Init(c)

	engine.InitCache(env.Str("REDIS_URL", ""), c.CacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
