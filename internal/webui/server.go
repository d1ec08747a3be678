// Package webui serves the single-page form and a small JSON/PDF API on top
// of the notes pipeline.
package webui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_studynotes/internal/engine"
	"github.com/anatolykoptev/go_studynotes/internal/pipeline"
)

// Runner executes one submission.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// Config controls the HTTP listener.
type Config struct {
	Port           string
	RateLimitRPS   float64
	RateLimitBurst int
	WriteTimeout   time.Duration
}

// Server is the form UI plus JSON endpoints.
type Server struct {
	runner  Runner
	limiter *rate.Limiter
	cfg     Config
}

// New builds a Server. A non-positive RateLimitRPS disables limiting.
func New(runner Runner, cfg Config) *Server {
	s := &Server{runner: runner, cfg: cfg}
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}
	return s
}

// Router registers all endpoints.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware)

	r.Methods(http.MethodGet).Path("/").Handler(appHandler(s.index))
	r.Methods(http.MethodPost).Path("/generate").Handler(s.limit(appHandler(s.generate)))
	r.Methods(http.MethodPost).Path("/api/summary").Handler(s.limit(appHandler(s.apiSummary)))
	r.Methods(http.MethodPost).Path("/api/notes.pdf").Handler(s.limit(appHandler(s.apiNotesPDF)))
	r.Methods(http.MethodGet).Path("/healthz").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "ok")
	})
	r.Methods(http.MethodGet).Path("/metrics").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, engine.FormatMetrics())
	})
	return r
}

// ListenAndServe blocks until ctx is done or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	writeTimeout := s.cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Minute
	}
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("web ui listening", slog.String("port", s.cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// --- error handling ---

type appHandler func(http.ResponseWriter, *http.Request) error

type appError struct {
	Code    int
	Message string
	Err     error
}

func (e *appError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *appError) Unwrap() error { return e.Err }

func (fn appHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := fn(w, r)
	if err == nil {
		return
	}
	var ae *appError
	if !errors.As(err, &ae) {
		ae = &appError{Code: http.StatusInternalServerError, Message: "internal error", Err: err}
	}
	slog.Warn("request failed",
		slog.String("request_id", requestID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.Int("status", ae.Code),
		slog.Any("error", err))
	http.Error(w, ae.Error(), ae.Code)
}

// statusFor maps pipeline errors to HTTP statuses. Input problems are the
// caller's fault; everything else came from an upstream service.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrBlankLink),
		errors.Is(err, pipeline.ErrUnknownMode):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return 499 // client closed request
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

// --- middleware ---

type ctxKey struct{}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) limit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
