package webui

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/anatolykoptev/go_studynotes/internal/pipeline"
)

const maxRequestSize = 1 << 20

func (s *Server) index(w http.ResponseWriter, r *http.Request) error {
	return renderPage(w, http.StatusOK, newPage("", pipeline.QuickSummary))
}

// generate handles the form submission. A blank link re-renders the form with
// a warning; no pipeline stage runs.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
	if err := r.ParseForm(); err != nil {
		return &appError{Code: http.StatusBadRequest, Message: "invalid form", Err: err}
	}
	link := r.PostFormValue("link")

	mode, err := pipeline.ParseMode(r.PostFormValue("mode"))
	if err != nil {
		page := newPage(link, pipeline.QuickSummary)
		page.Error = "Please choose an output type."
		return renderPage(w, http.StatusBadRequest, page)
	}
	page := newPage(link, mode)

	res, err := s.runner.Run(r.Context(), pipeline.Request{Link: link, Mode: mode})
	if err != nil {
		status := statusFor(err)
		if errors.Is(err, pipeline.ErrBlankLink) {
			page.Error = "Please enter a valid YouTube link."
		} else {
			page.Error = err.Error()
		}
		slog.Warn("generate failed",
			slog.String("request_id", requestID(r.Context())),
			slog.Int("status", status),
			slog.Any("error", err))
		return renderPage(w, status, page)
	}

	slog.Info("generated",
		slog.String("request_id", requestID(r.Context())),
		slog.String("mode", mode.String()))

	switch res.Mode {
	case pipeline.DetailedNotes:
		page.Notes = res.Notes
		page.Filename = res.Document.Filename
		page.PDFDataURI = template.URL("data:" + res.Document.MIMEType + ";base64," +
			base64.StdEncoding.EncodeToString(res.Document.Bytes()))
	default:
		page.SummaryHTML = markdownToHTML(res.Summary)
	}
	return renderPage(w, http.StatusOK, page)
}

type summaryRequest struct {
	Link  string `json:"link"`
	Mode  string `json:"mode"`
	Title string `json:"title,omitempty"`
}

type summaryResponse struct {
	Mode    string `json:"mode"`
	Summary string `json:"summary"`
	Notes   string `json:"notes,omitempty"`
}

func (s *Server) apiSummary(w http.ResponseWriter, r *http.Request) error {
	var in summaryRequest
	if err := parse(w, r, &in); err != nil {
		return &appError{Code: http.StatusBadRequest, Message: "invalid JSON body", Err: err}
	}
	mode, err := pipeline.ParseMode(in.Mode)
	if err != nil {
		return &appError{Code: http.StatusBadRequest, Message: "invalid mode", Err: err}
	}
	res, err := s.runner.Run(r.Context(), pipeline.Request{Link: in.Link, Mode: mode})
	if err != nil {
		return &appError{Code: statusFor(err), Message: "summary failed", Err: err}
	}
	return response(w, http.StatusOK, summaryResponse{
		Mode:    res.Mode.String(),
		Summary: res.Summary,
		Notes:   res.Notes,
	})
}

func (s *Server) apiNotesPDF(w http.ResponseWriter, r *http.Request) error {
	var in summaryRequest
	if err := parse(w, r, &in); err != nil {
		return &appError{Code: http.StatusBadRequest, Message: "invalid JSON body", Err: err}
	}
	res, err := s.runner.Run(r.Context(), pipeline.Request{Link: in.Link, Mode: pipeline.DetailedNotes, Title: in.Title})
	if err != nil {
		return &appError{Code: statusFor(err), Message: "notes failed", Err: err}
	}

	doc := res.Document
	w.Header().Set("Content-Type", doc.MIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(doc.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, doc.Reader()); err != nil {
		slog.Debug("pdf write interrupted",
			slog.String("request_id", requestID(r.Context())), slog.Any("error", err))
	}
	return nil
}

// parse decodes the request body as JSON.
func parse(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
	return json.NewDecoder(r.Body).Decode(data)
}

// response writes data as JSON.
func response(w http.ResponseWriter, status int, data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	return err
}
