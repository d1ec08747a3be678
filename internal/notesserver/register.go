// Package notesserver exposes the notes pipeline as MCP tools.
package notesserver

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_studynotes/internal/engine"
	"github.com/anatolykoptev/go_studynotes/internal/pipeline"
)

// Runner executes one submission.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// RegisterTools registers video_summary and study_notes_pdf on server.
func RegisterTools(server *mcp.Server, runner Runner) {
	registerVideoSummary(server, runner)
	registerStudyNotesPDF(server, runner)
}

func registerVideoSummary(server *mcp.Server, runner Runner) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_summary",
		Description: "Summarize a YouTube lecture for students from its captions and metadata. Mode \"Quick Summary\" (default) returns a concise summary with key points, definitions and 2-5 exam questions; \"Detailed PDF Notes\" additionally returns structured study notes (topics, subtopics, key points, exam questions).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoSummaryInput) (*mcp.CallToolResult, engine.VideoSummaryOutput, error) {
		mode, err := pipeline.ParseMode(input.Mode)
		if err != nil {
			return nil, engine.VideoSummaryOutput{}, err
		}
		res, err := runner.Run(ctx, pipeline.Request{Link: input.URL, Mode: mode})
		if err != nil {
			return nil, engine.VideoSummaryOutput{}, err
		}
		return nil, engine.VideoSummaryOutput{
			Mode:    res.Mode.String(),
			Summary: res.Summary,
			Notes:   res.Notes,
		}, nil
	})
}

func registerStudyNotesPDF(server *mcp.Server, runner Runner) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "study_notes_pdf",
		Description: "Generate detailed study notes for a YouTube lecture and render them as an A4 PDF (detailed_notes.pdf). Returns the notes text and the PDF as base64.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.StudyNotesPDFInput) (*mcp.CallToolResult, engine.StudyNotesPDFOutput, error) {
		if input.URL == "" {
			return nil, engine.StudyNotesPDFOutput{}, errors.New("url is required")
		}
		res, err := runner.Run(ctx, pipeline.Request{
			Link:  input.URL,
			Mode:  pipeline.DetailedNotes,
			Title: input.Title,
		})
		if err != nil {
			return nil, engine.StudyNotesPDFOutput{}, err
		}
		return nil, engine.StudyNotesPDFOutput{
			Notes:     res.Notes,
			Filename:  res.Document.Filename,
			MIMEType:  res.Document.MIMEType,
			PDFBase64: base64.StdEncoding.EncodeToString(res.Document.Bytes()),
		}, nil
	})
}
