package engine

// --- Video data tool ---

// VideoData is what the captions & metadata tool knows about one video.
type VideoData struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Title         string `json:"title,omitempty"`
	Author        string `json:"author,omitempty"`
	Description   string `json:"description,omitempty"`
	LengthSeconds int    `json:"length_seconds,omitempty"`
	Transcript    string `json:"transcript,omitempty"`
}

// --- MCP tool inputs ---

type VideoSummaryInput struct {
	URL  string `json:"url" jsonschema:"YouTube video link"`
	Mode string `json:"mode,omitempty" jsonschema:"Output type: Quick Summary (default) or Detailed PDF Notes"`
}

type StudyNotesPDFInput struct {
	URL   string `json:"url" jsonschema:"YouTube video link"`
	Title string `json:"title,omitempty" jsonschema:"Document title (default: AI Generated Notes)"`
}

// --- Output types (JSON responses) ---

type VideoSummaryOutput struct {
	Mode    string `json:"mode"`
	Summary string `json:"summary"`
	Notes   string `json:"notes,omitempty"`
}

type StudyNotesPDFOutput struct {
	Notes     string `json:"notes"`
	Filename  string `json:"filename"`
	MIMEType  string `json:"mime_type"`
	PDFBase64 string `json:"pdf_base64"`
}
