package webui

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/anatolykoptev/go_studynotes/internal/pipeline"
)

type modeOption struct {
	Label    string
	Selected bool
}

type pageData struct {
	Link        string
	Modes       []modeOption
	Error       string
	SummaryHTML template.HTML
	Notes       string
	PDFDataURI  template.URL
	Filename    string
}

func newPage(link string, selected pipeline.Mode) pageData {
	p := pageData{Link: link}
	for _, m := range pipeline.Modes {
		p.Modes = append(p.Modes, modeOption{Label: m.String(), Selected: m == selected})
	}
	return p
}

func renderPage(w http.ResponseWriter, status int, p pageData) error {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, p); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// markdownToHTML renders model output for display. Raw HTML in the input is
// dropped and links are restricted to safe schemes.
func markdownToHTML(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML | mdhtml.Safelink | mdhtml.HrefTargetBlank,
	})
	return template.HTML(markdown.ToHTML([]byte(md), p, r)) //nolint:gosec // raw HTML skipped by renderer
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>YouTube Study Summarizer</title>
<style>
body{font-family:sans-serif;max-width:46rem;margin:2rem auto;padding:0 1rem}
h1,.sub{text-align:center}.sub{color:gray}
.err{color:#b00020}
button{background:#4CAF50;border:none;color:#fff;padding:12px 20px;font-size:16px;border-radius:12px;cursor:pointer}
button:hover{background:#45a049}
input[type=url]{width:100%;padding:.5rem}
textarea{width:100%;height:300px}
</style>
</head>
<body>
<h1>YouTube Study Summarizer</h1>
<p class="sub">Turn long lectures into short, exam-ready notes</p>
<form method="post" action="/generate">
<p><label>Paste YouTube video link here<br>
<input type="url" name="link" value="{{.Link}}" placeholder="https://www.youtube.com/watch?v=..."></label></p>
<p><label>Choose output type:
<select name="mode">{{range .Modes}}<option{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select></label></p>
<p><button type="submit">Generate Summary</button></p>
</form>
{{with .Error}}<p class="err" role="alert">&#9888; {{.}}</p>{{end}}
{{if .SummaryHTML}}<section id="summary"><h2>Quick Summary</h2>{{.SummaryHTML}}</section>{{end}}
{{if .PDFDataURI}}<section id="notes"><h3>Detailed Notes</h3>
<textarea readonly aria-label="Notes">{{.Notes}}</textarea>
<p><a id="download" href="{{.PDFDataURI}}" download="{{.Filename}}">Download PDF</a></p>
</section>{{end}}
</body>
</html>
`))
