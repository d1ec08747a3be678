// Package render lays study notes out as blocks and draws them into a PDF.
package render

import (
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// DefaultTitle heads every document unless the caller passes one.
const DefaultTitle = "AI Generated Notes"

// BlockKind selects how a block is drawn.
type BlockKind int

const (
	BlockTitle BlockKind = iota
	BlockParagraph
	BlockHeading
	BlockBullet
	BlockRule
)

func (k BlockKind) String() string {
	switch k {
	case BlockTitle:
		return "title"
	case BlockParagraph:
		return "paragraph"
	case BlockHeading:
		return "heading"
	case BlockBullet:
		return "bullet"
	case BlockRule:
		return "rule"
	}
	return "unknown"
}

// Block is one drawable unit: the title or one non-blank input line.
type Block struct {
	Kind   BlockKind
	Level  int    // heading level 1-6, 0 otherwise
	Marker string // list marker for bullets ("•", "3.")
	Text   string
}

// Layout turns notes into a title block followed by one block per non-blank
// line, in input order. Blank and whitespace-only lines produce nothing.
// Markdown line syntax (headings, list items, rules) picks the block style;
// it never merges or splits lines.
func Layout(notes, title string) []Block {
	if title == "" {
		title = DefaultTitle
	}
	blocks := []Block{{Kind: BlockTitle, Text: title}}
	for _, line := range strings.Split(notes, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		blocks = append(blocks, classifyLine(line))
	}
	return blocks
}

// classifyLine parses a single line as markdown and maps its top-level node
// to a block. Anything unrecognized stays a plain paragraph with the raw text.
func classifyLine(line string) Block {
	p := parser.NewWithExtensions(parser.CommonExtensions &^ (parser.MathJax | parser.DefinitionLists))
	doc := markdown.Parse([]byte(line), p)

	children := doc.GetChildren()
	if len(children) == 0 {
		return Block{Kind: BlockParagraph, Text: line}
	}

	b := Block{Kind: BlockParagraph}
	switch n := children[0].(type) {
	case *ast.Heading:
		b.Kind = BlockHeading
		b.Level = n.Level
	case *ast.List:
		b.Kind = BlockBullet
		b.Marker = "•"
		if n.ListFlags&ast.ListTypeOrdered != 0 {
			start := n.Start
			if start == 0 {
				start = 1
			}
			b.Marker = strconv.Itoa(start) + "."
		}
	case *ast.HorizontalRule:
		return Block{Kind: BlockRule}
	}

	b.Text = plainText(children[0])
	if b.Text == "" {
		b.Text = line
		b.Kind = BlockParagraph
		b.Level = 0
		b.Marker = ""
	}
	return b
}

// plainText concatenates the literal text under n, dropping emphasis and
// link markup.
func plainText(n ast.Node) string {
	var sb strings.Builder
	ast.WalkFunc(n, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch v := node.(type) {
		case *ast.Text:
			sb.Write(v.Literal)
		case *ast.Code:
			sb.Write(v.Literal)
		case *ast.Softbreak, *ast.Hardbreak:
			sb.WriteByte(' ')
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(sb.String())
}
