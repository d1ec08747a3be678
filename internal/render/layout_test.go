package render

import (
	"testing"
)

func TestLayoutOneBlockPerNonBlankLine(t *testing.T) {
	notes := "Topic A\n\n   \nKey point\n\t\nLast line  "
	blocks := Layout(notes, "My Notes")

	want := []Block{
		{Kind: BlockTitle, Text: "My Notes"},
		{Kind: BlockParagraph, Text: "Topic A"},
		{Kind: BlockParagraph, Text: "Key point"},
		{Kind: BlockParagraph, Text: "Last line"},
	}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d: %+v", len(blocks), len(want), blocks)
	}
	for i := range want {
		if blocks[i] != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, blocks[i], want[i])
		}
	}
}

func TestLayoutBlankInput(t *testing.T) {
	for _, notes := range []string{"", "\n", "  \n\t\n \r\n"} {
		blocks := Layout(notes, "")
		if len(blocks) != 1 {
			t.Errorf("Layout(%q) = %d blocks, want title only", notes, len(blocks))
			continue
		}
		if blocks[0].Kind != BlockTitle || blocks[0].Text != DefaultTitle {
			t.Errorf("Layout(%q) title = %+v", notes, blocks[0])
		}
	}
}

func TestLayoutMarkdownLines(t *testing.T) {
	notes := "# Cell Biology\n" +
		"## Organelles\n" +
		"- **Mitochondria**: powerhouse\n" +
		"* Ribosome\n" +
		"1. Golgi `apparatus`\n" +
		"---\n" +
		"Plain *emphasis* and [a link](https://example.com)\n" +
		"**Exam Questions**"
	blocks := Layout(notes, "")

	want := []Block{
		{Kind: BlockTitle, Text: DefaultTitle},
		{Kind: BlockHeading, Level: 1, Text: "Cell Biology"},
		{Kind: BlockHeading, Level: 2, Text: "Organelles"},
		{Kind: BlockBullet, Marker: "•", Text: "Mitochondria: powerhouse"},
		{Kind: BlockBullet, Marker: "•", Text: "Ribosome"},
		{Kind: BlockBullet, Marker: "1.", Text: "Golgi apparatus"},
		{Kind: BlockRule},
		{Kind: BlockParagraph, Text: "Plain emphasis and a link"},
		{Kind: BlockParagraph, Text: "Exam Questions"},
	}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d: %+v", len(blocks), len(want), blocks)
	}
	for i := range want {
		if blocks[i] != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, blocks[i], want[i])
		}
	}
}

func TestLayoutDefinitionSyntaxIsParagraph(t *testing.T) {
	blocks := Layout("Term\n: definition", "")
	want := []Block{
		{Kind: BlockTitle, Text: DefaultTitle},
		{Kind: BlockParagraph, Text: "Term"},
		{Kind: BlockParagraph, Text: ": definition"},
	}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d: %+v", len(blocks), len(want), blocks)
	}
	for i := range want {
		if blocks[i] != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, blocks[i], want[i])
		}
	}
}

func TestBlockKindString(t *testing.T) {
	if BlockBullet.String() != "bullet" || BlockKind(42).String() != "unknown" {
		t.Error("unexpected BlockKind names")
	}
}
