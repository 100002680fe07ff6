package ingest

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Chunker splits extracted text into overlapping rune windows. Markdown
// documents with enough heading structure are cut at headings first so
// a window never straddles two sections; oversized sections still get
// windowed.
type Chunker struct {
	size    int
	overlap int
	md      goldmark.Markdown
}

func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = 700
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 4
	}
	return &Chunker{size: size, overlap: overlap, md: goldmark.New()}
}

func (c *Chunker) Split(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	sections := c.sections(content)
	if len(sections) < 2 {
		return c.window(content)
	}
	var out []string
	for _, sec := range sections {
		out = append(out, c.window(sec)...)
	}
	return out
}

// sections cuts the document at headings of level 1 to 3. Fewer than
// two headings means no usable structure.
func (c *Chunker) sections(content string) []string {
	source := []byte(content)
	doc := c.md.Parser().Parse(text.NewReader(source))

	var offsets []int
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level > 3 || heading.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}
		start := heading.Lines().At(0).Start
		for start > 0 && source[start-1] != '\n' {
			start--
		}
		offsets = append(offsets, start)
		return ast.WalkContinue, nil
	})
	if len(offsets) < 2 {
		return nil
	}

	var sections []string
	if lead := strings.TrimSpace(content[:offsets[0]]); lead != "" {
		sections = append(sections, lead)
	}
	for i, start := range offsets {
		end := len(source)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		if sec := strings.TrimSpace(content[start:end]); sec != "" {
			sections = append(sections, sec)
		}
	}
	return sections
}

func (c *Chunker) window(content string) []string {
	runes := []rune(content)
	if len(runes) == 0 {
		return nil
	}

	step := c.size - c.overlap
	if step <= 0 {
		step = c.size
	}

	out := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			out = append(out, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return out
}
