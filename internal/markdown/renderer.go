package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Renderer converts markdown content to HTML with anchor IDs on headings.
// Anchor assignment runs through the same normalizeHeading/Slugify/uniqueID
// path as ExtractHeadings, so rendered anchors and extracted heading IDs
// always match.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithASTTransformers(
					util.Prioritized(&anchorTransformer{
						minLevel: MinHeadingLevel,
						maxLevel: MaxHeadingLevel,
					}, 100),
				),
			),
		),
	}
}

// Render converts markdown to HTML. Frontmatter should be stripped first.
func (r *Renderer) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// anchorTransformer assigns id attributes to headings within the level
// bounds during parsing, deduping across the whole document.
type anchorTransformer struct {
	minLevel int
	maxLevel int
}

func (t *anchorTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	used := make(map[string]bool)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level < t.minLevel || h.Level > t.maxLevel {
			return ast.WalkSkipChildren, nil
		}

		clean := normalizeHeading(headingText(h, source))
		if clean == "" {
			// Symbols-only heading: no anchor, matching the extractor.
			return ast.WalkSkipChildren, nil
		}

		h.SetAttributeString("id", []byte(uniqueID(Slugify(clean), used)))
		return ast.WalkSkipChildren, nil
	})
}

// headingText collects the plain text of a heading, descending into inline
// containers such as emphasis, code spans, and links so decorated headings
// keep their full label.
func headingText(h *ast.Heading, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
