// Package markdown renders content bodies to HTML and extracts the
// presentation metadata (headings, excerpt, reading time) templates need.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// wordsPerMinute is the usual estimate for prose reading speed.
const wordsPerMinute = 200

// Heading is an anchor collected for table-of-contents rendering.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Document is the rendered form of a markdown body.
type Document struct {
	HTML        template.HTML
	Headings    []Heading
	Excerpt     string
	WordCount   int
	ReadingTime int // minutes, at least 1 for non-empty bodies
}

// Renderer wraps a configured goldmark instance. Safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds the site renderer: GFM tables/strikethrough/autolinks,
// auto heading IDs, and raw HTML passthrough so MDX-style posts that embed
// plain HTML blocks keep working.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithUnsafe(),
			),
		),
	}
}

// Render converts a markdown body (without front matter) to HTML.
func (r *Renderer) Render(src []byte) (Document, error) {
	reader := text.NewReader(src)
	root := r.md.Parser().Parse(reader)

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, root); err != nil {
		return Document{}, fmt.Errorf("failed to render markdown: %w", err)
	}

	doc := Document{
		HTML:      template.HTML(buf.String()),
		Headings:  collectHeadings(root, src),
		Excerpt:   firstParagraph(root, src),
		WordCount: len(strings.Fields(string(src))),
	}
	if doc.WordCount > 0 {
		doc.ReadingTime = (doc.WordCount + wordsPerMinute - 1) / wordsPerMinute
	}
	return doc, nil
}

// SplitFrontMatter separates the YAML front matter block from the markdown
// body, decoding it into meta. A document without front matter is returned
// unchanged with meta untouched.
func SplitFrontMatter(src []byte, meta any) ([]byte, error) {
	body, err := frontmatter.Parse(bytes.NewReader(src), meta)
	if err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}
	return body, nil
}

func collectHeadings(root ast.Node, src []byte) []Heading {
	var headings []Heading
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		id := ""
		if v, found := h.AttributeString("id"); found {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		headings = append(headings, Heading{
			Level: h.Level,
			ID:    id,
			Text:  plainText(h, src),
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// firstParagraph returns the plain text of the first top-level paragraph,
// used as the excerpt when a post declares no description.
func firstParagraph(root ast.Node, src []byte) string {
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if p, ok := n.(*ast.Paragraph); ok {
			return plainText(p, src)
		}
	}
	return ""
}

func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// Truncate shortens s to at most limit runes on a word boundary, appending an
// ellipsis when anything was cut.
func Truncate(s string, limit int) string {
	if limit <= 0 || len([]rune(s)) <= limit {
		return s
	}
	runes := []rune(s)[:limit]
	cut := strings.LastIndexByte(string(runes), ' ')
	if cut > 0 {
		return string(runes)[:cut] + "…"
	}
	return string(runes) + "…"
}
