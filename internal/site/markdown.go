package site

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// RenderHTML converts a markdown body into HTML for the web page
func RenderHTML(body string) (template.HTML, error) {
	if strings.TrimSpace(body) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	// #nosec G203 - goldmark escapes raw HTML unless WithUnsafe is set
	return template.HTML(buf.String()), nil
}

// Paragraphs flattens a markdown body into plain-text paragraphs for the
// terminal browser. Inline markup is dropped and soft line breaks become
// spaces. Headings and list items count as paragraphs of their own.
func Paragraphs(body string) []string {
	src := []byte(body)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var paragraphs []string
	// The walk callback never fails
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindParagraph, ast.KindTextBlock, ast.KindHeading:
			if p := plainText(n, src); p != "" {
				paragraphs = append(paragraphs, p)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return paragraphs
}

// plainText joins the text segments below a block node
func plainText(block ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(block, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(src))
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(n.Value)
		case *ast.AutoLink:
			b.Write(n.Label(src))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
