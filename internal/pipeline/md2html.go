package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions.
//
// Raw HTML is passed through: annotation comments and hand-written markup
// in documentation sources must reach the tree untouched. Heading ids are
// not generated here; explicit {#id} attributes are kept and the heading
// collector assigns the rest.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
		),
		goldmark.WithParserOptions(
			parser.WithAttribute(), // ## Heading {#custom-id}
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(newCodeBlockRenderer(), 100),
			),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Goldmark has no context support, so rendering runs in a goroutine and the
// caller stops waiting when ctx is done.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type rendered struct {
		fragment string
		err      error
	}
	out := make(chan rendered, 1)

	go func() {
		var buf bytes.Buffer
		err := c.md.Convert([]byte(content), &buf)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrHTMLConversion, err)
		}
		out <- rendered{fragment: buf.String(), err: err}
	}()

	select {
	case r := <-out:
		if r.err != nil {
			return "", r.err
		}
		return r.fragment, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
