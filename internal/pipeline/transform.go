package pipeline

import (
	"log/slog"

	"golang.org/x/net/html"
)

// Options configures one TransformTree run.
type Options struct {
	// Dispatcher resolves constructs; nil uses NewDispatcher().
	Dispatcher *Dispatcher
	// Headings, when non-nil, is appended to in place so several documents
	// can share one table of contents.
	Headings *[]Heading
	// Highlighter, when non-nil, highlights code blocks after collection.
	Highlighter *Highlighter
	// RewriteLinks points relative .md links at .html pages.
	RewriteLinks bool
	// Logger mirrors diagnostics; nil only collects them.
	Logger *slog.Logger
}

// Output is what a TransformTree run reports besides the rewritten tree.
type Output struct {
	Headings    []Heading
	Diagnostics []Diagnostic
}

// TransformTree runs every stage on root, in order: marker recognition,
// construct dispatch, heading collection, then the optional highlighting
// and link rewriting. It never fails; degraded input is reported through
// diagnostics.
func TransformTree(root *html.Node, opts Options) Output {
	diags := NewDiagnostics(opts.Logger)

	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = NewDispatcher()
	}

	RecognizeMarkers(root, diags)
	dispatcher.Dispatch(root, diags)
	headings := CollectHeadings(root, opts.Headings)

	if opts.Highlighter != nil {
		opts.Highlighter.Highlight(root, diags)
	}
	if opts.RewriteLinks {
		RewriteMarkdownLinks(root)
	}

	return Output{Headings: headings, Diagnostics: diags.List()}
}

// TransformHTML parses markup, transforms it and serializes it back.
func TransformHTML(content string, opts Options) (string, Output, error) {
	root, isFragment, err := ParseTree(content)
	if err != nil {
		return "", Output{}, err
	}

	out := TransformTree(root, opts)

	rendered, err := RenderTree(root, isFragment)
	if err != nil {
		return "", Output{}, err
	}
	return rendered, out, nil
}
