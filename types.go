package docmark

import (
	"fmt"
	"log/slog"

	"github.com/alnah/go-docmark/internal/pipeline"
)

// Pipeline types re-exported for library users.
type (
	// Heading is one table-of-contents record.
	Heading = pipeline.Heading
	// Diagnostic describes input the pipeline degraded gracefully on.
	Diagnostic = pipeline.Diagnostic
	// Transform rewrites one component element in place.
	Transform = pipeline.Transform
	// TransformContext is passed to every Transform call.
	TransformContext = pipeline.TransformContext
	// Tab describes one tab of a tabs component.
	Tab = pipeline.Tab
	// CodeBlock is a code block summarized by the frameworks construct.
	CodeBlock = pipeline.CodeBlock
	// Output is what TransformTree reports besides the rewritten tree.
	Output = pipeline.Output
)

// Input is one document to convert. Exactly one of Markdown and HTML is set.
type Input struct {
	Markdown string // markdown source, may start with YAML front matter
	HTML     string // pre-rendered HTML fragment or document

	// Headings, when non-nil, accumulates heading records across several
	// Convert calls (for example the sections of one composite page).
	// Do not share one accumulator between concurrent conversions.
	Headings *[]Heading
}

// Result is a converted document.
type Result struct {
	HTML        string
	Headings    []Heading      // accumulator contents after this document
	FrontMatter map[string]any // nil when the markdown had no front matter
	Diagnostics []Diagnostic
	TOC         string // rendered TOC, empty unless WithTOC is set
}

// TOC configures the rendered table of contents.
type TOC struct {
	Title     string // empty = no title
	MinDepth  int    // 1-6, 0 = default (2)
	MaxDepth  int    // 1-6, 0 = default (3)
	Framework string // only list headings untagged or tagged with this framework
}

// Validate checks depth bounds. A nil TOC is valid.
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	if t.MinDepth < 0 || t.MinDepth > 6 {
		return fmt.Errorf("%w: minDepth must be 0-6, got %d", ErrInvalidTOCDepth, t.MinDepth)
	}
	if t.MaxDepth < 0 || t.MaxDepth > 6 {
		return fmt.Errorf("%w: maxDepth must be 0-6, got %d", ErrInvalidTOCDepth, t.MaxDepth)
	}
	if t.MinDepth > 0 && t.MaxDepth > 0 && t.MinDepth > t.MaxDepth {
		return fmt.Errorf("%w: minDepth (%d) > maxDepth (%d)", ErrInvalidTOCDepth, t.MinDepth, t.MaxDepth)
	}
	return nil
}

func (t *TOC) options() pipeline.TOCOptions {
	return pipeline.TOCOptions{
		Title:     t.Title,
		MinDepth:  t.MinDepth,
		MaxDepth:  t.MaxDepth,
		Framework: t.Framework,
	}
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger mirrors diagnostics and conversion events to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithTransform registers fn for the named construct, replacing a built-in
// with the same name. A nil fn disables the construct: its components pass
// through untransformed.
func WithTransform(name string, fn Transform) Option {
	return func(c *Converter) {
		c.dispatcher.Register(name, fn)
	}
}

// WithHighlighting highlights code blocks with the named chroma style.
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.highlighter = pipeline.NewHighlighter(style)
	}
}

// WithTOC renders a numbered table of contents into Result.TOC.
// Panics if toc has invalid depth bounds.
func WithTOC(toc TOC) Option {
	if err := toc.Validate(); err != nil {
		panic("docmark: WithTOC: " + err.Error())
	}
	return func(c *Converter) {
		c.toc = &toc
	}
}

// WithWorkers bounds the parallelism of ConvertAll. Zero or less selects
// a size from GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.workers = n
	}
}

// WithLinkRewriting points relative links to .md sources at .html pages.
func WithLinkRewriting() Option {
	return func(c *Converter) {
		c.rewriteLinks = true
	}
}
