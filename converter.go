package docmark

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-docmark/internal/logfields"
	"github.com/alnah/go-docmark/internal/pipeline"
	"github.com/alnah/go-docmark/internal/yamlutil"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
)

// Converter runs the extended-markdown pipeline.
// A Converter is safe for concurrent use once created.
type Converter struct {
	logger        *slog.Logger
	dispatcher    *pipeline.Dispatcher
	highlighter   *pipeline.Highlighter
	toc           *TOC
	workers       int
	rewriteLinks  bool
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
}

// NewConverter creates a Converter with the built-in constructs registered.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		dispatcher:    pipeline.NewDispatcher(),
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert runs the full pipeline on one document.
// Markdown input has its front matter split off, is preprocessed and
// rendered to HTML; HTML input starts at tree building. The context is
// checked between stages.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}
	start := time.Now()

	res := &Result{}
	content := input.HTML
	if input.Markdown != "" {
		content, res.FrontMatter, err = c.renderMarkdown(ctx, input.Markdown)
		if err != nil {
			return nil, err
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	rendered, out, err := pipeline.TransformHTML(content, c.pipelineOptions(input.Headings))
	if err != nil {
		return nil, fmt.Errorf("transforming HTML: %w", err)
	}

	res.HTML = rendered
	res.Headings = out.Headings
	res.Diagnostics = out.Diagnostics
	if c.toc != nil {
		res.TOC = pipeline.RenderTOC(out.Headings, c.toc.options())
	}

	if c.logger != nil {
		c.logger.LogAttrs(ctx, slog.LevelDebug, "document converted",
			logfields.Headings(len(res.Headings)),
			logfields.Diagnostics(len(res.Diagnostics)),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000),
		)
	}
	return res, nil
}

// renderMarkdown turns markdown source into an HTML fragment.
func (c *Converter) renderMarkdown(ctx context.Context, markdown string) (string, map[string]any, error) {
	meta, body, err := yamlutil.SplitFrontMatter(markdown)
	if err != nil {
		return "", nil, err
	}

	body = c.preprocessor.PreprocessMarkdown(ctx, body)
	if ctx.Err() != nil {
		return "", nil, ctx.Err()
	}

	htmlContent, err := c.htmlConverter.ToHTML(ctx, body)
	if err != nil {
		return "", nil, fmt.Errorf("converting to HTML: %w", err)
	}

	// Completes the ==text== feature started in preprocessing
	return pipeline.ConvertMarkPlaceholders(htmlContent), meta, nil
}

// ConvertAll converts independent documents in parallel, bounded by the
// worker count. Results are in input order. The first error cancels the
// remaining conversions and is returned.
func (c *Converter) ConvertAll(ctx context.Context, inputs []Input) ([]*Result, error) {
	if err := checkAccumulators(inputs); err != nil {
		return nil, err
	}

	results := make([]*Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ResolveWorkers(c.workers))

	for i, input := range inputs {
		g.Go(func() error {
			res, err := c.Convert(gctx, input)
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// TransformTree runs recognition, dispatch, heading collection and the
// configured post-passes on a tree the caller already built.
func (c *Converter) TransformTree(root *html.Node, acc *[]Heading) Output {
	return pipeline.TransformTree(root, c.pipelineOptions(acc))
}

// HighlightCSS returns the stylesheet for highlighted code blocks, or ""
// when highlighting is off.
func (c *Converter) HighlightCSS() (string, error) {
	if c.highlighter == nil {
		return "", nil
	}
	return c.highlighter.CSS()
}

func (c *Converter) pipelineOptions(acc *[]Heading) pipeline.Options {
	return pipeline.Options{
		Dispatcher:   c.dispatcher,
		Headings:     acc,
		Highlighter:  c.highlighter,
		RewriteLinks: c.rewriteLinks,
		Logger:       c.logger,
	}
}

// validateInput checks that exactly one source is set.
func validateInput(input Input) error {
	switch {
	case input.Markdown == "" && input.HTML == "":
		return ErrEmptyInput
	case input.Markdown != "" && input.HTML != "":
		return ErrAmbiguousInput
	}
	return nil
}

// checkAccumulators rejects parallel inputs sharing a heading accumulator.
func checkAccumulators(inputs []Input) error {
	seen := make(map[*[]Heading]int)
	for i, in := range inputs {
		if in.Headings == nil {
			continue
		}
		if j, dup := seen[in.Headings]; dup {
			return fmt.Errorf("%w: documents %d and %d", ErrSharedAccumulator, j, i)
		}
		seen[in.Headings] = i
	}
	return nil
}
