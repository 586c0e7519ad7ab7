package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	docmark "github.com/alnah/go-docmark"
	"github.com/alnah/go-docmark/internal/config"
	"github.com/alnah/go-docmark/internal/fileutil"
	"github.com/alnah/go-docmark/internal/logfields"
	"github.com/alnah/go-docmark/internal/yamlutil"
)

// Sentinel errors for conversion runs.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrNoMarkdownFiles = errors.New("no markdown files found")
	ErrWriteCSS        = errors.New("failed to write highlighting stylesheet")
)

// runConvert loads config, merges flags and converts the discovered files.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment, logger *slog.Logger) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Load configuration
	cfg := env.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if flags.common.config != "" {
		var err error
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if flags.output.printConfig {
		data, err := yamlutil.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = env.Stdout.Write(data)
		return err
	}

	opts, err := converterOptions(cfg, logger)
	if err != nil {
		return err
	}
	conv := docmark.NewConverter(opts...)

	if flags.highlight.cssPath != "" {
		if err := writeHighlightCSS(conv, flags.highlight.cssPath); err != nil {
			return err
		}
	}

	// Resolve input path
	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	// Resolve output directory
	outputDir := resolveOutputDir(flags.output.dir, cfg)

	// Discover files to convert
	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}

	workers := docmark.ResolveWorkers(cfg.Workers)
	logger.Debug("starting conversion",
		logfields.Path(inputPath),
		logfields.Output(outputDir),
		logfields.Workers(workers),
	)

	params := &conversionParams{headings: cfg.Output.Headings}
	results := convertBatch(ctx, conv, files, workers, params)

	// Print results
	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
// Boolean flags only switch features on, except --no-headings.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.workers != 0 {
		cfg.Workers = flags.workers
	}

	// Output flags
	if flags.output.dir != "" {
		cfg.Output.DefaultDir = flags.output.dir
	}
	if flags.output.noHeadings {
		cfg.Output.Headings = false
	}
	if flags.output.rewriteLinks {
		cfg.Links.RewriteMarkdown = true
	}

	// Highlight flags
	if flags.highlight.enabled {
		cfg.Highlight.Enabled = true
	}
	if flags.highlight.style != "" {
		cfg.Highlight.Style = flags.highlight.style
	}

	// TOC flags
	if flags.toc.enabled {
		cfg.TOC.Enabled = true
	}
	if flags.toc.title != "" {
		cfg.TOC.Title = flags.toc.title
	}
	if flags.toc.minDepth != 0 {
		cfg.TOC.MinDepth = flags.toc.minDepth
	}
	if flags.toc.maxDepth != 0 {
		cfg.TOC.MaxDepth = flags.toc.maxDepth
	}
	if flags.toc.framework != "" {
		cfg.TOC.Framework = flags.toc.framework
	}

	// Construct flags add to the configured list
	cfg.Constructs.Disabled = append(cfg.Constructs.Disabled, flags.disable...)
}

// converterOptions translates the merged config into converter options.
func converterOptions(cfg *config.Config, logger *slog.Logger) ([]docmark.Option, error) {
	opts := []docmark.Option{
		docmark.WithLogger(logger),
		docmark.WithWorkers(cfg.Workers),
	}

	if cfg.Highlight.Enabled {
		opts = append(opts, docmark.WithHighlighting(cfg.Highlight.Style))
	}

	if cfg.TOC.Enabled {
		toc := docmark.TOC{
			Title:     cfg.TOC.Title,
			MinDepth:  cfg.TOC.MinDepth,
			MaxDepth:  cfg.TOC.MaxDepth,
			Framework: cfg.TOC.Framework,
		}
		// WithTOC panics on invalid depths
		if err := toc.Validate(); err != nil {
			return nil, err
		}
		opts = append(opts, docmark.WithTOC(toc))
	}

	if cfg.Links.RewriteMarkdown {
		opts = append(opts, docmark.WithLinkRewriting())
	}

	for _, name := range cfg.Constructs.Disabled {
		opts = append(opts, docmark.WithTransform(name, nil))
	}

	return opts, nil
}

// writeHighlightCSS writes the stylesheet matching the converter's
// highlighting classes. Highlighting must be enabled.
func writeHighlightCSS(conv *docmark.Converter, path string) error {
	css, err := conv.HighlightCSS()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteCSS, err)
	}
	if css == "" {
		return fmt.Errorf("%w: --highlight-css requires highlighting (--highlight)", config.ErrInvalidValue)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(css), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteCSS, err)
	}
	return nil
}

// resolveInputPath returns the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir returns the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
