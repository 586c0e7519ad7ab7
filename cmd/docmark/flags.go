package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by every invocation.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// highlightFlags holds syntax highlighting flags.
type highlightFlags struct {
	enabled bool
	style   string
	cssPath string
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	enabled   bool
	title     string
	minDepth  int
	maxDepth  int
	framework string
}

// outputFlags holds flags deciding what gets written.
type outputFlags struct {
	dir          string
	noHeadings   bool
	rewriteLinks bool
	printConfig  bool
}

// convertFlags holds all flags for a conversion run.
type convertFlags struct {
	common    commonFlags
	output    outputFlags
	highlight highlightFlags
	toc       tocFlags
	workers   int
	disable   []string
	version   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timings and diagnostics")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "output file or directory")
	fs.BoolVar(&f.noHeadings, "no-headings", false, "do not write .headings.json files")
	fs.BoolVar(&f.rewriteLinks, "rewrite-links", false, "point links to .md sources at .html pages")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective config as YAML and exit")
}

// addHighlightFlags adds highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.BoolVar(&f.enabled, "highlight", false, "highlight code blocks")
	fs.StringVar(&f.style, "style", "", "chroma style for highlighting (e.g. github, monokai)")
	fs.StringVar(&f.cssPath, "highlight-css", "", "write the highlighting stylesheet to this path")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "prepend a numbered table of contents")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.minDepth, "toc-min-depth", 0, "min heading depth for TOC (1-6, default: 2)")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (1-6, default: 3)")
	fs.StringVar(&f.framework, "toc-framework", "", "only list headings of this framework")
}

// parseConvertFlags parses flags and returns positional args.
// Usage and parse errors are written to stderr.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("docmark", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &convertFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringSliceVar(&f.disable, "disable", nil, "constructs to leave untransformed (e.g. frameworks)")
	fs.BoolVar(&f.version, "version", false, "show version information")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addHighlightFlags(fs, &f.highlight)
	addTOCFlags(fs, &f.toc)

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
