package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docmark <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert extended markdown files to HTML pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>          Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>            Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --no-headings            Do not write .headings.json files")
	fmt.Fprintln(w, "      --rewrite-links          Point links to .md sources at .html pages")
	fmt.Fprintln(w, "      --print-config           Print the effective config as YAML and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Constructs:")
	fmt.Fprintln(w, "      --disable <names>        Leave these constructs untransformed (comma-separated)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --highlight              Highlight code blocks")
	fmt.Fprintln(w, "      --style <name>           Chroma style (e.g. github, monokai)")
	fmt.Fprintln(w, "      --highlight-css <path>   Write the highlighting stylesheet")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --toc                    Prepend a numbered table of contents")
	fmt.Fprintln(w, "      --toc-title <s>          TOC heading")
	fmt.Fprintln(w, "      --toc-min-depth <n>      Min heading depth (1-6, default: 2)")
	fmt.Fprintln(w, "      --toc-max-depth <n>      Max heading depth (1-6, default: 3)")
	fmt.Fprintln(w, "      --toc-framework <s>      Only list headings of this framework")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show timings and diagnostics")
	fmt.Fprintln(w, "      --version                Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success, 1 conversion failed, 2 usage/config, 3 I/O.")
}
