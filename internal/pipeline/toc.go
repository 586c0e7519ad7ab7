package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Default TOC depth bounds.
const (
	DefaultTOCMinDepth = 2
	DefaultTOCMaxDepth = 3
)

// TOCOptions configures TOC rendering.
type TOCOptions struct {
	Title     string
	MinDepth  int    // Minimum heading level (default: 2, skips H1)
	MaxDepth  int    // Maximum heading level (default: 3)
	Framework string // When set, headings tagged for another framework are skipped
}

// numberingState tracks hierarchical numbering for TOC entries.
// The first heading's level becomes depth 1 and skipped levels are
// flattened (H2 -> H4 numbers the H4 as a direct child).
type numberingState struct {
	counters     [6]int
	minLevelSeen int
	lastLevel    int
}

// next returns the number string and effective depth for a heading level.
func (n *numberingState) next(level int) (numStr string, effectiveDepth int) {
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	effectiveDepth = level - n.minLevelSeen + 1
	if effectiveDepth < 1 {
		effectiveDepth = 1
	}
	if n.lastLevel > 0 && effectiveDepth > n.lastLevel+1 {
		effectiveDepth = n.lastLevel + 1
	}

	for i := effectiveDepth; i < 6; i++ {
		n.counters[i] = 0
	}
	n.counters[effectiveDepth-1]++
	n.lastLevel = effectiveDepth

	parts := make([]string, 0, effectiveDepth)
	for i := 0; i < effectiveDepth; i++ {
		parts = append(parts, strconv.Itoa(n.counters[i]))
	}
	return strings.Join(parts, ".") + ".", effectiveDepth
}

// filterHeadings keeps headings within the depth bounds that belong to the
// requested framework (untagged headings belong to every framework).
func filterHeadings(headings []Heading, opts TOCOptions) []Heading {
	minDepth, maxDepth := opts.MinDepth, opts.MaxDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}

	var out []Heading
	for _, h := range headings {
		if h.Level < minDepth || h.Level > maxDepth {
			continue
		}
		if opts.Framework != "" && h.Framework != "" && h.Framework != opts.Framework {
			continue
		}
		out = append(out, h)
	}
	return out
}

// RenderTOC renders a numbered table of contents from collected headings.
// Returns "" when no heading survives filtering.
// Uses <div> elements instead of <ul>/<li> to avoid list-style conflicts.
func RenderTOC(headings []Heading, opts TOCOptions) string {
	headings = filterHeadings(headings, opts)
	if len(headings) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="toc">`)

	if opts.Title != "" {
		buf.WriteString(`<h2 class="toc-title">`)
		buf.WriteString(html.EscapeString(opts.Title))
		buf.WriteString(`</h2>`)
	}

	buf.WriteString(`<div class="toc-list">`)

	var numbering numberingState
	for _, h := range headings {
		num, depth := numbering.next(h.Level)

		buf.WriteString(`<div class="toc-item"`)
		if indent := float64(depth-1) * 1.5; indent > 0 {
			fmt.Fprintf(&buf, ` style="padding-left:%.1fem"`, indent)
		}
		if h.Framework != "" {
			buf.WriteString(` data-framework="`)
			buf.WriteString(html.EscapeString(h.Framework))
			buf.WriteString(`"`)
		}
		buf.WriteString(`><a href="#`)
		buf.WriteString(html.EscapeString(h.ID))
		buf.WriteString(`">`)
		buf.WriteString(num)
		buf.WriteString(` `)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a></div>`)
	}

	buf.WriteString(`</div></nav>`)
	return buf.String()
}
