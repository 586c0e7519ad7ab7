package pipeline

import (
	"log/slog"
	"strconv"

	"golang.org/x/net/html"
)

// Tab panel markup.
const (
	TagTabPanel  = "tab-panel"
	AttrTabSlug  = "data-tab-slug"
	AttrTabIndex = "data-tab-index"
)

// Tab describes one tab of a tabs component.
type Tab struct {
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	NestedHeadingIDs []string `json:"nestedHeadingIds"`
}

// TransformTabs splits a component's direct children into tab panels.
//
// The most significant heading level among the direct children is the
// boundary level; each boundary heading opens a tab named after it and the
// following siblings, lower-level headings included, form the tab's panel.
// Content before the first boundary heading is dropped. The component's
// data-attributes gain a "tabs" list. Without direct-child headings the
// component is left unchanged.
func TransformTabs(el *html.Node, tc *TransformContext) {
	boundary := 0
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if level := headingLevel(c); level > 0 && (boundary == 0 || level < boundary) {
			boundary = level
		}
	}
	if boundary == 0 {
		tc.Report(slog.LevelDebug, "no direct-child headings", "tabs left unchanged")
		return
	}

	var (
		tabs    []Tab
		panels  []*html.Node
		current *html.Node
	)
	for _, c := range detachChildren(el) {
		if headingLevel(c) == boundary {
			index := len(tabs)
			slug := headingID(c, "tab-"+strconv.Itoa(index))
			tabs = append(tabs, Tab{Slug: slug, Name: headingText(c)})

			current = newElement(TagTabPanel,
				AttrTabIndex, strconv.Itoa(index),
				AttrTabSlug, slug,
			)
			panels = append(panels, current)
			continue
		}
		if current == nil {
			continue
		}
		current.AppendChild(c)
	}

	for i, panel := range panels {
		tabs[i].NestedHeadingIDs = nestedHeadingIDs(panel, tabs[i].Slug)
	}

	appendChildren(el, panels)
	setComponentAttr(el, "tabs", tabs)
}

// nestedHeadingIDs returns the ids of all headings inside panel in document
// order, assigning ids to headings lacking one so the heading collector
// later reports the same values.
func nestedHeadingIDs(panel *html.Node, tabSlug string) []string {
	ids := []string{}
	Inspect(panel, func(n *html.Node) bool {
		if headingLevel(n) == 0 {
			return true
		}
		ids = append(ids, headingID(n, tabSlug+"-"+strconv.Itoa(len(ids)+1)))
		return false
	})
	return ids
}
