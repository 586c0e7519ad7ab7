package pipeline

import (
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Framework panel markup.
const (
	TagFrameworkPanel       = "framework-panel"
	AttrFramework           = "data-framework"
	AttrFrameworkMeta       = "data-framework-meta"
	AttrAvailableFrameworks = "data-available-frameworks"
)

// CodeBlock is a fenced code block found in a framework panel.
type CodeBlock struct {
	Title    string `json:"title"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

// codeTitleAttrs lists the attributes a code block title is read from, in
// priority order.
var codeTitleAttrs = []string{"data-title", "data-filename", "title", "filename"}

const languageClassPrefix = "language-"

// TransformFrameworks splits content written once per framework.
//
// Level-1 direct children are dividers: each switches the current framework
// to its lowercased text and is removed. Every other child goes to the
// current framework's panel, content before the first divider included.
// Headings of level 2-6 are tagged with data-framework, and fenced code
// blocks are summarized in data-framework-meta. Without a level-1 direct
// child the component is left unchanged.
func TransformFrameworks(el *html.Node, tc *TransformContext) {
	first, found := "", false
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if headingLevel(c) == 1 {
			first, found = frameworkKey(c), true
			break
		}
	}
	if !found {
		tc.Report(slog.LevelDebug, "no level-1 divider", "framework panels left unchanged")
		return
	}

	order := []string{first}
	buckets := map[string][]*html.Node{first: nil}
	meta := map[string][]CodeBlock{first: {}}
	current := first

	for _, c := range detachChildren(el) {
		level := headingLevel(c)
		if level == 1 {
			current = frameworkKey(c)
			if _, seen := buckets[current]; !seen {
				order = append(order, current)
				buckets[current] = nil
				meta[current] = []CodeBlock{}
			}
			continue
		}
		if level > 1 {
			setAttr(c, AttrFramework, current)
		}

		buckets[current] = append(buckets[current], c)
		if block, ok := extractCodeBlock(c); ok {
			meta[current] = append(meta[current], block)
		}
	}

	for _, key := range order {
		panel := newElement(TagFrameworkPanel, AttrFramework, key)
		appendChildren(panel, buckets[key])
		el.AppendChild(panel)
	}

	setAttr(el, AttrAvailableFrameworks, marshalAttr(order))
	setAttr(el, AttrFrameworkMeta, marshalAttr(meta))
}

// frameworkKey normalizes divider heading text into a framework key.
func frameworkKey(n *html.Node) string {
	return strings.ToLower(headingText(n))
}

// extractCodeBlock summarizes a <pre><code> block.
func extractCodeBlock(n *html.Node) (CodeBlock, bool) {
	if n.Type != html.ElementNode || n.DataAtom != atom.Pre {
		return CodeBlock{}, false
	}
	code := codeChild(n)
	if code == nil {
		return CodeBlock{}, false
	}

	return CodeBlock{
		Title:    codeTitle(code, n),
		Code:     textContent(code),
		Language: codeLanguage(code, n),
	}, true
}

// codeChild returns the first <code> element child of pre, skipping
// whitespace text.
func codeChild(pre *html.Node) *html.Node {
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Code {
			return c
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		return nil
	}
	return nil
}

// codeLanguage returns the language of the first node carrying a
// language-<lang> class token.
func codeLanguage(nodes ...*html.Node) string {
	for _, n := range nodes {
		for _, tok := range classTokens(n) {
			if lang, ok := strings.CutPrefix(tok, languageClassPrefix); ok && lang != "" {
				return lang
			}
		}
	}
	return ""
}

// codeTitle returns the first non-empty title attribute, by attribute
// priority first and node order second.
func codeTitle(nodes ...*html.Node) string {
	for _, key := range codeTitleAttrs {
		for _, n := range nodes {
			if v := strings.TrimSpace(attrOr(n, key)); v != "" {
				return v
			}
		}
	}
	return ""
}
