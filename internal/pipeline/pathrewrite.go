package pipeline

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteMarkdownLinks points relative links to .md/.markdown sources at
// their rendered .html pages, keeping query and fragment:
//
//	guide/setup.md#install  ->  guide/setup.html#install
//
// Left unchanged:
//   - URLs with a scheme, protocol-relative URLs, pure anchors
//   - absolute paths (they address the site root, not a source file)
//   - links inside code blocks (they are text, not elements)
func RewriteMarkdownLinks(root *html.Node) {
	Inspect(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			if href, ok := getAttr(n, "href"); ok {
				if rewritten, changed := markdownLinkTarget(href); changed {
					setAttr(n, "href", rewritten)
				}
			}
		}
		return true
	})
}

// markdownLinkTarget returns the .html target for a relative markdown link.
func markdownLinkTarget(href string) (string, bool) {
	if !isRelativePath(href) {
		return href, false
	}

	u, err := url.Parse(href)
	if err != nil || u.Path == "" {
		return href, false
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if ext != ".md" && ext != ".markdown" {
		return href, false
	}
	u.Path = strings.TrimSuffix(u.Path, path.Ext(u.Path)) + ".html"
	return u.String(), true
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(p string) bool {
	if p == "" {
		return false
	}

	// Skip URLs (any scheme, protocol-relative)
	if strings.HasPrefix(p, "//") || strings.Contains(strings.SplitN(p, "/", 2)[0], ":") {
		return false
	}

	// Skip anchors and absolute paths
	if strings.HasPrefix(p, "#") || strings.HasPrefix(p, "/") {
		return false
	}

	return true
}
