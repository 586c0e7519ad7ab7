package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrHTMLParse indicates the HTML produced by the tree builder could not be parsed.
var ErrHTMLParse = errors.New("HTML parsing failed")

// ParseTree parses HTML content into a content tree.
// Full documents (starting with <!DOCTYPE or <html) are parsed as documents;
// anything else is parsed as a body fragment and the nodes are gathered under
// a DocumentNode root so every stage can traverse a single tree.
func ParseTree(content string) (root *html.Node, isFragment bool, err error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrHTMLParse, err)
		}
		return doc, false, nil
	}

	// Body context keeps the parser from wrapping nodes in <html><body>
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// RenderTree serializes the tree back to markup.
// For fragments only the children of the root are rendered.
func RenderTree(root *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// getAttr returns the value of the named attribute and whether it is present.
func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// attrOr returns the attribute value, or "" when absent.
func attrOr(n *html.Node, key string) string {
	v, _ := getAttr(n, key)
	return v
}

// setAttr sets an attribute, replacing an existing value in place so the
// attribute order of the element is kept.
func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// newElement creates a detached element with the given attributes in order.
// attrs is a flat list of key/value pairs.
func newElement(tag string, attrs ...string) *html.Node {
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.Attr = append(el.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return el
}

// detachChildren removes every child of n and returns them in order.
func detachChildren(n *html.Node) []*html.Node {
	var kids []*html.Node
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		kids = append(kids, c)
		c = next
	}
	return kids
}

// appendChildren appends detached nodes to n, in order.
func appendChildren(n *html.Node, kids []*html.Node) {
	for _, k := range kids {
		n.AppendChild(k)
	}
}

// textContent returns the concatenated text of all text nodes under n.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			buf.WriteString(c.Data)
			return
		}
		for k := c.FirstChild; k != nil; k = k.NextSibling {
			walk(k)
		}
	}
	walk(n)
	return buf.String()
}

// headingLevel returns 1-6 for h1-h6 elements and 0 for anything else.
func headingLevel(n *html.Node) int {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	// Nodes built by hand may lack DataAtom
	if len(n.Data) == 2 && (n.Data[0] == 'h' || n.Data[0] == 'H') && n.Data[1] >= '1' && n.Data[1] <= '6' {
		return int(n.Data[1] - '0')
	}
	return 0
}

// classTokens returns the whitespace-separated tokens of the class attribute.
func classTokens(n *html.Node) []string {
	return strings.Fields(attrOr(n, "class"))
}
