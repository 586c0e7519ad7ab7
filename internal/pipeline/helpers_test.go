package pipeline

import (
	"encoding/json"
	"testing"

	"golang.org/x/net/html"
)

// mustParse parses a fragment or fails the test.
func mustParse(t *testing.T, content string) *html.Node {
	t.Helper()

	root, _, err := ParseTree(content)
	if err != nil {
		t.Fatalf("ParseTree(%q) error: %v", content, err)
	}
	return root
}

// mustRender serializes a fragment root or fails the test.
func mustRender(t *testing.T, root *html.Node) string {
	t.Helper()

	out, err := RenderTree(root, true)
	if err != nil {
		t.Fatalf("RenderTree() error: %v", err)
	}
	return out
}

// findAll returns every node under root matching pred, in document order.
func findAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if pred(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// isTag matches elements by tag name.
func isTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

// elementChildren returns the element children of n.
func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// tags returns the tag names of nodes, "#comment"/"#text" for non-elements.
func tags(nodes []*html.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			out = append(out, n.Data)
		case html.CommentNode:
			out = append(out, "#comment")
		case html.TextNode:
			out = append(out, "#text")
		}
	}
	return out
}

// children returns all children of n.
func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// decodeAttr unmarshals a JSON attribute of n into v.
func decodeAttr(t *testing.T, n *html.Node, key string, v any) {
	t.Helper()

	raw, ok := getAttr(n, key)
	if !ok {
		t.Fatalf("attribute %q missing on <%s>", key, n.Data)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		t.Fatalf("attribute %q = %q is not JSON: %v", key, raw, err)
	}
}

// recognizeAndDispatch runs marker recognition and the default dispatcher.
func recognizeAndDispatch(t *testing.T, content string) (*html.Node, *Diagnostics) {
	t.Helper()

	root := mustParse(t, content)
	diags := NewDiagnostics(nil)
	RecognizeMarkers(root, diags)
	NewDispatcher().Dispatch(root, diags)
	return root, diags
}
