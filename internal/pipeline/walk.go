package pipeline

import "golang.org/x/net/html"

// Action tells Walk what to do with the visited node.
// The zero value keeps the node and descends into its children.
type Action struct {
	skipChildren bool
	replace      bool
	span         int
	nodes        []*html.Node
}

// Continue keeps the node and descends into its children.
func Continue() Action { return Action{} }

// SkipChildren keeps the node but does not descend into it.
func SkipChildren() Action { return Action{skipChildren: true} }

// Replace substitutes span siblings, starting at the visited node, with nodes.
// A span below 1 replaces only the visited node. Replacement nodes are
// neither revisited nor descended into by the same walk.
func Replace(span int, nodes ...*html.Node) Action {
	if span < 1 {
		span = 1
	}
	return Action{replace: true, span: span, nodes: nodes}
}

// Visitor is called for each child of a parent in document order.
// siblings holds the detached children of the parent being rebuilt; the
// visited node is siblings[i]. Visitors may adopt siblings[i+1:] nodes into
// replacement nodes when they replace a span covering them.
type Visitor func(siblings []*html.Node, i int) Action

// Walk traverses the children of parent depth-first and rebuilds each
// children list from the visitor's actions. The parent itself is not visited.
func Walk(parent *html.Node, visit Visitor) {
	kids := detachChildren(parent)

	for i := 0; i < len(kids); {
		act := visit(kids, i)

		if !act.replace {
			n := kids[i]
			parent.AppendChild(n)
			if !act.skipChildren {
				Walk(n, visit)
			}
			i++
			continue
		}

		for _, r := range act.nodes {
			if r.Parent != nil {
				r.Parent.RemoveChild(r)
			}
			parent.AppendChild(r)
		}
		i += act.span
	}
}

// Inspect calls fn for every node under root in document order, root excluded.
// Returning false from fn skips the node's children. Inspect never alters
// the tree structure; fn may change attributes.
func Inspect(root *html.Node, fn func(*html.Node) bool) {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if fn(c) {
			Inspect(c, fn)
		}
	}
}
