package pipeline

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Heading is one table-of-contents record.
type Heading struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Level     int    `json:"level"`
	Framework string `json:"framework,omitempty"`
}

// CollectHeadings walks the tree in document order, assigns an id to every
// heading lacking one and appends a record per heading to acc.
// When acc is nil a fresh list is used. The returned slice is the full
// accumulator contents, so records from earlier documents are kept.
func CollectHeadings(root *html.Node, acc *[]Heading) []Heading {
	var local []Heading
	if acc == nil {
		acc = &local
	}

	position := 0
	Inspect(root, func(n *html.Node) bool {
		level := headingLevel(n)
		if level == 0 {
			return true
		}
		position++

		text := headingText(n)
		id := headingID(n, "heading-"+strconv.Itoa(position))

		*acc = append(*acc, Heading{
			ID:        id,
			Text:      text,
			Level:     level,
			Framework: attrOr(n, AttrFramework),
		})
		return false
	})

	return *acc
}

// headingText returns the rendered text of a heading with whitespace collapsed.
func headingText(n *html.Node) string {
	return strings.Join(strings.Fields(textContent(n)), " ")
}

// headingID returns the heading's id, assigning one first when it has none:
// the slug of its text, or fallback when the slug is empty.
func headingID(n *html.Node, fallback string) string {
	if id := attrOr(n, "id"); id != "" {
		return id
	}
	id := Slugify(headingText(n))
	if id == "" {
		id = fallback
	}
	setAttr(n, "id", id)
	return id
}
