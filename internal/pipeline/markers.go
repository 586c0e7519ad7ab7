package pipeline

import (
	"encoding/json"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
)

// Component wrapper markup.
const (
	TagComponent   = "component-wrapper"
	AttrComponent  = "data-component"
	AttrAttributes = "data-attributes"
)

// Annotation syntax, embedded in comments:
//
//	<!-- ::name attr="v" -->          inline
//	<!-- ::start:name attr="v" -->    block start
//	<!-- ::end:name -->               block end
const (
	markerPrefix = "::"
	startPrefix  = "start:"
	endPrefix    = "end:"
)

type markerKind int

const (
	markerNone markerKind = iota
	markerInline
	markerStart
	markerEnd
)

// classifyMarker reports what kind of annotation n is and returns the text
// after the prefixes: the descriptor for inline/start markers, the construct
// name for end markers.
func classifyMarker(n *html.Node) (markerKind, string) {
	if n.Type != html.CommentNode {
		return markerNone, ""
	}
	rest, ok := strings.CutPrefix(strings.TrimSpace(n.Data), markerPrefix)
	if !ok {
		return markerNone, ""
	}
	if hasPrefixFold(rest, startPrefix) {
		return markerStart, rest[len(startPrefix):]
	}
	if hasPrefixFold(rest, endPrefix) {
		return markerEnd, rest[len(endPrefix):]
	}
	return markerInline, rest
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// RecognizeMarkers replaces annotation comments with component elements.
//
// Inline markers become childless components. A block start marker adopts
// every sibling up to the first end marker with the same name; the range,
// markers included, becomes one component whose children are the enclosed
// siblings exactly as they were. Replacements are not descended into, so
// annotation comments inside a block stay comments. A start marker without
// a matching end degrades to a childless component.
// Comments that do not parse are left untouched.
func RecognizeMarkers(root *html.Node, diags *Diagnostics) {
	Walk(root, func(siblings []*html.Node, i int) Action {
		kind, body := classifyMarker(siblings[i])
		if kind != markerInline && kind != markerStart {
			return Continue()
		}

		desc, err := ParseDescriptor(body)
		if err != nil {
			diags.Report(Diagnostic{
				Level:  slog.LevelDebug,
				Stage:  StageMarkers,
				Reason: "malformed descriptor",
				Detail: strings.TrimSpace(siblings[i].Data),
			})
			return Continue()
		}

		el := NewComponent(desc)
		if kind == markerInline {
			return Replace(1, el)
		}

		end := findEndMarker(siblings, i+1, desc.Name)
		if end < 0 {
			diags.Report(Diagnostic{
				Level:     slog.LevelWarn,
				Stage:     StageMarkers,
				Component: desc.Name,
				Reason:    "unbalanced block marker",
				Detail:    "no matching ::end:" + desc.Name + " among following siblings",
			})
			return Replace(1, el)
		}

		appendChildren(el, siblings[i+1:end])
		return Replace(end-i+1, el)
	})
}

// findEndMarker returns the index of the first end marker for name at or
// after from, or -1.
func findEndMarker(siblings []*html.Node, from int, name string) int {
	for j := from; j < len(siblings); j++ {
		kind, body := classifyMarker(siblings[j])
		if kind == markerEnd && normalizeName(body) == name {
			return j
		}
	}
	return -1
}

// NewComponent creates a detached component wrapper for desc.
func NewComponent(desc Descriptor) *html.Node {
	attrs := desc.Attrs
	if attrs == nil {
		attrs = map[string]string{}
	}
	return newElement(TagComponent,
		AttrComponent, desc.Name,
		AttrAttributes, marshalAttr(attrs),
	)
}

// IsComponent reports whether n is a component wrapper element.
func IsComponent(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == TagComponent
}

// ComponentName returns the normalized construct name of a component.
func ComponentName(n *html.Node) string {
	return normalizeName(attrOr(n, AttrComponent))
}

// ComponentAttrs decodes the data-attributes map of a component.
// Values that are not strings (set by transforms) are returned as decoded JSON.
func ComponentAttrs(n *html.Node) map[string]any {
	attrs := map[string]any{}
	raw, ok := getAttr(n, AttrAttributes)
	if !ok || raw == "" {
		return attrs
	}
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return map[string]any{}
	}
	return attrs
}

// setComponentAttr merges key=value into the component's data-attributes map.
func setComponentAttr(n *html.Node, key string, value any) {
	attrs := ComponentAttrs(n)
	attrs[key] = value
	setAttr(n, AttrAttributes, marshalAttr(attrs))
}

// marshalAttr JSON-encodes v for an attribute value. Only maps, slices and
// structs of strings and ints are passed here, which always encode.
func marshalAttr(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
