package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDescriptor indicates a pseudo-tag descriptor has no valid name.
var ErrInvalidDescriptor = errors.New("invalid component descriptor")

// Descriptor is a parsed pseudo-tag such as `tabs sync="os" bordered`.
type Descriptor struct {
	Name  string            // normalized construct name
	Attrs map[string]string // bare attributes map to ""
}

// normalizeName is the single place construct names are case-folded.
// Every comparison downstream is a plain equality check.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseDescriptor tokenizes a pseudo-tag descriptor.
// The leading identifier is the construct name; remaining tokens are
// key=value, key="quoted value", key='quoted value' or bare boolean keys.
// Malformed attribute tokens are skipped. A descriptor without a leading
// identifier fails with ErrInvalidDescriptor.
func ParseDescriptor(s string) (Descriptor, error) {
	s = strings.TrimSpace(s)

	n := scanIdent(s)
	if n == 0 || (n < len(s) && !isSpace(s[n])) {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrInvalidDescriptor, s)
	}

	return Descriptor{
		Name:  normalizeName(s[:n]),
		Attrs: parseAttributes(s[n:]),
	}, nil
}

// scanIdent returns the length of the identifier at the start of s.
// Identifiers start with a letter and continue with letters, digits, '-',
// '_' or '.'.
func scanIdent(s string) int {
	if s == "" || !isLetter(s[0]) {
		return 0
	}
	i := 1
	for i < len(s) {
		c := s[i]
		if !isLetter(c) && !isDigit(c) && c != '-' && c != '_' && c != '.' {
			break
		}
		i++
	}
	return i
}

// parseAttributes tokenizes an attribute list. It never fails: tokens it
// cannot make sense of are dropped and scanning continues with the next one.
// An unterminated quote consumes the remainder of the input.
func parseAttributes(s string) map[string]string {
	attrs := make(map[string]string)

	i := 0
	for i < len(s) {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			break
		}

		start := i
		for i < len(s) && !isSpace(s[i]) && s[i] != '=' {
			i++
		}
		key := s[start:i]

		// Allow whitespace around '=' like HTML does
		j := i
		for j < len(s) && isSpace(s[j]) {
			j++
		}
		if j >= len(s) || s[j] != '=' {
			addAttr(attrs, key, "")
			continue
		}

		i = j + 1
		for i < len(s) && isSpace(s[i]) {
			i++
		}

		var val string
		if i < len(s) && (s[i] == '"' || s[i] == '\'') {
			quote := s[i]
			end := strings.IndexByte(s[i+1:], quote)
			if end < 0 {
				break
			}
			val = s[i+1 : i+1+end]
			i += end + 2
		} else {
			vstart := i
			for i < len(s) && !isSpace(s[i]) {
				i++
			}
			val = s[vstart:i]
		}
		addAttr(attrs, key, val)
	}

	return attrs
}

// addAttr records key=val unless the key is malformed or already present.
func addAttr(attrs map[string]string, key, val string) {
	if !validAttrKey(key) {
		return
	}
	key = strings.ToLower(key)
	if _, dup := attrs[key]; dup {
		return
	}
	if key == "class" {
		val = strings.Join(strings.Fields(val), " ")
	}
	attrs[key] = val
}

// validAttrKey rejects empty keys and characters HTML forbids in attribute names.
func validAttrKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		switch c := key[i]; {
		case c == '"', c == '\'', c == '<', c == '>', c == '/', c == '=', c < 0x20, c == 0x7f:
			return false
		}
	}
	return true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
