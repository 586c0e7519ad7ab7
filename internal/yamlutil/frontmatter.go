package yamlutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFrontMatter indicates a front matter block that is not valid YAML.
var ErrFrontMatter = errors.New("yamlutil: invalid front matter")

const frontMatterFence = "---"

// SplitFrontMatter separates a leading YAML front matter block from a
// markdown document:
//
//	---
//	title: Install
//	---
//	# Install
//
// The block must start on the first line and be closed by a "---" or "..."
// line. Without a closed block the document is returned unchanged with a
// nil map. An empty block yields an empty, non-nil map.
func SplitFrontMatter(content string) (map[string]any, string, error) {
	content = strings.TrimPrefix(content, "\ufeff")

	first, rest, ok := strings.Cut(content, "\n")
	if !ok || strings.TrimRight(first, " \t\r") != frontMatterFence {
		return nil, content, nil
	}

	var block strings.Builder
	for {
		line, next, more := strings.Cut(rest, "\n")
		trimmed := strings.TrimRight(line, " \t\r")
		if trimmed == frontMatterFence || trimmed == "..." {
			return decodeFrontMatter(block.String(), next)
		}
		if !more {
			return nil, content, nil
		}
		block.WriteString(strings.TrimRight(line, "\r"))
		block.WriteByte('\n')
		rest = next
	}
}

// decodeFrontMatter parses the YAML block; blank blocks decode to an empty map.
func decodeFrontMatter(block, body string) (map[string]any, string, error) {
	meta := map[string]any{}
	if strings.TrimSpace(block) == "" {
		return meta, body, nil
	}
	if err := Unmarshal([]byte(block), &meta); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, body, nil
}
