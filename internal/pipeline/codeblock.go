package pipeline

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// codeBlockRenderer renders fenced code blocks like goldmark does and also
// turns info-string attributes into data-* attributes on <code>:
//
//	```tsx title="App.tsx"   ->   <pre><code class="language-tsx" data-title="App.tsx">
type codeBlockRenderer struct{}

func newCodeBlockRenderer() renderer.NodeRenderer {
	return &codeBlockRenderer{}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkContinue, nil
	}

	n := node.(*ast.FencedCodeBlock)
	_, _ = w.WriteString("<pre><code")

	if language := n.Language(source); language != nil {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML(language))
		_ = w.WriteByte('"')
	}

	for _, kv := range infoAttributes(n, source) {
		_, _ = w.WriteString(` data-`)
		_, _ = w.WriteString(kv[0])
		_, _ = w.WriteString(`="`)
		_, _ = w.Write(util.EscapeHTML([]byte(kv[1])))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')

	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}
	return ast.WalkContinue, nil
}

// infoAttributes parses the info string after the language word, sorted by
// key for stable output.
func infoAttributes(n *ast.FencedCodeBlock, source []byte) [][2]string {
	if n.Info == nil {
		return nil
	}
	info := n.Info.Segment.Value(source)
	i := bytes.IndexAny(info, " \t")
	if i < 0 {
		return nil
	}

	attrs := parseAttributes(string(info[i:]))
	out := make([][2]string, 0, len(attrs))
	for k, v := range attrs {
		out = append(out, [2]string{k, v})
	}
	sort.Slice(out, func(a, b int) bool { return out[a][0] < out[b][0] })
	return out
}
