package pipeline

import (
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AttrLanguage keeps the source language on highlighted blocks.
const AttrLanguage = "data-language"

// Highlighter replaces <pre><code class="language-x"> blocks with chroma
// markup. It runs after code blocks were extracted, so framework metadata
// always carries the plain source.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter creates a Highlighter for the named chroma style.
// Unknown style names fall back to chroma's default style.
func NewHighlighter(styleName string) *Highlighter {
	return &Highlighter{
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// CSS returns the stylesheet for the highlighter's classes.
func (h *Highlighter) CSS() (string, error) {
	var buf strings.Builder
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Highlight rewrites every code block with a known language under root.
// Blocks without a language or with an unknown one are kept as they are.
func (h *Highlighter) Highlight(root *html.Node, diags *Diagnostics) {
	Walk(root, func(siblings []*html.Node, i int) Action {
		n := siblings[i]
		if n.Type != html.ElementNode || n.DataAtom != atom.Pre {
			return Continue()
		}

		code := codeChild(n)
		if code == nil {
			return SkipChildren()
		}
		lang := codeLanguage(code, n)
		if lang == "" {
			return SkipChildren()
		}
		lexer := lexers.Get(lang)
		if lexer == nil {
			diags.Report(Diagnostic{
				Level:  slog.LevelDebug,
				Stage:  StageHighlight,
				Reason: "unknown language",
				Detail: lang,
			})
			return SkipChildren()
		}

		nodes, err := h.render(chroma.Coalesce(lexer), textContent(code))
		if err != nil {
			diags.Report(Diagnostic{
				Level:  slog.LevelWarn,
				Stage:  StageHighlight,
				Reason: "highlighting failed",
				Detail: err.Error(),
			})
			return SkipChildren()
		}

		for _, out := range nodes {
			if out.Type == html.ElementNode && out.DataAtom == atom.Pre {
				setAttr(out, AttrLanguage, lang)
				copyDataAttrs(code, out)
			}
		}
		return Replace(1, nodes...)
	})
}

// render formats source and parses the result into detached nodes.
func (h *Highlighter) render(lexer chroma.Lexer, source string) ([]*html.Node, error) {
	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, it); err != nil {
		return nil, err
	}

	context := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	return html.ParseFragment(strings.NewReader(buf.String()), context)
}

// copyDataAttrs carries data-* attributes such as data-title over.
func copyDataAttrs(from, to *html.Node) {
	for _, a := range from.Attr {
		if strings.HasPrefix(a.Key, "data-") {
			if _, ok := getAttr(to, a.Key); !ok {
				setAttr(to, a.Key, a.Val)
			}
		}
	}
}
