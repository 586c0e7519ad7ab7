package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTransformFrameworks(t *testing.T) {
	t.Parallel()

	root, _ := recognizeAndDispatch(t,
		`<!-- ::start:frameworks -->`+
			`<p>shared</p>`+
			`<h1>React</h1><h2>Setup</h2><pre><code class="language-tsx" data-title="App.tsx">render()</code></pre>`+
			`<h1>Vue</h1><h2>Setup</h2><pre><code class="language-vue">mount()</code></pre>`+
			`<!-- ::end:frameworks -->`)

	el := children(root)[0]
	panels := children(el)
	if diff := cmp.Diff([]string{TagFrameworkPanel, TagFrameworkPanel}, tags(panels)); diff != "" {
		t.Fatalf("component children mismatch (-want +got):\n%s", diff)
	}

	if got := attrOr(panels[0], AttrFramework); got != "react" {
		t.Errorf("panel 0 framework = %q, want %q", got, "react")
	}
	if diff := cmp.Diff([]string{"p", "h2", "pre"}, tags(children(panels[0]))); diff != "" {
		t.Errorf("react panel children mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"h2", "pre"}, tags(children(panels[1]))); diff != "" {
		t.Errorf("vue panel children mismatch (-want +got):\n%s", diff)
	}

	if got := attrOr(children(panels[0])[1], AttrFramework); got != "react" {
		t.Errorf("react h2 %s = %q, want %q", AttrFramework, got, "react")
	}
	if got := attrOr(children(panels[1])[0], AttrFramework); got != "vue" {
		t.Errorf("vue h2 %s = %q, want %q", AttrFramework, got, "vue")
	}

	var available []string
	decodeAttr(t, el, AttrAvailableFrameworks, &available)
	if diff := cmp.Diff([]string{"react", "vue"}, available); diff != "" {
		t.Errorf("available frameworks mismatch (-want +got):\n%s", diff)
	}

	var meta map[string][]CodeBlock
	decodeAttr(t, el, AttrFrameworkMeta, &meta)
	wantMeta := map[string][]CodeBlock{
		"react": {{Title: "App.tsx", Code: "render()", Language: "tsx"}},
		"vue":   {{Title: "", Code: "mount()", Language: "vue"}},
	}
	if diff := cmp.Diff(wantMeta, meta); diff != "" {
		t.Errorf("framework meta mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformFrameworks_RepeatedDivider(t *testing.T) {
	t.Parallel()

	root, _ := recognizeAndDispatch(t,
		`<!-- ::start:framework-panels -->`+
			`<h1>React</h1><p>1</p><h1>Vue</h1><p>2</p><h1>REACT</h1><p>3</p>`+
			`<!-- ::end:framework-panels -->`)

	el := children(root)[0]
	panels := children(el)
	if len(panels) != 2 {
		t.Fatalf("got %d panels, want 2", len(panels))
	}

	var texts []string
	for _, p := range children(panels[0]) {
		texts = append(texts, textContent(p))
	}
	if diff := cmp.Diff([]string{"1", "3"}, texts); diff != "" {
		t.Errorf("react panel mismatch (-want +got):\n%s", diff)
	}

	var meta map[string][]CodeBlock
	decodeAttr(t, el, AttrFrameworkMeta, &meta)
	if diff := cmp.Diff(map[string][]CodeBlock{"react": {}, "vue": {}}, meta); diff != "" {
		t.Errorf("framework meta mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformFrameworks_NoDivider(t *testing.T) {
	t.Parallel()

	root, diags := recognizeAndDispatch(t, `<!-- ::start:frameworks --><h2>A</h2><p>b</p><!-- ::end:frameworks -->`)

	el := children(root)[0]
	if diff := cmp.Diff([]string{"h2", "p"}, tags(children(el))); diff != "" {
		t.Errorf("component children mismatch (-want +got):\n%s", diff)
	}
	if _, ok := getAttr(el, AttrFrameworkMeta); ok {
		t.Error("meta attribute should not be set without dividers")
	}
	if len(diags.List()) == 0 {
		t.Error("expected a diagnostic for the missing divider")
	}
}

func TestCodeTitle_Priority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "data-title wins over title",
			content: `<pre><code title="t" data-title="dt">x</code></pre>`,
			want:    "dt",
		},
		{
			name:    "data-filename before title",
			content: `<pre><code title="t" data-filename="f.go">x</code></pre>`,
			want:    "f.go",
		},
		{
			name:    "attribute priority before node order",
			content: `<pre data-title="outer"><code title="inner">x</code></pre>`,
			want:    "outer",
		},
		{
			name:    "filename as last resort",
			content: `<pre><code filename="main.go">x</code></pre>`,
			want:    "main.go",
		},
		{
			name:    "blank values are skipped",
			content: `<pre><code data-title="  " title="real">x</code></pre>`,
			want:    "real",
		},
		{
			name:    "no title",
			content: `<pre><code>x</code></pre>`,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pre := children(mustParse(t, tt.content))[0]
			block, ok := extractCodeBlock(pre)
			if !ok {
				t.Fatal("extractCodeBlock() found no code block")
			}
			if block.Title != tt.want {
				t.Errorf("Title = %q, want %q", block.Title, tt.want)
			}
		})
	}
}

func TestExtractCodeBlock_NotCode(t *testing.T) {
	t.Parallel()

	for _, content := range []string{`<p>x</p>`, `<pre>plain</pre>`, `<pre><span>x</span><code>y</code></pre>`} {
		n := children(mustParse(t, content))[0]
		if _, ok := extractCodeBlock(n); ok {
			t.Errorf("extractCodeBlock(%s) = true, want false", content)
		}
	}
}
