package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		input           string
		wantContains    []string
		wantNotContains []string
	}{
		{
			name:         "heading without generated id",
			input:        "## Setup",
			wantContains: []string{"<h2>Setup</h2>"},
		},
		{
			name:         "explicit heading id",
			input:        "## Setup {#custom}",
			wantContains: []string{`<h2 id="custom">Setup</h2>`},
		},
		{
			name:         "annotation comments pass through",
			input:        "<!-- ::start:tabs -->\n\n## A\n\n<!-- ::end:tabs -->\n",
			wantContains: []string{"<!-- ::start:tabs -->", "<!-- ::end:tabs -->"},
		},
		{
			name:  "fenced code with info attributes",
			input: "```tsx title=\"App.tsx\" filename=main\nconst a = 1;\n```\n",
			wantContains: []string{
				`<pre><code class="language-tsx" data-filename="main" data-title="App.tsx">`,
				"const a = 1;",
			},
		},
		{
			name:            "fenced code without language",
			input:           "```\nplain <b>\n```\n",
			wantContains:    []string{"<pre><code>plain &lt;b&gt;"},
			wantNotContains: []string{"language-"},
		},
		{
			name:         "GFM table",
			input:        "| a | b |\n|---|---|\n| 1 | 2 |\n",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "footnote",
			input:        "Text[^1]\n\n[^1]: Note\n",
			wantContains: []string{"footnote"},
		},
	}

	conv := NewGoldmarkConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() missing %q\ngot: %s", want, got)
				}
			}
			for _, unwanted := range tt.wantNotContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("ToHTML() should not contain %q\ngot: %s", unwanted, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
