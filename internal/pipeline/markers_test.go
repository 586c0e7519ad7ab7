package pipeline

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecognizeMarkers_Inline(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `<p>before</p><!-- ::badge color="red" --><p>after</p>`)
	RecognizeMarkers(root, nil)

	got := children(root)
	if diff := cmp.Diff([]string{"p", TagComponent, "p"}, tags(got)); diff != "" {
		t.Fatalf("root children mismatch (-want +got):\n%s", diff)
	}

	el := got[1]
	if name := ComponentName(el); name != "badge" {
		t.Errorf("ComponentName() = %q, want %q", name, "badge")
	}
	if diff := cmp.Diff(map[string]any{"color": "red"}, ComponentAttrs(el)); diff != "" {
		t.Errorf("ComponentAttrs() mismatch (-want +got):\n%s", diff)
	}
	if el.FirstChild != nil {
		t.Error("inline component should have no children")
	}
}

func TestRecognizeMarkers_Block(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `<!-- ::start:note kind=info --><p>a</p><ul><li>b</li></ul><!-- ::end:note --><p>c</p>`)
	RecognizeMarkers(root, nil)

	got := children(root)
	if diff := cmp.Diff([]string{TagComponent, "p"}, tags(got)); diff != "" {
		t.Fatalf("root children mismatch (-want +got):\n%s", diff)
	}

	el := got[0]
	if diff := cmp.Diff([]string{"p", "ul"}, tags(children(el))); diff != "" {
		t.Errorf("component children mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"kind": "info"}, ComponentAttrs(el)); diff != "" {
		t.Errorf("ComponentAttrs() mismatch (-want +got):\n%s", diff)
	}
	if text := textContent(got[1]); text != "c" {
		t.Errorf("trailing sibling text = %q, want %q", text, "c")
	}
}

func TestRecognizeMarkers_CaseInsensitive(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `<!-- ::START:Note --><p>a</p><!-- ::End:NOTE -->`)
	RecognizeMarkers(root, nil)

	got := children(root)
	if diff := cmp.Diff([]string{TagComponent}, tags(got)); diff != "" {
		t.Fatalf("root children mismatch (-want +got):\n%s", diff)
	}
	if name := ComponentName(got[0]); name != "note" {
		t.Errorf("ComponentName() = %q, want %q", name, "note")
	}
	if diff := cmp.Diff([]string{"p"}, tags(children(got[0]))); diff != "" {
		t.Errorf("component children mismatch (-want +got):\n%s", diff)
	}
}

func TestRecognizeMarkers_Unbalanced(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `<!-- ::start:note --><p>a</p>`)
	diags := NewDiagnostics(nil)
	RecognizeMarkers(root, diags)

	got := children(root)
	if diff := cmp.Diff([]string{TagComponent, "p"}, tags(got)); diff != "" {
		t.Fatalf("root children mismatch (-want +got):\n%s", diff)
	}
	if got[0].FirstChild != nil {
		t.Error("unbalanced start marker should become a childless component")
	}

	list := diags.List()
	if len(list) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %+v", len(list), list)
	}
	if list[0].Level != slog.LevelWarn || list[0].Component != "note" || list[0].Stage != StageMarkers {
		t.Errorf("unexpected diagnostic: %+v", list[0])
	}
}

func TestRecognizeMarkers_LeftUntouched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "plain comment", content: `<!-- just a note --><p>a</p>`},
		{name: "malformed name", content: `<!-- ::123 --><p>a</p>`},
		{name: "empty descriptor", content: `<!-- :: --><p>a</p>`},
		{name: "orphan end marker", content: `<!-- ::end:note --><p>a</p>`},
		{name: "no annotations", content: `<h2 id="x">Title</h2><p>text <em>em</em></p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := mustRender(t, mustParse(t, tt.content))

			root := mustParse(t, tt.content)
			RecognizeMarkers(root, nil)

			if got := mustRender(t, root); got != want {
				t.Errorf("tree changed:\ngot:  %s\nwant: %s", got, want)
			}
		})
	}
}

func TestRecognizeMarkers_NestedDifferentNames(t *testing.T) {
	t.Parallel()

	// Markers enclosed by a block are adopted as they are, not recognized.
	root := mustParse(t, `<!-- ::start:tabs --><h2>A</h2><!-- ::start:note --><p>x</p><!-- ::end:note --><!-- ::end:tabs -->`)
	RecognizeMarkers(root, nil)

	outer := children(root)
	if diff := cmp.Diff([]string{TagComponent}, tags(outer)); diff != "" {
		t.Fatalf("root children mismatch (-want +got):\n%s", diff)
	}
	if name := ComponentName(outer[0]); name != "tabs" {
		t.Fatalf("outer ComponentName() = %q, want %q", name, "tabs")
	}

	inner := children(outer[0])
	if diff := cmp.Diff([]string{"h2", "#comment", "p", "#comment"}, tags(inner)); diff != "" {
		t.Fatalf("outer children mismatch (-want +got):\n%s", diff)
	}
	if got := strings.TrimSpace(inner[1].Data); got != "::start:note" {
		t.Errorf("enclosed start marker = %q, want %q", got, "::start:note")
	}
}

func TestRecognizeMarkers_SameNameNesting(t *testing.T) {
	t.Parallel()

	// The first end marker closes the outer block; the inner start marker is
	// adopted as a plain comment and the trailing end marker is an orphan.
	root := mustParse(t, `<!-- ::start:note --><p>a</p><!-- ::start:note --><p>b</p><!-- ::end:note --><p>c</p><!-- ::end:note -->`)
	diags := NewDiagnostics(nil)
	RecognizeMarkers(root, diags)

	got := children(root)
	if diff := cmp.Diff([]string{TagComponent, "p", "#comment"}, tags(got)); diff != "" {
		t.Fatalf("root children mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"p", "#comment", "p"}, tags(children(got[0]))); diff != "" {
		t.Errorf("outer children mismatch (-want +got):\n%s", diff)
	}
	if n := len(diags.List()); n != 0 {
		t.Errorf("got %d diagnostics, want 0: %+v", n, diags.List())
	}
}

func TestRecognizeMarkers_EnclosedSiblingsKept(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		enclosed string
	}{
		{name: "inline marker", enclosed: `<p>a</p><!-- ::badge --><p>b</p>`},
		{name: "marker inside element", enclosed: `<div><!-- ::badge --></div><p>b</p>`},
		{name: "plain content", enclosed: `<p>a</p><ul><li>x</li></ul>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := mustRender(t, mustParse(t, tt.enclosed))

			root := mustParse(t, `<!-- ::start:note -->`+tt.enclosed+`<!-- ::end:note -->`)
			RecognizeMarkers(root, nil)

			got := children(root)
			if diff := cmp.Diff([]string{TagComponent}, tags(got)); diff != "" {
				t.Fatalf("root children mismatch (-want +got):\n%s", diff)
			}
			// Rendering the component as a fragment root yields its children
			if diff := cmp.Diff(want, mustRender(t, got[0])); diff != "" {
				t.Errorf("enclosed children changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecognizeMarkers_ScopedToParent(t *testing.T) {
	t.Parallel()

	t.Run("block inside element", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<div><!-- ::start:note --><p>a</p><!-- ::end:note --></div>`)
		RecognizeMarkers(root, nil)

		div := children(root)[0]
		if diff := cmp.Diff([]string{TagComponent}, tags(children(div))); diff != "" {
			t.Errorf("div children mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("markers in different parents do not pair", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, `<div><!-- ::start:note --></div><!-- ::end:note -->`)
		RecognizeMarkers(root, nil)

		got := children(root)
		if diff := cmp.Diff([]string{"div", "#comment"}, tags(got)); diff != "" {
			t.Fatalf("root children mismatch (-want +got):\n%s", diff)
		}
		inner := children(got[0])
		if len(inner) != 1 || !IsComponent(inner[0]) || inner[0].FirstChild != nil {
			t.Errorf("want one childless component in div, got %v", tags(inner))
		}
	})
}

func TestDiagnostics_Logger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	root := mustParse(t, `<!-- ::start:note --><p>a</p>`)
	RecognizeMarkers(root, NewDiagnostics(logger))

	out := buf.String()
	for _, want := range []string{"level=WARN", `reason="unbalanced block marker"`, "component=note", "stage=markers"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestDiagnostics_NilSafe(t *testing.T) {
	t.Parallel()

	var d *Diagnostics
	d.Report(Diagnostic{Reason: "ignored"})
	if got := d.List(); got != nil {
		t.Errorf("List() on nil = %v, want nil", got)
	}
}
