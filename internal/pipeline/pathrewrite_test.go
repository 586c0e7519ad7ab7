package pipeline

import "testing"

func TestRewriteMarkdownLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		href string
		want string
	}{
		{name: "sibling page", href: "setup.md", want: "setup.html"},
		{name: "nested page with fragment", href: "guide/setup.md#install", want: "guide/setup.html#install"},
		{name: "query kept", href: "../api.markdown?v=2", want: "../api.html?v=2"},
		{name: "uppercase extension", href: "README.MD", want: "README.html"},
		{name: "dot relative", href: "./intro.md", want: "./intro.html"},
		{name: "not markdown", href: "image.png", want: "image.png"},
		{name: "absolute URL", href: "https://example.com/a.md", want: "https://example.com/a.md"},
		{name: "protocol relative", href: "//cdn.example.com/a.md", want: "//cdn.example.com/a.md"},
		{name: "site absolute", href: "/docs/a.md", want: "/docs/a.md"},
		{name: "anchor", href: "#a.md", want: "#a.md"},
		{name: "mailto", href: "mailto:me@example.com", want: "mailto:me@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := mustParse(t, `<p><a href="`+tt.href+`">link</a></p>`)
			RewriteMarkdownLinks(root)

			a := findAll(root, isTag("a"))[0]
			if got := attrOr(a, "href"); got != tt.want {
				t.Errorf("href = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"./page.md", true},
		{"docs/page.md", true},
		{"../parent.md", true},
		{"page.md", true},

		{"", false},
		{"http://example.com/page.md", false},
		{"https://example.com/page.md", false},
		{"file:///abs/page.md", false},
		{"//cdn.example.com/page.md", false},
		{"#anchor", false},
		{"/absolute/page.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := isRelativePath(tt.path); got != tt.want {
				t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
