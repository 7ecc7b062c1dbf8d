package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestTypstTransformer_Transform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "heading 1", input: "# Title", expected: "= Title"},
		{name: "heading 2", input: "## Section", expected: "== Section"},
		{name: "heading 3", input: "### Sub", expected: "=== Sub"},
		{name: "heading 4 passes through", input: "#### Deep", expected: "#### Deep"},
		{name: "hash without space passes through", input: "#tag", expected: "#tag"},
		{name: "heading not at line start", input: "a # b", expected: "a # b"},
		{name: "blockquote", input: "> quoted", expected: "#quote[quoted]"},
		{name: "dash list item", input: "- one", expected: "- one"},
		{name: "star list item", input: "* one", expected: "- one"},
		{name: "link", input: "see [docs](https://e.com)", expected: `see #link("https://e.com")[docs]`},
		{name: "link url with stars", input: "[t](https://x.org/*y*)", expected: `#link("https://x.org/*y*")[t]`},
		{name: "link url with quote", input: `[x](https://e.com/"q")`, expected: `#link("https://e.com/\"q\"")[x]`},
		{name: "bold has no italic residue", input: "**bold**", expected: "*bold*"},
		{name: "italic alone", input: "*italic*", expected: "_italic_"},
		{
			name:     "star list item with emphasis",
			input:    "* **Bold** entry and *note*",
			expected: "- *Bold* entry and _note_",
		},
		{
			name:     "heading with emphasis",
			input:    "## A *fine* day",
			expected: "== A _fine_ day",
		},
		{
			name:     "quote with link",
			input:    "> read [this](https://e.com)",
			expected: `#quote[read #link("https://e.com")[this]]`,
		},
		{
			name:     "figure is left alone",
			input:    `#figure(image("images/img_0.png", width: 100%), caption: [cap])`,
			expected: `#figure(image("images/img_0.png", width: 100%), caption: [cap])`,
		},
		{
			name:     "multi-line document",
			input:    "# T\n\nSome **b** and *i*.\n\n- a\n* b\n\n> q",
			expected: "= T\n\nSome *b* and _i_.\n\n- a\n- b\n\n#quote[q]",
		},
	}

	tr := &TypstTransformer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tr.Transform(context.Background(), tt.input)
			if got != tt.expected {
				t.Errorf("Transform(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTypstSteps_Order(t *testing.T) {
	t.Parallel()

	want := []string{"headings", "emphasis", "blockquotes", "lists", "links"}
	if len(typstSteps) != len(want) {
		t.Fatalf("len(typstSteps) = %d, want %d", len(typstSteps), len(want))
	}
	for i, step := range typstSteps {
		if step.name != want[i] {
			t.Errorf("typstSteps[%d] = %q, want %q", i, step.name, want[i])
		}
	}
}

func TestTypstTransformer_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "# Title"
	got := (&TypstTransformer{}).Transform(ctx, input)
	if got != input {
		t.Errorf("Transform() with canceled context = %q, want input unchanged", got)
	}
}

func TestExtractThenTransform(t *testing.T) {
	t.Parallel()

	input := "# Title\n\nSome **bold** and *italic* text.\n\n![pic](data:image/jpeg;base64,QUJD)\n"

	ext, err := NewDataURIExtractor(1).Extract(context.Background(), input)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	got := (&TypstTransformer{}).Transform(context.Background(), ext.Content)

	for _, want := range []string{
		"= Title",
		"*bold*",
		"_italic_",
		`#figure(image("images/img_0.jpg", width: 100%), caption: [pic])`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "_bold_") {
		t.Errorf("bold was rendered as italic:\n%s", got)
	}
}

func TestExtractThenTransform_ExternalURLVerbatim(t *testing.T) {
	t.Parallel()

	input := "![c](https://x.org/a*b*c.png)\n[t](https://x.org/*y*)\n"

	ext, err := NewDataURIExtractor(1).Extract(context.Background(), input)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	got := (&TypstTransformer{}).Transform(context.Background(), ext.Content)

	want := "#figure(image(\"https://x.org/a*b*c.png\", width: 100%), caption: [c])\n" +
		"#link(\"https://x.org/*y*\")[t]\n"
	if got != want {
		t.Errorf("Transform() = %q, want %q", got, want)
	}
}
