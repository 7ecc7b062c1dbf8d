package pipeline

import "testing"

func TestConvertEmphasis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "no asterisks", input: "plain text", expected: "plain text"},
		{name: "bold", input: "some **bold** text", expected: "some *bold* text"},
		{name: "italic", input: "some *italic* text", expected: "some _italic_ text"},
		{name: "bold and italic in one line", input: "**b** and *i*", expected: "*b* and _i_"},
		{name: "bold italic", input: "***both***", expected: "*_both_*"},
		{name: "italic inside bold", input: "**bold *it* more**", expected: "*bold _it_ more*"},
		{name: "bold inside italic", input: "*a **b** c*", expected: "_a *b* c_"},
		{name: "intraword italic", input: "a*b*c", expected: "a_b_c"},
		{name: "list marker untouched", input: "* item", expected: "* item"},
		{name: "list marker with italic", input: "* item *x*", expected: "* item _x_"},
		{name: "arithmetic untouched", input: "2 * 3 * 4", expected: "2 * 3 * 4"},
		{name: "unclosed bold", input: "**open", expected: "**open"},
		{name: "closer after space ignored", input: "*a *", expected: "*a *"},
		{name: "thematic break untouched", input: "***", expected: "***"},
		{name: "long run untouched", input: "****x****", expected: "****x****"},
		{name: "escaped asterisk", input: `\*not\* *yes*`, expected: `\*not\* _yes_`},
		{name: "does not span lines", input: "*start\nend*", expected: "*start\nend*"},
		{name: "each line independent", input: "**a**\n*b*", expected: "*a*\n_b_"},
		{name: "unicode content", input: "**日本語**", expected: "*日本語*"},
		{name: "unmatched star inside bold escaped", input: "**a*b**", expected: `*a\*b*`},
		{name: "unmatched run inside italic escaped", input: "*a ** b*", expected: `_a \*\* b_`},
		{
			name:     "image url untouched",
			input:    `#figure(image("https://x.org/a*b*c.png", width: 100%), caption: [c])`,
			expected: `#figure(image("https://x.org/a*b*c.png", width: 100%), caption: [c])`,
		},
		{name: "image caption emphasized", input: `#figure(image("p.png", width: 100%), caption: [*c*])`, expected: `#figure(image("p.png", width: 100%), caption: [_c_])`},
		{name: "image url with escaped quote", input: `image("a\"*b*") *c*`, expected: `image("a\"*b*") _c_`},
		{name: "link destination untouched", input: "[t](https://x.org/*y*)", expected: "[t](https://x.org/*y*)"},
		{name: "link text emphasized", input: "[*t*](https://x.org/*y*)", expected: "[_t_](https://x.org/*y*)"},
		{name: "emphasis spanning a link", input: "*see [t](u/*y*)*", expected: "_see [t](u/*y*)_"},
		{name: "quoted prose still emphasized", input: `he said "*hi*"`, expected: `he said "_hi_"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convertEmphasis(tt.input)
			if got != tt.expected {
				t.Errorf("convertEmphasis(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
