package pipeline

import "strings"

// convertEmphasis rewrites Markdown emphasis to Typst emphasis:
//
//	**bold**     -> *bold*
//	*italic*     -> _italic_
//	***both***   -> *_both_*
//
// Delimiters are matched by run length, so bold and italic never compete for
// the same asterisks. Matching is scoped to a single line. A run opens only
// when followed by a non-space and closes only when preceded by one, which
// leaves list markers ("* item") and arithmetic ("2 * 3") untouched.
// Image and link targets are never rewritten.
func convertEmphasis(content string) string {
	if !strings.Contains(content, "*") {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.Contains(line, "*") {
			var b strings.Builder
			b.Grow(len(line))
			emphasizeInto(&b, line, false)
			lines[i] = b.String()
		}
	}
	return strings.Join(lines, "\n")
}

// emphasizeInto writes s to b with emphasis runs converted. Inside an
// emphasis span (nested), stars that do not delimit anything are escaped so
// they cannot close the enclosing Typst markup early.
func emphasizeInto(b *strings.Builder, s string, nested bool) {
	i := 0
	for i < len(s) {
		if end := verbatimEnd(s, i); end > i {
			b.WriteString(s[i:end])
			i = end
			continue
		}

		c := s[i]
		if c == '\\' && i+1 < len(s) {
			b.WriteString(s[i : i+2])
			i += 2
			continue
		}
		if c != '*' {
			b.WriteByte(c)
			i++
			continue
		}

		n := starRun(s, i)
		open := i + n
		if n > 3 || !canOpenEmphasis(s, open) {
			writeStars(b, n, nested)
			i = open
			continue
		}

		closeAt := findEmphasisCloser(s, open, n)
		if closeAt < 0 {
			writeStars(b, n, nested)
			i = open
			continue
		}

		start, end := emphasisMarkers(n)
		b.WriteString(start)
		emphasizeInto(b, s[open:closeAt], true)
		b.WriteString(end)
		i = closeAt + n
	}
}

// writeStars writes n literal stars, escaped when nested.
func writeStars(b *strings.Builder, n int, nested bool) {
	star := "*"
	if nested {
		star = `\*`
	}
	for range n {
		b.WriteString(star)
	}
}

// verbatimEnd returns the end of a span starting at i that must be copied
// unchanged, or -1. Two spans qualify: the string literal of an image( or
// link( call, and a Markdown link destination "](url)".
func verbatimEnd(s string, i int) int {
	switch s[i] {
	case '"':
		if !strings.HasSuffix(s[:i], "image(") && !strings.HasSuffix(s[:i], "link(") {
			return -1
		}
		for j := i + 1; j < len(s); j++ {
			switch s[j] {
			case '\\':
				j++
			case '"':
				return j + 1
			}
		}
	case ']':
		if i+1 >= len(s) || s[i+1] != '(' {
			return -1
		}
		for j := i + 2; j < len(s); j++ {
			switch s[j] {
			case ')':
				return j + 1
			case '(', '\n':
				return -1
			}
		}
	}
	return -1
}

// starRun returns the number of consecutive '*' starting at i.
func starRun(s string, i int) int {
	n := 0
	for i+n < len(s) && s[i+n] == '*' {
		n++
	}
	return n
}

// canOpenEmphasis reports whether a run ending before pos may open emphasis.
func canOpenEmphasis(s string, pos int) bool {
	return pos < len(s) && !isInlineSpace(s[pos])
}

// findEmphasisCloser returns the index of the first run of exactly n stars
// after from that is preceded by a non-space, or -1. Verbatim spans are
// skipped.
func findEmphasisCloser(s string, from, n int) int {
	j := from
	for j < len(s) {
		if end := verbatimEnd(s, j); end > j {
			j = end
			continue
		}
		switch s[j] {
		case '\\':
			j += 2
		case '*':
			m := starRun(s, j)
			if m == n && j > from && !isInlineSpace(s[j-1]) {
				return j
			}
			j += m
		default:
			j++
		}
	}
	return -1
}

// emphasisMarkers returns the Typst delimiters for a run of n stars.
func emphasisMarkers(n int) (start, end string) {
	switch n {
	case 1:
		return "_", "_"
	case 2:
		return "*", "*"
	default:
		return "*_", "_*"
	}
}

func isInlineSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
