package pipeline

import (
	"fmt"
	"strings"
)

// typstStringEscaper escapes text for use inside a Typst string literal.
var typstStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// QuoteString returns s as a double-quoted Typst string literal.
func QuoteString(s string) string {
	return `"` + typstStringEscaper.Replace(s) + `"`
}

// Figure returns the Typst figure call for an image at path with caption.
// The caption is kept as markup so later stages can style it.
func Figure(path, caption string) string {
	return fmt.Sprintf("#figure(image(%s, width: 100%%), caption: [%s])", QuoteString(path), caption)
}

// Link returns the Typst hyperlink call for url with the given link text.
func Link(url, text string) string {
	return fmt.Sprintf("#link(%s)[%s]", QuoteString(url), text)
}
