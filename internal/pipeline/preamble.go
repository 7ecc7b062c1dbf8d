package pipeline

import "fmt"

// Archive layout of a Typst project.
const (
	MainFile     = "main.typ"
	TemplateFile = "template.typ"
	TemplateFunc = "book"
)

// Metadata is passed to the template function by the preamble.
type Metadata struct {
	Title  string
	Author string
}

// preambleTemplate imports the template and applies it to the whole document.
// Arguments: template file, function name, function name, title, author, body.
const preambleTemplate = `#import "%s": %s

#show: doc => %s(
  title: %s,
  author: %s,
  doc
)

%s`

// WrapDocument prepends the preamble that imports the template and applies
// it with meta to body.
func WrapDocument(body string, meta Metadata) string {
	return fmt.Sprintf(preambleTemplate,
		TemplateFile, TemplateFunc, TemplateFunc,
		QuoteString(meta.Title), QuoteString(meta.Author),
		body,
	)
}
