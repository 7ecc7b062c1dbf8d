// Package assets provides the Typst templates shipped inside exported archives.
// Templates can be loaded from embedded files or custom filesystem paths.
package assets

// DefaultTemplateName is the name of the built-in book template.
const DefaultTemplateName = "book"

// templateExt is the file extension of Typst template files.
const templateExt = ".typ"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// ListTemplates returns the names of the embedded templates, sorted.
func ListTemplates() ([]string, error) {
	return defaultLoader.List()
}
