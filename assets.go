package md2typst

import (
	"errors"

	"github.com/alnah/go-md2typst/internal/assets"
)

// DefaultTemplate is the name of the built-in book template.
const DefaultTemplate = assets.DefaultTemplateName

// TemplateLoader defines the contract for loading Typst templates.
// Implementations may load from filesystem, embedded assets, a database, etc.
//
// The library provides NewTemplateLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
//
// A template must define a function named book taking title and author named
// arguments followed by the document body.
type TemplateLoader interface {
	// LoadTemplate loads a template by name (without .typ extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewTemplateLoader creates a TemplateLoader for the given base path.
// If basePath is empty, returns a loader using only embedded templates.
// If basePath is set, templates in {basePath}/templates/{name}.typ take
// precedence with fallback to embedded.
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewTemplateLoader(basePath string) (TemplateLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &templateLoaderAdapter{resolver: resolver}, nil
}

// EmbeddedTemplates returns the names of the built-in templates.
func EmbeddedTemplates() []string {
	names, err := assets.ListTemplates()
	if err != nil {
		return nil
	}
	return names
}

// templateLoaderAdapter wraps internal AssetResolver to return public errors.
type templateLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *templateLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrTemplateNotFound),
		errors.Is(err, assets.ErrInvalidAssetName),
		errors.Is(err, assets.ErrEmptyTemplate):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}

// Compile-time interface check.
var _ TemplateLoader = (*templateLoaderAdapter)(nil)
