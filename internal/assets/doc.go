// Package assets provides the Typst templates shipped inside exported archives.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	TemplateLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in templates)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in "book" template compiled into the binary.
//
// FilesystemLoader allows users to provide their own templates from a
// directory, with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the template
// is not found there.
//
// # Directory Structure
//
//	{basePath}/
//	└── templates/
//	    └── {name}.typ     # Typst template (e.g., book.typ)
//
// A template must define the function imported by main.typ (book) taking
// title and author named arguments followed by the document body.
//
// # Security
//
// Template names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
