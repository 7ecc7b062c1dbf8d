package md2typst

import (
	"fmt"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-md2typst/internal/archive"
)

// Metadata defaults used when Input leaves a field empty.
const (
	DefaultTitle  = "Exported Ebook"
	DefaultAuthor = "Anonymous"
)

// Metadata limits.
const (
	MaxTitleLength  = 200
	MaxAuthorLength = 100
)

// ArchiveCompression selects how text entries are stored in the archive.
// Images are always stored as is.
type ArchiveCompression string

// Supported compression modes.
const (
	CompressionDeflate ArchiveCompression = ArchiveCompression(archive.CompressionDeflate)
	CompressionStore   ArchiveCompression = ArchiveCompression(archive.CompressionStore)
)

// Validate checks that c is a known mode. The zero value means deflate.
func (c ArchiveCompression) Validate() error {
	switch c {
	case "", CompressionDeflate, CompressionStore:
		return nil
	}
	return fmt.Errorf("%w: %q (must be deflate or store)", ErrInvalidCompression, string(c))
}

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content, may be empty
	Title    string // Document title (optional, default DefaultTitle)
	Author   string // Document author (optional, default DefaultAuthor)
	Preview  bool   // Also render an HTML preview of the source
}

// Validate checks that metadata is usable inside a Typst string literal.
// Any Markdown, including the empty document, is accepted.
//
// This is a trust boundary for library users who build Input manually.
// CLI users have metadata validated earlier by config.Validate.
func (in Input) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.RuneLength(0, MaxTitleLength), validation.By(noControlChars)),
		validation.Field(&in.Author, validation.RuneLength(0, MaxAuthorLength), validation.By(noControlChars)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	return nil
}

// metadata returns title and author with defaults applied.
func (in Input) metadata() (title, author string) {
	title, author = in.Title, in.Author
	if title == "" {
		title = DefaultTitle
	}
	if author == "" {
		author = DefaultAuthor
	}
	return title, author
}

// noControlChars rejects line breaks and other control characters.
func noControlChars(value any) error {
	s, _ := value.(string)
	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("must not contain control characters")
		}
	}
	return nil
}

// ImageInfo describes one image written to the archive.
type ImageInfo struct {
	Index    int    // 0-based, first-appearance order
	Path     string // archive path, images/img_<Index>.<ext>
	MimeType string // mime type declared by the data URI
	Caption  string // alt text of the reference
	Size     int    // decoded size in bytes
	Fallback bool   // mime type was unknown; written as png
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	Archive        []byte      // zip archive (main.typ, template.typ, images/)
	Main           string      // content of main.typ
	Images         []ImageInfo // extracted images, ordered by Index
	ExternalImages int         // figures referencing external URLs
	HTML           []byte      // HTML preview, only when Input.Preview is set
}
