package md2typst

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2typst/internal/archive"
	"github.com/alnah/go-md2typst/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidMetadata = errors.New("invalid document metadata")

	// ErrExtraction matches every *ExtractionError.
	ErrExtraction = pipeline.ErrExtraction

	// ErrMalformedDataURI indicates a data URI without the payload separator.
	ErrMalformedDataURI = pipeline.ErrMalformedDataURI

	// ErrInvalidPayload indicates a data URI payload that is not valid base64.
	ErrInvalidPayload = pipeline.ErrInvalidPayload

	// ErrArchive matches every *ArchiveError.
	ErrArchive = archive.ErrArchive

	// ErrPreview indicates the HTML preview could not be rendered.
	ErrPreview = pipeline.ErrPreview

	// Asset loading errors.
	ErrTemplateNotFound   = errors.New("template not found")
	ErrInvalidAssetPath   = errors.New("invalid asset path")
	ErrInvalidCompression = errors.New("invalid archive compression")
)

// ExtractionError reports the image reference that stopped extraction.
// Occurrence counts every image reference in document order, data URI or not.
type ExtractionError = pipeline.ExtractionError

// ArchiveError reports a failure while assembling the output archive.
type ArchiveError struct {
	Entry string // archive path being written, empty when serializing
	Err   error
}

func (e *ArchiveError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("assembling archive: %v", e.Err)
	}
	return fmt.Sprintf("assembling archive entry %s: %v", e.Entry, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// Is reports ErrArchive for every ArchiveError.
func (e *ArchiveError) Is(target error) bool {
	return target == ErrArchive
}
