package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conversion stages.
var (
	// ErrExtraction indicates an image reference could not be extracted.
	// Every *ExtractionError matches it with errors.Is.
	ErrExtraction = errors.New("image extraction failed")

	// ErrMalformedDataURI indicates a data URI without the ',' separating
	// metadata from payload.
	ErrMalformedDataURI = errors.New("malformed data URI: missing ',' separator")

	// ErrInvalidPayload indicates a data URI payload that is not valid base64.
	ErrInvalidPayload = errors.New("invalid base64 payload")
)

// ExtractionError reports the image reference that aborted extraction.
type ExtractionError struct {
	Occurrence int   // 0-based position among all image references
	Offset     int   // byte offset of the reference in the preprocessed document
	Err        error // ErrMalformedDataURI or a wrapped ErrInvalidPayload
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%v: image reference #%d at offset %d: %v", ErrExtraction, e.Occurrence, e.Offset, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrExtraction) true for any ExtractionError.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}
