package md2typst

// Notes:
// - Input.Validate: metadata limits and control characters. Markdown content
//   itself is never validated; the empty document is valid.
// - ArchiveCompression.Validate: enum check, zero value allowed.

import (
	"errors"
	"strings"
	"testing"
)

func TestInput_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{"markdown only", Input{Markdown: "x"}, nil},
		{"full metadata", Input{Markdown: "x", Title: "Tales", Author: "Ann"}, nil},
		{"unicode metadata", Input{Markdown: "x", Title: "Contes d'été", Author: "Zoé"}, nil},
		{"title at limit", Input{Markdown: "x", Title: strings.Repeat("é", MaxTitleLength)}, nil},
		{"empty markdown", Input{Title: "t"}, nil},
		{"title too long", Input{Markdown: "x", Title: strings.Repeat("a", MaxTitleLength+1)}, ErrInvalidMetadata},
		{"author too long", Input{Markdown: "x", Author: strings.Repeat("a", MaxAuthorLength+1)}, ErrInvalidMetadata},
		{"newline in title", Input{Markdown: "x", Title: "a\nb"}, ErrInvalidMetadata},
		{"tab in author", Input{Markdown: "x", Author: "a\tb"}, ErrInvalidMetadata},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.input.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInput_Metadata(t *testing.T) {
	t.Parallel()

	title, author := Input{Markdown: "x"}.metadata()
	if title != DefaultTitle || author != DefaultAuthor {
		t.Errorf("metadata() = %q, %q, want defaults", title, author)
	}

	title, author = Input{Markdown: "x", Title: "T", Author: "A"}.metadata()
	if title != "T" || author != "A" {
		t.Errorf("metadata() = %q, %q, want T, A", title, author)
	}
}

func TestArchiveCompression_Validate(t *testing.T) {
	t.Parallel()

	for _, c := range []ArchiveCompression{"", CompressionDeflate, CompressionStore} {
		if err := c.Validate(); err != nil {
			t.Errorf("%q.Validate() error = %v", c, err)
		}
	}

	for _, c := range []ArchiveCompression{"zstd", "DEFLATE", " store"} {
		if err := c.Validate(); !errors.Is(err, ErrInvalidCompression) {
			t.Errorf("%q.Validate() error = %v, want ErrInvalidCompression", c, err)
		}
	}
}
