package archive

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// Sentinel errors for archive operations.
var (
	// ErrArchive indicates the archive could not be assembled or serialized.
	ErrArchive = errors.New("archive assembly failed")

	// ErrDuplicateEntry indicates two entries share a path.
	ErrDuplicateEntry = errors.New("duplicate archive entry")

	// ErrInvalidEntryPath indicates an empty, absolute or escaping entry path.
	ErrInvalidEntryPath = errors.New("invalid archive entry path")

	// ErrBuilderClosed indicates use of a builder after Bytes or Discard.
	ErrBuilderClosed = errors.New("archive builder already finalized")
)

// Compression selects how text entries are stored.
type Compression string

// Supported compression modes.
const (
	CompressionDeflate Compression = "deflate"
	CompressionStore   Compression = "store"
)

// entryTime is the modification time written for every entry.
// 1980-01-01 is the earliest time the zip format can represent.
var entryTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Entry is one file in the archive.
type Entry struct {
	Path    string
	Content []byte
	// Compressed marks content that is already compressed (e.g. images);
	// such entries are stored without deflate.
	Compressed bool
}

// Builder accumulates entries and serializes them in insertion order.
// A Builder is not safe for concurrent use.
type Builder struct {
	compression Compression
	entries     []Entry
	paths       map[string]struct{}
	done        bool
}

// NewBuilder creates an empty Builder. Unknown compression values use deflate.
func NewBuilder(compression Compression) *Builder {
	if compression != CompressionStore {
		compression = CompressionDeflate
	}
	return &Builder{
		compression: compression,
		paths:       make(map[string]struct{}),
	}
}

// Add registers an entry. Paths use forward slashes and must be unique.
func (b *Builder) Add(e Entry) error {
	if b.done {
		return ErrBuilderClosed
	}
	if err := validateEntryPath(e.Path); err != nil {
		return err
	}
	if _, exists := b.paths[e.Path]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, e.Path)
	}
	b.paths[e.Path] = struct{}{}
	b.entries = append(b.entries, e)
	return nil
}

// Bytes serializes all entries into a zip archive and finalizes the builder.
// On error nothing is returned and the builder is discarded.
func (b *Builder) Bytes() ([]byte, error) {
	if b.done {
		return nil, ErrBuilderClosed
	}
	defer b.Discard()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range b.entries {
		if err := b.writeEntry(zw, e); err != nil {
			_ = zw.Close()
			return nil, fmt.Errorf("%w: writing %s: %v", ErrArchive, e.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: finalizing: %v", ErrArchive, err)
	}
	return buf.Bytes(), nil
}

// Discard drops all entries. Safe to call more than once.
func (b *Builder) Discard() {
	b.done = true
	b.entries = nil
	b.paths = nil
}

// writeEntry writes one entry with a fixed header.
func (b *Builder) writeEntry(zw *zip.Writer, e Entry) error {
	method := zip.Deflate
	if e.Compressed || b.compression == CompressionStore {
		method = zip.Store
	}

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     e.Path,
		Method:   method,
		Modified: entryTime,
	})
	if err != nil {
		return err
	}
	_, err = w.Write(e.Content)
	return err
}

// validateEntryPath rejects paths that would not extract inside the target directory.
func validateEntryPath(p string) error {
	if p == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidEntryPath)
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, `\`) {
		return fmt.Errorf("%w: %q", ErrInvalidEntryPath, p)
	}
	if cleaned := path.Clean(p); cleaned != p || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("%w: %q", ErrInvalidEntryPath, p)
	}
	return nil
}
