package archive

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
)

// ReadEntries decodes an archive into its entries, in archive order.
func ReadEntries(data []byte) ([]Entry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: reading: %v", ErrArchive, err)
	}

	entries := make([]Entry, 0, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %v", ErrArchive, f.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrArchive, f.Name, err)
		}
		entries = append(entries, Entry{
			Path:       f.Name,
			Content:    content,
			Compressed: f.Method == zip.Store,
		})
	}
	return entries, nil
}
