package md2typst

import (
	"github.com/alnah/go-md2typst/internal/archive"
	"github.com/alnah/go-md2typst/internal/pipeline"
)

// assemble packages main.typ, template.typ and the images into a zip archive.
// Entries are written in that order, images by index. Either the complete
// archive is returned or an *ArchiveError and nothing else.
func (c *Converter) assemble(mainDoc string, images []pipeline.ImageAsset) ([]byte, error) {
	b := archive.NewBuilder(archive.Compression(c.cfg.compression))

	entries := make([]archive.Entry, 0, 2+len(images))
	entries = append(entries,
		archive.Entry{Path: pipeline.MainFile, Content: []byte(mainDoc)},
		archive.Entry{Path: pipeline.TemplateFile, Content: []byte(c.template)},
	)
	for _, img := range images {
		entries = append(entries, archive.Entry{
			Path:       img.Path(),
			Content:    img.Data,
			Compressed: true,
		})
	}

	for _, e := range entries {
		if err := b.Add(e); err != nil {
			b.Discard()
			return nil, &ArchiveError{Entry: e.Path, Err: err}
		}
	}

	data, err := b.Bytes()
	if err != nil {
		return nil, &ArchiveError{Err: err}
	}
	return data, nil
}
