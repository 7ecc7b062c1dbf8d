package pipeline

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

// imageRefPattern matches ![caption](source) within a single line.
var imageRefPattern = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)

// AssetExtractor defines the contract for the image extraction stage.
type AssetExtractor interface {
	Extract(ctx context.Context, content string) (*Extraction, error)
}

// Extraction is the output of the extraction stage.
type Extraction struct {
	Content      string       // document with every image reference rewritten to a figure
	Assets       []ImageAsset // decoded images, ordered by Index
	ExternalRefs int          // figures that kept their URL source
}

// imageRewrite is one scanned image reference: the span it replaces and,
// for data URIs, the asset it registers. Spans are in document order.
type imageRewrite struct {
	start, end int
	caption    string
	source     string
	payload    string
	asset      *ImageAsset // nil for external URLs
}

// replacement returns the figure markup for the rewrite.
func (r *imageRewrite) replacement() string {
	if r.asset != nil {
		return Figure(r.asset.Path(), r.caption)
	}
	return Figure(r.source, r.caption)
}

// DataURIExtractor decodes inline data URI images into assets.
// Decoding may run on several goroutines; index assignment never does.
type DataURIExtractor struct {
	workers int
}

// NewDataURIExtractor creates an extractor that decodes payloads with up to
// workers goroutines. Values below 1 decode sequentially.
func NewDataURIExtractor(workers int) *DataURIExtractor {
	if workers < 1 {
		workers = 1
	}
	return &DataURIExtractor{workers: workers}
}

// Extract rewrites every image reference to a Typst figure and returns the
// decoded data URI images. The first malformed data URI aborts extraction
// and no assets are returned.
func (e *DataURIExtractor) Extract(ctx context.Context, content string) (*Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// A malformed reference ends the scan, but an invalid payload before it
	// is the earlier failure and wins.
	rewrites, scanErr := scanImageRefs(content)
	if err := e.decode(ctx, rewrites); err != nil {
		return nil, err
	}
	if scanErr != nil {
		return nil, scanErr
	}

	return materialize(content, rewrites), nil
}

// scanImageRefs walks image references left to right and assigns asset
// indices in scan order. Payloads are not decoded here. On a malformed data
// URI it returns the references before it along with the error.
func scanImageRefs(content string) ([]imageRewrite, error) {
	matches := imageRefPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	rewrites := make([]imageRewrite, 0, len(matches))
	next := 0
	for occurrence, m := range matches {
		rw := imageRewrite{
			start:   m[0],
			end:     m[1],
			caption: content[m[2]:m[3]],
			source:  content[m[4]:m[5]],
		}

		if isDataURI(rw.source) {
			meta, payload, ok := splitDataURI(rw.source)
			if !ok {
				return rewrites, &ExtractionError{Occurrence: occurrence, Offset: rw.start, Err: ErrMalformedDataURI}
			}
			mime := mimeFromMeta(meta)
			ext, known := extensionForMime(mime)
			rw.payload = payload
			rw.asset = &ImageAsset{
				Index:     next,
				Extension: ext,
				Caption:   rw.caption,
				MimeType:  mime,
				Fallback:  !known,
			}
			next++
		}

		rewrites = append(rewrites, rw)
	}
	return rewrites, nil
}

// decode fills in asset bytes. Errors are reported for the earliest failing
// reference in document order, regardless of which goroutine saw it first.
func (e *DataURIExtractor) decode(ctx context.Context, rewrites []imageRewrite) error {
	pending := make([]int, 0, len(rewrites))
	for i := range rewrites {
		if rewrites[i].asset != nil {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	if e.workers == 1 || len(pending) == 1 {
		for _, i := range pending {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := decodePayload(rewrites[i].payload)
			if err != nil {
				return extractionErrorAt(rewrites, i, err)
			}
			rewrites[i].asset.Data = data
		}
		return nil
	}

	errs := make([]error, len(rewrites))

	// Decode failures are recorded per reference instead of returned, so that
	// every payload is attempted and the earliest failure wins.
	var g errgroup.Group
	g.SetLimit(e.workers)
	for _, i := range pending {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := decodePayload(rewrites[i].payload)
			if err != nil {
				errs[i] = err
				return nil
			}
			rewrites[i].asset.Data = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, i := range pending {
		if errs[i] != nil {
			return extractionErrorAt(rewrites, i, errs[i])
		}
	}
	return nil
}

// extractionErrorAt builds the error for rewrites[i].
func extractionErrorAt(rewrites []imageRewrite, i int, err error) error {
	return &ExtractionError{Occurrence: i, Offset: rewrites[i].start, Err: err}
}

// materialize builds the rewritten document and the ordered asset list.
func materialize(content string, rewrites []imageRewrite) *Extraction {
	out := &Extraction{Content: content}
	if len(rewrites) == 0 {
		return out
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for i := range rewrites {
		rw := &rewrites[i]
		b.WriteString(content[last:rw.start])
		b.WriteString(rw.replacement())
		last = rw.end

		if rw.asset != nil {
			out.Assets = append(out.Assets, *rw.asset)
		} else {
			out.ExternalRefs++
		}
	}
	b.WriteString(content[last:])

	out.Content = b.String()
	return out
}
