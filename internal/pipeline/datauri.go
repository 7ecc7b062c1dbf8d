package pipeline

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// ImageExtension is the file extension of an extracted image.
type ImageExtension string

// Supported image extensions.
const (
	ExtPNG  ImageExtension = "png"
	ExtJPG  ImageExtension = "jpg"
	ExtWebP ImageExtension = "webp"
)

// DefaultImageExtension is used when the mime type is not recognized.
const DefaultImageExtension = ExtPNG

// ImagesDir is the archive directory holding extracted images.
const ImagesDir = "images"

// dataURIPrefix marks an image source as an inline payload.
const dataURIPrefix = "data:image"

// ImageAsset is a binary image decoded from an inline data URI.
type ImageAsset struct {
	Index     int            // 0-based, first-appearance order
	Data      []byte         // decoded payload
	Extension ImageExtension // png, jpg or webp
	Caption   string         // original alt text, may be empty
	MimeType  string         // mime type as written in the data URI
	Fallback  bool           // true if MimeType was unknown and png was assumed
}

// FileName returns img_<index>.<extension>.
func (a ImageAsset) FileName() string {
	return "img_" + strconv.Itoa(a.Index) + "." + string(a.Extension)
}

// Path returns the archive path of the asset, relative to the main document.
func (a ImageAsset) Path() string {
	return ImagesDir + "/" + a.FileName()
}

// isDataURI reports whether an image source embeds its payload.
func isDataURI(src string) bool {
	return len(src) >= len(dataURIPrefix) && strings.EqualFold(src[:len(dataURIPrefix)], dataURIPrefix)
}

// splitDataURI separates the metadata prefix from the payload at the first comma.
// Returns ok=false if there is no comma.
func splitDataURI(src string) (meta, payload string, ok bool) {
	return strings.Cut(src, ",")
}

// mimeFromMeta extracts the mime type from a data URI prefix
// such as "data:image/jpeg;base64".
func mimeFromMeta(meta string) string {
	mime := meta
	if _, after, found := strings.Cut(mime, ":"); found {
		mime = after
	}
	if before, _, found := strings.Cut(mime, ";"); found {
		mime = before
	}
	return strings.ToLower(strings.TrimSpace(mime))
}

// extensionForMime maps a mime type to an image extension.
// Unknown types fall back to png and report known=false.
func extensionForMime(mime string) (ext ImageExtension, known bool) {
	switch mime {
	case "image/jpeg":
		return ExtJPG, true
	case "image/webp":
		return ExtWebP, true
	case "image/png":
		return ExtPNG, true
	}
	return DefaultImageExtension, false
}

// decodePayload decodes a base64 payload. Whitespace and padding are optional.
func decodePayload(payload string) ([]byte, error) {
	cleaned := strings.Join(strings.Fields(payload), "")
	cleaned = strings.TrimRight(cleaned, "=")
	data, err := base64.RawStdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return data, nil
}
