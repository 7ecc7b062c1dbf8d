package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrPreview indicates the HTML preview could not be rendered.
var ErrPreview = errors.New("HTML preview failed")

// previewTemplate wraps Goldmark's fragment output in a complete HTML5 document.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { max-width: 800px; margin: 0 auto; padding: 20px; font-family: serif; line-height: 1.6; color: #333; }
img { max-width: 100%%; }
blockquote { border-left: 4px solid #ddd; padding-left: 1em; color: #666; font-style: italic; }
h1, h2, h3 { font-family: sans-serif; }
</style>
</head>
<body>
%s
</body>
</html>`

// Previewer renders the source Markdown for inspection next to the archive.
type Previewer interface {
	ToHTML(ctx context.Context, content, title string) (string, error)
}

// GoldmarkPreviewer renders Markdown to HTML using goldmark (pure Go).
type GoldmarkPreviewer struct {
	md goldmark.Markdown
}

// NewGoldmarkPreviewer creates a GoldmarkPreviewer with GFM extensions and syntax highlighting.
func NewGoldmarkPreviewer() *GoldmarkPreviewer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles keep the preview self-contained
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithXHTML(),
		),
	)
	return &GoldmarkPreviewer{md: md}
}

// ToHTML converts Markdown content to a standalone HTML5 document.
// Goldmark doesn't take a context, so conversion runs in a goroutine and
// the caller is released on cancellation.
func (p *GoldmarkPreviewer) ToHTML(ctx context.Context, content, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := p.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrPreview, err)}
			return
		}
		done <- result{html: fmt.Sprintf(previewTemplate, html.EscapeString(title), buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
