package md2typst

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	assetPath     string
	templateName  string
	decodeWorkers int
	compression   ArchiveCompression
}

// defaultDecodeWorkers decodes inline images sequentially.
const defaultDecodeWorkers = 1

// discardLogger returns a logger that drops every entry.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// WithLogger sets the logger used for stage diagnostics and mime fallback
// warnings. A nil logger is ignored.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Converter) {
		if l != nil {
			c.log = l
		}
	}
}

// WithAssetPath sets a directory whose templates/ folder overrides the
// embedded templates. Templates missing there fall back to embedded ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithTemplate selects the template written as template.typ (default "book").
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithTemplateLoader sets a custom template source. It takes precedence
// over WithAssetPath.
func WithTemplateLoader(loader TemplateLoader) Option {
	return func(c *Converter) {
		c.publicLoader = loader
	}
}

// WithDecodeWorkers sets how many goroutines decode inline images.
// Image numbering does not depend on this value.
// Panics if n <= 0 (programmer error, similar to time.NewTicker).
func WithDecodeWorkers(n int) Option {
	if n <= 0 {
		panic("md2typst: WithDecodeWorkers count must be positive")
	}
	return func(c *Converter) {
		c.cfg.decodeWorkers = n
	}
}

// WithCompression sets how text entries are written to the archive.
func WithCompression(mode ArchiveCompression) Option {
	return func(c *Converter) {
		c.cfg.compression = mode
	}
}
