package md2typst

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-md2typst/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.LinePreprocessor)(nil)
	_ pipeline.AssetExtractor       = (*pipeline.DataURIExtractor)(nil)
	_ pipeline.MarkupTransformer    = (*pipeline.TypstTransformer)(nil)
	_ pipeline.Previewer            = (*pipeline.GoldmarkPreviewer)(nil)
)

// Converter orchestrates the markdown-to-Typst conversion pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
type Converter struct {
	cfg          converterConfig
	log          logrus.FieldLogger
	publicLoader TemplateLoader // from WithTemplateLoader
	template     string         // template.typ content, loaded once
	preprocessor pipeline.MarkdownPreprocessor
	extractor    pipeline.AssetExtractor
	transformer  pipeline.MarkupTransformer
	previewer    pipeline.Previewer
}

// NewConverter creates a Converter with default configuration.
// The template is loaded once here; every conversion writes the same
// template.typ bytes.
// Returns error if the asset path, template or compression is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			templateName:  DefaultTemplate,
			decodeWorkers: defaultDecodeWorkers,
			compression:   CompressionDeflate,
		},
		log:          discardLogger(),
		preprocessor: &pipeline.LinePreprocessor{},
		transformer:  &pipeline.TypstTransformer{},
		previewer:    pipeline.NewGoldmarkPreviewer(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.compression.Validate(); err != nil {
		return nil, err
	}
	if c.cfg.compression == "" {
		c.cfg.compression = CompressionDeflate
	}
	if c.cfg.templateName == "" {
		c.cfg.templateName = DefaultTemplate
	}

	// Tests may inject an extractor.
	if c.extractor == nil {
		c.extractor = pipeline.NewDataURIExtractor(c.cfg.decodeWorkers)
	}

	loader := c.publicLoader
	if loader == nil {
		var err error
		loader, err = NewTemplateLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
	}

	tmpl, err := loader.LoadTemplate(c.cfg.templateName)
	if err != nil {
		return nil, fmt.Errorf("loading template %q: %w", c.cfg.templateName, err)
	}
	c.template = tmpl

	c.log.WithFields(logrus.Fields{
		"template":         c.cfg.templateName,
		"custom_templates": hasCustomTemplates(loader),
		"compression":      c.cfg.compression,
		"workers":          c.cfg.decodeWorkers,
	}).Debug("converter ready")

	return c, nil
}

// Convert runs the full pipeline and returns the archive and its parts.
// The context is checked between stages; a canceled conversion returns
// ctx.Err() and no result.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	log := c.log.WithField("bytes", len(input.Markdown))

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	extraction, err := c.extractor.Extract(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("extracting images: %w", err)
	}
	reportFallbacks(log, extraction.Assets)
	log.WithFields(logrus.Fields{
		"images":   len(extraction.Assets),
		"external": extraction.ExternalRefs,
	}).Debug("images extracted")

	body := c.transformer.Transform(ctx, extraction.Content)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title, author := input.metadata()
	mainDoc := pipeline.WrapDocument(body, pipeline.Metadata{Title: title, Author: author})

	data, err := c.assemble(mainDoc, extraction.Assets)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.WithField("archive_bytes", len(data)).Debug("archive assembled")

	res := &ConvertResult{
		Archive:        data,
		Main:           mainDoc,
		Images:         toImageInfos(extraction.Assets),
		ExternalImages: extraction.ExternalRefs,
	}

	if input.Preview {
		htmlContent, err := c.previewer.ToHTML(ctx, mdContent, title)
		if err != nil {
			return nil, fmt.Errorf("rendering preview: %w", err)
		}
		res.HTML = []byte(htmlContent)
	}

	return res, nil
}

// Close releases resources. The converter holds none today; Close exists so
// callers can defer it unconditionally.
func (c *Converter) Close() error {
	return nil
}

// Template returns the template.typ content written by this converter.
func (c *Converter) Template() string {
	return c.template
}

// hasCustomTemplates reports whether loader reads templates from an asset
// path. Caller-supplied loaders always count as custom.
func hasCustomTemplates(loader TemplateLoader) bool {
	if a, ok := loader.(*templateLoaderAdapter); ok {
		return a.resolver.HasCustomLoader()
	}
	return true
}

// reportFallbacks warns once per image whose mime type was not recognized.
func reportFallbacks(log logrus.FieldLogger, images []pipeline.ImageAsset) {
	for _, img := range images {
		if !img.Fallback {
			continue
		}
		log.WithFields(logrus.Fields{
			"index": img.Index,
			"mime":  img.MimeType,
			"path":  img.Path(),
		}).Warn("unsupported image type, writing as png")
	}
}

// toImageInfos converts extracted assets to their public description.
func toImageInfos(images []pipeline.ImageAsset) []ImageInfo {
	if len(images) == 0 {
		return nil
	}
	infos := make([]ImageInfo, len(images))
	for i, img := range images {
		infos[i] = ImageInfo{
			Index:    img.Index,
			Path:     img.Path(),
			MimeType: img.MimeType,
			Caption:  img.Caption,
			Size:     len(img.Data),
			Fallback: img.Fallback,
		}
	}
	return infos
}
