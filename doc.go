// Package md2typst converts Markdown documents to self-contained Typst projects.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := md2typst.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2typst.Input{
//	    Markdown: "# Hello\n\nWorld",
//	    Title:    "My Book",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("book_typst.zip", result.Archive, 0644)
//
// The archive holds main.typ, template.typ and one images/img_N.ext entry
// per inline data URI image. Compile it with `typst compile main.typ`.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (line ending normalization)
//  2. Asset extraction: data URI images are decoded and replaced by figures
//  3. Markup transformation: headings, emphasis, quotes, lists and links
//  4. Document wrapping with the template preamble
//  5. Archive assembly (zip)
//
// Image indices follow first-appearance order in the document even when
// payloads are decoded in parallel (see WithDecodeWorkers).
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2typst.NewConverter(
//	    md2typst.WithLogger(logrus.StandardLogger()),
//	    md2typst.WithAssetPath("/path/to/custom/assets"),
//	    md2typst.WithTemplate("novel"),
//	    md2typst.WithCompression(md2typst.CompressionStore),
//	)
//
// # Errors
//
// A malformed data URI fails the whole conversion with an *ExtractionError,
// which matches ErrExtraction. Archive failures match ErrArchive. No partial
// archive is ever returned. Unknown image mime types are not errors: the
// image is written as png and reported in ImageInfo.Fallback.
//
// # Concurrency
//
// A Converter is safe for concurrent use. Each Convert call owns its image
// counter and asset list.
package md2typst
