// Package pipeline implements the Markdown-to-Typst conversion stages.
//
// The stages run strictly in sequence on one document:
//   - Preprocessing (line ending normalization)
//   - Asset extraction: inline data URI images are decoded and replaced
//     by Typst figures pointing at images/img_<N>.<ext>
//   - Markup transformation: headings, emphasis, quotes, lists and links
//     are rewritten to Typst syntax
//   - Preamble wrapping: the body is wrapped in a show rule that applies
//     the document template
//
// Packaging the result into an archive is handled by the archive package.
// An optional HTML preview of the source document is rendered with Goldmark.
package pipeline
