package pipeline

import (
	"context"
	"regexp"
)

// Precompiled rewrite patterns. Line-anchored rules use multiline mode.
var (
	heading1Pattern   = regexp.MustCompile(`(?m)^# (.*)$`)
	heading2Pattern   = regexp.MustCompile(`(?m)^## (.*)$`)
	heading3Pattern   = regexp.MustCompile(`(?m)^### (.*)$`)
	blockquotePattern = regexp.MustCompile(`(?m)^> (.*)$`)
	listItemPattern   = regexp.MustCompile(`(?m)^[-*] (.*)$`)
	linkPattern       = regexp.MustCompile(`\[([^\[\]\n]*)\]\(([^()\n]*)\)`)
)

// MarkupTransformer defines the contract for the Markdown-to-Typst rewrite stage.
// Implementations never fail: unrecognized syntax passes through unchanged.
type MarkupTransformer interface {
	Transform(ctx context.Context, content string) string
}

// rewriteStep is one whole-document rewrite.
type rewriteStep struct {
	name  string
	apply func(string) string
}

// typstSteps run in this order. Emphasis precedes lists so that a
// line-leading "* " is still present for the list rule; links run last so
// their brackets are not mistaken for other constructs.
var typstSteps = []rewriteStep{
	{name: "headings", apply: convertHeadings},
	{name: "emphasis", apply: convertEmphasis},
	{name: "blockquotes", apply: convertBlockquotes},
	{name: "lists", apply: convertListItems},
	{name: "links", apply: convertLinks},
}

// TypstTransformer rewrites the supported Markdown subset to Typst markup.
type TypstTransformer struct{}

// Transform applies every rewrite step in order. On cancellation the
// partially rewritten content is returned; callers must check ctx.
func (t *TypstTransformer) Transform(ctx context.Context, content string) string {
	for _, step := range typstSteps {
		if ctx.Err() != nil {
			return content
		}
		content = step.apply(content)
	}
	return content
}

// convertHeadings rewrites levels 1 to 3. Deeper headings are left as is.
func convertHeadings(content string) string {
	content = heading1Pattern.ReplaceAllString(content, "= ${1}")
	content = heading2Pattern.ReplaceAllString(content, "== ${1}")
	return heading3Pattern.ReplaceAllString(content, "=== ${1}")
}

// convertBlockquotes wraps each "> " line in a quote block.
func convertBlockquotes(content string) string {
	return blockquotePattern.ReplaceAllString(content, "#quote[${1}]")
}

// convertListItems normalizes "- " and "* " bullets to Typst's "- ".
func convertListItems(content string) string {
	return listItemPattern.ReplaceAllString(content, "- ${1}")
}

// convertLinks rewrites [text](url) to #link("url")[text].
func convertLinks(content string) string {
	return linkPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := linkPattern.FindStringSubmatch(match)
		return Link(m[2], m[1])
	})
}
