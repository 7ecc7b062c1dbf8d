package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkPreviewer_ToHTML(t *testing.T) {
	t.Parallel()

	p := NewGoldmarkPreviewer()
	got, err := p.ToHTML(context.Background(), "# Hello\n\n**bold** and *it*\n\n> quote", "Preview <Title>")
	if err != nil {
		t.Fatalf("ToHTML() unexpected error: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Preview &lt;Title&gt;</title>",
		"<h1",
		"<strong>bold</strong>",
		"<em>it</em>",
		"<blockquote>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ToHTML() missing %q", want)
		}
	}
}

func TestGoldmarkPreviewer_KeepsDataURIImages(t *testing.T) {
	t.Parallel()

	got, err := NewGoldmarkPreviewer().ToHTML(context.Background(), "![pic](data:image/png;base64,QUJD)", "t")
	if err != nil {
		t.Fatalf("ToHTML() unexpected error: %v", err)
	}
	if !strings.Contains(got, `src="data:image/png;base64,QUJD"`) {
		t.Errorf("data URI image not preserved:\n%s", got)
	}
}

func TestGoldmarkPreviewer_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkPreviewer().ToHTML(ctx, "# x", "t")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
