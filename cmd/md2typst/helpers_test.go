package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	md2typst "github.com/alnah/go-md2typst"
	"github.com/alnah/go-md2typst/internal/archive"
)

// pngDataURI is a data URI whose payload decodes to the PNG signature.
const pngDataURI = "data:image/png;base64,iVBORw0KGgo="

// fixedNow returns a clock that advances by step on every call.
// Safe for concurrent use by batch workers.
func fixedNow(step time.Duration) func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(step)
		return t
	}
}

// newTestEnv returns an Environment backed by buffers and the given variables.
func newTestEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    fixedNow(time.Millisecond),
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(key string) string { return vars[key] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			sort.Strings(out)
			return out
		},
	}
	return env, &stdout, &stderr
}

// writeFile writes content under dir, creating parents.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// readArchiveEntries returns the entries of the zip at path keyed by name.
func readArchiveEntries(t *testing.T, path string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	entries, err := archive.ReadEntries(data)
	if err != nil {
		t.Fatalf("ReadEntries() error = %v", err)
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Path] = string(e.Content)
	}
	return out
}

// stubConverter returns a fixed result or error and records inputs.
type stubConverter struct {
	result *md2typst.ConvertResult
	err    error
	inputs chan md2typst.Input
}

func (s *stubConverter) Convert(ctx context.Context, in md2typst.Input) (*md2typst.ConvertResult, error) {
	if s.inputs != nil {
		s.inputs <- in
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// blockingConverter waits until its context is done.
type blockingConverter struct{}

func (blockingConverter) Convert(ctx context.Context, _ md2typst.Input) (*md2typst.ConvertResult, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
