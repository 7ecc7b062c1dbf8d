package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	md2typst "github.com/alnah/go-md2typst"
	"github.com/alnah/go-md2typst/internal/fileutil"
	"github.com/alnah/go-md2typst/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown    = errors.New("failed to read markdown file")
	ErrWriteArchive    = errors.New("failed to write archive")
	ErrWritePreview    = errors.New("failed to write HTML preview")
	ErrCreateOutputDir = errors.New("failed to create output directory")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2typst.Input) (*md2typst.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2typst.Converter)(nil)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	title   string
	author  string
	timeout time.Duration // 0 = no per-file limit
	html    bool
	now     func() time.Time
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Images     int // extracted inline images
	Fallbacks  int // images written with the png fallback extension
	Err        error
	Duration   time.Duration
}

// convertBatch converts files with a bounded pool of workers. The converter
// is shared; it is safe for concurrent use. Results keep the files' order.
func convertBatch(ctx context.Context, conv CLIConverter, workers int, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath:  files[idx].InputPath,
						OutputPath: files[idx].OutputPath,
						Err:        ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile converts a single file and writes its outputs atomically.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := params.now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = params.now().Sub(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	if params.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.timeout)
		defer cancel()
	}

	out, err := conv.Convert(ctx, md2typst.Input{
		Markdown: string(content),
		Title:    params.title,
		Author:   params.author,
		Preview:  params.html,
	})
	if err != nil {
		return finish(err)
	}

	result.Images = len(out.Images)
	for _, img := range out.Images {
		if img.Fallback {
			result.Fallbacks++
		}
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrCreateOutputDir, err))
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, out.Archive, filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWriteArchive, err))
	}

	if params.html {
		if err := fileutil.WriteFileAtomic(previewPath(f.OutputPath), out.HTML, filePermissions); err != nil {
			return finish(fmt.Errorf("%w: %v", ErrWritePreview, err))
		}
	}

	return finish(nil)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
// Failures always go to stderr, with a hint when one applies.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintForFile(r.Err))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %v)\n",
				r.InputPath, r.OutputPath, imageSummary(r), r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// imageSummary describes the extracted images of a successful result.
func imageSummary(r ConversionResult) string {
	s := fmt.Sprintf("%d images", r.Images)
	if r.Fallbacks > 0 {
		s += fmt.Sprintf(", %d as png fallback", r.Fallbacks)
	}
	return s
}

// hintForFile returns the hint for a per-file failure, if any.
func hintForFile(err error) string {
	switch {
	case errors.Is(err, md2typst.ErrExtraction):
		return hints.ForExtraction()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}

// batchError summarizes a batch with failures. It unwraps to the first
// failure so exit codes follow the error class.
type batchError struct {
	failed int
	total  int
	first  error
}

func newBatchError(results []ConversionResult, failed int) *batchError {
	e := &batchError{failed: failed, total: len(results)}
	for _, r := range results {
		if r.Err != nil {
			e.first = r.Err
			break
		}
	}
	return e
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d conversion(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error {
	return e.first
}
