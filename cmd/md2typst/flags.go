package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds the metadata written into the main.typ preamble.
type documentFlags struct {
	title  string
	author string
}

// assetFlags holds template selection flags.
type assetFlags struct {
	template  string // Embedded or custom template name
	assetPath string // Override asset directory
}

// archiveFlags holds archive layout and decoding flags.
type archiveFlags struct {
	compression   string
	decodeWorkers int
}

// outputFlags holds extra output flags.
type outputFlags struct {
	html bool // Write an HTML preview next to the archive
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	document   documentFlags
	assets     assetFlags
	archive    archiveFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
}

// addDocumentFlags adds document metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (\"\" = Exported Ebook)")
	fs.StringVar(&f.author, "author", "", "document author (\"\" = Anonymous)")
}

// addAssetFlags adds template flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.template, "template", "", "template name (default book)")
	fs.StringVar(&f.assetPath, "assets", "", "custom asset directory containing templates/")
}

// addArchiveFlags adds archive flags to a FlagSet.
func addArchiveFlags(fs *flag.FlagSet, f *archiveFlags) {
	fs.StringVar(&f.compression, "compression", "", "text entry compression: deflate, store")
	fs.IntVar(&f.decodeWorkers, "decode-workers", 0, "image decoding goroutines per file (0 = auto)")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "write an HTML preview alongside the archive")
}

// parseConvertFlags parses convert command flags and returns positional args.
// Parse errors and usage go to stderr.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output archive or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel file workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-file conversion timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addAssetFlags(fs, &f.assets)
	addArchiveFlags(fs, &f.archive)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
