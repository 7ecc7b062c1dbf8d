package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2typst <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Export markdown files as Typst project archives")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2typst help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2typst convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export markdown files as zip archives holding main.typ, template.typ")
	fmt.Fprintln(w, "and the inline images extracted to images/.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output archive (.zip) or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel file workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-file timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           Document title (default \"Exported Ebook\")")
	fmt.Fprintln(w, "      --author <s>          Document author (default \"Anonymous\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Template:")
	fmt.Fprintln(w, "      --template <name>     Template name (default book)")
	fmt.Fprintln(w, "      --assets <dir>        Custom asset directory containing templates/")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Archive:")
	fmt.Fprintln(w, "      --compression <s>     Text entry compression: deflate, store")
	fmt.Fprintln(w, "      --decode-workers <n>  Image decoding goroutines per file (0 = auto)")
	fmt.Fprintln(w, "      --html                Write an HTML preview alongside the archive")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2TYPST_CONFIG, MD2TYPST_INPUT_DIR, MD2TYPST_OUTPUT_DIR, MD2TYPST_TITLE,")
	fmt.Fprintln(w, "  MD2TYPST_AUTHOR, MD2TYPST_TEMPLATE, MD2TYPST_ASSETS, MD2TYPST_COMPRESSION,")
	fmt.Fprintln(w, "  MD2TYPST_WORKERS, MD2TYPST_TIMEOUT (also read from ./.env)")
}

// runHelp prints help for a specific command and returns the exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2typst version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2typst help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
