package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2typst/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// dotEnvFile is loaded from the working directory before anything reads
// MD2TYPST_* variables.
const dotEnvFile = ".env"

// Sentinel errors for command dispatch.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	loadDotEnv(dotEnvFile, os.Stderr)

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches args[1] to a command and returns the process exit code.
// A leading markdown path is shorthand for "convert <path>".
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	command, rest := args[1], args[2:]
	switch command {
	case "convert":
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2typst %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		if !fileutil.IsMarkdown(command) {
			fmt.Fprintf(env.Stderr, "error: %v: %s\n", ErrUnknownCommand, command)
			printUsage(env.Stderr)
			return ExitUsage
		}
		rest = args[1:]
	}

	err := runConvert(ctx, rest, env)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
