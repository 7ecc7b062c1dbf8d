package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/joho/godotenv"
)

// loadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set in the environment are not overwritten, and a
// missing file is silently ignored.
func loadDotEnv(path string, w io.Writer) {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return
	}
	fmt.Fprintf(w, "warning: ignoring %s: %v\n", path, err)
}
