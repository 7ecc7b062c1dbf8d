package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-md2typst/internal/config"
)

const envPrefix = "MD2TYPST_"

// ErrInvalidEnvValue is returned when an MD2TYPST_* variable cannot be parsed.
var ErrInvalidEnvValue = errors.New("invalid environment variable")

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string        // MD2TYPST_CONFIG: config file name or path
	Timeout     time.Duration // MD2TYPST_TIMEOUT: per-file conversion timeout
	InputDir    string        // MD2TYPST_INPUT_DIR: default input directory
	OutputDir   string        // MD2TYPST_OUTPUT_DIR: default output directory
	Title       string        // MD2TYPST_TITLE: document title
	Author      string        // MD2TYPST_AUTHOR: document author
	Template    string        // MD2TYPST_TEMPLATE: template name
	Assets      string        // MD2TYPST_ASSETS: custom asset directory
	Compression string        // MD2TYPST_COMPRESSION: deflate or store
	Workers     int           // MD2TYPST_WORKERS: parallel file workers
}

// knownEnvVars lists valid MD2TYPST_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2TYPST_CONFIG":      true,
	"MD2TYPST_TIMEOUT":     true,
	"MD2TYPST_INPUT_DIR":   true,
	"MD2TYPST_OUTPUT_DIR":  true,
	"MD2TYPST_TITLE":       true,
	"MD2TYPST_AUTHOR":      true,
	"MD2TYPST_TEMPLATE":    true,
	"MD2TYPST_ASSETS":      true,
	"MD2TYPST_COMPRESSION": true,
	"MD2TYPST_WORKERS":     true,
}

// loadEnvConfig reads configuration through getenv.
func loadEnvConfig(getenv func(string) string) (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath:  getenv("MD2TYPST_CONFIG"),
		InputDir:    getenv("MD2TYPST_INPUT_DIR"),
		OutputDir:   getenv("MD2TYPST_OUTPUT_DIR"),
		Title:       getenv("MD2TYPST_TITLE"),
		Author:      getenv("MD2TYPST_AUTHOR"),
		Template:    getenv("MD2TYPST_TEMPLATE"),
		Assets:      getenv("MD2TYPST_ASSETS"),
		Compression: getenv("MD2TYPST_COMPRESSION"),
	}

	if v := getenv("MD2TYPST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: MD2TYPST_TIMEOUT=%q (want a positive duration such as 30s)", ErrInvalidEnvValue, v)
		}
		cfg.Timeout = d
	}

	if v := getenv("MD2TYPST_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: MD2TYPST_WORKERS=%q (want a non-negative integer)", ErrInvalidEnvValue, v)
		}
		cfg.Workers = n
	}

	return cfg, nil
}

// unknownEnvVars returns the unrecognized MD2TYPST_* names in environ, sorted.
func unknownEnvVars(environ []string) []string {
	var unknown []string
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// warnUnknownEnvVars logs a warning per unrecognized MD2TYPST_* variable.
// Helps catch typos like MD2TYPST_AUTOR instead of MD2TYPST_AUTHOR.
func warnUnknownEnvVars(environ []string, log logrus.FieldLogger) {
	for _, name := range unknownEnvVars(environ) {
		log.WithField("variable", name).Warn("unknown environment variable (typo?)")
	}
}

// applyEnvConfig applies set environment values over config file values.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Title != "" {
		cfg.Document.Title = env.Title
	}
	if env.Author != "" {
		cfg.Document.Author = env.Author
	}
	if env.Template != "" {
		cfg.Template.Name = env.Template
	}
	if env.Assets != "" {
		cfg.Assets.BasePath = env.Assets
	}
	if env.Compression != "" {
		cfg.Archive.Compression = env.Compression
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
