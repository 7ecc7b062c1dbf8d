package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goccy/go-yaml"

	"github.com/alnah/go-md2typst/internal/fileutil"
)

// AppName names the per-user config directory.
const AppName = "go-md2typst"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigTooLarge  = errors.New("config file exceeds maximum size")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// MaxConfigSize limits config input to prevent memory exhaustion (1MB).
const MaxConfigSize = 1 << 20

// Field limits.
const (
	MaxTitleLength    = 200
	MaxAuthorLength   = 100
	MaxPathLength     = 4096
	MaxTemplateLength = 64
	MaxWorkers        = 16
)

// Archive compression modes accepted in archive.compression.
const (
	CompressionDeflate = "deflate"
	CompressionStore   = "store"
)

// Config holds all configuration for Typst export.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
	Assets   AssetsConfig   `yaml:"assets"`
	Template TemplateConfig `yaml:"template"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Workers  int            `yaml:"workers"` // Batch file workers (0 = auto)
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// DocumentConfig holds metadata written into the main.typ preamble.
type DocumentConfig struct {
	Title  string `yaml:"title"`  // Empty = built-in default
	Author string `yaml:"author"` // Empty = built-in default
}

// AssetsConfig defines template loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded templates
}

// TemplateConfig selects the Typst template shipped as template.typ.
type TemplateConfig struct {
	Name string `yaml:"name"` // Empty = "book"
}

// ArchiveConfig controls zip output.
type ArchiveConfig struct {
	Compression string `yaml:"compression"` // "deflate" (default) or "store"
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.author", c.Document.Author, MaxAuthorLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"template.name", c.Template.Name, MaxTemplateLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validation.Validate(c.Archive.Compression,
		validation.In(CompressionDeflate, CompressionStore),
	); err != nil {
		return fmt.Errorf("%w: archive.compression %q: %v", ErrInvalidValue, c.Archive.Compression, err)
	}

	if err := validation.Validate(c.Workers, validation.Min(0), validation.Max(MaxWorkers)); err != nil {
		return fmt.Errorf("%w: workers %d: %v", ErrInvalidValue, c.Workers, err)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if err := validation.Validate(value, validation.RuneLength(0, maxLength)); err != nil {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len([]rune(value)), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration using embedded templates and deflate.
func DefaultConfig() *Config {
	return &Config{
		Template: TemplateConfig{Name: "book"},
		Archive:  ArchiveConfig{Compression: CompressionDeflate},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML config data strictly and validates it.
// Unknown fields are rejected; unset fields keep DefaultConfig values.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxConfigSize)
	}

	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order:
// ./<name>.yaml, ./<name>.yml, then the same names under
// <user config dir>/go-md2typst/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
