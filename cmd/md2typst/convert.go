package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	md2typst "github.com/alnah/go-md2typst"
	"github.com/alnah/go-md2typst/internal/config"
	"github.com/alnah/go-md2typst/internal/hints"
)

// Sentinel errors for convert command setup.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}

	// Validate worker counts early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.archive.decodeWorkers < 0 {
		return fmt.Errorf("%w: --decode-workers %d (must be >= 0)", ErrInvalidWorkerCount, flags.archive.decodeWorkers)
	}

	log := newLogger(env.Stderr, flags.common.verbose, flags.common.quiet)
	warnUnknownEnvVars(env.Environ(), log)

	envCfg, err := loadEnvConfig(env.Getenv)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	// Precedence: flags > env > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	conv, err := md2typst.NewConverter(converterOptions(cfg, flags.archive.decodeWorkers, log)...)
	if err != nil {
		return withSetupHint(err)
	}
	defer func() { _ = conv.Close() }()

	workers := md2typst.ResolveWorkers(cfg.Workers)
	log.WithFields(logrus.Fields{
		"files":    len(files),
		"workers":  workers,
		"template": cfg.Template.Name,
		"timeout":  timeout,
	}).Debug("starting conversion")

	params := &conversionParams{
		title:   cfg.Document.Title,
		author:  cfg.Document.Author,
		timeout: timeout,
		html:    flags.outputMode.html,
		now:     env.Now,
	}
	results := convertBatch(ctx, conv, workers, files, params)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return newBatchError(results, failed)
	}
	return nil
}

// loadConfig loads the config named by the flag, else by MD2TYPST_CONFIG,
// else returns defaults.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.author != "" {
		cfg.Document.Author = flags.document.author
	}
	if flags.assets.template != "" {
		cfg.Template.Name = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.archive.compression != "" {
		cfg.Archive.Compression = flags.archive.compression
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
}

// converterOptions builds library options from the merged config.
func converterOptions(cfg *config.Config, decodeWorkers int, log logrus.FieldLogger) []md2typst.Option {
	opts := []md2typst.Option{
		md2typst.WithLogger(log),
		md2typst.WithCompression(md2typst.ArchiveCompression(cfg.Archive.Compression)),
	}
	if cfg.Template.Name != "" {
		opts = append(opts, md2typst.WithTemplate(cfg.Template.Name))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2typst.WithAssetPath(cfg.Assets.BasePath))
	}
	if decodeWorkers > 0 {
		opts = append(opts, md2typst.WithDecodeWorkers(decodeWorkers))
	}
	return opts
}

// withSetupHint appends a hint to converter construction errors.
func withSetupHint(err error) error {
	switch {
	case errors.Is(err, md2typst.ErrTemplateNotFound):
		return fmt.Errorf("%w%s", err, hints.ForTemplateNotFound(md2typst.EmbeddedTemplates()))
	case errors.Is(err, md2typst.ErrInvalidAssetPath):
		return fmt.Errorf("%w%s", err, hints.ForAssetPath())
	}
	return err
}

// resolveTimeout returns the per-file timeout: flag, then env, then none.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q (want a positive duration such as 30s)", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
