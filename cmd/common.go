// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package cmd holds the entry points behind the cybershield binaries.
package cmd

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"grimm.is/cybershield/internal/config"
	"grimm.is/cybershield/internal/logging"
)

// Printer is the CLI output printer.
var Printer = message.NewPrinter(language.English)

// loadConfig reads path, or returns defaults when path is empty. Warnings
// are printed to w.
func loadConfig(path string, w io.Writer) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	for _, warn := range cfg.Validate().Warnings() {
		Printer.Fprintf(w, "Warning: %s\n", warn.Error())
	}
	return cfg, nil
}

// newLogger builds a logger from lc writing to out.
func newLogger(lc *config.LoggingConfig, out io.Writer, prefix string) (*logging.Logger, error) {
	level, err := logging.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Config{
		Output: out,
		Level:  level,
		JSON:   lc.JSON,
		Prefix: prefix,
	}), nil
}

// openLog returns the configured log file, or fallback when none is set.
func openLog(lc *config.LoggingConfig, fallback io.Writer) (io.Writer, func(), error) {
	if lc.File == "" {
		return fallback, func() {}, nil
	}
	f, err := logging.OpenFile(lc.File)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// revalidate checks cfg again after flag overrides.
func revalidate(cfg *config.Config) error {
	if err := cfg.Canonicalize(); err != nil {
		return err
	}
	if errs := cfg.Validate(); errs.HasErrors() {
		return errs
	}
	return nil
}

func printVersion(binary, version string) {
	Printer.Fprintf(os.Stdout, "%s %s\n", binary, version)
}
