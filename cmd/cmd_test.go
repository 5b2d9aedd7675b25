// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/cybershield/internal/config"
	"grimm.is/cybershield/internal/dashboard"
)

func TestHUDFlagsOverrideConfig(t *testing.T) {
	var stderr bytes.Buffer
	flags, err := parseHUDFlags([]string{
		"-backend", "http://ids.local:5000/",
		"-log-level", "debug",
		"-metrics", ":9400",
		"-report-dir", "/tmp/reports",
	}, &stderr)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	flags.apply(cfg)
	require.NoError(t, revalidate(cfg))

	assert.Equal(t, "http://ids.local:5000", cfg.Backend.URL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":9400", cfg.Metrics.Listen)
	assert.Equal(t, "/tmp/reports", cfg.Report.Dir)
}

func TestHUDFlagsRejectBadBackend(t *testing.T) {
	flags, err := parseHUDFlags([]string{"-backend", "not a url"}, &bytes.Buffer{})
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	flags.apply(cfg)
	assert.Error(t, revalidate(cfg))
}

func TestHUDFlagsUnknown(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseHUDFlags([]string{"-nope"}, &stderr)
	assert.Error(t, err)
	assert.Contains(t, stderr.String(), "nope")
}

func TestHUDOptions(t *testing.T) {
	opts := hudOptions(config.DefaultConfig())

	assert.Equal(t, 2*time.Second, opts.Periods[dashboard.StreamSystem])
	assert.Equal(t, 1500*time.Millisecond, opts.Periods[dashboard.StreamTraffic])
	assert.Equal(t, 3*time.Second, opts.Periods[dashboard.StreamStatistics])
	assert.Equal(t, dashboard.DefaultCapacities(), opts.Capacities)
	assert.True(t, opts.Serialize)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hud.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
backend {
  url = "http://10.0.0.1:5000"
  insecure_skip_verify = true
}
refresh {
  traffic = "500ms"
}
`), 0o644))

	var warnings bytes.Buffer
	cfg, err := loadConfig(path, &warnings)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.1:5000", cfg.Backend.URL)
	assert.Equal(t, 500*time.Millisecond, cfg.Refresh.TrafficPeriod)
	assert.Contains(t, warnings.String(), "insecure_skip_verify")
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.hcl"), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestSimFlags(t *testing.T) {
	flags, err := parseSimFlags([]string{"-listen", ":5050", "-db", "x.db", "-seed", "7"}, &bytes.Buffer{})
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	flags.apply(cfg)
	require.NoError(t, revalidate(cfg))
	assert.Equal(t, ":5050", cfg.Sim.Listen)
	assert.Equal(t, "x.db", cfg.Sim.Database)
	assert.Equal(t, int64(7), cfg.Sim.Seed)
	assert.Equal(t, "reports", cfg.Sim.ReportsDir)
}

func TestOpenLog(t *testing.T) {
	var fallback bytes.Buffer
	w, closeFn, err := openLog(&config.LoggingConfig{}, &fallback)
	require.NoError(t, err)
	closeFn()
	assert.Same(t, &fallback, w)

	path := filepath.Join(t.TempDir(), "logs", "hud.log")
	w, closeFn, err = openLog(&config.LoggingConfig{File: path}, &fallback)
	require.NoError(t, err)
	defer closeFn()

	logger, err := newLogger(&config.LoggingConfig{Level: "info", JSON: true}, w, "test")
	require.NoError(t, err)
	logger.Info("hello", "k", "v")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
