// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package config loads HUD and simulator settings from HCL, JSON, YAML or
// TOML.
package config

import "time"

// Config is the top-level configuration. Every block is optional; missing
// blocks and attributes take the values from DefaultConfig.
type Config struct {
	Backend *BackendConfig `hcl:"backend,block" toml:"backend,omitempty" json:"backend,omitempty" yaml:"backend,omitempty"`
	Refresh *RefreshConfig `hcl:"refresh,block" toml:"refresh,omitempty" json:"refresh,omitempty" yaml:"refresh,omitempty"`
	Buffers *BufferConfig  `hcl:"buffers,block" toml:"buffers,omitempty" json:"buffers,omitempty" yaml:"buffers,omitempty"`
	Report  *ReportConfig  `hcl:"report,block" toml:"report,omitempty" json:"report,omitempty" yaml:"report,omitempty"`
	Logging *LoggingConfig `hcl:"logging,block" toml:"logging,omitempty" json:"logging,omitempty" yaml:"logging,omitempty"`
	Metrics *MetricsConfig `hcl:"metrics,block" toml:"metrics,omitempty" json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Sim     *SimConfig     `hcl:"sim,block" toml:"sim,omitempty" json:"sim,omitempty" yaml:"sim,omitempty"`
}

// BackendConfig points the HUD at the IDS API.
type BackendConfig struct {
	URL                string `hcl:"url,optional" toml:"url,omitempty" json:"url,omitempty" yaml:"url,omitempty"`
	Timeout            string `hcl:"timeout,optional" toml:"timeout,omitempty" json:"timeout,omitempty" yaml:"timeout,omitempty"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional" toml:"insecure_skip_verify,omitempty" json:"insecure_skip_verify,omitempty" yaml:"insecure_skip_verify,omitempty"`

	TimeoutDuration time.Duration `toml:"-" json:"-" yaml:"-"`
}

// RefreshConfig holds the polling period of each stream.
type RefreshConfig struct {
	SystemMetrics string `hcl:"system_metrics,optional" toml:"system_metrics,omitempty" json:"system_metrics,omitempty" yaml:"system_metrics,omitempty"`
	Traffic       string `hcl:"traffic,optional" toml:"traffic,omitempty" json:"traffic,omitempty" yaml:"traffic,omitempty"`
	Statistics    string `hcl:"statistics,optional" toml:"statistics,omitempty" json:"statistics,omitempty" yaml:"statistics,omitempty"`
	// SerializeTicks drops a tick while the previous fetch of the same
	// stream is still in flight.
	SerializeTicks *bool `hcl:"serialize_ticks,optional" toml:"serialize_ticks,omitempty" json:"serialize_ticks,omitempty" yaml:"serialize_ticks,omitempty"`

	SystemMetricsPeriod time.Duration `toml:"-" json:"-" yaml:"-"`
	TrafficPeriod       time.Duration `toml:"-" json:"-" yaml:"-"`
	StatisticsPeriod    time.Duration `toml:"-" json:"-" yaml:"-"`
}

// Serialize reports the effective tick serialization setting.
func (r *RefreshConfig) Serialize() bool {
	return r.SerializeTicks == nil || *r.SerializeTicks
}

// BufferConfig holds the sliding-window capacities.
type BufferConfig struct {
	CPU     int `hcl:"cpu,optional" toml:"cpu,omitempty" json:"cpu,omitempty" yaml:"cpu,omitempty"`
	Memory  int `hcl:"memory,optional" toml:"memory,omitempty" json:"memory,omitempty" yaml:"memory,omitempty"`
	Network int `hcl:"network,optional" toml:"network,omitempty" json:"network,omitempty" yaml:"network,omitempty"`
	Log     int `hcl:"log,optional" toml:"log,omitempty" json:"log,omitempty" yaml:"log,omitempty"`
}

type ReportConfig struct {
	Dir            string `hcl:"dir,optional" toml:"dir,omitempty" json:"dir,omitempty" yaml:"dir,omitempty"`
	ChartSnapshots bool   `hcl:"chart_snapshots,optional" toml:"chart_snapshots,omitempty" json:"chart_snapshots,omitempty" yaml:"chart_snapshots,omitempty"`
}

type LoggingConfig struct {
	Level string `hcl:"level,optional" toml:"level,omitempty" json:"level,omitempty" yaml:"level,omitempty"`
	File  string `hcl:"file,optional" toml:"file,omitempty" json:"file,omitempty" yaml:"file,omitempty"`
	JSON  bool   `hcl:"json,optional" toml:"json,omitempty" json:"json,omitempty" yaml:"json,omitempty"`
}

// MetricsConfig enables the Prometheus endpoint when Listen is set.
type MetricsConfig struct {
	Listen string `hcl:"listen,optional" toml:"listen,omitempty" json:"listen,omitempty" yaml:"listen,omitempty"`
}

// SimConfig configures the development backend.
type SimConfig struct {
	Listen         string  `hcl:"listen,optional" toml:"listen,omitempty" json:"listen,omitempty" yaml:"listen,omitempty"`
	Database       string  `hcl:"database,optional" toml:"database,omitempty" json:"database,omitempty" yaml:"database,omitempty"`
	ReportsDir     string  `hcl:"reports_dir,optional" toml:"reports_dir,omitempty" json:"reports_dir,omitempty" yaml:"reports_dir,omitempty"`
	MaliciousRatio float64 `hcl:"malicious_ratio,optional" toml:"malicious_ratio,omitempty" json:"malicious_ratio,omitempty" yaml:"malicious_ratio,omitempty"`
	Seed           int64   `hcl:"seed,optional" toml:"seed,omitempty" json:"seed,omitempty" yaml:"seed,omitempty"`
	RateLimit      float64 `hcl:"rate_limit,optional" toml:"rate_limit,omitempty" json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
}

const (
	DefaultBackendURL     = "http://127.0.0.1:5000"
	DefaultBackendTimeout = "10s"

	DefaultSystemMetricsPeriod = "2s"
	DefaultTrafficPeriod       = "1500ms"
	DefaultStatisticsPeriod    = "3s"

	DefaultCPUCapacity     = 20
	DefaultMemoryCapacity  = 20
	DefaultNetworkCapacity = 15
	DefaultLogCapacity     = 50

	DefaultMaliciousRatio = 0.15
)

// DefaultConfig returns a fully populated configuration.
func DefaultConfig() *Config {
	serialize := true
	cfg := &Config{
		Backend: &BackendConfig{
			URL:     DefaultBackendURL,
			Timeout: DefaultBackendTimeout,
		},
		Refresh: &RefreshConfig{
			SystemMetrics:  DefaultSystemMetricsPeriod,
			Traffic:        DefaultTrafficPeriod,
			Statistics:     DefaultStatisticsPeriod,
			SerializeTicks: &serialize,
		},
		Buffers: &BufferConfig{
			CPU:     DefaultCPUCapacity,
			Memory:  DefaultMemoryCapacity,
			Network: DefaultNetworkCapacity,
			Log:     DefaultLogCapacity,
		},
		Report:  &ReportConfig{Dir: "."},
		Logging: &LoggingConfig{Level: "info"},
		Metrics: &MetricsConfig{},
		Sim: &SimConfig{
			Listen:         ":5000",
			Database:       "cybershield.db",
			ReportsDir:     "reports",
			MaliciousRatio: DefaultMaliciousRatio,
			RateLimit:      50,
		},
	}
	// Defaults always canonicalize.
	_ = cfg.Canonicalize()
	return cfg
}
