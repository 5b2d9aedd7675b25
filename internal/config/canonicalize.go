// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"fmt"
	"strings"
	"time"
)

// ApplyDefaults fills every missing block and zero attribute from
// DefaultConfig.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()

	if c.Backend == nil {
		c.Backend = &BackendConfig{}
	}
	c.Backend.URL = orString(c.Backend.URL, d.Backend.URL)
	c.Backend.Timeout = orString(c.Backend.Timeout, d.Backend.Timeout)

	if c.Refresh == nil {
		c.Refresh = &RefreshConfig{}
	}
	c.Refresh.SystemMetrics = orString(c.Refresh.SystemMetrics, d.Refresh.SystemMetrics)
	c.Refresh.Traffic = orString(c.Refresh.Traffic, d.Refresh.Traffic)
	c.Refresh.Statistics = orString(c.Refresh.Statistics, d.Refresh.Statistics)
	if c.Refresh.SerializeTicks == nil {
		c.Refresh.SerializeTicks = d.Refresh.SerializeTicks
	}

	if c.Buffers == nil {
		c.Buffers = &BufferConfig{}
	}
	c.Buffers.CPU = orInt(c.Buffers.CPU, d.Buffers.CPU)
	c.Buffers.Memory = orInt(c.Buffers.Memory, d.Buffers.Memory)
	c.Buffers.Network = orInt(c.Buffers.Network, d.Buffers.Network)
	c.Buffers.Log = orInt(c.Buffers.Log, d.Buffers.Log)

	if c.Report == nil {
		c.Report = &ReportConfig{}
	}
	c.Report.Dir = orString(c.Report.Dir, d.Report.Dir)

	if c.Logging == nil {
		c.Logging = &LoggingConfig{}
	}
	c.Logging.Level = orString(c.Logging.Level, d.Logging.Level)

	if c.Metrics == nil {
		c.Metrics = &MetricsConfig{}
	}

	if c.Sim == nil {
		c.Sim = &SimConfig{}
	}
	c.Sim.Listen = orString(c.Sim.Listen, d.Sim.Listen)
	c.Sim.Database = orString(c.Sim.Database, d.Sim.Database)
	c.Sim.ReportsDir = orString(c.Sim.ReportsDir, d.Sim.ReportsDir)
	if c.Sim.MaliciousRatio == 0 {
		c.Sim.MaliciousRatio = d.Sim.MaliciousRatio
	}
	if c.Sim.RateLimit == 0 {
		c.Sim.RateLimit = d.Sim.RateLimit
	}
}

// Canonicalize trims the backend URL and parses duration strings.
func (c *Config) Canonicalize() error {
	if c.Backend != nil {
		c.Backend.URL = strings.TrimRight(strings.TrimSpace(c.Backend.URL), "/")
		d, err := parsePeriod("backend.timeout", c.Backend.Timeout)
		if err != nil {
			return err
		}
		c.Backend.TimeoutDuration = d
	}

	if r := c.Refresh; r != nil {
		var err error
		if r.SystemMetricsPeriod, err = parsePeriod("refresh.system_metrics", r.SystemMetrics); err != nil {
			return err
		}
		if r.TrafficPeriod, err = parsePeriod("refresh.traffic", r.Traffic); err != nil {
			return err
		}
		if r.StatisticsPeriod, err = parsePeriod("refresh.statistics", r.Statistics); err != nil {
			return err
		}
	}
	return nil
}

func parsePeriod(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, ValidationError{Field: field, Message: fmt.Sprintf("invalid duration %q", s)}
	}
	return d, nil
}

func orString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
