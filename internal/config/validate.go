// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field    string
	Message  string
	Severity string // "error" (default), "warning"
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if any entry is not a warning.
func (e ValidationErrors) HasErrors() bool {
	for _, err := range e {
		if err.Severity != "warning" {
			return true
		}
	}
	return false
}

// Warnings returns only the warning entries.
func (e ValidationErrors) Warnings() ValidationErrors {
	var out ValidationErrors
	for _, err := range e {
		if err.Severity == "warning" {
			out = append(out, err)
		}
	}
	return out
}

// minPeriod is the fastest refresh that does not hammer the backend.
const minPeriod = 250 * time.Millisecond

// Validate checks a canonicalized config.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}
	warn := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Severity: "warning"})
	}

	if b := c.Backend; b != nil {
		u, err := url.Parse(b.URL)
		if err != nil || u.Host == "" {
			add("backend.url", "must be an absolute URL, got %q", b.URL)
		} else if u.Scheme != "http" && u.Scheme != "https" {
			add("backend.url", "unsupported scheme %q", u.Scheme)
		}
		if b.TimeoutDuration <= 0 {
			add("backend.timeout", "must be positive")
		}
		if b.InsecureSkipVerify {
			warn("backend.insecure_skip_verify", "TLS certificate verification is disabled")
		}
	}

	if r := c.Refresh; r != nil {
		for field, d := range map[string]time.Duration{
			"refresh.system_metrics": r.SystemMetricsPeriod,
			"refresh.traffic":        r.TrafficPeriod,
			"refresh.statistics":     r.StatisticsPeriod,
		} {
			switch {
			case d <= 0:
				add(field, "must be positive")
			case d < minPeriod:
				warn(field, "period %s is below %s", d, minPeriod)
			}
		}
	}

	if b := c.Buffers; b != nil {
		for field, n := range map[string]int{
			"buffers.cpu":     b.CPU,
			"buffers.memory":  b.Memory,
			"buffers.network": b.Network,
			"buffers.log":     b.Log,
		} {
			if n < 1 {
				add(field, "capacity must be at least 1, got %d", n)
			}
		}
	}

	if l := c.Logging; l != nil {
		switch strings.ToLower(l.Level) {
		case "debug", "info", "warn", "warning", "error":
		default:
			add("logging.level", "unknown level %q", l.Level)
		}
	}

	if s := c.Sim; s != nil {
		if s.MaliciousRatio < 0 || s.MaliciousRatio > 1 {
			add("sim.malicious_ratio", "must be between 0 and 1, got %g", s.MaliciousRatio)
		}
		if s.RateLimit < 0 {
			add("sim.rate_limit", "must not be negative")
		}
	}

	return errs
}
