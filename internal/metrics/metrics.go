// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package metrics exposes refresh-engine counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Tick results.
const (
	ResultOK      = "ok"
	ResultFailed  = "failed"
	ResultDropped = "dropped"
	ResultStale   = "stale"
)

// Registry holds the HUD collectors on a private prometheus.Registry.
type Registry struct {
	reg *prometheus.Registry

	Ticks         *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	BufferLength  *prometheus.GaugeVec
	Actions       *prometheus.CounterVec
	Resets        prometheus.Counter
}

func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		Ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cybershield_hud_ticks_total",
			Help: "Refresh ticks by stream and result",
		}, []string{"stream", "result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cybershield_hud_fetch_duration_seconds",
			Help:    "Backend fetch latency per stream",
			Buckets: prometheus.DefBuckets,
		}, []string{"stream"}),
		BufferLength: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cybershield_hud_buffer_length",
			Help: "Current number of entries in each dashboard buffer",
		}, []string{"buffer"}),
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cybershield_hud_actions_total",
			Help: "Operator actions by name and result",
		}, []string{"action", "result"}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cybershield_hud_resets_total",
			Help: "Number of confirmed dashboard resets",
		}),
	}
	r.reg.MustRegister(r.Ticks, r.FetchDuration, r.BufferLength, r.Actions, r.Resets)
	return r
}

// Gatherer returns the underlying registry for exposition.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// ObserveTick records one tick outcome. Duration is only observed for
// completed fetches. A nil Registry discards everything.
func (r *Registry) ObserveTick(stream, result string, d time.Duration) {
	if r == nil {
		return
	}
	r.Ticks.WithLabelValues(stream, result).Inc()
	if result == ResultOK || result == ResultFailed {
		r.FetchDuration.WithLabelValues(stream).Observe(d.Seconds())
	}
}

func (r *Registry) SetBufferLength(buffer string, n int) {
	if r == nil {
		return
	}
	r.BufferLength.WithLabelValues(buffer).Set(float64(n))
}

func (r *Registry) ObserveAction(action string, err error) {
	if r == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultFailed
	}
	r.Actions.WithLabelValues(action, result).Inc()
}

func (r *Registry) ObserveReset() {
	if r == nil {
		return
	}
	r.Resets.Inc()
}
