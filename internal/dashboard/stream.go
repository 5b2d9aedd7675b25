// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package dashboard

import (
	"context"
	"fmt"
	"time"

	"grimm.is/cybershield/internal/model"
)

// Stream identifies one independently polled snapshot feed.
type Stream int

const (
	StreamSystem Stream = iota
	StreamTraffic
	StreamStatistics
)

// Streams lists every feed in start-up order.
var Streams = []Stream{StreamSystem, StreamTraffic, StreamStatistics}

func (s Stream) String() string {
	switch s {
	case StreamSystem:
		return "system_metrics"
	case StreamTraffic:
		return "traffic"
	case StreamStatistics:
		return "statistics"
	}
	return fmt.Sprintf("stream(%d)", int(s))
}

// Endpoint returns the backend path polled for s.
func (s Stream) Endpoint() string {
	switch s {
	case StreamSystem:
		return model.EndpointSystemMetrics
	case StreamTraffic:
		return model.EndpointTrafficMonitor
	case StreamStatistics:
		return model.EndpointStatistics
	}
	return ""
}

// DefaultPeriod is the polling cadence used when none is configured.
func (s Stream) DefaultPeriod() time.Duration {
	switch s {
	case StreamSystem:
		return 2000 * time.Millisecond
	case StreamTraffic:
		return 1500 * time.Millisecond
	case StreamStatistics:
		return 3000 * time.Millisecond
	}
	return 0
}

// Backend is the snapshot source.
type Backend interface {
	SystemMetrics(ctx context.Context) (*model.SystemMetrics, error)
	TrafficMonitor(ctx context.Context) (*model.TrafficMonitor, error)
	Statistics(ctx context.Context) (*model.Statistics, error)
	GenerateReport(ctx context.Context) (*model.ReportEnvelope, error)
	Reset(ctx context.Context) (*model.ResetResult, error)
}

// Fetch retrieves the snapshot for one stream. The returned value is one of
// *model.SystemMetrics, *model.TrafficMonitor or *model.Statistics.
func Fetch(ctx context.Context, b Backend, s Stream) (any, error) {
	switch s {
	case StreamSystem:
		return b.SystemMetrics(ctx)
	case StreamTraffic:
		return b.TrafficMonitor(ctx)
	case StreamStatistics:
		return b.Statistics(ctx)
	}
	return nil, fmt.Errorf("unknown stream %d", int(s))
}
