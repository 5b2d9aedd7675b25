// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package sim

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"

	"grimm.is/cybershield/internal/model"
)

// Sampler reads the current host load.
type Sampler interface {
	Sample(ctx context.Context) (model.CurrentMetrics, error)
}

// HostSampler reads the local machine through gopsutil.
type HostSampler struct {
	// CPUInterval is how long cpu.Percent measures for.
	CPUInterval time.Duration
	DiskPath    string
}

func NewHostSampler() *HostSampler {
	return &HostSampler{CPUInterval: 100 * time.Millisecond, DiskPath: "/"}
}

func (h *HostSampler) Sample(ctx context.Context) (model.CurrentMetrics, error) {
	var out model.CurrentMetrics

	pct, err := cpu.PercentWithContext(ctx, h.CPUInterval, false)
	if err != nil {
		return out, err
	}
	if len(pct) > 0 {
		out.CPU = pct[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return out, err
	}
	out.Memory = vm.UsedPercent

	// Disk and network are best effort; containers often lack one of them.
	if du, err := disk.UsageWithContext(ctx, h.DiskPath); err == nil {
		out.Disk = du.UsedPercent
	}
	if counters, err := net.IOCountersWithContext(ctx, false); err == nil && len(counters) > 0 {
		out.NetworkSent = float64(counters[0].BytesSent)
		out.NetworkRecv = float64(counters[0].BytesRecv)
	}

	out.Timestamp = time.Now().Format(TimestampLayout)
	return out, nil
}
