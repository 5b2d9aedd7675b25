// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package tui

import (
	"context"
	"encoding/json"
	"sync"

	"grimm.is/cybershield/internal/model"
)

// MockBackend implements dashboard.Backend for testing purposes
type MockBackend struct {
	mu sync.Mutex

	System      *model.SystemMetrics
	Traffic     *model.TrafficMonitor
	Stats       *model.Statistics
	Report      *model.ReportEnvelope
	Err         error
	ResetCalled bool
	Calls       int
}

func (m *MockBackend) SystemMetrics(context.Context) (*model.SystemMetrics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.System == nil {
		return &model.SystemMetrics{Current: model.CurrentMetrics{CPU: 12, Memory: 34, NetworkSent: 1048576}}, nil
	}
	return m.System, nil
}

func (m *MockBackend) TrafficMonitor(context.Context) (*model.TrafficMonitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Traffic == nil {
		return &model.TrafficMonitor{LogEntry: model.LogEntry{Prediction: "Normal", SrcIP: "192.168.1.2", DstIP: "10.0.0.3", Protocol: "tcp"}}, nil
	}
	return m.Traffic, nil
}

func (m *MockBackend) Statistics(context.Context) (*model.Statistics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Stats == nil {
		return &model.Statistics{TotalTraffic: 1, ThreatDistribution: model.ThreatDistribution{"Normal": 1}}, nil
	}
	return m.Stats, nil
}

func (m *MockBackend) GenerateReport(context.Context) (*model.ReportEnvelope, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Report == nil {
		return &model.ReportEnvelope{
			SavedTo: "reports/security_report_20260314_092653.json",
			Report:  json.RawMessage(`{"summary":{"threats_detected":3,"ips_blocked":1}}`),
		}, nil
	}
	return m.Report, nil
}

func (m *MockBackend) Reset(context.Context) (*model.ResetResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.ResetCalled = true
	return &model.ResetResult{Status: "success", Message: "System session reset (Database preserved)"}, nil
}

func (m *MockBackend) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}
