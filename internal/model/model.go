// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package model holds the wire types exchanged with the IDS backend.
package model

import "encoding/json"

// Endpoint names, relative to the backend base URL.
const (
	EndpointSystemMetrics  = "/api/system-metrics"
	EndpointTrafficMonitor = "/api/traffic-monitor"
	EndpointStatistics     = "/api/statistics"
	EndpointGenerateReport = "/api/generate-report"
	EndpointReset          = "/api/reset"
)

// CurrentMetrics is the instantaneous host sample.
type CurrentMetrics struct {
	CPU         float64 `json:"cpu"`
	Memory      float64 `json:"memory"`
	Disk        float64 `json:"disk"`
	NetworkSent float64 `json:"network_sent"`
	NetworkRecv float64 `json:"network_recv"`
	Timestamp   string  `json:"timestamp"`
}

// SampleSet is a group of recent samples taken on one side of the attack
// boundary.
type SampleSet struct {
	CPU     []float64 `json:"cpu"`
	Memory  []float64 `json:"memory"`
	Network []float64 `json:"network"`
}

type SystemMetrics struct {
	Current        CurrentMetrics `json:"current"`
	BeforeAttack   SampleSet      `json:"before_attack"`
	AfterAttack    SampleSet      `json:"after_attack"`
	AttackDetected bool           `json:"attack_detected"`
}

// LogEntry is one classified traffic observation.
type LogEntry struct {
	Timestamp   string  `json:"timestamp"`
	SrcIP       string  `json:"src_ip"`
	DstIP       string  `json:"dst_ip"`
	Protocol    string  `json:"protocol"`
	Service     string  `json:"service"`
	Prediction  string  `json:"prediction"`
	Confidence  float64 `json:"confidence"`
	ThreatLevel string  `json:"threat_level"`
	Blocked     bool    `json:"blocked"`
	RQARR       float64 `json:"rqa_rr"`
	RQADet      float64 `json:"rqa_det"`
}

// IsThreat reports whether the entry was classified as anything but normal.
func (e LogEntry) IsThreat() bool {
	return e.Prediction != CategoryNormal
}

type TrafficMonitor struct {
	LogEntry     LogEntry   `json:"log_entry"`
	TotalBlocked int        `json:"total_blocked"`
	RecentLogs   []LogEntry `json:"recent_logs"`
	IsSimulated  bool       `json:"is_simulated"`
}

type Statistics struct {
	TotalTraffic       int                `json:"total_traffic"`
	MaliciousCount     int                `json:"malicious_count"`
	BlockedIPs         int                `json:"blocked_ips"`
	DetectionRate      float64            `json:"detection_rate"`
	ThreatDistribution ThreatDistribution `json:"threat_distribution"`
	BlockedIPList      []string           `json:"blocked_ip_list"`
}

// ReportEnvelope is the generate-report response. Report is kept verbatim so
// the saved artifact matches what the backend produced.
type ReportEnvelope struct {
	SavedTo string          `json:"saved_to"`
	Report  json.RawMessage `json:"report"`
}

// ReportSummary is the part of the report shown to the operator.
type ReportSummary struct {
	TotalPacketsAnalyzed int    `json:"total_packets_analyzed"`
	ThreatsDetected      int    `json:"threats_detected"`
	IPsBlocked           int    `json:"ips_blocked"`
	SystemStatus         string `json:"system_status"`
}

// Summary decodes the summary block of the verbatim report.
func (r ReportEnvelope) Summary() (ReportSummary, error) {
	var body struct {
		Summary ReportSummary `json:"summary"`
	}
	if len(r.Report) == 0 {
		return ReportSummary{}, nil
	}
	err := json.Unmarshal(r.Report, &body)
	return body.Summary, err
}

type ResetResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
