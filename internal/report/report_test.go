// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/cybershield/internal/model"
	"grimm.is/cybershield/internal/render"
)

var at = time.Date(2026, 3, 14, 9, 26, 53, 123_000_000, time.UTC)

func TestFileName(t *testing.T) {
	assert.Equal(t, "security_report_2026-03-14T09:26:53.123Z.json", FileName(at))
}

func TestSave_WritesVerbatimPayload(t *testing.T) {
	dir := t.TempDir()
	env := &model.ReportEnvelope{
		SavedTo: "reports/security_report_20260314_092653.json",
		Report:  json.RawMessage(`{"generated_at":"2026-03-14T09:26:53","summary":{"threats_detected":5,"ips_blocked":2},"blocked_ips":["192.168.3.3"]}`),
	}

	res, err := Writer{Dir: dir}.Save(env, at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName(at)), res.Path)
	assert.Equal(t, 5, res.Summary.ThreatsDetected)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	var got, want map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.NoError(t, json.Unmarshal(env.Report, &want))
	assert.Equal(t, want, got)

	msg := res.Message()
	assert.Contains(t, msg, "Report generated successfully")
	assert.Contains(t, msg, "Threats detected: 5")
	assert.Contains(t, msg, "IPs blocked: 2")
	assert.Contains(t, msg, env.SavedTo)
}

func TestSave_NilEnvelope(t *testing.T) {
	_, err := Writer{Dir: t.TempDir()}.Save(nil, at)
	assert.Error(t, err)
}

func TestSave_Snapshots(t *testing.T) {
	dir := t.TempDir()
	cpu := render.NewChart("CPU Usage", "%", render.KindLine)
	cpu.SetData([]string{"a", "b"}, render.Series{Name: "Before Attack", Values: []float64{1, 2}})
	empty := render.NewChart("Network Traffic", "MiB", render.KindBar)

	res, err := Writer{Dir: dir, Charts: map[string]*render.Chart{"cpu": cpu, "network": empty}}.
		Save(&model.ReportEnvelope{Report: json.RawMessage(`{}`)}, at)
	require.NoError(t, err)
	require.Len(t, res.Snapshots, 1)
	assert.FileExists(t, res.Snapshots[0])
	assert.NoFileExists(t, filepath.Join(dir, "security_report_2026-03-14T09:26:53.123Z_network.png"))
}
