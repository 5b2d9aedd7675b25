// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2*time.Second, cfg.Refresh.SystemMetricsPeriod)
	assert.Equal(t, 1500*time.Millisecond, cfg.Refresh.TrafficPeriod)
	assert.Equal(t, 3*time.Second, cfg.Refresh.StatisticsPeriod)
	assert.True(t, cfg.Refresh.Serialize())
	assert.Equal(t, 20, cfg.Buffers.CPU)
	assert.Equal(t, 20, cfg.Buffers.Memory)
	assert.Equal(t, 15, cfg.Buffers.Network)
	assert.Equal(t, 50, cfg.Buffers.Log)
	assert.Equal(t, 10*time.Second, cfg.Backend.TimeoutDuration)
	assert.False(t, cfg.Validate().HasErrors())
}

func TestParse_HCL(t *testing.T) {
	t.Setenv("CYBERSHIELD_BACKEND", "https://ids.example.net/")

	src := `
backend {
  url     = env.CYBERSHIELD_BACKEND
  timeout = "5s"
}

refresh {
  traffic         = "750ms"
  serialize_ticks = false
}

buffers {
  log = 100
}
`
	cfg, err := Parse([]byte(src), "hud.hcl")
	require.NoError(t, err)

	assert.Equal(t, "https://ids.example.net", cfg.Backend.URL)
	assert.Equal(t, 5*time.Second, cfg.Backend.TimeoutDuration)
	assert.Equal(t, 750*time.Millisecond, cfg.Refresh.TrafficPeriod)
	assert.Equal(t, 2*time.Second, cfg.Refresh.SystemMetricsPeriod)
	assert.False(t, cfg.Refresh.Serialize())
	assert.Equal(t, 100, cfg.Buffers.Log)
	assert.Equal(t, 20, cfg.Buffers.CPU)
}

func TestParse_JSON(t *testing.T) {
	src := `{"backend":{"url":"http://10.0.0.5:5000"},"report":{"dir":"/tmp/reports","chart_snapshots":true}}`

	cfg, err := Parse([]byte(src), "hud.json")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:5000", cfg.Backend.URL)
	assert.Equal(t, "/tmp/reports", cfg.Report.Dir)
	assert.True(t, cfg.Report.ChartSnapshots)
}

func TestParse_YAML(t *testing.T) {
	src := `
sim:
  listen: ":8080"
  malicious_ratio: 0.5
logging:
  level: debug
  json: true
`
	cfg, err := Parse([]byte(src), "sim.yaml")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Sim.Listen)
	assert.Equal(t, 0.5, cfg.Sim.MaliciousRatio)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
}

func TestParse_TOML(t *testing.T) {
	src := `
[backend]
url = "http://ids.internal:5000"
timeout = "3s"

[refresh]
serialize_ticks = false

[sim]
database = "/var/lib/cybershield/traffic.db"
rate_limit = 5.0
`
	cfg, err := Parse([]byte(src), "hud.toml")
	require.NoError(t, err)
	assert.Equal(t, "http://ids.internal:5000", cfg.Backend.URL)
	assert.Equal(t, 3*time.Second, cfg.Backend.TimeoutDuration)
	assert.False(t, cfg.Refresh.Serialize())
	assert.Equal(t, 2*time.Second, cfg.Refresh.SystemMetricsPeriod)
	assert.Equal(t, "/var/lib/cybershield/traffic.db", cfg.Sim.Database)
	assert.Equal(t, 5.0, cfg.Sim.RateLimit)
}

func TestParse_TOMLUnknownKey(t *testing.T) {
	_, err := Parse([]byte("[backend]\nuri = \"http://x\"\n"), "hud.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend.uri")
}

func TestParse_UnknownExtensionFallsBackToJSON(t *testing.T) {
	cfg, err := Parse([]byte(`{"metrics":{"listen":":9100"}}`), "hud.conf")
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Metrics.Listen)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"bad duration", `refresh { statistics = "soon" }`, "refresh.statistics"},
		{"bad url", `backend { url = "ids.local" }`, "backend.url"},
		{"negative capacity", `buffers { cpu = -1 }`, "buffers.cpu"},
		{"bad ratio", `sim { malicious_ratio = 2 }`, "sim.malicious_ratio"},
		{"bad level", `logging { level = "loud" }`, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "x.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestParse_UnknownAttribute(t *testing.T) {
	_, err := Parse([]byte(`backend { uri = "http://x" }`), "x.hcl")
	assert.Error(t, err)
}

func TestValidate_Warnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.InsecureSkipVerify = true
	cfg.Refresh.TrafficPeriod = 100 * time.Millisecond

	errs := cfg.Validate()
	assert.False(t, errs.HasErrors())
	assert.Len(t, errs.Warnings(), 2)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hud.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`metrics { listen = "127.0.0.1:9464" }`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Listen)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
