// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package tui_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/cybershield/internal/api"
	"grimm.is/cybershield/internal/dashboard"
	"grimm.is/cybershield/internal/logging"
	"grimm.is/cybershield/internal/model"
	"grimm.is/cybershield/internal/tui"
)

// newBackend serves canned responses for every polled endpoint.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	reply := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		}
	}

	mux.HandleFunc(model.EndpointSystemMetrics, reply(`{
		"current": {"cpu": 41.5, "memory": 63.2, "disk": 20, "network_sent": 5242880, "network_recv": 1048576},
		"before_attack": {"cpu": [10, 20], "memory": [50], "network": []},
		"after_attack": {"cpu": [80], "memory": [70], "network": []},
		"attack_detected": true
	}`))
	mux.HandleFunc(model.EndpointTrafficMonitor, reply(`{
		"log_entry": {"src_ip": "192.168.4.7", "dst_ip": "10.0.2.9", "protocol": "tcp", "service": "http",
			"prediction": "DoS", "confidence": 0.91, "threat_level": "High", "blocked": true,
			"rqa_rr": 12.4, "rqa_det": 88.1},
		"total_blocked": 1
	}`))
	mux.HandleFunc(model.EndpointStatistics, reply(`{
		"total_traffic": 10, "malicious_count": 2, "blocked_ips": 1, "detection_rate": 20,
		"threat_distribution": {"Normal": 8, "DoS": 2},
		"blocked_ip_list": ["192.168.4.7"]
	}`))
	mux.HandleFunc(model.EndpointReset, reply(`{"status": "success", "message": "System session reset (Database preserved)"}`))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDashboardRefreshes(t *testing.T) {
	srv := newBackend(t)
	logger := logging.New(logging.Config{Level: logging.LevelError})

	m := tui.NewModel(tui.Options{
		Backend: api.NewClient(srv.URL, 2*time.Second, false, logger),
		Periods: map[dashboard.Stream]time.Duration{
			dashboard.StreamSystem:     50 * time.Millisecond,
			dashboard.StreamTraffic:    50 * time.Millisecond,
			dashboard.StreamStatistics: 50 * time.Millisecond,
		},
		Serialize: true,
		ReportDir: t.TempDir(),
		Logger:    logger,
	})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(200, 60))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Fusion Score")) &&
			bytes.Contains(out, []byte("UNDER ATTACK"))
	}, teatest.WithDuration(5*time.Second), teatest.WithCheckInterval(50*time.Millisecond))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(tui.Model)
	require.True(t, ok)
	assert.GreaterOrEqual(t, final.State.CPU.Len(), 1)
	assert.GreaterOrEqual(t, final.State.Log.Len(), 1)
	assert.True(t, final.State.UnderAttack)
	assert.Equal(t, []string{"192.168.4.7"}, final.State.BlockedIPs)
	assert.Equal(t, 2, final.State.Distribution.Count(model.CategoryDoS))
	assert.LessOrEqual(t, final.State.Network.Len(), final.State.Network.Cap())
}
