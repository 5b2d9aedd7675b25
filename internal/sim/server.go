// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package sim is a development backend serving the dashboard endpoints from
// synthetic traffic and live host metrics.
package sim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	cserrors "grimm.is/cybershield/internal/errors"
	"grimm.is/cybershield/internal/logging"
	"grimm.is/cybershield/internal/model"
)

const (
	recentLogLimit    = 10
	reportLogLimit    = 50
	blockedListLimit  = 10
	reportFileLayout  = "20060102_150405"
	resetMessage      = "System session reset (Database preserved)"
	statusUnderAttack = "Under Attack"
	statusSecure      = "Secure"
)

// Options configures a Server.
type Options struct {
	Store      *Store
	Sampler    Sampler
	Generator  *Generator
	ReportsDir string
	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit float64
	Logger    *logging.Logger
	Now       func() time.Time
}

// Server holds the session state behind the HTTP API. The database
// survives resets; the session does not.
type Server struct {
	opts   Options
	logger *logging.Logger

	mu      sync.Mutex
	session *Session
	rqa     *RQA
}

func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Sampler == nil {
		opts.Sampler = NewHostSampler()
	}
	if opts.Generator == nil {
		opts.Generator = NewGenerator(0, 0.15)
	}
	if opts.ReportsDir == "" {
		opts.ReportsDir = "reports"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		opts:    opts,
		logger:  opts.Logger.WithComponent("sim"),
		session: NewSession(),
		rqa:     NewRQA(DefaultRQAWindow, DefaultRQAEpsilon),
	}
}

// Handler builds the gin engine.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))
	if s.opts.RateLimit > 0 {
		r.Use(rateLimit(NewRateLimiter(s.opts.RateLimit), s.logger))
	}

	api := r.Group("/api")
	{
		api.GET("/system-metrics", s.systemMetrics)
		api.GET("/traffic-monitor", s.trafficMonitor)
		api.GET("/statistics", s.statistics)
		api.GET("/generate-report", s.generateReport)
		api.GET("/reset", s.reset)
	}
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok\n")
	})
	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("simulator listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	args := append([]any{"path", c.Request.URL.Path, "error", err}, cserrors.LogArgs(err)...)
	s.logger.Error("request failed", args...)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (s *Server) systemMetrics(c *gin.Context) {
	cur, err := s.opts.Sampler.Sample(c.Request.Context())
	if err != nil {
		s.fail(c, cserrors.Wrap(err, cserrors.KindIO, "sample host metrics"))
		return
	}

	s.mu.Lock()
	resp := s.session.Observe(cur)
	s.mu.Unlock()

	c.JSON(http.StatusOK, resp)
}

func (s *Server) trafficMonitor(c *gin.Context) {
	ctx := c.Request.Context()
	now := s.opts.Now()

	s.mu.Lock()
	p := s.opts.Generator.Next(now)
	s.rqa.Add(float64(p.SrcBytes))
	rr, det := s.rqa.Measure()
	v := s.opts.Generator.Classify(p, det)
	if v.Malicious {
		s.session.AttackDetected = true
	}
	s.mu.Unlock()

	entry := model.LogEntry{
		Timestamp:   now.Format(TimestampLayout),
		SrcIP:       p.SrcIP,
		DstIP:       p.DstIP,
		Protocol:    p.Protocol,
		Service:     p.Service,
		Prediction:  v.Prediction,
		Confidence:  v.Confidence,
		ThreatLevel: v.ThreatLevel,
		Blocked:     v.Malicious,
		RQARR:       rr,
		RQADet:      det,
	}

	if v.Malicious {
		if err := s.opts.Store.BlockIP(ctx, p.SrcIP, "Detected "+v.Prediction, now); err != nil {
			s.fail(c, cserrors.Attr(cserrors.Wrap(err, cserrors.KindIO, "block ip"), "ip", p.SrcIP))
			return
		}
		s.logger.Info("blocked source", "ip", p.SrcIP, "prediction", v.Prediction, "threat_level", v.ThreatLevel)
	}
	if err := s.opts.Store.LogTraffic(ctx, now, entry); err != nil {
		s.fail(c, cserrors.Wrap(err, cserrors.KindIO, "log traffic"))
		return
	}

	recent, err := s.opts.Store.RecentLogs(ctx, recentLogLimit)
	if err != nil {
		s.fail(c, cserrors.Wrap(err, cserrors.KindIO, "recent logs"))
		return
	}
	stats, err := s.opts.Store.Stats(ctx)
	if err != nil {
		s.fail(c, cserrors.Wrap(err, cserrors.KindIO, "stats"))
		return
	}

	c.JSON(http.StatusOK, model.TrafficMonitor{
		LogEntry:     entry,
		TotalBlocked: stats.BlockedCount,
		RecentLogs:   recent,
		IsSimulated:  true,
	})
}

func (s *Server) statistics(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := s.opts.Store.Stats(ctx)
	if err != nil {
		s.fail(c, cserrors.Wrap(err, cserrors.KindIO, "stats"))
		return
	}
	blocked, err := s.opts.Store.BlockedIPs(ctx)
	if err != nil {
		s.fail(c, cserrors.Wrap(err, cserrors.KindIO, "blocked ips"))
		return
	}
	if len(blocked) > blockedListLimit {
		blocked = blocked[:blockedListLimit]
	}

	var rate float64
	if stats.TotalTraffic > 0 {
		rate = float64(stats.MaliciousCount) / float64(stats.TotalTraffic) * 100
	}

	c.JSON(http.StatusOK, model.Statistics{
		TotalTraffic:       stats.TotalTraffic,
		MaliciousCount:     stats.MaliciousCount,
		BlockedIPs:         stats.BlockedCount,
		DetectionRate:      rate,
		ThreatDistribution: stats.ThreatDistribution,
		BlockedIPList:      blocked,
	})
}

// Report is the document written by generate-report.
type Report struct {
	GeneratedAt       string              `json:"generated_at"`
	Summary           model.ReportSummary `json:"summary"`
	PerformanceImpact PerformanceImpact   `json:"performance_impact"`
	RecentThreats     []model.LogEntry    `json:"recent_threats"`
	BlockedIPs        []string            `json:"blocked_ips"`
}

func (s *Server) buildReport(ctx context.Context, now time.Time) (Report, error) {
	stats, err := s.opts.Store.Stats(ctx)
	if err != nil {
		return Report{}, err
	}
	recent, err := s.opts.Store.RecentLogs(ctx, reportLogLimit)
	if err != nil {
		return Report{}, err
	}
	blocked, err := s.opts.Store.BlockedIPs(ctx)
	if err != nil {
		return Report{}, err
	}

	threats := []model.LogEntry{}
	for _, e := range recent {
		if e.Prediction != model.CategoryNormal {
			threats = append(threats, e)
		}
	}

	s.mu.Lock()
	status := statusSecure
	if s.session.AttackDetected {
		status = statusUnderAttack
	}
	impact := s.session.Impact()
	s.mu.Unlock()

	return Report{
		GeneratedAt: now.Format(TimestampLayout),
		Summary: model.ReportSummary{
			TotalPacketsAnalyzed: stats.TotalTraffic,
			ThreatsDetected:      stats.MaliciousCount,
			IPsBlocked:           stats.BlockedCount,
			SystemStatus:         status,
		},
		PerformanceImpact: impact,
		RecentThreats:     threats,
		BlockedIPs:        blocked,
	}, nil
}

func (s *Server) generateReport(c *gin.Context) {
	now := s.opts.Now()
	rep, err := s.buildReport(c.Request.Context(), now)
	if err != nil {
		s.fail(c, cserrors.Wrap(err, cserrors.KindIO, "build report"))
		return
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		s.fail(c, cserrors.Wrap(err, cserrors.KindInternal, "encode report"))
		return
	}
	if err := os.MkdirAll(s.opts.ReportsDir, 0o755); err != nil {
		s.fail(c, cserrors.Wrap(err, cserrors.KindIO, "create reports dir"))
		return
	}
	path := filepath.Join(s.opts.ReportsDir, fmt.Sprintf("security_report_%s.json", now.Format(reportFileLayout)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.fail(c, cserrors.Attr(cserrors.Wrap(err, cserrors.KindIO, "write report"), "path", path))
		return
	}

	s.logger.Info("report generated", "path", path, "threats", rep.Summary.ThreatsDetected)
	c.JSON(http.StatusOK, gin.H{"report": rep, "saved_to": path})
}

func (s *Server) reset(c *gin.Context) {
	s.mu.Lock()
	s.session = NewSession()
	s.mu.Unlock()

	s.logger.Info("session reset")
	c.JSON(http.StatusOK, model.ResetResult{Status: "success", Message: resetMessage})
}
