// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cmd

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"grimm.is/cybershield/internal/api"
	"grimm.is/cybershield/internal/brand"
	"grimm.is/cybershield/internal/config"
	"grimm.is/cybershield/internal/dashboard"
	"grimm.is/cybershield/internal/logging"
	"grimm.is/cybershield/internal/metrics"
	"grimm.is/cybershield/internal/tui"
)

// hudFlags are command-line overrides for the config file.
type hudFlags struct {
	configPath  string
	backendURL  string
	logFile     string
	logLevel    string
	metricsAddr string
	reportDir   string
	version     bool
}

func parseHUDFlags(args []string, errOut io.Writer) (*hudFlags, error) {
	f := &hudFlags{}
	fs := flag.NewFlagSet(brand.HUDBinary, flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&f.configPath, "config", "", "Path to config file (HCL, JSON or YAML)")
	fs.StringVar(&f.backendURL, "backend", "", "Backend base URL")
	fs.StringVar(&f.logFile, "log-file", "", "Write diagnostics to this file (default: discard)")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&f.metricsAddr, "metrics", "", "Serve Prometheus metrics on this address")
	fs.StringVar(&f.reportDir, "report-dir", "", "Directory for downloaded reports")
	fs.BoolVar(&f.version, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *hudFlags) apply(cfg *config.Config) {
	if f.backendURL != "" {
		cfg.Backend.URL = strings.TrimSpace(f.backendURL)
	}
	if f.logFile != "" {
		cfg.Logging.File = f.logFile
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.metricsAddr != "" {
		cfg.Metrics.Listen = f.metricsAddr
	}
	if f.reportDir != "" {
		cfg.Report.Dir = f.reportDir
	}
}

// hudOptions maps the config onto the dashboard model.
func hudOptions(cfg *config.Config) tui.Options {
	return tui.Options{
		Periods: map[dashboard.Stream]time.Duration{
			dashboard.StreamSystem:     cfg.Refresh.SystemMetricsPeriod,
			dashboard.StreamTraffic:    cfg.Refresh.TrafficPeriod,
			dashboard.StreamStatistics: cfg.Refresh.StatisticsPeriod,
		},
		Capacities: dashboard.Capacities{
			CPU:     cfg.Buffers.CPU,
			Memory:  cfg.Buffers.Memory,
			Network: cfg.Buffers.Network,
			Log:     cfg.Buffers.Log,
		},
		Serialize:      cfg.Refresh.Serialize(),
		ReportDir:      cfg.Report.Dir,
		ChartSnapshots: cfg.Report.ChartSnapshots,
	}
}

// RunHUD runs the terminal dashboard until the operator quits.
func RunHUD(args []string) error {
	flags, err := parseHUDFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	if flags.version {
		printVersion(brand.HUDBinary, brand.Version)
		return nil
	}

	cfg, err := loadConfig(flags.configPath, os.Stderr)
	if err != nil {
		return err
	}
	flags.apply(cfg)
	if err := revalidate(cfg); err != nil {
		return err
	}

	// The terminal belongs to the dashboard.
	out, closeLog, err := openLog(cfg.Logging, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()
	logger, err := newLogger(cfg.Logging, out, brand.HUDBinary)
	if err != nil {
		return err
	}
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	reg := metrics.NewRegistry()
	opts := hudOptions(cfg)
	opts.Backend = api.NewClient(cfg.Backend.URL, cfg.Backend.TimeoutDuration, cfg.Backend.InsecureSkipVerify, logger)
	opts.Context = ctx
	opts.Metrics = reg
	opts.Logger = logger

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(tui.NewModel(opts), progOpts...)

	logger.Info("starting dashboard", "backend", cfg.Backend.URL, "version", brand.Version)

	if cfg.Metrics.Listen != "" {
		g.Go(func() error {
			return reg.Serve(ctx, cfg.Metrics.Listen, logger)
		})
	}
	g.Go(func() error {
		defer stop()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	return g.Wait()
}
