// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package cmd

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"grimm.is/cybershield/internal/brand"
	"grimm.is/cybershield/internal/config"
	"grimm.is/cybershield/internal/logging"
	"grimm.is/cybershield/internal/sim"
)

type simFlags struct {
	configPath string
	listen     string
	database   string
	reportsDir string
	seed       int64
	version    bool
}

func parseSimFlags(args []string, errOut io.Writer) (*simFlags, error) {
	f := &simFlags{}
	fs := flag.NewFlagSet(brand.SimBinary, flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&f.configPath, "config", "", "Path to config file (HCL, JSON or YAML)")
	fs.StringVar(&f.listen, "listen", "", "Listen address")
	fs.StringVar(&f.database, "db", "", "SQLite database path")
	fs.StringVar(&f.reportsDir, "reports", "", "Directory for generated reports")
	fs.Int64Var(&f.seed, "seed", 0, "Traffic generator seed (0: random)")
	fs.BoolVar(&f.version, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *simFlags) apply(cfg *config.Config) {
	if f.listen != "" {
		cfg.Sim.Listen = f.listen
	}
	if f.database != "" {
		cfg.Sim.Database = f.database
	}
	if f.reportsDir != "" {
		cfg.Sim.ReportsDir = f.reportsDir
	}
	if f.seed != 0 {
		cfg.Sim.Seed = f.seed
	}
}

// RunSim serves the development backend until interrupted.
func RunSim(args []string) error {
	flags, err := parseSimFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	if flags.version {
		printVersion(brand.SimBinary, brand.Version)
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

	out, closeLog, err := openLog(cfg.Logging, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	logger, err := newLogger(cfg.Logging, out, brand.SimBinary)
	if err != nil {
		return err
	}
	logging.SetDefault(logger)

	if !logger.Enabled(logging.LevelDebug) {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := sim.OpenStore(cfg.Sim.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := sim.NewServer(sim.Options{
		Store:      store,
		Sampler:    sim.NewHostSampler(),
		Generator:  sim.NewGenerator(cfg.Sim.Seed, cfg.Sim.MaliciousRatio),
		ReportsDir: cfg.Sim.ReportsDir,
		RateLimit:  cfg.Sim.RateLimit,
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	Printer.Printf("Starting %s simulator on %s (database %s)\n", brand.DisplayName, cfg.Sim.Listen, cfg.Sim.Database)
	return srv.Run(ctx, cfg.Sim.Listen)
}
