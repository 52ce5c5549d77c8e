package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"insurecost/internal/config"
	"insurecost/internal/gateway"
	"insurecost/internal/httpapi"
	"insurecost/internal/logx"
)

type serveFlags struct {
	configPath  string
	addr        string
	modelPath   string
	logFile     string
	corsEnabled bool
	corsOrigins []string
}

func newServeCmd(g *globalFlags) *cobra.Command {
	f := &serveFlags{}
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the prediction HTTP service",
		Example: "  insurecost serve --model-path models/insurance.json --addr :8000",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveServeConfig(cmd, f, g, os.Getenv)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, cfg)
		},
	}
	bindServeFlags(cmd, f)
	return cmd
}

func bindServeFlags(cmd *cobra.Command, f *serveFlags) {
	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "Path to config file (.yaml/.yml/.json/.toml)")
	fl.StringVar(&f.addr, "addr", config.DefaultAddr, "HTTP listen address (defaults INSURECOST_ADDR)")
	fl.StringVar(&f.modelPath, "model-path", config.DefaultModelPath, "Model artifact path (defaults INSURECOST_MODEL_PATH)")
	fl.StringVar(&f.logFile, "log-file", "", "Also write JSON logs to this rotating file")
	fl.BoolVar(&f.corsEnabled, "cors-enabled", false, "Enable CORS for browser clients")
	fl.StringSliceVar(&f.corsOrigins, "cors-origins", nil, "Allowed CORS origins (default *)")
}

// resolveServeConfig layers defaults < config file < environment < flags.
func resolveServeConfig(cmd *cobra.Command, f *serveFlags, g *globalFlags, getenv func(string) string) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	cfg = cfg.ApplyEnv(getenv)
	fl := cmd.Flags()
	if fl.Changed("addr") {
		cfg.Addr = f.addr
	}
	if fl.Changed("model-path") {
		cfg.ModelPath = f.modelPath
	}
	if fl.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if fl.Changed("cors-enabled") {
		cfg.CORSEnabled = f.corsEnabled
	}
	if fl.Changed("cors-origins") {
		cfg.CORSOrigins = f.corsOrigins
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if fl.Changed("log-format") {
		cfg.LogFormat = g.logFormat
	}
	return cfg.WithDefaults(), nil
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg config.Config) error {
	logger, closeLog, err := logx.New(logx.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile, Out: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	httpapi.SetLogger(logger)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, nil, nil)

	gw := gateway.New(gateway.Config{ModelPath: cfg.ModelPath, Logger: &logger})
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(gw),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		logger.Info().Str("addr", cfg.Addr).Str("model_path", cfg.ModelPath).Str("state", string(gw.State())).Msg("insurecost listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	grp.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownSeconds)*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logger.Warn().Err(err).Msg("graceful shutdown error")
			return err
		}
		logger.Info().Msg("insurecost stopped")
		return nil
	})
	return grp.Wait()
}
