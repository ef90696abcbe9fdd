package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/GriffinCanCode/termline/internal/config"
	"github.com/GriffinCanCode/termline/internal/engine"
	"github.com/GriffinCanCode/termline/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/termline/internal/logging"
	"github.com/GriffinCanCode/termline/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Config file (.toml, .yaml)")
	prompt := flag.String("prompt", "", "Prompt text")
	historySize := flag.Int("history", 0, "History capacity")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	dev := flag.Bool("dev", false, "Development mode (debug logs)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termline: %v\n", err)
		os.Exit(1)
	}

	// Flags override whichever source loaded; -config replaces env entirely
	if *prompt != "" {
		cfg.Session.Prompt = *prompt
	}
	if *historySize > 0 {
		cfg.Session.HistorySize = *historySize
	}
	if *metricsAddr != "" {
		cfg.Metrics.Address = *metricsAddr
	}
	if *dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termline: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("termline failed", zap.Error(err))
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func newLogger(cfg config.LogConfig) (*logging.Logger, error) {
	logCfg := logging.DefaultConfig()
	if cfg.Development {
		logCfg = logging.DevelopmentConfig()
	}
	logCfg.Level = cfg.Level
	return logging.New(logCfg)
}

func run(cfg *config.Config, logger *logging.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := monitoring.NewMetrics(reg)

	if cfg.Metrics.Address != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Address,
			Handler:           monitoring.Router(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Metrics server shutdown failed", zap.Error(err))
			}
		}()
		logger.Info("Serving metrics", zap.String("addr", cfg.Metrics.Address))
	}

	sess := session.New(engine.NewReadline(), session.Options{
		HistoryCapacity:            cfg.Session.HistorySize,
		QueueInterruptsWhilePaused: cfg.Session.QueueInterrupts,
		Logger:                     logger,
		Metrics:                    metrics,
	})

	sh := newShell(sess, metrics)
	sh.register()

	if status := sess.Initialize(); status != session.StatusReady {
		return fmt.Errorf("initialize: %s", status)
	}
	defer sess.Close()

	sess.SetPrompt(cfg.Session.Prompt)
	sh.loop()
	return nil
}
