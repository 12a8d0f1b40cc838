// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AleutianAI/romcalc/cmd/romcalc/config"
	"github.com/AleutianAI/romcalc/pkg/history"
	"github.com/AleutianAI/romcalc/pkg/logging"
	"github.com/AleutianAI/romcalc/pkg/telemetry"
	"github.com/AleutianAI/romcalc/pkg/ux"
	"github.com/AleutianAI/romcalc/services/calculator"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath  string
	personality string
	logLevel    string
	metricsFile string
}

// app holds everything a command needs once configuration is loaded.
type app struct {
	cfg         config.RomcalcConfig
	logger      *logging.Logger
	tel         *telemetry.Telemetry
	metrics     *telemetry.Metrics
	calc        *calculator.Calculator
	history     *history.Store
	printer     *ux.Printer
	metricsFile string
}

// newApp loads configuration and builds the logger, telemetry and
// calculator.
//
// # Description
//
// Precedence for the personality is --personality, then
// ROMCALC_PERSONALITY, then output.personality, then terminal detection.
// --log-level and --metrics-file override their config keys.
//
// # Inputs
//
//   - ctx: used for exporter connections
//   - flags: parsed persistent flags
//   - out: result destination (stdout)
//   - errOut: log and trace destination (stderr)
//
// # Outputs
//
//   - *app: ready for a command. Must be closed.
//   - error: config, flag or telemetry failure
func newApp(ctx context.Context, flags globalFlags, out, errOut io.Writer) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	if flags.personality != "" {
		ux.SetPersonalityLevel(ux.ParsePersonalityLevel(flags.personality))
	} else {
		ux.InitPersonality(cfg.Output.Personality)
	}

	levelName := cfg.Logging.Level
	if flags.logLevel != "" {
		levelName = flags.logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}

	logger := logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.Logging.Dir,
		Service: "romcalc",
		JSON:    cfg.Logging.JSON,
		Output:  errOut,
	})

	tel, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "romcalc",
		ServiceVersion: version,
		TraceExporter:  cfg.Tracing.Exporter,
		MetricExporter: cfg.Metrics.Exporter,
		OTLPEndpoint:   cfg.Tracing.Endpoint,
		OTLPInsecure:   cfg.Tracing.Insecure,
		Output:         errOut,
	})
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	metrics, err := telemetry.NewMetrics(tel.Meter())
	if err != nil {
		_ = tel.Shutdown(ctx)
		_ = logger.Close()
		return nil, fmt.Errorf("create metrics: %w", err)
	}

	metricsFile := cfg.Metrics.Textfile
	if flags.metricsFile != "" {
		metricsFile = flags.metricsFile
	}

	calc := calculator.NewCalculator(logger, metrics)
	var store *history.Store
	if cfg.History.Enabled {
		store, err = openHistory(cfg, logger)
		if err != nil {
			_ = tel.Shutdown(ctx)
			_ = logger.Close()
			return nil, err
		}
		calc.WithHistory(store)
	}

	logger.Debug("configuration loaded",
		"personality", string(ux.GetPersonalityLevel()),
		"trace_exporter", cfg.Tracing.Exporter,
		"metric_exporter", cfg.Metrics.Exporter,
	)

	return &app{
		cfg:         cfg,
		logger:      logger,
		tel:         tel,
		metrics:     metrics,
		calc:        calc,
		history:     store,
		printer:     ux.NewPrinter(out),
		metricsFile: metricsFile,
	}, nil
}

// close writes the metrics textfile (if configured), flushes telemetry and
// closes the log file.
func (a *app) close(ctx context.Context) error {
	var errs []error

	if a.metricsFile != "" {
		if err := a.tel.WriteTextfile(a.metricsFile); err != nil {
			a.logger.Warn("metrics textfile not written", "path", a.metricsFile, "error", err)
			errs = append(errs, err)
		}
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close history: %w", err))
		}
	}
	if err := a.tel.Shutdown(ctx); err != nil {
		a.logger.Warn("telemetry shutdown failed", "error", err)
	}
	if err := a.logger.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func openHistory(cfg config.RomcalcConfig, logger *logging.Logger) (*history.Store, error) {
	store, err := history.Open(history.Config{
		Path:   cfg.History.Dir,
		Logger: logger.Slog(),
	})
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", cfg.History.Dir, err)
	}
	return store, nil
}
