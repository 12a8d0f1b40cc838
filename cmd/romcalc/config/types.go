// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the romcalc YAML configuration.
package config

type RomcalcConfig struct {
	// Output: terminal rendering
	Output OutputConfig `yaml:"output"`

	// Logging: diagnostics on stderr and optional log files
	Logging LoggingConfig `yaml:"logging"`

	// Metrics: OTel metric exporter and Prometheus textfile
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing: OTel trace exporter
	Tracing TracingConfig `yaml:"tracing"`

	// Server: the HTTP API started by "romcalc serve"
	Server ServerConfig `yaml:"server"`

	// Batch: the "romcalc batch" worker pool
	Batch BatchConfig `yaml:"batch"`

	// History: BadgerDB record of evaluations, read by "romcalc history"
	History HistoryConfig `yaml:"history"`
}

type OutputConfig struct {
	// Personality is full, standard, minimal or machine. Empty picks
	// machine when stdout is not a terminal and full otherwise.
	Personality string `yaml:"personality" validate:"omitempty,oneof=full standard minimal machine"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"` // e.g. warn
	Dir   string `yaml:"dir"`                                          // e.g. ~/.romcalc/logs
	JSON  bool   `yaml:"json"`
}

type MetricsConfig struct {
	Exporter string `yaml:"exporter" validate:"oneof=prometheus stdout none"`
	// Textfile is written on exit for the node_exporter textfile collector.
	Textfile string `yaml:"textfile,omitempty"`
}

type TracingConfig struct {
	Exporter string `yaml:"exporter" validate:"oneof=none stdout otlp"`
	Endpoint string `yaml:"endpoint" validate:"required_if=Exporter otlp"` // e.g. localhost:4317
	Insecure bool   `yaml:"insecure"`
}

type ServerConfig struct {
	Host      string  `yaml:"host,omitempty"`
	Port      int     `yaml:"port" validate:"min=1,max=65535"`
	GinMode   string  `yaml:"gin_mode" validate:"oneof=debug release test"`
	RateLimit float64 `yaml:"rate_limit" validate:"gte=0"` // requests per second, 0 disables
	Burst     int     `yaml:"burst" validate:"gte=0"`
}

type BatchConfig struct {
	Workers int `yaml:"workers" validate:"min=1,max=256"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir" validate:"required_if=Enabled true"` // e.g. ~/.romcalc/history
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() RomcalcConfig {
	return RomcalcConfig{
		Output: OutputConfig{
			Personality: "",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		Metrics: MetricsConfig{
			Exporter: "prometheus",
		},
		Tracing: TracingConfig{
			Exporter: "none",
			Endpoint: "localhost:4317",
			Insecure: true,
		},
		Server: ServerConfig{
			Port:      12230,
			GinMode:   "release",
			RateLimit: 50,
			Burst:     100,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		History: HistoryConfig{
			Enabled: false,
			Dir:     "~/.romcalc/history",
		},
	}
}
