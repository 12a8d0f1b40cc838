// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("OTEL_TRACES_EXPORTER", "")
	t.Setenv("OTEL_METRICS_EXPORTER", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	cfg := DefaultConfig()

	if cfg.ServiceName != "romcalc" {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, "romcalc")
	}
	if cfg.TraceExporter != ExporterNone {
		t.Errorf("TraceExporter = %q, want %q", cfg.TraceExporter, ExporterNone)
	}
	if cfg.MetricExporter != ExporterPrometheus {
		t.Errorf("MetricExporter = %q, want %q", cfg.MetricExporter, ExporterPrometheus)
	}
	if cfg.OTLPEndpoint != "localhost:4317" {
		t.Errorf("OTLPEndpoint = %q, want %q", cfg.OTLPEndpoint, "localhost:4317")
	}
}

func TestDefaultConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OTEL_TRACES_EXPORTER", "stdout")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")

	cfg := DefaultConfig()

	if cfg.TraceExporter != "stdout" {
		t.Errorf("TraceExporter = %q, want stdout", cfg.TraceExporter)
	}
	if cfg.OTLPEndpoint != "collector:4317" {
		t.Errorf("OTLPEndpoint = %q, want collector:4317", cfg.OTLPEndpoint)
	}
}

func TestInit_NilContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = ExporterNone

	//nolint:staticcheck // nil context is the case under test
	_, err := Init(nil, cfg)
	if !errors.Is(err, ErrNilContext) {
		t.Errorf("Init(nil, cfg) error = %v, want %v", err, ErrNilContext)
	}
}

func TestInit_NoopExporters(t *testing.T) {
	cfg := Config{TraceExporter: ExporterNone, MetricExporter: ExporterNone}

	tel, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if tel.Registry() != nil {
		t.Error("Registry() should be nil without the prometheus exporter")
	}
	if tel.MetricsHandler() != nil {
		t.Error("MetricsHandler() should be nil without the prometheus exporter")
	}
	if err := tel.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); !errors.Is(err, ErrNoRegistry) {
		t.Errorf("WriteTextfile() error = %v, want %v", err, ErrNoRegistry)
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestInit_UnknownExporter(t *testing.T) {
	tests := []Config{
		{TraceExporter: "zipkin", MetricExporter: ExporterNone},
		{TraceExporter: ExporterNone, MetricExporter: "statsd"},
	}

	for _, cfg := range tests {
		_, err := Init(context.Background(), cfg)
		if !errors.Is(err, ErrUnknownExporter) {
			t.Errorf("Init(%+v) error = %v, want %v", cfg, err, ErrUnknownExporter)
		}
	}
}

func TestInit_StdoutTraceExporterWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		ServiceName:    "romcalc-test",
		TraceExporter:  ExporterStdout,
		MetricExporter: ExporterNone,
		Output:         &buf,
	}

	tel, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	_, span := StartSpan(context.Background(), "test.Operation")
	span.End()

	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !strings.Contains(buf.String(), "test.Operation") {
		t.Errorf("expected span in output, got %q", buf.String())
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	tel, err := Init(context.Background(), Config{
		TraceExporter:  ExporterStdout,
		MetricExporter: ExporterPrometheus,
		Output:         io.Discard,
	})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("first Shutdown() error = %v", err)
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestMetricsHandler_ServesRecordedMetrics(t *testing.T) {
	tel := newPrometheusTelemetry(t)
	m, err := NewMetrics(tel.Meter())
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	m.RecordConversion(context.Background(), "to_roman", true)

	rec := httptest.NewRecorder()
	tel.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "romcalc_conversions") {
		t.Errorf("expected romcalc_conversions in body, got:\n%s", rec.Body.String())
	}
}

func TestWriteTextfile(t *testing.T) {
	tel := newPrometheusTelemetry(t)
	m, err := NewMetrics(tel.Meter())
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	m.RecordEvaluation(context.Background(), SourceCLI, "roman", "add", "", 0)

	path := filepath.Join(t.TempDir(), "romcalc.prom")
	if err := tel.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "romcalc_evaluations") {
		t.Errorf("expected romcalc_evaluations in textfile, got:\n%s", data)
	}
}

// newPrometheusTelemetry initializes telemetry with the prometheus exporter
// and registers cleanup.
func newPrometheusTelemetry(t *testing.T) *Telemetry {
	t.Helper()
	tel, err := Init(context.Background(), Config{
		ServiceName:    "romcalc-test",
		TraceExporter:  ExporterNone,
		MetricExporter: ExporterPrometheus,
	})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { _ = tel.Shutdown(context.Background()) })
	return tel
}
