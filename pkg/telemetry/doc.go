// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry wires OpenTelemetry tracing and metrics for romcalc.
//
// Traces go to an OTLP collector, to a writer (stderr by default), or
// nowhere. Metrics are recorded through OTel instruments and bridged into a
// private Prometheus registry, which the HTTP server exposes on /metrics and
// the CLI can dump to a node_exporter textfile.
//
// Basic use:
//
//	tel, err := telemetry.Init(ctx, telemetry.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(context.Background())
//
//	metrics, err := telemetry.NewMetrics(tel.Meter())
package telemetry

import "errors"

var (
	// ErrNilContext is returned when Init is called with a nil context.
	ErrNilContext = errors.New("telemetry: nil context")

	// ErrUnknownExporter is returned for an unrecognised exporter name.
	ErrUnknownExporter = errors.New("telemetry: unknown exporter")

	// ErrNoRegistry is returned when a Prometheus operation is requested but
	// metrics are not exported to Prometheus.
	ErrNoRegistry = errors.New("telemetry: prometheus registry not configured")
)
