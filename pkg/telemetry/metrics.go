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
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Evaluation sources recorded on the evaluation metrics.
const (
	SourceCLI       = "cli"
	SourceBatch     = "batch"
	SourceHTTP      = "http"
	SourceWebSocket = "websocket"
)

// Metrics contains the romcalc instruments.
//
// Description:
//
//	Provides counters and histograms for evaluations, conversions, and the
//	HTTP API. All metrics use the "romcalc_" prefix. Recording methods are
//	no-ops on a nil *Metrics so callers may run without telemetry.
//
// Thread Safety: Safe for concurrent use after creation.
type Metrics struct {
	// --- Evaluation Metrics ---

	// EvaluationsTotal counts evaluations by source, format, operation, and status.
	EvaluationsTotal metric.Int64Counter

	// EvaluationErrorsTotal counts failed evaluations by error kind.
	EvaluationErrorsTotal metric.Int64Counter

	// EvaluationDuration records evaluation duration in seconds.
	EvaluationDuration metric.Float64Histogram

	// ConversionsTotal counts numeral conversions by direction and status.
	ConversionsTotal metric.Int64Counter

	// --- HTTP Metrics ---

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal metric.Int64Counter

	// HTTPRequestDuration records HTTP request duration in seconds.
	HTTPRequestDuration metric.Float64Histogram

	// HTTPActiveRequests tracks in-flight HTTP requests.
	HTTPActiveRequests metric.Int64UpDownCounter

	// HTTPRateLimitedTotal counts requests rejected by the rate limiter.
	HTTPRateLimitedTotal metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all instruments registered.
//
// Description:
//
//	Registers all pre-defined instruments with the provided meter.
//	Returns an error if any registration fails.
//
// Inputs:
//
//	meter - The OTel meter to use, normally Telemetry.Meter().
//
// Outputs:
//
//	*Metrics - The metrics instance.
//	error - Non-nil if instrument registration fails.
//
// Example:
//
//	metrics, err := telemetry.NewMetrics(tel.Meter())
//	if err != nil {
//	    return fmt.Errorf("create metrics: %w", err)
//	}
//	metrics.RecordEvaluation(ctx, telemetry.SourceCLI, "roman", "multiply", "", elapsed)
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	// --- Evaluation Metrics ---
	m.EvaluationsTotal, err = meter.Int64Counter(
		"romcalc_evaluations_total",
		metric.WithDescription("Total expression evaluations"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create evaluations_total: %w", err)
	}

	m.EvaluationErrorsTotal, err = meter.Int64Counter(
		"romcalc_evaluation_errors_total",
		metric.WithDescription("Failed evaluations by error kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create evaluation_errors_total: %w", err)
	}

	m.EvaluationDuration, err = meter.Float64Histogram(
		"romcalc_evaluation_duration_seconds",
		metric.WithDescription("Evaluation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01),
	)
	if err != nil {
		return nil, fmt.Errorf("create evaluation_duration: %w", err)
	}

	m.ConversionsTotal, err = meter.Int64Counter(
		"romcalc_conversions_total",
		metric.WithDescription("Total numeral conversions"),
		metric.WithUnit("{conversion}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create conversions_total: %w", err)
	}

	// --- HTTP Metrics ---
	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"romcalc_http_requests_total",
		metric.WithDescription("Total HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create http_requests_total: %w", err)
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"romcalc_http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1),
	)
	if err != nil {
		return nil, fmt.Errorf("create http_request_duration: %w", err)
	}

	m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"romcalc_http_active_requests",
		metric.WithDescription("Currently active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create http_active_requests: %w", err)
	}

	m.HTTPRateLimitedTotal, err = meter.Int64Counter(
		"romcalc_http_rate_limited_total",
		metric.WithDescription("HTTP requests rejected by the rate limiter"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create http_rate_limited_total: %w", err)
	}

	return m, nil
}

// RecordEvaluation records one evaluation.
//
// errKind is empty for a successful evaluation; otherwise it is the error
// kind and the evaluation also counts towards EvaluationErrorsTotal.
func (m *Metrics) RecordEvaluation(ctx context.Context, source, format, operation, errKind string, d time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if errKind != "" {
		status = "error"
	}
	m.EvaluationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("format", format),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.EvaluationDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("source", source),
	))
	if errKind != "" {
		m.EvaluationErrorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("source", source),
			attribute.String("kind", errKind),
		))
	}
}

// RecordConversion records one numeral conversion. direction is
// "to_roman" or "to_arabic".
func (m *Metrics) RecordConversion(ctx context.Context, direction string, ok bool) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	m.ConversionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("direction", direction),
		attribute.String("status", status),
	))
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, d.Seconds(), attrs)
}

// TrackActiveRequest increments the in-flight gauge and returns a func that
// decrements it.
func (m *Metrics) TrackActiveRequest(ctx context.Context) func() {
	if m == nil {
		return func() {}
	}
	m.HTTPActiveRequests.Add(ctx, 1)
	return func() { m.HTTPActiveRequests.Add(ctx, -1) }
}

// RecordRateLimited records a request rejected by the rate limiter.
func (m *Metrics) RecordRateLimited(ctx context.Context, route string) {
	if m == nil {
		return
	}
	m.HTTPRateLimitedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
	))
}
