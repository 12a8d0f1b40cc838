// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package calculator wraps pkg/calc with logging, tracing and metrics and
// exposes it over HTTP.
//
// The same Calculator backs every entry point (the interactive prompt, the
// eval and batch commands, and the HTTP API) so that all evaluations are
// observed the same way.
//
// # Usage
//
//	calc := calculator.NewCalculator(logger, metrics)
//	res, err := calc.Evaluate(ctx, telemetry.SourceCLI, "V*II")
//
//	srv, err := calculator.New(calculator.Config{Port: 12230}, calc, tel, metrics, logger)
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package calculator

import (
	"context"
	"time"

	"github.com/AleutianAI/romcalc/pkg/calc"
	"github.com/AleutianAI/romcalc/pkg/history"
	"github.com/AleutianAI/romcalc/pkg/logging"
	"github.com/AleutianAI/romcalc/pkg/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Calculator evaluates expressions and converts numerals with
// observability attached.
//
// # Description
//
// Each call gets an eval_id (UUID v4), a span, a metrics record and a log
// line. Evaluation failures are returned unchanged so callers can print
// the *calc.Error message verbatim; they are logged at debug level only,
// since a rejected expression is an expected outcome.
//
// # Thread Safety
//
// Safe for concurrent use. The batch command and the HTTP server call it
// from many goroutines.
type Calculator struct {
	logger  *logging.Logger
	metrics *telemetry.Metrics
	history Recorder
}

// Recorder stores evaluation outcomes. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) error
}

// NewCalculator creates a Calculator. A nil logger logs nowhere and nil
// metrics record nothing.
func NewCalculator(logger *logging.Logger, metrics *telemetry.Metrics) *Calculator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Calculator{
		logger:  logger,
		metrics: metrics,
	}
}

// WithHistory makes Evaluate record every outcome to r. A failed write is
// logged and does not fail the evaluation. Call before sharing c.
func (c *Calculator) WithHistory(r Recorder) *Calculator {
	c.history = r
	return c
}

// Evaluate computes one expression.
//
// # Inputs
//
//   - ctx: parent context for the span
//   - source: one of the telemetry.Source* constants
//   - input: the raw expression
//
// # Outputs
//
//   - calc.Result: the evaluation result
//   - error: a *calc.Error on any evaluation failure
func (c *Calculator) Evaluate(ctx context.Context, source, input string) (calc.Result, error) {
	evalID := uuid.NewString()
	ctx, span := telemetry.StartSpan(ctx, "calculator.Evaluate",
		trace.WithAttributes(
			attribute.String("eval.id", evalID),
			attribute.String("eval.source", source),
		),
	)
	defer span.End()

	start := time.Now()
	res, err := calc.Compute(input)
	elapsed := time.Since(start)

	log := c.logger.With("eval_id", evalID, "source", source)
	log = log.With(telemetry.LogAttrs(ctx)...)

	if err != nil {
		kind := calc.KindOf(err)
		telemetry.RecordError(span, err, attribute.String("eval.kind", string(kind)))
		c.metrics.RecordEvaluation(ctx, source, string(calc.FormatUnknown), "", string(kind), elapsed)
		log.Debug("evaluation rejected",
			"input", input,
			"kind", string(kind),
			"error", err.Error(),
		)
		c.record(ctx, log, history.Entry{
			ID: evalID, Source: source, Input: input,
			Error: err.Error(), Kind: string(kind),
		})
		return calc.Result{}, err
	}

	span.SetAttributes(
		attribute.String("eval.format", string(res.Format)),
		attribute.String("eval.operator", res.Operation),
	)
	telemetry.SetSpanOK(span)
	c.metrics.RecordEvaluation(ctx, source, string(res.Format), res.Operation, "", elapsed)
	log.Debug("evaluation complete",
		"input", res.Input,
		"format", string(res.Format),
		"operator", res.Operation,
		"output", res.Output,
		"duration", elapsed,
	)
	c.record(ctx, log, history.Entry{
		ID: evalID, Source: source, Input: res.Input, Output: res.Output,
	})
	return res, nil
}

func (c *Calculator) record(ctx context.Context, log *logging.Logger, e history.Entry) {
	if c.history == nil {
		return
	}
	if err := c.history.Record(ctx, e); err != nil {
		log.Warn("evaluation not recorded in history", "error", err)
	}
}

// Convert renders a value in the other notation.
func (c *Calculator) Convert(ctx context.Context, value string) (calc.Conversion, error) {
	ctx, span := telemetry.StartSpan(ctx, "calculator.Convert")
	defer span.End()

	conv, err := calc.Convert(value)
	if err != nil {
		telemetry.RecordError(span, err, attribute.String("eval.kind", string(calc.KindOf(err))))
		c.metrics.RecordConversion(ctx, "unknown", false)
		c.logger.Debug("conversion rejected", "input", value, "error", err.Error())
		return calc.Conversion{}, err
	}

	telemetry.SetSpanOK(span)
	c.metrics.RecordConversion(ctx, conv.Direction(), true)
	c.logger.Debug("conversion complete",
		"input", conv.Input,
		"direction", conv.Direction(),
		"output", conv.Output(),
	)
	return conv, nil
}
