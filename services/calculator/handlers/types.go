// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers implements the calculator HTTP endpoints.
package handlers

import (
	"context"

	"github.com/AleutianAI/romcalc/pkg/calc"
	"github.com/go-playground/validator/v10"
)

// MaxExpressionLength bounds the expression accepted by the API.
const MaxExpressionLength = 64

// Calculator is the subset of calculator.Calculator used by the handlers.
type Calculator interface {
	Evaluate(ctx context.Context, source, input string) (calc.Result, error)
	Convert(ctx context.Context, value string) (calc.Conversion, error)
}

// =============================================================================
// Shared Validator Instance
// =============================================================================

// requestValidate is the validator instance for request datatypes.
var requestValidate = validator.New()

// =============================================================================
// Request / Response Types
// =============================================================================

// EvalRequest is the body of POST /v1/eval.
//
// # Validation
//
// Uses go-playground/validator:
//   - Expression: required, at most MaxExpressionLength bytes
type EvalRequest struct {
	Expression string `json:"expression" validate:"required,max=64"`
}

// Validate validates the EvalRequest fields.
func (r *EvalRequest) Validate() error {
	return requestValidate.Struct(r)
}

// EvalResponse is returned for a successful evaluation. The calc.Result
// fields are inlined.
type EvalResponse struct {
	RequestID string `json:"request_id"`
	calc.Result
}

// ConvertResponse is returned for a successful conversion.
type ConvertResponse struct {
	RequestID string `json:"request_id"`
	calc.Conversion
	Output string `json:"output"`
}

// ErrorResponse is returned for every failure. Kind is set for evaluation
// and conversion failures only.
type ErrorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
