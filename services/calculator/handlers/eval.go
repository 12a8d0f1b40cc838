// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AleutianAI/romcalc/pkg/calc"
	"github.com/AleutianAI/romcalc/pkg/telemetry"
	"github.com/AleutianAI/romcalc/services/calculator/middleware"
	"github.com/gin-gonic/gin"
)

// HandleEval evaluates the expression in a JSON body.
//
// # Description
//
// POST /v1/eval with {"expression": "V*II"}.
//
//   - 200: EvalResponse
//   - 400: malformed JSON or failed validation
//   - 422: the expression was rejected; body carries the message and kind
func HandleEval(calculator Calculator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EvalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		evaluate(c, calculator, req)
	}
}

// HandleEvalQuery evaluates the expression in the "expr" query parameter.
//
// GET /v1/eval?expr=V*II. Responses match HandleEval.
func HandleEvalQuery(calculator Calculator) gin.HandlerFunc {
	return func(c *gin.Context) {
		evaluate(c, calculator, EvalRequest{Expression: c.Query("expr")})
	}
}

func evaluate(c *gin.Context, calculator Calculator, req EvalRequest) {
	if err := req.Validate(); err != nil {
		badRequest(c, "expression is required and must be at most 64 characters")
		return
	}

	res, err := calculator.Evaluate(c.Request.Context(), telemetry.SourceHTTP, req.Expression)
	if err != nil {
		unprocessable(c, err)
		return
	}

	c.JSON(http.StatusOK, EvalResponse{
		RequestID: middleware.GetRequestID(c),
		Result:    res,
	})
}

// unprocessable writes a 422 for an evaluation failure. Anything that is
// not a *calc.Error is an internal fault and gets a 500 with a generic
// message.
func unprocessable(c *gin.Context, err error) {
	var calcErr *calc.Error
	if !errors.As(err, &calcErr) {
		slog.Error("unexpected calculator failure",
			"request_id", middleware.GetRequestID(c),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			RequestID: middleware.GetRequestID(c),
			Error:     "internal error",
		})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		RequestID: middleware.GetRequestID(c),
		Error:     calcErr.Error(),
		Kind:      string(calcErr.Kind),
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		RequestID: middleware.GetRequestID(c),
		Error:     message,
	})
}
