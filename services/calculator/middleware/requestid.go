// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package middleware provides HTTP middleware for the calculator service.
//
// Middleware order, outermost first:
//
//	Request
//	   │
//	   ▼
//	RequestID    assigns X-Request-ID
//	   │
//	   ▼
//	Metrics      counts and times the request
//	   │
//	   ▼
//	otelgin      server span
//	   │
//	   ▼
//	RateLimit    /v1 routes only, 429 when exhausted
//	   │
//	   ▼
//	Handler
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key for the request ID.
const requestIDKey = "romcalc_request_id"

// RequestID assigns every request a UUID.
//
// # Description
//
// A client-supplied X-Request-ID that parses as a UUID is kept; anything
// else is replaced. The ID is echoed in the response header and available
// to handlers via GetRequestID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request ID set by RequestID, or "" if the
// middleware did not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
