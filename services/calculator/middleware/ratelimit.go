// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/AleutianAI/romcalc/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// NewLimiter builds the token bucket for RateLimit. A non-positive
// perSecond disables limiting.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// UpdateLimiter applies new settings to a limiter made by NewLimiter,
// with the same rules. Requests already holding a token are unaffected.
func UpdateLimiter(limiter *rate.Limiter, perSecond float64, burst int) {
	if perSecond <= 0 {
		limiter.SetLimit(rate.Inf)
		return
	}
	if burst < 1 {
		burst = 1
	}
	limiter.SetBurst(burst)
	limiter.SetLimit(rate.Limit(perSecond))
}

// RateLimit rejects requests with 429 once limiter is exhausted.
//
// # Description
//
// One bucket is shared by every client. Rejected requests get a
// Retry-After header computed from a cancelled reservation, so checking
// the delay never consumes a token. Retry-After is at least 1 second.
//
// # Inputs
//
//   - limiter: shared token bucket, see NewLimiter
//   - metrics: may be nil
func RateLimit(limiter *rate.Limiter, metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter.Allow() {
			c.Next()
			return
		}

		reservation := limiter.Reserve()
		delay := reservation.Delay()
		reservation.Cancel()

		retryAfter := int(math.Ceil(delay.Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}

		metrics.RecordRateLimited(c.Request.Context(), c.FullPath())
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": GetRequestID(c),
			"error":      "rate limit exceeded",
		})
	}
}
