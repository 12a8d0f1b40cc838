// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"net/http"

	"github.com/AleutianAI/romcalc/pkg/telemetry"
	"github.com/AleutianAI/romcalc/services/calculator/handlers"
	"github.com/AleutianAI/romcalc/services/calculator/middleware"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// SetupRoutes registers the calculator endpoints. metricsHandler may be
// nil, in which case /metrics is not served.
func SetupRoutes(router *gin.Engine, calculator handlers.Calculator, metricsHandler http.Handler,
	limiter *rate.Limiter, metrics *telemetry.Metrics) {

	router.GET("/health", handlers.HealthCheck)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// API version 1 group
	v1 := router.Group("/v1")
	v1.Use(middleware.RateLimit(limiter, metrics))
	{
		v1.POST("/eval", handlers.HandleEval(calculator))
		v1.GET("/eval", handlers.HandleEvalQuery(calculator))
		v1.GET("/convert/:value", handlers.HandleConvert(calculator))
		v1.GET("/ws", handlers.HandleEvalWebSocket(calculator))
	}
}
