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
	"net/http"

	"github.com/AleutianAI/romcalc/services/calculator/middleware"
	"github.com/gin-gonic/gin"
)

// HandleConvert converts the :value path parameter to the other notation.
//
// GET /v1/convert/XIV -> {"arabic":14,"roman":"XIV","output":"14",...}.
// Failures are 422 as for HandleEval.
func HandleConvert(calculator Calculator) gin.HandlerFunc {
	return func(c *gin.Context) {
		conv, err := calculator.Convert(c.Request.Context(), c.Param("value"))
		if err != nil {
			unprocessable(c, err)
			return
		}

		c.JSON(http.StatusOK, ConvertResponse{
			RequestID:  middleware.GetRequestID(c),
			Conversion: conv,
			Output:     conv.Output(),
		})
	}
}

// HealthCheck reports that the server is up.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}
