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
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wsReadLimit caps a single client message in bytes.
const wsReadLimit = 4096

// WSRequest is one expression sent over the websocket. ID is echoed back
// so clients can match replies.
type WSRequest struct {
	ID         string `json:"id,omitempty"`
	Expression string `json:"expression" validate:"required,max=64"`
}

// WSResponse answers a WSRequest. Exactly one of Output or Error is set.
type WSResponse struct {
	ID         string `json:"id,omitempty"`
	Expression string `json:"expression"`
	Output     string `json:"output,omitempty"`
	Error      string `json:"error,omitempty"`
	Kind       string `json:"kind,omitempty"`
}

// WSSession is the first message on every connection.
type WSSession struct {
	Action    string `json:"action"`
	SessionID string `json:"session_id"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func sendJSON(ws *websocket.Conn, v interface{}) error {
	err := ws.WriteJSON(v)
	if err != nil {
		slog.Warn("Failed to write WebSocket JSON", "error", err)
	}
	return err
}

// HandleEvalWebSocket evaluates a stream of expressions on one connection.
//
// # Description
//
// GET /v1/ws upgrades to a websocket. The server first sends a WSSession,
// then answers every WSRequest with a WSResponse in the order received.
// Evaluation failures are replies, not disconnects. The connection ends
// when the client closes it or sends something that is not a JSON object.
func HandleEvalWebSocket(calculator Calculator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Error("failed to upgrade the websocket", "error", err)
			return
		}
		defer ws.Close()
		ws.SetReadLimit(wsReadLimit)

		sessionID := uuid.New().String()
		slog.Debug("Websocket session started", "session_id", sessionID)

		if err := sendJSON(ws, WSSession{Action: "session_created", SessionID: sessionID}); err != nil {
			return
		}

		ctx := c.Request.Context()
		for {
			var req WSRequest
			if err := ws.ReadJSON(&req); err != nil {
				slog.Debug("Websocket client disconnected", "session_id", sessionID, "error", err.Error())
				return
			}

			resp := WSResponse{ID: req.ID, Expression: req.Expression}
			if err := requestValidate.Struct(&req); err != nil {
				resp.Error = "expression is required and must be at most 64 characters"
			} else if res, err := calculator.Evaluate(ctx, telemetry.SourceWebSocket, req.Expression); err != nil {
				var calcErr *calc.Error
				if errors.As(err, &calcErr) {
					resp.Error = calcErr.Error()
					resp.Kind = string(calcErr.Kind)
				} else {
					slog.Error("unexpected calculator failure", "session_id", sessionID, "error", err)
					resp.Error = "internal error"
				}
			} else {
				resp.Output = res.Output
			}

			if err := sendJSON(ws, resp); err != nil {
				return
			}
		}
	}
}
