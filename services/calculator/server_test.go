// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package calculator

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, cfg Config) (Server, *harness) {
	t.Helper()
	h := newHarness(t)
	if cfg.GinMode == "" {
		cfg.GinMode = gin.TestMode
	}
	srv, err := New(cfg, h.calc, h.tel, h.metrics, nil)
	require.NoError(t, err)
	return srv, h
}

func serve(srv Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestNew_NilCalculator(t *testing.T) {
	_, err := New(Config{}, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestApplyConfigDefaults(t *testing.T) {
	cfg := applyConfigDefaults(Config{})

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, gin.ReleaseMode, cfg.GinMode)
	assert.Equal(t, 100, cfg.Burst)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestServer_EvalEndToEnd(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := serve(srv, http.MethodPost, "/v1/eval", `{"expression":"V*II"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "X", body["output"])
	assert.Equal(t, "roman", body["format"])
	assert.NotEmpty(t, body["request_id"])
	assert.Equal(t, body["request_id"], w.Header().Get("X-Request-ID"))
}

func TestServer_EvalFailureIs422(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := serve(srv, http.MethodGet, "/v1/eval?expr=IIII%2BI", "")

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid_roman_numeral", body["kind"])
}

func TestServer_Convert(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := serve(srv, http.MethodGet, "/v1/convert/1994", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"output":"MCMXCIV"`)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	srv, h := newTestServer(t, Config{})

	w := serve(srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	serve(srv, http.MethodPost, "/v1/eval", `{"expression":"3+4"}`)

	w = serve(srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "romcalc_evaluations_total")
	assert.Contains(t, w.Body.String(), "romcalc_http_requests_total")

	count, err := testutil.GatherAndCount(h.tel.Registry(), "romcalc_http_requests_total")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 2, "health and eval routes are separate series")
}

func TestServer_RateLimited(t *testing.T) {
	srv, h := newTestServer(t, Config{RateLimit: 0.001, Burst: 1})

	first := serve(srv, http.MethodGet, "/v1/eval?expr=1%2B1", "")
	second := serve(srv, http.MethodGet, "/v1/eval?expr=1%2B1", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	// /health is outside the limited group
	assert.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/health", "").Code)

	count, err := testutil.GatherAndCount(h.tel.Registry(), "romcalc_http_rate_limited_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServer_SetRateLimit(t *testing.T) {
	srv, _ := newTestServer(t, Config{RateLimit: 0.001, Burst: 1})

	require.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/v1/eval?expr=2%2B2", "").Code)
	require.Equal(t, http.StatusTooManyRequests, serve(srv, http.MethodGet, "/v1/eval?expr=2%2B2", "").Code)

	srv.SetRateLimit(0, 0)

	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/v1/eval?expr=2%2B2", "").Code)
	}
}

func TestServer_WebSocket(t *testing.T) {
	srv, h := newTestServer(t, Config{})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/v1/ws", nil)
	require.NoError(t, err)
	defer ws.Close()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))

	var session map[string]string
	require.NoError(t, ws.ReadJSON(&session))
	assert.Equal(t, "session_created", session["action"])

	require.NoError(t, ws.WriteJSON(map[string]string{"expression": "IX+I"}))
	var reply map[string]string
	require.NoError(t, ws.ReadJSON(&reply))
	assert.Equal(t, "X", reply["output"])

	count, err := testutil.GatherAndCount(h.tel.Registry(), "romcalc_evaluations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServer_RecordsHTTPSpans(t *testing.T) {
	srv, h := newTestServer(t, Config{})

	serve(srv, http.MethodPost, "/v1/eval", `{"expression":"X-I"}`)

	var names []string
	for _, s := range h.spans.Ended() {
		names = append(names, s.Name())
	}
	assert.Contains(t, names, "calculator.Evaluate")
	assert.Len(t, names, 2, "server span and evaluation span")
}

func TestServer_RunAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	srv, _ := newTestServer(t, Config{Host: "127.0.0.1", Port: port, ShutdownTimeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := "http://" + net.JoinHostPort("127.0.0.1", strconv.Itoa(port)) + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
