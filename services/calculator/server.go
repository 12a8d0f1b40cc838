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
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/AleutianAI/romcalc/pkg/logging"
	"github.com/AleutianAI/romcalc/pkg/telemetry"
	"github.com/AleutianAI/romcalc/services/calculator/middleware"
	"github.com/AleutianAI/romcalc/services/calculator/routes"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Server defines the contract for the calculator HTTP server.
//
// # Description
//
// Server abstracts the HTTP lifecycle so the serve command and tests can
// drive it without a real listener.
//
// # Thread Safety
//
// Run blocks and should only be called once per instance.
type Server interface {
	// Run starts the HTTP server and blocks until ctx is cancelled or the
	// listener fails.
	//
	// # Description
	//
	// On cancellation the server stops accepting connections and waits up
	// to Config.ShutdownTimeout for in-flight requests.
	//
	// # Outputs
	//
	//   - error: nil after a clean shutdown, otherwise the listen or
	//     shutdown error
	Run(ctx context.Context) error

	// Router returns the underlying Gin engine for testing.
	Router() *gin.Engine

	// SetRateLimit replaces the /v1 token bucket settings while running.
	// Zero or negative perSecond disables limiting.
	SetRateLimit(perSecond float64, burst int)
}

// =============================================================================
// Configuration
// =============================================================================

// Config holds server configuration options.
//
// # Examples
//
//	// Minimal config (uses all defaults)
//	cfg := Config{}
//
//	// Local development
//	cfg := Config{Port: 8080, GinMode: gin.DebugMode, RateLimit: 0}
type Config struct {
	// Host is the interface to bind. Default: "" (all interfaces)
	Host string

	// Port is the HTTP server port. Default: 12230
	Port int

	// GinMode sets the Gin framework mode.
	// Valid values: "debug", "release", "test"
	// Default: "release"
	GinMode string

	// RateLimit is the sustained request rate for /v1 routes, per second.
	// Zero or negative disables limiting.
	RateLimit float64

	// Burst is the token bucket size. Default: 100
	Burst int

	// ShutdownTimeout bounds graceful shutdown. Default: 5s
	ShutdownTimeout time.Duration
}

// DefaultPort is the port used when Config.Port is zero.
const DefaultPort = 12230

// applyConfigDefaults fills in missing configuration values.
func applyConfigDefaults(cfg Config) Config {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.GinMode == "" {
		cfg.GinMode = gin.ReleaseMode
	}
	if cfg.Burst == 0 {
		cfg.Burst = 100
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	return cfg
}

// =============================================================================
// Implementation
// =============================================================================

// server implements Server.
type server struct {
	config  Config
	router  *gin.Engine
	limiter *rate.Limiter
	logger  *logging.Logger
}

// New creates the calculator HTTP server.
//
// # Description
//
// Builds a Gin engine with recovery, request IDs, request metrics, otelgin
// tracing and the calculator routes. /metrics is served from tel's
// Prometheus registry when one is configured.
//
// # Inputs
//
//   - cfg: Server configuration. Zero values use defaults.
//   - calc: the Calculator backing the handlers. Must not be nil.
//   - tel: telemetry providers. May be nil (no /metrics). Spans use the
//     global tracer provider installed by telemetry.Init.
//   - metrics: request instruments. May be nil.
//   - logger: may be nil.
//
// # Outputs
//
//   - Server: ready to Run
//   - error: non-nil if calc is nil
func New(cfg Config, calc *Calculator, tel *telemetry.Telemetry, metrics *telemetry.Metrics, logger *logging.Logger) (Server, error) {
	if calc == nil {
		return nil, errors.New("calculator: nil Calculator")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	cfg = applyConfigDefaults(cfg)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics(metrics))

	router.Use(otelgin.Middleware("romcalc"))

	var metricsHandler http.Handler
	if tel != nil {
		metricsHandler = tel.MetricsHandler()
	}

	limiter := middleware.NewLimiter(cfg.RateLimit, cfg.Burst)
	routes.SetupRoutes(router, calc, metricsHandler, limiter, metrics)

	return &server{
		config:  cfg,
		router:  router,
		limiter: limiter,
		logger:  logger,
	}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (s *server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting calculator server", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down calculator server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Router returns the underlying Gin engine for testing.
func (s *server) Router() *gin.Engine {
	return s.router
}

func (s *server) SetRateLimit(perSecond float64, burst int) {
	middleware.UpdateLimiter(s.limiter, perSecond, burst)
	s.logger.Info("Rate limit updated", "per_second", perSecond, "burst", s.limiter.Burst())
}
