// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AleutianAI/romcalc/cmd/romcalc/config"
	"github.com/AleutianAI/romcalc/pkg/ux"
	"github.com/AleutianAI/romcalc/services/calculator"
	"github.com/spf13/cobra"
)

func (c *cli) serveCmd() *cobra.Command {
	var (
		host  string
		port  int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: `Start the HTTP API:

  GET  /health
  GET  /metrics
  POST /v1/eval            {"expression": "V*II"}
  GET  /v1/eval?expr=V*II
  GET  /v1/convert/:value
  GET  /v1/ws              websocket, one {"expression": ...} per message

With --watch, edits to the config file update the rate limit without a
restart. Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := c.app.cfg.Server
			if host != "" {
				sc.Host = host
			}
			if port != 0 {
				sc.Port = port
			}

			srv, err := calculator.New(calculator.Config{
				Host:      sc.Host,
				Port:      sc.Port,
				GinMode:   sc.GinMode,
				RateLimit: sc.RateLimit,
				Burst:     sc.Burst,
			}, c.app.calc, c.app.tel, c.app.metrics, c.app.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watch {
				path, err := c.configPath()
				if err != nil {
					return err
				}
				w, err := config.NewWatcher(path, func(cfg config.RomcalcConfig) {
					srv.SetRateLimit(cfg.Server.RateLimit, cfg.Server.Burst)
				})
				if err != nil {
					return fmt.Errorf("watch config %s: %w", path, err)
				}
				defer w.Stop()
				go w.Start(ctx)
			}

			if ux.GetPersonalityLevel() != ux.PersonalityMachine {
				fmt.Fprintf(cmd.ErrOrStderr(), "romcalc API listening on %s:%d\n", sc.Host, sc.Port)
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "interface to bind (default server.host)")
	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (default server.port)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the rate limit when the config file changes")
	return cmd
}
