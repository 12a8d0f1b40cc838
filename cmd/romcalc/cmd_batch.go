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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AleutianAI/romcalc/pkg/telemetry"
	"github.com/AleutianAI/romcalc/services/calculator"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// batchResult is the outcome for one input line.
type batchResult struct {
	input  string
	output string
	err    error
}

func (c *cli) batchCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Evaluate one expression per line from a file or stdin",
		Long: `Evaluate one expression per line. Blank lines are skipped. Results are
printed in input order as "<expr> = <result>" or "<expr> ! <error>",
followed by a summary unless the personality is machine.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open batch file: %w", err)
				}
				defer f.Close()
				in = f
			}

			lines, err := readExpressions(in)
			if err != nil {
				return err
			}

			if workers <= 0 {
				workers = c.app.cfg.Batch.Workers
			}
			results, err := evaluateAll(cmd.Context(), c.app.calc, lines, workers)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				c.app.printer.BatchLine(r.input, r.output, r.err)
				if r.err != nil {
					failed++
				}
			}
			c.app.printer.Summary(len(results)-failed, failed)
			c.app.logger.Info("batch complete", "lines", len(results), "failed", failed, "workers", workers)
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent evaluations (default batch.workers)")
	return cmd
}

// readExpressions returns the trimmed non-blank lines of r.
func readExpressions(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch input: %w", err)
	}
	return lines, nil
}

// evaluateAll evaluates lines on at most workers goroutines. Results keep
// the order of lines. Evaluation failures are stored per line; only
// context cancellation fails the batch.
func evaluateAll(ctx context.Context, calc *calculator.Calculator, lines []string, workers int) ([]batchResult, error) {
	results := make([]batchResult, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := calc.Evaluate(gctx, telemetry.SourceBatch, line)
			results[i] = batchResult{input: line, output: res.Output, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
