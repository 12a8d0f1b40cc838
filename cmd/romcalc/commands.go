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
	"context"
	"errors"

	"github.com/AleutianAI/romcalc/pkg/telemetry"
	"github.com/AleutianAI/romcalc/pkg/ux"
	"github.com/spf13/cobra"
)

// promptText is shown before reading an expression.
const promptText = "Enter expression:"

// cli owns the command tree and the app built by PersistentPreRunE.
type cli struct {
	flags globalFlags
	app   *app
}

// rootCmd builds the command tree.
func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "romcalc",
		Short: "Evaluate simple Arabic or Roman numeral arithmetic",
		Long: `romcalc evaluates one binary expression such as "3+4" or "V*II".

Both operands must be written the same way, Arabic or Roman, and lie
between 1 and 10 (I and X). Operators are + - * /. Division truncates.
Roman input gives a Roman result, which must be at least I.

With no arguments romcalc prompts for a single expression.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE:              c.runPrompt,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "config file (default ~/.romcalc/romcalc.yaml)")
	pf.StringVarP(&c.flags.personality, "personality", "p", "", "output style: full, standard, minimal or machine")
	pf.StringVar(&c.flags.logLevel, "log-level", "", "log level on stderr: debug, info, warn or error")
	pf.StringVar(&c.flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(
		c.evalCmd(),
		c.convertCmd(),
		c.batchCmd(),
		c.historyCmd(),
		c.serveCmd(),
		c.configCmd(),
		c.versionCmd(),
	)
	return root
}

// setup loads configuration once per invocation.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if c.app != nil {
		return nil
	}
	a, err := newApp(cmd.Context(), c.flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

// close releases the app, if one was built.
func (c *cli) close(ctx context.Context) error {
	if c.app == nil {
		return nil
	}
	err := c.app.close(ctx)
	c.app = nil
	return err
}

// runPrompt reads one expression, evaluates it, and prints the outcome.
//
// # Description
//
// On a terminal the prompt is an interactive huh field; otherwise the
// prompt text is printed (except in machine mode) and a single line is read
// from stdin. End of input before any text evaluates the empty string,
// which reports an invalid expression. Cancelling the interactive prompt
// prints nothing.
func (c *cli) runPrompt(cmd *cobra.Command, _ []string) error {
	prompter := ux.NewPrompter(cmd.InOrStdin(), c.app.printer)

	line, err := prompter.Ask(promptText)
	switch {
	case errors.Is(err, ux.ErrAborted):
		return nil
	case errors.Is(err, ux.ErrNoInput):
		line = ""
	case err != nil:
		return err
	}

	c.printOutcome(cmd.Context(), telemetry.SourceCLI, line)
	return nil
}

// printOutcome evaluates input and prints the result or the error message.
func (c *cli) printOutcome(ctx context.Context, source, input string) {
	res, err := c.app.calc.Evaluate(ctx, source, input)
	if err != nil {
		c.app.printer.Failure(err.Error())
		return
	}
	c.app.printer.Result(res.Output)
}
