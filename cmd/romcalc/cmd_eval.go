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
	"encoding/json"
	"strings"

	"github.com/AleutianAI/romcalc/pkg/calc"
	"github.com/AleutianAI/romcalc/pkg/telemetry"
	"github.com/spf13/cobra"
)

// jsonFailure is printed by "eval --json" when evaluation fails.
type jsonFailure struct {
	Input string `json:"input"`
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (c *cli) evalCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "eval <expression...>",
		Short: "Evaluate an expression given as arguments",
		Long: `Evaluate an expression without prompting. Arguments are joined with
spaces, so "romcalc eval V '*' II" and "romcalc eval 'V*II'" are equivalent.`,
		Example: `  romcalc eval 3+4
  romcalc eval --json X-I`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			if !asJSON {
				c.printOutcome(cmd.Context(), telemetry.SourceCLI, input)
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			res, err := c.app.calc.Evaluate(cmd.Context(), telemetry.SourceCLI, input)
			if err != nil {
				return enc.Encode(jsonFailure{
					Input: input,
					Error: err.Error(),
					Kind:  string(calc.KindOf(err)),
				})
			}
			return enc.Encode(res)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}
