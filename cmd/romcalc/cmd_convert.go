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
	"errors"
	"strconv"

	"github.com/AleutianAI/romcalc/pkg/calc"
	"github.com/spf13/cobra"
)

func (c *cli) convertCmd() *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:   "convert <value>",
		Short: "Convert a value between Arabic and Roman notation",
		Example: `  romcalc convert 14      # XIV
  romcalc convert MCMXCIV # 1994
  romcalc convert --table`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if table {
				rows := make([][2]string, 0, calc.MaxOperand)
				for _, conv := range calc.OperandTable() {
					rows = append(rows, [2]string{strconv.Itoa(conv.Arabic), conv.Roman})
				}
				c.app.printer.Table([2]string{"Arabic", "Roman"}, rows)
				return nil
			}
			if len(args) == 0 {
				return errors.New("convert needs a value or --table")
			}

			conv, err := c.app.calc.Convert(cmd.Context(), args[0])
			if err != nil {
				c.app.printer.Failure(err.Error())
				return nil
			}
			c.app.printer.Result(conv.Output())
			return nil
		},
	}

	cmd.Flags().BoolVar(&table, "table", false, "print every operand value from I to X")
	return cmd
}
