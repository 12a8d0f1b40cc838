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
	"errors"
	"fmt"

	"github.com/AleutianAI/romcalc/pkg/history"
	"github.com/AleutianAI/romcalc/pkg/ux"
	"github.com/spf13/cobra"
)

func (c *cli) historyCmd() *cobra.Command {
	var (
		limit    int
		clearAll bool
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear recorded evaluations",
		Long: `List evaluations recorded while history.enabled is true, newest first.
The history directory is locked while another romcalc process records to
it, for example a running "romcalc serve".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := c.app.history
			if store == nil {
				s, err := openHistory(c.app.cfg, c.app.logger)
				if err != nil {
					return err
				}
				defer s.Close()
				store = s
			}

			if clearAll {
				if err := store.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("clear history: %w", err)
				}
				c.app.logger.Info("history cleared")
				return nil
			}

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}

			if jsonOut {
				if entries == nil {
					entries = []history.Entry{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			for _, e := range entries {
				if ux.GetPersonalityLevel() == ux.PersonalityMachine {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t", e.Time.UTC().Format("2006-01-02T15:04:05Z"))
				}
				if e.Failed() {
					c.app.printer.BatchLine(e.Input, "", errors.New(e.Error))
				} else {
					c.app.printer.BatchLine(e.Input, e.Output, nil)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "entries to show, 0 for all")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete every recorded entry")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print entries as JSON")
	return cmd
}
