// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides terminal output styling and prompting for the romcalc CLI.
//
// Every calculation outcome, success or failure, is written to the same
// writer (stdout in production). Rendering depends on the personality level:
// machine output is bare and stable for scripts, the other levels add labels
// and lipgloss styling.
package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// romcalc color palette
var (
	ColorAccent  = lipgloss.Color("#2CD7C7")
	ColorPrimary = lipgloss.Color("#20B9B4")
	ColorBorder  = lipgloss.Color("#16858E")
	ColorSlate   = lipgloss.Color("#2C4A54")

	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Table   lipgloss.Style
}{
	Label:   lipgloss.NewStyle().Foreground(ColorPrimary),
	Value:   lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
	Muted:   lipgloss.NewStyle().Foreground(ColorSlate),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
	Table: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconError   Icon = "✗"
	IconArrow   Icon = "→"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	default:
		return string(i)
	}
}

// =============================================================================
// Printer
// =============================================================================

// Printer renders calculation output to a single writer.
//
// # Description
//
// Printer reads the personality level on every call so a level change
// made after construction (for example by a --personality flag) is honoured.
//
// # Example
//
//	p := ux.NewPrinter(os.Stdout)
//	p.Result("IX")                 // "Result: IX" (machine: "IX")
//	p.Failure("Invalid Roman numeral") // "Error: ..." (machine: "ERROR: ...")
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Prompt prints the text shown before reading an expression.
// Machine output prints nothing.
func (p *Printer) Prompt(text string) {
	switch GetPersonalityLevel() {
	case PersonalityMachine:
		return
	case PersonalityMinimal:
		fmt.Fprintln(p.out, text)
	default:
		fmt.Fprintln(p.out, Styles.Label.Render(text))
	}
}

// Result prints a successful calculation result.
func (p *Printer) Result(value string) {
	switch GetPersonalityLevel() {
	case PersonalityMachine:
		fmt.Fprintln(p.out, value)
	case PersonalityMinimal:
		fmt.Fprintf(p.out, "Result: %s\n", value)
	default:
		fmt.Fprintf(p.out, "%s %s\n", Styles.Label.Render("Result:"), Styles.Value.Render(value))
	}
}

// Failure prints an evaluation error message verbatim.
func (p *Printer) Failure(message string) {
	switch GetPersonalityLevel() {
	case PersonalityMachine:
		fmt.Fprintf(p.out, "ERROR: %s\n", message)
	case PersonalityMinimal:
		fmt.Fprintf(p.out, "Error: %s\n", message)
	default:
		fmt.Fprintf(p.out, "%s %s\n", IconError.Render(), Styles.Error.Render("Error: "+message))
	}
}

// BatchLine prints one batch entry: "<expr> = <result>" or "<expr> ! <error>".
func (p *Printer) BatchLine(expr, result string, failure error) {
	level := GetPersonalityLevel()
	if failure != nil {
		if level == PersonalityMachine || level == PersonalityMinimal {
			fmt.Fprintf(p.out, "%s ! %s\n", expr, failure.Error())
			return
		}
		fmt.Fprintf(p.out, "%s %s %s\n", IconError.Render(), expr, Styles.Error.Render("! "+failure.Error()))
		return
	}
	if level == PersonalityMachine || level == PersonalityMinimal {
		fmt.Fprintf(p.out, "%s = %s\n", expr, result)
		return
	}
	fmt.Fprintf(p.out, "%s %s = %s\n", IconSuccess.Render(), expr, Styles.Value.Render(result))
}

// Summary prints evaluated/failed counts. Machine output prints nothing.
func (p *Printer) Summary(succeeded, failed int) {
	switch GetPersonalityLevel() {
	case PersonalityMachine:
		return
	case PersonalityMinimal:
		fmt.Fprintf(p.out, "%d evaluated, %d failed\n", succeeded, failed)
	default:
		fmt.Fprintf(p.out, "\n%s %s  %s %s\n",
			Styles.Success.Render(fmt.Sprintf("%d", succeeded)), Styles.Muted.Render("evaluated"),
			Styles.Warning.Render(fmt.Sprintf("%d", failed)), Styles.Muted.Render("failed"),
		)
	}
}

// Table prints two-column rows. Full personality draws a rounded box;
// machine output is tab separated.
func (p *Printer) Table(header [2]string, rows [][2]string) {
	level := GetPersonalityLevel()
	if level == PersonalityMachine {
		for _, r := range rows {
			fmt.Fprintf(p.out, "%s\t%s\n", r[0], r[1])
		}
		return
	}

	width := len(header[0])
	for _, r := range rows {
		if len(r[0]) > width {
			width = len(r[0])
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-*s  %s", width, header[0], header[1])
	for _, r := range rows {
		fmt.Fprintf(&sb, "\n%-*s  %s", width, r[0], r[1])
	}

	if level == PersonalityFull {
		fmt.Fprintln(p.out, Styles.Table.Render(sb.String()))
		return
	}
	fmt.Fprintln(p.out, sb.String())
}
