// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrNoInput is returned when the input stream ends before a line is read.
var ErrNoInput = errors.New("no input")

// ErrAborted is returned when the user cancels an interactive prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the user for one line of text.
type Prompter interface {
	// Ask shows title and returns the line the user entered, without the
	// trailing newline.
	Ask(title string) (string, error)
}

// NewPrompter picks the interactive form on a terminal and a plain line
// reader otherwise.
func NewPrompter(in io.Reader, printer *Printer) Prompter {
	if IsInteractive() {
		return &formPrompter{}
	}
	return NewLinePrompter(in, printer)
}

// =============================================================================
// Line Prompter
// =============================================================================

// linePrompter prints the title and reads a line with bufio.
type linePrompter struct {
	reader  *bufio.Reader
	printer *Printer
}

// NewLinePrompter creates a Prompter that reads from in.
func NewLinePrompter(in io.Reader, printer *Printer) Prompter {
	return &linePrompter{
		reader:  bufio.NewReader(in),
		printer: printer,
	}
}

// Ask prints title (unless machine output) and reads one line. A final
// line without a newline is accepted.
func (p *linePrompter) Ask(title string) (string, error) {
	if p.printer != nil {
		p.printer.Prompt(title)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// =============================================================================
// Form Prompter
// =============================================================================

// formPrompter renders a huh input field.
type formPrompter struct{}

// Ask runs a single huh input and returns its value.
func (p *formPrompter) Ask(title string) (string, error) {
	var value string
	err := huh.NewInput().
		Title(title).
		Placeholder("V*II or 3+4").
		Value(&value).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("prompt: %w", err)
	}
	return value, nil
}
