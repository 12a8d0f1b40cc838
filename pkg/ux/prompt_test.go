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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestLinePrompter_ReadsLine(t *testing.T) {
	withLevel(t, PersonalityMinimal)
	var out bytes.Buffer

	p := NewLinePrompter(strings.NewReader("V * II\nignored\n"), NewPrinter(&out))
	got, err := p.Ask("Enter expression:")

	require.NoError(t, err)
	assert.Equal(t, "V * II", got)
	assert.Equal(t, "Enter expression:\n", out.String())
}

func TestLinePrompter_CRLF(t *testing.T) {
	withLevel(t, PersonalityMachine)

	got, err := NewLinePrompter(strings.NewReader("3+4\r\n"), nil).Ask("x")

	require.NoError(t, err)
	assert.Equal(t, "3+4", got)
}

func TestLinePrompter_LastLineWithoutNewline(t *testing.T) {
	withLevel(t, PersonalityMachine)

	got, err := NewLinePrompter(strings.NewReader("X-I"), nil).Ask("x")

	require.NoError(t, err)
	assert.Equal(t, "X-I", got)
}

func TestLinePrompter_EmptyInput(t *testing.T) {
	withLevel(t, PersonalityMachine)

	_, err := NewLinePrompter(strings.NewReader(""), nil).Ask("x")

	assert.ErrorIs(t, err, ErrNoInput)
}

func TestLinePrompter_ReadError(t *testing.T) {
	withLevel(t, PersonalityMachine)

	_, err := NewLinePrompter(failingReader{}, nil).Ask("x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "device gone")
}

func TestNewPrompter_NonInteractiveUsesLineReader(t *testing.T) {
	withLevel(t, PersonalityMachine)

	p := NewPrompter(strings.NewReader("1+1\n"), nil)

	_, ok := p.(*linePrompter)
	assert.True(t, ok, "expected a line prompter, got %T", p)
}
