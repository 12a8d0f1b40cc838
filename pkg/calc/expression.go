// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package calc

import (
	"regexp"
	"strings"

	"github.com/AleutianAI/romcalc/pkg/numeral"
)

// Format is the notation an operand is written in.
type Format string

const (
	FormatUnknown Format = "unknown"
	FormatArabic  Format = "arabic"
	FormatRoman   Format = "roman"
)

var arabicPattern = regexp.MustCompile(`^\d+$`)

// Classify reports the notation of a single operand. The empty string is
// FormatUnknown.
func Classify(operand string) Format {
	switch {
	case numeral.IsRomanLetters(operand):
		return FormatRoman
	case arabicPattern.MatchString(operand):
		return FormatArabic
	default:
		return FormatUnknown
	}
}

// Expression is a parsed "<left><op><right>" input. Left and Right are
// trimmed but otherwise unvalidated.
type Expression struct {
	Left   string
	Symbol byte
	Right  string
}

// Operator resolves the expression's symbol.
func (e Expression) Operator() (Operator, error) {
	return OperatorFromSymbol(e.Symbol)
}

// String renders the expression in compact form, e.g. "V*II".
func (e Expression) String() string {
	return e.Left + string(e.Symbol) + e.Right
}

// Parse splits input at the first operator character.
//
// # Description
//
// The input is trimmed and scanned left to right for the first of
// + - * /. Everything before it is the left operand and everything after
// it the right operand, both trimmed. A leading sign is therefore taken as
// the operator: "-5+3" parses to Left "", Symbol '-', Right "5+3", which
// Compute later rejects as a format mismatch.
//
// # Outputs
//
//   - Expression: the split input
//   - error: ErrInvalidExpression kind when no operator is present
func Parse(input string) (Expression, error) {
	trimmed := strings.TrimSpace(input)

	opIndex := -1
	for i := 0; i < len(trimmed); i++ {
		if isOperatorSymbol(trimmed[i]) {
			opIndex = i
			break
		}
	}
	if opIndex == -1 {
		return Expression{}, newError(KindInvalidExpression, trimmed,
			"invalid input: expected <operand><operator><operand>")
	}

	return Expression{
		Left:   strings.TrimSpace(trimmed[:opIndex]),
		Symbol: trimmed[opIndex],
		Right:  strings.TrimSpace(trimmed[opIndex+1:]),
	}, nil
}
