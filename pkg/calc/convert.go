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
	"fmt"
	"strconv"
	"strings"

	"github.com/AleutianAI/romcalc/pkg/numeral"
)

// MaxConvertible is the largest value the Roman grammar can express (MMMMCMXCIX).
const MaxConvertible = 4999

// Conversion directions.
const (
	DirectionToRoman  = "to_roman"
	DirectionToArabic = "to_arabic"
)

// Conversion is a single value rendered in both notations.
type Conversion struct {
	// Input is the trimmed value that was converted.
	Input string `json:"input"`

	// Format is the notation Input was written in.
	Format Format `json:"format"`

	Arabic int    `json:"arabic"`
	Roman  string `json:"roman"`
}

// Direction reports which way the conversion went.
func (c Conversion) Direction() string {
	if c.Format == FormatRoman {
		return DirectionToArabic
	}
	return DirectionToRoman
}

// Output returns the value in the notation opposite to Input.
func (c Conversion) Output() string {
	if c.Format == FormatRoman {
		return strconv.Itoa(c.Arabic)
	}
	return c.Roman
}

// Convert renders a single Arabic or Roman value in the other notation.
//
// # Description
//
// Arabic values must lie in [1, MaxConvertible]; Roman values must match
// the canonical grammar. Unlike Compute, the operand range of the
// calculator does not apply.
//
// # Outputs
//
//   - Conversion: both representations on success
//   - error: a *Error of kind InvalidNumber, OutOfRange,
//     InvalidRomanNumeral or MixedOrInvalidFormat
func Convert(value string) (Conversion, error) {
	trimmed := strings.TrimSpace(value)

	switch Classify(trimmed) {
	case FormatArabic:
		n, err := parseArabic(trimmed)
		if err != nil {
			return Conversion{}, err
		}
		if n < 1 || n > MaxConvertible {
			return Conversion{}, newError(KindOutOfRange, trimmed,
				fmt.Sprintf("numbers must be between 1 and %d inclusive", MaxConvertible))
		}
		roman, err := numeral.ToRoman(n)
		if err != nil {
			return Conversion{}, newError(KindOutOfRange, trimmed, err.Error())
		}
		return Conversion{Input: trimmed, Format: FormatArabic, Arabic: n, Roman: roman}, nil

	case FormatRoman:
		if !numeral.IsValidRoman(trimmed) {
			return Conversion{}, newError(KindInvalidRomanNumeral, trimmed,
				"invalid Roman numeral "+strconv.Quote(trimmed))
		}
		return Conversion{Input: trimmed, Format: FormatRoman, Arabic: numeral.ToInt(trimmed), Roman: trimmed}, nil

	default:
		return Conversion{}, newError(KindMixedOrInvalidFormat, trimmed,
			"not an Arabic number or Roman numeral: "+strconv.Quote(trimmed))
	}
}

// OperandTable lists every accepted operand value, MinOperand to
// MaxOperand, in both notations.
func OperandTable() []Conversion {
	rows := make([]Conversion, 0, MaxOperand-MinOperand+1)
	for n := MinOperand; n <= MaxOperand; n++ {
		roman, _ := numeral.ToRoman(n)
		rows = append(rows, Conversion{Input: strconv.Itoa(n), Format: FormatArabic, Arabic: n, Roman: roman})
	}
	return rows
}
