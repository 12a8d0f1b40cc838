// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package numeral converts between Roman numerals and integers.
//
// The package holds two lookup tables that are built at package
// initialisation and never written afterwards, so every function here is
// safe for concurrent use without locking.
//
// # Usage
//
//	if numeral.IsValidRoman("IX") {
//	    n := numeral.ToInt("IX") // 9
//	}
//	s, err := numeral.ToRoman(14) // "XIV"
package numeral

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidArgument is returned by ToRoman for values that have no
// Roman representation.
var ErrInvalidArgument = errors.New("invalid argument")

// romanPattern is the canonical grammar for a well-formed numeral using
// standard subtractive notation. Uppercase only.
var romanPattern = regexp.MustCompile(`^M{0,4}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)

// lettersPattern matches any non-empty run of Roman symbols, well-formed or not.
var lettersPattern = regexp.MustCompile(`^[IVXLCDM]+$`)

// symbolValues maps each Roman symbol to its value.
var symbolValues = map[byte]int{
	'I': 1,
	'V': 5,
	'X': 10,
	'L': 50,
	'C': 100,
	'D': 500,
	'M': 1000,
}

// Pair is one canonical value/symbol-group entry used by ToRoman.
type Pair struct {
	Value  int
	Symbol string
}

// canonicalPairs is ordered by strictly descending Value.
var canonicalPairs = []Pair{
	{1000, "M"},
	{900, "CM"},
	{500, "D"},
	{400, "CD"},
	{100, "C"},
	{90, "XC"},
	{50, "L"},
	{40, "XL"},
	{10, "X"},
	{9, "IX"},
	{5, "V"},
	{4, "IV"},
	{1, "I"},
}

// =============================================================================
// Validation
// =============================================================================

// IsValidRoman reports whether s is a well-formed Roman numeral.
//
// # Description
//
// The grammar admits at most four M's followed by the hundreds, tens and
// units groups in standard subtractive form. The empty string satisfies
// the grammar structurally but is rejected here.
//
// # Examples
//
//	IsValidRoman("IV")   // true
//	IsValidRoman("IIII") // false
//	IsValidRoman("iv")   // false
func IsValidRoman(s string) bool {
	if s == "" {
		return false
	}
	return romanPattern.MatchString(s)
}

// IsRomanLetters reports whether s is a non-empty string of Roman symbols.
// It does not check that the symbols form a valid numeral.
func IsRomanLetters(s string) bool {
	return lettersPattern.MatchString(s)
}

// =============================================================================
// Conversion
// =============================================================================

// ToInt decodes a Roman numeral in a single left-to-right pass.
//
// # Description
//
// When a symbol is worth more than the one before it, the previous symbol
// was already added once, so it is subtracted twice. ToInt does not
// validate its input; call IsValidRoman first. Symbols outside the table
// count as zero.
//
// # Examples
//
//	ToInt("XIV") // 14
//	ToInt("IX")  // 9
func ToInt(roman string) int {
	result := 0
	for i := 0; i < len(roman); i++ {
		current := symbolValues[roman[i]]
		if i > 0 {
			if previous := symbolValues[roman[i-1]]; current > previous {
				result += current - 2*previous
				continue
			}
		}
		result += current
	}
	return result
}

// ToRoman renders n in canonical Roman form.
//
// # Description
//
// Greedy conversion: the largest canonical value that still fits is
// appended until n is exhausted.
//
// # Inputs
//
//   - n: value to render. Must be positive.
//
// # Outputs
//
//   - string: canonical numeral, e.g. 4 -> "IV"
//   - error: wraps ErrInvalidArgument when n <= 0
func ToRoman(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("%w: Roman numeral must be greater than 0, got %d", ErrInvalidArgument, n)
	}

	var sb strings.Builder
	for _, p := range canonicalPairs {
		for n >= p.Value {
			sb.WriteString(p.Symbol)
			n -= p.Value
		}
	}
	return sb.String(), nil
}

// =============================================================================
// Table Access
// =============================================================================

// Pairs returns a copy of the canonical table in descending value order.
func Pairs() []Pair {
	out := make([]Pair, len(canonicalPairs))
	copy(out, canonicalPairs)
	return out
}

// SymbolValue returns the value of a single Roman symbol and whether it is known.
func SymbolValue(symbol byte) (int, bool) {
	v, ok := symbolValues[symbol]
	return v, ok
}
