// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package numeral

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var firstTen = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

func TestIsValidRoman(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		// Valid numerals
		{"one", "I", true},
		{"four", "IV", true},
		{"nine", "IX", true},
		{"ten", "X", true},
		{"fourteen", "XIV", true},
		{"ninety", "XC", true},
		{"max grammar", "MMMMCMXCIX", true},

		// Malformed numerals
		{"empty", "", false},
		{"four ones", "IIII", false},
		{"five before ten", "VX", false},
		{"one before hundred", "IC", false},
		{"lowercase", "iv", false},
		{"repeated five", "VV", false},
		{"trailing space", "IV ", false},
		{"digits", "4", false},
		{"five thousands", "MMMMM", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidRoman(tt.input), "IsValidRoman(%q)", tt.input)
		})
	}
}

func TestIsValidRoman_AcceptsFirstTen(t *testing.T) {
	for _, r := range firstTen {
		assert.True(t, IsValidRoman(r), "IsValidRoman(%q)", r)
	}
}

func TestIsRomanLetters(t *testing.T) {
	assert.True(t, IsRomanLetters("IIII"))
	assert.True(t, IsRomanLetters("MDCLXVI"))
	assert.False(t, IsRomanLetters(""))
	assert.False(t, IsRomanLetters("IVa"))
	assert.False(t, IsRomanLetters("12"))
}

func TestToInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"I", 1},
		{"III", 3},
		{"IV", 4},
		{"IX", 9},
		{"XI", 11},
		{"XIV", 14},
		{"XL", 40},
		{"XC", 90},
		{"CD", 400},
		{"MCMXCIV", 1994},
		{"MMMMCMXCIX", 4999},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.input))
		})
	}
}

func TestToInt_UnknownSymbolsCountAsZero(t *testing.T) {
	assert.Equal(t, 0, ToInt(""))
	assert.Equal(t, 0, ToInt("?"))
}

func TestToRoman(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{1, "I"},
		{4, "IV"},
		{9, "IX"},
		{14, "XIV"},
		{20, "XX"},
		{40, "XL"},
		{99, "XCIX"},
		{400, "CD"},
		{1994, "MCMXCIV"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := ToRoman(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToRoman_NonPositive(t *testing.T) {
	for _, n := range []int{0, -1, -9} {
		_, err := ToRoman(n)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "ToRoman(%d) error = %v", n, err)
	}
}

func TestRoundTrip_IntRomanInt(t *testing.T) {
	for n := 1; n <= 10; n++ {
		r, err := ToRoman(n)
		require.NoError(t, err)
		assert.Equal(t, n, ToInt(r))
	}
}

func TestRoundTrip_RomanIntRoman(t *testing.T) {
	for _, r := range firstTen {
		got, err := ToRoman(ToInt(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}

func TestPairs_DescendingAndCopied(t *testing.T) {
	pairs := Pairs()
	require.Len(t, pairs, 13)
	for i := 1; i < len(pairs); i++ {
		assert.Greater(t, pairs[i-1].Value, pairs[i].Value)
	}

	pairs[0].Symbol = "Z"
	assert.Equal(t, "M", Pairs()[0].Symbol)
}

func TestSymbolValue(t *testing.T) {
	v, ok := SymbolValue('L')
	assert.True(t, ok)
	assert.Equal(t, 50, v)

	_, ok = SymbolValue('Q')
	assert.False(t, ok)
}
