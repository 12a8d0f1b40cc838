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
	"errors"
)

// ErrorKind classifies an evaluation failure.
type ErrorKind string

const (
	KindInvalidExpression    ErrorKind = "invalid_expression"
	KindMixedOrInvalidFormat ErrorKind = "mixed_or_invalid_format"
	KindInvalidRomanNumeral  ErrorKind = "invalid_roman_numeral"
	KindInvalidNumber        ErrorKind = "invalid_number"
	KindOutOfRange           ErrorKind = "out_of_range"
	KindUnknownOperator      ErrorKind = "unknown_operator"
	KindResultBelowOne       ErrorKind = "result_below_one"
)

// Error is returned for every evaluation failure.
//
// # Description
//
// Message is meant to be shown to the user verbatim. Kind lets callers
// branch on the failure without matching on text:
//
//	if errors.Is(err, calc.ErrOutOfRange) {
//	    // ...
//	}
//
//	var calcErr *calc.Error
//	if errors.As(err, &calcErr) {
//	    fmt.Println(calcErr.Kind)
//	}
type Error struct {
	// Kind is the failure class.
	Kind ErrorKind

	// Message is the human-readable description.
	Message string

	// Operand is the offending operand or symbol, if any.
	Operand string

	// Wrapped is the underlying cause (e.g. a strconv error), may be nil.
	Wrapped error
}

// Error returns the human-readable message.
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches any *Error of the same Kind, so the sentinels below work with
// errors.Is regardless of message or operand.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidExpression    = &Error{Kind: KindInvalidExpression}
	ErrMixedOrInvalidFormat = &Error{Kind: KindMixedOrInvalidFormat}
	ErrInvalidRomanNumeral  = &Error{Kind: KindInvalidRomanNumeral}
	ErrInvalidNumber        = &Error{Kind: KindInvalidNumber}
	ErrOutOfRange           = &Error{Kind: KindOutOfRange}
	ErrUnknownOperator      = &Error{Kind: KindUnknownOperator}
	ErrResultBelowOne       = &Error{Kind: KindResultBelowOne}
)

// KindOf returns the ErrorKind carried by err, or "" if err is not an
// evaluation error.
func KindOf(err error) ErrorKind {
	var calcErr *Error
	if errors.As(err, &calcErr) {
		return calcErr.Kind
	}
	return ""
}

func newError(kind ErrorKind, operand, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Operand: operand,
	}
}
