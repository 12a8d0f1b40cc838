// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package calc evaluates single binary arithmetic expressions written in
// Arabic or Roman notation.
//
// An expression is "<operand><operator><operand>" where both operands use
// the same notation and lie in [MinOperand, MaxOperand]. Roman input yields
// a Roman result; Arabic input yields a decimal result, which may be
// negative.
//
// # Usage
//
//	out, err := calc.Evaluate("X-I") // "IX"
//	out, err = calc.Evaluate("3+4")  // "7"
//	_, err = calc.Evaluate("I-I")    // errors.Is(err, calc.ErrResultBelowOne)
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use.
package calc

import (
	"strconv"

	"github.com/AleutianAI/romcalc/pkg/numeral"
)

// Inclusive operand bounds.
const (
	MinOperand = 1
	MaxOperand = 10
)

// Result is the outcome of a successful evaluation.
type Result struct {
	// Expression is the parsed input.
	Expression Expression `json:"-"`

	// Input is the compact form of Expression, e.g. "V*II".
	Input string `json:"input"`

	// Format is the notation shared by both operands.
	Format Format `json:"format"`

	// Operator is the operation that was applied.
	Operator Operator `json:"-"`

	// Operation is Operator's name, e.g. "multiply".
	Operation string `json:"operation"`

	// Left and Right are the decoded operand values.
	Left  int `json:"left"`
	Right int `json:"right"`

	// Value is the integer result.
	Value int `json:"value"`

	// Output is Value rendered in the input notation.
	Output string `json:"output"`
}

// Evaluate computes input and returns the rendered result.
//
// # Description
//
// Convenience wrapper over Compute for callers that only need the output
// string. See Compute for the validation pipeline.
func Evaluate(input string) (string, error) {
	res, err := Compute(input)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// Compute parses, validates and evaluates input.
//
// # Description
//
// The pipeline stops at the first failure:
//
//  1. Parse: no operator character -> ErrInvalidExpression.
//  2. Both operands must classify as the same notation
//     -> ErrMixedOrInvalidFormat. Empty operands never classify.
//  3. Roman operands must be well-formed -> ErrInvalidRomanNumeral.
//     Arabic operands must parse as int -> ErrInvalidNumber.
//  4. Both decoded values must lie in [MinOperand, MaxOperand]
//     -> ErrOutOfRange.
//  5. The operator symbol must resolve -> ErrUnknownOperator.
//  6. Roman results below 1 cannot be rendered -> ErrResultBelowOne.
//
// # Inputs
//
//   - input: raw text, surrounding and inner whitespace allowed
//
// # Outputs
//
//   - Result: the full outcome on success
//   - error: a *Error on any failure
func Compute(input string) (Result, error) {
	expr, err := Parse(input)
	if err != nil {
		return Result{}, err
	}

	format := Classify(expr.Left)
	if format == FormatUnknown || Classify(expr.Right) != format {
		return Result{}, newError(KindMixedOrInvalidFormat, "",
			"mixed number formats or invalid numbers")
	}

	left, right, err := decodeOperands(expr, format)
	if err != nil {
		return Result{}, err
	}

	op, err := expr.Operator()
	if err != nil {
		return Result{}, err
	}

	value, err := op.Apply(left, right)
	if err != nil {
		return Result{}, err
	}

	output, err := render(value, format)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Expression: expr,
		Input:      expr.String(),
		Format:     format,
		Operator:   op,
		Operation:  op.String(),
		Left:       left,
		Right:      right,
		Value:      value,
		Output:     output,
	}, nil
}

// decodeOperands converts both operands to integers and range checks them.
func decodeOperands(expr Expression, format Format) (int, int, error) {
	if format == FormatRoman {
		for _, operand := range []string{expr.Left, expr.Right} {
			if !numeral.IsValidRoman(operand) {
				return 0, 0, newError(KindInvalidRomanNumeral, operand,
					"invalid Roman numeral "+strconv.Quote(operand))
			}
		}
		left, right := numeral.ToInt(expr.Left), numeral.ToInt(expr.Right)
		if !inRange(left) || !inRange(right) {
			return 0, 0, newError(KindOutOfRange, "",
				"Roman numerals must be between I and X inclusive")
		}
		return left, right, nil
	}

	left, err := parseArabic(expr.Left)
	if err != nil {
		return 0, 0, err
	}
	right, err := parseArabic(expr.Right)
	if err != nil {
		return 0, 0, err
	}
	if !inRange(left) || !inRange(right) {
		return 0, 0, newError(KindOutOfRange, "",
			"numbers must be between 1 and 10 inclusive")
	}
	return left, right, nil
}

func parseArabic(operand string) (int, error) {
	n, err := strconv.Atoi(operand)
	if err != nil {
		calcErr := newError(KindInvalidNumber, operand, "invalid number "+strconv.Quote(operand))
		calcErr.Wrapped = err
		return 0, calcErr
	}
	return n, nil
}

func inRange(n int) bool {
	return n >= MinOperand && n <= MaxOperand
}

// render formats value in the notation of the input.
func render(value int, format Format) (string, error) {
	if format != FormatRoman {
		return strconv.Itoa(value), nil
	}
	if value < 1 {
		return "", newError(KindResultBelowOne, strconv.Itoa(value),
			"Roman numerals cannot be less than I")
	}
	return numeral.ToRoman(value)
}
