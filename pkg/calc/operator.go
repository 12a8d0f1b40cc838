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
)

// Operator is one of the four supported arithmetic operations.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
)

// operatorSymbols is indexed by Operator.
var operatorSymbols = [...]byte{'+', '-', '*', '/'}

var operatorNames = [...]string{"add", "subtract", "multiply", "divide"}

// Symbol returns the canonical character for the operator.
func (o Operator) Symbol() byte {
	if o < Add || o > Divide {
		return '?'
	}
	return operatorSymbols[o]
}

// String returns the lowercase operation name, e.g. "add".
func (o Operator) String() string {
	if o < Add || o > Divide {
		return "unknown"
	}
	return operatorNames[o]
}

// Apply computes a <op> b. Division truncates toward zero; callers must
// not pass b == 0.
func (o Operator) Apply(a, b int) (int, error) {
	switch o {
	case Add:
		return a + b, nil
	case Subtract:
		return a - b, nil
	case Multiply:
		return a * b, nil
	case Divide:
		return a / b, nil
	default:
		return 0, newError(KindUnknownOperator, "", "unknown operation")
	}
}

// OperatorFromSymbol looks up the operator for symbol.
//
// # Outputs
//
//   - Operator: the matching operator
//   - error: ErrUnknownOperator kind when symbol is not one of + - * /
func OperatorFromSymbol(symbol byte) (Operator, error) {
	for i, s := range operatorSymbols {
		if s == symbol {
			return Operator(i), nil
		}
	}
	return 0, newError(KindUnknownOperator, string(symbol),
		fmt.Sprintf("unknown operation %q", string(symbol)))
}

// isOperatorSymbol reports whether c is one of the four operator characters.
func isOperatorSymbol(c byte) bool {
	for _, s := range operatorSymbols {
		if s == c {
			return true
		}
	}
	return false
}
