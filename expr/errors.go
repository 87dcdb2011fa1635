// Copyright 2025 The Quern Authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package expr

import (
	"fmt"

	"github.com/quern-db/quern/op"
)

// ArityError is returned from NewCall when the operand
// count violates the operator's arity contract. It always
// indicates a bug in the rule or builder that produced
// the call; it is never a recoverable condition.
type ArityError struct {
	Op    *op.Operator
	Count int
}

// Error implements error
func (e *ArityError) Error() string {
	if e.Op.MaxOperands < 0 {
		return fmt.Sprintf("expr: operator %q called with %d operands, want at least %d",
			e.Op.Name, e.Count, e.Op.MinOperands)
	}
	if e.Op.MinOperands == e.Op.MaxOperands {
		return fmt.Sprintf("expr: operator %q called with %d operands, want %d",
			e.Op.Name, e.Count, e.Op.MinOperands)
	}
	return fmt.Sprintf("expr: operator %q called with %d operands, want %d to %d",
		e.Op.Name, e.Count, e.Op.MinOperands, e.Op.MaxOperands)
}

// MissingFieldError is returned from node constructors
// when a required field (operator or result type) is
// absent. Like ArityError, it is fail-fast: the caller
// is broken and must not continue with a malformed node.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("expr: missing required field %q", e.Field)
}
