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
	"strings"

	"github.com/quern-db/quern/op"
	"github.com/quern-db/quern/types"
)

// Digest renders the canonical textual form of the call:
// the operator name alone for a niladic identifier-style
// function (CURRENT_USER, not CURRENT_USER()), otherwise
// name(operand, ...). When withType is set, the full
// result type string is appended after a colon.
//
// Operands appear in construction order; see normalize.go
// for why this differs from the equality relation.
func (c *Call) Digest(withType bool) string {
	var sb strings.Builder
	sb.WriteString(c.operator.Name)
	if len(c.args) != 0 || c.operator.Syntax != op.SyntaxFunctionID {
		sb.WriteByte('(')
		c.appendOperands(&sb)
		sb.WriteByte(')')
	}
	if withType {
		sb.WriteByte(':')
		// the full type string, never the abbreviated
		// form: digest uniqueness depends on it
		sb.WriteString(c.typ.FullString())
	}
	return sb.String()
}

// appendOperands writes the comma-separated operand
// digests. Literal operands may omit their type
// annotation when context already implies it; the
// elision is purely cosmetic and never allows two
// structurally different expressions to share a digest.
func (c *Call) appendOperands(sb *strings.Builder) {
	kind := c.Kind()
	for i := range c.args {
		if i > 0 {
			sb.WriteString(", ")
		}
		lit, ok := c.args[i].(*Literal)
		if !ok {
			sb.WriteString(c.args[i].String())
			continue
		}
		// boolean operands of AND/OR can only be boolean;
		// AND(true, null) reads better than
		// AND(true, null:BOOLEAN) and loses nothing
		inc := IncludeOptional
		if (kind == op.KindAnd || kind == op.KindOr) && lit.Type().Base == types.Bool {
			inc = IncludeNever
		}
		// for simple binary operators the sibling operand
		// pins the literal's type: +($0, 2) rather than
		// +($0, 2:BIGINT), provided $0 is BIGINT too
		if kind.SimpleBinary() && len(c.args) == 2 {
			sibling := c.args[1-i]
			slit, isLit := sibling.(*Literal)
			if (!isLit || slit.includeType() == IncludeNever) &&
				types.EqualSansNullability(lit.Type(), sibling.Type()) {
				inc = IncludeNever
			}
		}
		sb.WriteString(lit.Digest(inc))
	}
}
