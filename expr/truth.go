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

import "github.com/quern-db/quern/op"

// Static three-valued truth inference, dispatched on
// operator kind. Kinds without an entry are conservatively
// neither always-true nor always-false.
//
// The table is data rather than a switch so that new
// kinds extend it without touching a central dispatch
// body.
//
// The IS NOT NULL rule is what lets an EXISTS expansion
// of the form "x IS NOT NULL" over a non-nullable column
// fold to TRUE, which in turn lets the planner convert
// the enclosing construct to a semi-join.

type truthRule struct {
	alwaysTrue  func(args []Node) bool
	alwaysFalse func(args []Node) bool
}

// The standard catalog only attaches these kinds to unary
// operators, but extension definitions may declare other
// arities; a call with no operand is simply unknown.

func operandNotNullable(args []Node) bool {
	return len(args) > 0 && !args[0].Type().Nullable
}

func operandTrue(args []Node) bool {
	return len(args) > 0 && args[0].IsAlwaysTrue()
}

func operandFalse(args []Node) bool {
	return len(args) > 0 && args[0].IsAlwaysFalse()
}

func never([]Node) bool {
	return false
}

var truthRules = map[op.Kind]truthRule{
	op.KindIsNotNull: {alwaysTrue: operandNotNullable, alwaysFalse: never},
	op.KindIsNull:    {alwaysTrue: never, alwaysFalse: operandNotNullable},

	// negating kinds: true iff the operand is known false
	op.KindIsNotTrue: {alwaysTrue: operandFalse, alwaysFalse: operandTrue},
	op.KindIsFalse:   {alwaysTrue: operandFalse, alwaysFalse: operandTrue},
	op.KindNot:       {alwaysTrue: operandFalse, alwaysFalse: operandTrue},

	// affirming kinds: casting a value that is known
	// true or false preserves that fact
	op.KindIsNotFalse: {alwaysTrue: operandTrue, alwaysFalse: operandFalse},
	op.KindIsTrue:     {alwaysTrue: operandTrue, alwaysFalse: operandFalse},
	op.KindCast:       {alwaysTrue: operandTrue, alwaysFalse: operandFalse},
}
