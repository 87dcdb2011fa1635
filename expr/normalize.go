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
	"golang.org/x/exp/slices"

	"github.com/quern-db/quern/op"
)

// normalize returns the canonical operand order for a
// call to operator: for a commutative operator, a fresh
// slice sorted by operandLess; otherwise args itself.
//
// The normalized order feeds Equals and Hash only.
// Digests keep construction order on purpose: passes
// rely on digests reflecting how an expression was
// written, while deduplication relies on order-blind
// equality. Do not unify the two.
func normalize(operator *op.Operator, args []Node) []Node {
	if !operator.Commutative || len(args) < 2 {
		if args == nil {
			return []Node{}
		}
		return args
	}
	sorted := slices.Clone(args)
	slices.SortStableFunc(sorted, operandLess)
	return sorted
}

// operandLess is the normalization order: by digest, then
// by full result type, then recursively by operand. The
// digest alone cannot order unequal operands in every
// case: calls that differ only in result type print
// identically unless the kind is CAST or NEW, and a
// stable sort would then leave such a pair in
// construction order, breaking order-blind equality.
func operandLess(a, b Node) bool {
	if sa, sb := a.String(), b.String(); sa != sb {
		return sa < sb
	}
	if ta, tb := a.Type().FullString(), b.Type().FullString(); ta != tb {
		return ta < tb
	}
	ca, aok := a.(*Call)
	cb, bok := b.(*Call)
	if !aok || !bok {
		// leaves with equal digest and type are equal
		return false
	}
	if ca.operator.Kind != cb.operator.Kind {
		return ca.operator.Kind < cb.operator.Kind
	}
	if len(ca.args) != len(cb.args) {
		return len(ca.args) < len(cb.args)
	}
	for i := range ca.args {
		if operandLess(ca.args[i], cb.args[i]) {
			return true
		}
		if operandLess(cb.args[i], ca.args[i]) {
			return false
		}
	}
	return false
}
