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

// Package intern hash-conses expression nodes: structurally
// equal expressions are mapped to a single in-memory instance,
// so that optimizer passes can compare subtrees by pointer
// and share memoized state.
//
// Because expression equality is order-blind for commutative
// operators, interning AND(a, b) and AND(b, a) yields one
// node; which of the two spellings survives is first-come,
// first-served.
package intern

import (
	"github.com/quern-db/quern/expr"
)

// Interner deduplicates expression nodes. The zero value
// is ready to use. An Interner is not safe for concurrent
// use; per-query state owns one, or callers lock around it.
type Interner struct {
	table map[uint64][]expr.Node
	count int
}

// Intern returns the canonical instance of n: the first
// node equal to n that was interned, or n itself if none
// was. Hash collisions between unequal nodes are resolved
// with Equals, never trusted.
func (in *Interner) Intern(n expr.Node) expr.Node {
	if in.table == nil {
		in.table = make(map[uint64][]expr.Node)
	}
	h := n.Hash()
	for _, prev := range in.table[h] {
		if prev.Equals(n) {
			return prev
		}
	}
	in.table[h] = append(in.table[h], n)
	in.count++
	return n
}

// InternTree interns n bottom-up: every subtree is
// replaced by its canonical instance, so shared
// subexpressions collapse across the whole expression.
func (in *Interner) InternTree(n expr.Node) expr.Node {
	c, ok := n.(*expr.Call)
	if !ok {
		return in.Intern(n)
	}
	args := c.Operands()
	var rebuilt []expr.Node
	for i := range args {
		out := in.InternTree(args[i])
		if rebuilt == nil && out != args[i] {
			rebuilt = make([]expr.Node, i, len(args))
			copy(rebuilt, args[:i])
		}
		if rebuilt != nil {
			rebuilt = append(rebuilt, out)
		}
	}
	if rebuilt != nil {
		// operand count is unchanged, so this cannot fail
		nc, err := c.With(c.Type(), rebuilt)
		if err != nil {
			panic("intern: " + err.Error())
		}
		c = nc
	}
	return in.Intern(c)
}

// Len returns the number of distinct nodes interned.
func (in *Interner) Len() int {
	return in.count
}

// Reset discards all interned nodes.
func (in *Interner) Reset() {
	in.table = nil
	in.count = 0
}
