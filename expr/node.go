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

// Package expr implements the scalar-expression layer
// of the query optimizer: immutable, typed expression
// nodes that the relational operator tree embeds.
//
// The package revolves around three distinct relations
// on nodes, and they deliberately do not coincide:
//
//   - the digest (String, (*Call).Digest) is the canonical
//     textual form used as an interning and plan-cache key;
//     it always reflects the operand order a node was
//     constructed with
//   - Equals and Hash are invariant under reordering of a
//     commutative operator's operands, so AND(a, b) equals
//     AND(b, a) even though their digests differ
//   - IsAlwaysTrue and IsAlwaysFalse are conservative static
//     truth predicates used by simplification passes
//
// Nodes are immutable after construction and may be read
// concurrently without locking. Operand slices are shared
// structurally (expressions form a DAG); no holder may
// mutate them.
package expr

import (
	"github.com/quern-db/quern/types"
)

// Node is a scalar expression: a call, a literal,
// or an input reference. The variant set is closed;
// see Dispatch for exhaustive case analysis.
type Node interface {
	// Equals returns whether this node is structurally
	// equivalent to another node. For calls to commutative
	// operators, equality is insensitive to operand order.
	Equals(Node) bool

	// Hash returns a hash consistent with Equals:
	// equal nodes hash identically. The converse does
	// not hold; hashing is an equality pre-filter.
	Hash() uint64

	// Type returns the static result type of the node.
	Type() types.Type

	// NodeCount returns the number of nodes in the
	// expression tree rooted here, counting shared
	// subtrees once per reference.
	NodeCount() int

	// IsAlwaysTrue returns whether the node is statically
	// known to evaluate to TRUE. False means "not known",
	// not "known false".
	IsAlwaysTrue() bool

	// IsAlwaysFalse is the mirror of IsAlwaysTrue.
	IsAlwaysFalse() bool

	// String returns the canonical digest text.
	String() string

	walk(Visitor)
}

// Equal returns whether a and b are equivalent.
// a or b may be nil.
func Equal(a, b Node) bool {
	if a == nil {
		return b == nil
	}
	return b != nil && a.Equals(b)
}

// ToString returns the digest of n,
// tolerating a nil node.
func ToString(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.String()
}

// Visitor is the interface satisfied by the
// argument to Walk.
//
// A Visitor's Visit method is invoked for each node
// encountered by Walk. If the result visitor w is not
// nil, Walk visits each child of the node with w,
// followed by a call of w.Visit(nil).
//
// (see also: ast.Visitor)
type Visitor interface {
	Visit(Node) Visitor
}

// Walk traverses an expression in depth-first order.
// It starts by calling v.Visit(n); n must not be nil.
// If the visitor w returned by v.Visit(n) is not nil,
// Walk is invoked recursively with w for each of the
// children of n, followed by a call of w.Visit(nil).
//
// (see also: ast.Walk)
func Walk(v Visitor, n Node) {
	w := v.Visit(n)
	if w != nil {
		n.walk(w)
		w.Visit(nil)
	}
}

// Rewriter accepts a Node and returns a new node
// (or just its argument). Rewriting never mutates
// the input expression; rewritten calls are fresh
// nodes sharing unchanged operands with the original.
type Rewriter interface {
	// Rewrite is applied to nodes in depth-first
	// order, and each node is replaced with the
	// returned value.
	Rewrite(Node) Node

	// Walk is called during traversal and the
	// returned Rewriter is used for the children
	// of the node. If it is nil, traversal does
	// not proceed past the node.
	Walk(Node) Rewriter
}

type nonleaf interface {
	rewrite(r Rewriter) Node
}

// Rewrite recursively applies r in depth-first order
// and returns the rewritten expression.
func Rewrite(r Rewriter, n Node) Node {
	if n == nil {
		return nil
	}
	if nl, ok := n.(nonleaf); ok {
		if rc := r.Walk(n); rc != nil {
			n = nl.rewrite(rc)
		}
	}
	return r.Rewrite(n)
}

// Handler dispatches on the concrete node variant,
// threading a caller-supplied context value of type C
// and producing a result of type R. Passes that carry
// no state use struct{} for C.
//
// Handler replaces the pair of visitor hierarchies
// (with and without a context argument) found in
// older optimizers with a single parameterized one.
type Handler[C, R any] interface {
	HandleCall(*Call, C) R
	HandleLiteral(*Literal, C) R
	HandleInputRef(*InputRef, C) R
}

// Dispatch invokes the Handler method matching the
// concrete variant of n.
func Dispatch[C, R any](h Handler[C, R], n Node, ctx C) R {
	switch n := n.(type) {
	case *Call:
		return h.HandleCall(n, ctx)
	case *Literal:
		return h.HandleLiteral(n, ctx)
	case *InputRef:
		return h.HandleInputRef(n, ctx)
	}
	panic("expr: Dispatch of unknown node variant")
}
