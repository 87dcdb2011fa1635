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
	"sync/atomic"

	"golang.org/x/exp/slices"

	"github.com/quern-db/quern/op"
	"github.com/quern-db/quern/types"
)

// Call is an operator applied to zero or more operand
// expressions. The smarts live in the operator descriptor;
// a Call only ties an operator to typed operands and a
// result type.
//
// A Call is immutable after construction. The hash and
// the normalized operand order are memoized lazily; both
// are pure functions of immutable state, so a racing first
// computation from several goroutines is harmless (every
// writer stores the same value). The caches are published
// atomically so concurrent readers never see a torn write.
type Call struct {
	operator *op.Operator
	args     []Node
	typ      types.Type
	count    int

	// lazily-populated caches; zero/nil mean "unset"
	hash uint64       // atomic
	norm atomic.Value // []Node
}

// NewCall constructs a call to operator with the given
// result type and operands. The operand slice is copied.
//
// NewCall fails with a *MissingFieldError if typ or
// operator is absent, and with an *ArityError if the
// operand count violates the operator's arity contract.
// Both signal a defect in the calling rule or builder;
// there is no partially-constructed node to recover.
func NewCall(typ types.Type, operator *op.Operator, args ...Node) (*Call, error) {
	if !typ.Valid() {
		return nil, &MissingFieldError{Field: "type"}
	}
	if operator == nil {
		return nil, &MissingFieldError{Field: "operator"}
	}
	if !operator.ValidOperands(len(args)) {
		return nil, &ArityError{Op: operator, Count: len(args)}
	}
	return mkcall(typ, operator, slices.Clone(args)), nil
}

// mkcall builds a Call from an already-validated shape.
// It takes ownership of args.
func mkcall(typ types.Type, operator *op.Operator, args []Node) *Call {
	count := 1
	for i := range args {
		count += args[i].NodeCount()
	}
	return &Call{
		operator: operator,
		args:     args,
		typ:      typ,
		count:    count,
	}
}

// Operator returns the operator descriptor.
func (c *Call) Operator() *op.Operator {
	return c.operator
}

// Kind returns the operator's semantic kind.
func (c *Call) Kind() op.Kind {
	return c.operator.Kind
}

// Operands returns the operand list in construction
// order. The slice is owned by the node (and possibly
// shared with other nodes); callers must not modify it.
func (c *Call) Operands() []Node {
	return c.args
}

func (c *Call) Type() types.Type {
	return c.typ
}

func (c *Call) NodeCount() int {
	return c.count
}

// With returns a new call to the same operator with
// different operands and result type. The receiver is
// unchanged; unmodified operands are shared between
// the two nodes.
func (c *Call) With(typ types.Type, args []Node) (*Call, error) {
	return NewCall(typ, c.operator, args...)
}

// normalized returns the canonical (operator-implied)
// operand order used by Equals and Hash, memoizing it
// on first use. Digests never consult it.
func (c *Call) normalized() []Node {
	if v := c.norm.Load(); v != nil {
		return v.([]Node)
	}
	n := normalize(c.operator, c.args)
	c.norm.Store(n)
	return n
}

// Equals returns whether n is a call to the same
// operator with equal result type and (normalized)
// equal operands. Two calls that differ only in
// result type are not equal.
func (c *Call) Equals(n Node) bool {
	other, ok := n.(*Call)
	if !ok {
		return false
	}
	if c == other {
		return true
	}
	if c.operator != other.operator || !c.typ.Equal(other.typ) {
		return false
	}
	return slices.EqualFunc(c.normalized(), other.normalized(), Equal)
}

// Hash returns a hash of the operator and the normalized
// operands. The result type is deliberately excluded:
// calls differing only in type may collide, and Equals
// remains the authority.
func (c *Call) Hash() uint64 {
	if h := atomic.LoadUint64(&c.hash); h != 0 {
		return h
	}
	h := hashCall(c.operator.Name, c.normalized())
	atomic.StoreUint64(&c.hash, h)
	return h
}

// IsAlwaysTrue implements the conservative static truth
// inference described in truth.go.
func (c *Call) IsAlwaysTrue() bool {
	if r, ok := truthRules[c.Kind()]; ok {
		return r.alwaysTrue(c.args)
	}
	return false
}

// IsAlwaysFalse is the mirror of IsAlwaysTrue.
func (c *Call) IsAlwaysFalse() bool {
	if r, ok := truthRules[c.Kind()]; ok {
		return r.alwaysFalse(c.args)
	}
	return false
}

// String returns the canonical digest. The result type
// is appended only for CAST and NEW calls, whose
// structural form alone does not determine it.
func (c *Call) String() string {
	k := c.Kind()
	return c.Digest(k == op.KindCast || k == op.KindNew)
}

func (c *Call) walk(v Visitor) {
	for i := range c.args {
		Walk(v, c.args[i])
	}
}

func (c *Call) rewrite(r Rewriter) Node {
	var args []Node
	for i := range c.args {
		out := Rewrite(r, c.args[i])
		if args == nil && out != c.args[i] {
			args = slices.Clone(c.args[:i])
		}
		if args != nil {
			args = append(args, out)
		}
	}
	if args == nil {
		return c
	}
	// same operator and operand count as the
	// original, so the arity contract still holds
	return mkcall(c.typ, c.operator, args)
}
