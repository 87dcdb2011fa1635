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
	"testing"

	"github.com/quern-db/quern/op"
)

type countVisitor struct {
	nodes int
}

func (c *countVisitor) Visit(n Node) Visitor {
	if n == nil {
		return nil
	}
	c.nodes++
	return c
}

func TestWalk(t *testing.T) {
	x := Input(0, nbigintT)
	e := callT(t, nboolT, op.And,
		callT(t, nboolT, op.Lt, x, Integer(3)),
		callT(t, nboolT, op.Gt, x, Integer(0)))
	v := &countVisitor{}
	Walk(v, e)
	if v.nodes != e.NodeCount() {
		t.Errorf("visited %d nodes, NodeCount is %d", v.nodes, e.NodeCount())
	}
}

// replace one input reference with a literal
type substRewriter struct {
	index int
	with  Node
}

func (s *substRewriter) Rewrite(n Node) Node {
	if ref, ok := n.(*InputRef); ok && ref.Index == s.index {
		return s.with
	}
	return n
}

func (s *substRewriter) Walk(Node) Rewriter { return s }

func TestRewrite(t *testing.T) {
	x := Input(0, nbigintT)
	y := Input(1, nbigintT)
	e := callT(t, nbigintT, op.Add, x, callT(t, nbigintT, op.Mul, x, y))

	out := Rewrite(&substRewriter{index: 1, with: Integer(7)}, e)
	if got := ToString(out); got != "+($0, *($0, 7))" {
		t.Errorf("rewritten = %q", got)
	}
	// the original expression is untouched
	if got := ToString(e); got != "+($0, *($0, $1))" {
		t.Errorf("original mutated: %q", got)
	}
	// untouched subtrees are shared, not copied
	if out.(*Call).Operands()[0] != Node(x) {
		t.Error("unchanged operand was copied")
	}

	// a rewrite that changes nothing returns the
	// original node
	same := Rewrite(&substRewriter{index: 9, with: Integer(0)}, e)
	if same != Node(e) {
		t.Error("no-op rewrite should return the original")
	}
}

// depth computes expression depth, demonstrating the
// context-free form of Dispatch
type depth struct{}

func (depth) HandleCall(c *Call, _ struct{}) int {
	max := 0
	for _, a := range c.Operands() {
		if d := Dispatch[struct{}, int](depth{}, a, struct{}{}); d > max {
			max = d
		}
	}
	return max + 1
}

func (depth) HandleLiteral(*Literal, struct{}) int   { return 1 }
func (depth) HandleInputRef(*InputRef, struct{}) int { return 1 }

// scale multiplies integer literals by a context factor,
// demonstrating the context-threading form
type scale struct{}

func (scale) HandleCall(c *Call, by int64) Node {
	args := make([]Node, len(c.Operands()))
	for i, a := range c.Operands() {
		args[i] = Dispatch[int64, Node](scale{}, a, by)
	}
	out, err := c.With(c.Type(), args)
	if err != nil {
		panic(err)
	}
	return out
}

func (scale) HandleLiteral(l *Literal, by int64) Node {
	if v, ok := l.Value().(int64); ok {
		return Integer(v * by)
	}
	return l
}

func (scale) HandleInputRef(r *InputRef, _ int64) Node { return r }

func TestDispatch(t *testing.T) {
	x := Input(0, nbigintT)
	e := callT(t, nbigintT, op.Add, x, callT(t, nbigintT, op.Mul, Integer(2), x))

	if d := Dispatch[struct{}, int](depth{}, e, struct{}{}); d != 3 {
		t.Errorf("depth = %d, want 3", d)
	}
	out := Dispatch[int64, Node](scale{}, e, 10)
	if got := ToString(out); got != "+($0, *(20, $0))" {
		t.Errorf("scaled = %q", got)
	}
}
