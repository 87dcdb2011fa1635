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

func TestEquals(t *testing.T) {
	x := Input(0, nbigintT)
	y := Input(1, nbigintT)
	tests := []struct {
		in, out Node
	}{
		{Integer(1), Integer(1)},
		{Bool(true), Bool(true)},
		{StringLit("foo"), StringLit("foo")},
		{Input(3, bigintT), Input(3, bigintT)},
		{callT(t, nbigintT, op.Add, x, y), callT(t, nbigintT, op.Add, x, y)},
		// commutative operators are order-blind
		{callT(t, nbigintT, op.Add, x, y), callT(t, nbigintT, op.Add, y, x)},
		{callT(t, nboolT, op.Eq, x, Integer(3)), callT(t, nboolT, op.Eq, Integer(3), x)},
		{
			callT(t, nboolT, op.And, callT(t, nboolT, op.Lt, x, y), Bool(true)),
			callT(t, nboolT, op.And, Bool(true), callT(t, nboolT, op.Lt, x, y)),
		},
		// nested commutativity
		{
			callT(t, nbigintT, op.Mul, callT(t, nbigintT, op.Add, x, y), Integer(2)),
			callT(t, nbigintT, op.Mul, Integer(2), callT(t, nbigintT, op.Add, y, x)),
		},
	}
	for i := range tests {
		if !tests[i].in.Equals(tests[i].out) {
			t.Errorf("case %d: %s != %s", i, tests[i].in, tests[i].out)
		}
		// symmetry
		if !tests[i].out.Equals(tests[i].in) {
			t.Errorf("case %d: %s != %s", i, tests[i].out, tests[i].in)
		}
		// reflexivity
		if !tests[i].in.Equals(tests[i].in) {
			t.Errorf("case %d: %s not equal to itself", i, tests[i].in)
		}
		// hash consistency
		if tests[i].in.Hash() != tests[i].out.Hash() {
			t.Errorf("case %d: %s and %s hash differently", i, tests[i].in, tests[i].out)
		}
	}
}

func TestNotEquals(t *testing.T) {
	x := Input(0, nbigintT)
	y := Input(1, nbigintT)
	tests := []struct {
		a, b Node
	}{
		{Integer(1), Integer(2)},
		{Integer(1), Bool(true)},
		{Input(0, bigintT), Input(1, bigintT)},
		// same slot, different type
		{Input(0, bigintT), Input(0, nbigintT)},
		// non-commutative operators keep order
		{callT(t, nbigintT, op.Sub, x, y), callT(t, nbigintT, op.Sub, y, x)},
		{callT(t, nboolT, op.Lt, x, y), callT(t, nboolT, op.Lt, y, x)},
		// different operator, same operands
		{callT(t, nbigintT, op.Add, x, y), callT(t, nbigintT, op.Mul, x, y)},
		// identical call, different result type
		{callT(t, bigintT, op.Add, x, y), callT(t, nbigintT, op.Add, x, y)},
		{Integer(1), callT(t, nbigintT, op.Add, x, y)},
	}
	for i := range tests {
		if tests[i].a.Equals(tests[i].b) {
			t.Errorf("case %d: %s == %s", i, tests[i].a, tests[i].b)
		}
		if tests[i].b.Equals(tests[i].a) {
			t.Errorf("case %d: %s == %s", i, tests[i].b, tests[i].a)
		}
	}
}

// operands that differ only in result type share a digest;
// commutative equality must still hold when such a pair is
// swapped, so the normalization order breaks digest ties
// on the type (and recursively on nested operands)
func TestEqualsDigestTie(t *testing.T) {
	x := Input(0, nbigintT)
	y := Input(1, nbigintT)
	a := callT(t, bigintT, op.Add, x, y)
	b := callT(t, nbigintT, op.Add, x, y)
	if a.String() != b.String() {
		t.Fatalf("digests should tie: %q vs %q", a, b)
	}
	if a.Equals(b) {
		t.Fatal("calls differing in result type must not be equal")
	}

	p := callT(t, nboolT, op.Eq, a, b)
	q := callT(t, nboolT, op.Eq, b, a)
	if !p.Equals(q) || !q.Equals(p) {
		t.Errorf("%s and %s should be equal", p, q)
	}
	if p.Hash() != q.Hash() {
		t.Error("equal calls should hash identically")
	}

	// the tie can sit below the top level: here the
	// operands only diverge in a nested result type
	a2 := callT(t, nbigintT, op.Mul, x, a)
	b2 := callT(t, nbigintT, op.Mul, x, b)
	p2 := callT(t, nboolT, op.Eq, a2, b2)
	q2 := callT(t, nboolT, op.Eq, b2, a2)
	if !p2.Equals(q2) {
		t.Errorf("%s and %s should be equal", p2, q2)
	}
	if p2.Hash() != q2.Hash() {
		t.Error("equal calls should hash identically")
	}
}

// calls that differ only in result type are unequal but
// hash identically: the hash excludes the type on purpose
func TestHashExcludesType(t *testing.T) {
	x := Input(0, nbigintT)
	y := Input(1, nbigintT)
	a := callT(t, bigintT, op.Add, x, y)
	b := callT(t, nbigintT, op.Add, x, y)
	if a.Equals(b) {
		t.Fatal("calls with different result types must not be equal")
	}
	if a.Hash() != b.Hash() {
		t.Error("hash should not include the result type")
	}
}

// equality does not imply identical digests: digests
// keep construction order, equality normalizes it
func TestDigestOrderDiverges(t *testing.T) {
	x := Input(0, nbigintT)
	y := Input(1, nbigintT)
	ab := callT(t, nbigintT, op.Add, x, y)
	ba := callT(t, nbigintT, op.Add, y, x)
	if !ab.Equals(ba) || ab.Hash() != ba.Hash() {
		t.Fatal("commutative calls should be equal")
	}
	if ab.String() == ba.String() {
		t.Errorf("digests should differ: %s", ab)
	}
	if ab.String() != "+($0, $1)" {
		t.Errorf("digest = %q", ab.String())
	}
	if ba.String() != "+($1, $0)" {
		t.Errorf("digest = %q", ba.String())
	}
}
