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

package op

import (
	"strings"
	"testing"
)

func TestValidOperands(t *testing.T) {
	testcases := []struct {
		op   *Operator
		n    int
		want bool
	}{
		{And, 1, false},
		{And, 2, true},
		{And, 17, true},
		{Not, 0, false},
		{Not, 1, true},
		{Not, 2, false},
		{Eq, 2, true},
		{Eq, 3, false},
		{CurrentUser, 0, true},
		{CurrentUser, 1, false},
		{Coalesce, 0, false},
		{Coalesce, 5, true},
	}
	for i := range testcases {
		got := testcases[i].op.ValidOperands(testcases[i].n)
		if got != testcases[i].want {
			t.Errorf("case %d: %s.ValidOperands(%d) = %v",
				i, testcases[i].op, testcases[i].n, got)
		}
	}
}

func TestSimpleBinary(t *testing.T) {
	simple := []Kind{
		KindPlus, KindMinus, KindTimes, KindDivide,
		KindEquals, KindNotEquals, KindLess, KindLessEqual,
		KindGreater, KindGreaterEqual,
	}
	for _, k := range simple {
		if !k.SimpleBinary() {
			t.Errorf("%s should be simple-binary", k)
		}
	}
	notsimple := []Kind{KindAnd, KindOr, KindMod, KindCast, KindNeg, KindFunction, KindOther}
	for _, k := range notsimple {
		if k.SimpleBinary() {
			t.Errorf("%s should not be simple-binary", k)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if got := r.Lookup("AND"); got != And {
		t.Errorf("Lookup(AND) = %v", got)
	}
	if got := r.Lookup("NO_SUCH_OP"); got != nil {
		t.Errorf("Lookup(NO_SUCH_OP) = %v", got)
	}
	fn := Func("MY_FUNC", 1, 2)
	if err := r.Register(fn); err != nil {
		t.Fatal(err)
	}
	if got := r.Lookup("MY_FUNC"); got != fn {
		t.Errorf("Lookup(MY_FUNC) = %v", got)
	}
	if err := r.Register(Func("MY_FUNC", 0, 0)); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	names := r.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names() not sorted: %q >= %q", names[i-1], names[i])
		}
	}
}

func TestDecodeDefinition(t *testing.T) {
	const src = `
name: geo-extensions
operators:
  - name: GEO_HASH
    min_operands: 3
  - name: HAVERSINE
    min_operands: 4
    commutative: false
  - name: POINT_EQ
    kind: EQUALS
    syntax: function
    min_operands: 2
    commutative: true
  - name: MAKE_BBOX
    min_operands: 2
    max_operands: -1
`
	d, err := DecodeDefinition(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	ops, err := d.Compile()
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 4 {
		t.Fatalf("got %d operators", len(ops))
	}
	if ops[0].Name != "GEO_HASH" || ops[0].Kind != KindFunction || !ops[0].ValidOperands(3) || ops[0].ValidOperands(4) {
		t.Errorf("bad GEO_HASH: %+v", ops[0])
	}
	if ops[2].Kind != KindEquals || !ops[2].Commutative {
		t.Errorf("bad POINT_EQ: %+v", ops[2])
	}
	if !ops[3].ValidOperands(100) {
		t.Errorf("MAKE_BBOX should be variadic")
	}

	// JSON is accepted by the same decoder
	const js = `{"name": "j", "operators": [{"name": "F", "min_operands": 1}]}`
	d, err = DecodeDefinition(strings.NewReader(js))
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Operators) != 1 || d.Operators[0].Name != "F" {
		t.Errorf("bad JSON decode: %+v", d)
	}
}

func TestDefinitionErrors(t *testing.T) {
	testcases := []string{
		`{"operators": [{"min_operands": 1}]}`,                      // missing name
		`{"operators": [{"name": "F", "kind": "BOGUS"}]}`,           // unknown kind
		`{"operators": [{"name": "F", "syntax": "BOGUS"}]}`,         // unknown syntax
		`{"operators": [{"name": "F", "min_operands": -1}]}`,        // negative min
		`{"operators": [{"name": "F", "min_operands": 3, "max_operands": 2}]}`, // inverted bounds
	}
	for i, src := range testcases {
		d, err := DecodeDefinition(strings.NewReader(src))
		if err != nil {
			continue // decode-time rejection is fine too
		}
		if _, err := d.Compile(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestRegisterDefinition(t *testing.T) {
	r := NewRegistry()
	d := &Definition{
		Name: "exts",
		Operators: []OperatorDef{
			{Name: "F1", MinOperands: 1},
			{Name: "F2", MinOperands: 2},
		},
	}
	if err := r.RegisterDefinition(d); err != nil {
		t.Fatal(err)
	}
	if r.Lookup("F1") == nil || r.Lookup("F2") == nil {
		t.Error("definition operators not registered")
	}
	// a definition that collides with the catalog fails
	bad := &Definition{Operators: []OperatorDef{{Name: "AND", MinOperands: 2}}}
	if err := r.RegisterDefinition(bad); err == nil {
		t.Error("expected collision with catalog to fail")
	}
}
