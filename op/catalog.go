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
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Standard operator catalog. These are the operators
// the optimizer itself knows about; everything else
// is registered as a function through a Registry.
var (
	And = &Operator{Name: "AND", Kind: KindAnd, Syntax: SyntaxBinary, MinOperands: 2, MaxOperands: -1, Commutative: true}
	Or  = &Operator{Name: "OR", Kind: KindOr, Syntax: SyntaxBinary, MinOperands: 2, MaxOperands: -1, Commutative: true}
	Not = &Operator{Name: "NOT", Kind: KindNot, Syntax: SyntaxPrefix, MinOperands: 1, MaxOperands: 1}

	Eq = &Operator{Name: "=", Kind: KindEquals, Syntax: SyntaxBinary, MinOperands: 2, MaxOperands: 2, Commutative: true}
	Ne = &Operator{Name: "<>", Kind: KindNotEquals, Syntax: SyntaxBinary, MinOperands: 2, MaxOperands: 2, Commutative: true}
	Lt = &Operator{Name: "<", Kind: KindLess, Syntax: SyntaxBinary, MinOperands: 2, MaxOperands: 2}
	Le = &Operator{Name: "<=", Kind: KindLessEqual, Syntax: SyntaxBinary, MinOperands: 2, MaxOperands: 2}
	Gt = &Operator{Name: ">", Kind: KindGreater, Syntax: SyntaxBinary, MinOperands: 2, MaxOperands: 2}
	Ge = &Operator{Name: ">=", Kind: KindGreaterEqual, Syntax: SyntaxBinary, MinOperands: 2, MaxOperands: 2}

	Add = &Operator{Name: "+", Kind: KindPlus, Syntax: SyntaxBinary, MinOperands: 2, MaxOperands: 2, Commutative: true}
	Sub = &Operator{Name: "-", Kind: KindMinus, Syntax: SyntaxBinary, MinOperands: 2, MaxOperands: 2}
	Mul = &Operator{Name: "*", Kind: KindTimes, Syntax: SyntaxBinary, MinOperands: 2, MaxOperands: 2, Commutative: true}
	Div = &Operator{Name: "/", Kind: KindDivide, Syntax: SyntaxBinary, MinOperands: 2, MaxOperands: 2}
	Mod = &Operator{Name: "MOD", Kind: KindMod, Syntax: SyntaxFunction, MinOperands: 2, MaxOperands: 2}
	Neg = &Operator{Name: "-", Kind: KindNeg, Syntax: SyntaxPrefix, MinOperands: 1, MaxOperands: 1}

	Cast = &Operator{Name: "CAST", Kind: KindCast, Syntax: SyntaxSpecial, MinOperands: 1, MaxOperands: 1}
	New  = &Operator{Name: "NEW", Kind: KindNew, Syntax: SyntaxSpecial, MinOperands: 0, MaxOperands: -1}

	IsNull     = &Operator{Name: "IS NULL", Kind: KindIsNull, Syntax: SyntaxPostfix, MinOperands: 1, MaxOperands: 1}
	IsNotNull  = &Operator{Name: "IS NOT NULL", Kind: KindIsNotNull, Syntax: SyntaxPostfix, MinOperands: 1, MaxOperands: 1}
	IsTrue     = &Operator{Name: "IS TRUE", Kind: KindIsTrue, Syntax: SyntaxPostfix, MinOperands: 1, MaxOperands: 1}
	IsNotTrue  = &Operator{Name: "IS NOT TRUE", Kind: KindIsNotTrue, Syntax: SyntaxPostfix, MinOperands: 1, MaxOperands: 1}
	IsFalse    = &Operator{Name: "IS FALSE", Kind: KindIsFalse, Syntax: SyntaxPostfix, MinOperands: 1, MaxOperands: 1}
	IsNotFalse = &Operator{Name: "IS NOT FALSE", Kind: KindIsNotFalse, Syntax: SyntaxPostfix, MinOperands: 1, MaxOperands: 1}

	CurrentUser = &Operator{Name: "CURRENT_USER", Kind: KindFunction, Syntax: SyntaxFunctionID, MinOperands: 0, MaxOperands: 0}
	Coalesce    = &Operator{Name: "COALESCE", Kind: KindFunction, Syntax: SyntaxFunction, MinOperands: 1, MaxOperands: -1}
)

// Func constructs an ad-hoc function operator with
// ordinary function syntax and the given arity bounds.
func Func(name string, min, max int) *Operator {
	return &Operator{
		Name:        name,
		Kind:        KindFunction,
		Syntax:      SyntaxFunction,
		MinOperands: min,
		MaxOperands: max,
	}
}

var standard = []*Operator{
	And, Or, Not,
	Eq, Ne, Lt, Le, Gt, Ge,
	Add, Sub, Mul, Div, Mod, Neg,
	Cast, New,
	IsNull, IsNotNull, IsTrue, IsNotTrue, IsFalse, IsNotFalse,
	CurrentUser, Coalesce,
}

// Registry maps operator names to descriptors.
// A Registry is not safe for concurrent mutation;
// build it up front and share it read-only.
type Registry struct {
	byname map[string]*Operator
}

// NewRegistry returns a Registry seeded with
// the standard catalog.
func NewRegistry() *Registry {
	r := &Registry{byname: make(map[string]*Operator, len(standard))}
	for _, o := range standard {
		// prefix operators share a name with their
		// binary form; the binary form wins the
		// name lookup (Neg is reached by kind)
		if _, ok := r.byname[o.Name]; !ok {
			r.byname[o.Name] = o
		}
	}
	return r
}

// Register adds o to the registry. Registering a
// name that is already present is an error; the
// catalog, unlike a scope, has no shadowing.
func (r *Registry) Register(o *Operator) error {
	if o.Name == "" {
		return fmt.Errorf("op: cannot register operator with empty name")
	}
	if prev, ok := r.byname[o.Name]; ok {
		return fmt.Errorf("op: operator %q already registered with kind %s", o.Name, prev.Kind)
	}
	r.byname[o.Name] = o
	return nil
}

// Lookup returns the operator registered under name,
// or nil if there is none.
func (r *Registry) Lookup(name string) *Operator {
	return r.byname[name]
}

// Names returns the sorted list of registered names.
func (r *Registry) Names() []string {
	names := maps.Keys(r.byname)
	slices.Sort(names)
	return names
}
