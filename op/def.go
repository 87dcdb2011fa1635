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
	"io"

	"sigs.k8s.io/yaml"
)

// OperatorDef is one operator entry in a Definition.
// Kind and Syntax are the textual forms of the
// corresponding enums ("FUNCTION", "binary", ...);
// both default to plain function operators.
type OperatorDef struct {
	Name        string `json:"name"`
	Kind        string `json:"kind,omitempty"`
	Syntax      string `json:"syntax,omitempty"`
	MinOperands int    `json:"min_operands"`
	// MaxOperands of -1 means unbounded; an absent
	// field means the operator has fixed arity
	// equal to MinOperands.
	MaxOperands *int `json:"max_operands,omitempty"`
	Commutative bool `json:"commutative,omitempty"`
}

// Definition declares a set of extension operators
// (typically user-defined functions) to be added
// to a Registry at startup.
type Definition struct {
	// Name identifies the definition for error
	// reporting; it has no semantic meaning.
	Name      string        `json:"name"`
	Operators []OperatorDef `json:"operators"`
}

// pick an upper limit to prevent DoS
const maxDefSize = 1024 * 1024

// DecodeDefinition decodes a definition from src.
// The input may be YAML or JSON (JSON is a subset
// of YAML as far as the decoder is concerned).
func DecodeDefinition(src io.Reader) (*Definition, error) {
	buf, err := io.ReadAll(io.LimitReader(src, maxDefSize+1))
	if err != nil {
		return nil, err
	}
	if len(buf) > maxDefSize {
		return nil, fmt.Errorf("op: definition larger than limit %d", maxDefSize)
	}
	d := new(Definition)
	if err := yaml.Unmarshal(buf, d); err != nil {
		return nil, fmt.Errorf("op: decoding definition: %w", err)
	}
	return d, nil
}

func kindNamed(name string) (Kind, bool) {
	if name == "" {
		return KindFunction, true
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindOther, false
}

func syntaxNamed(name string) (Syntax, bool) {
	if name == "" {
		return SyntaxFunction, true
	}
	for s, n := range syntaxNames {
		if n == name {
			return Syntax(s), true
		}
	}
	return SyntaxFunction, false
}

// Compile validates d and produces the operators
// it declares.
func (d *Definition) Compile() ([]*Operator, error) {
	out := make([]*Operator, 0, len(d.Operators))
	for i := range d.Operators {
		def := &d.Operators[i]
		if def.Name == "" {
			return nil, fmt.Errorf("op: definition %q: operator %d has no name", d.Name, i)
		}
		kind, ok := kindNamed(def.Kind)
		if !ok {
			return nil, fmt.Errorf("op: definition %q: operator %q: unknown kind %q", d.Name, def.Name, def.Kind)
		}
		syn, ok := syntaxNamed(def.Syntax)
		if !ok {
			return nil, fmt.Errorf("op: definition %q: operator %q: unknown syntax %q", d.Name, def.Name, def.Syntax)
		}
		max := def.MinOperands
		if def.MaxOperands != nil {
			max = *def.MaxOperands
		}
		if def.MinOperands < 0 || (max >= 0 && max < def.MinOperands) {
			return nil, fmt.Errorf("op: definition %q: operator %q: bad arity bounds [%d, %d]", d.Name, def.Name, def.MinOperands, max)
		}
		out = append(out, &Operator{
			Name:        def.Name,
			Kind:        kind,
			Syntax:      syn,
			MinOperands: def.MinOperands,
			MaxOperands: max,
			Commutative: def.Commutative,
		})
	}
	return out, nil
}

// RegisterDefinition compiles d and registers every
// operator it declares.
func (r *Registry) RegisterDefinition(d *Definition) error {
	ops, err := d.Compile()
	if err != nil {
		return err
	}
	for _, o := range ops {
		if err := r.Register(o); err != nil {
			return err
		}
	}
	return nil
}
