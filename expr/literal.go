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
	"fmt"
	"strconv"
	"strings"

	"github.com/quern-db/quern/types"
)

// IncludeType directs whether a literal's digest
// carries a trailing type annotation.
type IncludeType int

const (
	// IncludeAlways forces the annotation.
	IncludeAlways IncludeType = iota
	// IncludeOptional lets the literal decide;
	// see (*Literal).includeType.
	IncludeOptional
	// IncludeNever suppresses the annotation; the
	// enclosing call uses it when context already
	// pins the operand type.
	IncludeNever
)

// Literal is a constant scalar value with a declared type.
// The value is one of: nil (a typed SQL NULL), bool, int64,
// float64, or string.
type Literal struct {
	val any
	typ types.Type
}

// NewLiteral constructs a literal with the given value
// and declared type. It fails if the value class does
// not agree with the type's base, or if a nil value is
// declared with a non-nullable type.
func NewLiteral(val any, typ types.Type) (*Literal, error) {
	if !typ.Valid() {
		return nil, &MissingFieldError{Field: "type"}
	}
	if val == nil {
		if !typ.Nullable {
			return nil, fmt.Errorf("expr: null literal with non-nullable type %s", typ)
		}
		return &Literal{val: nil, typ: typ}, nil
	}
	ok := false
	switch val.(type) {
	case bool:
		ok = typ.Base == types.Bool
	case int64:
		ok = typ.Base == types.Int || typ.Base == types.BigInt || typ.Base == types.Decimal
	case float64:
		ok = typ.Base == types.Float || typ.Base == types.Double || typ.Base == types.Decimal
	case string:
		ok = typ.Base == types.String ||
			typ.Base == types.Timestamp || typ.Base == types.Date || typ.Base == types.Interval
	default:
		return nil, fmt.Errorf("expr: unsupported literal value %T", val)
	}
	if !ok {
		return nil, fmt.Errorf("expr: literal value %T does not fit type %s", val, typ)
	}
	return &Literal{val: val, typ: typ}, nil
}

// Bool returns a non-nullable BOOLEAN literal.
func Bool(b bool) *Literal {
	return &Literal{val: b, typ: types.New(types.Bool)}
}

// Integer returns a non-nullable BIGINT literal.
func Integer(i int64) *Literal {
	return &Literal{val: i, typ: types.New(types.BigInt)}
}

// Float returns a non-nullable DOUBLE literal.
func Float(f float64) *Literal {
	return &Literal{val: f, typ: types.New(types.Double)}
}

// StringLit returns a non-nullable VARCHAR literal.
func StringLit(s string) *Literal {
	return &Literal{val: s, typ: types.New(types.String)}
}

// Null returns a typed NULL literal; the type is
// forced nullable.
func Null(typ types.Type) *Literal {
	return &Literal{val: nil, typ: typ.WithNullable(true)}
}

// Value returns the literal value (nil for SQL NULL).
func (l *Literal) Value() any {
	return l.val
}

func (l *Literal) Type() types.Type {
	return l.typ
}

func (l *Literal) NodeCount() int {
	return 1
}

// Equals compares value and declared type; 1:BIGINT
// and 1:INTEGER are distinct literals.
func (l *Literal) Equals(n Node) bool {
	other, ok := n.(*Literal)
	if !ok {
		return false
	}
	return l.val == other.val && l.typ.Equal(other.typ)
}

func (l *Literal) Hash() uint64 {
	return hashString(l.Digest(IncludeAlways))
}

// IsAlwaysTrue reports whether the literal is the
// boolean value TRUE. A NULL of boolean type is
// neither always-true nor always-false.
func (l *Literal) IsAlwaysTrue() bool {
	b, ok := l.val.(bool)
	return ok && b
}

func (l *Literal) IsAlwaysFalse() bool {
	b, ok := l.val.(bool)
	return ok && !b
}

func (l *Literal) walk(Visitor) {}

func (l *Literal) String() string {
	return l.Digest(IncludeOptional)
}

// includeType is the directive the literal chooses
// for itself under IncludeOptional. Only a plain
// non-nullable string value renders bare: its quoted
// form pins the type. Everything else, booleans
// included, keeps the annotation so that digests of
// structurally different expressions stay distinct.
func (l *Literal) includeType() IncludeType {
	if _, ok := l.val.(string); ok && l.typ.Base == types.String && !l.typ.Nullable {
		return IncludeNever
	}
	return IncludeAlways
}

// Digest renders the literal under the given
// type-inclusion directive.
func (l *Literal) Digest(inc IncludeType) string {
	if inc == IncludeOptional {
		inc = l.includeType()
	}
	var sb strings.Builder
	l.writeValue(&sb)
	if inc == IncludeAlways {
		sb.WriteByte(':')
		sb.WriteString(l.typ.String())
	}
	return sb.String()
}

func (l *Literal) writeValue(dst *strings.Builder) {
	switch v := l.val.(type) {
	case nil:
		dst.WriteString("null")
	case bool:
		if v {
			dst.WriteString("true")
		} else {
			dst.WriteString("false")
		}
	case int64:
		var buf [32]byte
		dst.Write(strconv.AppendInt(buf[:0], v, 10))
	case float64:
		var buf [32]byte
		dst.Write(strconv.AppendFloat(buf[:0], v, 'g', -1, 64))
	case string:
		quote(dst, v)
	}
}

// quote writes s as a single-quoted SQL string.
func quote(dst *strings.Builder, s string) {
	dst.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			dst.WriteString("''")
			continue
		}
		dst.WriteByte(s[i])
	}
	dst.WriteByte('\'')
}

// InputRef is a positional reference to a field of
// the relational operator's input row, rendered as
// $N in digests.
type InputRef struct {
	// Index is the zero-based input position.
	Index int
	typ   types.Type
}

// Input constructs an input reference with the
// given position and type.
func Input(index int, typ types.Type) *InputRef {
	return &InputRef{Index: index, typ: typ}
}

func (r *InputRef) Type() types.Type {
	return r.typ
}

func (r *InputRef) NodeCount() int {
	return 1
}

// Equals compares position and type; two references
// to the same slot with different inferred types are
// distinct (they came from different input schemas).
func (r *InputRef) Equals(n Node) bool {
	other, ok := n.(*InputRef)
	if !ok {
		return false
	}
	return r.Index == other.Index && r.typ.Equal(other.typ)
}

func (r *InputRef) Hash() uint64 {
	return hashString(r.String() + ":" + r.typ.FullString())
}

func (r *InputRef) IsAlwaysTrue() bool  { return false }
func (r *InputRef) IsAlwaysFalse() bool { return false }

func (r *InputRef) walk(Visitor) {}

func (r *InputRef) String() string {
	return "$" + strconv.Itoa(r.Index)
}
