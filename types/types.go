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

// Package types describes the static types
// of scalar expressions as seen by the planner.
//
// A Type is a small value object; expression
// nodes embed types directly rather than
// pointing into a shared type table.
package types

import (
	"strconv"
	"strings"
)

// Base is the fundamental type of a value,
// ignoring nullability and parameters
// like precision or scale.
type Base int

const (
	// Unknown is the zero Base; a Type
	// with an Unknown base is not valid.
	Unknown Base = iota
	Bool
	Int
	BigInt
	Float
	Double
	Decimal
	String
	Timestamp
	Date
	Interval
	Null
	Any
)

var baseNames = [...]string{
	Unknown:   "UNKNOWN",
	Bool:      "BOOLEAN",
	Int:       "INTEGER",
	BigInt:    "BIGINT",
	Float:     "FLOAT",
	Double:    "DOUBLE",
	Decimal:   "DECIMAL",
	String:    "VARCHAR",
	Timestamp: "TIMESTAMP",
	Date:      "DATE",
	Interval:  "INTERVAL",
	Null:      "NULL",
	Any:       "ANY",
}

func (b Base) String() string {
	if b < 0 || int(b) >= len(baseNames) {
		return "UNKNOWN"
	}
	return baseNames[b]
}

// parameterized returns whether the base type
// accepts precision (and scale) parameters.
func (b Base) parameterized() bool {
	switch b {
	case Decimal, String:
		return true
	}
	return false
}

// Type is a complete type handle: a base type
// plus nullability and optional parameters.
//
// The zero Type is invalid; use New to
// construct one.
type Type struct {
	Base     Base
	Nullable bool
	// Precision is the maximum length for
	// String types and the precision for
	// Decimal types; zero means unspecified.
	Precision int
	// Scale is the Decimal scale.
	Scale int
}

// New constructs a non-nullable Type
// with the given base.
func New(b Base) Type {
	return Type{Base: b}
}

// Nullable constructs a nullable Type
// with the given base.
func Nullable(b Base) Type {
	return Type{Base: b, Nullable: true}
}

// WithNullable returns a copy of t with
// its nullability set to n.
func (t Type) WithNullable(n bool) Type {
	t.Nullable = n
	return t
}

// Valid returns whether t has a known base type.
func (t Type) Valid() bool {
	return t.Base != Unknown
}

// Equal returns whether t and other are
// identical, including nullability.
func (t Type) Equal(other Type) bool {
	return t == other
}

// EqualSansNullability returns whether a and b
// are identical once nullability is ignored.
func EqualSansNullability(a, b Type) bool {
	a.Nullable = false
	b.Nullable = false
	return a == b
}

// String returns the short rendering of t,
// without the nullability suffix, for example
//
//	DECIMAL(10, 2)
func (t Type) String() string {
	if !t.Base.parameterized() || t.Precision == 0 {
		return t.Base.String()
	}
	var sb strings.Builder
	sb.WriteString(t.Base.String())
	sb.WriteByte('(')
	sb.WriteString(strconv.Itoa(t.Precision))
	if t.Base == Decimal {
		sb.WriteString(", ")
		sb.WriteString(strconv.Itoa(t.Scale))
	}
	sb.WriteByte(')')
	return sb.String()
}

// FullString returns the full canonical rendering
// of t, including the NOT NULL suffix for
// non-nullable types. Digests that embed a type
// always use the full rendering so that two types
// differing only in nullability produce distinct
// digests.
func (t Type) FullString() string {
	if t.Nullable {
		return t.String()
	}
	return t.String() + " NOT NULL"
}
