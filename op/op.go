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

// Package op describes the operators that scalar
// expressions may call.
//
// An Operator is a descriptor, not an implementation:
// it carries the metadata the expression layer needs
// (name, display syntax, semantic kind, arity contract,
// commutativity) and nothing about evaluation.
package op

// Kind is the semantic tag of an operator,
// independent of its display syntax. Optimizer
// passes dispatch on Kind rather than on
// operator identity so that families of operators
// (for example user-defined equality) share rules.
type Kind int

const (
	// KindOther is the zero Kind; operators with
	// no special meaning to the optimizer use it.
	KindOther Kind = iota
	KindAnd
	KindOr
	KindNot
	KindCast
	// KindNew is the "new instance" construction kind;
	// like KindCast, its digest must carry the result
	// type because the structural form alone does
	// not pin it down.
	KindNew
	KindEquals
	KindNotEquals
	KindLess
	KindLessEqual
	KindGreater
	KindGreaterEqual
	KindPlus
	KindMinus
	KindTimes
	KindDivide
	KindMod
	KindNeg
	KindIsNull
	KindIsNotNull
	KindIsTrue
	KindIsNotTrue
	KindIsFalse
	KindIsNotFalse
	KindFunction
	maxKind
)

var kindNames = [...]string{
	KindOther:        "OTHER",
	KindAnd:          "AND",
	KindOr:           "OR",
	KindNot:          "NOT",
	KindCast:         "CAST",
	KindNew:          "NEW",
	KindEquals:       "EQUALS",
	KindNotEquals:    "NOT_EQUALS",
	KindLess:         "LESS",
	KindLessEqual:    "LESS_EQUAL",
	KindGreater:      "GREATER",
	KindGreaterEqual: "GREATER_EQUAL",
	KindPlus:         "PLUS",
	KindMinus:        "MINUS",
	KindTimes:        "TIMES",
	KindDivide:       "DIVIDE",
	KindMod:          "MOD",
	KindNeg:          "NEG",
	KindIsNull:       "IS_NULL",
	KindIsNotNull:    "IS_NOT_NULL",
	KindIsTrue:       "IS_TRUE",
	KindIsNotTrue:    "IS_NOT_TRUE",
	KindIsFalse:      "IS_FALSE",
	KindIsNotFalse:   "IS_NOT_FALSE",
	KindFunction:     "FUNCTION",
}

func (k Kind) String() string {
	if k < 0 || k >= maxKind {
		return "OTHER"
	}
	return kindNames[k]
}

// SimpleBinary returns whether k is a binary
// arithmetic operator (except KindMod) or a binary
// comparison. These are the kinds whose digests
// may elide a literal operand's type annotation
// when the sibling operand already pins it.
func (k Kind) SimpleBinary() bool {
	switch k {
	case KindPlus, KindMinus, KindTimes, KindDivide,
		KindEquals, KindNotEquals, KindLess, KindLessEqual,
		KindGreater, KindGreaterEqual:
		return true
	}
	return false
}

// Syntax is the display category of an operator.
// The expression layer only consults it to decide
// parenthesis elision; row expressions do not
// otherwise reflect source syntax.
type Syntax int

const (
	// SyntaxFunction operators render as NAME(args).
	SyntaxFunction Syntax = iota
	// SyntaxFunctionID operators render as a bare
	// identifier when niladic, for example
	// CURRENT_USER rather than CURRENT_USER().
	SyntaxFunctionID
	SyntaxBinary
	SyntaxPrefix
	SyntaxPostfix
	SyntaxSpecial
	maxSyntax
)

var syntaxNames = [...]string{
	SyntaxFunction:   "function",
	SyntaxFunctionID: "function-id",
	SyntaxBinary:     "binary",
	SyntaxPrefix:     "prefix",
	SyntaxPostfix:    "postfix",
	SyntaxSpecial:    "special",
}

func (s Syntax) String() string {
	if s < 0 || s >= maxSyntax {
		return "function"
	}
	return syntaxNames[s]
}

// Operator is an operator descriptor. Operators
// are immutable once published; the expression
// layer compares them by pointer identity.
type Operator struct {
	// Name is the canonical (digest) name.
	Name string
	// Kind is the semantic tag.
	Kind Kind
	// Syntax is the display category.
	Syntax Syntax
	// MinOperands and MaxOperands bound the
	// accepted operand count; MaxOperands of -1
	// means unbounded.
	MinOperands int
	MaxOperands int
	// Commutative operators admit canonical
	// reordering of their operands for
	// equality and hashing.
	Commutative bool
}

// ValidOperands is the arity contract: it returns
// whether an operand list of length n is accepted.
func (o *Operator) ValidOperands(n int) bool {
	if n < o.MinOperands {
		return false
	}
	return o.MaxOperands < 0 || n <= o.MaxOperands
}

func (o *Operator) String() string {
	return o.Name
}
