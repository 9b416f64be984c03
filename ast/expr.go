// Copyright (c) 2024 The accgo Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package ast

import (
	"accgo/ctype"
	"accgo/symtable"
)

// BinaryOp is a tagged operator kind, never a raw token.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	BitAnd
	BitOr
	BitXor
	Lt
	Le
	Gt
	Ge
	Eq
	Ne
	LogicalAnd
	LogicalOr
)

func (op BinaryOp) String() string {
	names := [...]string{"+", "-", "*", "/", "%", "&", "|", "^",
		"<", "<=", ">", ">=", "==", "!=", "&&", "||"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

type UnaryOp int

const (
	Plus UnaryOp = iota
	Minus
	Not    // !
	Flip   // ~
	Deref  // *
	AddrOf // &
)

func (op UnaryOp) String() string {
	names := [...]string{"+", "-", "!", "~", "*", "&"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

type PostfixOp int

const (
	Call PostfixOp = iota
	Index
)

type PrimaryKind int

const (
	IdentifierPrimary PrimaryKind = iota
	ConstantPrimary
	StringPrimary
)

// Expr is satisfied by every expression node. The interface is sealed
// (isExpr is unexported) so the family stays closed to this package.
type Expr interface {
	isExpr()
	Pos() Pos
	Type() *ctype.Type
	SetType(*ctype.Type)
}

// ExprBase is embedded by every concrete Expr; it carries the fields
// common to all of them (position, and the type slot the analyzer
// fills in during its walk).
type ExprBase struct {
	P   Pos
	Typ *ctype.Type
}

func (b *ExprBase) Pos() Pos              { return b.P }
func (b *ExprBase) Type() *ctype.Type     { return b.Typ }
func (b *ExprBase) SetType(t *ctype.Type) { b.Typ = t }

type BinaryExpr struct {
	ExprBase
	Op          BinaryOp
	Left, Right Expr
}

func (*BinaryExpr) isExpr() {}

type UnaryExpr struct {
	ExprBase
	Op    UnaryOp
	Right Expr
}

func (*UnaryExpr) isExpr() {}

// PostfixExpr covers both function calls (Op == Call, Args populated,
// Left is the callee) and array indexing (Op == Index, Index holds the
// subscript expression; the analyzer/irgen desugar p[i] as *(p + i)).
type PostfixExpr struct {
	ExprBase
	Op    PostfixOp
	Left  Expr
	Args  []Expr
	Index Expr
}

func (*PostfixExpr) isExpr() {}

// PrimaryExpr is an identifier, an integer constant, or a string
// literal. Symbol is filled in by the analyzer once an Identifier
// primary has been resolved.
type PrimaryExpr struct {
	ExprBase
	Kind       PrimaryKind
	Identifier string
	Constant   int64
	String     string
	Symbol     *symtable.Symbol
}

func (*PrimaryExpr) isExpr() {}

// CastExpr is both a source-level cast expression and the node the
// analyzer inserts for implicit integer promotion / usual arithmetic
// conversion / assignment coercion. Inserted is true for analyzer-
// generated casts, distinguishing them from ones the parser produced.
type CastExpr struct {
	ExprBase
	To       *ctype.Type
	Right    Expr
	Inserted bool
}

func (*CastExpr) isExpr() {}

type TertiaryExpr struct {
	ExprBase
	Cond, Then, Else Expr
}

func (*TertiaryExpr) isExpr() {}

type AssignExpr struct {
	ExprBase
	Left, Right Expr
}

func (*AssignExpr) isExpr() {}
