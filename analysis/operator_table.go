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

// Package analysis walks an AST, resolving identifiers, checking
// operand and lvalue constraints, inserting promotion/conversion/
// assignment casts, and allocating an address for every declared
// object.
package analysis

import (
	"accgo/ast"
	"accgo/ctype"
)

// ResultRule picks how a binary operator's result type is derived once
// its operands have passed the compatibility check.
type ResultRule int

const (
	// ResultCommonPromoted is the type both operands converge on after
	// integer promotion and the usual arithmetic conversion.
	ResultCommonPromoted ResultRule = iota
	// ResultFixedSignedInt is always "signed int" regardless of operand
	// types (comparisons, logical operators, pointer subtraction).
	ResultFixedSignedInt
	// ResultPointerOfEither is whichever operand is the pointer, for
	// pointer+integer / integer+pointer arithmetic.
	ResultPointerOfEither
)

type operandShape int

const (
	shapeBasic operandShape = iota
	shapePointer
)

func shapeOf(t *ctype.Type) (operandShape, bool) {
	switch {
	case t.IsVoid():
		// void is basic-shaped but carries no value; no binary operator
		// accepts it.
		return 0, false
	case t.IsBasic():
		return shapeBasic, true
	case t.IsPointer():
		return shapePointer, true
	default:
		return 0, false
	}
}

type opConstraintKey struct {
	Op    ast.BinaryOp
	Left  operandShape
	Right operandShape
}

type opConstraintRule struct {
	// RequireCompatible demands the two operands be compatible before
	// the result rule applies: a basic/basic pair is made compatible by
	// promotion and the usual arithmetic conversion, a pointer/pointer
	// pair must pass ctype.PointersCompatible.
	RequireCompatible bool
	Result            ResultRule
}

// operatorConstraints keeps the operand rules as data, not code: every
// (op, left-shape, right-shape) combination is an explicit entry
// rather than a chain of if-statements that could silently omit a
// case. A key absent from this map is not a legal combination of
// operator and operand shapes. The == and != rows are symmetric; both
// require operand compatibility.
var operatorConstraints = map[opConstraintKey]opConstraintRule{
	{ast.Add, shapeBasic, shapeBasic}:     {RequireCompatible: true, Result: ResultCommonPromoted},
	{ast.Add, shapePointer, shapeBasic}:   {Result: ResultPointerOfEither},
	{ast.Add, shapeBasic, shapePointer}:   {Result: ResultPointerOfEither},

	{ast.Sub, shapeBasic, shapeBasic}:     {RequireCompatible: true, Result: ResultCommonPromoted},
	{ast.Sub, shapePointer, shapeBasic}:   {Result: ResultPointerOfEither},
	{ast.Sub, shapePointer, shapePointer}: {RequireCompatible: true, Result: ResultFixedSignedInt},

	{ast.Mul, shapeBasic, shapeBasic}: {RequireCompatible: true, Result: ResultCommonPromoted},
	{ast.Div, shapeBasic, shapeBasic}: {RequireCompatible: true, Result: ResultCommonPromoted},
	{ast.Mod, shapeBasic, shapeBasic}: {RequireCompatible: true, Result: ResultCommonPromoted},

	{ast.BitAnd, shapeBasic, shapeBasic}: {RequireCompatible: true, Result: ResultCommonPromoted},
	{ast.BitOr, shapeBasic, shapeBasic}:  {RequireCompatible: true, Result: ResultCommonPromoted},
	{ast.BitXor, shapeBasic, shapeBasic}: {RequireCompatible: true, Result: ResultCommonPromoted},

	{ast.Lt, shapeBasic, shapeBasic}:     {RequireCompatible: true, Result: ResultFixedSignedInt},
	{ast.Lt, shapePointer, shapePointer}: {RequireCompatible: true, Result: ResultFixedSignedInt},
	{ast.Le, shapeBasic, shapeBasic}:     {RequireCompatible: true, Result: ResultFixedSignedInt},
	{ast.Le, shapePointer, shapePointer}: {RequireCompatible: true, Result: ResultFixedSignedInt},
	{ast.Gt, shapeBasic, shapeBasic}:     {RequireCompatible: true, Result: ResultFixedSignedInt},
	{ast.Gt, shapePointer, shapePointer}: {RequireCompatible: true, Result: ResultFixedSignedInt},
	{ast.Ge, shapeBasic, shapeBasic}:     {RequireCompatible: true, Result: ResultFixedSignedInt},
	{ast.Ge, shapePointer, shapePointer}: {RequireCompatible: true, Result: ResultFixedSignedInt},
	{ast.Eq, shapeBasic, shapeBasic}:     {RequireCompatible: true, Result: ResultFixedSignedInt},
	{ast.Eq, shapePointer, shapePointer}: {RequireCompatible: true, Result: ResultFixedSignedInt},
	{ast.Ne, shapeBasic, shapeBasic}:     {RequireCompatible: true, Result: ResultFixedSignedInt},
	{ast.Ne, shapePointer, shapePointer}: {RequireCompatible: true, Result: ResultFixedSignedInt},

	{ast.LogicalAnd, shapeBasic, shapeBasic}:     {Result: ResultFixedSignedInt},
	{ast.LogicalAnd, shapeBasic, shapePointer}:   {Result: ResultFixedSignedInt},
	{ast.LogicalAnd, shapePointer, shapeBasic}:   {Result: ResultFixedSignedInt},
	{ast.LogicalAnd, shapePointer, shapePointer}: {Result: ResultFixedSignedInt},
	{ast.LogicalOr, shapeBasic, shapeBasic}:      {Result: ResultFixedSignedInt},
	{ast.LogicalOr, shapeBasic, shapePointer}:    {Result: ResultFixedSignedInt},
	{ast.LogicalOr, shapePointer, shapeBasic}:    {Result: ResultFixedSignedInt},
	{ast.LogicalOr, shapePointer, shapePointer}:  {Result: ResultFixedSignedInt},
}

// lookupConstraint returns the rule for op applied to operands of the
// given types, and whether such a combination is legal at all.
func lookupConstraint(op ast.BinaryOp, left, right *ctype.Type) (opConstraintRule, bool) {
	ls, ok := shapeOf(left)
	if !ok {
		return opConstraintRule{}, false
	}
	rs, ok := shapeOf(right)
	if !ok {
		return opConstraintRule{}, false
	}
	rule, ok := operatorConstraints[opConstraintKey{Op: op, Left: ls, Right: rs}]
	return rule, ok
}

// operandsCompatible implements the table's notion of "compatible" for
// operand pairs that are not both basic (basic pairs are always made
// compatible by promotion and conversion): two pointers pass
// ctype.PointersCompatible's shape-only check, anything else fails.
func operandsCompatible(left, right *ctype.Type) bool {
	if left.IsPointer() && right.IsPointer() {
		return ctype.PointersCompatible(left, right)
	}
	return false
}
