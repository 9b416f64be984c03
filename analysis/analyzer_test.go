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

package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accgo/ast"
	"accgo/ctype"
	"accgo/diag"
	"accgo/symtable"
)

func newAnalyzer() (*Analyzer, *diag.Reporter) {
	r := diag.NewReporter()
	global := symtable.NewScope(nil)
	return NewAnalyzer(global, r), r
}

func basic(spec ctype.Specifier) *ctype.Type {
	t := ctype.NewBasic()
	t.SetSpecifier(spec)
	if err := ctype.Finalize(t); err != nil {
		panic(err)
	}
	return t
}

func ident(name string) *ast.PrimaryExpr {
	return &ast.PrimaryExpr{Kind: ast.IdentifierPrimary, Identifier: name}
}

// Scenario 1: "int a; int a;" reports exactly one "Previously declared"
// error.
func TestDuplicateDeclarationInSameScope(t *testing.T) {
	a, r := newAnalyzer()
	tu := &ast.TranslationUnit{Decls: []ast.Decl{
		&ast.ObjectDecl{Identifier: "a", Type: basic(ctype.SpecSignedInt)},
		&ast.ObjectDecl{Identifier: "a", Type: basic(ctype.SpecSignedInt)},
	}}
	a.AnalyzeTranslationUnit(tu)

	require.True(t, r.HasErrors())
	recs := r.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "Previously declared identifier 'a'", recs[0].Title)
}

// Scenario 2: "char a; short b; int c; long d;" at translation-unit
// scope gets addresses 0, 2, 4, 8 with Static kind.
func TestStaticAddressPacking(t *testing.T) {
	a, r := newAnalyzer()
	declA := &ast.ObjectDecl{Identifier: "a", Type: basic(ctype.SpecChar)}
	declB := &ast.ObjectDecl{Identifier: "b", Type: basic(ctype.SpecSigned | ctype.SpecShort | ctype.SpecInt)}
	declC := &ast.ObjectDecl{Identifier: "c", Type: basic(ctype.SpecSignedInt)}
	declD := &ast.ObjectDecl{Identifier: "d", Type: basic(ctype.SpecSigned | ctype.SpecLong | ctype.SpecInt)}
	tu := &ast.TranslationUnit{Decls: []ast.Decl{declA, declB, declC, declD}}
	a.AnalyzeTranslationUnit(tu)

	require.False(t, r.HasErrors())
	assert.Equal(t, symtable.Address{Kind: symtable.Static, Offset: 0}, declA.Symbol.Address)
	assert.Equal(t, symtable.Address{Kind: symtable.Static, Offset: 2}, declB.Symbol.Address)
	assert.Equal(t, symtable.Address{Kind: symtable.Static, Offset: 4}, declC.Symbol.Address)
	assert.Equal(t, symtable.Address{Kind: symtable.Static, Offset: 8}, declD.Symbol.Address)
}

// Scenario 3: "x + y" with x: signed char, y: signed int becomes
// Binary(Cast(x, signed int), +, y) with result type signed int.
func TestIntegerPromotionInsertsCast(t *testing.T) {
	a, r := newAnalyzer()
	xDecl := &ast.ObjectDecl{Identifier: "x", Type: basic(ctype.SpecSignedChar)}
	yDecl := &ast.ObjectDecl{Identifier: "y", Type: basic(ctype.SpecSignedInt)}
	tu := &ast.TranslationUnit{Decls: []ast.Decl{xDecl, yDecl}}
	a.AnalyzeTranslationUnit(tu)
	require.False(t, r.HasErrors())

	expr := &ast.BinaryExpr{Op: ast.Add, Left: ident("x"), Right: ident("y")}
	resultType := a.Expr(expr, false)

	require.False(t, r.HasErrors())
	assert.True(t, ctype.Equal(resultType, ctype.SignedIntType()))

	leftCast, ok := expr.Left.(*ast.CastExpr)
	require.True(t, ok, "left operand should be wrapped in an inserted cast")
	assert.True(t, leftCast.Inserted)
	assert.True(t, ctype.Equal(leftCast.To, ctype.SignedIntType()))
	_, rightIsCast := expr.Right.(*ast.CastExpr)
	assert.False(t, rightIsCast, "signed int operand should not be re-cast")
}

func TestUndeclaredIdentifier(t *testing.T) {
	a, r := newAnalyzer()
	rt := a.Expr(ident("nope"), false)
	assert.Nil(t, rt)
	require.True(t, r.HasErrors())
	assert.Equal(t, "Undeclared identifier 'nope'", r.Records()[0].Title)
}

func TestInvalidLvalueOnConstant(t *testing.T) {
	a, r := newAnalyzer()
	c := &ast.PrimaryExpr{Kind: ast.ConstantPrimary, Constant: 1}
	a.Expr(c, true)
	require.True(t, r.HasErrors())
	assert.Equal(t, "Invalid lvalue", r.Records()[0].Title)
}

func TestDerefRequiresPointer(t *testing.T) {
	a, r := newAnalyzer()
	xDecl := &ast.ObjectDecl{Identifier: "x", Type: basic(ctype.SpecSignedInt)}
	a.AnalyzeTranslationUnit(&ast.TranslationUnit{Decls: []ast.Decl{xDecl}})
	require.False(t, r.HasErrors())

	deref := &ast.UnaryExpr{Op: ast.Deref, Right: ident("x")}
	rt := a.Expr(deref, false)
	assert.Nil(t, rt)
	require.True(t, r.HasErrors())
	assert.Equal(t, "Invalid Pointer dereference", r.Records()[0].Title)
}

func TestAssignmentCastNarrowsWithInsertedCast(t *testing.T) {
	a, r := newAnalyzer()
	xDecl := &ast.ObjectDecl{Identifier: "x", Type: basic(ctype.SpecSignedChar)}
	a.AnalyzeTranslationUnit(&ast.TranslationUnit{Decls: []ast.Decl{xDecl}})
	require.False(t, r.HasErrors())

	assign := &ast.AssignExpr{
		Left:  ident("x"),
		Right: &ast.PrimaryExpr{Kind: ast.ConstantPrimary, Constant: 5},
	}
	rt := a.Expr(assign, false)
	require.False(t, r.HasErrors())
	assert.True(t, ctype.Equal(rt, basic(ctype.SpecSignedChar)))

	cast, ok := assign.Right.(*ast.CastExpr)
	require.True(t, ok)
	assert.True(t, cast.Inserted)
}

// Scenario 5: a function body declaring 100 int locals packs them into
// Automatic storage at monotonically increasing 4-byte-aligned offsets
// 0, 4, ..., 396, for a total frame size of 400 bytes.
func TestAutomaticAddressPackingOfManyLocals(t *testing.T) {
	a, r := newAnalyzer()

	const n = 100
	decls := make([]*ast.ObjectDecl, n)
	stmts := make([]ast.Stmt, n)
	for i := 0; i < n; i++ {
		decls[i] = &ast.ObjectDecl{Identifier: fmt.Sprintf("v%d", i), Type: basic(ctype.SpecSignedInt)}
		stmts[i] = &ast.DeclStmt{Decl: decls[i]}
	}
	body := &ast.BlockStmt{Stmts: stmts}
	fnType := ctype.NewFunction(ctype.VoidType(), nil)
	require.NoError(t, ctype.Finalize(fnType))
	fnDecl := &ast.FunctionDecl{Identifier: "f", Type: fnType, Body: body}

	a.AnalyzeTranslationUnit(&ast.TranslationUnit{Decls: []ast.Decl{fnDecl}})
	require.False(t, r.HasErrors())

	for i, d := range decls {
		require.NotNil(t, d.Symbol)
		assert.Equal(t, symtable.Address{Kind: symtable.Automatic, Offset: i * 4}, d.Symbol.Address)
	}
}

func TestFunctionCallArityMismatch(t *testing.T) {
	a, r := newAnalyzer()
	fnType := ctype.NewFunction(ctype.SignedIntType(), []ctype.Param{
		{Name: "a", Type: ctype.SignedIntType()},
	})
	require.NoError(t, ctype.Finalize(fnType))
	fnDecl := &ast.FunctionDecl{Identifier: "f", Type: fnType}
	a.AnalyzeTranslationUnit(&ast.TranslationUnit{Decls: []ast.Decl{fnDecl}})
	require.False(t, r.HasErrors())

	call := &ast.PostfixExpr{Op: ast.Call, Left: ident("f"), Args: nil}
	a.Expr(call, false)
	require.True(t, r.HasErrors())
	assert.Equal(t, "Invalid number of arguments to function", r.Records()[0].Title)
}
