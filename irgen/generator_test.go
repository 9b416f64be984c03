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

package irgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accgo/analysis"
	"accgo/ast"
	"accgo/ctype"
	"accgo/diag"
	"accgo/ir"
	"accgo/symtable"
)

func signedInt() *ctype.Type {
	t := ctype.NewBasic()
	t.SetSpecifier(ctype.SpecSignedInt)
	if err := ctype.Finalize(t); err != nil {
		panic(err)
	}
	return t
}

func ident(name string) *ast.PrimaryExpr {
	return &ast.PrimaryExpr{Kind: ast.IdentifierPrimary, Identifier: name}
}

func constant(v int64) *ast.PrimaryExpr {
	return &ast.PrimaryExpr{Kind: ast.ConstantPrimary, Constant: v}
}

// analyze runs the real analyzer over tu so symbols/casts/addresses are
// populated exactly the way irgen expects to find them.
func analyze(t *testing.T, tu *ast.TranslationUnit) {
	t.Helper()
	r := diag.NewReporter()
	a := analysis.NewAnalyzer(symtable.NewScope(nil), r)
	a.AnalyzeTranslationUnit(tu)
	require.False(t, r.HasErrors(), "analysis errors: %v", r.Records())
}

// Scenario 6: "while (x) { x = x - 1; }" produces three blocks
// (header/body/exit) with a back-edge from body to header.
func TestWhileLoopProducesThreeBlocksWithBackEdge(t *testing.T) {
	xDecl := &ast.ObjectDecl{Identifier: "x", Type: signedInt()}
	body := &ast.BlockStmt{Stmts: []ast.Stmt{
		&ast.ExprStmt{Expr: &ast.AssignExpr{
			Left:  ident("x"),
			Right: &ast.BinaryExpr{Op: ast.Sub, Left: ident("x"), Right: constant(1)},
		}},
	}}
	fn := &ast.FunctionDecl{
		Identifier: "f",
		Type:       ctype.NewFunction(signedInt(), nil),
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.WhileStmt{Cond: ident("x"), Body: body},
			&ast.ReturnStmt{},
		}},
	}
	require.NoError(t, ctype.Finalize(fn.Type))
	tu := &ast.TranslationUnit{Decls: []ast.Decl{xDecl, fn}}
	analyze(t, tu)

	g := NewGenerator()
	prog := g.Lower(tu)

	require.Len(t, prog.Functions, 1)
	irFn := prog.Functions[0]

	var labels []string
	for _, b := range irFn.Blocks {
		labels = append(labels, b.Label)
	}
	// entry, while.header, while.body, while.exit (the trailing
	// return statement lowers into while.exit, no extra block is needed).
	require.Len(t, labels, 4, "blocks: %v", labels)

	header := irFn.Blocks[1]
	bodyBlock := irFn.Blocks[2]

	foundBackEdge := false
	for _, succ := range bodyBlock.Successors {
		if succ == header {
			foundBackEdge = true
		}
	}
	assert.True(t, foundBackEdge, "body block should jump back to header")

	foundHeaderPred := false
	for _, pred := range header.Predecessors {
		if pred == bodyBlock {
			foundHeaderPred = true
		}
	}
	assert.True(t, foundHeaderPred, "header's predecessors should include the body block")
}

// Scenario 4: p[3] with p: pointer to int desugars via *(p + 3),
// lowering to a scaled add then a LOAD32.
func TestIndexDesugarsToScaledAddThenLoad(t *testing.T) {
	pDecl := &ast.ObjectDecl{Identifier: "p", Type: ctype.NewPointer(signedInt())}
	fn := &ast.FunctionDecl{
		Identifier: "f",
		Type:       ctype.NewFunction(signedInt(), nil),
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.PostfixExpr{Op: ast.Index, Left: ident("p"), Index: constant(3)}},
		}},
	}
	require.NoError(t, ctype.Finalize(fn.Type))
	tu := &ast.TranslationUnit{Decls: []ast.Decl{pDecl, fn}}
	analyze(t, tu)

	g := NewGenerator()
	prog := g.Lower(tu)
	irFn := prog.Functions[0]

	var ops []ir.Opcode
	for _, b := range irFn.Blocks {
		for _, in := range b.Instructions() {
			ops = append(ops, in.Op)
		}
	}

	require.Contains(t, ops, ir.MUL, "index scaling should emit a MUL by sizeof(int)")
	require.Contains(t, ops, ir.ADD, "index desugaring should emit an ADD for p + scaled-index")
	require.Contains(t, ops, ir.LOAD32, "reading the element should emit a LOAD32")
}

// Logical-and short-circuit: the right operand's instructions live in
// a block reachable only when the left operand is nonzero.
func TestLogicalAndShortCircuitsIntoSeparateBlock(t *testing.T) {
	aDecl := &ast.ObjectDecl{Identifier: "a", Type: signedInt()}
	bDecl := &ast.ObjectDecl{Identifier: "b", Type: signedInt()}
	fn := &ast.FunctionDecl{
		Identifier: "f",
		Type:       ctype.NewFunction(signedInt(), nil),
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{Op: ast.LogicalAnd, Left: ident("a"), Right: ident("b")}},
		}},
	}
	require.NoError(t, ctype.Finalize(fn.Type))
	tu := &ast.TranslationUnit{Decls: []ast.Decl{aDecl, bDecl, fn}}
	analyze(t, tu)

	g := NewGenerator()
	prog := g.Lower(tu)
	irFn := prog.Functions[0]

	entry := irFn.Blocks[0]
	for _, in := range entry.Instructions() {
		assert.NotEqual(t, "b", objNameOf(in), "entry block must not reference b before the branch")
	}

	var sawBranch bool
	for _, in := range entry.Instructions() {
		if in.Op == ir.BRANCHZ {
			sawBranch = true
		}
	}
	assert.True(t, sawBranch, "entry block should end in a BRANCHZ over the left operand")
}

func objNameOf(in *ir.Instruction) string {
	if in.Obj == nil {
		return ""
	}
	return in.Obj.Name
}

// String literals are interned once per translation unit even when an
// identical literal appears more than once.
func TestStringLiteralsInternedOnce(t *testing.T) {
	fn := &ast.FunctionDecl{
		Identifier: "f",
		Type:       ctype.NewFunction(signedInt(), nil),
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.ExprStmt{Expr: &ast.PrimaryExpr{Kind: ast.StringPrimary, String: "hi"}},
			&ast.ExprStmt{Expr: &ast.PrimaryExpr{Kind: ast.StringPrimary, String: "hi"}},
			&ast.ReturnStmt{},
		}},
	}
	require.NoError(t, ctype.Finalize(fn.Type))
	tu := &ast.TranslationUnit{Decls: []ast.Decl{fn}}
	analyze(t, tu)

	g := NewGenerator()
	prog := g.Lower(tu)

	count := 0
	for _, obj := range prog.Globals {
		if obj.Size == 3 { // "hi\0"
			count++
		}
	}
	assert.Equal(t, 1, count, "the same literal should be interned exactly once")
}
