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
	"testing"

	"github.com/stretchr/testify/assert"
)

func ident(name string) *PrimaryExpr {
	return &PrimaryExpr{Kind: IdentifierPrimary, Identifier: name}
}

func TestWalkerVisitsInOrder(t *testing.T) {
	// x + y * 2
	expr := &BinaryExpr{
		Op:   Add,
		Left: ident("x"),
		Right: &BinaryExpr{
			Op:   Mul,
			Left: ident("y"),
			Right: &PrimaryExpr{Kind: ConstantPrimary, Constant: 2},
		},
	}

	var visited []string
	w := &Walker{
		ExprPre: func(e Expr) {
			switch v := e.(type) {
			case *BinaryExpr:
				visited = append(visited, v.Op.String())
			case *PrimaryExpr:
				if v.Kind == IdentifierPrimary {
					visited = append(visited, v.Identifier)
				} else {
					visited = append(visited, "const")
				}
			}
		},
	}
	w.WalkExpr(expr)

	assert.Equal(t, []string{"+", "x", "*", "y", "const"}, visited)
}

func TestWalkerDescendsIntoBlocksAndDecls(t *testing.T) {
	body := &BlockStmt{
		Stmts: []Stmt{
			&DeclStmt{Decl: &ObjectDecl{Identifier: "x"}},
			&ExprStmt{Expr: ident("x")},
			&ReturnStmt{Value: ident("x")},
		},
	}
	fn := &FunctionDecl{Identifier: "main", Body: body}
	tu := &TranslationUnit{Decls: []Decl{fn}}

	var stmtCount, exprCount, declCount int
	w := &Walker{
		StmtPre: func(Stmt) { stmtCount++ },
		ExprPre: func(Expr) { exprCount++ },
		DeclPre: func(Decl) { declCount++ },
	}
	w.WalkTranslationUnit(tu)

	assert.Equal(t, 2, declCount) // the FunctionDecl plus the nested ObjectDecl
	assert.Equal(t, 4, stmtCount) // block + decl-stmt + expr-stmt + return-stmt
	assert.Equal(t, 2, exprCount) // the ExprStmt's ident + the ReturnStmt's ident
}
