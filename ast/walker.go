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

import "accgo/utils"

// Walker drives a depth-first traversal of a TranslationUnit across
// all three node families, calling the Pre hook before a node's
// children are visited and the Post hook after. Any hook left nil is
// skipped.
type Walker struct {
	ExprPre  func(Expr)
	ExprPost func(Expr)
	StmtPre  func(Stmt)
	StmtPost func(Stmt)
	DeclPre  func(Decl)
	DeclPost func(Decl)
}

func (w *Walker) WalkTranslationUnit(tu *TranslationUnit) {
	for _, d := range tu.Decls {
		w.WalkDecl(d)
	}
}

func (w *Walker) WalkDecl(d Decl) {
	if d == nil {
		return
	}
	if w.DeclPre != nil {
		w.DeclPre(d)
	}
	switch v := d.(type) {
	case *ObjectDecl:
		if v.Initializer != nil {
			w.WalkExpr(v.Initializer)
		}
	case *FunctionDecl:
		if v.Body != nil {
			w.WalkStmt(v.Body)
		}
	default:
		utils.ShouldNotReachHere()
	}
	if w.DeclPost != nil {
		w.DeclPost(d)
	}
}

func (w *Walker) WalkStmt(s Stmt) {
	if s == nil {
		return
	}
	if w.StmtPre != nil {
		w.StmtPre(s)
	}
	switch v := s.(type) {
	case *DeclStmt:
		w.WalkDecl(v.Decl)
	case *ExprStmt:
		w.WalkExpr(v.Expr)
	case *BlockStmt:
		for _, child := range v.Stmts {
			w.WalkStmt(child)
		}
	case *WhileStmt:
		w.WalkExpr(v.Cond)
		w.WalkStmt(v.Body)
	case *IfStmt:
		w.WalkExpr(v.Cond)
		w.WalkStmt(v.Then)
		if v.Else != nil {
			w.WalkStmt(v.Else)
		}
	case *ReturnStmt:
		if v.Value != nil {
			w.WalkExpr(v.Value)
		}
	default:
		utils.ShouldNotReachHere()
	}
	if w.StmtPost != nil {
		w.StmtPost(s)
	}
}

func (w *Walker) WalkExpr(e Expr) {
	if e == nil {
		return
	}
	if w.ExprPre != nil {
		w.ExprPre(e)
	}
	switch v := e.(type) {
	case *BinaryExpr:
		w.WalkExpr(v.Left)
		w.WalkExpr(v.Right)
	case *UnaryExpr:
		w.WalkExpr(v.Right)
	case *PostfixExpr:
		w.WalkExpr(v.Left)
		for _, arg := range v.Args {
			w.WalkExpr(arg)
		}
		if v.Index != nil {
			w.WalkExpr(v.Index)
		}
	case *PrimaryExpr:
		// leaf
	case *CastExpr:
		w.WalkExpr(v.Right)
	case *TertiaryExpr:
		w.WalkExpr(v.Cond)
		w.WalkExpr(v.Then)
		w.WalkExpr(v.Else)
	case *AssignExpr:
		w.WalkExpr(v.Left)
		w.WalkExpr(v.Right)
	default:
		utils.ShouldNotReachHere()
	}
	if w.ExprPost != nil {
		w.ExprPost(e)
	}
}
