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

	"accgo/ast"
	"accgo/ctype"
	"accgo/diag"
	"accgo/symtable"
)

// allocatorState is the "Allocator" threaded through declaration and
// statement walks: which address-allocator backs the scope currently
// being declared into, and whether this is the translation-unit level
// (objects land in static storage) or a function body (automatic
// storage).
type allocatorState struct {
	alloc           *symtable.Allocator
	translationUnit bool
}

// Analyzer walks an AST in place, resolving identifiers against a
// symbol table, checking lvalue/operand constraints, inserting
// promotion/conversion/assignment casts, and allocating a storage
// address for every declared object. It has three recursive entry
// points, one per node family: Decl, Stmt, and Expr.
type Analyzer struct {
	Reporter *diag.Reporter

	global *symtable.Scope
	scope  *symtable.Scope

	staticAlloc *symtable.Allocator
}

// NewAnalyzer returns an Analyzer rooted at the given (already created)
// global scope, reporting through r.
func NewAnalyzer(global *symtable.Scope, r *diag.Reporter) *Analyzer {
	return &Analyzer{
		Reporter:    r,
		global:      global,
		scope:       global,
		staticAlloc: symtable.NewAllocator(symtable.Static),
	}
}

// AnalyzeTranslationUnit walks every top-level declaration against the
// translation unit's static allocator and global scope.
func (a *Analyzer) AnalyzeTranslationUnit(tu *ast.TranslationUnit) {
	state := allocatorState{alloc: a.staticAlloc, translationUnit: true}
	for _, d := range tu.Decls {
		a.Decl(d, state)
	}
}

func (a *Analyzer) errorf(pos ast.Pos, title string, format string, args ...interface{}) {
	desc := ""
	if format != "" {
		desc = fmt.Sprintf(format, args...)
	}
	a.Reporter.Report(diag.Analysis, pos.Line, pos.Col, title, desc)
}

// -----------------------------------------------------------------------------
// Declarations

// Decl walks one declaration, registering it in the current scope,
// allocating its address (unless it's a function, which never
// allocates storage for itself), and recursing into an initializer or
// function body.
func (a *Analyzer) Decl(d ast.Decl, state allocatorState) {
	switch v := d.(type) {
	case *ast.ObjectDecl:
		a.objectDecl(v, state)
	case *ast.FunctionDecl:
		a.functionDecl(v, state)
	default:
		panic(fmt.Sprintf("analysis: unhandled decl %T", d))
	}
}

func (a *Analyzer) objectDecl(d *ast.ObjectDecl, state allocatorState) {
	sym := &symtable.Symbol{Name: d.Identifier, Type: d.Type}

	if err := a.scope.Put(d.Identifier, sym); err != nil {
		a.errorf(d.P, fmt.Sprintf("Previously declared identifier '%s'", d.Identifier), "")
		return
	}

	state.alloc.Allocate(sym)
	d.Symbol = sym

	if d.Initializer != nil {
		rt := a.Expr(d.Initializer, false)
		sym.Defined = true
		if rt == nil {
			return
		}
		casted, ok := assignCast(d.Initializer, rt, d.Type)
		if !ok {
			a.errorf(d.P, "Invalid initializer value",
				"Cannot assign type '%s' to type '%s'", rt, d.Type)
			return
		}
		d.Initializer = casted
	}
}

func (a *Analyzer) functionDecl(d *ast.FunctionDecl, state allocatorState) {
	sym := &symtable.Symbol{Name: d.Identifier, Type: d.Type}
	if err := a.scope.Put(d.Identifier, sym); err != nil {
		a.errorf(d.P, fmt.Sprintf("Previously declared identifier '%s'", d.Identifier), "")
		return
	}
	d.Symbol = sym

	if d.Body == nil {
		return
	}
	sym.Defined = true

	outerScope := a.scope
	fnAlloc := symtable.NewAllocator(symtable.Automatic)
	a.scope = symtable.NewScope(outerScope)
	for i, p := range d.Params {
		if p.Name == "" {
			continue
		}
		psym := &symtable.Symbol{Name: p.Name, Type: p.Type, Defined: true}
		if err := a.scope.Put(p.Name, psym); err != nil {
			a.errorf(d.P, fmt.Sprintf("Previously declared identifier '%s'", p.Name), "")
			continue
		}
		fnAlloc.Allocate(psym)
		d.Params[i].Symbol = psym
	}

	bodyState := allocatorState{alloc: fnAlloc, translationUnit: false}
	a.Stmt(d.Body, bodyState)

	a.scope = outerScope
}

func (a *Analyzer) blockScope(body *ast.BlockStmt, state allocatorState, f func()) {
	outer := a.scope
	a.scope = symtable.NewScope(outer)
	f()
	a.scope = outer
}

// -----------------------------------------------------------------------------
// Statements

func (a *Analyzer) Stmt(s ast.Stmt, state allocatorState) {
	switch v := s.(type) {
	case *ast.DeclStmt:
		a.Decl(v.Decl, state)
	case *ast.ExprStmt:
		a.Expr(v.Expr, false)
	case *ast.BlockStmt:
		a.blockScope(v, state, func() {
			for _, child := range v.Stmts {
				a.Stmt(child, state)
			}
		})
	case *ast.WhileStmt:
		a.Expr(v.Cond, false)
		a.Stmt(v.Body, state)
	case *ast.IfStmt:
		a.Expr(v.Cond, false)
		a.Stmt(v.Then, state)
		if v.Else != nil {
			a.Stmt(v.Else, state)
		}
	case *ast.ReturnStmt:
		if v.Value != nil {
			a.Expr(v.Value, false)
		}
	default:
		panic(fmt.Sprintf("analysis: unhandled stmt %T", s))
	}
}

// -----------------------------------------------------------------------------
// Expressions

// Expr walks e, returning its resulting type. A nil return means the
// type is undefined by an already-reported error, short-circuiting
// further checks on the enclosing expression. needLvalue demands that
// e designate a modifiable lvalue.
func (a *Analyzer) Expr(e ast.Expr, needLvalue bool) *ctype.Type {
	switch v := e.(type) {
	case *ast.PrimaryExpr:
		return a.primary(v, needLvalue)
	case *ast.BinaryExpr:
		return a.binary(v)
	case *ast.UnaryExpr:
		return a.unary(v, needLvalue)
	case *ast.PostfixExpr:
		return a.postfix(v, needLvalue)
	case *ast.CastExpr:
		if needLvalue {
			a.errorf(v.P, "Invalid lvalue", "")
			return nil
		}
		if a.Expr(v.Right, false) == nil {
			return nil
		}
		v.SetType(v.To)
		return v.To
	case *ast.TertiaryExpr:
		if needLvalue {
			a.errorf(v.P, "Invalid lvalue", "")
			return nil
		}
		condType := a.Expr(v.Cond, false)
		thenType := a.Expr(v.Then, false)
		elseType := a.Expr(v.Else, false)
		if condType == nil || thenType == nil || elseType == nil {
			return nil
		}
		v.SetType(thenType)
		return thenType
	case *ast.AssignExpr:
		return a.assign(v)
	default:
		panic(fmt.Sprintf("analysis: unhandled expr %T", e))
	}
}

func (a *Analyzer) primary(v *ast.PrimaryExpr, needLvalue bool) *ctype.Type {
	switch v.Kind {
	case ast.ConstantPrimary:
		if needLvalue {
			a.errorf(v.P, "Invalid lvalue", "")
			return nil
		}
		t := ctype.SignedIntType()
		v.SetType(t)
		return t
	case ast.StringPrimary:
		if needLvalue {
			a.errorf(v.P, "Invalid lvalue", "")
			return nil
		}
		t := ctype.NewPointer(ctype.UnsignedCharType())
		v.SetType(t)
		return t
	case ast.IdentifierPrimary:
		sym := a.scope.Get(v.Identifier, true)
		if sym == nil {
			a.errorf(v.P, fmt.Sprintf("Undeclared identifier '%s'", v.Identifier), "")
			return nil
		}
		v.Symbol = sym
		v.SetType(sym.Type)
		return sym.Type
	default:
		panic("analysis: unhandled primary kind")
	}
}

func (a *Analyzer) assign(v *ast.AssignExpr) *ctype.Type {
	lt := a.Expr(v.Left, true)
	rt := a.Expr(v.Right, false)
	if lt == nil || rt == nil {
		return nil
	}
	casted, ok := assignCast(v.Right, rt, lt)
	if !ok {
		a.errorf(v.P, "Incompatible assignment",
			"Cannot assign type '%s' to type '%s'", rt, lt)
		return nil
	}
	v.Right = casted
	v.SetType(lt)
	return lt
}

func (a *Analyzer) unary(v *ast.UnaryExpr, needLvalue bool) *ctype.Type {
	switch v.Op {
	case ast.Deref:
		rt := a.Expr(v.Right, false)
		if rt == nil {
			return nil
		}
		if !rt.IsPointer() {
			a.errorf(v.P, "Invalid Pointer dereference", "")
			return nil
		}
		v.SetType(rt.Child)
		return rt.Child
	case ast.AddrOf:
		rt := a.Expr(v.Right, true)
		if rt == nil {
			return nil
		}
		t := ctype.NewPointer(rt)
		v.SetType(t)
		return t
	default: // Plus, Minus, Not, Flip
		if needLvalue {
			a.errorf(v.P, "Invalid lvalue", "")
			return nil
		}
		rt := a.Expr(v.Right, false)
		if rt == nil {
			return nil
		}
		if !rt.IsBasic() || rt.IsVoid() {
			a.errorf(v.P, fmt.Sprintf("Invalid operand to unary operator '%s'", v.Op), "")
			return nil
		}
		v.SetType(rt)
		return rt
	}
}

func (a *Analyzer) postfix(v *ast.PostfixExpr, needLvalue bool) *ctype.Type {
	switch v.Op {
	case ast.Index:
		// p[i] desugars as *(p + i): the left operand must be a
		// pointer and the result is its pointee type, exactly like
		// Unary Deref.
		lt := a.Expr(v.Left, false)
		it := a.Expr(v.Index, false)
		if lt == nil || it == nil {
			return nil
		}
		if !lt.IsPointer() {
			a.errorf(v.P, "Invalid Pointer dereference", "")
			return nil
		}
		v.SetType(lt.Child)
		return lt.Child
	case ast.Call:
		return a.call(v)
	default:
		panic("analysis: unhandled postfix op")
	}
}

func (a *Analyzer) call(v *ast.PostfixExpr) *ctype.Type {
	callee := a.Expr(v.Left, false)
	if callee == nil {
		return nil
	}
	if !callee.IsFunction() {
		a.errorf(v.P, "Cannot call a non-function value", "")
		return nil
	}

	params := callee.Params
	if len(v.Args) != len(params) {
		a.errorf(v.P, "Invalid number of arguments to function",
			"Expected %d, got %d", len(params), len(v.Args))
		return callee.Child
	}
	// An argument whose own analysis failed leaves the whole call
	// untyped, so downstream lowering elides it; an argument that is
	// merely incompatible keeps its type and the walk continues, so
	// every bad argument in the list is diagnosed in one run.
	bad := false
	for i, arg := range v.Args {
		at := a.Expr(arg, false)
		if at == nil {
			bad = true
			continue
		}
		casted, ok := assignCast(arg, at, params[i].Type)
		if !ok {
			a.errorf(v.P, "Incompatible argument type",
				"Cannot assign type '%s' to type '%s'", at, params[i].Type)
			continue
		}
		v.Args[i] = casted
	}
	if bad {
		return nil
	}
	v.SetType(callee.Child)
	return callee.Child
}

func (a *Analyzer) binary(v *ast.BinaryExpr) *ctype.Type {
	lt := a.Expr(v.Left, false)
	rt := a.Expr(v.Right, false)
	if lt == nil || rt == nil {
		return nil
	}

	rule, ok := lookupConstraint(v.Op, lt, rt)
	if !ok {
		a.errorf(v.P, fmt.Sprintf("Invalid operands to binary operator '%s'", v.Op),
			"left type '%s', right type '%s'", lt, rt)
		return nil
	}

	// Two basic operands are always convertible to a common type: promote
	// each below-int operand to signed int, then equalize the pair. The
	// compatibility requirement only rejects pointer pairs whose chains
	// don't match.
	var common *ctype.Type
	if lt.IsBasic() && rt.IsBasic() {
		v.Left = insertPromotion(v.Left, lt)
		lt = v.Left.Type()
		v.Right = insertPromotion(v.Right, rt)
		rt = v.Right.Type()
		if rule.RequireCompatible {
			common = usualArithmeticConversion(v, lt, rt)
		}
	} else if rule.RequireCompatible && !operandsCompatible(lt, rt) {
		a.errorf(v.P, fmt.Sprintf("Invalid operands to binary operator '%s'", v.Op),
			"left type '%s', right type '%s'", lt, rt)
		return nil
	}

	var result *ctype.Type
	switch rule.Result {
	case ResultFixedSignedInt:
		result = ctype.SignedIntType()
	case ResultPointerOfEither:
		if lt.IsPointer() {
			result = lt
		} else {
			result = rt
		}
	case ResultCommonPromoted:
		result = common
		if result == nil {
			result = lt
		}
	}
	v.SetType(result)
	return result
}

// insertPromotion wraps e in an inserted Cast to signed int if e's
// basic type ranks below signed int; int- and long-ranked operands,
// and void, pass through unchanged.
func insertPromotion(e ast.Expr, t *ctype.Type) ast.Expr {
	rank, ok := ctype.GetRank(t)
	if !ok {
		return e
	}
	if rank >= ctype.RankSignedInt {
		return e
	}
	target := ctype.SignedIntType()
	cast := &ast.CastExpr{ExprBase: ast.ExprBase{P: e.Pos()}, To: target, Right: e, Inserted: true}
	cast.SetType(target)
	return cast
}

// usualArithmeticConversion equalizes two already-promoted basic
// operands: identical specifiers return either side unchanged;
// otherwise the lower-ranked side of the originating BinaryExpr is
// wrapped in an inserted Cast to the higher-ranked type, and the
// higher-ranked type is returned.
func usualArithmeticConversion(v *ast.BinaryExpr, lt, rt *ctype.Type) *ctype.Type {
	if ctype.Equal(lt, rt) {
		return lt
	}
	lr, _ := ctype.GetRank(lt)
	rr, _ := ctype.GetRank(rt)
	if lr >= rr {
		v.Right = wrapCast(v.Right, lt)
		return lt
	}
	v.Left = wrapCast(v.Left, rt)
	return rt
}

func wrapCast(e ast.Expr, to *ctype.Type) ast.Expr {
	cast := &ast.CastExpr{ExprBase: ast.ExprBase{P: e.Pos()}, To: to, Right: e, Inserted: true}
	cast.SetType(to)
	return cast
}

// assignCast coerces the right-hand side of an assignment to the
// left-hand type: walk both pointer chains in lockstep; basic-to-basic
// with matching specifiers needs no cast; basic-to-basic with
// differing specifiers inserts a cast (the single place narrowing
// implicit conversions are materialized); function-to-function
// succeeds unconditionally (prototype equivalence assumed); anything
// else fails.
func assignCast(rightExpr ast.Expr, r, l *ctype.Type) (ast.Expr, bool) {
	lc, rc := l, r
	for lc.IsPointer() && rc.IsPointer() {
		lc, rc = lc.Child, rc.Child
	}
	switch {
	case lc.IsBasic() && rc.IsBasic():
		if lc.Specifier == rc.Specifier {
			return rightExpr, true
		}
		if lc.IsVoid() || rc.IsVoid() {
			return rightExpr, false
		}
		return wrapCast(rightExpr, l), true
	case lc.IsFunction() && rc.IsFunction():
		return rightExpr, true
	default:
		return rightExpr, false
	}
}
