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

// Package irgen lowers an analyzed AST into the three-address IR:
// objects for every declared variable and interned string, basic
// blocks linked by successor edges, and opcode-tagged instructions
// over virtual registers.
package irgen

import (
	"fmt"

	"accgo/ast"
	"accgo/ctype"
	"accgo/ir"
	"accgo/symtable"
	"accgo/utils"
)

// Generator carries the state threaded through lowering: the program
// under construction, the function/block currently being appended to,
// and bookkeeping that spans the whole translation unit (string
// interning, the function-name table used to resolve calls).
type Generator struct {
	program *ir.Program

	fn    *ir.Function
	block *ir.BasicBlock

	// objects maps a symbol to the Object backing its storage. Shared
	// across the whole translation unit: globals are registered once,
	// locals are registered when their enclosing function is lowered
	// and go out of scope with it (no two functions' symbols collide
	// since each symtable.Symbol is allocated fresh per declaration).
	objects map[*symtable.Symbol]*ir.Object

	// strings interns each distinct string literal once per translation
	// unit as a global object, keyed on its bytes.
	strings map[string]*ir.Object

	// functions resolves a call's callee by name. Populated for every
	// FunctionDecl (prototype or definition) in a first pass so mutual
	// recursion and forward references work; a body-less entry stays a
	// blockless stub never appended to Program.Functions.
	functions map[string]*ir.Function

	returnReg *ir.Register
	argRegs   []*ir.Register

	blockCounter int
}

// NewGenerator returns a Generator ready to lower one translation unit.
func NewGenerator() *Generator {
	return &Generator{
		program:   &ir.Program{},
		objects:   make(map[*symtable.Symbol]*ir.Object),
		strings:   make(map[string]*ir.Object),
		functions: make(map[string]*ir.Function),
	}
}

// Lower runs IR generation over an already-analyzed translation unit
// and returns the resulting program.
func (g *Generator) Lower(tu *ast.TranslationUnit) *ir.Program {
	for _, d := range tu.Decls {
		if fd, ok := d.(*ast.FunctionDecl); ok {
			g.functions[fd.Identifier] = &ir.Function{Name: fd.Identifier}
		}
	}
	for _, d := range tu.Decls {
		g.decl(d)
	}
	return g.program
}

func (g *Generator) emit(in *ir.Instruction) {
	g.block.Append(in)
}

func (g *Generator) newLabel(prefix string) string {
	g.blockCounter++
	return fmt.Sprintf("%s%d", prefix, g.blockCounter)
}

// -----------------------------------------------------------------------------
// Declarations

func (g *Generator) decl(d ast.Decl) {
	switch v := d.(type) {
	case *ast.ObjectDecl:
		g.objectDecl(v)
	case *ast.FunctionDecl:
		g.functionDecl(v)
	default:
		utils.ShouldNotReachHere()
	}
}

func (g *Generator) objectDecl(d *ast.ObjectDecl) {
	if d.Symbol == nil {
		// Elided by the analyzer after a redeclaration error.
		return
	}
	obj := g.newObjectFor(d.Symbol)
	if g.fn != nil {
		g.fn.Locals = append(g.fn.Locals, obj)
	} else {
		g.program.Globals = append(g.program.Globals, obj)
	}

	if !analyzed(d.Initializer) {
		return
	}
	if g.fn == nil {
		// File-scope initializers have no function to run in; emitting
		// their initial images belongs to the assembly emitter, which
		// reads the constant out of the declaration. Locals are
		// initialized in place below.
		return
	}
	val := g.lowerExpr(d.Initializer)
	g.storeToObject(obj, val, ctype.SizeOf(d.Type))
}

func (g *Generator) newObjectFor(sym *symtable.Symbol) *ir.Object {
	storage := ir.Local
	if sym.Address.Kind == symtable.Static {
		storage = ir.Global
	}
	obj := &ir.Object{
		Name:    sym.Name,
		Size:    ctype.SizeOf(sym.Type),
		Align:   ctype.AlignOf(sym.Type),
		Offset:  sym.Address.Offset,
		Storage: storage,
	}
	g.objects[sym] = obj
	return obj
}

func (g *Generator) functionDecl(d *ast.FunctionDecl) {
	if d.Body == nil {
		return
	}

	fn := g.functions[d.Identifier]
	fn.Name = d.Identifier
	g.program.Functions = append(g.program.Functions, fn)

	g.fn = fn
	g.returnReg = fn.PinRegister(ir.Return, 0)
	g.argRegs = nil
	g.block = fn.NewBlock(g.newLabel("entry"))

	for i, p := range d.Params {
		if p.Symbol == nil {
			continue
		}
		obj := g.newObjectFor(p.Symbol)
		fn.Locals = append(fn.Locals, obj)

		argReg := fn.PinRegister(ir.Argument, i)
		g.argRegs = append(g.argRegs, argReg)
		addr := g.fn.NewRegister(ir.Any)
		g.emit(&ir.Instruction{Op: ir.LOADA, Dest: addr, Obj: obj})
		g.emit(&ir.Instruction{Op: storeOpFor(obj.Size), Left: addr, Right: argReg})
	}

	g.stmt(d.Body)

	if g.block.Tail == nil || !g.block.Tail.Op.IsTerminator() {
		g.emit(&ir.Instruction{Op: ir.RETURN})
	}

	g.fn = nil
	g.block = nil
}

// -----------------------------------------------------------------------------
// Statements

func (g *Generator) stmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.DeclStmt:
		g.decl(v.Decl)
	case *ast.ExprStmt:
		if analyzed(v.Expr) {
			g.lowerExpr(v.Expr)
		}
	case *ast.BlockStmt:
		for _, child := range v.Stmts {
			g.stmt(child)
		}
	case *ast.WhileStmt:
		if analyzed(v.Cond) {
			g.whileStmt(v)
		}
	case *ast.IfStmt:
		if analyzed(v.Cond) {
			g.ifStmt(v)
		}
	case *ast.ReturnStmt:
		g.returnStmt(v)
	default:
		utils.ShouldNotReachHere()
	}
}

// analyzed reports whether the analyzer typed e successfully. An
// expression it diagnosed carries no type and is elided here rather
// than lowered; the diagnostics already block emission.
func analyzed(e ast.Expr) bool {
	return e != nil && e.Type() != nil
}

func (g *Generator) whileStmt(v *ast.WhileStmt) {
	header := g.fn.NewBlock(g.newLabel("while.header"))
	body := g.fn.NewBlock(g.newLabel("while.body"))
	exit := g.fn.NewBlock(g.newLabel("while.exit"))

	g.block.AddSuccessor(header)
	g.emit(&ir.Instruction{Op: ir.JUMP, JumpTrue: header})

	g.block = header
	cond := g.lowerExpr(v.Cond)
	header.AddSuccessor(body)
	header.AddSuccessor(exit)
	g.emit(&ir.Instruction{Op: ir.BRANCHZ, Left: cond, JumpTrue: body, JumpFalse: exit})

	g.block = body
	g.stmt(v.Body)
	body.AddSuccessor(header)
	g.emit(&ir.Instruction{Op: ir.JUMP, JumpTrue: header})

	g.block = exit
}

func (g *Generator) ifStmt(v *ast.IfStmt) {
	thenBlock := g.fn.NewBlock(g.newLabel("if.then"))
	joinBlock := g.fn.NewBlock(g.newLabel("if.end"))
	elseBlock := joinBlock
	if v.Else != nil {
		elseBlock = g.fn.NewBlock(g.newLabel("if.else"))
	}

	cond := g.lowerExpr(v.Cond)
	g.block.AddSuccessor(thenBlock)
	g.block.AddSuccessor(elseBlock)
	g.emit(&ir.Instruction{Op: ir.BRANCHZ, Left: cond, JumpTrue: thenBlock, JumpFalse: elseBlock})

	g.block = thenBlock
	g.stmt(v.Then)
	thenBlock.AddSuccessor(joinBlock)
	g.emit(&ir.Instruction{Op: ir.JUMP, JumpTrue: joinBlock})

	if v.Else != nil {
		g.block = elseBlock
		g.stmt(v.Else)
		elseBlock.AddSuccessor(joinBlock)
		g.emit(&ir.Instruction{Op: ir.JUMP, JumpTrue: joinBlock})
	}

	g.block = joinBlock
}

func (g *Generator) returnStmt(v *ast.ReturnStmt) {
	if analyzed(v.Value) {
		if val := g.lowerExpr(v.Value); val != nil {
			g.emit(&ir.Instruction{Op: ir.MOV, Dest: g.returnReg, Left: val})
		}
	}
	g.emit(&ir.Instruction{Op: ir.RETURN})
}

// -----------------------------------------------------------------------------
// Expressions - value context

// lowerExpr returns the register holding e's resulting value.
func (g *Generator) lowerExpr(e ast.Expr) *ir.Register {
	switch v := e.(type) {
	case *ast.PrimaryExpr:
		return g.primary(v)
	case *ast.BinaryExpr:
		return g.binary(v)
	case *ast.UnaryExpr:
		return g.unary(v)
	case *ast.PostfixExpr:
		return g.postfix(v)
	case *ast.CastExpr:
		return g.cast(v)
	case *ast.TertiaryExpr:
		return g.tertiary(v)
	case *ast.AssignExpr:
		return g.assign(v)
	default:
		utils.ShouldNotReachHere()
		return nil
	}
}

func (g *Generator) primary(v *ast.PrimaryExpr) *ir.Register {
	switch v.Kind {
	case ast.ConstantPrimary:
		dest := g.fn.NewRegister(ir.Any)
		g.emit(&ir.Instruction{Op: ir.LOADI, Dest: dest, HasImmediate: true, Immediate: v.Constant})
		return dest
	case ast.StringPrimary:
		obj := g.internString(v.String)
		dest := g.fn.NewRegister(ir.Any)
		g.emit(&ir.Instruction{Op: ir.LOADA, Dest: dest, Obj: obj})
		return dest
	case ast.IdentifierPrimary:
		addr := g.lowerAddr(v)
		t := v.Type()
		if t.IsArray() || t.IsFunction() {
			return addr
		}
		dest := g.fn.NewRegister(ir.Any)
		g.emit(&ir.Instruction{Op: loadOpFor(ctype.SizeOf(t)), Dest: dest, Left: addr})
		return dest
	default:
		utils.ShouldNotReachHere()
		return nil
	}
}

func (g *Generator) internString(s string) *ir.Object {
	if obj, ok := g.strings[s]; ok {
		return obj
	}
	obj := &ir.Object{
		Name:    fmt.Sprintf(".str%d", len(g.strings)),
		Size:    len(s) + 1,
		Align:   1,
		Storage: ir.Global,
	}
	g.strings[s] = obj
	g.program.Globals = append(g.program.Globals, obj)
	return obj
}

func (g *Generator) unary(v *ast.UnaryExpr) *ir.Register {
	switch v.Op {
	case ast.Plus:
		return g.lowerExpr(v.Right)
	case ast.Minus:
		r := g.lowerExpr(v.Right)
		zero := g.loadImmediate(0)
		dest := g.fn.NewRegister(ir.Any)
		g.emit(&ir.Instruction{Op: ir.SUB, Dest: dest, Left: zero, Right: r})
		return dest
	case ast.Not:
		r := g.lowerExpr(v.Right)
		dest := g.fn.NewRegister(ir.Any)
		g.emit(&ir.Instruction{Op: ir.NOT, Dest: dest, Left: r})
		return dest
	case ast.Flip:
		r := g.lowerExpr(v.Right)
		dest := g.fn.NewRegister(ir.Any)
		g.emit(&ir.Instruction{Op: ir.FLIP, Dest: dest, Left: r})
		return dest
	case ast.Deref:
		addr := g.lowerExpr(v.Right)
		dest := g.fn.NewRegister(ir.Any)
		g.emit(&ir.Instruction{Op: loadOpFor(ctype.SizeOf(v.Type())), Dest: dest, Left: addr})
		return dest
	case ast.AddrOf:
		return g.lowerAddr(v.Right)
	default:
		utils.ShouldNotReachHere()
		return nil
	}
}

func (g *Generator) postfix(v *ast.PostfixExpr) *ir.Register {
	switch v.Op {
	case ast.Index:
		addr := g.indexAddr(v)
		dest := g.fn.NewRegister(ir.Any)
		g.emit(&ir.Instruction{Op: loadOpFor(ctype.SizeOf(v.Type())), Dest: dest, Left: addr})
		return dest
	case ast.Call:
		return g.call(v)
	default:
		utils.ShouldNotReachHere()
		return nil
	}
}

func (g *Generator) indexAddr(v *ast.PostfixExpr) *ir.Register {
	base := g.lowerExpr(v.Left)
	idx := g.lowerExpr(v.Index)
	scaled := g.scaleByElementSize(idx, ctype.SizeOf(v.Type()))
	dest := g.fn.NewRegister(ir.Any)
	g.emit(&ir.Instruction{Op: ir.ADD, Dest: dest, Left: base, Right: scaled})
	return dest
}

func (g *Generator) call(v *ast.PostfixExpr) *ir.Register {
	primary, ok := v.Left.(*ast.PrimaryExpr)
	utils.Assert(ok && primary.Kind == ast.IdentifierPrimary, "call target must be a resolved identifier")
	callee, ok := g.functions[primary.Identifier]
	utils.Assert(ok, "call to undeclared function %q reached irgen", primary.Identifier)

	for i, argExpr := range v.Args {
		val := g.lowerExpr(argExpr)
		if val == nil {
			continue
		}
		argReg := g.argRegister(i)
		g.emit(&ir.Instruction{Op: ir.MOV, Dest: argReg, Left: val})
	}

	g.emit(&ir.Instruction{Op: ir.CALL, Dest: g.returnReg, Callee: callee})

	if v.Type().IsVoid() {
		return nil
	}
	dest := g.fn.NewRegister(ir.Any)
	g.emit(&ir.Instruction{Op: ir.MOV, Dest: dest, Left: g.returnReg})
	return dest
}

func (g *Generator) argRegister(i int) *ir.Register {
	for len(g.argRegs) <= i {
		g.argRegs = append(g.argRegs, g.fn.PinRegister(ir.Argument, len(g.argRegs)))
	}
	return g.argRegs[i]
}

func (g *Generator) cast(v *ast.CastExpr) *ir.Register {
	r := g.lowerExpr(v.Right)
	to := v.To
	from := v.Right.Type()
	if to.IsBasic() && from.IsBasic() {
		toSize := ctype.SizeOf(to)
		fromSize := ctype.SizeOf(from)
		if toSize < fromSize && ctype.IsSigned(to) && (toSize == 1 || toSize == 2) {
			dest := g.fn.NewRegister(ir.Any)
			op := ir.SEXT16
			if toSize == 1 {
				op = ir.SEXT8
			}
			g.emit(&ir.Instruction{Op: op, Dest: dest, Left: r})
			return dest
		}
	}
	return r
}

func (g *Generator) tertiary(v *ast.TertiaryExpr) *ir.Register {
	cond := g.lowerExpr(v.Cond)
	result := g.fn.NewRegister(ir.Any)

	thenBlock := g.fn.NewBlock(g.newLabel("cond.then"))
	elseBlock := g.fn.NewBlock(g.newLabel("cond.else"))
	joinBlock := g.fn.NewBlock(g.newLabel("cond.end"))

	g.block.AddSuccessor(thenBlock)
	g.block.AddSuccessor(elseBlock)
	g.emit(&ir.Instruction{Op: ir.BRANCHZ, Left: cond, JumpTrue: thenBlock, JumpFalse: elseBlock})

	g.block = thenBlock
	thenVal := g.lowerExpr(v.Then)
	g.emit(&ir.Instruction{Op: ir.MOV, Dest: result, Left: thenVal})
	thenBlock.AddSuccessor(joinBlock)
	g.emit(&ir.Instruction{Op: ir.JUMP, JumpTrue: joinBlock})

	g.block = elseBlock
	elseVal := g.lowerExpr(v.Else)
	g.emit(&ir.Instruction{Op: ir.MOV, Dest: result, Left: elseVal})
	elseBlock.AddSuccessor(joinBlock)
	g.emit(&ir.Instruction{Op: ir.JUMP, JumpTrue: joinBlock})

	g.block = joinBlock
	return result
}

func (g *Generator) assign(v *ast.AssignExpr) *ir.Register {
	rval := g.lowerExpr(v.Right)
	addr := g.lowerAddr(v.Left)
	g.emit(&ir.Instruction{Op: storeOpFor(ctype.SizeOf(v.Left.Type())), Left: addr, Right: rval})
	return rval
}

// -----------------------------------------------------------------------------
// Expressions - address context (lvalues)

// lowerAddr returns a register holding the address of e, which must be
// one of the lvalue shapes the analyzer accepts: an identifier, a
// dereference, or an index expression.
func (g *Generator) lowerAddr(e ast.Expr) *ir.Register {
	switch v := e.(type) {
	case *ast.PrimaryExpr:
		utils.Assert(v.Kind == ast.IdentifierPrimary, "lowerAddr: not an identifier")
		obj := g.objects[v.Symbol]
		dest := g.fn.NewRegister(ir.Any)
		g.emit(&ir.Instruction{Op: ir.LOADA, Dest: dest, Obj: obj})
		return dest
	case *ast.UnaryExpr:
		utils.Assert(v.Op == ast.Deref, "lowerAddr: unary must be a dereference")
		return g.lowerExpr(v.Right)
	case *ast.PostfixExpr:
		utils.Assert(v.Op == ast.Index, "lowerAddr: postfix must be an index")
		return g.indexAddr(v)
	default:
		utils.ShouldNotReachHere()
		return nil
	}
}

// -----------------------------------------------------------------------------
// Binary operators

var binaryOpcodes = map[ast.BinaryOp]ir.Opcode{
	ast.Add:    ir.ADD,
	ast.Sub:    ir.SUB,
	ast.Mul:    ir.MUL,
	ast.Div:    ir.DIV,
	ast.Mod:    ir.MOD,
	ast.BitAnd: ir.AND,
	ast.BitOr:  ir.OR,
	ast.BitXor: ir.XOR,
}

func (g *Generator) binary(v *ast.BinaryExpr) *ir.Register {
	switch v.Op {
	case ast.LogicalAnd:
		return g.logicalAnd(v)
	case ast.LogicalOr:
		return g.logicalOr(v)
	case ast.Eq:
		return g.compareEqNe(v, false)
	case ast.Ne:
		return g.compareEqNe(v, true)
	case ast.Lt:
		return g.compareLtLe(v, ir.LT, false)
	case ast.Le:
		return g.compareLtLe(v, ir.LE, false)
	case ast.Gt:
		return g.compareLtLe(v, ir.LT, true)
	case ast.Ge:
		return g.compareLtLe(v, ir.LE, true)
	}

	leftType, rightType := v.Left.Type(), v.Right.Type()
	l := g.lowerExpr(v.Left)
	r := g.lowerExpr(v.Right)

	if (v.Op == ast.Add || v.Op == ast.Sub) && leftType.IsPointer() != rightType.IsPointer() {
		return g.pointerArith(v.Op, l, r, leftType, rightType)
	}
	if v.Op == ast.Sub && leftType.IsPointer() && rightType.IsPointer() {
		diff := g.fn.NewRegister(ir.Any)
		g.emit(&ir.Instruction{Op: ir.SUB, Dest: diff, Left: l, Right: r})
		elemSize := g.loadImmediate(int64(ctype.SizeOf(leftType.Child)))
		dest := g.fn.NewRegister(ir.Any)
		g.emit(&ir.Instruction{Op: ir.DIV, Dest: dest, Left: diff, Right: elemSize})
		return dest
	}

	dest := g.fn.NewRegister(ir.Any)
	g.emit(&ir.Instruction{Op: binaryOpcodes[v.Op], Dest: dest, Left: l, Right: r})
	return dest
}

func (g *Generator) pointerArith(op ast.BinaryOp, l, r *ir.Register, leftType, rightType *ctype.Type) *ir.Register {
	var ptrReg, intReg *ir.Register
	var pointee *ctype.Type
	if leftType.IsPointer() {
		ptrReg, intReg, pointee = l, r, leftType.Child
	} else {
		ptrReg, intReg, pointee = r, l, rightType.Child
	}
	scaled := g.scaleByElementSize(intReg, ctype.SizeOf(pointee))
	dest := g.fn.NewRegister(ir.Any)
	opcode := ir.ADD
	if op == ast.Sub {
		opcode = ir.SUB
	}
	g.emit(&ir.Instruction{Op: opcode, Dest: dest, Left: ptrReg, Right: scaled})
	return dest
}

func (g *Generator) scaleByElementSize(reg *ir.Register, size int) *ir.Register {
	if size == 1 {
		return reg
	}
	factor := g.loadImmediate(int64(size))
	dest := g.fn.NewRegister(ir.Any)
	g.emit(&ir.Instruction{Op: ir.MUL, Dest: dest, Left: reg, Right: factor})
	return dest
}

func (g *Generator) compareLtLe(v *ast.BinaryExpr, op ir.Opcode, swap bool) *ir.Register {
	l := g.lowerExpr(v.Left)
	r := g.lowerExpr(v.Right)
	dest := g.fn.NewRegister(ir.Any)
	if swap {
		g.emit(&ir.Instruction{Op: op, Dest: dest, Left: r, Right: l})
	} else {
		g.emit(&ir.Instruction{Op: op, Dest: dest, Left: l, Right: r})
	}
	return dest
}

func (g *Generator) compareEqNe(v *ast.BinaryExpr, negate bool) *ir.Register {
	l := g.lowerExpr(v.Left)
	r := g.lowerExpr(v.Right)
	eq := g.fn.NewRegister(ir.Any)
	g.emit(&ir.Instruction{Op: ir.EQ, Dest: eq, Left: l, Right: r})
	if !negate {
		return eq
	}
	dest := g.fn.NewRegister(ir.Any)
	g.emit(&ir.Instruction{Op: ir.NOT, Dest: dest, Left: eq})
	return dest
}

// logicalAnd short-circuits: if the left operand is zero, the right
// operand's instructions never execute and the result is 0.
func (g *Generator) logicalAnd(v *ast.BinaryExpr) *ir.Register {
	cond := g.lowerExpr(v.Left)
	result := g.fn.NewRegister(ir.Any)

	rhsBlock := g.fn.NewBlock(g.newLabel("land.rhs"))
	falseBlock := g.fn.NewBlock(g.newLabel("land.false"))
	joinBlock := g.fn.NewBlock(g.newLabel("land.end"))

	g.block.AddSuccessor(rhsBlock)
	g.block.AddSuccessor(falseBlock)
	g.emit(&ir.Instruction{Op: ir.BRANCHZ, Left: cond, JumpTrue: rhsBlock, JumpFalse: falseBlock})

	g.block = rhsBlock
	rhs := g.lowerExpr(v.Right)
	boolRhs := g.normalizeBool(rhs)
	g.emit(&ir.Instruction{Op: ir.MOV, Dest: result, Left: boolRhs})
	rhsBlock.AddSuccessor(joinBlock)
	g.emit(&ir.Instruction{Op: ir.JUMP, JumpTrue: joinBlock})

	g.block = falseBlock
	zero := g.loadImmediate(0)
	g.emit(&ir.Instruction{Op: ir.MOV, Dest: result, Left: zero})
	falseBlock.AddSuccessor(joinBlock)
	g.emit(&ir.Instruction{Op: ir.JUMP, JumpTrue: joinBlock})

	g.block = joinBlock
	return result
}

// logicalOr short-circuits: if the left operand is nonzero, the right
// operand's instructions never execute and the result is 1.
func (g *Generator) logicalOr(v *ast.BinaryExpr) *ir.Register {
	cond := g.lowerExpr(v.Left)
	result := g.fn.NewRegister(ir.Any)

	trueBlock := g.fn.NewBlock(g.newLabel("lor.true"))
	rhsBlock := g.fn.NewBlock(g.newLabel("lor.rhs"))
	joinBlock := g.fn.NewBlock(g.newLabel("lor.end"))

	g.block.AddSuccessor(trueBlock)
	g.block.AddSuccessor(rhsBlock)
	g.emit(&ir.Instruction{Op: ir.BRANCHZ, Left: cond, JumpTrue: trueBlock, JumpFalse: rhsBlock})

	g.block = trueBlock
	one := g.loadImmediate(1)
	g.emit(&ir.Instruction{Op: ir.MOV, Dest: result, Left: one})
	trueBlock.AddSuccessor(joinBlock)
	g.emit(&ir.Instruction{Op: ir.JUMP, JumpTrue: joinBlock})

	g.block = rhsBlock
	rhs := g.lowerExpr(v.Right)
	boolRhs := g.normalizeBool(rhs)
	g.emit(&ir.Instruction{Op: ir.MOV, Dest: result, Left: boolRhs})
	rhsBlock.AddSuccessor(joinBlock)
	g.emit(&ir.Instruction{Op: ir.JUMP, JumpTrue: joinBlock})

	g.block = joinBlock
	return result
}

// normalizeBool reduces reg to 0/1 via double logical negation, since
// the source register may hold any nonzero value, not just 1.
func (g *Generator) normalizeBool(reg *ir.Register) *ir.Register {
	notOnce := g.fn.NewRegister(ir.Any)
	g.emit(&ir.Instruction{Op: ir.NOT, Dest: notOnce, Left: reg})
	notTwice := g.fn.NewRegister(ir.Any)
	g.emit(&ir.Instruction{Op: ir.NOT, Dest: notTwice, Left: notOnce})
	return notTwice
}

func (g *Generator) loadImmediate(v int64) *ir.Register {
	dest := g.fn.NewRegister(ir.Any)
	g.emit(&ir.Instruction{Op: ir.LOADI, Dest: dest, HasImmediate: true, Immediate: v})
	return dest
}

func (g *Generator) storeToObject(obj *ir.Object, val *ir.Register, size int) {
	addr := g.fn.NewRegister(ir.Any)
	g.emit(&ir.Instruction{Op: ir.LOADA, Dest: addr, Obj: obj})
	g.emit(&ir.Instruction{Op: storeOpFor(size), Left: addr, Right: val})
}

func loadOpFor(size int) ir.Opcode {
	switch size {
	case 1:
		return ir.LOAD8
	case 2:
		return ir.LOAD16
	default:
		return ir.LOAD32
	}
}

func storeOpFor(size int) ir.Opcode {
	switch size {
	case 1:
		return ir.STORE8
	case 2:
		return ir.STORE16
	default:
		return ir.STORE32
	}
}
