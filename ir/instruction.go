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

package ir

import "fmt"

// Instruction is one three-address IR instruction: an opcode plus up
// to three register operands, an optional immediate, an optional
// Object reference (for address-of), and control-flow successors for
// the terminator opcodes. Instructions are linked into a BasicBlock as
// a doubly-linked list so spill fixup can splice new instructions
// immediately before or after an existing one without rebuilding the
// block.
type Instruction struct {
	Op Opcode

	Dest, Left, Right *Register

	HasImmediate bool
	Immediate    int64

	Obj *Object

	// JumpTrue is BRANCHZ's not-taken (nonzero) successor and JUMP's
	// sole successor; JumpFalse is BRANCHZ's taken-on-zero successor.
	JumpTrue, JumpFalse *BasicBlock
	Callee              *Function

	// Position is assigned by liveness's first pass: a monotonically
	// increasing index over the function's instructions in block order.
	Position int

	Prev, Next *Instruction
	Block      *BasicBlock
}

// Operands returns the non-nil register operands touched by this
// instruction's left/right source slots, in left-then-right order.
func (in *Instruction) Operands() []*Register {
	var regs []*Register
	if in.Left != nil {
		regs = append(regs, in.Left)
	}
	if in.Right != nil {
		regs = append(regs, in.Right)
	}
	return regs
}

func (in *Instruction) String() string {
	s := in.Op.String()
	if in.Dest != nil {
		s += fmt.Sprintf(" r%d,", in.Dest.Index)
	}
	if in.Left != nil {
		s += fmt.Sprintf(" r%d,", in.Left.Index)
	}
	if in.Right != nil {
		s += fmt.Sprintf(" r%d,", in.Right.Index)
	}
	if in.HasImmediate {
		s += fmt.Sprintf(" #%d,", in.Immediate)
	}
	if in.Obj != nil {
		s += fmt.Sprintf(" @%s,", in.Obj.Name)
	}
	if in.JumpTrue != nil {
		s += fmt.Sprintf(" ->%s,", in.JumpTrue.Label)
	}
	if in.JumpFalse != nil {
		s += fmt.Sprintf(" ->%s,", in.JumpFalse.Label)
	}
	if in.Callee != nil {
		s += fmt.Sprintf(" %s,", in.Callee.Name)
	}
	if len(s) > 0 && s[len(s)-1] == ',' {
		s = s[:len(s)-1]
	}
	return s
}
