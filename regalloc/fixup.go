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

package regalloc

import "accgo/ir"

// fixup rewrites every instruction so no Spill-kind register remains
// as an operand: a spilled left/right use is preceded by a stack-
// offset load into a scratch register, and a spilled dest is
// retargeted to a scratch register whose value is stored back
// immediately after. The four scratch registers are fresh Any
// registers bound to cfg's reserved indices; they are never themselves
// subject to allocation.
func fixup(fn *ir.Function, cfg Config) {
	scratch := cfg.Scratch()
	addrReg := fn.PinRegister(ir.Any, scratch[0])  // S0
	destReg := fn.PinRegister(ir.Any, scratch[1])  // S1
	leftReg := fn.PinRegister(ir.Any, scratch[2])  // S_L
	rightReg := fn.PinRegister(ir.Any, scratch[3]) // S_R

	for _, b := range fn.Blocks {
		for in := b.Head; in != nil; in = in.Next {
			if in.Left != nil && in.Left.Kind == ir.Spill {
				loadSpilled(b, in, in.Left.SpillOffset, addrReg, leftReg)
				in.Left = leftReg
			}
			if in.Right != nil && in.Right.Kind == ir.Spill {
				loadSpilled(b, in, in.Right.SpillOffset, addrReg, rightReg)
				in.Right = rightReg
			}
			if in.Dest != nil && in.Dest.Kind == ir.Spill {
				offset := in.Dest.SpillOffset
				in.Dest = destReg
				storeSpilled(b, in, offset, addrReg, destReg)
			}
		}
	}
}

// loadSpilled splices "LOADSO addrReg, offset; LOAD32 valueReg, addrReg"
// immediately before at.
func loadSpilled(b *ir.BasicBlock, at *ir.Instruction, offset int, addrReg, valueReg *ir.Register) {
	loadAddr := &ir.Instruction{Op: ir.LOADSO, Dest: addrReg, HasImmediate: true, Immediate: int64(offset)}
	loadVal := &ir.Instruction{Op: ir.LOAD32, Dest: valueReg, Left: addrReg}
	b.InsertBefore(at, loadAddr)
	b.InsertBefore(at, loadVal)
}

// storeSpilled splices "LOADSO addrReg, offset; STORE32 addrReg, valueReg"
// immediately after at.
func storeSpilled(b *ir.BasicBlock, at *ir.Instruction, offset int, addrReg, valueReg *ir.Register) {
	storeAddr := &ir.Instruction{Op: ir.LOADSO, Dest: addrReg, HasImmediate: true, Immediate: int64(offset)}
	storeVal := &ir.Instruction{Op: ir.STORE32, Left: addrReg, Right: valueReg}
	b.InsertAfter(at, storeAddr)
	b.InsertAfter(storeAddr, storeVal)
}
