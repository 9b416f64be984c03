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

import "accgo/utils"

// Function is one lowered function: its locals, its basic blocks in
// head-to-tail order, every virtual register it allocated, and the
// stack frame size (grown by spill fixup).
type Function struct {
	Name      string
	Locals    []*Object
	Blocks    []*BasicBlock
	Registers []*Register
	StackSize int

	nextBlockIndex int
}

// NewBlock appends a fresh, empty block labeled label and returns it.
func (f *Function) NewBlock(label string) *BasicBlock {
	b := &BasicBlock{Index: f.nextBlockIndex, Label: label, Function: f}
	f.nextBlockIndex++
	f.Blocks = append(f.Blocks, b)
	return b
}

// NewRegister allocates a fresh register of the given kind, assigns it
// the next index in that kind's pool unless the caller overrides it
// via PinRegister, and tracks it on the function so liveness and
// regalloc can enumerate every register once lowering is done.
func (f *Function) NewRegister(kind RegKind) *Register {
	r := NewRegister(kind, f.nextIndexFor(kind))
	r.Slot = len(f.Registers)
	f.Registers = append(f.Registers, r)
	return r
}

// PinRegister allocates a register with an explicit index, used for
// the Argument/Return pool whose indices are reserved machine slots
// rather than monotonic placeholders.
func (f *Function) PinRegister(kind RegKind, index int) *Register {
	r := NewRegister(kind, index)
	r.Slot = len(f.Registers)
	f.Registers = append(f.Registers, r)
	return r
}

func (f *Function) nextIndexFor(kind RegKind) int {
	n := 0
	for _, r := range f.Registers {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

// AnyRegisters returns every Any-kind register the function owns, the
// population liveness and register allocation operate over.
func (f *Function) AnyRegisters() []*Register {
	var out []*Register
	for _, r := range f.Registers {
		if r.Kind == Any {
			out = append(out, r)
		}
	}
	return out
}

// AllocateStackSlot grows the frame by 4 bytes, aligned, and returns
// the offset of the new slot. It backs register spill slots only; the
// analyzer assigns locals their addresses through symtable.Allocator,
// which does not call this.
func (f *Function) AllocateStackSlot() int {
	const slotSize = 4
	f.StackSize = utils.AlignUp(f.StackSize, slotSize)
	offset := f.StackSize
	f.StackSize += slotSize
	return offset
}
