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

// BasicBlock is a straight-line run of instructions with 0-2 CFG
// successors. Predecessor links are maintained in lockstep so liveness
// can propagate backward without re-deriving them.
type BasicBlock struct {
	Index int
	Label string

	Head, Tail *Instruction

	Successors   []*BasicBlock
	Predecessors []*BasicBlock

	LiveEntry, LiveExit *utils.BitMap

	Function *Function
}

// Append adds in to the end of the block's instruction list.
func (b *BasicBlock) Append(in *Instruction) {
	in.Block = b
	if b.Tail == nil {
		b.Head, b.Tail = in, in
		return
	}
	in.Prev = b.Tail
	b.Tail.Next = in
	b.Tail = in
}

// InsertBefore splices in immediately before at, which must belong to
// this block. Used by spill fixup to materialize a spilled use.
func (b *BasicBlock) InsertBefore(at, in *Instruction) {
	utils.Assert(at.Block == b, "InsertBefore: at does not belong to this block")
	in.Block = b
	in.Prev = at.Prev
	in.Next = at
	if at.Prev != nil {
		at.Prev.Next = in
	} else {
		b.Head = in
	}
	at.Prev = in
}

// InsertAfter splices in immediately after at, which must belong to
// this block. Used by spill fixup to materialize a spilled definition.
func (b *BasicBlock) InsertAfter(at, in *Instruction) {
	utils.Assert(at.Block == b, "InsertAfter: at does not belong to this block")
	in.Block = b
	in.Next = at.Next
	in.Prev = at
	if at.Next != nil {
		at.Next.Prev = in
	} else {
		b.Tail = in
	}
	at.Next = in
}

// AddSuccessor links b -> to, maintaining to's predecessor list too.
func (b *BasicBlock) AddSuccessor(to *BasicBlock) {
	b.Successors = append(b.Successors, to)
	to.Predecessors = append(to.Predecessors, b)
}

// Instructions returns the block's instructions head-to-tail as a
// slice, for callers that don't need to mutate the list in place.
func (b *BasicBlock) Instructions() []*Instruction {
	var out []*Instruction
	for in := b.Head; in != nil; in = in.Next {
		out = append(out, in)
	}
	return out
}
