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

// Package liveness runs the bitset-based backward data-flow analysis
// over one function's control-flow graph that produces each virtual
// register's live interval.
package liveness

import (
	"github.com/samber/lo"

	"accgo/ir"
	"accgo/utils"
)

// Analyze runs liveness to a fixed point over fn's basic blocks,
// assigning each instruction a Position and extending every register's
// Live range. It is idempotent: re-running it after convergence
// changes no bitset.
func Analyze(fn *ir.Function) {
	assignPositions(fn)

	n := len(fn.Registers)
	for _, b := range fn.Blocks {
		b.LiveEntry = utils.NewBitMap(n)
		b.LiveExit = utils.NewBitMap(n)
	}

	changed := true
	for changed {
		changed = false
		for _, b := range fn.Blocks {
			entry := b.LiveExit.Copy()
			walkBackward(b, entry)
			if b.LiveEntry.SetFrom(entry) {
				changed = true
			}
			for _, pred := range b.Predecessors {
				if pred.LiveExit.Unite(b.LiveEntry) {
					changed = true
				}
			}
		}
	}

	extendPassThroughRanges(fn)
}

// assignPositions gives every instruction a monotonically increasing
// Position in block order, matching liveness's first pass.
func assignPositions(fn *ir.Function) {
	pos := 0
	for _, b := range fn.Blocks {
		for in := b.Head; in != nil; in = in.Next {
			in.Position = pos
			pos++
		}
	}
}

// walkBackward sweeps b's instructions tail-to-head, mutating entry in
// place to become the block's live-in set and extending every touched
// register's live range.
func walkBackward(b *ir.BasicBlock, entry *utils.BitMap) {
	for in := b.Tail; in != nil; in = in.Prev {
		for _, src := range in.Operands() {
			entry.Set(src.Slot)
			src.Live.Extend(in.Position)
		}
		if in.Dest != nil {
			entry.Reset(in.Dest.Slot)
			in.Dest.Live.Extend(in.Position)
		}
	}
}

// extendPassThroughRanges widens the range of any register live in
// both a block's entry and exit set to span the whole block. The
// instruction-level sweep only records explicit use positions, so a
// register flowing through a block untouched would otherwise appear
// dead inside it.
func extendPassThroughRanges(fn *ir.Function) {
	for _, b := range fn.Blocks {
		if b.Head == nil {
			continue
		}
		first, last := b.Head.Position, b.Tail.Position
		passThrough := lo.Filter(fn.Registers, func(r *ir.Register, _ int) bool {
			return b.LiveEntry.IsSet(r.Slot) && b.LiveExit.IsSet(r.Slot)
		})
		for _, r := range passThrough {
			r.Live.Extend(first)
			r.Live.Extend(last)
		}
	}
}
