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

import "math"

// RegKind distinguishes the disjoint index pools a register's Index is
// drawn from.
type RegKind int

const (
	// Argument and Return registers occupy a fixed reserved prefix of
	// the machine register file, assigned at IR-generation time and
	// never touched by the allocator.
	Argument RegKind = iota
	Return
	// Any registers are allocated monotonically during lowering with
	// placeholder indices and rewritten to real machine indices (or
	// turned into Spill) by linear-scan allocation.
	Any
	// Spill marks a register the allocator could not fit in the
	// machine register file; SpillOffset is its stack slot.
	Spill
)

func (k RegKind) String() string {
	switch k {
	case Argument:
		return "arg"
	case Return:
		return "ret"
	case Any:
		return "any"
	case Spill:
		return "spill"
	default:
		return "?"
	}
}

// LiveRange is the closed position interval [Start, Finish] during
// which a register holds a value that will subsequently be read. An
// empty range (never extended) reports Start > Finish.
type LiveRange struct {
	Start, Finish int
}

func newEmptyLiveRange() LiveRange {
	return LiveRange{Start: math.MaxInt32, Finish: -1}
}

// IsEmpty reports whether the range was never touched by liveness.
func (r LiveRange) IsEmpty() bool {
	return r.Start > r.Finish
}

// Extend widens the range to include position p.
func (r *LiveRange) Extend(p int) {
	if p < r.Start {
		r.Start = p
	}
	if p > r.Finish {
		r.Finish = p
	}
}

// Register is a virtual register: an index drawn from a RegKind-
// specific pool, plus the live interval liveness analysis fills in.
// Slot is a separate, function-wide unique ordinal assigned at
// creation time: Index is reused across kinds (Argument-0 and Any-0
// both exist), so liveness and regalloc index their per-register
// bitsets and slices by Slot instead.
type Register struct {
	Index       int
	Slot        int
	Kind        RegKind
	Live        LiveRange
	SpillOffset int
}

// NewRegister allocates a fresh register of the given kind with index,
// and an empty live range ready for liveness to extend.
func NewRegister(kind RegKind, index int) *Register {
	return &Register{Index: index, Kind: kind, Live: newEmptyLiveRange()}
}
