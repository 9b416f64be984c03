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

// Package regalloc implements linear-scan register allocation over one
// function's Any-kind virtual registers, followed by a mechanical
// rewrite that materializes spilled registers as stack loads/stores
// around each use.
package regalloc

import "github.com/pkg/errors"

// RegsSpill is the number of machine register indices reserved for
// spill-fixup scratch: one address holder (S0) plus three operand
// holders (S1 for a spilled dest, SL/SR for spilled left/right uses),
// sized for the IR's three-operand instruction shape.
const RegsSpill = 4

// Config is the caller-supplied machine register file: an ordered list
// of indices whose first RegsSpill entries are reserved for spill
// scratch and whose remainder is the pool linear-scan allocates from.
type Config struct {
	Registers []int
}

// Scratch returns the reserved scratch indices, in S0/S1/SL/SR order.
func (c Config) Scratch() []int {
	return c.Registers[:RegsSpill]
}

// Pool returns the allocatable register indices, excluding scratch.
func (c Config) Pool() []int {
	return c.Registers[RegsSpill:]
}

// Validate reports an error if Config doesn't carry enough machine
// registers: RegsSpill for scratch, plus a pool of at least RegsSpill
// more.
func (c Config) Validate() error {
	if len(c.Registers) < RegsSpill {
		return errors.Errorf("regalloc: need at least %d machine registers for spill scratch, got %d",
			RegsSpill, len(c.Registers))
	}
	if len(c.Pool()) < RegsSpill {
		return errors.Errorf("regalloc: allocation pool must have at least %d registers, got %d",
			RegsSpill, len(c.Pool()))
	}
	return nil
}
