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

package compile

import "accgo/regalloc"

// DefaultRegisters is a stand-in machine register file: 12 indices, the
// first regalloc.RegsSpill (4) reserved for spill scratch and the
// remaining 8 available to linear-scan. Real targets supply their own
// regalloc.Config describing the actual machine register file; this is
// only a sensible default for tests and the CLI driver when no
// target-specific list is wired in.
func DefaultRegisters() regalloc.Config {
	indices := make([]int, 0, 12)
	for i := 0; i < 12; i++ {
		indices = append(indices, i)
	}
	return regalloc.Config{Registers: indices}
}
