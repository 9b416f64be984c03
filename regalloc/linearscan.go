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

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"accgo/ir"
)

// Allocate runs linear-scan register allocation over fn's Any-kind
// registers against cfg's pool, then rewrites every instruction so no
// Spill-kind register remains observable to downstream stages.
func Allocate(fn *ir.Function, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "regalloc")
	}
	linearScan(fn, cfg.Pool())
	fixup(fn, cfg)
	return nil
}

// linearScan sorts the candidates by interval start, expires finished
// intervals back to a free stack, and for each candidate either
// allocates from the free stack, steals from the longest-finishing
// active register (spilling it), or spills the candidate itself.
func linearScan(fn *ir.Function, pool []int) {
	regs := fn.AnyRegisters()
	sort.SliceStable(regs, func(i, j int) bool {
		return regs[i].Live.Start < regs[j].Live.Start
	})

	free := append([]int(nil), pool...)
	var active []*ir.Register

	for _, r := range regs {
		active = expire(active, r.Live.Start, &free)

		if len(free) > 0 {
			r.Index = free[len(free)-1]
			free = free[:len(free)-1]
			active = append(active, r)
			continue
		}

		victim := longestFinishing(active)
		if victim != nil && victim.Live.Finish > r.Live.Finish {
			r.Index = victim.Index
			spill(fn, victim)
			active = replace(active, victim, r)
			continue
		}

		spill(fn, r)
	}
}

// expire removes from active every register whose interval ends
// strictly before the new interval starts, returning their machine
// indices to the free stack. The comparison is strict: a register
// finishing exactly at start stays active, since its last read and the
// new register's definition can share an instruction.
func expire(active []*ir.Register, start int, free *[]int) []*ir.Register {
	done := lo.Filter(active, func(m *ir.Register, _ int) bool {
		return m.Live.Finish < start
	})
	for _, m := range done {
		*free = append(*free, m.Index)
	}
	return lo.Filter(active, func(m *ir.Register, _ int) bool {
		return m.Live.Finish >= start
	})
}

// longestFinishing picks the active register with the latest interval
// end, the preferred steal/spill victim. Returns nil when active is
// empty.
func longestFinishing(active []*ir.Register) *ir.Register {
	return lo.MaxBy(active, func(a, b *ir.Register) bool {
		return a.Live.Finish > b.Live.Finish
	})
}

func replace(active []*ir.Register, old, fresh *ir.Register) []*ir.Register {
	return append(lo.Without(active, old), fresh)
}

func spill(fn *ir.Function, r *ir.Register) {
	r.Kind = ir.Spill
	r.SpillOffset = fn.AllocateStackSlot()
}
