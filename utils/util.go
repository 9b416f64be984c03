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
package utils

import "fmt"

// Assert panics with a formatted message if cond is false. Used for
// internal invariants, never for validating user input.
func Assert(cond bool, format string, msg ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, msg...))
	}
}

func ShouldNotReachHere() {
	panic("should not reach here")
}

// AlignUp rounds n up to the nearest multiple of align. align must be
// a positive power of two.
func AlignUp(n, align int) int {
	Assert(align > 0 && align&(align-1) == 0, "alignment must be a power of two, got %d", align)
	return (n + align - 1) &^ (align - 1)
}
