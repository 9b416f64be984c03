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

package ctype

import "accgo/utils"

// SizeOf and AlignOf are free functions rather than methods on Type so
// that a future cross-compilation target could swap in a different
// layout without touching the type algebra itself. The values below
// match a 32-bit target throughout: every basic integer type tops out
// at 4 bytes and every pointer is 4 bytes, matching the IR's LOAD32
// family (the instruction set has no 64-bit memory op).
func SizeOf(t *Type) int {
	switch t.Shape {
	case Basic:
		return basicSize(t.Specifier)
	case Pointer:
		return 4
	case Array:
		return SizeOf(t.Child) * t.ArraySize
	case Function:
		utils.ShouldNotReachHere()
	}
	return 0
}

func AlignOf(t *Type) int {
	switch t.Shape {
	case Basic:
		return basicSize(t.Specifier)
	case Pointer:
		return 4
	case Array:
		return AlignOf(t.Child)
	case Function:
		utils.ShouldNotReachHere()
	}
	return 0
}

func basicSize(spec Specifier) int {
	switch spec {
	case SpecSignedChar, SpecUnsignedChar:
		return 1
	case SpecSignedShortInt, SpecUnsignedShortInt:
		return 2
	case SpecSignedInt, SpecUnsignedInt:
		return 4
	case SpecSignedLongInt, SpecUnsignedLongInt:
		return 4
	default:
		utils.ShouldNotReachHere()
		return 0
	}
}

// IsSigned reports whether t is a signed integer basic type.
func IsSigned(t *Type) bool {
	utils.Assert(t.IsBasic(), "IsSigned only applies to basic types")
	return t.Specifier&SpecSigned != 0
}
