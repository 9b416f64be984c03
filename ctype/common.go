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

// SignedIntType returns a fresh, finalized "signed int" - the type of
// an integer constant, of a comparison's result, and of the implicit
// int-promotion target.
func SignedIntType() *Type {
	t := NewBasic()
	t.SetSpecifier(SpecSignedInt)
	return t
}

// UnsignedCharType returns a fresh, finalized "unsigned char" - the
// element type of a string literal.
func UnsignedCharType() *Type {
	t := NewBasic()
	t.SetSpecifier(SpecUnsignedChar)
	return t
}

// VoidType returns a fresh "void", the return type of a function that
// produces no value.
func VoidType() *Type {
	t := NewBasic()
	t.SetSpecifier(SpecVoid)
	return t
}
