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

// Builder assembles a declarator's type chain outside-in: specifiers
// and qualifiers accumulate on a pending basic leaf, and each call to
// Pointer/Array/Function wraps whatever has been built so far. Finish
// finalizes the result. This mirrors how a recursive-descent declarator
// parser discovers "pointer to" and "array of" before it has seen the
// base type specifiers that anchor the chain.
type Builder struct {
	leaf    *Type
	outer   *Type
	storage StorageClass
}

// NewBuilder starts a declarator build rooted at an unfinished basic
// leaf type.
func NewBuilder() *Builder {
	leaf := NewBasic()
	return &Builder{leaf: leaf, outer: leaf}
}

func (b *Builder) Specifier(s Specifier) *Builder {
	b.leaf.SetSpecifier(s)
	return b
}

func (b *Builder) Qualifier(q Qualifier) *Builder {
	b.outer.SetQualifier(q)
	return b
}

func (b *Builder) StorageClass(s StorageClass) *Builder {
	b.storage = s
	return b
}

// Pointer wraps the type built so far in a pointer derivation.
func (b *Builder) Pointer() *Builder {
	p := NewPointer(nil)
	SetDerived(p, b.outer)
	b.outer = p
	return b
}

// Array wraps the type built so far in an array-of-size derivation.
func (b *Builder) Array(size int) *Builder {
	a := NewArray(nil, size)
	SetDerived(a, b.outer)
	b.outer = a
	return b
}

// Function wraps the type built so far as a function's return type.
func (b *Builder) Function(params []Param) *Builder {
	f := NewFunction(nil, params)
	SetDerived(f, b.outer)
	b.outer = f
	return b
}

// Finish applies the accumulated storage class to the outermost type
// and finalizes the whole chain, returning the first validation error
// encountered (if any).
func (b *Builder) Finish() (*Type, error) {
	b.outer.SetStorageClass(b.storage)
	if err := Finalize(b.outer); err != nil {
		return nil, err
	}
	return b.outer, nil
}
