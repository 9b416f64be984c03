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

// Package symtable implements the nested lexical scopes used while
// analyzing a translation unit: symbol lookup with parent-scope
// fallthrough, and address assignment for objects with static or
// automatic storage duration.
package symtable

import (
	"accgo/ctype"
	"accgo/utils"

	"github.com/pkg/errors"
)

// AddressKind distinguishes where a symbol's storage lives.
type AddressKind int

const (
	// Static addresses are offsets into the translation unit's static
	// data area: globals and function-local statics.
	Static AddressKind = iota
	// Automatic addresses are offsets from a function's frame pointer:
	// locals and parameters.
	Automatic
)

func (k AddressKind) String() string {
	if k == Static {
		return "static"
	}
	return "automatic"
}

// Address records where a symbol's storage has been allocated.
type Address struct {
	Kind   AddressKind
	Offset int
}

// Symbol is one entry of a scope: a name bound to a type, and - once
// the allocator has visited it - a storage address.
type Symbol struct {
	Name    string
	Type    *ctype.Type
	Address Address

	// Defined distinguishes a symbol that has a function body / an
	// initializer from a bare declaration (e.g. "int f(void);").
	Defined bool
}

// Scope is one nested lexical block. The translation-unit scope is the
// root and has a nil Parent.
type Scope struct {
	Parent *Scope
	names  map[string]*Symbol
}

// NewScope allocates an empty scope nested under parent. Pass nil for
// the translation unit's outermost scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent, names: make(map[string]*Symbol)}
}

// Put binds name to sym in this scope. It reports an error if name is
// already bound in THIS scope (shadowing an outer scope is fine; a
// redeclaration within the same scope is not).
func (s *Scope) Put(name string, sym *Symbol) error {
	if _, exists := s.names[name]; exists {
		return errors.Errorf("redeclaration of %q in the same scope", name)
	}
	s.names[name] = sym
	return nil
}

// Get looks up name in this scope. If searchParent is true and name
// isn't found here, the search continues up the parent chain until the
// translation-unit scope is exhausted.
func (s *Scope) Get(name string, searchParent bool) *Symbol {
	for scope := s; scope != nil; scope = scope.Parent {
		if sym, ok := scope.names[name]; ok {
			return sym
		}
		if !searchParent {
			break
		}
	}
	return nil
}

// IsRoot reports whether this is the translation unit's outermost
// scope (no enclosing function or block).
func (s *Scope) IsRoot() bool {
	return s.Parent == nil
}

// Allocator assigns monotonically increasing addresses to symbols,
// packing each one at its type's required alignment. One Allocator is
// used per storage class region: one for the translation unit's static
// data area, one per function activation record.
type Allocator struct {
	Kind      AddressKind
	allocated int
}

// NewAllocator creates an allocator for the given address kind,
// starting from an empty region.
func NewAllocator(kind AddressKind) *Allocator {
	return &Allocator{Kind: kind}
}

// Allocate assigns sym an address sized and aligned for its type,
// advancing the allocator's cursor past it: pad up to the type's
// alignment, record the offset, then bump the cursor by the type's
// size.
func (a *Allocator) Allocate(sym *Symbol) {
	size := ctype.SizeOf(sym.Type)
	align := ctype.AlignOf(sym.Type)

	a.allocated = utils.AlignUp(a.allocated, align)
	sym.Address = Address{Kind: a.Kind, Offset: a.allocated}
	a.allocated += size
}

// Size reports the total number of bytes allocated so far, i.e. the
// size of the frame or static region this allocator is tracking.
func (a *Allocator) Size() int {
	return a.allocated
}
