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

package symtable

import (
	"testing"

	"accgo/ctype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intType() *ctype.Type {
	t := ctype.NewBasic()
	t.SetSpecifier(ctype.SpecSigned)
	t.SetSpecifier(ctype.SpecInt)
	_ = ctype.Finalize(t)
	return t
}

func charType() *ctype.Type {
	t := ctype.NewBasic()
	t.SetSpecifier(ctype.SpecUnsignedChar)
	_ = ctype.Finalize(t)
	return t
}

func TestScopeGetSearchesParentChain(t *testing.T) {
	root := NewScope(nil)
	require.NoError(t, root.Put("g", &Symbol{Name: "g", Type: intType()}))

	block := NewScope(root)
	require.NoError(t, block.Put("x", &Symbol{Name: "x", Type: intType()}))

	assert.NotNil(t, block.Get("x", false))
	assert.Nil(t, root.Get("x", true))
	assert.NotNil(t, block.Get("g", true))
	assert.Nil(t, block.Get("g", false))
}

func TestScopePutRejectsRedeclarationInSameScope(t *testing.T) {
	s := NewScope(nil)
	require.NoError(t, s.Put("x", &Symbol{Name: "x", Type: intType()}))
	require.Error(t, s.Put("x", &Symbol{Name: "x", Type: intType()}))
}

func TestScopeShadowingIsAllowed(t *testing.T) {
	outer := NewScope(nil)
	require.NoError(t, outer.Put("x", &Symbol{Name: "x", Type: intType()}))

	inner := NewScope(outer)
	require.NoError(t, inner.Put("x", &Symbol{Name: "x", Type: charType()}))

	got := inner.Get("x", true)
	require.NotNil(t, got)
	assert.True(t, ctype.Equal(got.Type, charType()))
}

func TestAllocatorPacksWithAlignmentPadding(t *testing.T) {
	a := NewAllocator(Automatic)

	c := &Symbol{Type: charType()}
	a.Allocate(c)
	assert.Equal(t, 0, c.Address.Offset)

	i := &Symbol{Type: intType()}
	a.Allocate(i)
	// char at offset 0 occupies 1 byte; the following int (align 4)
	// must pad up to the next multiple of 4.
	assert.Equal(t, 4, i.Address.Offset)

	c2 := &Symbol{Type: charType()}
	a.Allocate(c2)
	assert.Equal(t, 8, c2.Address.Offset)

	assert.Equal(t, 9, a.Size())
}

func TestAllocatorOffsetsAreMonotonic(t *testing.T) {
	a := NewAllocator(Static)
	prev := -1
	for i := 0; i < 8; i++ {
		sym := &Symbol{Type: intType()}
		a.Allocate(sym)
		assert.Greater(t, sym.Address.Offset, prev)
		assert.Equal(t, Static, sym.Address.Kind)
		prev = sym.Address.Offset
	}
}
