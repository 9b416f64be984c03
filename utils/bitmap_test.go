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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitMapSetResetAcrossWordBoundaries(t *testing.T) {
	bm := NewBitMap(130)
	bm.Set(0)
	bm.Set(64)
	bm.Set(129)

	assert.True(t, bm.IsSet(0))
	assert.True(t, bm.IsSet(64))
	assert.True(t, bm.IsSet(129))
	assert.False(t, bm.IsSet(1))
	assert.False(t, bm.IsSet(65))

	bm.Reset(64)
	assert.False(t, bm.IsSet(64))
	assert.True(t, bm.IsSet(129))
}

func TestBitMapUniteReportsChange(t *testing.T) {
	a := NewBitMap(70)
	b := NewBitMap(70)
	b.Set(3)
	b.Set(69)

	require.True(t, a.Unite(b))
	assert.True(t, a.IsSet(3))
	assert.True(t, a.IsSet(69))
	assert.False(t, a.Unite(b), "uniting the same bits again must not report a change")
}

func TestBitMapSetFromAndCopyAreIndependent(t *testing.T) {
	a := NewBitMap(10)
	a.Set(7)

	b := a.Copy()
	assert.True(t, b.IsSet(7))
	b.Reset(7)
	assert.True(t, a.IsSet(7), "a copy must not share storage with the original")

	c := NewBitMap(10)
	require.True(t, c.SetFrom(a))
	assert.True(t, c.IsSet(7))
	assert.False(t, c.SetFrom(a), "overwriting with identical bits must not report a change")
}
