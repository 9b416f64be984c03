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

const bitMapWordBits = 64

// BitMap is a fixed-size bitset indexed by register slot. Liveness
// keeps one pair per basic block (live-entry and live-exit) and unions
// them across control-flow edges until nothing changes, so the mutating
// operations report whether they changed any bit.
type BitMap struct {
	words []uint64
	size  int
}

func NewBitMap(size int) *BitMap {
	return &BitMap{
		words: make([]uint64, (size+bitMapWordBits-1)/bitMapWordBits),
		size:  size,
	}
}

func (bm *BitMap) Size() int {
	return bm.size
}

func (bm *BitMap) Set(i int) {
	bm.words[i/bitMapWordBits] |= 1 << uint(i%bitMapWordBits)
}

func (bm *BitMap) Reset(i int) {
	bm.words[i/bitMapWordBits] &^= 1 << uint(i%bitMapWordBits)
}

func (bm *BitMap) IsSet(i int) bool {
	return bm.words[i/bitMapWordBits]&(1<<uint(i%bitMapWordBits)) != 0
}

// Unite ors o's bits into bm, reporting whether any bit of bm changed.
// The data-flow loop keys its convergence on that report.
func (bm *BitMap) Unite(o *BitMap) bool {
	Assert(bm.size == o.size, "bitmap size mismatch: %d vs %d", bm.size, o.size)
	changed := false
	for i, w := range o.words {
		nv := bm.words[i] | w
		if nv != bm.words[i] {
			bm.words[i] = nv
			changed = true
		}
	}
	return changed
}

// SetFrom overwrites bm with o's bits, reporting whether bm changed.
func (bm *BitMap) SetFrom(o *BitMap) bool {
	Assert(bm.size == o.size, "bitmap size mismatch: %d vs %d", bm.size, o.size)
	changed := false
	for i, w := range o.words {
		if bm.words[i] != w {
			bm.words[i] = w
			changed = true
		}
	}
	return changed
}

// Copy returns an independent bitmap with the same bits.
func (bm *BitMap) Copy() *BitMap {
	words := make([]uint64, len(bm.words))
	copy(words, bm.words)
	return &BitMap{words: words, size: bm.size}
}
