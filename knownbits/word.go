// Copyright 2025 The kbcheck Authors
// This file is part of the kbcheck library.
//
// The kbcheck library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The kbcheck library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the kbcheck library. If not, see <http://www.gnu.org/licenses/>.

package knownbits

import (
	"math/bits"

	"github.com/holiman/uint256"
)

// Word is a fixed-width two's-complement integer. The bit pattern lives in
// the low width bits of n, everything above is zero. Words are value types,
// never shared.
type Word struct {
	width uint
	n     uint256.Int
}

// NewWord returns the word of the given width holding the low width bits of n.
func NewWord(width uint, n *uint256.Int) Word {
	var w Word
	w.width = width
	w.n.And(n, lowMask(width))
	return w
}

// WordFromInt64 builds a word of the given width from the low width bits of v.
// Convenient for widths up to 64.
func WordFromInt64(width uint, v int64) Word {
	var n uint256.Int
	n.SetUint64(uint64(v))
	if v < 0 {
		// Fill the upper limbs so the truncation below sees a proper
		// two's-complement pattern.
		n[1], n[2], n[3] = ^uint64(0), ^uint64(0), ^uint64(0)
	}
	return NewWord(width, &n)
}

// Width returns the bit width of w.
func (w Word) Width() uint { return w.width }

// Uint256 returns a copy of the raw bit pattern.
func (w Word) Uint256() *uint256.Int {
	n := w.n
	return &n
}

// Bit reports whether bit i of the pattern is set.
func (w Word) Bit(i uint) bool {
	if i >= w.width {
		return false
	}
	return w.n[i/64]>>(i%64)&1 == 1
}

// Sign reports whether the sign bit is set. Width-zero words are non-negative.
func (w Word) Sign() bool {
	return w.width > 0 && w.Bit(w.width-1)
}

// Eq reports whether two words have identical width and pattern.
func (w Word) Eq(o Word) bool {
	return w.width == o.width && w.n.Eq(&o.n)
}

// SExt sign-extends w to the given width. Widths up to the current one
// truncate instead.
func (w Word) SExt(width uint) Word {
	out := Word{width: width}
	out.n.And(&w.n, lowMask(width))
	if width > w.width && w.Sign() {
		var hi uint256.Int
		hi.Xor(lowMask(width), lowMask(w.width))
		out.n.Or(&out.n, &hi)
	}
	return out
}

// sext256 returns the full 256-bit sign extension of the pattern, suitable
// for uint256's signed comparisons and shifts.
func (w Word) sext256() uint256.Int {
	n := w.n
	if w.Sign() {
		var hi uint256.Int
		hi.Not(lowMask(w.width))
		n.Or(&n, &hi)
	}
	return n
}

// Int64 returns the signed value of w. Only meaningful for widths up to 64.
func (w Word) Int64() int64 {
	u := w.n.Uint64()
	if w.width < 64 && w.Sign() {
		u |= ^(uint64(1)<<w.width - 1)
	}
	return int64(u)
}

// lowMask returns a shared mask of the low width bits. Callers must not
// modify the result.
func lowMask(width uint) *uint256.Int {
	if width >= 256 {
		return &maskAll
	}
	return &lowMasks[width]
}

var (
	maskAll  uint256.Int
	lowMasks [256]uint256.Int
)

func init() {
	maskAll.Not(&maskAll)
	one := uint256.NewInt(1)
	for w := uint(1); w < 256; w++ {
		lowMasks[w].Lsh(one, w)
		lowMasks[w].Sub(&lowMasks[w], one)
	}
}

func popcount(n *uint256.Int) uint {
	return uint(bits.OnesCount64(n[0]) + bits.OnesCount64(n[1]) +
		bits.OnesCount64(n[2]) + bits.OnesCount64(n[3]))
}
