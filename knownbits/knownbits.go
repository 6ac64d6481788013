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

// Package knownbits implements a per-bit three-valued abstract domain over
// fixed-width two's-complement integers: every bit of a value is either
// known-zero, known-one, or unknown. The package provides the full abstract
// lattice for a bit width (Enumerate), the concretization/abstraction pair
// relating abstract and concrete values, and transfer functions for the
// signed multiply-high operation.
package knownbits

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// MaxWidth is the widest value the package can multiply: operands are
// sign-extended to twice their width, which must still fit a 256-bit word.
const MaxWidth = 128

// KnownBits is an abstract value: two disjoint masks recording which bits
// are known-zero and which are known-one. A bit in neither mask is unknown.
// Both masks are confined to the low width bits. KnownBits are immutable
// once constructed.
type KnownBits struct {
	width uint
	zero  uint256.Int
	one   uint256.Int
}

// Top returns the all-unknown value of the given width, the least precise
// element of the lattice.
func Top(width uint) KnownBits {
	return KnownBits{width: width}
}

// Exact returns the fully-known abstract value denoting exactly w.
func Exact(w Word) KnownBits {
	kb := KnownBits{width: w.width, one: w.n}
	kb.zero.Xor(lowMask(w.width), &w.n)
	return kb
}

// Make builds a KnownBits from explicit masks. Masks that overlap or claim
// bits at or above the width are malformed and rejected with ErrConflict.
func Make(width uint, zero, one *uint256.Int) (KnownBits, error) {
	var kb KnownBits
	kb.width = width
	kb.zero.Set(zero)
	kb.one.Set(one)
	var union, stray uint256.Int
	union.Or(zero, one)
	stray.Not(lowMask(width))
	stray.And(&stray, &union)
	if !stray.IsZero() {
		return KnownBits{}, fmt.Errorf("%w: mask bit beyond width %d", ErrConflict, width)
	}
	if kb.HasConflict() {
		return KnownBits{}, ErrConflict
	}
	return kb, nil
}

// Width returns the bit width of the value.
func (kb KnownBits) Width() uint { return kb.width }

// KnownZeros returns a copy of the known-zero mask.
func (kb KnownBits) KnownZeros() *uint256.Int {
	z := kb.zero
	return &z
}

// KnownOnes returns a copy of the known-one mask.
func (kb KnownBits) KnownOnes() *uint256.Int {
	o := kb.one
	return &o
}

// ZeroAt reports whether bit i is known to be zero.
func (kb KnownBits) ZeroAt(i uint) bool { return maskBit(&kb.zero, i) }

// OneAt reports whether bit i is known to be one.
func (kb KnownBits) OneAt(i uint) bool { return maskBit(&kb.one, i) }

// UnknownAt reports whether bit i is unknown.
func (kb KnownBits) UnknownAt(i uint) bool {
	return i < kb.width && !kb.ZeroAt(i) && !kb.OneAt(i)
}

// HasConflict reports whether some bit is claimed both known-zero and
// known-one. Such a value is malformed and denotes nothing.
func (kb KnownBits) HasConflict() bool {
	var both uint256.Int
	return !both.And(&kb.zero, &kb.one).IsZero()
}

// Known returns the number of known bits, the value's precision. A result
// of Width() means the value denotes exactly one integer.
func (kb KnownBits) Known() uint {
	return popcount(&kb.zero) + popcount(&kb.one)
}

// Unknown returns the number of unknown bits.
func (kb KnownBits) Unknown() uint {
	return kb.width - kb.Known()
}

// Eq reports whether two abstract values are identical.
func (kb KnownBits) Eq(o KnownBits) bool {
	return kb.width == o.width && kb.zero.Eq(&o.zero) && kb.one.Eq(&o.one)
}

// Refines reports whether kb is at least as precise as o: every bit o
// knows, kb knows with the same polarity.
func (kb KnownBits) Refines(o KnownBits) bool {
	if kb.width != o.width {
		return false
	}
	var z, n uint256.Int
	z.And(&kb.zero, &o.zero)
	n.And(&kb.one, &o.one)
	return z.Eq(&o.zero) && n.Eq(&o.one)
}

// SignedMin returns the smallest signed value consistent with kb: an
// unknown sign bit becomes one, every other unknown bit becomes zero.
func (kb KnownBits) SignedMin() Word {
	w := Word{width: kb.width, n: kb.one}
	if kb.width > 0 && kb.UnknownAt(kb.width-1) {
		setBit(&w.n, kb.width-1)
	}
	return w
}

// SignedMax returns the largest signed value consistent with kb: an unknown
// sign bit becomes zero, every other unknown bit becomes one.
func (kb KnownBits) SignedMax() Word {
	var unk uint256.Int
	unk.Or(&kb.zero, &kb.one)
	unk.Xor(&unk, lowMask(kb.width))
	if kb.width > 0 && kb.UnknownAt(kb.width-1) {
		clearBit(&unk, kb.width-1)
	}
	w := Word{width: kb.width}
	w.n.Or(&kb.one, &unk)
	return w
}

// String renders the value most-significant bit first, one character per
// bit: '0', '1', '?' for unknown, '!' for a malformed overlap.
func (kb KnownBits) String() string {
	var sb strings.Builder
	sb.Grow(int(kb.width))
	for i := kb.width; i > 0; i-- {
		switch {
		case kb.ZeroAt(i-1) && kb.OneAt(i-1):
			sb.WriteByte('!')
		case kb.ZeroAt(i - 1):
			sb.WriteByte('0')
		case kb.OneAt(i - 1):
			sb.WriteByte('1')
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

func maskBit(n *uint256.Int, i uint) bool {
	return i < 256 && n[i/64]>>(i%64)&1 == 1
}

func setBit(n *uint256.Int, i uint) {
	n[i/64] |= 1 << (i % 64)
}

func clearBit(n *uint256.Int, i uint) {
	n[i/64] &^= 1 << (i % 64)
}
