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
	"fmt"

	"github.com/holiman/uint256"
)

// TransferFunc computes an abstract result for signed multiply-high from
// two abstract operands of equal width. Implementations must be pure and
// deterministic, and sound: the concretization of the result must contain
// every high half reachable from concrete operands consistent with the
// inputs.
type TransferFunc func(lhs, rhs KnownBits) (KnownBits, error)

// RefMulHigh is the brute-force reference transfer function: it concretizes
// both operands, computes the exact signed product of every pair at twice
// the width, keeps bits [width, 2*width) of each, and abstracts the
// resulting set. The result is the most precise one expressible in this
// domain, which makes RefMulHigh the ground-truth oracle for any candidate.
// Cost is 2^(unknown(lhs)+unknown(rhs)) products per call.
func RefMulHigh(lhs, rhs KnownBits) (KnownBits, error) {
	if lhs.width != rhs.width {
		return KnownBits{}, fmt.Errorf("%w: %d vs %d", ErrWidthMismatch, lhs.width, rhs.width)
	}
	if lhs.width > MaxWidth {
		return KnownBits{}, fmt.Errorf("%w: %d > %d", ErrWidthTooLarge, lhs.width, MaxWidth)
	}
	ls, err := lhs.Concretize()
	if err != nil {
		return KnownBits{}, err
	}
	rs, err := rhs.Concretize()
	if err != nil {
		return KnownBits{}, err
	}
	width := lhs.width
	out := make([]Word, 0, len(ls)*len(rs))
	for i := range ls {
		wa := ls[i].SExt(2 * width)
		for j := range rs {
			wb := rs[j].SExt(2 * width)
			var prod uint256.Int
			// The product is taken mod 2^256, which agrees with the
			// exact signed product on the low 2*width bits.
			prod.Mul(&wa.n, &wb.n)
			prod.Rsh(&prod, width)
			prod.And(&prod, lowMask(width))
			out = append(out, Word{width: width, n: prod})
		}
	}
	return Abstract(out)
}

// IntervalMulHigh is a cheap candidate transfer function for signed
// multiply-high. Each operand is relaxed to its signed interval hull
// [SignedMin, SignedMax]; the product range over such a box attains its
// extremes at the four corners, and taking the high half (an arithmetic
// shift, monotone in the product) maps that range to a result range whose
// shared leading bits become the known bits of the result. Constant work
// per call, sound, and in general less precise than RefMulHigh.
func IntervalMulHigh(lhs, rhs KnownBits) (KnownBits, error) {
	if lhs.width != rhs.width {
		return KnownBits{}, fmt.Errorf("%w: %d vs %d", ErrWidthMismatch, lhs.width, rhs.width)
	}
	if lhs.width > MaxWidth {
		return KnownBits{}, fmt.Errorf("%w: %d > %d", ErrWidthTooLarge, lhs.width, MaxWidth)
	}
	if lhs.HasConflict() || rhs.HasConflict() {
		return KnownBits{}, ErrConflict
	}
	width := lhs.width
	if width == 0 {
		return Top(0), nil
	}
	as := [2]uint256.Int{lhs.SignedMin().sext256(), lhs.SignedMax().sext256()}
	bs := [2]uint256.Int{rhs.SignedMin().sext256(), rhs.SignedMax().sext256()}
	var pmin, pmax uint256.Int
	for i := range as {
		for j := range bs {
			var p uint256.Int
			p.Mul(&as[i], &bs[j])
			if i == 0 && j == 0 {
				pmin, pmax = p, p
				continue
			}
			if p.Slt(&pmin) {
				pmin = p
			}
			if p.Sgt(&pmax) {
				pmax = p
			}
		}
	}
	var lo, hi uint256.Int
	lo.SRsh(&pmin, width)
	hi.SRsh(&pmax, width)
	lo.And(&lo, lowMask(width))
	hi.And(&hi, lowMask(width))
	return fromSignedRange(width, Word{width: width, n: lo}, Word{width: width, n: hi}), nil
}

// fromSignedRange converts an inclusive signed range [lo, hi] into known
// bits: every value in the range agrees with the endpoints on all bits
// above the highest bit where the endpoints differ, so exactly those bits
// are known. Requires lo <= hi as signed width-bit values.
func fromSignedRange(width uint, lo, hi Word) KnownBits {
	var diff uint256.Int
	diff.Xor(&lo.n, &hi.n)
	if diff.IsZero() {
		return Exact(lo)
	}
	var known uint256.Int
	known.Xor(lowMask(width), lowMask(uint(diff.BitLen())))
	kb := KnownBits{width: width}
	kb.one.And(&known, &lo.n)
	kb.zero.Not(&lo.n)
	kb.zero.And(&kb.zero, &known)
	return kb
}
