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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mulHighInt64 is an independent oracle for widths up to 16: exact product
// in int64, arithmetic shift, truncate.
func mulHighInt64(width uint, a, b int64) Word {
	return WordFromInt64(width, a*b>>width)
}

func TestRefMulHighWidthMismatch(t *testing.T) {
	_, err := RefMulHigh(Top(2), Top(3))
	require.ErrorIs(t, err, ErrWidthMismatch)
	_, err = IntervalMulHigh(Top(2), Top(3))
	require.ErrorIs(t, err, ErrWidthMismatch)
}

func TestRefMulHighWidth1(t *testing.T) {
	// The width-1 lattice is {0}, {-1}, and top = {0, -1}. All four
	// products of {0, -1} x {0, -1} are 0 or 1, whose high bits are 0,
	// so even top*top is exactly known-zero.
	top := Top(1)
	kb, err := RefMulHigh(top, top)
	require.NoError(t, err)
	assert.Equal(t, "0", kb.String())

	minusOne := Exact(WordFromInt64(1, -1))
	kb, err = RefMulHigh(minusOne, minusOne)
	require.NoError(t, err)
	// (-1)*(-1) = 1 = 01 over two bits, high half 0.
	assert.Equal(t, "0", kb.String())
}

// TestRefMulHighExact crosschecks the uint256 arithmetic against plain
// int64 arithmetic: the reference result must be exactly the abstraction of
// the reachable high halves, no more and no less.
func TestRefMulHighExact(t *testing.T) {
	for _, width := range []uint{1, 2, 3} {
		values, err := Enumerate(width)
		require.NoError(t, err)
		for _, lhs := range values {
			lws, err := lhs.Concretize()
			require.NoError(t, err)
			for _, rhs := range values {
				rws, err := rhs.Concretize()
				require.NoError(t, err)

				expected := make([]Word, 0, len(lws)*len(rws))
				for _, a := range lws {
					for _, b := range rws {
						expected = append(expected, mulHighInt64(width, a.Int64(), b.Int64()))
					}
				}
				want, err := Abstract(expected)
				require.NoError(t, err)

				got, err := RefMulHigh(lhs, rhs)
				require.NoError(t, err)
				assert.True(t, got.Eq(want), "mulhs(%s, %s): got %s, want %s", lhs, rhs, got, want)
			}
		}
	}
}

func TestRefMulHighWidthZero(t *testing.T) {
	kb, err := RefMulHigh(Top(0), Top(0))
	require.NoError(t, err)
	assert.Equal(t, uint(0), kb.Width())
}

// TestIntervalMulHighSound exercises the primary regression: the candidate
// must never contradict the exact reference. Since the reference knows
// precisely the bits all reachable results agree on, candidate soundness is
// equivalent to the reference refining the candidate.
func TestIntervalMulHighSound(t *testing.T) {
	for _, width := range []uint{1, 2, 3, 4} {
		values, err := Enumerate(width)
		require.NoError(t, err)
		for _, lhs := range values {
			for _, rhs := range values {
				ref, err := RefMulHigh(lhs, rhs)
				require.NoError(t, err)
				cand, err := IntervalMulHigh(lhs, rhs)
				require.NoError(t, err)
				require.True(t, ref.Refines(cand),
					"unsound at width %d: mulhs(%s, %s) reference %s candidate %s",
					width, lhs, rhs, ref, cand)
			}
		}
	}
}

func TestIntervalMulHighExactOperands(t *testing.T) {
	// Fully known operands give a single-point range, so the candidate is
	// as precise as the reference.
	for a := int64(-4); a < 4; a++ {
		for b := int64(-4); b < 4; b++ {
			lhs, rhs := Exact(WordFromInt64(3, a)), Exact(WordFromInt64(3, b))
			cand, err := IntervalMulHigh(lhs, rhs)
			require.NoError(t, err)
			ref, err := RefMulHigh(lhs, rhs)
			require.NoError(t, err)
			assert.True(t, cand.Eq(ref), "%d * %d: candidate %s reference %s", a, b, cand, ref)
		}
	}
}

func TestIntervalMulHighConflict(t *testing.T) {
	bad := KnownBits{width: 2}
	setBit(&bad.zero, 1)
	setBit(&bad.one, 1)
	_, err := IntervalMulHigh(bad, Top(2))
	require.ErrorIs(t, err, ErrConflict)
	_, err = RefMulHigh(bad, Top(2))
	require.ErrorIs(t, err, ErrConflict)
}

func BenchmarkRefMulHigh(b *testing.B) {
	lhs, rhs := Top(6), Top(6)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := RefMulHigh(lhs, rhs); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIntervalMulHigh(b *testing.B) {
	lhs, rhs := Top(6), Top(6)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := IntervalMulHigh(lhs, rhs); err != nil {
			b.Fatal(err)
		}
	}
}
