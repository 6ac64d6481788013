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

package harness

import (
	"github.com/holiman/uint256"

	"github.com/bitlattice/kbcheck/knownbits"
)

// Verdict classifies one pair of transfer-function results against each
// other.
type Verdict int

const (
	// EqualPrecision: both results know the same number of bits.
	EqualPrecision Verdict = iota
	// CandidateMorePrecise: the candidate result knows strictly more bits.
	CandidateMorePrecise
	// ReferenceMorePrecise: the reference result knows strictly more bits.
	ReferenceMorePrecise
	// Unsound: the two results contradict each other on some bit, so at
	// least one of them is not sound. With an exact reference this pins
	// the defect on the candidate.
	Unsound
)

func (v Verdict) String() string {
	switch v {
	case EqualPrecision:
		return "equal precision"
	case CandidateMorePrecise:
		return "candidate more precise"
	case ReferenceMorePrecise:
		return "reference more precise"
	case Unsound:
		return "unsound"
	default:
		return "unknown verdict"
	}
}

// Classify compares a reference result against a candidate result for the
// same pair of inputs. A bit claimed zero by one side and one by the other
// is a contradiction and yields Unsound; otherwise the result with strictly
// more known bits wins, and equal counts tie.
func Classify(ref, cand knownbits.KnownBits) Verdict {
	var clash uint256.Int
	clash.And(cand.KnownZeros(), ref.KnownOnes())
	if !clash.IsZero() {
		return Unsound
	}
	clash.And(cand.KnownOnes(), ref.KnownZeros())
	if !clash.IsZero() {
		return Unsound
	}
	refKnown, candKnown := ref.Known(), cand.Known()
	switch {
	case candKnown > refKnown:
		return CandidateMorePrecise
	case refKnown > candKnown:
		return ReferenceMorePrecise
	default:
		return EqualPrecision
	}
}
