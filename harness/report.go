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

import "time"

// Report aggregates one full comparison run. Individual verdicts are folded
// in as they are produced and never retained, so memory stays proportional
// to the enumeration, not its square. A finished Report is never mutated.
type Report struct {
	BitWidth uint
	// Values is the number of enumerated abstract values N; Pairs is the
	// number of ordered pairs evaluated, N^2 for a completed run.
	Values uint64
	Pairs  uint64

	EqualPrecision       uint64
	CandidateMorePrecise uint64
	ReferenceMorePrecise uint64
	Unsound              uint64

	ReferenceTime time.Duration
	CandidateTime time.Duration
}

// Add folds one verdict into the counters.
func (r *Report) Add(v Verdict) {
	switch v {
	case EqualPrecision:
		r.EqualPrecision++
	case CandidateMorePrecise:
		r.CandidateMorePrecise++
	case ReferenceMorePrecise:
		r.ReferenceMorePrecise++
	case Unsound:
		r.Unsound++
	}
	r.Pairs++
}

// AvgReference returns the mean per-call latency of the reference function.
func (r *Report) AvgReference() time.Duration {
	if r.Pairs == 0 {
		return 0
	}
	return r.ReferenceTime / time.Duration(r.Pairs)
}

// AvgCandidate returns the mean per-call latency of the candidate function.
func (r *Report) AvgCandidate() time.Duration {
	if r.Pairs == 0 {
		return 0
	}
	return r.CandidateTime / time.Duration(r.Pairs)
}

// merge sums another partial report into r. Counts and times are all
// associative sums, so per-worker reports can be merged in any order.
func (r *Report) merge(o *Report) {
	r.Pairs += o.Pairs
	r.EqualPrecision += o.EqualPrecision
	r.CandidateMorePrecise += o.CandidateMorePrecise
	r.ReferenceMorePrecise += o.ReferenceMorePrecise
	r.Unsound += o.Unsound
	r.ReferenceTime += o.ReferenceTime
	r.CandidateTime += o.CandidateTime
}
