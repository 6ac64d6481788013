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

import "errors"

var (
	// ErrConflict is returned for malformed abstract values: masks that
	// claim some bit to be both known-zero and known-one, or that claim
	// bits outside the value's width.
	ErrConflict = errors.New("malformed known-bits masks")

	// ErrEmptySet is returned when Abstract is invoked on an empty set of
	// concrete values.
	ErrEmptySet = errors.New("empty concrete value set")

	// ErrWidthMismatch is returned when operands of differing bit widths
	// reach an operation that requires a single common width.
	ErrWidthMismatch = errors.New("bit width mismatch")

	// ErrWidthTooLarge is returned instead of attempting an enumeration or
	// concretization whose cost would be unbounded in practice.
	ErrWidthTooLarge = errors.New("bit width too large for brute force")
)
