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

// Package gopool provides a shared goroutine pool for background tasks and
// a sizing rule for splitting row-parallel work across workers.
package gopool

import (
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
)

var (
	defaultPool, _ = ants.NewPool(ants.DefaultAntsPoolSize, ants.WithExpiryDuration(10*time.Second))

	// minRowsPerWorker keeps workers from being spawned for trivially
	// small slices of the comparison space.
	minRowsPerWorker = 4
)

// Submit schedules a task on the shared pool.
func Submit(task func()) error {
	return defaultPool.Submit(task)
}

// Running returns the number of currently running pool goroutines.
func Running() int {
	return defaultPool.Running()
}

// Release closes the shared pool.
func Release() {
	defaultPool.Release()
}

// Threads returns a worker count for the given number of rows: one worker
// per minRowsPerWorker rows, capped at the CPU count and floored at one.
func Threads(rows int) int {
	threads := rows / minRowsPerWorker
	if threads > runtime.NumCPU() {
		threads = runtime.NumCPU()
	} else if threads == 0 {
		threads = 1
	}
	return threads
}
