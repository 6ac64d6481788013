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

package gopool

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreads(t *testing.T) {
	assert.Equal(t, 1, Threads(0))
	assert.Equal(t, 1, Threads(minRowsPerWorker-1))
	assert.Equal(t, 1, Threads(minRowsPerWorker))
	assert.LessOrEqual(t, Threads(1<<20), runtime.NumCPU())
}

func TestSubmit(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, Submit(wg.Done))
	wg.Wait()
}
