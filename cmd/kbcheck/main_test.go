// Copyright 2025 The kbcheck Authors
// This file is part of kbcheck.
//
// kbcheck is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// kbcheck is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with kbcheck. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestParseBitWidth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Equal(t, uint(6), parseBitWidth(logger, "6"))
	assert.Equal(t, uint(0), parseBitWidth(logger, "0"))
	// Unparsable arguments fall back to the single documented default.
	assert.Equal(t, uint(defaultBitWidth), parseBitWidth(logger, "six"))
	assert.Equal(t, uint(defaultBitWidth), parseBitWidth(logger, "-1"))
	assert.Equal(t, uint(defaultBitWidth), parseBitWidth(logger, ""))
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelError, slogLevel(0))
	assert.Equal(t, slog.LevelWarn, slogLevel(1))
	assert.Equal(t, slog.LevelInfo, slogLevel(2))
	assert.Equal(t, slog.LevelDebug, slogLevel(3))
	assert.Equal(t, slog.LevelDebug, slogLevel(9))
}
