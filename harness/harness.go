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

// Package harness compares a candidate signed multiply-high transfer
// function against the brute-force reference over every ordered pair of
// abstract values of a bit width, classifying each pair by soundness and
// relative precision and timing both functions per call.
package harness

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"github.com/bitlattice/kbcheck/common/gopool"
	"github.com/bitlattice/kbcheck/knownbits"
)

// MaxBruteForceWidth caps Run. The comparison space has 9^width pairs and
// the reference function costs up to 4^width products per pair, which stops
// being practical somewhere around width 8.
const MaxBruteForceWidth = 8

// ErrWidthImpractical is returned instead of starting a run that would not
// finish in reasonable time.
var ErrWidthImpractical = errors.New("bit width impractical for pairwise brute force")

// Config tunes a comparison run. The zero value picks a worker count from
// the enumeration size and logs nothing.
type Config struct {
	// Workers is the number of parallel workers; 0 sizes the pool from
	// the row count.
	Workers int
	// ProgressInterval enables periodic progress logging when positive.
	ProgressInterval time.Duration
	// Logger receives progress lines; nil falls back to slog.Default.
	Logger *slog.Logger
}

// Run evaluates cand against ref on all ordered pairs of abstract values of
// the given width and returns the aggregated report. An Unsound pair is
// counted, never fatal: the run always covers the full space so the report
// reflects every pair. The row index space is sharded across workers, each
// folding verdicts and timings into a worker-local report; the locals are
// merged once after the group finishes, so the hot loop takes no locks.
// Cancellation is checked between rows and surfaces as ctx.Err().
func Run(ctx context.Context, width uint, ref, cand knownbits.TransferFunc, cfg Config) (*Report, error) {
	if width > MaxBruteForceWidth {
		return nil, fmt.Errorf("%w: %d > %d", ErrWidthImpractical, width, MaxBruteForceWidth)
	}
	values, err := knownbits.Enumerate(width)
	if err != nil {
		return nil, err
	}
	n := len(values)

	workers := cfg.Workers
	if workers <= 0 {
		workers = gopool.Threads(n)
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	var pairsDone atomic.Uint64
	stopProgress := startProgress(&cfg, width, uint64(n)*uint64(n), &pairsDone)
	defer stopProgress()

	locals := make([]Report, workers)
	var g errgroup.Group
	for k := 0; k < workers; k++ {
		k := k
		g.Go(func() error {
			local := &locals[k]
			for i := k; i < n; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				lhs := values[i]
				for j := 0; j < n; j++ {
					rhs := values[j]

					start := time.Now()
					candOut, err := cand(lhs, rhs)
					local.CandidateTime += time.Since(start)
					if err != nil {
						return fmt.Errorf("candidate function: %w", err)
					}

					start = time.Now()
					refOut, err := ref(lhs, rhs)
					local.ReferenceTime += time.Since(start)
					if err != nil {
						return fmt.Errorf("reference function: %w", err)
					}

					local.Add(Classify(refOut, candOut))
				}
				pairsDone.Add(uint64(n))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &Report{BitWidth: width, Values: uint64(n)}
	for i := range locals {
		total.merge(&locals[i])
	}
	return total, nil
}

// startProgress launches a periodic progress logger on the shared pool and
// returns a func that stops it. A no-op when the interval is unset.
func startProgress(cfg *Config, width uint, totalPairs uint64, done *atomic.Uint64) func() {
	if cfg.ProgressInterval <= 0 {
		return func() {}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stop := make(chan struct{})
	report := func() {
		ticker := time.NewTicker(cfg.ProgressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				logger.Info("comparison in progress",
					"bitwidth", width,
					"pairs", done.Load(),
					"total", totalPairs)
			}
		}
	}
	if err := gopool.Submit(report); err != nil {
		go report()
	}
	return func() { close(stop) }
}
