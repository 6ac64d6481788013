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

// kbcheck exhaustively validates a signed multiply-high known-bits transfer
// function against a brute-force ground truth and reports precision and
// timing statistics.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slog"

	"github.com/bitlattice/kbcheck/harness"
	"github.com/bitlattice/kbcheck/knownbits"
)

// defaultBitWidth is used when the positional argument is present but not
// parseable as an integer. A missing argument is an error instead; there is
// deliberately a single fallback width rather than one per failure mode.
const defaultBitWidth = 4

var (
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Number of parallel comparison workers (0 = pick from CPU count)",
		Value: 0,
	}
	timeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "Abort the run after this wall-clock budget (0 = no budget)",
		Value: 0,
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=error, 1=warn, 2=info, 3=debug",
		Value: 2,
	}
)

var app = &cli.App{
	Name:      "kbcheck",
	Usage:     "validate a signed multiply-high known-bits transfer function",
	ArgsUsage: "<bitwidth>",
	Flags: []cli.Flag{
		workersFlag,
		timeoutFlag,
		verbosityFlag,
	},
	Action: run,
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(ctx.Int(verbosityFlag.Name)),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if ctx.NArg() < 1 {
		cli.ShowAppHelpAndExit(ctx, 1)
	}
	width := parseBitWidth(logger, ctx.Args().First())

	runCtx := context.Background()
	if timeout := ctx.Duration(timeoutFlag.Name); timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, timeout)
		defer cancel()
	}

	logger.Info("starting comparison", "bitwidth", width, "workers", ctx.Int(workersFlag.Name))
	start := time.Now()
	report, err := harness.Run(runCtx, width, knownbits.RefMulHigh, knownbits.IntervalMulHigh, harness.Config{
		Workers:          ctx.Int(workersFlag.Name),
		ProgressInterval: 8 * time.Second,
		Logger:           logger,
	})
	if err != nil {
		if errors.Is(err, harness.ErrWidthImpractical) || errors.Is(err, knownbits.ErrWidthTooLarge) {
			return fmt.Errorf("bit width %d is beyond the brute-force ceiling: %w", width, err)
		}
		return err
	}
	logger.Info("comparison finished", "elapsed", time.Since(start), "pairs", report.Pairs)
	if report.Unsound > 0 {
		logger.Warn("candidate transfer function is unsound", "pairs", report.Unsound)
	}

	printReport(report)
	return nil
}

// parseBitWidth resolves the positional argument, falling back to
// defaultBitWidth when it does not parse. The failure is logged, not
// surfaced: a typo'd width still produces a useful run.
func parseBitWidth(logger *slog.Logger, arg string) uint {
	width, err := strconv.ParseUint(arg, 10, 8)
	if err != nil {
		logger.Warn("unparsable bit width, using default",
			"arg", arg, "default", defaultBitWidth)
		return defaultBitWidth
	}
	return uint(width)
}

func printReport(r *harness.Report) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.AppendBulk([][]string{
		{"Bit width", fmt.Sprintf("%d", r.BitWidth)},
		{"Abstract values", fmt.Sprintf("%d", r.Values)},
		{"Ordered pairs", fmt.Sprintf("%d", r.Pairs)},
		{"Candidate more precise", fmt.Sprintf("%d", r.CandidateMorePrecise)},
		{"Reference more precise", fmt.Sprintf("%d", r.ReferenceMorePrecise)},
		{"Equal precision", fmt.Sprintf("%d", r.EqualPrecision)},
		{"Unsound", fmt.Sprintf("%d", r.Unsound)},
		{"Avg candidate time", r.AvgCandidate().String()},
		{"Avg reference time", r.AvgReference().String()},
	})
	table.Render()
}

func slogLevel(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelError
	case verbosity == 1:
		return slog.LevelWarn
	case verbosity == 2:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
