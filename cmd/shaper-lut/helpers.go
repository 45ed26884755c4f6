package main

import (
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	shaperlut "github.com/tphakala/go-shaper-lut"
)

// newLogger logs to w: console format by default, JSON with jsonOutput.
// verbose lowers the level to debug.
func newLogger(w io.Writer, verbose, jsonOutput bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
}

// progressTracker handles progress reporting.
type progressTracker struct {
	log          *zap.SugaredLogger
	file         string
	lastProgress int
}

// newProgressTracker creates a tracker that logs decoding of path.
func newProgressTracker(logger *zap.Logger, path string) *progressTracker {
	return &progressTracker{
		log:          logger.Sugar(),
		file:         filepath.Base(path),
		lastProgress: -progressInterval,
	}
}

// report logs progress each time another progressInterval percent is crossed.
func (p *progressTracker) report(percent float64) {
	progress := int(percent)
	if progress >= p.lastProgress+progressInterval || (progress == 100 && p.lastProgress != 100) {
		p.log.Debugw("decoding", "file", p.file, "progress", progress)
		p.lastProgress = progress
	}
}

// printSummary writes a human-readable description of res.
func printSummary(w io.Writer, res *shaperlut.Result, steps int) {
	sum := res.Summary
	fmt.Fprintf(w, "Transfer curve: %d/%d steps", res.Steps(), steps)
	if res.Truncated {
		fmt.Fprintf(w, " (truncated)")
	}
	if res.RateMismatch {
		fmt.Fprintf(w, " (sample rate mismatch)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Output range: [%.6f, %.6f], peak %.6f\n", sum.OutputMin, sum.OutputMax, sum.OutputPeak)
	fmt.Fprintf(w, "  Monotonic: %t\n", sum.Monotonic)
	fmt.Fprintf(w, "  Deviation from identity: mean %.6f, std %.6f, rms %.6f\n",
		sum.ResidualMean, sum.ResidualStdDev, sum.RMSError)
}
