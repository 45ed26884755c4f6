// Command shaper-lut measures the transfer curve of an audio waveshaper and
// exports it as a C lookup table.
//
// Usage:
//
//	shaper-lut generate -steps 4096 -bits 32 calibration.wav
//	shaper-lut analyze -o shaper.h calibration.wav measured.wav
//	shaper-lut analyze -rate-mismatch resample -compare "tanh(3*x)" calibration.wav measured.wav
//	shaper-lut eval -expr "clip(1.5*x)" -steps 1024 -name clipper -o clipper.h
//
// Global flags -v (debug logging) and -json (JSON logs) go before the
// command. SHAPERLUT_STEPS, SHAPERLUT_BITS and SHAPERLUT_NAME set defaults
// for the corresponding flags.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	shaperlut "github.com/tphakala/go-shaper-lut"
	"github.com/tphakala/go-shaper-lut/internal/simdops"
)

const (
	progressInterval = 10 // Log decoding progress every N%

	analyzeArgs  = 2
	generateArgs = 1

	exitUsage = 2
)

var errUsage = errors.New("usage error")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "shaper-lut: %v\n", err)
		}
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(exitUsage)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("shaper-lut", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose (debug) logging")
	jsonLogs := fs.Bool("json", false, "Log as JSON")
	fs.Usage = func() { printUsage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		printUsage(stderr, fs)
		return fmt.Errorf("%w: missing command", errUsage)
	}

	logger := newLogger(stderr, *verbose, *jsonLogs)
	defer func() { _ = logger.Sync() }()
	logger.Debug("starting", zap.String("simd", simdops.Info()))

	cfg := shaperlut.DefaultConfig()
	if err := cfg.LoadEnv(); err != nil {
		return err
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "generate":
		return runGenerate(rest, cfg, logger, stdout, stderr)
	case "analyze":
		return runAnalyze(rest, cfg, logger, stdout, stderr)
	case "eval":
		return runEval(rest, cfg, logger, stdout, stderr)
	default:
		printUsage(stderr, fs)
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: shaper-lut [-v] [-json] <command> [options] args\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  generate   write a stepped calibration WAV\n")
	fmt.Fprintf(w, "  analyze    measure a processed calibration WAV and export the LUT\n")
	fmt.Fprintf(w, "  eval       export a LUT computed from an expression\n\n")
	fmt.Fprintf(w, "Global options:\n")
	fs.PrintDefaults()
}

func runGenerate(args []string, cfg shaperlut.Config, logger *zap.Logger, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.StepCount, "steps", cfg.StepCount, "Number of calibration steps (power of two, 256-32768)")
	fs.IntVar(&cfg.BitDepth, "bits", cfg.BitDepth, "Output bit depth: 16 or 32")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != generateArgs {
		fmt.Fprintf(stderr, "Usage: shaper-lut generate [options] calibration.wav\n\n")
		fs.PrintDefaults()
		return fmt.Errorf("%w: generate takes one output file", errUsage)
	}

	s, err := shaperlut.NewSession(cfg, logger)
	if err != nil {
		return err
	}
	path := fs.Arg(0)
	if err := s.Generate(path); err != nil {
		return err
	}

	plan := cfg.Plan()
	fmt.Fprintf(stdout, "Wrote %s\n", filepath.Base(path))
	fmt.Fprintf(stdout, "  %d steps x %d samples, %d-bit, %d Hz, %s\n",
		plan.StepCount, plan.SamplesPerStep, plan.BitDepth, plan.SampleRate, plan.Duration().Round(time.Millisecond))
	return nil
}

func runAnalyze(args []string, cfg shaperlut.Config, logger *zap.Logger, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.StepCount, "steps", cfg.StepCount, "Number of calibration steps the file was generated with")
	fs.StringVar(&cfg.Name, "name", cfg.Name, "Identifier prefix for the exported table")
	policy := fs.String("rate-mismatch", cfg.RateMismatch.String(), "Sample rate mismatch policy: fail, warn, resample")
	compare := fs.String("compare", "", "Reference expression to compare against, e.g. \"tanh(3*x)\"")
	output := fs.String("o", "", "Write the LUT to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != analyzeArgs {
		fmt.Fprintf(stderr, "Usage: shaper-lut analyze [options] calibration.wav measured.wav\n\n")
		fs.PrintDefaults()
		return fmt.Errorf("%w: analyze takes a calibration and a measured file", errUsage)
	}

	var err error
	if cfg.RateMismatch, err = shaperlut.ParseRateMismatchPolicy(*policy); err != nil {
		return err
	}

	s, err := shaperlut.NewSession(cfg, logger)
	if err != nil {
		return err
	}

	calPath, measPath := fs.Arg(0), fs.Arg(1)
	if err := s.LoadCalibration(calPath, newProgressTracker(logger, calPath).report); err != nil {
		return err
	}
	if err := s.LoadMeasured(measPath, newProgressTracker(logger, measPath).report); err != nil {
		return err
	}

	res, err := s.Analyze()
	if err != nil {
		return err
	}

	// Keep stdout clean for the table when it is written there.
	report := stdout
	if *output == "" {
		report = stderr
	}
	printSummary(report, res, s.Config().StepCount)

	if *compare != "" {
		cmp, err := s.Compare(*compare)
		if err != nil {
			return err
		}
		fmt.Fprintf(report, "  Reference %s: rms error %.6f, max error %.6f\n", cmp.Expression, cmp.RMSError, cmp.MaxError)
	}

	if *output != "" {
		if err := s.ExportFile("", *output); err != nil {
			return err
		}
		fmt.Fprintf(report, "Wrote %s\n", filepath.Base(*output))
		return nil
	}

	table, err := s.Export("")
	if err != nil {
		return err
	}
	return shaperlut.ExportTable(stdout, table)
}

func runEval(args []string, cfg shaperlut.Config, logger *zap.Logger, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	expression := fs.String("expr", "", "Transfer expression of x, e.g. \"tanh(3*x)\"")
	steps := fs.Int("steps", cfg.StepCount, "Number of table entries")
	name := fs.String("name", cfg.Name, "Identifier prefix for the exported table")
	output := fs.String("o", "", "Write the LUT to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *expression == "" || fs.NArg() != 0 {
		fmt.Fprintf(stderr, "Usage: shaper-lut eval -expr EXPRESSION [options]\n\n")
		fs.PrintDefaults()
		return fmt.Errorf("%w: eval needs -expr and no arguments", errUsage)
	}

	table, err := shaperlut.TableFromExpression(*expression, *steps, *name)
	if err != nil {
		return err
	}
	logger.Info("table computed",
		zap.String("expression", *expression),
		zap.Int("size", table.Size()),
		zap.String("name", table.Name))

	if *output == "" {
		return shaperlut.ExportTable(stdout, table)
	}
	if err := shaperlut.WriteTable(*output, table); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s\n", filepath.Base(*output))
	return nil
}
