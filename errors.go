package shaperlut

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-shaper-lut/internal/analysis"
	"github.com/tphakala/go-shaper-lut/internal/calib"
	"github.com/tphakala/go-shaper-lut/internal/expr"
	"github.com/tphakala/go-shaper-lut/internal/lut"
	"github.com/tphakala/go-shaper-lut/internal/pcm"
)

// Errors returned by the session and its stages. Check with errors.Is.
var (
	// ErrUnsupportedFormat indicates a WAV file that is not integer PCM with
	// 1 to 4 bytes per sample.
	ErrUnsupportedFormat = pcm.ErrUnsupportedFormat

	// ErrMalformed indicates a file that is not a readable WAV, or whose data
	// chunk is not a whole number of frames.
	ErrMalformed = pcm.ErrMalformed

	// ErrIO indicates a failure opening, reading or writing a file.
	ErrIO = pcm.ErrIO

	// ErrInvalidParameter indicates an unsupported step count or bit depth.
	ErrInvalidParameter = calib.ErrInvalidParameter

	// ErrInsufficientData indicates that not a single step block fits inside
	// both recordings.
	ErrInsufficientData = analysis.ErrInsufficientData

	// ErrInvalidExport indicates a LUT that cannot be exported.
	ErrInvalidExport = lut.ErrInvalidExport

	// ErrSampleRateMismatch indicates that the measured recording was not
	// captured at the calibration sample rate.
	ErrSampleRateMismatch = errors.New("sample rate mismatch")

	// ErrInvalidConfig indicates a configuration that fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotReady indicates a session operation called before the stage it
	// depends on has completed.
	ErrNotReady = errors.New("session stage not ready")

	// ErrSyntax, ErrUnknownFunction, ErrUnknownIdentifier and ErrArity
	// report problems in a reference expression.
	ErrSyntax            = expr.ErrSyntax
	ErrUnknownFunction   = expr.ErrUnknownFunction
	ErrUnknownIdentifier = expr.ErrUnknownIdentifier
	ErrArity             = expr.ErrArity
)

// Stage names a session step for error reporting.
type Stage string

// Session stages.
const (
	StageGenerate        Stage = "generate"
	StageLoadCalibration Stage = "load calibration"
	StageLoadMeasured    Stage = "load measured"
	StageAnalyze         Stage = "analyze"
	StageExport          Stage = "export"
	StageCompare         Stage = "compare"
)

// StageError records which stage failed and, where one is involved, on
// which file.
type StageError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, path string, err error) error {
	return &StageError{Stage: stage, Path: path, Err: err}
}
