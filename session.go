package shaperlut

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-shaper-lut/internal/analysis"
	"github.com/tphakala/go-shaper-lut/internal/calib"
	"github.com/tphakala/go-shaper-lut/internal/expr"
	"github.com/tphakala/go-shaper-lut/internal/lut"
	"github.com/tphakala/go-shaper-lut/internal/pcm"
	"github.com/tphakala/go-shaper-lut/internal/rateconv"
)

// ProgressFunc receives decoding progress in percent, from 0 to 100.
type ProgressFunc = pcm.ProgressFunc

// Table is an exportable lookup table.
type Table = lut.Table

// Summary describes the normalized curves of a Result.
type Summary = analysis.Summary

// Recording describes a decoded WAV file held by a session.
type Recording struct {
	Path       string
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int
}

// Result holds the curves recovered by Session.Analyze.
type Result struct {
	// Input is the calibration curve normalized onto [-1, 1]. It is the x
	// axis of the transfer curve.
	Input []float64

	// Output is the measured curve scaled to a peak magnitude of 1. It
	// becomes the LUT.
	Output []float64

	// RawInput and RawOutput are the per-step means before normalization.
	RawInput  []float64
	RawOutput []float64

	// Truncated is set when fewer steps than configured were recovered
	// because one of the recordings is too short.
	Truncated bool

	// RateMismatch is set when the recordings had different sample rates
	// and the configured policy let analysis proceed.
	RateMismatch bool

	Summary Summary
}

// Steps returns the number of recovered steps.
func (r *Result) Steps() int {
	return len(r.Output)
}

// Comparison is the outcome of Session.Compare.
type Comparison struct {
	Expression string

	// Reference is the expression evaluated at each Result.Input value.
	Reference []float64

	// RMSError and MaxError measure Result.Output against Reference.
	RMSError float64
	MaxError float64
}

// Session carries one measurement through its stages: generate the
// calibration file, load both recordings, analyze, then export or compare.
// A Session is not safe for concurrent use.
type Session struct {
	config Config
	plan   calib.Plan
	logger *zap.Logger

	calibration, measured       *pcm.Buffer
	calibrationRec, measuredRec Recording
	result                      *Result
}

// NewSession validates config and creates a session. A nil logger
// disables logging.
func NewSession(config Config, logger *zap.Logger) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Name == "" {
		config.Name = lut.DefaultName
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		config: config,
		plan:   config.Plan(),
		logger: logger,
	}, nil
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.config
}

// Generate writes the calibration file for the configured plan to path.
func (s *Session) Generate(path string) error {
	if err := calib.GenerateFile(s.plan, path); err != nil {
		return stageError(StageGenerate, path, err)
	}

	s.logger.Info("calibration file written",
		zap.String("path", path),
		zap.Int("steps", s.plan.StepCount),
		zap.Int("bit_depth", s.plan.BitDepth),
		zap.Int("sample_rate", s.plan.SampleRate),
		zap.Duration("duration", s.plan.Duration()))
	return nil
}

// LoadCalibration decodes the calibration recording at path. Any previous
// analysis result is discarded. The step count is taken from the file length
// when it differs from the configured one; a length that matches no valid
// plan fails with ErrInvalidParameter.
func (s *Session) LoadCalibration(path string, progress ProgressFunc) error {
	buf, rec, err := s.load(StageLoadCalibration, path, progress)
	if err != nil {
		return err
	}

	if rec.Frames != s.plan.FrameCount() {
		plan, err := s.planFor(rec.Frames)
		if err != nil {
			return stageError(StageLoadCalibration, path, err)
		}
		s.logger.Info("step count taken from calibration file",
			zap.String("path", path),
			zap.Int("frames", rec.Frames),
			zap.Int("configured_steps", s.plan.StepCount),
			zap.Int("steps", plan.StepCount))
		s.plan = plan
		s.config.StepCount = plan.StepCount
	}

	s.calibration, s.calibrationRec = buf, rec
	s.result = nil
	return nil
}

// planFor returns the session plan resized to a calibration file of frames
// frames, which hold one block per step plus two extra blocks.
func (s *Session) planFor(frames int) (calib.Plan, error) {
	per := s.plan.SamplesPerStep
	if frames%per != 0 || frames/per <= 2 {
		return calib.Plan{}, fmt.Errorf("%w: calibration file of %d frames is not a whole number of %d-sample steps",
			ErrInvalidParameter, frames, per)
	}
	plan := s.plan
	plan.StepCount = frames/per - 2
	if err := plan.Validate(); err != nil {
		return calib.Plan{}, fmt.Errorf("calibration file of %d frames: %w", frames, err)
	}
	return plan, nil
}

// LoadMeasured decodes the processed recording at path. Any previous
// analysis result is discarded.
func (s *Session) LoadMeasured(path string, progress ProgressFunc) error {
	buf, rec, err := s.load(StageLoadMeasured, path, progress)
	if err != nil {
		return err
	}

	s.measured, s.measuredRec = buf, rec
	s.result = nil
	return nil
}

func (s *Session) load(stage Stage, path string, progress ProgressFunc) (*pcm.Buffer, Recording, error) {
	buf, format, err := pcm.ReadFile(path, progress)
	if err != nil {
		return nil, Recording{}, stageError(stage, path, err)
	}

	rec := Recording{
		Path:       path,
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
		BitDepth:   format.BitDepth(),
		Frames:     format.Frames,
	}
	s.logger.Info("recording loaded",
		zap.String("stage", string(stage)),
		zap.String("path", path),
		zap.Int("sample_rate", rec.SampleRate),
		zap.Int("channels", rec.Channels),
		zap.Int("bit_depth", rec.BitDepth),
		zap.Int("frames", rec.Frames),
		zap.Duration("duration", buf.Duration()))
	if rec.Channels > 1 {
		s.logger.Debug("using first channel only", zap.String("path", path), zap.Int("channels", rec.Channels))
	}
	return buf, rec, nil
}

// Calibration returns the loaded calibration recording.
func (s *Session) Calibration() (Recording, bool) {
	return s.calibrationRec, s.calibration != nil
}

// Measured returns the loaded measured recording.
func (s *Session) Measured() (Recording, bool) {
	return s.measuredRec, s.measured != nil
}

// Analyze recovers the transfer curve from the loaded recordings. When no
// step fits inside both recordings it returns the empty Result together
// with ErrInsufficientData.
func (s *Session) Analyze() (*Result, error) {
	if s.calibration == nil || s.measured == nil {
		return nil, stageError(StageAnalyze, "", fmt.Errorf("%w: load both recordings first", ErrNotReady))
	}

	measured, mismatch, err := s.alignRates()
	if err != nil {
		return nil, stageError(StageAnalyze, s.measuredRec.Path, err)
	}

	curves, err := analysis.Analyze(s.calibration.Samples, measured, s.plan.StepCount, s.plan.SamplesPerStep)
	if err != nil {
		res := &Result{RateMismatch: mismatch}
		if errors.Is(err, ErrInsufficientData) {
			res.Truncated = true
		}
		return res, stageError(StageAnalyze, "", err)
	}

	res := &Result{
		Input:        analysis.NormalizeAffine(curves.Input),
		Output:       analysis.NormalizePeak(curves.Output),
		RawInput:     curves.Input,
		RawOutput:    curves.Output,
		Truncated:    curves.Truncated(s.plan.StepCount),
		RateMismatch: mismatch,
	}
	res.Summary = analysis.Summarize(res.Input, res.Output)

	if res.Truncated {
		s.logger.Warn("recording too short, transfer curve truncated",
			zap.Int("steps", res.Steps()),
			zap.Int("expected_steps", s.plan.StepCount),
			zap.Int("calibration_frames", len(s.calibration.Samples)),
			zap.Int("measured_frames", len(measured)))
	}
	s.logger.Info("analysis complete",
		zap.Int("steps", res.Steps()),
		zap.Float64("output_min", res.Summary.OutputMin),
		zap.Float64("output_max", res.Summary.OutputMax),
		zap.Float64("rms_error", res.Summary.RMSError),
		zap.Bool("monotonic", res.Summary.Monotonic))

	s.result = res
	return res, nil
}

// alignRates applies the rate mismatch policy and returns the measured
// samples to analyze.
func (s *Session) alignRates() ([]float64, bool, error) {
	calRate, measRate := s.calibration.SampleRate, s.measured.SampleRate
	if calRate == measRate {
		return s.measured.Samples, false, nil
	}

	switch s.config.RateMismatch {
	case RateMismatchWarn:
		s.logger.Warn("sample rates differ, analyzing positionally",
			zap.Int("calibration_rate", calRate),
			zap.Int("measured_rate", measRate))
		return s.measured.Samples, true, nil

	case RateMismatchResample:
		conv, err := rateconv.NewLinear(measRate, calRate)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", ErrSampleRateMismatch, err)
		}
		s.logger.Info("resampling measured recording",
			zap.Int("from_rate", measRate),
			zap.Int("to_rate", calRate))
		return conv.Process(s.measured.Samples), true, nil

	default:
		return nil, false, fmt.Errorf("%w: calibration %d Hz, measured %d Hz",
			ErrSampleRateMismatch, calRate, measRate)
	}
}

// Result returns the last analysis result, or nil.
func (s *Session) Result() *Result {
	return s.result
}

// Export builds a LUT from the analyzed output curve. An empty name uses
// the configured one.
func (s *Session) Export(name string) (*Table, error) {
	if s.result == nil {
		return nil, stageError(StageExport, "", fmt.Errorf("%w: analyze first", ErrNotReady))
	}
	if name == "" {
		name = s.config.Name
	}

	t, err := lut.New(name, s.result.Output)
	if err != nil {
		return nil, stageError(StageExport, "", err)
	}
	return t, nil
}

// ExportFile writes the LUT source to path.
func (s *Session) ExportFile(name, path string) error {
	t, err := s.Export(name)
	if err != nil {
		return err
	}
	if err := lut.WriteFile(path, t); err != nil {
		return stageError(StageExport, path, err)
	}

	s.logger.Info("LUT written",
		zap.String("path", path),
		zap.String("name", t.Name),
		zap.Int("size", t.Size()))
	return nil
}

// Compare evaluates a reference expression such as "tanh(3*x)" on the
// normalized input curve and measures how far the output curve departs
// from it.
func (s *Session) Compare(expression string) (*Comparison, error) {
	if s.result == nil {
		return nil, stageError(StageCompare, "", fmt.Errorf("%w: analyze first", ErrNotReady))
	}

	e, err := expr.Parse(expression)
	if err != nil {
		return nil, stageError(StageCompare, "", err)
	}

	ref := e.EvalVector(s.result.Input)
	for i, v := range ref {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, stageError(StageCompare, "",
				fmt.Errorf("%w: %q is %v at x=%g", ErrInvalidParameter, expression, v, s.result.Input[i]))
		}
	}

	n := float64(len(ref))
	cmp := &Comparison{
		Expression: e.String(),
		Reference:  ref,
		RMSError:   floats.Distance(s.result.Output, ref, 2) / math.Sqrt(n),
		MaxError:   floats.Distance(s.result.Output, ref, math.Inf(1)),
	}

	s.logger.Info("reference comparison",
		zap.String("expression", cmp.Expression),
		zap.Float64("rms_error", cmp.RMSError),
		zap.Float64("max_error", cmp.MaxError))
	return cmp, nil
}
