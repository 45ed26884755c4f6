package shaperlut

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-shaper-lut/internal/expr"
	"github.com/tphakala/go-shaper-lut/internal/lut"
)

// minExpressionSteps is the smallest table TableFromExpression builds.
const minExpressionSteps = 2

// GenerateCalibration writes the calibration file for config to path.
func GenerateCalibration(path string, config Config) error {
	s, err := NewSession(config, nil)
	if err != nil {
		return err
	}
	return s.Generate(path)
}

// Measure runs a complete measurement: it loads both recordings, analyzes
// them and builds the LUT under the configured name.
func Measure(calibrationPath, measuredPath string, config Config, logger *zap.Logger) (*Result, *Table, error) {
	s, err := NewSession(config, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := s.LoadCalibration(calibrationPath, nil); err != nil {
		return nil, nil, err
	}
	if err := s.LoadMeasured(measuredPath, nil); err != nil {
		return nil, nil, err
	}

	res, err := s.Analyze()
	if err != nil {
		return res, nil, err
	}
	t, err := s.Export("")
	if err != nil {
		return res, nil, err
	}
	return res, t, nil
}

// TableFromExpression samples a reference expression at steps evenly
// spaced inputs over [-1, 1] and returns it as a table, so that a
// synthetic shaper can be exported without measuring anything.
func TableFromExpression(expression string, steps int, name string) (*Table, error) {
	if steps < minExpressionSteps {
		return nil, fmt.Errorf("%w: %d steps", ErrInvalidParameter, steps)
	}

	e, err := expr.Parse(expression)
	if err != nil {
		return nil, err
	}

	xs := floats.Span(make([]float64, steps), -1, 1)
	xs[steps-1] = 1
	return lut.New(name, e.EvalVector(xs))
}

// ExportTable writes the C source of t to w.
func ExportTable(w io.Writer, t *Table) error {
	return lut.Export(w, t)
}

// WriteTable writes the C source of t to path.
func WriteTable(path string, t *Table) error {
	return lut.WriteFile(path, t)
}
