package shaperlut

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tphakala/go-shaper-lut/internal/calib"
	"github.com/tphakala/go-shaper-lut/internal/lut"
)

// RateMismatchPolicy decides what Analyze does when the measured recording
// has a different sample rate than the calibration file.
type RateMismatchPolicy int

const (
	// RateMismatchFail rejects the recording with ErrSampleRateMismatch.
	RateMismatchFail RateMismatchPolicy = iota

	// RateMismatchWarn logs a warning and analyzes positionally anyway.
	// Step blocks then no longer line up with the calibration steps.
	RateMismatchWarn

	// RateMismatchResample converts the measured recording to the
	// calibration rate by linear interpolation before analysis.
	RateMismatchResample
)

func (p RateMismatchPolicy) String() string {
	switch p {
	case RateMismatchFail:
		return policyNameFail
	case RateMismatchWarn:
		return policyNameWarn
	case RateMismatchResample:
		return policyNameResample
	default:
		return fmt.Sprintf("RateMismatchPolicy(%d)", int(p))
	}
}

// ParseRateMismatchPolicy maps "fail", "warn" or "resample" to a policy.
func ParseRateMismatchPolicy(s string) (RateMismatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case policyNameFail:
		return RateMismatchFail, nil
	case policyNameWarn:
		return RateMismatchWarn, nil
	case policyNameResample:
		return RateMismatchResample, nil
	default:
		return RateMismatchFail, fmt.Errorf("%w: unknown rate mismatch policy %q", ErrInvalidConfig, s)
	}
}

// Config holds session configuration.
type Config struct {
	// StepCount is the number of calibration steps and the LUT size.
	// Must be a power of two in [256, 32768].
	StepCount int

	// BitDepth of the generated calibration file, 16 or 32.
	BitDepth int

	// Name prefixes the exported C identifiers.
	Name string

	// RateMismatch selects the sample-rate mismatch policy.
	RateMismatch RateMismatchPolicy
}

// DefaultConfig returns 4096 steps, 32-bit output, the name "shaper" and
// the fail policy.
func DefaultConfig() Config {
	return Config{
		StepCount:    calib.DefaultStepCount,
		BitDepth:     calib.DefaultBitDepth,
		Name:         lut.DefaultName,
		RateMismatch: RateMismatchFail,
	}
}

// Plan returns the calibration plan described by c.
func (c *Config) Plan() calib.Plan {
	return calib.NewPlan(c.StepCount, c.BitDepth)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Plan().Validate(); err != nil {
		return err
	}

	if c.Name != "" {
		if err := lut.ValidateName(c.Name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if c.RateMismatch < RateMismatchFail || c.RateMismatch > RateMismatchResample {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.RateMismatch)
	}

	return nil
}

// LoadEnv overrides fields from SHAPERLUT_STEPS, SHAPERLUT_BITS and
// SHAPERLUT_NAME when they are set and non-empty.
func (c *Config) LoadEnv() error {
	if v := os.Getenv(EnvSteps); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvSteps, v)
		}
		c.StepCount = n
	}
	if v := os.Getenv(EnvBits); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvBits, v)
		}
		c.BitDepth = n
	}
	if v := os.Getenv(EnvName); v != "" {
		c.Name = v
	}
	return nil
}
