package calib

// Calibration plan limits
const (
	// SamplesPerStep is the number of identical samples held per step.
	SamplesPerStep = 1024

	// SampleRate is the calibration sample rate in Hz.
	SampleRate = 48000

	// MinStepCount and MaxStepCount bound the step count of production plans.
	MinStepCount = 256
	MaxStepCount = 32768

	// DefaultStepCount is the step count used when none is configured.
	DefaultStepCount = 4096

	// DefaultBitDepth is the output bit depth used when none is configured.
	DefaultBitDepth = 32

	// minTestStepCount is the smallest step count a test plan accepts;
	// linear spacing needs two endpoints.
	minTestStepCount = 2
)

// Supported output bit depths
const (
	BitDepth16 = 16
	BitDepth32 = 32

	bitsPerByte = 8
)

// Quantization full-scale values
const (
	fullScale16 = 32767.0
	fullScale32 = 2147483647.0
)

// Level span endpoints
const (
	levelMin = -1.0
	levelMax = 1.0
)
