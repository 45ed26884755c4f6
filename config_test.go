package shaperlut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4096, cfg.StepCount)
	assert.Equal(t, 32, cfg.BitDepth)
	assert.Equal(t, "shaper", cfg.Name)
	assert.Equal(t, RateMismatchFail, cfg.RateMismatch)

	plan := cfg.Plan()
	assert.Equal(t, 4096, plan.StepCount)
	assert.Equal(t, 1024, plan.SamplesPerStep)
	assert.Equal(t, 48000, plan.SampleRate)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"min steps", func(c *Config) { c.StepCount = 256 }, nil},
		{"max steps", func(c *Config) { c.StepCount = 32768 }, nil},
		{"16-bit", func(c *Config) { c.BitDepth = 16 }, nil},
		{"empty name", func(c *Config) { c.Name = "" }, nil},
		{"resample", func(c *Config) { c.RateMismatch = RateMismatchResample }, nil},
		{"steps too small", func(c *Config) { c.StepCount = 128 }, ErrInvalidParameter},
		{"steps too large", func(c *Config) { c.StepCount = 65536 }, ErrInvalidParameter},
		{"steps not power of two", func(c *Config) { c.StepCount = 1000 }, ErrInvalidParameter},
		{"24-bit", func(c *Config) { c.BitDepth = 24 }, ErrInvalidParameter},
		{"bad name", func(c *Config) { c.Name = "my-shaper" }, ErrInvalidConfig},
		{"bad policy", func(c *Config) { c.RateMismatch = RateMismatchPolicy(7) }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseRateMismatchPolicy(t *testing.T) {
	for _, p := range []RateMismatchPolicy{RateMismatchFail, RateMismatchWarn, RateMismatchResample} {
		got, err := ParseRateMismatchPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParseRateMismatchPolicy(" Warn ")
	require.NoError(t, err)
	assert.Equal(t, RateMismatchWarn, got)

	_, err = ParseRateMismatchPolicy("ignore")
	require.ErrorIs(t, err, ErrInvalidConfig)

	assert.Equal(t, "RateMismatchPolicy(9)", RateMismatchPolicy(9).String())
}

func TestConfig_LoadEnv(t *testing.T) {
	t.Setenv(EnvSteps, "1024")
	t.Setenv(EnvBits, "16")
	t.Setenv(EnvName, "fuzz")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadEnv())
	assert.Equal(t, 1024, cfg.StepCount)
	assert.Equal(t, 16, cfg.BitDepth)
	assert.Equal(t, "fuzz", cfg.Name)
	require.NoError(t, cfg.Validate())
}

func TestConfig_LoadEnv_Unset(t *testing.T) {
	t.Setenv(EnvSteps, "")
	t.Setenv(EnvBits, "")
	t.Setenv(EnvName, "")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadEnv())
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_LoadEnv_Invalid(t *testing.T) {
	t.Setenv(EnvSteps, "lots")
	cfg := DefaultConfig()
	require.ErrorIs(t, cfg.LoadEnv(), ErrInvalidConfig)

	t.Setenv(EnvSteps, "")
	t.Setenv(EnvBits, "3.5")
	require.ErrorIs(t, cfg.LoadEnv(), ErrInvalidConfig)
}
