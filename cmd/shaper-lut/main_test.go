package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	shaperlut "github.com/tphakala/go-shaper-lut"
	"github.com/tphakala/go-shaper-lut/internal/testutil"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = run(args, &out, &errOut)
	return out.String(), errOut.String(), err
}

// generateFixture writes a 256-step 16-bit calibration file.
func generateFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calibration.wav")
	stdout, _, err := runCLI(t, "generate", "-steps", "256", "-bits", "16", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "Wrote calibration.wav")
	return path
}

func TestRun_Usage(t *testing.T) {
	_, stderr, err := runCLI(t)
	require.ErrorIs(t, err, errUsage)
	assert.Contains(t, stderr, "Usage: shaper-lut")

	_, _, err = runCLI(t, "measure")
	require.ErrorIs(t, err, errUsage)

	_, _, err = runCLI(t, "-h")
	require.ErrorIs(t, err, flag.ErrHelp)
}

func TestRun_Generate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.wav")
	stdout, stderr, err := runCLI(t, "generate", "-steps", "256", "-bits", "16", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "256 steps x 1024 samples, 16-bit, 48000 Hz, 5.504s")
	assert.Contains(t, stderr, "calibration file written")
	assert.FileExists(t, path)

	_, _, err = runCLI(t, "generate", "-steps", "300", path)
	require.ErrorIs(t, err, shaperlut.ErrInvalidParameter)

	_, _, err = runCLI(t, "generate")
	require.ErrorIs(t, err, errUsage)
}

func TestRun_GenerateFromEnv(t *testing.T) {
	t.Setenv(shaperlut.EnvSteps, "512")
	t.Setenv(shaperlut.EnvBits, "16")

	path := filepath.Join(t.TempDir(), "cal.wav")
	stdout, _, err := runCLI(t, "generate", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "512 steps x 1024 samples, 16-bit")
}

func TestRun_AnalyzeToFile(t *testing.T) {
	cal := generateFixture(t)
	out := filepath.Join(t.TempDir(), "tube.h")

	stdout, _, err := runCLI(t, "analyze", "-steps", "256", "-name", "tube", "-compare", "x", "-o", out, cal, cal)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Transfer curve: 256/256 steps\n")
	assert.Contains(t, stdout, "Monotonic: true")
	assert.Contains(t, stdout, "Reference x: rms error 0.000000, max error 0.000000")
	assert.Contains(t, stdout, "Wrote tube.h")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "const int tube_table_size = 256;")
	assert.Contains(t, string(data), "const float tube_LUT_scale = 127.5f;")
}

func TestRun_AnalyzeToStdout(t *testing.T) {
	cal := generateFixture(t)

	stdout, stderr, err := runCLI(t, "analyze", "-steps", "256", cal, cal)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "/*"), "stdout holds only the table")
	assert.Contains(t, stdout, "const float shaper_table[256] = {")
	assert.Contains(t, stderr, "Transfer curve: 256/256 steps")
}

func TestRun_AnalyzeStepsFromCalibration(t *testing.T) {
	cal := generateFixture(t)

	stdout, stderr, err := runCLI(t, "analyze", cal, cal)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Transfer curve: 256/256 steps\n")
	assert.Contains(t, stdout, "const int shaper_table_size = 256;")
}

func TestRun_AnalyzeErrors(t *testing.T) {
	cal := generateFixture(t)

	_, _, err := runCLI(t, "analyze", "-steps", "256", cal)
	require.ErrorIs(t, err, errUsage)

	_, _, err = runCLI(t, "analyze", "-steps", "256", "-rate-mismatch", "ignore", cal, cal)
	require.ErrorIs(t, err, shaperlut.ErrInvalidConfig)

	_, _, err = runCLI(t, "analyze", "-steps", "256", cal, filepath.Join(t.TempDir(), "missing.wav"))
	require.ErrorIs(t, err, shaperlut.ErrIO)

	_, _, err = runCLI(t, "analyze", "-steps", "256", "-compare", "sin(", cal, cal)
	require.ErrorIs(t, err, shaperlut.ErrSyntax)
}

func TestRun_Eval(t *testing.T) {
	stdout, _, err := runCLI(t, "eval", "-expr", "x", "-steps", "4", "-name", "ramp")
	require.NoError(t, err)
	assert.Contains(t, stdout, "const float ramp_table[4] = {\n    -1.000000f, -0.333333f, 0.333333f, 1.000000f\n};")
	assert.Contains(t, stdout, "const float ramp_LUT_scale = 1.5f;")

	out := filepath.Join(t.TempDir(), "clip.h")
	stdout, _, err = runCLI(t, "eval", "-expr", "clip(2*x)", "-steps", "8", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote clip.h")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "const int shaper_table_size = 8;")

	_, _, err = runCLI(t, "eval", "-steps", "8")
	require.ErrorIs(t, err, errUsage)

	_, _, err = runCLI(t, "eval", "-expr", "foo(x)")
	require.ErrorIs(t, err, shaperlut.ErrUnknownFunction)
}

func TestRun_StdoutWriteFailure(t *testing.T) {
	err := run([]string{"eval", "-expr", "x", "-steps", "4"}, &testutil.FailingWriteSeeker{}, &bytes.Buffer{})
	require.ErrorIs(t, err, shaperlut.ErrIO)
	require.ErrorIs(t, err, testutil.ErrInjected)

	cal := generateFixture(t)
	err = run([]string{"analyze", "-steps", "256", cal, cal}, &testutil.FailingWriteSeeker{}, &bytes.Buffer{})
	require.ErrorIs(t, err, testutil.ErrInjected)
}

func TestRun_JSONLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.wav")
	_, stderr, err := runCLI(t, "-json", "generate", "-steps", "256", "-bits", "16", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"calibration file written"`)
	assert.Contains(t, stderr, `"steps":256`)
}

func TestProgressTracker(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := newProgressTracker(zap.New(core), "/tmp/measured.wav")

	for _, pct := range []float64{0, 4, 9.9, 10, 15, 21, 55, 95, 100, 100} {
		p.report(pct)
	}

	var got []int64
	for _, e := range logs.FilterMessage("decoding").All() {
		assert.Equal(t, "measured.wav", e.ContextMap()["file"])
		got = append(got, e.ContextMap()["progress"].(int64))
	}
	assert.Equal(t, []int64{0, 10, 21, 55, 95, 100}, got)
}
