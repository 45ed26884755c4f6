package lut

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsShortCurves(t *testing.T) {
	for _, values := range [][]float64{nil, {}, {0.5}} {
		_, err := New("shaper", values)
		require.ErrorIs(t, err, ErrInvalidExport, "len=%d", len(values))
	}
}

func TestNew_RejectsBadNames(t *testing.T) {
	for _, name := range []string{"1abc", "has space", "dash-name", "semi;colon"} {
		_, err := New(name, []float64{-1, 1})
		require.ErrorIs(t, err, ErrInvalidExport, "name=%q", name)
	}

	tbl, err := New("", []float64{-1, 1})
	require.NoError(t, err)
	assert.Equal(t, DefaultName, tbl.Name)

	_, err = New("_tube_2", []float64{-1, 1})
	require.NoError(t, err)
}

func TestNew_RejectsNonFinite(t *testing.T) {
	_, err := New("shaper", []float64{0, math.NaN(), 1})
	require.ErrorIs(t, err, ErrInvalidExport)
	_, err = New("shaper", []float64{0, math.Inf(1)})
	require.ErrorIs(t, err, ErrInvalidExport)
}

func TestNew_CopiesValues(t *testing.T) {
	values := []float64{-1, 0, 1}
	tbl, err := New("shaper", values)
	require.NoError(t, err)
	values[0] = 42
	assert.Equal(t, -1.0, tbl.Values[0])
}

func TestTable_Scale(t *testing.T) {
	for _, n := range []int{2, 3, 8, 256, 4096, 32768} {
		tbl, err := New("shaper", make([]float64, n))
		require.NoError(t, err)
		assert.Equal(t, float64(n-1)/2.0, tbl.Scale(), "n=%d", n)
	}
}

func TestTable_EvalIdentity(t *testing.T) {
	n := 17
	values := make([]float64, n)
	for i := range values {
		values[i] = -1 + 2*float64(i)/float64(n-1)
	}
	tbl, err := New("identity", values)
	require.NoError(t, err)

	for _, x := range []float64{-1, -0.9, -0.5, -0.013, 0, 0.25, 0.77, 0.999, 1} {
		assert.InDelta(t, x, tbl.Eval(x), 1e-12, "x=%v", x)
	}
}

func TestTable_EvalInterpolatesBetweenEntries(t *testing.T) {
	tbl, err := New("shaper", []float64{0, 1, 0})
	require.NoError(t, err)

	assert.Equal(t, 0.0, tbl.Eval(-1))
	assert.InDelta(t, 0.5, tbl.Eval(-0.5), 1e-15)
	assert.Equal(t, 1.0, tbl.Eval(0))
	assert.InDelta(t, 0.5, tbl.Eval(0.5), 1e-15)
	assert.Equal(t, 0.0, tbl.Eval(1))
}

func TestTable_EvalClampsInput(t *testing.T) {
	tbl, err := New("shaper", []float64{-0.8, 0.1, 0.9})
	require.NoError(t, err)

	assert.Equal(t, -0.8, tbl.Eval(-5))
	assert.Equal(t, 0.9, tbl.Eval(5))
	assert.Equal(t, []float64{-0.8, 0.9}, tbl.EvalVector([]float64{-2, 2}))
	assert.Equal(t, -0.8, tbl.Eval(math.Inf(-1)))
	assert.Equal(t, 0.9, tbl.Eval(math.Inf(1)))

	assert.True(t, math.IsNaN(tbl.Eval(math.NaN())))
	got := tbl.EvalVector([]float64{0, math.NaN()})
	assert.Equal(t, 0.1, got[0])
	assert.True(t, math.IsNaN(got[1]))
}
