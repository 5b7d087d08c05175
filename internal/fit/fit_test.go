package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolyfitLine(t *testing.T) {
	xs := []float64{-2, -1, 0, 1, 2, 3}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2*x + 1
	}

	res, err := Fit(xs, ys, 1)
	require.NoError(t, err)
	require.Len(t, res.Coefficients, 2)
	assert.InDelta(t, 1.0, res.Coefficients[0], 1e-9)
	assert.InDelta(t, 2.0, res.Coefficients[1], 1e-9)
	assert.InDelta(t, 1.0, res.RSquared, 1e-12)
	assert.Equal(t, "1.00 + 2.00 x", res.Equation)
}

func TestPolyfitQuadratic(t *testing.T) {
	xs := []float64{-3, -1, 0, 2, 4}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 0.5*x*x - 3*x + 2
	}

	coeffs, err := Polyfit(xs, ys, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, -3, 0.5}, coeffs, 1e-9)
}

func TestPolyfitDegreeZeroIsMean(t *testing.T) {
	coeffs, err := Polyfit([]float64{1, 2, 3, 4}, []float64{1, 3, 5, 7}, 0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{4}, coeffs, 1e-12)
}

func TestPolyfitErrors(t *testing.T) {
	_, err := Polyfit([]float64{1, 2}, []float64{1, 2}, -1)
	assert.ErrorIs(t, err, ErrDegree)

	_, err = Polyfit([]float64{1, 2}, []float64{1, 2}, MaxDegree+1)
	assert.ErrorIs(t, err, ErrDegree)

	_, err = Polyfit([]float64{1, 2}, []float64{1, 2}, 1<<40)
	assert.ErrorIs(t, err, ErrDegree)

	_, err = Polyfit([]float64{1}, []float64{1}, 1)
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = Polyfit([]float64{1, 2}, []float64{1}, 1)
	assert.Error(t, err)
}

func TestRSquaredZeroVariance(t *testing.T) {
	_, err := Fit([]float64{1, 2, 3}, []float64{4, 4, 4}, 1)
	assert.ErrorIs(t, err, ErrUndefinedRSquared)
}

func TestRSquaredImperfect(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{0, 1, 0, 1}
	res, err := Fit(xs, ys, 1)
	require.NoError(t, err)
	assert.Greater(t, res.RSquared, 0.0)
	assert.Less(t, res.RSquared, 1.0)
}

func TestEval(t *testing.T) {
	assert.InDelta(t, 17.0, Eval([]float64{1, 2, 3}, 2), 1e-12)
	assert.Equal(t, 0.0, Eval(nil, 5))
}

func TestCurve(t *testing.T) {
	xs, ys := Curve([]float64{1, 2}, 0, 10, 11)
	require.Len(t, xs, 11)
	assert.InDelta(t, 0.0, xs[0], 1e-12)
	assert.InDelta(t, 10.0, xs[10], 1e-12)
	assert.InDelta(t, 21.0, ys[10], 1e-12)
}

func TestEquation(t *testing.T) {
	tests := []struct {
		coeffs []float64
		want   string
	}{
		{[]float64{1, 2}, "1.00 + 2.00 x"},
		{[]float64{1, -2}, "1.00 - 2.00 x"},
		{[]float64{-1.234, 0, 3.456}, "-1.23 + 3.46 x^2"},
		{[]float64{0, 0.001}, "0"},
		{[]float64{0, -0.5, 0, 1}, "-0.50 x + 1.00 x^3"},
		{nil, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Equation(tt.coeffs))
		})
	}
}
