package render

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"github.com/rewired-gh/plotbot/internal/chart"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func renderer() *Renderer {
	return New(Options{Width: 4, Height: 4})
}

func TestRenderCharts(t *testing.T) {
	rect, err := chart.NewRectangular(chart.NewCreator("alice", 1), chart.RectangularOptions{
		Name:  "cats",
		XLeft: "small", XRight: "big",
	})
	require.NoError(t, err)
	require.NoError(t, rect.Plot(chart.Point{Label: "tom", X: 1, Y: 2, ErrX: 0.5, ErrY: 1}))
	require.NoError(t, rect.Plot(chart.Point{Label: "felix", X: -3, Y: 4}))
	require.NoError(t, rect.Plot(chart.Point{Label: "garfield", X: 6, Y: -2}))

	simplex, err := chart.NewSimplex(chart.NewCreator("alice", 1), chart.SimplexOptions{Corners: [3]string{"a", "b", "c"}})
	require.NoError(t, err)
	require.NoError(t, simplex.Plot(chart.Point{Label: "p", X: 5, Y: 3}))

	radar, err := chart.NewRadar(chart.NewCreator("alice", 1), chart.RadarOptions{Axes: []string{"str", "dex", "int", "wis"}})
	require.NoError(t, err)
	require.NoError(t, radar.Plot(chart.Vector{Label: "rogue", Values: []float64{2, 9, 5, 3}}))

	tests := []struct {
		name string
		c    chart.Chart
		opts chart.RenderOptions
	}{
		{"rectangular", rect, chart.RenderOptions{}},
		{"contour", rect, chart.RenderOptions{Contour: true, ContourGrid: 20}},
		{"hidden labels", rect, chart.RenderOptions{HideLabels: true}},
		{"quadrant", chart.NewQuadrant(chart.NewCreator("alice", 1), chart.QuadrantOptions{}), chart.RenderOptions{}},
		{"alignment", chart.NewAlignment(chart.NewCreator("alice", 1), chart.AlignmentOptions{}), chart.RenderOptions{}},
		{"simplex", simplex, chart.RenderOptions{}},
		{"radar", radar, chart.RenderOptions{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := chart.Render(tt.c, renderer(), tt.opts)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(img, pngMagic))
		})
	}
}

func TestRenderFit(t *testing.T) {
	rect, err := chart.NewRectangular(chart.NewCreator("alice", 1), chart.RectangularOptions{})
	require.NoError(t, err)
	for i, x := range []float64{-4, -1, 2, 5} {
		require.NoError(t, rect.Plot(chart.Point{Label: string(rune('a' + i)), X: x, Y: 0.5*x*x - 3}))
	}
	res, err := chart.Fit(rect, renderer(), 2, chart.RenderOptions{})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.RSquared, 1e-9)
	assert.True(t, bytes.HasPrefix(res.Image, pngMagic))
}

func TestLimits(t *testing.T) {
	lo, hi := limits(chart.Range{}, nil)
	assert.Less(t, lo, -1.0)
	assert.Greater(t, hi, 1.0)

	lo, hi = limits(chart.Range{Min: chart.Float(0)}, []float64{2, 4})
	assert.Equal(t, 0.0, lo)
	assert.InDelta(t, 4.2, hi, 1e-9)

	lo, hi = limits(chart.Range{}, []float64{3, 3, math.NaN()})
	assert.Less(t, lo, 3.0)
	assert.Greater(t, hi, 3.0)

	lo, hi = limits(chart.Range{Min: chart.Float(5), Max: chart.Float(5)}, nil)
	assert.Equal(t, 5.0, lo)
	assert.Equal(t, 6.0, hi)
}

func TestFieldPlotters(t *testing.T) {
	nan := math.NaN()
	f := &chart.Field{Xs: []float64{0, 1}, Ys: []float64{0, 1}, Z: [][]float64{{nan, nan}, {nan, nan}}, Levels: 4}
	assert.Nil(t, fieldPlotters(f))

	f.Z[1][1] = 2
	ps := fieldPlotters(f)
	require.Len(t, ps, 1)
	assert.IsType(t, &plotter.HeatMap{}, ps[0])

	f.Z = [][]float64{{0, 1}, {2, nan}}
	ps = fieldPlotters(f)
	require.Len(t, ps, 2)
	assert.IsType(t, &plotter.HeatMap{}, ps[0])
	c, ok := ps[1].(*plotter.Contour)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0.5, 1, 1.5}, c.Levels, 1e-12)
	assert.Equal(t, 2.0, c.GridXYZ.Z(1, 1))
}
