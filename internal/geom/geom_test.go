package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestInRange(t *testing.T) {
	assert.True(t, InRange(5, fp(0), fp(10)))
	assert.True(t, InRange(0, fp(0), fp(10)))
	assert.True(t, InRange(10, fp(0), fp(10)))
	assert.False(t, InRange(-0.1, fp(0), fp(10)))
	assert.False(t, InRange(10.1, fp(0), fp(10)))
	assert.True(t, InRange(1e9, fp(0), nil))
	assert.True(t, InRange(-1e9, nil, nil))
}

func TestInTriangle(t *testing.T) {
	a, b, c := Vec{0, 0}, Vec{5, 10}, Vec{10, 0}

	tests := []struct {
		name string
		p    Vec
		want bool
	}{
		{"apex", Vec{5, 10}, true},
		{"top left corner of box", Vec{0, 10}, false},
		{"bottom edge midpoint", Vec{5, 0}, true},
		{"interior", Vec{5, 3}, true},
		{"below base", Vec{5, -0.01}, false},
		{"left vertex", Vec{0, 0}, true},
		{"right of triangle", Vec{9, 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InTriangle(tt.p, a, b, c))
		})
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(-10, 10, 5)
	assert.Equal(t, []float64{-10, -5, 0, 5, 10}, got)
	assert.Nil(t, Linspace(0, 1, 0))
	assert.Equal(t, []float64{3}, Linspace(3, 7, 1))
}

func TestCentroidAndDist(t *testing.T) {
	c := Centroid([]Vec{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
	assert.Equal(t, Vec{2, 2}, c)
	assert.InDelta(t, 5.0, Dist(Vec{0, 0}, Vec{3, 4}), 1e-12)
}

func TestTriangulateSquare(t *testing.T) {
	pts := []Vec{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	tris, err := Triangulate(pts)
	require.NoError(t, err)
	assert.Len(t, tris, 2)

	var area float64
	for _, tr := range tris {
		a, b, c := pts[tr[0]], pts[tr[1]], pts[tr[2]]
		area += math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
	}
	assert.InDelta(t, 1.0, area, 1e-9)
}

func TestTriangulateRepeatedPoint(t *testing.T) {
	pts := []Vec{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {2, 2}, {1, 1}}
	tris, err := Triangulate(pts)
	require.NoError(t, err)
	assert.Len(t, tris, 4)

	var area float64
	for _, tr := range tris {
		for _, i := range tr {
			require.Less(t, i, len(pts))
		}
		a, b, c := pts[tr[0]], pts[tr[1]], pts[tr[2]]
		area += math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
	}
	assert.InDelta(t, 4.0, area, 1e-9)
}

func TestTriangulateDegenerate(t *testing.T) {
	_, err := Triangulate([]Vec{{0, 0}, {1, 1}})
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = Triangulate([]Vec{{0, 0}, {1, 1}, {2, 2}, {3, 3}})
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = Triangulate([]Vec{{1, 1}, {1, 1}, {1, 1}})
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestInterpolatePlane(t *testing.T) {
	// z = x + 2y is reproduced exactly by linear interpolation.
	pts := []Vec{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {2, 2}}
	z := make([]float64, len(pts))
	for i, p := range pts {
		z[i] = p.X + 2*p.Y
	}
	tris, err := Triangulate(pts)
	require.NoError(t, err)

	xs := Linspace(0, 4, 5)
	ys := Linspace(0, 4, 5)
	grid := Interpolate(pts, z, tris, xs, ys)
	require.Len(t, grid, len(ys))
	for r, y := range ys {
		for c, x := range xs {
			assert.InDelta(t, x+2*y, grid[r][c], 1e-9)
		}
	}

	outside := Interpolate(pts, z, tris, []float64{10}, []float64{10})
	assert.True(t, math.IsNaN(outside[0][0]))
}
