// Package geom holds the pure geometry used by charts: range and triangle
// containment, Delaunay triangulation and linear interpolation of a scalar
// field onto a regular grid. Nothing here keeps state.
package geom

import (
	"errors"
	"math"
)

// ErrDegenerate is returned when a point set cannot be triangulated
// (fewer than three distinct points, or all points collinear).
var ErrDegenerate = errors.New("degenerate point set")

// Vec is a point in the plane.
type Vec struct {
	X, Y float64
}

// InRange reports whether v lies in [lo, hi]. A nil side is unbounded.
func InRange(v float64, lo, hi *float64) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

// sign is the cross product of (p1-p3) and (p2-p3).
func sign(p1, p2, p3 Vec) float64 {
	return (p1.X-p3.X)*(p2.Y-p3.Y) - (p2.X-p3.X)*(p1.Y-p3.Y)
}

// InTriangle reports whether p lies inside or on the edge of triangle abc.
// The test is the three edge signs: p is outside only when a strictly
// negative and a strictly positive sign occur together.
func InTriangle(p, a, b, c Vec) bool {
	d1 := sign(p, a, b)
	d2 := sign(p, b, c)
	d3 := sign(p, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// Centroid returns the arithmetic mean of pts.
func Centroid(pts []Vec) Vec {
	var c Vec
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(pts))
	return Vec{X: c.X / n, Y: c.Y / n}
}

// Dist is the Euclidean distance between a and b.
func Dist(a, b Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}
