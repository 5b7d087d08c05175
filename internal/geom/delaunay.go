package geom

import (
	"math"

	"github.com/fogleman/delaunay"
)

// Triangle holds indices into the point slice passed to Triangulate.
type Triangle [3]int

// Triangulate computes a Delaunay triangulation of pts. Repeated
// coordinates are triangulated once.
func Triangulate(pts []Vec) ([]Triangle, error) {
	if len(pts) < 3 {
		return nil, ErrDegenerate
	}
	distinct := false
	in := make([]delaunay.Point, len(pts))
	for i, p := range pts {
		in[i] = delaunay.Point{X: p.X, Y: p.Y}
		distinct = distinct || p != pts[0]
	}
	if !distinct {
		return nil, ErrDegenerate
	}
	t, err := delaunay.Triangulate(in)
	if err != nil {
		return nil, ErrDegenerate
	}

	out := make([]Triangle, 0, len(t.Triangles)/3)
	for i := 0; i+2 < len(t.Triangles); i += 3 {
		tr := Triangle{t.Triangles[i], t.Triangles[i+1], t.Triangles[i+2]}
		if sign(pts[tr[0]], pts[tr[1]], pts[tr[2]]) == 0 {
			continue
		}
		out = append(out, tr)
	}
	if len(out) == 0 {
		return nil, ErrDegenerate
	}
	return out, nil
}

// barycentric returns the weights of p relative to triangle abc and false
// when the triangle has no area.
func barycentric(p, a, b, c Vec) (l1, l2, l3 float64, ok bool) {
	det := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if det == 0 {
		return 0, 0, 0, false
	}
	l1 = ((b.Y-c.Y)*(p.X-c.X) + (c.X-b.X)*(p.Y-c.Y)) / det
	l2 = ((c.Y-a.Y)*(p.X-c.X) + (a.X-c.X)*(p.Y-c.Y)) / det
	l3 = 1 - l1 - l2
	return l1, l2, l3, true
}

const baryEps = 1e-9

// Interpolate linearly interpolates the field z (one value per point) over
// the triangulation onto the grid xs × ys. The result is indexed
// [row][col] with rows following ys. Grid nodes outside the convex hull are
// NaN.
func Interpolate(pts []Vec, z []float64, tris []Triangle, xs, ys []float64) [][]float64 {
	grid := make([][]float64, len(ys))
	for r, y := range ys {
		row := make([]float64, len(xs))
		for c, x := range xs {
			row[c] = math.NaN()
			p := Vec{x, y}
			for _, t := range tris {
				l1, l2, l3, ok := barycentric(p, pts[t[0]], pts[t[1]], pts[t[2]])
				if !ok || l1 < -baryEps || l2 < -baryEps || l3 < -baryEps {
					continue
				}
				row[c] = l1*z[t[0]] + l2*z[t[1]] + l3*z[t[2]]
				break
			}
		}
		grid[r] = row
	}
	return grid
}
