package chart

import (
	"strconv"

	"github.com/rewired-gh/plotbot/internal/geom"
)

// Region is the valid input domain of an XY chart.
type Region interface {
	// Contains reports whether (x, y) lies in the region.
	Contains(x, y float64) bool
	// Admits reports whether p and every extreme of its error bars lie in
	// the region.
	Admits(p Point) bool
	String() string
}

// Bounds is an axis-aligned rectangle. A nil side is unbounded.
type Bounds struct {
	MinX *float64 `json:"min_x"`
	MaxX *float64 `json:"max_x"`
	MinY *float64 `json:"min_y"`
	MaxY *float64 `json:"max_y"`
}

// Float returns a pointer to v, for building Bounds literals.
func Float(v float64) *float64 {
	return &v
}

// NewBounds returns fully bounded Bounds.
func NewBounds(minX, maxX, minY, maxY float64) Bounds {
	return Bounds{MinX: Float(minX), MaxX: Float(maxX), MinY: Float(minY), MaxY: Float(maxY)}
}

// Contains implements Region.
func (b Bounds) Contains(x, y float64) bool {
	return geom.InRange(x, b.MinX, b.MaxX) && geom.InRange(y, b.MinY, b.MaxY)
}

// Admits checks the two opposite corners of the error box; for a rectangle
// the other two corners follow.
func (b Bounds) Admits(p Point) bool {
	return b.Contains(p.X-p.ErrX, p.Y-p.ErrY) && b.Contains(p.X+p.ErrX, p.Y+p.ErrY)
}

func (b Bounds) String() string {
	return "x : [" + side(b.MinX) + ", " + side(b.MaxX) + "] y : [" + side(b.MinY) + ", " + side(b.MaxY) + "]"
}

func (b Bounds) clone() Bounds {
	c := Bounds{}
	if b.MinX != nil {
		c.MinX = Float(*b.MinX)
	}
	if b.MaxX != nil {
		c.MaxX = Float(*b.MaxX)
	}
	if b.MinY != nil {
		c.MinY = Float(*b.MinY)
	}
	if b.MaxY != nil {
		c.MaxY = Float(*b.MaxY)
	}
	return c
}

func (b Bounds) validate() error {
	if b.MinX != nil && b.MaxX != nil && *b.MinX >= *b.MaxX {
		return invalidf("min x (%g) must be less than max x (%g)", *b.MinX, *b.MaxX)
	}
	if b.MinY != nil && b.MaxY != nil && *b.MinY >= *b.MaxY {
		return invalidf("min y (%g) must be less than max y (%g)", *b.MinY, *b.MaxY)
	}
	return nil
}

func side(v *float64) string {
	if v == nil {
		return "_"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// Triangle is the simplex region with vertices (MinX, MinY),
// (MaxX/2, MaxY) and (MaxX, MinY).
type Triangle struct {
	MinX, MaxX, MinY, MaxY float64
}

func (t Triangle) vertices() (a, b, c geom.Vec) {
	return geom.Vec{X: t.MinX, Y: t.MinY},
		geom.Vec{X: t.MaxX / 2, Y: t.MaxY},
		geom.Vec{X: t.MaxX, Y: t.MinY}
}

// Contains implements Region. Points on an edge are inside.
func (t Triangle) Contains(x, y float64) bool {
	a, b, c := t.vertices()
	return geom.InTriangle(geom.Vec{X: x, Y: y}, a, b, c)
}

// Admits checks the four corners of the error box and the two vertical
// extremes through the point.
func (t Triangle) Admits(p Point) bool {
	probes := [][2]float64{
		{p.X - p.ErrX, p.Y - p.ErrY},
		{p.X - p.ErrX, p.Y + p.ErrY},
		{p.X + p.ErrX, p.Y - p.ErrY},
		{p.X + p.ErrX, p.Y + p.ErrY},
		{p.X, p.Y - p.ErrY},
		{p.X, p.Y + p.ErrY},
	}
	for _, q := range probes {
		if !t.Contains(q[0], q[1]) {
			return false
		}
	}
	return true
}

func (t Triangle) String() string {
	a, b, c := t.vertices()
	return "triangle (" + vec(a) + "), (" + vec(b) + "), (" + vec(c) + ")"
}

func vec(v geom.Vec) string {
	return strconv.FormatFloat(v.X, 'g', -1, 64) + ", " + strconv.FormatFloat(v.Y, 'g', -1, 64)
}
