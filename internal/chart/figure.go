package chart

import (
	"image/color"
	"math"
	"strings"

	"github.com/rewired-gh/plotbot/internal/colorhash"
	"github.com/rewired-gh/plotbot/internal/geom"
)

// Renderer turns a Figure into image bytes.
type Renderer interface {
	Render(f *Figure) ([]byte, error)
}

// Range is an axis limit pair. A nil side is chosen by the renderer.
type Range struct {
	Min, Max *float64
}

// Marker is one plotted point.
type Marker struct {
	Label      string
	X, Y       float64
	ErrX, ErrY float64
	Color      color.RGBA
}

// Annotation is free text placed at data coordinates.
type Annotation struct {
	Text string
	X, Y float64
}

// Curve is a sampled fitted polynomial.
type Curve struct {
	Xs, Ys []float64
	Legend string
}

// Field is a scalar field sampled on a regular grid, Z indexed [row][col]
// with rows following Ys. NaN marks nodes without a value.
type Field struct {
	Xs, Ys []float64
	Z      [][]float64
	Levels int
}

// Polygon is one radar entry.
type Polygon struct {
	Label  string
	Values []float64
	Color  color.RGBA
}

// Polar describes a radar chart: spokes at angle 2πi/N, one polygon per
// entry.
type Polar struct {
	Axes     []string
	Radius   float64
	Polygons []Polygon
}

// Angle returns the angle of spoke i.
func (p *Polar) Angle(i int) float64 {
	return 2 * math.Pi * float64(i) / float64(len(p.Axes))
}

// Figure is everything a Renderer needs to draw one chart image.
type Figure struct {
	Title       string
	XLabel      string
	YLabel      string
	X, Y        Range
	Grid        bool
	ZeroAxes    bool
	HLines      []float64
	VLines      []float64
	Outline     []geom.Vec
	Markers     []Marker
	ShowLabels  bool
	Annotations []Annotation
	Curve       *Curve
	Field       *Field
	Polar       *Polar
}

// Zoom overrides the axis limits for a single render.
type Zoom struct {
	MinX, MaxX, MinY, MaxY float64
}

func (z Zoom) validate() error {
	if z.MinX >= z.MaxX || z.MinY >= z.MaxY {
		return invalidf("zoom needs min x < max x and min y < max y")
	}
	return nil
}

// RenderOptions are per-call display switches. None of them persist.
type RenderOptions struct {
	Contour       bool
	Zoom          *Zoom
	HideLabels    bool
	ContourGrid   int
	ContourLevels int
}

const (
	defaultContourGrid   = 50
	defaultContourLevels = 8
)

// axisLabel joins the labels at the near (left/bottom) and far
// (right/top) ends of an axis.
func axisLabel(near, far string) string {
	switch {
	case near != "" && far != "":
		return "<-- " + near + " || " + far + " -->"
	case near != "":
		return near
	default:
		return far
	}
}

// thirdsLabel joins the non-empty third-band labels.
func thirdsLabel(parts [3]string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " || ")
}

// thirds returns the two boundaries and two dividers of [lo, hi].
func thirds(lo, hi float64) []float64 {
	w := hi - lo
	return []float64{lo, lo + w/3, lo + 2*w/3, hi}
}

func markers(points []Point) []Marker {
	out := make([]Marker, len(points))
	for i, p := range points {
		out[i] = Marker{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			ErrX:  p.ErrX,
			ErrY:  p.ErrY,
			Color: colorhash.RGB(p.Label),
		}
	}
	return out
}

func (f *Figure) apply(opts RenderOptions) error {
	f.ShowLabels = !opts.HideLabels
	if opts.Zoom != nil {
		if err := opts.Zoom.validate(); err != nil {
			return err
		}
		f.X = Range{Min: Float(opts.Zoom.MinX), Max: Float(opts.Zoom.MaxX)}
		f.Y = Range{Min: Float(opts.Zoom.MinY), Max: Float(opts.Zoom.MaxY)}
	}
	return nil
}

// centroidLabel marks the synthesized centre point in contour mode.
const centroidLabel = "centroid"

// addContour synthesizes the centroid of points, uses each point's
// distance to it as a field, and interpolates that field over the region
// spanned by b (data extent on unbounded sides).
func (f *Figure) addContour(points []Point, b Bounds, opts RenderOptions) error {
	if len(points) < 3 {
		return invalidf("contour mode needs at least 3 points")
	}
	grid := opts.ContourGrid
	if grid <= 1 {
		grid = defaultContourGrid
	}
	levels := opts.ContourLevels
	if levels <= 0 {
		levels = defaultContourLevels
	}

	pts := make([]geom.Vec, 0, len(points)+1)
	for _, p := range points {
		pts = append(pts, geom.Vec{X: p.X, Y: p.Y})
	}
	c := geom.Centroid(pts)
	pts = append(pts, c)

	z := make([]float64, len(pts))
	for i, p := range pts {
		z[i] = geom.Dist(p, c)
	}

	tris, err := geom.Triangulate(pts)
	if err != nil {
		return invalidf("contour mode needs points that are not all on one line")
	}

	x0, x1, y0, y1 := extent(pts, b)
	xs := geom.Linspace(x0, x1, grid)
	ys := geom.Linspace(y0, y1, grid)
	f.Field = &Field{
		Xs:     xs,
		Ys:     ys,
		Z:      geom.Interpolate(pts, z, tris, xs, ys),
		Levels: levels,
	}
	f.Markers = append(f.Markers, Marker{
		Label: centroidLabel,
		X:     c.X,
		Y:     c.Y,
		Color: color.RGBA{A: 255},
	})
	return nil
}

func extent(pts []geom.Vec, b Bounds) (x0, x1, y0, y1 float64) {
	x0, y0 = math.Inf(1), math.Inf(1)
	x1, y1 = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		x0, x1 = math.Min(x0, p.X), math.Max(x1, p.X)
		y0, y1 = math.Min(y0, p.Y), math.Max(y1, p.Y)
	}
	if b.MinX != nil {
		x0 = *b.MinX
	}
	if b.MaxX != nil {
		x1 = *b.MaxX
	}
	if b.MinY != nil {
		y0 = *b.MinY
	}
	if b.MaxY != nil {
		y1 = *b.MaxY
	}
	return x0, x1, y0, y1
}
