// Package chart is the chart entity model: label-keyed point storage,
// bounds checking against each chart kind's geometry, polynomial fitting,
// crowdsourced placement and the assembly of render parameters.
//
// Five kinds share one contract. Rectangular, Quadrant, Alignment and
// Simplex store (x, y) points and can be fitted; Radar stores one value per
// spoke and cannot.
package chart

import (
	"fmt"
	"math"

	"github.com/rewired-gh/plotbot/internal/fit"
	"github.com/rewired-gh/plotbot/internal/stats"
)

// Kind names a chart variant.
type Kind string

const (
	KindRectangular Kind = "rectangular"
	KindQuadrant    Kind = "quadrant"
	KindAlignment   Kind = "alignment"
	KindSimplex     Kind = "simplex"
	KindRadar       Kind = "radar"
)

// Chart is implemented by every chart kind.
type Chart interface {
	Kind() Kind
	Info() *Meta
	SetID(id int)
	ClaimCreator(name string, userID int64) bool
	Title() string
	Labels() []string
	Len() int
	Remove(label string) error
	Figure(opts RenderOptions) (*Figure, error)
}

// XYChart is a chart of (x, y) points.
type XYChart interface {
	Chart
	Region() Region
	Plot(p Point) error
	Lookup(label string) (Point, error)
	Points() []Point
}

// Crowdsourced charts accept averaged placements contributed by other
// users.
type Crowdsourced interface {
	Chart
	Dimensions() int
	SetConsent(userID int64, name string, enabled bool)
	Crowdsource(contributorID int64, contributorName, subject string, values []float64) error
	Contributions(subject string) []Contribution
	ConsentingUsers() []string
}

// MetaEdit changes shared attributes; nil fields are left alone.
type MetaEdit struct {
	Name         *string
	CustomPoints *bool
}

func (m *Meta) apply(e MetaEdit) {
	if e.Name != nil {
		m.Name = *e.Name
	}
	if e.CustomPoints != nil {
		m.CustomPoints = *e.CustomPoints
	}
}

// Render builds the chart's figure and renders it.
func Render(c Chart, r Renderer, opts RenderOptions) ([]byte, error) {
	f, err := c.Figure(opts)
	if err != nil {
		return nil, err
	}
	return r.Render(f)
}

// FitResult is a rendered fit.
type FitResult struct {
	fit.Result
	Image []byte
}

// Fit fits a polynomial of the given degree to the chart's points and
// renders the chart with the fitted curve.
func Fit(c XYChart, r Renderer, degree int, opts RenderOptions) (FitResult, error) {
	res, err := fitPoints(c.Points(), degree)
	if err != nil {
		return FitResult{}, err
	}
	f, err := c.Figure(opts)
	if err != nil {
		return FitResult{}, err
	}
	xs := pointXs(c.Points())
	lo, hi := minMax(xs)
	cx, cy := fit.Curve(res.Coefficients, lo, hi, 10*len(xs))
	f.Curve = &Curve{Xs: cx, Ys: cy, Legend: res.Equation}

	img, err := r.Render(f)
	if err != nil {
		return FitResult{}, err
	}
	return FitResult{Result: res, Image: img}, nil
}

// Regress fits without rendering.
func Regress(c XYChart, degree int) (fit.Result, error) {
	return fitPoints(c.Points(), degree)
}

// FullEquation fits without rendering and returns only the equation.
func FullEquation(c XYChart, degree int) (string, error) {
	res, err := Regress(c, degree)
	if err != nil {
		return "", err
	}
	return res.Equation, nil
}

func fitPoints(points []Point, degree int) (fit.Result, error) {
	if degree < 0 || degree > fit.MaxDegree {
		return fit.Result{}, fmt.Errorf("%w: %w", ErrInvalid, fit.ErrDegree)
	}
	if len(points) < 2 {
		return fit.Result{}, fmt.Errorf("%w: %w", ErrInvalid, fit.ErrTooFewPoints)
	}
	res, err := fit.Fit(pointXs(points), pointYs(points), degree)
	if err != nil {
		return fit.Result{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return res, nil
}

// Describe summarises the chart's values: X and Y for point charts, one
// series per axis for radar charts.
func Describe(c Chart) (stats.Table, error) {
	if c.Len() == 0 {
		return nil, invalidf("there are no points to describe")
	}
	switch v := c.(type) {
	case XYChart:
		pts := v.Points()
		return stats.Table{
			stats.Describe("X", pointXs(pts)),
			stats.Describe("Y", pointYs(pts)),
		}, nil
	case *Radar:
		tbl := make(stats.Table, len(v.Axes))
		for i, axis := range v.Axes {
			tbl[i] = stats.Describe(axis, v.Vectors.Column(i))
		}
		return tbl, nil
	default:
		return nil, invalidf("cannot describe a %s chart", c.Kind())
	}
}

func pointXs(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.X
	}
	return out
}

func pointYs(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Y
	}
	return out
}

func minMax(vs []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// xy holds the point store shared by the XY kinds.
type xy struct {
	Store PointStore `json:"points"`
}

func (c *xy) Labels() []string { return c.Store.Labels() }
func (c *xy) Len() int         { return c.Store.Len() }
func (c *xy) Points() []Point  { return c.Store.Points() }

func (c *xy) Lookup(label string) (Point, error) { return c.Store.Lookup(label) }

func (c *xy) plot(m *Meta, region Region, p Point) error {
	if err := c.Store.Upsert(region, p); err != nil {
		return err
	}
	m.touch()
	return nil
}

func (c *xy) remove(m *Meta, label string) error {
	if err := c.Store.Remove(label); err != nil {
		return err
	}
	m.touch()
	return nil
}
