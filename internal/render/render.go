// Package render draws chart figures to PNG with gonum/plot.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/rewired-gh/plotbot/internal/chart"
)

// Options size the output image.
type Options struct {
	// Width and Height are in inches.
	Width  float64
	Height float64
	// Format is any format vg supports; png by default.
	Format string
}

// DefaultOptions match the size used for chat photos.
func DefaultOptions() Options {
	return Options{Width: 8, Height: 8, Format: "png"}
}

// Renderer implements chart.Renderer.
type Renderer struct {
	width, height vg.Length
	format        string
}

// New creates a renderer. Zero fields fall back to DefaultOptions.
func New(o Options) *Renderer {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Format == "" {
		o.Format = d.Format
	}
	return &Renderer{
		width:  vg.Length(o.Width) * vg.Inch,
		height: vg.Length(o.Height) * vg.Inch,
		format: o.Format,
	}
}

var (
	gridColor    = color.Gray{Y: 220}
	axisColor    = color.Gray{Y: 90}
	outlineColor = color.Black
	curveColor   = color.RGBA{R: 52, G: 152, B: 219, A: 255}
)

// Render draws f and returns the encoded image.
func (r *Renderer) Render(f *chart.Figure) ([]byte, error) {
	p := plot.New()
	p.Title.Text = f.Title
	p.BackgroundColor = color.White

	var err error
	if f.Polar != nil {
		err = drawPolar(p, f)
	} else {
		err = drawCartesian(p, f)
	}
	if err != nil {
		return nil, err
	}

	wt, err := p.WriterTo(r.width, r.height, r.format)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s writer: %w", r.format, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode figure: %w", err)
	}
	return buf.Bytes(), nil
}

func drawCartesian(p *plot.Plot, f *chart.Figure) error {
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel

	x0, x1 := limits(f.X, xExtent(f))
	y0, y1 := limits(f.Y, yExtent(f))

	if f.Grid {
		g := plotter.NewGrid()
		g.Vertical.Color = gridColor
		g.Horizontal.Color = gridColor
		p.Add(g)
	}
	if f.Field != nil {
		p.Add(fieldPlotters(f.Field)...)
	}
	if f.ZeroAxes {
		if y0 <= 0 && 0 <= y1 {
			if err := addLine(p, plotter.XYs{{X: x0, Y: 0}, {X: x1, Y: 0}}, axisColor, 1, false); err != nil {
				return err
			}
		}
		if x0 <= 0 && 0 <= x1 {
			if err := addLine(p, plotter.XYs{{X: 0, Y: y0}, {X: 0, Y: y1}}, axisColor, 1, false); err != nil {
				return err
			}
		}
	}
	for _, y := range f.HLines {
		if err := addLine(p, plotter.XYs{{X: x0, Y: y}, {X: x1, Y: y}}, outlineColor, 1, false); err != nil {
			return err
		}
	}
	for _, x := range f.VLines {
		if err := addLine(p, plotter.XYs{{X: x, Y: y0}, {X: x, Y: y1}}, outlineColor, 1, false); err != nil {
			return err
		}
	}
	if len(f.Outline) > 1 {
		xys := make(plotter.XYs, len(f.Outline))
		for i, v := range f.Outline {
			xys[i] = plotter.XY{X: v.X, Y: v.Y}
		}
		if err := addLine(p, xys, outlineColor, 1.5, false); err != nil {
			return err
		}
	}
	if f.Curve != nil && len(f.Curve.Xs) > 1 {
		xys := make(plotter.XYs, len(f.Curve.Xs))
		for i := range f.Curve.Xs {
			xys[i] = plotter.XY{X: f.Curve.Xs[i], Y: f.Curve.Ys[i]}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("failed to build curve: %w", err)
		}
		line.LineStyle.Color = curveColor
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		p.Add(line)
		p.Legend.Add(f.Curve.Legend, line)
		p.Legend.Top = true
	}
	if err := addMarkers(p, f); err != nil {
		return err
	}
	if err := addAnnotations(p, f.Annotations); err != nil {
		return err
	}

	p.X.Min, p.X.Max = x0, x1
	p.Y.Min, p.Y.Max = y0, y1
	return nil
}

type xErrPoints struct {
	plotter.XYs
	plotter.XErrors
}

type yErrPoints struct {
	plotter.XYs
	plotter.YErrors
}

func addMarkers(p *plot.Plot, f *chart.Figure) error {
	if len(f.Markers) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(f.Markers))
	labels := make([]string, len(f.Markers))
	var xe xErrPoints
	var ye yErrPoints
	for i, m := range f.Markers {
		xys[i] = plotter.XY{X: m.X, Y: m.Y}
		labels[i] = m.Label
		if m.ErrX > 0 {
			xe.XYs = append(xe.XYs, xys[i])
			xe.XErrors = append(xe.XErrors, struct{ Low, High float64 }{m.ErrX, m.ErrX})
		}
		if m.ErrY > 0 {
			ye.XYs = append(ye.XYs, xys[i])
			ye.YErrors = append(ye.YErrors, struct{ Low, High float64 }{m.ErrY, m.ErrY})
		}
	}

	if len(xe.XYs) > 0 {
		bars, err := plotter.NewXErrorBars(xe)
		if err != nil {
			return fmt.Errorf("failed to build x error bars: %w", err)
		}
		p.Add(bars)
	}
	if len(ye.XYs) > 0 {
		bars, err := plotter.NewYErrorBars(ye)
		if err != nil {
			return fmt.Errorf("failed to build y error bars: %w", err)
		}
		p.Add(bars)
	}

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("failed to build markers: %w", err)
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(4)
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		gs := s.GlyphStyle
		gs.Color = f.Markers[i].Color
		return gs
	}
	p.Add(s)

	if !f.ShowLabels {
		return nil
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("failed to build marker labels: %w", err)
	}
	l.Offset = vg.Point{X: vg.Points(5), Y: vg.Points(5)}
	p.Add(l)
	return nil
}

func addAnnotations(p *plot.Plot, as []chart.Annotation) error {
	if len(as) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(as))
	texts := make([]string, len(as))
	for i, a := range as {
		xys[i] = plotter.XY{X: a.X, Y: a.Y}
		texts[i] = a.Text
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return fmt.Errorf("failed to build annotations: %w", err)
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = draw.XCenter
		l.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(l)
	return nil
}

func addLine(p *plot.Plot, xys plotter.XYs, c color.Color, width float64, dashed bool) error {
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("failed to build line: %w", err)
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(width)
	if dashed {
		line.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	}
	p.Add(line)
	return nil
}

// field adapts chart.Field to plotter.GridXYZ.
type field struct {
	f        *chart.Field
	min, max float64
}

func (g field) Dims() (c, r int)   { return len(g.f.Xs), len(g.f.Ys) }
func (g field) Z(c, r int) float64 { return g.f.Z[r][c] }
func (g field) X(c int) float64    { return g.f.Xs[c] }
func (g field) Y(r int) float64    { return g.f.Ys[r] }
func (g field) Min() float64       { return g.min }
func (g field) Max() float64       { return g.max }

// filled is field with nodes outside the data lifted to the maximum, so
// contour lines are not traced along the hull.
type filled struct{ field }

func (g filled) Z(c, r int) float64 {
	if v := g.field.Z(c, r); !math.IsNaN(v) {
		return v
	}
	return g.max
}

// fieldPlotters draws the field as filled bands, one palette color per
// level, with contour lines at the band edges. It returns nil when no node
// carries a value.
func fieldPlotters(f *chart.Field) []plot.Plotter {
	g := field{f: f, min: math.Inf(1), max: math.Inf(-1)}
	for _, row := range f.Z {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			g.min = math.Min(g.min, v)
			g.max = math.Max(g.max, v)
		}
	}
	if g.min > g.max {
		return nil
	}
	flat := g.min == g.max
	if flat {
		g.max = g.min + 1
	}
	n := f.Levels
	if n < 2 {
		n = 2
	}
	hm := plotter.NewHeatMap(g, palette.Heat(n, 0.6))
	hm.NaN = color.Transparent
	if flat || n < 3 {
		return []plot.Plotter{hm}
	}

	levels := make([]float64, n-1)
	for i := range levels {
		levels[i] = g.min + (g.max-g.min)*float64(i+1)/float64(n)
	}
	c := plotter.NewContour(filled{g}, levels, palette.Heat(len(levels), 1))
	return []plot.Plotter{hm, c}
}

// limits picks an axis range: fixed sides are kept, open sides follow the
// data with a margin.
func limits(r chart.Range, data []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		lo, hi = -1, 1
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	pad := (hi - lo) * 0.1
	lo, hi = lo-pad, hi+pad
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}
	if lo >= hi {
		hi = lo + 1
	}
	return lo, hi
}

func xExtent(f *chart.Figure) []float64 {
	var out []float64
	for _, m := range f.Markers {
		out = append(out, m.X-m.ErrX, m.X+m.ErrX)
	}
	for _, a := range f.Annotations {
		out = append(out, a.X)
	}
	for _, v := range f.Outline {
		out = append(out, v.X)
	}
	if f.Curve != nil {
		out = append(out, f.Curve.Xs...)
	}
	return append(out, f.VLines...)
}

func yExtent(f *chart.Figure) []float64 {
	var out []float64
	for _, m := range f.Markers {
		out = append(out, m.Y-m.ErrY, m.Y+m.ErrY)
	}
	for _, a := range f.Annotations {
		out = append(out, a.Y)
	}
	for _, v := range f.Outline {
		out = append(out, v.Y)
	}
	if f.Curve != nil {
		out = append(out, f.Curve.Ys...)
	}
	return append(out, f.HLines...)
}
