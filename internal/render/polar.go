package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/rewired-gh/plotbot/internal/chart"
)

const (
	polarRings    = 4
	ringSegments  = 72
	polarLabelPad = 1.12
	polarMargin   = 1.3
)

func polarXY(radius, angle float64) plotter.XY {
	return plotter.XY{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}

// drawPolar draws spokes, concentric rings and one filled polygon per
// entry. gonum/plot has no polar axes, so the frame is drawn by hand.
func drawPolar(p *plot.Plot, f *chart.Figure) error {
	pol := f.Polar
	p.HideAxes()
	n := len(pol.Axes)
	if n == 0 {
		return fmt.Errorf("polar figure has no axes")
	}
	r := pol.Radius
	if r <= 0 {
		r = 1
	}

	for k := 1; k <= polarRings; k++ {
		rr := r * float64(k) / polarRings
		ring := make(plotter.XYs, ringSegments+1)
		for i := range ring {
			ring[i] = polarXY(rr, 2*math.Pi*float64(i)/ringSegments)
		}
		if err := addLine(p, ring, gridColor, 1, false); err != nil {
			return err
		}
	}

	spokeLabels := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		a := pol.Angle(i)
		if err := addLine(p, plotter.XYs{{}, polarXY(r, a)}, axisColor, 1, false); err != nil {
			return err
		}
		spokeLabels[i] = polarXY(r*polarLabelPad, a)
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: spokeLabels, Labels: pol.Axes})
	if err != nil {
		return fmt.Errorf("failed to build spoke labels: %w", err)
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = draw.XCenter
		l.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(l)

	for _, poly := range pol.Polygons {
		xys := make(plotter.XYs, n)
		for i, v := range poly.Values {
			xys[i] = polarXY(math.Max(v, 0), pol.Angle(i))
		}
		pg, err := plotter.NewPolygon(xys)
		if err != nil {
			return fmt.Errorf("failed to build polygon for %q: %w", poly.Label, err)
		}
		pg.Color = color.NRGBA{R: poly.Color.R, G: poly.Color.G, B: poly.Color.B, A: 64}
		pg.LineStyle.Color = poly.Color
		pg.LineStyle.Width = vg.Points(2)
		p.Add(pg)

		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("failed to build vertices for %q: %w", poly.Label, err)
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(3)
		s.GlyphStyle.Color = poly.Color
		p.Add(s)

		if f.ShowLabels && poly.Label != "" {
			p.Legend.Add(poly.Label, pg)
		}
	}
	p.Legend.Top = true

	lim := r * polarMargin
	p.X.Min, p.X.Max = -lim, lim
	p.Y.Min, p.Y.Max = -lim, lim
	return nil
}
