package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rewired-gh/plotbot/internal/chart"
)

func showPlot(h *Handler, c *call) ([]Reply, error) {
	var o chart.RenderOptions
	var zoom []float64
	var hide bool
	f := newFlags("showplot", c.cmd.usage)
	f.BoolVar(&o.Contour, "contour", false, "shade distance to the centroid")
	f.BoolVar(&hide, "nolabels", false, "hide point labels")
	f.Float64SliceVar(&zoom, "zoom", nil, "minx,maxx,miny,maxy for this image only")
	if err := f.parse(c.args); err != nil {
		return nil, err
	}
	c.args = f.Args()
	if len(c.args) != 1 {
		return nil, usagef("usage: /%s", c.cmd.usage)
	}
	switch len(zoom) {
	case 0:
	case 4:
		o.Zoom = &chart.Zoom{MinX: zoom[0], MaxX: zoom[1], MinY: zoom[2], MaxY: zoom[3]}
	default:
		return nil, usagef("--zoom needs 4 comma-separated numbers: minx,maxx,miny,maxy")
	}
	o.HideLabels = hide

	_, ch, err := c.chartAt(0)
	if err != nil {
		return nil, err
	}
	return h.draw(ch, o)
}

func listing(header string, charts []chart.Chart) []Reply {
	var b strings.Builder
	b.WriteString(header + "\n\n")
	for _, ch := range charts {
		fmt.Fprintf(&b, "(%d): %s [%s]\n", ch.Info().ID, ch.Title(), ch.Kind())
	}
	return []Reply{{Text: b.String()}}
}

func listPlots(h *Handler, c *call) ([]Reply, error) {
	return listing("Current plots:", c.reg.Active()), nil
}

func listArchived(h *Handler, c *call) ([]Reply, error) {
	return listing("Archived plots:", c.reg.Archived()), nil
}

// ownedAt resolves args[0] to a chart the sender created, archived or not.
func (c *call) ownedAt() (int, chart.Chart, error) {
	if len(c.args) != 1 {
		return 0, nil, usagef("usage: /%s", c.cmd.usage)
	}
	id, err := parseID(c.args[0])
	if err != nil {
		return 0, nil, err
	}
	ch, err := c.reg.Get(id)
	if err != nil {
		return 0, nil, usagef("That plot (%d) doesn't exist!", id)
	}
	if err := c.requireCreator(id, ch); err != nil {
		return 0, nil, err
	}
	return id, ch, nil
}

func archive(h *Handler, c *call) ([]Reply, error) {
	id, ch, err := c.ownedAt()
	if err != nil {
		return nil, err
	}
	if err := c.reg.Archive(id); err != nil {
		return nil, err
	}
	return text("%s (%d) was archived.", ch.Title(), id), nil
}

func unarchive(h *Handler, c *call) ([]Reply, error) {
	id, ch, err := c.ownedAt()
	if err != nil {
		return nil, err
	}
	if err := c.reg.Unarchive(id); err != nil {
		return nil, usagef("That plot (%d) is not archived.", id)
	}
	return text("%s (%d) is back.", ch.Title(), id), nil
}

func plotStats(h *Handler, c *call) ([]Reply, error) {
	if len(c.args) != 1 {
		return nil, usagef("usage: /%s", c.cmd.usage)
	}
	id, ch, err := c.chartAt(0)
	if err != nil {
		return nil, err
	}
	tbl, err := chart.Describe(ch)
	if err != nil {
		return nil, err
	}
	return text("Plot (%d) Stats:\n\n%s", id, tbl), nil
}

func xyAt(c *call) (int, chart.XYChart, int, error) {
	id, ch, err := c.chartAt(0)
	if err != nil {
		return 0, nil, 0, err
	}
	xy, ok := ch.(chart.XYChart)
	if !ok {
		return 0, nil, 0, usagef("Cannot fit a %s plot.", ch.Kind())
	}
	degree, err := parseDegree(c.args, 1)
	if err != nil {
		return 0, nil, 0, err
	}
	return id, xy, degree, nil
}

func formatR2(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func polyfitPlot(h *Handler, c *call) ([]Reply, error) {
	id, xy, degree, err := xyAt(c)
	if err != nil {
		return nil, err
	}
	res, err := chart.Fit(xy, h.renderer, degree, h.renderOptions(chart.RenderOptions{}))
	if err != nil {
		return nil, err
	}
	return []Reply{
		{Photo: res.Image},
		{Text: fmt.Sprintf("Plot (%d) R^2: %s\ny = %s", id, formatR2(res.RSquared), res.Equation)},
	}, nil
}

func equation(h *Handler, c *call) ([]Reply, error) {
	id, xy, degree, err := xyAt(c)
	if err != nil {
		return nil, err
	}
	eq, err := chart.FullEquation(xy, degree)
	if err != nil {
		return nil, err
	}
	return text("Plot (%d): y = %s", id, eq), nil
}

func whoMadeMe(h *Handler, c *call) ([]Reply, error) {
	if len(c.args) != 1 {
		return nil, usagef("usage: /%s", c.cmd.usage)
	}
	id, err := parseID(c.args[0])
	if err != nil {
		return nil, err
	}
	ch, err := c.reg.Get(id)
	if err != nil {
		return nil, usagef("That plot (%d) doesn't exist!", id)
	}
	if c.reg.IsArchived(id) {
		return text("Plot (%d) was made by: %s (archived)", id, ch.Info().Creator), nil
	}
	return text("Plot (%d) was made by: %s", id, ch.Info().Creator), nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func whereAmI(h *Handler, c *call) ([]Reply, error) {
	if len(c.args) != 1 {
		return nil, usagef("usage: /%s", c.cmd.usage)
	}
	id, ch, err := c.chartAt(0)
	if err != nil {
		return nil, err
	}
	notOn := usagef("You are not on plot (%d).", id)

	switch p := ch.(type) {
	case chart.XYChart:
		pt, err := p.Lookup(c.name())
		if errors.Is(err, chart.ErrNotFound) {
			return nil, notOn
		}
		if err != nil {
			return nil, err
		}
		msg := fmt.Sprintf("You are at (%s, %s) on plot (%d)", num(pt.X), num(pt.Y), id)
		if pt.ErrX > 0 || pt.ErrY > 0 {
			msg += fmt.Sprintf(" ± (%s, %s)", num(pt.ErrX), num(pt.ErrY))
		}
		return text("%s.", msg), nil
	case *chart.Radar:
		v, err := p.Lookup(c.name())
		if errors.Is(err, chart.ErrNotFound) {
			return nil, notOn
		}
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(v.Values))
		for i, x := range v.Values {
			parts[i] = p.Axes[i] + ": " + num(x)
		}
		return text("You are at %s on plot (%d).", strings.Join(parts, ", "), id), nil
	default:
		return nil, notOn
	}
}
