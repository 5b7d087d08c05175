package commands

import (
	"errors"
	"strings"

	"github.com/rewired-gh/plotbot/internal/chart"
	"github.com/rewired-gh/plotbot/internal/registry"
)

// chartAt resolves the plot id in args[i] to an active chart.
func (c *call) chartAt(i int) (int, chart.Chart, error) {
	if len(c.args) <= i {
		return 0, nil, usagef("usage: /%s", c.cmd.usage)
	}
	id, err := parseID(c.args[i])
	if err != nil {
		return 0, nil, err
	}
	ch, err := c.reg.GetActive(id)
	switch {
	case errors.Is(err, registry.ErrNoChart):
		return 0, nil, usagef("That plot (%d) doesn't exist!", id)
	case err != nil:
		return 0, nil, err
	}
	return id, ch, nil
}

// requireCreator fails unless the sender created ch. A legacy creator whose
// name matches the sender is upgraded first.
func (c *call) requireCreator(id int, ch chart.Chart) error {
	if ch.ClaimCreator(c.name(), c.user().ID) {
		c.dirty = true
	}
	if !ch.Info().Creator.Owns(c.user().ID) {
		return usagef("You didn't make that plot (%d)!", id)
	}
	return nil
}

func (h *Handler) renderOptions(o chart.RenderOptions) chart.RenderOptions {
	if o.ContourGrid == 0 {
		o.ContourGrid = h.opts.ContourGrid
	}
	if o.ContourLevels == 0 {
		o.ContourLevels = h.opts.ContourLevels
	}
	return o
}

func (h *Handler) draw(ch chart.Chart, o chart.RenderOptions) ([]Reply, error) {
	img, err := chart.Render(ch, h.renderer, h.renderOptions(o))
	if err != nil {
		return nil, err
	}
	return []Reply{{Photo: img}}, nil
}

// place upserts label on ch from the numeric args, which are (x, y) with
// optional error bars for XY charts, or one value per axis for radar.
func place(ch chart.Chart, label string, nums []string, usage string) error {
	switch p := ch.(type) {
	case chart.XYChart:
		if len(nums) < 2 || len(nums) > 4 {
			return usagef("usage: /%s", usage)
		}
		vs, err := parseNumbers(nums)
		if err != nil {
			return err
		}
		pt := chart.Point{Label: label, X: vs[0], Y: vs[1]}
		if len(vs) > 2 {
			pt.ErrX = vs[2]
		}
		if len(vs) > 3 {
			pt.ErrY = vs[3]
		}
		return p.Plot(pt)
	case *chart.Radar:
		if len(nums) != p.Dimensions() {
			return usagef("This radar plot needs %d values: %s", p.Dimensions(), strings.Join(p.Axes, ", "))
		}
		vs, err := parseNumbers(nums)
		if err != nil {
			return err
		}
		return p.Plot(chart.Vector{Label: label, Values: vs})
	default:
		return usagef("Cannot place points on a %s plot.", ch.Kind())
	}
}

func plotMe(h *Handler, c *call) ([]Reply, error) {
	_, ch, err := c.chartAt(0)
	if err != nil {
		return nil, err
	}
	if err := place(ch, c.name(), c.args[1:], c.cmd.usage); err != nil {
		return nil, err
	}
	c.dirty = true
	return h.draw(ch, chart.RenderOptions{})
}

func removeMe(h *Handler, c *call) ([]Reply, error) {
	if len(c.args) != 1 {
		return nil, usagef("usage: /%s", c.cmd.usage)
	}
	_, ch, err := c.chartAt(0)
	if err != nil {
		return nil, err
	}
	if err := ch.Remove(c.name()); err != nil {
		return nil, err
	}
	c.dirty = true
	return h.draw(ch, chart.RenderOptions{})
}

// numericArgs is how many numbers follow the plot id for a custom point.
func numericArgs(ch chart.Chart) int {
	if r, ok := ch.(*chart.Radar); ok {
		return r.Dimensions()
	}
	return 2
}

func customPoint(h *Handler, c *call) ([]Reply, error) {
	id, ch, err := c.chartAt(0)
	if err != nil {
		return nil, err
	}
	n := numericArgs(ch)
	if len(c.args) < n+2 {
		return nil, usagef("usage: /%s", c.cmd.usage)
	}
	if err := c.requireCreator(id, ch); err != nil {
		return nil, err
	}
	if !ch.Info().CustomPoints {
		return nil, usagef("That plot (%d) doesn't support custom points!", id)
	}
	label := strings.Join(c.args[n+1:], " ")
	if err := place(ch, label, c.args[1:n+1], c.cmd.usage); err != nil {
		return nil, err
	}
	c.dirty = true
	return h.draw(ch, chart.RenderOptions{})
}

func removeCustomPoint(h *Handler, c *call) ([]Reply, error) {
	id, ch, err := c.chartAt(0)
	if err != nil {
		return nil, err
	}
	if len(c.args) < 2 {
		return nil, usagef("usage: /%s", c.cmd.usage)
	}
	if err := c.requireCreator(id, ch); err != nil {
		return nil, err
	}
	if err := ch.Remove(strings.Join(c.args[1:], " ")); err != nil {
		return nil, err
	}
	c.dirty = true
	return h.draw(ch, chart.RenderOptions{})
}

func removePlot(h *Handler, c *call) ([]Reply, error) {
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
	if err := c.requireCreator(id, ch); err != nil {
		return nil, err
	}
	if err := c.reg.Remove(id); err != nil {
		return nil, err
	}
	return text("%s (%d) was removed.", ch.Title(), id), nil
}
