package commands

import (
	"github.com/rewired-gh/plotbot/internal/chart"
)

func (c *call) creator() chart.Creator {
	return chart.NewCreator(c.name(), c.user().ID)
}

func created(c chart.Chart, id int) []Reply {
	return text("%s (%d) was created successfully!", c.Title(), id)
}

type rectFlags struct {
	title, xLeft, xRight, yBottom, yTop string
	minX, maxX, minY, maxY             string
	custom                             bool
}

func (f *flags) rect(v *rectFlags) {
	f.StringVarP(&v.title, "title", "t", "", "plot title")
	f.StringVar(&v.xLeft, "xleft", "", "label of the left end of the x axis")
	f.StringVar(&v.xRight, "xright", "", "label of the right end of the x axis")
	f.StringVar(&v.yBottom, "ybottom", "", "label of the bottom end of the y axis")
	f.StringVar(&v.yTop, "ytop", "", "label of the top end of the y axis")
	f.StringVar(&v.minX, "minx", "-10", "smallest x, _ for none")
	f.StringVar(&v.maxX, "maxx", "10", "largest x, _ for none")
	f.StringVar(&v.minY, "miny", "-10", "smallest y, _ for none")
	f.StringVar(&v.maxY, "maxy", "10", "largest y, _ for none")
	f.BoolVar(&v.custom, "custompoints", false, "allow the creator to place labeled points")
}

func createPlot(h *Handler, c *call) ([]Reply, error) {
	var v rectFlags
	f := newFlags("createplot", c.cmd.usage)
	f.rect(&v)
	if err := f.parse(c.args); err != nil {
		return nil, err
	}

	var b chart.Bounds
	var err error
	for _, s := range []struct {
		raw string
		dst **float64
	}{
		{v.minX, &b.MinX}, {v.maxX, &b.MaxX}, {v.minY, &b.MinY}, {v.maxY, &b.MaxY},
	} {
		if *s.dst, err = parseLimit(s.raw); err != nil {
			return nil, err
		}
	}

	p, err := chart.NewRectangular(c.creator(), chart.RectangularOptions{
		Name:         f.title(v.title),
		XLeft:        v.xLeft,
		XRight:       v.xRight,
		YBottom:      v.yBottom,
		YTop:         v.yTop,
		Bounds:       &b,
		CustomPoints: v.custom,
	})
	if err != nil {
		return nil, err
	}
	return created(p, c.reg.Add(p)), nil
}

func createBoxPlot(h *Handler, c *call) ([]Reply, error) {
	var title string
	var horizontal, vertical []string
	var custom bool
	f := newFlags("createboxplot", c.cmd.usage)
	f.StringVarP(&title, "title", "t", "", "plot title")
	f.StringSliceVar(&horizontal, "horizontal", nil, "x thirds, left to right")
	f.StringSliceVar(&vertical, "vertical", nil, "y thirds, bottom to top")
	f.BoolVar(&custom, "custompoints", false, "allow the creator to place labeled points")
	if err := f.parse(c.args); err != nil {
		return nil, err
	}
	h3, err := triple("horizontal", horizontal)
	if err != nil {
		return nil, err
	}
	v3, err := triple("vertical", vertical)
	if err != nil {
		return nil, err
	}

	p := chart.NewQuadrant(c.creator(), chart.QuadrantOptions{
		Name:         f.title(title),
		Horizontal:   h3,
		Vertical:     v3,
		CustomPoints: custom,
	})
	return created(p, c.reg.Add(p)), nil
}

func createAlignmentChart(h *Handler, c *call) ([]Reply, error) {
	var title string
	var cellList []string
	var custom bool
	f := newFlags("createalignmentchart", c.cmd.usage)
	f.StringVarP(&title, "title", "t", "", "plot title")
	f.StringSliceVar(&cellList, "cells", nil, "nine cell labels, row by row from the top left")
	f.BoolVar(&custom, "custompoints", false, "allow the creator to place labeled points")
	if err := f.parse(c.args); err != nil {
		return nil, err
	}
	cs, err := cells(cellList)
	if err != nil {
		return nil, err
	}

	p := chart.NewAlignment(c.creator(), chart.AlignmentOptions{
		Name:         f.title(title),
		Cells:        cs,
		CustomPoints: custom,
	})
	return created(p, c.reg.Add(p)), nil
}

func createTrianglePlot(h *Handler, c *call) ([]Reply, error) {
	var title string
	var corners []string
	var custom bool
	t := chart.DefaultTriangle()
	f := newFlags("createtriangleplot", c.cmd.usage)
	f.StringVarP(&title, "title", "t", "", "plot title")
	f.StringSliceVar(&corners, "corners", nil, "labels of the left, top and right corners")
	f.Float64Var(&t.MinX, "minx", t.MinX, "x of the left corner")
	f.Float64Var(&t.MaxX, "maxx", t.MaxX, "x of the right corner")
	f.Float64Var(&t.MinY, "miny", t.MinY, "y of the base")
	f.Float64Var(&t.MaxY, "maxy", t.MaxY, "y of the top corner")
	f.BoolVar(&custom, "custompoints", false, "allow the creator to place labeled points")
	if err := f.parse(c.args); err != nil {
		return nil, err
	}
	c3, err := triple("corners", corners)
	if err != nil {
		return nil, err
	}

	p, err := chart.NewSimplex(c.creator(), chart.SimplexOptions{
		Name:         f.title(title),
		Corners:      c3,
		Triangle:     &t,
		CustomPoints: custom,
	})
	if err != nil {
		return nil, err
	}
	return created(p, c.reg.Add(p)), nil
}

func createRadarPlot(h *Handler, c *call) ([]Reply, error) {
	var title string
	var axes []string
	var custom bool
	f := newFlags("createradarplot", c.cmd.usage)
	f.StringVarP(&title, "title", "t", "", "plot title")
	f.StringSliceVar(&axes, "axes", nil, "spoke labels")
	f.BoolVar(&custom, "custompoints", false, "allow the creator to place labeled points")
	if err := f.parse(c.args); err != nil {
		return nil, err
	}
	if len(axes) == 0 {
		axes = f.Args()
	}
	if len(axes) < chart.MinRadarAxes {
		return nil, usagef("usage: /%s", c.cmd.usage)
	}

	p, err := chart.NewRadar(c.creator(), chart.RadarOptions{
		Name:         title,
		Axes:         axes,
		CustomPoints: custom,
	})
	if err != nil {
		return nil, err
	}
	return created(p, c.reg.Add(p)), nil
}
