package commands

import (
	"github.com/rewired-gh/plotbot/internal/chart"
)

// metaFlags registers the flags every kind accepts.
func (f *flags) meta(title *string, custom *bool) {
	f.StringVarP(title, "title", "t", "", "new title")
	f.BoolVar(custom, "custompoints", false, "allow the creator to place labeled points")
}

func (f *flags) metaEdit(title string, custom bool) chart.MetaEdit {
	var e chart.MetaEdit
	if f.Changed("title") {
		e.Name = &title
	}
	if f.Changed("custompoints") {
		e.CustomPoints = &custom
	}
	return e
}

func (f *flags) stringEdit(name string, v string) *string {
	if !f.Changed(name) {
		return nil
	}
	return &v
}

func editPlot(h *Handler, c *call) ([]Reply, error) {
	id, ch, err := c.chartAt(0)
	if err != nil {
		return nil, err
	}
	if err := c.requireCreator(id, ch); err != nil {
		return nil, err
	}

	f := newFlags("editplot", c.cmd.usage)
	var title string
	var custom bool
	args := c.args[1:]

	switch p := ch.(type) {
	case *chart.Rectangular:
		var v rectFlags
		f.rect(&v)
		if err := f.parse(args); err != nil {
			return nil, err
		}
		e := chart.RectangularEdit{
			MetaEdit: f.metaEdit(v.title, v.custom),
			XLeft:    f.stringEdit("xleft", v.xLeft),
			XRight:   f.stringEdit("xright", v.xRight),
			YBottom:  f.stringEdit("ybottom", v.yBottom),
			YTop:     f.stringEdit("ytop", v.yTop),
		}
		for _, s := range []struct {
			name, raw string
			dst       **chart.Limit
		}{
			{"minx", v.minX, &e.MinX}, {"maxx", v.maxX, &e.MaxX},
			{"miny", v.minY, &e.MinY}, {"maxy", v.maxY, &e.MaxY},
		} {
			if !f.Changed(s.name) {
				continue
			}
			lim, err := parseLimit(s.raw)
			if err != nil {
				return nil, err
			}
			*s.dst = &chart.Limit{Value: lim}
		}
		if err := p.Edit(e); err != nil {
			return nil, err
		}

	case *chart.Alignment:
		var cellList []string
		f.meta(&title, &custom)
		f.StringSliceVar(&cellList, "cells", nil, "nine cell labels, row by row from the top left")
		if err := f.parse(args); err != nil {
			return nil, err
		}
		e := chart.AlignmentEdit{QuadrantEdit: chart.QuadrantEdit{MetaEdit: f.metaEdit(title, custom)}}
		cs, err := cells(cellList)
		if err != nil {
			return nil, err
		}
		if cs != nil {
			for r := range cs {
				for col := range cs[r] {
					e.Cells[r][col] = &cs[r][col]
				}
			}
		}
		if err := p.Edit(e); err != nil {
			return nil, err
		}

	case *chart.Quadrant:
		var horizontal, vertical []string
		f.meta(&title, &custom)
		f.StringSliceVar(&horizontal, "horizontal", nil, "x thirds, left to right")
		f.StringSliceVar(&vertical, "vertical", nil, "y thirds, bottom to top")
		if err := f.parse(args); err != nil {
			return nil, err
		}
		e := chart.QuadrantEdit{MetaEdit: f.metaEdit(title, custom)}
		if err := tripleEdit(f, "horizontal", horizontal, &e.Horizontal); err != nil {
			return nil, err
		}
		if err := tripleEdit(f, "vertical", vertical, &e.Vertical); err != nil {
			return nil, err
		}
		if err := p.Edit(e); err != nil {
			return nil, err
		}

	case *chart.Simplex:
		var corners []string
		f.meta(&title, &custom)
		f.StringSliceVar(&corners, "corners", nil, "labels of the left, top and right corners")
		if err := f.parse(args); err != nil {
			return nil, err
		}
		e := chart.SimplexEdit{MetaEdit: f.metaEdit(title, custom)}
		if err := tripleEdit(f, "corners", corners, &e.Corners); err != nil {
			return nil, err
		}
		if err := p.Edit(e); err != nil {
			return nil, err
		}

	case *chart.Radar:
		f.meta(&title, &custom)
		if err := f.parse(args); err != nil {
			return nil, err
		}
		if err := p.Edit(chart.RadarEdit{MetaEdit: f.metaEdit(title, custom)}); err != nil {
			return nil, err
		}

	default:
		return nil, usagef("Cannot edit a %s plot.", ch.Kind())
	}
	c.dirty = true
	return h.draw(ch, chart.RenderOptions{})
}

func tripleEdit(f *flags, name string, vs []string, dst *[3]*string) error {
	if !f.Changed(name) {
		return nil
	}
	t, err := triple(name, vs)
	if err != nil {
		return err
	}
	for i := range t {
		dst[i] = &t[i]
	}
	return nil
}
