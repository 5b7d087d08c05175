package chart

import "github.com/rewired-gh/plotbot/internal/geom"

// Simplex is a triangular chart. Its region is fixed at construction.
type Simplex struct {
	Meta
	xy
	Triangle Triangle `json:"triangle"`
	// Corners label the bottom-left, apex and bottom-right vertices.
	Corners [3]string `json:"corners"`
}

// SimplexOptions configure NewSimplex. A nil Triangle means 0..10 on both
// axes.
type SimplexOptions struct {
	Name         string
	Corners      [3]string
	Triangle     *Triangle
	CustomPoints bool
}

// DefaultTriangle is the region of a new simplex chart.
func DefaultTriangle() Triangle {
	return Triangle{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
}

// NewSimplex creates a simplex chart.
func NewSimplex(creator Creator, o SimplexOptions) (*Simplex, error) {
	t := DefaultTriangle()
	if o.Triangle != nil {
		t = *o.Triangle
	}
	if t.MinX >= t.MaxX || t.MinY >= t.MaxY {
		return nil, invalidf("triangle needs min x < max x and min y < max y")
	}
	return &Simplex{
		Meta:     Meta{Name: o.Name, Creator: creator, CustomPoints: o.CustomPoints},
		Triangle: t,
		Corners:  o.Corners,
	}, nil
}

func (s *Simplex) Kind() Kind     { return KindSimplex }
func (s *Simplex) Region() Region { return s.Triangle }

// Plot inserts or replaces a point.
func (s *Simplex) Plot(p Point) error {
	return s.plot(&s.Meta, s.Triangle, p)
}

// Remove deletes the point with the given label.
func (s *Simplex) Remove(label string) error {
	return s.remove(&s.Meta, label)
}

// Figure implements Chart.
func (s *Simplex) Figure(opts RenderOptions) (*Figure, error) {
	a, b, c := s.Triangle.vertices()
	f := &Figure{
		Title:   s.Name,
		X:       Range{Min: Float(s.Triangle.MinX), Max: Float(s.Triangle.MaxX)},
		Y:       Range{Min: Float(s.Triangle.MinY), Max: Float(s.Triangle.MaxY)},
		Outline: []geom.Vec{a, b, c, a},
		Markers: markers(s.Store.Points()),
	}
	for i, v := range []geom.Vec{a, b, c} {
		if s.Corners[i] != "" {
			f.Annotations = append(f.Annotations, Annotation{Text: s.Corners[i], X: v.X, Y: v.Y})
		}
	}
	if opts.Contour {
		bounds := NewBounds(s.Triangle.MinX, s.Triangle.MaxX, s.Triangle.MinY, s.Triangle.MaxY)
		if err := f.addContour(s.Store.Points(), bounds, opts); err != nil {
			return nil, err
		}
	}
	if err := f.apply(opts); err != nil {
		return nil, err
	}
	return f, nil
}

// SimplexEdit changes the attributes that are set.
type SimplexEdit struct {
	MetaEdit
	Corners [3]*string
}

// Edit applies e.
func (s *Simplex) Edit(e SimplexEdit) error {
	s.Meta.apply(e.MetaEdit)
	for i, v := range e.Corners {
		if v != nil {
			s.Corners[i] = *v
		}
	}
	return nil
}
