package chart

// Rectangular is a free-form XY chart with editable bounds.
type Rectangular struct {
	Meta
	xy
	XLeft   string `json:"x_left,omitempty"`
	XRight  string `json:"x_right,omitempty"`
	YBottom string `json:"y_bottom,omitempty"`
	YTop    string `json:"y_top,omitempty"`
	Bounds  Bounds `json:"bounds"`
	Crowd   Crowd  `json:"crowd"`
}

// RectangularOptions configure NewRectangular. A nil Bounds means the
// default [-10, 10] on both axes.
type RectangularOptions struct {
	Name         string
	XLeft        string
	XRight       string
	YBottom      string
	YTop         string
	Bounds       *Bounds
	CustomPoints bool
}

// DefaultBounds is the domain of a new rectangular chart.
func DefaultBounds() Bounds {
	return NewBounds(-10, 10, -10, 10)
}

// NewRectangular creates a rectangular chart.
func NewRectangular(creator Creator, o RectangularOptions) (*Rectangular, error) {
	b := DefaultBounds()
	if o.Bounds != nil {
		b = o.Bounds.clone()
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &Rectangular{
		Meta:    Meta{Name: o.Name, Creator: creator, CustomPoints: o.CustomPoints},
		XLeft:   o.XLeft,
		XRight:  o.XRight,
		YBottom: o.YBottom,
		YTop:    o.YTop,
		Bounds:  b,
	}, nil
}

func (r *Rectangular) Kind() Kind     { return KindRectangular }
func (r *Rectangular) Region() Region { return r.Bounds }

// Plot inserts or replaces a point.
func (r *Rectangular) Plot(p Point) error {
	return r.plot(&r.Meta, r.Bounds, p)
}

// Remove deletes the point with the given label.
func (r *Rectangular) Remove(label string) error {
	return r.remove(&r.Meta, label)
}

// Figure implements Chart.
func (r *Rectangular) Figure(opts RenderOptions) (*Figure, error) {
	f := &Figure{
		Title:    r.Name,
		XLabel:   axisLabel(r.XLeft, r.XRight),
		YLabel:   axisLabel(r.YBottom, r.YTop),
		Grid:     true,
		ZeroAxes: true,
		Markers:  markers(r.Store.Points()),
	}
	if opts.Contour {
		if err := f.addContour(r.Store.Points(), r.Bounds, opts); err != nil {
			return nil, err
		}
		f.X = Range{Min: r.Bounds.MinX, Max: r.Bounds.MaxX}
		f.Y = Range{Min: r.Bounds.MinY, Max: r.Bounds.MaxY}
	}
	if err := f.apply(opts); err != nil {
		return nil, err
	}
	return f, nil
}

// Limit is one side of an edited bound. A nil Value makes the side
// unbounded.
type Limit struct {
	Value *float64
}

// RectangularEdit changes the attributes that are set.
type RectangularEdit struct {
	MetaEdit
	XLeft, XRight, YBottom, YTop *string
	MinX, MaxX, MinY, MaxY       *Limit
}

// Edit applies e. Nothing changes if the resulting bounds are invalid.
// Existing points are kept even when the new bounds exclude them.
func (r *Rectangular) Edit(e RectangularEdit) error {
	b := r.Bounds.clone()
	for _, s := range []struct {
		edit *Limit
		dst  **float64
	}{
		{e.MinX, &b.MinX},
		{e.MaxX, &b.MaxX},
		{e.MinY, &b.MinY},
		{e.MaxY, &b.MaxY},
	} {
		if s.edit == nil {
			continue
		}
		if s.edit.Value == nil {
			*s.dst = nil
		} else {
			*s.dst = Float(*s.edit.Value)
		}
	}
	if err := b.validate(); err != nil {
		return err
	}

	r.Bounds = b
	r.Meta.apply(e.MetaEdit)
	for _, s := range []struct {
		edit *string
		dst  *string
	}{
		{e.XLeft, &r.XLeft},
		{e.XRight, &r.XRight},
		{e.YBottom, &r.YBottom},
		{e.YTop, &r.YTop},
	} {
		if s.edit != nil {
			*s.dst = *s.edit
		}
	}
	return nil
}

// Dimensions is the length of a crowdsourced contribution: x and y.
func (r *Rectangular) Dimensions() int { return 2 }

// SetConsent implements Crowdsourced.
func (r *Rectangular) SetConsent(userID int64, name string, enabled bool) {
	r.Crowd.SetConsent(userID, name, enabled)
}

// Crowdsource records an (x, y) estimate for subject and moves the
// subject's point to the mean of all estimates.
func (r *Rectangular) Crowdsource(contributorID int64, contributorName, subject string, values []float64) error {
	mean, undo, err := r.Crowd.add(contributorID, contributorName, subject, values, 2)
	if err != nil {
		return err
	}
	if !r.Bounds.Contains(values[0], values[1]) {
		undo()
		return invalidBounds(r.Bounds)
	}
	if err := r.plot(&r.Meta, r.Bounds, Point{Label: subject, X: mean[0], Y: mean[1]}); err != nil {
		undo()
		return err
	}
	return nil
}

// Contributions implements Crowdsourced.
func (r *Rectangular) Contributions(subject string) []Contribution {
	return r.Crowd.List(subject)
}

// ConsentingUsers implements Crowdsourced.
func (r *Rectangular) ConsentingUsers() []string {
	return r.Crowd.ConsentingUsers()
}
