package chart

// Quadrant is a fixed [-10, 10]² chart divided into a 3×3 grid, with a
// label for each horizontal and vertical third.
type Quadrant struct {
	Meta
	xy
	// Horizontal labels the x thirds left to right, Vertical the y thirds
	// bottom to top.
	Horizontal [3]string `json:"horizontal"`
	Vertical   [3]string `json:"vertical"`
}

// QuadrantOptions configure NewQuadrant.
type QuadrantOptions struct {
	Name         string
	Horizontal   [3]string
	Vertical     [3]string
	CustomPoints bool
}

func quadrantBounds() Bounds {
	return NewBounds(-10, 10, -10, 10)
}

// NewQuadrant creates a quadrant chart.
func NewQuadrant(creator Creator, o QuadrantOptions) *Quadrant {
	return &Quadrant{
		Meta:       Meta{Name: o.Name, Creator: creator, CustomPoints: o.CustomPoints},
		Horizontal: o.Horizontal,
		Vertical:   o.Vertical,
	}
}

func (q *Quadrant) Kind() Kind     { return KindQuadrant }
func (q *Quadrant) Region() Region { return quadrantBounds() }

// Plot inserts or replaces a point.
func (q *Quadrant) Plot(p Point) error {
	return q.plot(&q.Meta, quadrantBounds(), p)
}

// Remove deletes the point with the given label.
func (q *Quadrant) Remove(label string) error {
	return q.remove(&q.Meta, label)
}

// Figure implements Chart.
func (q *Quadrant) Figure(opts RenderOptions) (*Figure, error) {
	b := quadrantBounds()
	f := &Figure{
		Title:   q.Name,
		XLabel:  thirdsLabel(q.Horizontal),
		YLabel:  thirdsLabel(q.Vertical),
		X:       Range{Min: b.MinX, Max: b.MaxX},
		Y:       Range{Min: b.MinY, Max: b.MaxY},
		HLines:  thirds(*b.MinY, *b.MaxY),
		VLines:  thirds(*b.MinX, *b.MaxX),
		Markers: markers(q.Store.Points()),
	}
	if opts.Contour {
		if err := f.addContour(q.Store.Points(), b, opts); err != nil {
			return nil, err
		}
	}
	if err := f.apply(opts); err != nil {
		return nil, err
	}
	return f, nil
}

// QuadrantEdit changes the attributes that are set.
type QuadrantEdit struct {
	MetaEdit
	Horizontal [3]*string
	Vertical   [3]*string
}

// Edit applies e.
func (q *Quadrant) Edit(e QuadrantEdit) error {
	q.Meta.apply(e.MetaEdit)
	for i := range e.Horizontal {
		if e.Horizontal[i] != nil {
			q.Horizontal[i] = *e.Horizontal[i]
		}
		if e.Vertical[i] != nil {
			q.Vertical[i] = *e.Vertical[i]
		}
	}
	return nil
}

// Alignment is a quadrant chart with a text label in each of its nine
// cells.
type Alignment struct {
	Quadrant
	// Cells is indexed [row][col], row 0 at the top, col 0 at the left.
	Cells [3][3]string `json:"cells"`
}

// DefaultAlignmentCells are the classic alignment chart labels.
var DefaultAlignmentCells = [3][3]string{
	{"Lawful Good", "Neutral Good", "Chaotic Good"},
	{"Lawful Neutral", "True Neutral", "Chaotic Neutral"},
	{"Lawful Evil", "Neutral Evil", "Chaotic Evil"},
}

// AlignmentOptions configure NewAlignment. Zero-valued labels fall back to
// the classic alignment chart.
type AlignmentOptions struct {
	Name         string
	Cells        *[3][3]string
	CustomPoints bool
}

// NewAlignment creates an alignment chart.
func NewAlignment(creator Creator, o AlignmentOptions) *Alignment {
	cells := DefaultAlignmentCells
	if o.Cells != nil {
		cells = *o.Cells
	}
	return &Alignment{
		Quadrant: *NewQuadrant(creator, QuadrantOptions{
			Name:         o.Name,
			Horizontal:   [3]string{"Lawful", "Neutral", "Chaotic"},
			Vertical:     [3]string{"Evil", "Neutral", "Good"},
			CustomPoints: o.CustomPoints,
		}),
		Cells: cells,
	}
}

func (a *Alignment) Kind() Kind { return KindAlignment }

// Figure adds the cell labels to the quadrant figure.
func (a *Alignment) Figure(opts RenderOptions) (*Figure, error) {
	f, err := a.Quadrant.Figure(opts)
	if err != nil {
		return nil, err
	}
	b := quadrantBounds()
	w := (*b.MaxX - *b.MinX) / 3
	h := (*b.MaxY - *b.MinY) / 3
	for row := range a.Cells {
		for col, text := range a.Cells[row] {
			if text == "" {
				continue
			}
			f.Annotations = append(f.Annotations, Annotation{
				Text: text,
				X:    *b.MinX + (float64(col)+0.5)*w,
				Y:    *b.MaxY - (float64(row)+0.5)*h,
			})
		}
	}
	return f, nil
}

// AlignmentEdit changes the attributes that are set.
type AlignmentEdit struct {
	QuadrantEdit
	Cells [3][3]*string
}

// Edit applies e.
func (a *Alignment) Edit(e AlignmentEdit) error {
	if err := a.Quadrant.Edit(e.QuadrantEdit); err != nil {
		return err
	}
	for r := range e.Cells {
		for c, v := range e.Cells[r] {
			if v != nil {
				a.Cells[r][c] = *v
			}
		}
	}
	return nil
}
