package chart

import (
	"math"

	"github.com/rewired-gh/plotbot/internal/colorhash"
)

// MinRadarAxes is the smallest number of spokes a radar chart may have.
const MinRadarAxes = 1

// Radar is an N-axis spoke chart. Each entry is a vector with one value per
// axis; there is no geometric bound and no fitting.
type Radar struct {
	Meta
	Axes    []string    `json:"axes"`
	Vectors VectorStore `json:"vectors"`
	Crowd   Crowd       `json:"crowd"`
}

// RadarOptions configure NewRadar.
type RadarOptions struct {
	Name         string
	Axes         []string
	CustomPoints bool
}

// NewRadar creates a radar chart.
func NewRadar(creator Creator, o RadarOptions) (*Radar, error) {
	if len(o.Axes) < MinRadarAxes {
		return nil, invalidf("a radar chart needs at least %d axes, got %d", MinRadarAxes, len(o.Axes))
	}
	return &Radar{
		Meta: Meta{Name: o.Name, Creator: creator, CustomPoints: o.CustomPoints},
		Axes: append([]string(nil), o.Axes...),
	}, nil
}

func (r *Radar) Kind() Kind       { return KindRadar }
func (r *Radar) Labels() []string { return r.Vectors.Labels() }
func (r *Radar) Len() int         { return r.Vectors.Len() }
func (r *Radar) Dimensions() int  { return len(r.Axes) }

// Plot inserts or replaces a vector.
func (r *Radar) Plot(v Vector) error {
	if err := r.Vectors.Upsert(len(r.Axes), v); err != nil {
		return err
	}
	r.touch()
	return nil
}

// Lookup returns the vector with the given label.
func (r *Radar) Lookup(label string) (Vector, error) {
	return r.Vectors.Lookup(label)
}

// Remove deletes the vector with the given label.
func (r *Radar) Remove(label string) error {
	if err := r.Vectors.Remove(label); err != nil {
		return err
	}
	r.touch()
	return nil
}

// Figure implements Chart. Zoom and contour do not apply to radar charts.
func (r *Radar) Figure(opts RenderOptions) (*Figure, error) {
	if opts.Contour || opts.Zoom != nil {
		return nil, invalidf("contour and zoom are not available on radar charts")
	}
	p := &Polar{Axes: append([]string(nil), r.Axes...), Radius: 1}
	for _, v := range r.Vectors.Vectors() {
		for _, x := range v.Values {
			p.Radius = math.Max(p.Radius, x)
		}
		p.Polygons = append(p.Polygons, Polygon{
			Label:  v.Label,
			Values: v.Values,
			Color:  colorhash.RGB(v.Label),
		})
	}
	return &Figure{
		Title:      r.Name,
		Polar:      p,
		ShowLabels: !opts.HideLabels,
	}, nil
}

// RadarEdit changes the attributes that are set. Axes are fixed because
// stored vectors depend on them.
type RadarEdit struct {
	MetaEdit
}

// Edit applies e.
func (r *Radar) Edit(e RadarEdit) error {
	r.Meta.apply(e.MetaEdit)
	return nil
}

// SetConsent implements Crowdsourced.
func (r *Radar) SetConsent(userID int64, name string, enabled bool) {
	r.Crowd.SetConsent(userID, name, enabled)
}

// Crowdsource records a vector estimate for subject and moves the
// subject's entry to the element-wise mean of all estimates.
func (r *Radar) Crowdsource(contributorID int64, contributorName, subject string, values []float64) error {
	mean, undo, err := r.Crowd.add(contributorID, contributorName, subject, values, len(r.Axes))
	if err != nil {
		return err
	}
	if err := r.Plot(Vector{Label: subject, Values: mean}); err != nil {
		undo()
		return err
	}
	return nil
}

// Contributions implements Crowdsourced.
func (r *Radar) Contributions(subject string) []Contribution {
	return r.Crowd.List(subject)
}

// ConsentingUsers implements Crowdsourced.
func (r *Radar) ConsentingUsers() []string {
	return r.Crowd.ConsentingUsers()
}
