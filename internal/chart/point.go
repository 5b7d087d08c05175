package chart

import (
	"encoding/json"
	"math"
)

// Point is a labeled entry on an XY chart. Error bars are half-widths.
type Point struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	ErrX  float64 `json:"err_x,omitempty"`
	ErrY  float64 `json:"err_y,omitempty"`
}

func (p Point) key() string { return p.Label }

func (p Point) validate() error {
	for _, v := range []float64{p.X, p.Y, p.ErrX, p.ErrY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidf("coordinates must be finite numbers")
		}
	}
	if p.ErrX < 0 || p.ErrY < 0 {
		return invalidf("error bars must not be negative")
	}
	return nil
}

// Vector is a labeled entry on a radar chart, one value per axis.
type Vector struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

func (v Vector) key() string { return v.Label }

type keyed interface {
	key() string
}

// store is an insertion-ordered collection keyed by label. Writing an
// existing label replaces the entry in place.
type store[E keyed] struct {
	entries []E
}

func (s *store[E]) index(label string) int {
	for i, e := range s.entries {
		if e.key() == label {
			return i
		}
	}
	return -1
}

func (s *store[E]) put(e E) {
	if i := s.index(e.key()); i >= 0 {
		s.entries[i] = e
		return
	}
	s.entries = append(s.entries, e)
}

func (s *store[E]) get(label string) (E, error) {
	if i := s.index(label); i >= 0 {
		return s.entries[i], nil
	}
	var zero E
	return zero, notFound(label)
}

// Remove deletes the entry with the given label.
func (s *store[E]) Remove(label string) error {
	i := s.index(label)
	if i < 0 {
		return notFound(label)
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return nil
}

// Len returns the number of entries.
func (s *store[E]) Len() int {
	return len(s.entries)
}

// Labels returns every label in insertion order.
func (s *store[E]) Labels() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.key()
	}
	return out
}

func (s store[E]) MarshalJSON() ([]byte, error) {
	if s.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.entries)
}

func (s *store[E]) UnmarshalJSON(data []byte) error {
	var entries []E
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	s.entries = nil
	for _, e := range entries {
		s.put(e)
	}
	return nil
}

// PointStore holds the points of an XY chart.
type PointStore struct {
	store[Point]
}

// Upsert validates p against region and then inserts it, or replaces the
// point with the same label while keeping its position. Nothing changes
// when validation fails.
func (s *PointStore) Upsert(region Region, p Point) error {
	if err := p.validate(); err != nil {
		return err
	}
	if region != nil && !region.Admits(p) {
		return invalidBounds(region)
	}
	s.put(p)
	return nil
}

// Lookup returns the point with the given label.
func (s *PointStore) Lookup(label string) (Point, error) {
	return s.get(label)
}

// Points returns a copy of every point in insertion order.
func (s *PointStore) Points() []Point {
	return append([]Point(nil), s.entries...)
}

// Xs returns the x coordinates in insertion order.
func (s *PointStore) Xs() []float64 {
	out := make([]float64, len(s.entries))
	for i, p := range s.entries {
		out[i] = p.X
	}
	return out
}

// Ys returns the y coordinates in insertion order.
func (s *PointStore) Ys() []float64 {
	out := make([]float64, len(s.entries))
	for i, p := range s.entries {
		out[i] = p.Y
	}
	return out
}

// VectorStore holds the entries of a radar chart.
type VectorStore struct {
	store[Vector]
}

// Upsert checks that v has exactly axes values and stores a copy of it.
func (s *VectorStore) Upsert(axes int, v Vector) error {
	if len(v.Values) != axes {
		return invalidf("expected %d values, got %d", axes, len(v.Values))
	}
	for _, x := range v.Values {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return invalidf("values must be finite numbers")
		}
	}
	v.Values = append([]float64(nil), v.Values...)
	s.put(v)
	return nil
}

// Lookup returns a copy of the vector with the given label.
func (s *VectorStore) Lookup(label string) (Vector, error) {
	v, err := s.get(label)
	if err != nil {
		return Vector{}, err
	}
	v.Values = append([]float64(nil), v.Values...)
	return v, nil
}

// Vectors returns a copy of every vector in insertion order.
func (s *VectorStore) Vectors() []Vector {
	out := make([]Vector, len(s.entries))
	for i, v := range s.entries {
		out[i] = Vector{Label: v.Label, Values: append([]float64(nil), v.Values...)}
	}
	return out
}

// Column returns the i-th value of every vector.
func (s *VectorStore) Column(i int) []float64 {
	out := make([]float64, len(s.entries))
	for j, v := range s.entries {
		out[j] = v.Values[i]
	}
	return out
}
