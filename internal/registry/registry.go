// Package registry holds the charts of one chat: id allocation, the
// archive overlay, and the R² betting game played against them.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/rewired-gh/plotbot/internal/chart"
)

var (
	// ErrNoChart is returned for an id that is not in the registry.
	ErrNoChart = errors.New("no plot with that id")
	// ErrArchived is returned when an operation needs an active chart.
	ErrArchived = errors.New("plot is archived")
)

// Registry maps chart ids to charts. Archived charts stay in the map and
// are listed in a separate set; active = charts minus archived.
type Registry struct {
	charts   map[int]chart.Chart
	archived map[int]bool
	// highWater is the largest id ever handed out.
	highWater int

	bet   *Bet
	stats map[int64]*BetStats
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		charts:   make(map[int]chart.Chart),
		archived: make(map[int]bool),
		stats:    make(map[int64]*BetStats),
	}
}

// Add stores c under a fresh id and returns the id.
func (r *Registry) Add(c chart.Chart) int {
	id := r.highWater
	for existing := range r.charts {
		if existing > id {
			id = existing
		}
	}
	id++
	r.highWater = id
	c.SetID(id)
	r.charts[id] = c
	return id
}

// Get returns the chart with the given id, archived or not.
func (r *Registry) Get(id int) (chart.Chart, error) {
	c, ok := r.charts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoChart, id)
	}
	return c, nil
}

// GetActive is Get restricted to charts that are not archived.
func (r *Registry) GetActive(id int) (chart.Chart, error) {
	c, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if r.archived[id] {
		return nil, fmt.Errorf("%w: %d", ErrArchived, id)
	}
	return c, nil
}

// Remove deletes a chart and its archive membership. A bet running on
// the chart is cancelled.
func (r *Registry) Remove(id int) error {
	if _, ok := r.charts[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNoChart, id)
	}
	delete(r.charts, id)
	delete(r.archived, id)
	if r.bet != nil && r.bet.ChartID == id {
		r.bet = nil
	}
	return nil
}

// Archive hides a chart from Active.
func (r *Registry) Archive(id int) error {
	if _, ok := r.charts[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNoChart, id)
	}
	r.archived[id] = true
	return nil
}

// Unarchive makes an archived chart active again.
func (r *Registry) Unarchive(id int) error {
	if _, ok := r.charts[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNoChart, id)
	}
	if !r.archived[id] {
		return fmt.Errorf("plot %d is not archived", id)
	}
	delete(r.archived, id)
	return nil
}

// IsArchived reports whether id is archived.
func (r *Registry) IsArchived(id int) bool {
	return r.archived[id]
}

// Active returns the charts that are not archived, ordered by id.
func (r *Registry) Active() []chart.Chart {
	var out []chart.Chart
	for _, id := range r.ids() {
		if !r.archived[id] {
			out = append(out, r.charts[id])
		}
	}
	return out
}

// Archived returns the archived charts, ordered by id.
func (r *Registry) Archived() []chart.Chart {
	var out []chart.Chart
	for _, id := range r.ArchivedIDs() {
		out = append(out, r.charts[id])
	}
	return out
}

// ArchivedIDs returns the archived ids in ascending order.
func (r *Registry) ArchivedIDs() []int {
	out := make([]int, 0, len(r.archived))
	for id := range r.archived {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Len returns the number of charts, archived ones included.
func (r *Registry) Len() int {
	return len(r.charts)
}

func (r *Registry) ids() []int {
	out := make([]int, 0, len(r.charts))
	for id := range r.charts {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

type persisted struct {
	Charts    []json.RawMessage   `json:"charts"`
	Archived  []int               `json:"archived"`
	HighWater int                 `json:"high_water"`
	Bet       *Bet                `json:"bet,omitempty"`
	Stats     map[int64]*BetStats `json:"bet_stats,omitempty"`
}

// MarshalJSON encodes every chart with its kind.
func (r *Registry) MarshalJSON() ([]byte, error) {
	p := persisted{
		Charts:    make([]json.RawMessage, 0, len(r.charts)),
		Archived:  r.ArchivedIDs(),
		HighWater: r.highWater,
		Bet:       r.bet,
		Stats:     r.stats,
	}
	for _, id := range r.ids() {
		data, err := chart.Marshal(r.charts[id])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal plot %d: %w", id, err)
		}
		p.Charts = append(p.Charts, data)
	}
	return json.Marshal(p)
}

// UnmarshalJSON restores a registry written by MarshalJSON. Archived ids
// that no longer name a chart are dropped.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = *New()
	for i, raw := range p.Charts {
		c, err := chart.Unmarshal(raw)
		if err != nil {
			return fmt.Errorf("failed to unmarshal plot #%d: %w", i, err)
		}
		id := c.Info().ID
		if _, dup := r.charts[id]; dup {
			return fmt.Errorf("duplicate plot id %d", id)
		}
		r.charts[id] = c
		if id > r.highWater {
			r.highWater = id
		}
	}
	for _, id := range p.Archived {
		if _, ok := r.charts[id]; ok {
			r.archived[id] = true
		}
	}
	if p.HighWater > r.highWater {
		r.highWater = p.HighWater
	}
	if p.Bet != nil {
		if _, ok := r.charts[p.Bet.ChartID]; ok {
			r.bet = p.Bet
		}
	}
	for id, s := range p.Stats {
		r.stats[id] = s
	}
	return nil
}
