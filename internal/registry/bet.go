package registry

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rewired-gh/plotbot/internal/chart"
	"github.com/rewired-gh/plotbot/internal/fit"
)

var (
	// ErrNoBet is returned when no bet is running.
	ErrNoBet = errors.New("there is no bet running")
	// ErrBetRunning is returned when starting a bet while one is running.
	ErrBetRunning = errors.New("a bet is already running")
	// ErrNoGuesses is returned when resolving a bet nobody has joined.
	ErrNoGuesses = errors.New("nobody has placed a guess")
)

// Guess is one user's prediction of the fit's R².
type Guess struct {
	UserID int64   `json:"user_id"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
}

// Bet is a running prediction game on one chart.
type Bet struct {
	ID        uuid.UUID `json:"id"`
	ChartID   int       `json:"chart_id"`
	Degree    int       `json:"degree"`
	CreatedAt time.Time `json:"created_at"`
	// Guesses keep the order in which users first guessed.
	Guesses []Guess `json:"guesses"`
}

// BetStats are a user's results over every resolved bet.
type BetStats struct {
	UserID         int64   `json:"user_id"`
	Name           string  `json:"name"`
	TotalBets      int     `json:"total_bets"`
	TotalWins      int     `json:"total_wins"`
	AvgDiff        float64 `json:"avg_diff"`
	WinningAvgDiff float64 `json:"winning_avg_diff"`
}

// Outcome is the result of a resolved bet.
type Outcome struct {
	Bet      Bet
	Actual   float64
	Equation string
	Winner   Guess
	Diff     float64
}

// Bet returns the running bet, or nil.
func (r *Registry) Bet() *Bet {
	return r.bet
}

// StartBet opens a bet on the R² of a degree-n fit of an active XY chart.
func (r *Registry) StartBet(chartID, degree int, now time.Time) (*Bet, error) {
	if r.bet != nil {
		return nil, fmt.Errorf("%w on plot %d", ErrBetRunning, r.bet.ChartID)
	}
	c, err := r.GetActive(chartID)
	if err != nil {
		return nil, err
	}
	if _, ok := c.(chart.XYChart); !ok {
		return nil, fmt.Errorf("%w: cannot bet on a %s chart", chart.ErrInvalid, c.Kind())
	}
	if degree < 0 || degree > fit.MaxDegree {
		return nil, fmt.Errorf("%w: %w", chart.ErrInvalid, fit.ErrDegree)
	}
	r.bet = &Bet{
		ID:        uuid.New(),
		ChartID:   chartID,
		Degree:    degree,
		CreatedAt: now,
	}
	return r.bet, nil
}

// PlaceGuess records or replaces a user's guess. A replaced guess keeps
// its original position.
func (r *Registry) PlaceGuess(userID int64, name string, value float64) error {
	if r.bet == nil {
		return ErrNoBet
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: guess must be a finite number", chart.ErrInvalid)
	}
	g := Guess{UserID: userID, Name: name, Value: value}
	for i := range r.bet.Guesses {
		if r.bet.Guesses[i].UserID == userID {
			r.bet.Guesses[i] = g
			return nil
		}
	}
	r.bet.Guesses = append(r.bet.Guesses, g)
	return nil
}

// CancelBet drops the running bet without touching any stats.
func (r *Registry) CancelBet() error {
	if r.bet == nil {
		return ErrNoBet
	}
	r.bet = nil
	return nil
}

// ResolveBet fits the chart, picks the guess closest to the actual R²
// (the earliest one on a tie), updates everyone's stats and ends the bet.
// The bet keeps running if the fit fails.
func (r *Registry) ResolveBet() (Outcome, error) {
	if r.bet == nil {
		return Outcome{}, ErrNoBet
	}
	if len(r.bet.Guesses) == 0 {
		return Outcome{}, ErrNoGuesses
	}
	c, err := r.Get(r.bet.ChartID)
	if err != nil {
		return Outcome{}, err
	}
	xy, ok := c.(chart.XYChart)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: cannot bet on a %s chart", chart.ErrInvalid, c.Kind())
	}
	res, err := chart.Regress(xy, r.bet.Degree)
	if err != nil {
		return Outcome{}, err
	}

	winner := 0
	best := math.Inf(1)
	for i, g := range r.bet.Guesses {
		if d := math.Abs(g.Value - res.RSquared); d < best {
			best, winner = d, i
		}
	}
	for i, g := range r.bet.Guesses {
		r.record(g, math.Abs(g.Value-res.RSquared), i == winner)
	}

	out := Outcome{
		Bet:      *r.bet,
		Actual:   res.RSquared,
		Equation: res.Equation,
		Winner:   r.bet.Guesses[winner],
		Diff:     best,
	}
	r.bet = nil
	return out, nil
}

func (r *Registry) record(g Guess, diff float64, won bool) {
	s, ok := r.stats[g.UserID]
	if !ok {
		s = &BetStats{UserID: g.UserID}
		r.stats[g.UserID] = s
	}
	s.Name = g.Name
	s.TotalBets++
	s.AvgDiff += (diff - s.AvgDiff) / float64(s.TotalBets)
	if won {
		s.TotalWins++
		s.WinningAvgDiff += (diff - s.WinningAvgDiff) / float64(s.TotalWins)
	}
}

// Stats returns every player's stats, most wins first, then by the
// smaller average difference.
func (r *Registry) Stats() []BetStats {
	out := make([]BetStats, 0, len(r.stats))
	for _, s := range r.stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalWins != out[j].TotalWins {
			return out[i].TotalWins > out[j].TotalWins
		}
		if out[i].AvgDiff != out[j].AvgDiff {
			return out[i].AvgDiff < out[j].AvgDiff
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}
