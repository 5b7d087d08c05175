package chart

import (
	"fmt"
	"sort"
)

// Contribution is one user's estimate for a subject.
type Contribution struct {
	ContributorID int64     `json:"contributor_id"`
	Values        []float64 `json:"values"`
}

// Crowd tracks who accepts crowdsourced placement and what has been
// contributed for each subject label.
type Crowd struct {
	Consent       map[int64]string          `json:"consent,omitempty"`
	Contributions map[string][]Contribution `json:"contributions,omitempty"`
}

// SetConsent records whether a user accepts contributions. Revoking
// consent keeps what was already contributed.
func (c *Crowd) SetConsent(userID int64, name string, enabled bool) {
	if !enabled {
		delete(c.Consent, userID)
		return
	}
	if c.Consent == nil {
		c.Consent = make(map[int64]string)
	}
	c.Consent[userID] = name
}

func (c *Crowd) consented(name string) bool {
	for _, n := range c.Consent {
		if n == name {
			return true
		}
	}
	return false
}

// ConsentingUsers returns the display names of consenting users, sorted.
func (c *Crowd) ConsentingUsers() []string {
	out := make([]string, 0, len(c.Consent))
	for _, n := range c.Consent {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// List returns a copy of the contributions for subject in arrival order.
func (c *Crowd) List(subject string) []Contribution {
	src := c.Contributions[subject]
	out := make([]Contribution, len(src))
	for i, x := range src {
		out[i] = Contribution{ContributorID: x.ContributorID, Values: append([]float64(nil), x.Values...)}
	}
	return out
}

// add stores a contribution, replacing any earlier one from the same
// contributor, and returns the element-wise mean over all contributions
// for subject. undo restores the previous state.
func (c *Crowd) add(contributorID int64, contributorName, subject string, values []float64, dim int) (mean []float64, undo func(), err error) {
	if contributorName == subject {
		return nil, nil, fmt.Errorf("%w: you cannot crowdsource your own point", ErrPermission)
	}
	if !c.consented(subject) {
		return nil, nil, invalidf("%s has not consented to crowdsourcing", subject)
	}
	if len(values) != dim {
		return nil, nil, invalidf("expected %d values, got %d", dim, len(values))
	}

	prev, had := c.Contributions[subject]
	next := append([]Contribution(nil), prev...)
	entry := Contribution{ContributorID: contributorID, Values: append([]float64(nil), values...)}
	replaced := false
	for i := range next {
		if next[i].ContributorID == contributorID {
			next[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, entry)
	}

	if c.Contributions == nil {
		c.Contributions = make(map[string][]Contribution)
	}
	c.Contributions[subject] = next

	undo = func() {
		if had {
			c.Contributions[subject] = prev
		} else {
			delete(c.Contributions, subject)
		}
	}

	mean = make([]float64, dim)
	for _, x := range next {
		for i, v := range x.Values {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= float64(len(next))
	}
	return mean, undo, nil
}
