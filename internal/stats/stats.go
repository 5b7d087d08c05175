// Package stats computes descriptive summaries of numeric series.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Summary describes a single series.
type Summary struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Table is an ordered set of summaries, one per series.
type Table []Summary

// Describe summarises values. Std is the sample standard deviation, so it
// is NaN for a single value. Quantiles interpolate linearly between order
// statistics.
func Describe(name string, values []float64) Summary {
	s := Summary{Name: name, Count: len(values)}
	if len(values) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	} else {
		s.Std = math.NaN()
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q25 = quantile(0.25, sorted)
	s.Q50 = quantile(0.5, sorted)
	s.Q75 = quantile(0.75, sorted)
	return s
}

// quantile interpolates between the closest ranks of sorted.
func quantile(p float64, sorted []float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	// Hyndman-Fan type 7, not stat.LinInterp.
	h := p * float64(len(sorted)-1)
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Get returns the summary with the given series name.
func (t Table) Get(name string) (Summary, bool) {
	for _, s := range t {
		if s.Name == name {
			return s, true
		}
	}
	return Summary{}, false
}

// String renders the table with one column per series, in the layout of a
// describe() table.
func (t Table) String() string {
	rows := []struct {
		name string
		get  func(Summary) string
	}{
		{"count", func(s Summary) string { return fmt.Sprintf("%d", s.Count) }},
		{"mean", func(s Summary) string { return format(s.Mean) }},
		{"std", func(s Summary) string { return format(s.Std) }},
		{"min", func(s Summary) string { return format(s.Min) }},
		{"25%", func(s Summary) string { return format(s.Q25) }},
		{"50%", func(s Summary) string { return format(s.Q50) }},
		{"75%", func(s Summary) string { return format(s.Q75) }},
		{"max", func(s Summary) string { return format(s.Max) }},
	}

	width := 6
	for _, s := range t {
		if len(s.Name) > width {
			width = len(s.Name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-6s", "")
	for _, s := range t {
		fmt.Fprintf(&b, " %*s", width, s.Name)
	}
	b.WriteString("\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-6s", r.name)
		for _, s := range t {
			fmt.Fprintf(&b, " %*s", width, r.get(s))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func format(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.3f", v)
}
