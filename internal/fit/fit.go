// Package fit performs ordinary least-squares polynomial fits and computes
// their coefficient of determination.
//
// Coefficients are always ordered from the constant term upwards:
// coeffs[i] multiplies x^i.
package fit

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDegree is returned for a degree outside [0, MaxDegree].
	ErrDegree = fmt.Errorf("degree must be an integer from 0 to %d", MaxDegree)
	// ErrTooFewPoints is returned when fewer than two points are supplied.
	ErrTooFewPoints = errors.New("at least 2 points are needed for a fit")
	// ErrUndefinedRSquared is returned when every y value is identical, so the
	// total sum of squares is zero and R² has no meaning.
	ErrUndefinedRSquared = errors.New("r squared is undefined when all y values are equal")
	// ErrSingular is returned when the least-squares system has no unique solution.
	ErrSingular = errors.New("fit is numerically singular")
)

const (
	// Precision is the number of decimals shown for coefficients in equations.
	Precision = 2
	// MaxDegree is the highest degree Polyfit accepts.
	MaxDegree = 20
)

// Result is the outcome of a fit.
type Result struct {
	Coefficients []float64
	RSquared     float64
	Equation     string
}

// Fit runs Polyfit, RSquared and Equation in one call.
func Fit(xs, ys []float64, degree int) (Result, error) {
	coeffs, err := Polyfit(xs, ys, degree)
	if err != nil {
		return Result{}, err
	}
	r2, err := RSquared(xs, ys, coeffs)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Coefficients: coeffs,
		RSquared:     r2,
		Equation:     Equation(coeffs),
	}, nil
}

// Polyfit returns the least-squares polynomial of the given degree through
// (xs, ys). Error bars are not used as weights.
func Polyfit(xs, ys []float64, degree int) ([]float64, error) {
	if degree < 0 || degree > MaxDegree {
		return nil, ErrDegree
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("mismatched series: %d x values, %d y values", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, ErrTooFewPoints
	}

	cols := degree + 1
	a := mat.NewDense(len(xs), cols, nil)
	for i, x := range xs {
		v := 1.0
		for j := 0; j < cols; j++ {
			a.Set(i, j, v)
			v *= x
		}
	}
	b := mat.NewVecDense(len(ys), append([]float64(nil), ys...))

	var beta mat.VecDense
	if err := beta.SolveVec(a, b); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: %v", ErrSingular, err)
		}
		return nil, fmt.Errorf("least squares solve failed: %w", err)
	}

	coeffs := make([]float64, cols)
	for j := range coeffs {
		coeffs[j] = beta.AtVec(j)
	}
	for _, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, ErrSingular
		}
	}
	return coeffs, nil
}

// Eval evaluates the polynomial at x using Horner's rule.
func Eval(coeffs []float64, x float64) float64 {
	var y float64
	for i := len(coeffs) - 1; i >= 0; i-- {
		y = y*x + coeffs[i]
	}
	return y
}

// RSquared computes 1 - SSres/SStot for the polynomial over (xs, ys).
func RSquared(xs, ys, coeffs []float64) (float64, error) {
	if len(xs) != len(ys) || len(ys) == 0 {
		return 0, ErrTooFewPoints
	}
	mean := floats.Sum(ys) / float64(len(ys))

	var ssRes, ssTot float64
	for i, y := range ys {
		d := y - Eval(coeffs, xs[i])
		ssRes += d * d
		m := y - mean
		ssTot += m * m
	}
	if ssTot == 0 {
		return 0, ErrUndefinedRSquared
	}
	return 1 - ssRes/ssTot, nil
}

// Curve samples the polynomial at n evenly spaced x values in [lo, hi].
func Curve(coeffs []float64, lo, hi float64, n int) (xs, ys []float64) {
	if n < 2 {
		n = 2
	}
	xs = make([]float64, n)
	floats.Span(xs, lo, hi)
	ys = make([]float64, n)
	for i, x := range xs {
		ys[i] = Eval(coeffs, x)
	}
	return xs, ys
}

// Equation renders coefficients as "c0 + c1 x + c2 x^2 ...", rounded to
// Precision decimals. Terms that round to zero are dropped.
func Equation(coeffs []float64) string {
	var b strings.Builder
	for i, c := range coeffs {
		r := round(c)
		if r == 0 {
			continue
		}
		num := fmt.Sprintf("%.*f", Precision, math.Abs(r))
		switch {
		case b.Len() == 0 && r < 0:
			b.WriteString("-")
		case b.Len() > 0 && r < 0:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}
		b.WriteString(num)
		switch i {
		case 0:
		case 1:
			b.WriteString(" x")
		default:
			fmt.Fprintf(&b, " x^%d", i)
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

func round(v float64) float64 {
	p := math.Pow(10, Precision)
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // normalise -0
	}
	return r
}
