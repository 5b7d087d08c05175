package chart

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a point or one of its error-bar
	// extremes falls outside the chart's region.
	ErrOutOfBounds = errors.New("plot point cannot be out of bounds")
	// ErrNotFound is returned when a label is not present on a chart.
	ErrNotFound = errors.New("label not found")
	// ErrInvalid is returned for malformed input: wrong vector length,
	// negative degree, bad edit arguments, too few points to fit.
	ErrInvalid = errors.New("invalid argument")
	// ErrPermission is returned when the acting user may not perform an
	// operation, such as crowdsourcing their own point.
	ErrPermission = errors.New("permission denied")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

func notFound(label string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, label)
}

func invalidBounds(r Region) error {
	return fmt.Errorf("%w: %s", ErrOutOfBounds, r)
}
