package commands

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/pflag"

	"github.com/rewired-gh/plotbot/internal/chart"
	"github.com/rewired-gh/plotbot/internal/fit"
)

var errUnclosedQuote = errors.New("unclosed quote")

// closing maps each opening quote to the quote that ends it. Phone
// keyboards often send typographic quotes.
var closing = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'“':  '”',
	'‘':  '’',
	'«':  '»',
}

// splitArgs splits on whitespace, keeping quoted runs together. A quote
// only opens at the start of a word, so apostrophes inside words are kept.
func splitArgs(s string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inWord  bool
		closeCh rune
	)
	for _, r := range s {
		switch {
		case closeCh != 0:
			if r == closeCh {
				closeCh = 0
				continue
			}
			cur.WriteRune(r)
		case unicode.IsSpace(r):
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			if c, ok := closing[r]; ok && !inWord {
				closeCh = c
				inWord = true
				continue
			}
			cur.WriteRune(r)
			inWord = true
		}
	}
	if closeCh != 0 {
		return nil, errUnclosedQuote
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, usagef("The plot ID must be a number!")
	}
	return id, nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, usagef("%q is not a number!", s)
	}
	return v, nil
}

func parseNumbers(ss []string) ([]float64, error) {
	out := make([]float64, len(ss))
	for i, s := range ss {
		v, err := parseNumber(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseDegree(args []string, at int) (int, error) {
	if len(args) <= at {
		return 1, nil
	}
	d, err := strconv.Atoi(args[at])
	if err != nil || d < 0 || d > fit.MaxDegree {
		return 0, usagef("The degree must be an integer from 0 to %d!", fit.MaxDegree)
	}
	return d, nil
}

// parseLimit reads a bound. "_" and "none" leave the side unbounded.
func parseLimit(s string) (*float64, error) {
	switch strings.ToLower(s) {
	case "_", "none", "inf":
		return nil, nil
	}
	v, err := parseNumber(s)
	if err != nil {
		return nil, err
	}
	return chart.Float(v), nil
}

// flags is a pflag set that reports errors instead of exiting.
type flags struct {
	*pflag.FlagSet
	usage string
}

func newFlags(name, usage string) *flags {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return &flags{FlagSet: fs, usage: usage}
}

func (f *flags) parse(args []string) error {
	if err := f.Parse(args); err != nil {
		return usagef("%v\nusage: /%s", err, f.usage)
	}
	return nil
}

// title returns the -t value, or the leftover positional words.
func (f *flags) title(t string) string {
	if t != "" {
		return t
	}
	return strings.Join(f.Args(), " ")
}

// triple reads a flag of exactly three comma-separated values.
func triple(name string, vs []string) ([3]string, error) {
	var out [3]string
	if len(vs) == 0 {
		return out, nil
	}
	if len(vs) != 3 {
		return out, usagef("--%s needs exactly 3 comma-separated values, got %d", name, len(vs))
	}
	copy(out[:], vs)
	return out, nil
}

// cells reads nine comma-separated alignment cells, row by row.
func cells(vs []string) (*[3][3]string, error) {
	if len(vs) == 0 {
		return nil, nil
	}
	if len(vs) != 9 {
		return nil, usagef("--cells needs exactly 9 comma-separated values, got %d", len(vs))
	}
	var out [3][3]string
	for i, v := range vs {
		out[i/3][i%3] = v
	}
	return &out, nil
}
