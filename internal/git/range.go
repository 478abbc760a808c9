package git

import (
	"fmt"
	"strings"
)

// Range is the set of commits reachable from To but not from From.
// An empty To denotes the current position; an empty From denotes the
// whole history reachable from To.
type Range struct {
	From string
	To   string
}

// ParseRange splits a two-dot range argument ("v1.0.0..v1.1.0") into its ends.
// A bare reference is read as the lower bound of an open range.
// The three-dot form is rejected: it denotes a symmetric difference.
func ParseRange(expr string) (Range, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Range{}, fmt.Errorf("%w: empty range", ErrInvalidRange)
	}
	if strings.Contains(expr, "...") {
		return Range{}, fmt.Errorf("%w: %q: symmetric difference is not a release range", ErrInvalidRange, expr)
	}

	idx := strings.Index(expr, "..")
	rng := Range{From: expr}
	if idx != -1 {
		rng = Range{From: expr[:idx], To: expr[idx+2:]}
	}
	if rng.From == "" {
		return Range{}, fmt.Errorf("%w: %q: missing lower bound", ErrInvalidRange, expr)
	}
	if strings.Contains(rng.To, "..") {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, expr)
	}
	if err := rng.validate(); err != nil {
		return Range{}, err
	}
	return rng, nil
}

// Revision returns the revision argument git log expects for the range.
func (r Range) Revision() string {
	switch {
	case r.From == "" && r.To == "":
		return "HEAD"
	case r.From == "":
		return r.To
	default:
		return r.From + ".." + r.To
	}
}

// String returns the range in two-dot notation.
func (r Range) String() string {
	return r.From + ".." + r.To
}

func (r Range) validate() error {
	if err := validateRef(r.From); err != nil {
		return err
	}
	return validateRef(r.To)
}
