// Package contiguity provides tunable options and error definitions for
// rook/queen contiguity builders over polygons and points.
package contiguity

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/geoweights/logging"
)

// Sentinel errors for contiguity construction.
var (
	// ErrEmptyInput is returned when no observations are supplied.
	ErrEmptyInput = errors.New("contiguity: empty input")

	// ErrBadCoordinate is returned for NaN or infinite coordinates.
	ErrBadCoordinate = errors.New("contiguity: coordinate is not finite")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("contiguity: invalid option supplied")
)

// Rule selects what counts as a shared boundary.
type Rule int

const (
	// Queen: at least one shared boundary vertex.
	Queen Rule = iota
	// Rook: at least one shared boundary edge.
	Rook
)

// String returns "queen" or "rook".
func (r Rule) String() string {
	if r == Rook {
		return "rook"
	}

	return "queen"
}

// Option configures a contiguity build via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the resolved build parameters.
type Options struct {
	// Rule is Queen or Rook.
	Rule Rule

	// Precision treats two boundary vertices as shared when both their x and
	// y differ by at most Precision. 0 requires exact coincidence.
	Precision float64

	// Order > 1 expands the graph to k-th order contiguity.
	Order int

	// IncludeLower keeps lower-order neighbors when Order > 1.
	IncludeLower bool

	// Layer and IDVariable are copied into the graph metadata.
	Layer      string
	IDVariable string

	Logger *slog.Logger

	err error
}

// DefaultOptions returns first-order queen contiguity with exact matching
// and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Rule:   Queen,
		Order:  1,
		Logger: logging.Discard(),
	}
}

// WithRule selects Queen or Rook.
func WithRule(r Rule) Option {
	return func(o *Options) {
		if r != Queen && r != Rook {
			o.err = fmt.Errorf("%w: unknown rule %d", ErrOptionViolation, int(r))
			return
		}
		o.Rule = r
	}
}

// WithPrecision sets the vertex-matching threshold.
//
//	t >= 0: vertices within t on both axes are shared
//	t < 0 or NaN: invalid option → ErrOptionViolation
func WithPrecision(t float64) Option {
	return func(o *Options) {
		if !(t >= 0) || math.IsInf(t, 1) {
			o.err = fmt.Errorf("%w: precision threshold must be finite and >= 0 (%v)", ErrOptionViolation, t)
			return
		}
		o.Precision = t
	}
}

// WithOrder sets the contiguity order k (k >= 1).
func WithOrder(k int, includeLower bool) Option {
	return func(o *Options) {
		if k < 1 {
			o.err = fmt.Errorf("%w: order must be >= 1 (%d)", ErrOptionViolation, k)
			return
		}
		o.Order = k
		o.IncludeLower = includeLower
	}
}

// WithLabels records the layer name and id variable in the metadata.
func WithLabels(layer, idVariable string) Option {
	return func(o *Options) {
		o.Layer = layer
		o.IDVariable = idVariable
	}
}

// WithLogger sets the debug/warn logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func resolve(method string, opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return o, fmt.Errorf("%s: %w", method, o.err)
	}

	return o, nil
}
