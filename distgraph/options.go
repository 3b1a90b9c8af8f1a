// File: options.go
// Role: functional options and sentinel errors for the distance builders.

package distgraph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/geoweights/core"
	"github.com/katalvlaran/geoweights/logging"
	"github.com/katalvlaran/geoweights/metric"
)

// Sentinel errors for distance-based construction.
var (
	// ErrEmptyInput is returned when no coordinates are supplied.
	ErrEmptyInput = errors.New("distgraph: empty input")

	// ErrBadCoordinate is returned for NaN or infinite coordinates of a
	// defined observation.
	ErrBadCoordinate = errors.New("distgraph: coordinate is not finite")

	// ErrInvalidK is returned when k < 1.
	ErrInvalidK = errors.New("distgraph: k must be >= 1")

	// ErrKTooLarge is returned when k is not below the number of defined
	// observations.
	ErrKTooLarge = errors.New("distgraph: k must be less than the number of observations")

	// ErrInvalidBandwidth is returned for a fixed kernel bandwidth that is
	// not strictly positive and finite.
	ErrInvalidBandwidth = errors.New("distgraph: bandwidth must be > 0")

	// ErrUnknownKernel is returned by ParseKernel and for out-of-range values.
	ErrUnknownKernel = errors.New("distgraph: unknown kernel function")

	// ErrMaskLength is returned when the undefined mask length differs from
	// the number of coordinates.
	ErrMaskLength = errors.New("distgraph: undefined mask length mismatch")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("distgraph: invalid option supplied")
)

// Option configures a build via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation when the builder runs.
type Option func(*Options)

// Options holds the resolved build parameters.
type Options struct {
	// Metric measures every distance, including the index prefilter.
	Metric metric.Metric

	// Inverse switches weights to distance^(-Power).
	Inverse bool
	Power   float64

	// Undefined marks observations without usable coordinates; they are
	// neither indexed nor searched and end up as islands.
	Undefined []bool

	// Workers > 1 runs per-observation queries concurrently.
	Workers int
	Ctx     context.Context

	// Labels copied into the metadata.
	Layer      string
	IDVariable string
	XVar, YVar string
	Period     int

	Logger *slog.Logger

	err error
}

// DefaultOptions returns planar, uniform-weight, sequential settings.
func DefaultOptions() Options {
	return Options{
		Metric:  metric.Euclidean(),
		Power:   1,
		Workers: 1,
		Ctx:     context.Background(),
		Logger:  logging.Discard(),
	}
}

// WithMetric selects the distance metric.
func WithMetric(m metric.Metric) Option {
	return func(o *Options) { o.Metric = m }
}

// WithInverseDistance enables inverse-distance weights d^(-power).
//
//	power > 0: accepted
//	power <= 0 or NaN: invalid option → ErrOptionViolation
func WithInverseDistance(power float64) Option {
	return func(o *Options) {
		if !(power > 0) || math.IsInf(power, 1) {
			o.err = fmt.Errorf("%w: inverse distance power must be > 0 (%v)", ErrOptionViolation, power)
			return
		}
		o.Inverse = true
		o.Power = power
	}
}

// WithUndefined marks observations to skip. The mask must have one entry
// per coordinate; the builder checks the length.
func WithUndefined(mask []bool) Option {
	return func(o *Options) { o.Undefined = mask }
}

// WithWorkers fans per-observation queries over n goroutines.
//
//	n >= 1: accepted (1 = sequential)
//	n < 1: invalid option → ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: workers must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithContext sets a context checked between observations.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLabels records the layer name and id variable in the metadata.
func WithLabels(layer, idVariable string) Option {
	return func(o *Options) {
		o.Layer = layer
		o.IDVariable = idVariable
	}
}

// WithCoordinateVars records the coordinate variable names and time period.
func WithCoordinateVars(x, y string, period int) Option {
	return func(o *Options) {
		o.XVar, o.YVar, o.Period = x, y, period
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

func (o Options) meta(method core.Method) core.Meta {
	m := core.Meta{
		Method:     method,
		Layer:      o.Layer,
		IDVariable: o.IDVariable,
		Metric:     o.Metric.String(),
		Units:      string(o.Metric.Unit()),
		XVar:       o.XVar,
		YVar:       o.YVar,
		Period:     o.Period,
		Inverse:    o.Inverse,
	}
	if o.Inverse {
		m.Power = o.Power
	}

	return m
}
