// File: builder.go
// Role: the builder variants selected by Config.Builder. Each variant owns
//       its validated parameters and knows which input data it reads.

package weights

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/geoweights/block"
	"github.com/katalvlaran/geoweights/contiguity"
	"github.com/katalvlaran/geoweights/core"
	"github.com/katalvlaran/geoweights/distgraph"
	"github.com/katalvlaran/geoweights/geom"
	"github.com/katalvlaran/geoweights/metric"
)

// Input is the data a build reads. Polygon contiguity uses Polygons, and
// distance methods fall back to polygon centroids when no x/y columns are
// configured; everything else reads columns from Table. Voronoi contiguity
// is used for queen and rook when Polygons is empty.
type Input struct {
	Table    Table
	Polygons []geom.Polygon
}

// NumObs returns the observation count implied by the input.
func (in Input) NumObs() int {
	if in.Table != nil {
		return in.Table.NumRows()
	}

	return len(in.Polygons)
}

// Builder is one validated construction variant.
type Builder interface {
	Method() core.Method
	Build(ctx context.Context, in Input, l *slog.Logger) (*core.Graph, []core.Warning, error)
}

// Builder validates c and returns the variant its method selects. No
// construction happens here.
func (c Config) Builder() (Builder, error) {
	const method = "Builder"
	m, err := core.ParseMethod(c.Method)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	lb := labels{layer: c.Layer, id: c.IDField}

	switch m {
	case core.MethodQueen, core.MethodRook:
		cc := c.Contiguity
		if cc.Order < 1 {
			return nil, fmt.Errorf("%s: order %d: %w", method, cc.Order, ErrInvalidConfig)
		}
		if !(cc.PrecisionThreshold >= 0) || math.IsInf(cc.PrecisionThreshold, 1) {
			return nil, fmt.Errorf("%s: precision threshold %v: %w", method, cc.PrecisionThreshold, ErrInvalidConfig)
		}
		rule := contiguity.Queen
		if m == core.MethodRook {
			rule = contiguity.Rook
		}
		return contiguityBuilder{labels: lb, rule: rule, cfg: cc, coords: c.Distance}, nil

	case core.MethodDistanceBand, core.MethodKNN, core.MethodKernel:
		d := c.Distance
		mt, err := metric.Parse(d.Metric)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		if d.Inverse && m != core.MethodKernel && !(d.Power > 0) {
			return nil, fmt.Errorf("%s: power %v: %w", method, d.Power, ErrInvalidConfig)
		}
		pb := pointBuilder{labels: lb, cfg: d, metric: mt}
		switch m {
		case core.MethodDistanceBand:
			return bandBuilder{pb}, nil
		case core.MethodKNN:
			if d.K < 1 {
				return nil, fmt.Errorf("%s: k=%d: %w", method, d.K, ErrInvalidConfig)
			}
			return knnBuilder{pb}, nil
		}
		kf, err := distgraph.ParseKernel(c.Kernel.Function)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		spec := distgraph.KernelSpec{
			Func:            kf,
			Bandwidth:       c.Kernel.Bandwidth,
			K:               c.Kernel.K,
			Adaptive:        c.Kernel.Adaptive,
			ApplyToDiagonal: c.Kernel.ApplyToDiagonal,
		}
		if spec.K < 0 || (spec.K == 0 && !(spec.Bandwidth > 0)) {
			return nil, fmt.Errorf("%s: kernel needs k >= 1 or bandwidth > 0: %w", method, ErrInvalidConfig)
		}
		pb.cfg.Inverse = false
		return kernelBuilder{pointBuilder: pb, spec: spec}, nil

	case core.MethodBlock:
		if len(c.Block.Variables) == 0 {
			return nil, fmt.Errorf("%s: block needs at least one variable: %w", method, ErrInvalidConfig)
		}
		return blockBuilder{labels: lb, vars: c.Block.Variables}, nil
	}

	return nil, fmt.Errorf("%s: %v: %w", method, m, core.ErrUnknownMethod)
}

type labels struct{ layer, id string }

type contiguityBuilder struct {
	labels
	rule   contiguity.Rule
	cfg    ContiguityConfig
	coords DistanceConfig
}

func (b contiguityBuilder) Method() core.Method {
	if b.rule == contiguity.Rook {
		return core.MethodRook
	}

	return core.MethodQueen
}

func (b contiguityBuilder) Build(_ context.Context, in Input, l *slog.Logger) (*core.Graph, []core.Warning, error) {
	opts := []contiguity.Option{
		contiguity.WithRule(b.rule),
		contiguity.WithPrecision(b.cfg.PrecisionThreshold),
		contiguity.WithOrder(b.cfg.Order, b.cfg.IncludeLower),
		contiguity.WithLabels(b.layer, b.id),
		contiguity.WithLogger(l),
	}
	if len(in.Polygons) > 0 {
		if in.Table != nil && in.Table.NumRows() != len(in.Polygons) {
			return nil, nil, fmt.Errorf("Build: %d polygons for %d rows: %w", len(in.Polygons), in.Table.NumRows(), ErrMissingInput)
		}
		return contiguity.Polygons(in.Polygons, opts...)
	}
	if in.Table == nil {
		return nil, nil, fmt.Errorf("Build: contiguity needs polygons or coordinates: %w", ErrMissingInput)
	}
	pts, undef, err := Coordinates(in.Table, b.coords.X, b.coords.Y, b.coords.Period)
	if err != nil {
		return nil, nil, fmt.Errorf("Build: %w", err)
	}
	if undef != nil {
		return nil, nil, fmt.Errorf("Build: Voronoi contiguity needs every coordinate: %w", ErrMissingInput)
	}

	return contiguity.Points(pts, opts...)
}

// pointBuilder holds what every distance-based variant shares.
type pointBuilder struct {
	labels
	cfg    DistanceConfig
	metric metric.Metric
}

// points reads the x/y columns, or polygon centroids when the input is a
// polygon layer and no coordinate columns are configured.
func (b pointBuilder) points(in Input) ([]geom.Point, []distgraph.Option, error) {
	var (
		pts   []geom.Point
		undef []bool
		err   error
	)
	switch {
	case len(in.Polygons) > 0 && b.cfg.X == "" && b.cfg.Y == "":
		if in.Table != nil && in.Table.NumRows() != len(in.Polygons) {
			return nil, nil, fmt.Errorf("Build: %d polygons for %d rows: %w", len(in.Polygons), in.Table.NumRows(), ErrMissingInput)
		}
		pts, undef = Centroids(in.Polygons)
	case in.Table == nil:
		return nil, nil, fmt.Errorf("Build: distance weights need a table or polygons: %w", ErrMissingInput)
	default:
		if pts, undef, err = Coordinates(in.Table, b.cfg.X, b.cfg.Y, b.cfg.Period); err != nil {
			return nil, nil, fmt.Errorf("Build: %w", err)
		}
	}
	workers := b.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	opts := []distgraph.Option{
		distgraph.WithMetric(b.metric),
		distgraph.WithUndefined(undef),
		distgraph.WithWorkers(workers),
		distgraph.WithLabels(b.layer, b.id),
		distgraph.WithCoordinateVars(b.cfg.X, b.cfg.Y, b.cfg.Period),
	}
	if b.cfg.Inverse {
		opts = append(opts, distgraph.WithInverseDistance(b.cfg.Power))
	}

	return pts, opts, nil
}

type bandBuilder struct{ pointBuilder }

func (bandBuilder) Method() core.Method { return core.MethodDistanceBand }

func (b bandBuilder) Build(ctx context.Context, in Input, l *slog.Logger) (*core.Graph, []core.Warning, error) {
	pts, opts, err := b.points(in)
	if err != nil {
		return nil, nil, err
	}

	return distgraph.Band(pts, b.cfg.Threshold, append(opts, distgraph.WithContext(ctx), distgraph.WithLogger(l))...)
}

type knnBuilder struct{ pointBuilder }

func (knnBuilder) Method() core.Method { return core.MethodKNN }

func (b knnBuilder) Build(ctx context.Context, in Input, l *slog.Logger) (*core.Graph, []core.Warning, error) {
	pts, opts, err := b.points(in)
	if err != nil {
		return nil, nil, err
	}

	return distgraph.KNN(pts, b.cfg.K, append(opts, distgraph.WithContext(ctx), distgraph.WithLogger(l))...)
}

type kernelBuilder struct {
	pointBuilder
	spec distgraph.KernelSpec
}

func (kernelBuilder) Method() core.Method { return core.MethodKernel }

func (b kernelBuilder) Build(ctx context.Context, in Input, l *slog.Logger) (*core.Graph, []core.Warning, error) {
	pts, opts, err := b.points(in)
	if err != nil {
		return nil, nil, err
	}

	return distgraph.KernelWeights(pts, b.spec, append(opts, distgraph.WithContext(ctx), distgraph.WithLogger(l))...)
}

type blockBuilder struct {
	labels
	vars []string
}

func (blockBuilder) Method() core.Method { return core.MethodBlock }

func (b blockBuilder) Build(_ context.Context, in Input, l *slog.Logger) (*core.Graph, []core.Warning, error) {
	if in.Table == nil {
		return nil, nil, fmt.Errorf("Build: block weights need a table: %w", ErrMissingInput)
	}
	vars, err := BlockVariables(in.Table, b.vars)
	if err != nil {
		return nil, nil, fmt.Errorf("Build: %w", err)
	}

	return block.Build(vars, block.WithLabels(b.layer, b.id), block.WithLogger(l))
}
