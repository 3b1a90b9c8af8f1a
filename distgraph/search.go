package distgraph

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/geoweights/core"
	"github.com/katalvlaran/geoweights/geom"
	"github.com/katalvlaran/geoweights/quadtree"
)

// searcher is a read-only quad-tree over the defined observations.
type searcher struct {
	pts     []geom.Point
	defined []bool
	nValid  int
	tree    *quadtree.Tree
	o       Options
}

func newSearcher(method string, pts []geom.Point, o Options) (*searcher, error) {
	n := len(pts)
	if n == 0 {
		return nil, fmt.Errorf("%s: %w", method, ErrEmptyInput)
	}
	if o.Undefined != nil && len(o.Undefined) != n {
		return nil, fmt.Errorf("%s: mask has %d entries for %d observations: %w", method, len(o.Undefined), n, ErrMaskLength)
	}
	s := &searcher{pts: pts, defined: make([]bool, n), o: o}
	valid := make([]geom.Point, 0, n)
	for i, p := range pts {
		if o.Undefined != nil && o.Undefined[i] {
			continue
		}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, fmt.Errorf("%s: observation %d %v: %w", method, i, p, ErrBadCoordinate)
		}
		s.defined[i] = true
		valid = append(valid, p)
	}
	s.nValid = len(valid)
	if s.nValid == 0 {
		return nil, fmt.Errorf("%s: every observation is undefined: %w", method, ErrEmptyInput)
	}

	bounds, err := geom.BoundsOf(valid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	s.tree = quadtree.New(bounds)
	for i, p := range pts {
		if s.defined[i] && !s.tree.Insert(p, i) {
			// bounds come from the same points
			panic(fmt.Sprintf("distgraph: %s: observation %d outside index bounds", method, i))
		}
	}

	return s, nil
}

func (s *searcher) within(i int, d float64) []quadtree.Neighbor {
	return s.tree.Within(s.pts[i], i, d, s.o.Metric, s.pts)
}

func (s *searcher) nearest(i, k int) []quadtree.Neighbor {
	return s.tree.Nearest(s.pts[i], i, k, s.o.Metric, s.pts)
}

// each runs fn for every defined observation, on Workers goroutines when
// Workers > 1. fn writes only to its own slot, so no locking is needed.
func (s *searcher) each(fn func(i int)) error {
	ctx := s.o.Ctx
	if s.o.Workers <= 1 {
		for i := range s.pts {
			if err := ctx.Err(); err != nil {
				return err
			}
			if s.defined[i] {
				fn(i)
			}
		}
		return nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.o.Workers)
	for i := range s.pts {
		if !s.defined[i] {
			continue
		}
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}

	return eg.Wait()
}

// weigher converts a distance into an edge weight and records zero
// distances under inverse weighting.
type weigher struct {
	inverse  bool
	exponent float64
}

func newWeigher(o Options) weigher {
	return weigher{inverse: o.Inverse, exponent: -o.Power}
}

func (w weigher) weight(d float64) float64 {
	if !w.inverse {
		return 1
	}

	return math.Pow(d, w.exponent)
}

// fill copies per-observation rows into a fresh graph.
func fill(g *core.Graph, rows [][]core.Neighbor) {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := g.SetNeighbors(i, row); err != nil {
			panic(fmt.Sprintf("distgraph: %v", err))
		}
	}
}

// warnings reports islands and zero-distance inverse weights.
func warnings(g *core.Graph, zeroDist []int) []core.Warning {
	var out []core.Warning
	if n, iso := g.NumObs(), g.Isolates(); len(iso) > 0 && n > 1 {
		out = append(out, core.Warning{
			Kind:    core.WarnIslands,
			Message: fmt.Sprintf("%d of %d observations have no neighbors", len(iso), n),
			IDs:     iso,
		})
	}
	if len(zeroDist) > 0 {
		out = append(out, core.Warning{
			Kind:    core.WarnZeroDistance,
			Message: fmt.Sprintf("%d observations have a neighbor at distance 0; inverse weights are +Inf", len(zeroDist)),
			IDs:     zeroDist,
		})
	}

	return out
}

// zeroDistanceIDs lists rows holding an infinite inverse weight.
func zeroDistanceIDs(rows [][]core.Neighbor) []int {
	var out []int
	for i, row := range rows {
		for _, nb := range row {
			if math.IsInf(nb.Weight, 1) {
				out = append(out, i)
				break
			}
		}
	}

	return out
}

func logWarnings(o Options, warns []core.Warning) {
	for _, w := range warns {
		o.Logger.Warn("distance weights warning", "kind", w.Kind.String(), "msg", w.Message)
	}
}
