package distgraph

import (
	"fmt"
	"math"

	"github.com/katalvlaran/geoweights/core"
	"github.com/katalvlaran/geoweights/geom"
)

// Band links every pair of defined observations at distance <= threshold.
//
// A threshold <= 0 is raised to the smallest positive float, so only
// coincident points become neighbors. Without WithInverseDistance the graph
// is unweighted; with it each edge weighs d^(-power) and a coincident pair
// gets +Inf together with a WarnZeroDistance warning.
//
// Rows are sorted by ascending neighbor id. The result is symmetric.
//
// Complexity: O(N log N + N·m) where m is the mean band occupancy.
func Band(pts []geom.Point, threshold float64, opts ...Option) (*core.Graph, []core.Warning, error) {
	const method = "Band"
	o, err := resolve(method, opts)
	if err != nil {
		return nil, nil, err
	}
	if math.IsNaN(threshold) {
		return nil, nil, fmt.Errorf("%s: threshold is NaN: %w", method, ErrOptionViolation)
	}
	if threshold <= 0 {
		threshold = math.SmallestNonzeroFloat64
	}
	s, err := newSearcher(method, pts, o)
	if err != nil {
		return nil, nil, err
	}

	w := newWeigher(o)
	rows := make([][]core.Neighbor, len(pts))
	err = s.each(func(i int) {
		hits := s.within(i, threshold)
		row := make([]core.Neighbor, 0, len(hits))
		for _, h := range hits {
			if !s.defined[h.ID] {
				continue
			}
			row = append(row, core.Neighbor{ID: h.ID, Weight: w.weight(h.Dist)})
		}
		rows[i] = row
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", method, err)
	}

	m := o.meta(core.MethodDistanceBand)
	m.Threshold = threshold
	g := core.NewGraph(len(pts), graphOpts(o, m)...)
	fill(g, rows)
	g.MarkSymmetric(true)

	warns := warnings(g, zeroDistanceIDs(rows))
	o.Logger.Debug("distance band built", "n", len(pts), "threshold", threshold, "edges", g.TotalEdges())
	logWarnings(o, warns)

	return g, warns, nil
}

func graphOpts(o Options, m core.Meta) []core.GraphOption {
	opts := []core.GraphOption{core.WithMeta(m)}
	if o.Inverse {
		opts = append(opts, core.WithWeighted())
	}

	return opts
}
