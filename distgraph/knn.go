package distgraph

import (
	"fmt"

	"github.com/katalvlaran/geoweights/core"
	"github.com/katalvlaran/geoweights/geom"
)

// KNN links every defined observation to its k nearest defined others.
//
// Rows are ordered by (distance, id), so equal distances resolve to the
// smaller id. The relation is not symmetric in general; the graph's
// symmetry flag is left for IsSymmetric to compute. Weights follow Band.
//
// Errors:
//   - ErrInvalidK if k < 1.
//   - ErrKTooLarge if k >= the number of defined observations.
func KNN(pts []geom.Point, k int, opts ...Option) (*core.Graph, []core.Warning, error) {
	const method = "KNN"
	o, err := resolve(method, opts)
	if err != nil {
		return nil, nil, err
	}
	if k < 1 {
		return nil, nil, fmt.Errorf("%s: k=%d: %w", method, k, ErrInvalidK)
	}
	s, err := newSearcher(method, pts, o)
	if err != nil {
		return nil, nil, err
	}
	if k >= s.nValid {
		return nil, nil, fmt.Errorf("%s: k=%d with %d defined observations: %w", method, k, s.nValid, ErrKTooLarge)
	}

	w := newWeigher(o)
	rows := make([][]core.Neighbor, len(pts))
	err = s.each(func(i int) {
		hits := s.nearest(i, k)
		row := make([]core.Neighbor, len(hits))
		for j, h := range hits {
			row[j] = core.Neighbor{ID: h.ID, Weight: w.weight(h.Dist)}
		}
		rows[i] = row
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", method, err)
	}

	m := o.meta(core.MethodKNN)
	m.K = k
	g := core.NewGraph(len(pts), graphOpts(o, m)...)
	fill(g, rows)

	warns := warnings(g, zeroDistanceIDs(rows))
	o.Logger.Debug("k-nearest neighbors built", "n", len(pts), "k", k, "edges", g.TotalEdges())
	logWarnings(o, warns)

	return g, warns, nil
}
