package distgraph

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/geoweights/geom"
	"github.com/katalvlaran/geoweights/metric"
)

// exactPairLimit bounds the O(N²) pairwise scan in MaxThreshold.
const exactPairLimit = 2000

// farthestRounds is the number of farthest-point hops for large inputs.
const farthestRounds = 10

// MinThreshold returns the largest nearest-neighbor distance: the smallest
// band for which no point is an island.
func MinThreshold(pts []geom.Point, m metric.Metric) (float64, error) {
	if len(pts) < 2 {
		return 0, fmt.Errorf("MinThreshold: %d points: %w", len(pts), ErrEmptyInput)
	}
	o := DefaultOptions()
	o.Metric = m
	s, err := newSearcher("MinThreshold", pts, o)
	if err != nil {
		return 0, err
	}

	var best float64
	for i := range pts {
		if hits := s.nearest(i, 1); len(hits) == 1 && hits[0].Dist > best {
			best = hits[0].Dist
		}
	}

	return best, nil
}

// MaxThreshold returns the largest pairwise distance, exactly for up to
// exactPairLimit points. Larger inputs use repeated farthest-point hops from
// a seeded start, which gives a lower bound that is usually the diameter.
func MaxThreshold(pts []geom.Point, m metric.Metric) (float64, error) {
	n := len(pts)
	if n < 2 {
		return 0, fmt.Errorf("MaxThreshold: %d points: %w", n, ErrEmptyInput)
	}

	var best float64
	if n <= exactPairLimit {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if d := m.Distance(pts[i], pts[j]); d > best {
					best = d
				}
			}
		}
		return best, nil
	}

	rng := rand.New(rand.NewSource(int64(n)))
	cur := rng.Intn(n)
	for r := 0; r < farthestRounds; r++ {
		next, far := cur, 0.0
		for j, p := range pts {
			if d := m.Distance(pts[cur], p); d > far {
				next, far = j, d
			}
		}
		if far > best {
			best = far
		}
		if next == cur {
			break
		}
		cur = next
	}

	return best, nil
}
