package quadtree

import (
	"math"
	"sort"

	"github.com/katalvlaran/geoweights/geom"
	"github.com/katalvlaran/geoweights/metric"
)

// growth is the radius multiplier between k-NN search rounds.
const growth = 2.0

// Neighbor is a search hit with its exact metric distance.
type Neighbor struct {
	ID   int
	Dist float64
}

// candidates collects ids inside the metric's search boxes for radius d.
func (t *Tree) candidates(p geom.Point, d float64, m metric.Metric, self int) map[int]struct{} {
	ids := make(map[int]struct{})
	for _, b := range m.SearchBoxes(p, d) {
		t.QueryRangeIDs(b, ids)
	}
	delete(ids, self)

	return ids
}

// Within returns every stored point other than self whose distance to p is
// at most d, sorted by ascending id.
func (t *Tree) Within(p geom.Point, self int, d float64, m metric.Metric, pts []geom.Point) []Neighbor {
	ids := t.candidates(p, d, m, self)
	out := make([]Neighbor, 0, len(ids))
	for id := range ids {
		if dist := m.Distance(p, pts[id]); dist <= d {
			out = append(out, Neighbor{ID: id, Dist: dist})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Nearest returns the k stored points other than self closest to p, ordered
// by (distance, id). pts must be the coordinate slice the tree was built from.
//
// The search square grows geometrically until it holds at least k
// candidates. Because a square of half-width r only guarantees the disc of
// radius r, the candidate set is re-collected with the k-th candidate
// distance whenever that distance exceeds r, so the result is exact.
func (t *Tree) Nearest(p geom.Point, self, k int, m metric.Metric, pts []geom.Point) []Neighbor {
	if k <= 0 || t.size == 0 {
		return nil
	}
	maxD := m.MaxDistance(t.Bounds())
	r := t.initialRadius(k, m)

	ids := t.candidates(p, r, m, self)
	for len(ids) < k && r < maxD {
		r = math.Min(r*growth, maxD)
		ids = t.candidates(p, r, m, self)
	}

	hits := rank(p, ids, m, pts)
	if len(hits) >= k && hits[k-1].Dist > r {
		hits = rank(p, t.candidates(p, hits[k-1].Dist, m, self), m, pts)
	}
	if len(hits) > k {
		hits = hits[:k]
	}

	return hits
}

// rank computes exact distances and sorts by (distance, id).
func rank(p geom.Point, ids map[int]struct{}, m metric.Metric, pts []geom.Point) []Neighbor {
	out := make([]Neighbor, 0, len(ids))
	for id := range ids {
		out = append(out, Neighbor{ID: id, Dist: m.Distance(p, pts[id])})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dist != out[j].Dist {
			return out[i].Dist < out[j].Dist
		}
		return out[i].ID < out[j].ID
	})

	return out
}

// initialRadius guesses the radius of a disc expected to hold k+1 points
// if the data were spread evenly over the root rectangle.
func (t *Tree) initialRadius(k int, m metric.Metric) float64 {
	b := t.Bounds()
	r := math.Sqrt(b.Width() * b.Height() * float64(k+1) / (math.Pi * float64(t.size)))
	if m.IsArc() {
		// degrees → distance along a meridian
		r = m.Distance(geom.Point{X: 0, Y: 0}, geom.Point{X: 0, Y: math.Min(r, 90)})
	}
	if !(r > 0) {
		r = math.Max(m.MaxDistance(b)*1e-9, math.SmallestNonzeroFloat64)
	}

	return r
}
