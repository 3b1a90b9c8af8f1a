package contiguity

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dhconnelly/rtreego"

	"github.com/katalvlaran/geoweights/core"
	"github.com/katalvlaran/geoweights/geom"
	"github.com/katalvlaran/geoweights/graphops"
	"github.com/katalvlaran/geoweights/quadtree"
)

// R-tree fan-out, as used for bounding-box indexes elsewhere.
const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
)

// Polygons builds rook or queen contiguity over polys. Observation i is
// polys[i]; a polygon without vertices is an island.
//
// Errors:
//   - ErrEmptyInput when polys is empty.
//   - ErrBadCoordinate for NaN or infinite vertices.
//   - ErrOptionViolation for invalid options.
//
// Complexity: O(V log V) to index, plus O(Σ v_i log v_j) over candidate pairs.
func Polygons(polys []geom.Polygon, opts ...Option) (*core.Graph, []core.Warning, error) {
	const method = "Polygons"
	o, err := resolve(method, opts)
	if err != nil {
		return nil, nil, err
	}
	n := len(polys)
	if n == 0 {
		return nil, nil, fmt.Errorf("%s: %w", method, ErrEmptyInput)
	}
	start := time.Now()

	sets := make([]*vertexSet, n)
	for i, p := range polys {
		vs, err := newVertexSet(p)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: polygon %d: %w", method, i, err)
		}
		sets[i] = vs
	}
	pairs, nCand := candidatePairs(sets, o.Precision)

	g := core.NewGraph(n, core.WithMeta(o.meta(false)))
	for i, js := range pairs {
		for _, j := range js {
			if !shares(sets[i], sets[j], o.Rule, o.Precision) {
				continue
			}
			mustAdd(g, i, j)
			mustAdd(g, j, i)
		}
	}
	g.MarkSymmetric(true)
	o.Logger.Debug("polygon contiguity",
		"rule", o.Rule.String(),
		"obs", n,
		"candidate_pairs", nCand,
		"edges", g.TotalEdges(),
		"elapsed", time.Since(start),
	)

	return finish(method, g, o)
}

// finish applies the higher-order expansion and collects warnings.
func finish(method string, g *core.Graph, o Options) (*core.Graph, []core.Warning, error) {
	if o.Order > 1 {
		hg, err := graphops.HigherOrder(g, o.Order, o.IncludeLower)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", method, err)
		}
		g = hg
	}
	warns := warnings(g)
	for _, w := range warns {
		o.Logger.Warn("contiguity warning", "kind", w.Kind.String(), "msg", w.Message)
	}

	return g, warns, nil
}

func (o Options) meta(voronoi bool) core.Meta {
	m := core.Meta{
		Method:             core.MethodQueen,
		Layer:              o.Layer,
		IDVariable:         o.IDVariable,
		Order:              1,
		PrecisionThreshold: o.Precision,
		Voronoi:            voronoi,
	}
	if o.Rule == Rook {
		m.Method = core.MethodRook
	}

	return m
}

// warnings reports an empty graph or islands.
func warnings(g *core.Graph) []core.Warning {
	n := g.NumObs()
	if n > 1 && g.TotalEdges() == 0 {
		return []core.Warning{{
			Kind:    core.WarnEmptyGraph,
			Message: "no observation has a neighbor; the precision threshold may be too small",
		}}
	}
	if iso := g.Isolates(); len(iso) > 0 && n > 1 {
		return []core.Warning{{
			Kind:    core.WarnIslands,
			Message: fmt.Sprintf("%d of %d observations have no neighbors", len(iso), n),
			IDs:     iso,
		}}
	}

	return nil
}

// mustAdd inserts an edge the builder has already validated; a failure is a
// programming error.
func mustAdd(g *core.Graph, i, j int) {
	if err := g.AddNeighbor(i, j, 1); err != nil {
		panic(fmt.Sprintf("contiguity: %v", err))
	}
}

// ringSpan locates one ring inside vertexSet.pts.
type ringSpan struct {
	start, n int
}

// vertexSet is the flattened boundary of one polygon plus a quad-tree over
// its vertices.
type vertexSet struct {
	pts    []geom.Point
	ringOf []int
	rings  []ringSpan
	bounds geom.Rect
	tree   *quadtree.Tree
}

func newVertexSet(p geom.Polygon) (*vertexSet, error) {
	vs := &vertexSet{}
	for _, r := range p.Rings {
		v := r.Vertices()
		if len(v) == 0 {
			continue
		}
		span := ringSpan{start: len(vs.pts), n: len(v)}
		for _, pt := range v {
			if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
				return nil, fmt.Errorf("vertex %v: %w", pt, ErrBadCoordinate)
			}
			vs.pts = append(vs.pts, pt)
			vs.ringOf = append(vs.ringOf, len(vs.rings))
		}
		vs.rings = append(vs.rings, span)
	}
	if len(vs.pts) == 0 {
		return vs, nil
	}
	tree, err := quadtree.Build(vs.pts)
	if err != nil {
		return nil, err
	}
	vs.tree = tree
	vs.bounds = tree.Bounds()

	return vs, nil
}

func (vs *vertexSet) empty() bool { return vs.tree == nil }

func (vs *vertexSet) succ(k int) geom.Point {
	r := vs.rings[vs.ringOf[k]]
	return vs.pts[r.start+(k-r.start+1)%r.n]
}

func (vs *vertexSet) prev(k int) geom.Point {
	r := vs.rings[vs.ringOf[k]]
	return vs.pts[r.start+(k-r.start+r.n-1)%r.n]
}

func (vs *vertexSet) ringLen(k int) int { return vs.rings[vs.ringOf[k]].n }

// boxed adapts a padded polygon bounding box to rtreego.Spatial.
type boxed struct {
	id   int
	rect rtreego.Rect
}

func (b *boxed) Bounds() rtreego.Rect { return b.rect }

// candidatePairs returns, for each i, the ascending ids j > i whose padded
// bounding boxes intersect i's. Boxes are padded by half the threshold plus
// a relative epsilon, because the R-tree treats touching boxes as disjoint.
func candidatePairs(sets []*vertexSet, precision float64) ([][]int, int) {
	var extent geom.Rect
	first := true
	for _, vs := range sets {
		if vs.empty() {
			continue
		}
		if first {
			extent, first = vs.bounds, false
			continue
		}
		extent = extent.Union(vs.bounds)
	}
	pairs := make([][]int, len(sets))
	if first {
		return pairs, 0
	}
	pad := precision/2 + geom.DegenerateEpsilon*math.Max(1, extent.Diagonal())

	tree := rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)
	items := make([]*boxed, len(sets))
	for i, vs := range sets {
		if vs.empty() {
			continue
		}
		b := vs.bounds.Expand(pad)
		rect, err := rtreego.NewRectFromPoints(rtreego.Point{b.MinX, b.MinY}, rtreego.Point{b.MaxX, b.MaxY})
		if err != nil {
			panic(fmt.Sprintf("contiguity: bounding box of polygon %d: %v", i, err))
		}
		items[i] = &boxed{id: i, rect: rect}
		tree.Insert(items[i])
	}

	total := 0
	for i, it := range items {
		if it == nil {
			continue
		}
		for _, hit := range tree.SearchIntersect(it.rect) {
			if j := hit.(*boxed).id; j > i {
				pairs[i] = append(pairs[i], j)
			}
		}
		sort.Ints(pairs[i])
		total += len(pairs[i])
	}

	return pairs, total
}

// shares reports whether host and guest are neighbors under rule.
func shares(host, guest *vertexSet, rule Rule, precision float64) bool {
	if host.empty() || guest.empty() {
		return false
	}
	window := guest.bounds.Expand(precision)
	for k, v := range host.pts {
		if !window.Contains(v) {
			continue
		}
		for _, hit := range guest.tree.QueryRange(geom.RectAround(v, precision)) {
			if rule == Queen {
				return true
			}
			if sharesEdge(host, k, guest, hit.ID, precision) {
				return true
			}
		}
	}

	return false
}

// sharesEdge checks whether the matched vertex pair (host k, guest m) has a
// matching ring neighbor on both sides.
func sharesEdge(host *vertexSet, k int, guest *vertexSet, m int, precision float64) bool {
	if host.ringLen(k) < 2 || guest.ringLen(m) < 2 {
		return false
	}
	near := func(a, b geom.Point) bool { return sameVertex(a, b, precision) }
	hs, hp := host.succ(k), host.prev(k)
	gs, gp := guest.succ(m), guest.prev(m)

	return near(hs, gp) || near(hs, gs) || near(hp, gs) || near(hp, gp)
}

// sameVertex matches two vertices when both coordinates differ by at most
// precision.
func sameVertex(a, b geom.Point, precision float64) bool {
	return math.Abs(a.X-b.X) <= precision && math.Abs(a.Y-b.Y) <= precision
}
