package contiguity

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/katalvlaran/geoweights/core"
	"github.com/katalvlaran/geoweights/geom"
)

const (
	// duplicateGrid is the number of quantization steps per axis used to
	// detect coincident points.
	duplicateGrid = 1 << 30

	// voronoiPad is the fraction of the data extent added on every side of
	// the clipping box.
	voronoiPad = 0.02

	// voronoiTol is the minimum clipped edge length, and the circumcenter
	// grouping resolution, in normalized coordinates.
	voronoiTol = 1e-12
	centerGrid = 1e-9
)

// Points builds Voronoi contiguity over point locations. The Precision
// option is ignored.
//
// Errors:
//   - ErrEmptyInput when pts is empty.
//   - ErrBadCoordinate for NaN or infinite coordinates.
//   - ErrOptionViolation for invalid options.
func Points(pts []geom.Point, opts ...Option) (*core.Graph, []core.Warning, error) {
	const method = "Points"
	o, err := resolve(method, opts)
	if err != nil {
		return nil, nil, err
	}
	n := len(pts)
	if n == 0 {
		return nil, nil, fmt.Errorf("%s: %w", method, ErrEmptyInput)
	}
	for i, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, nil, fmt.Errorf("%s: point %d %v: %w", method, i, p, ErrBadCoordinate)
		}
	}
	start := time.Now()

	reps, members, dupIDs := collapseDuplicates(pts)
	var warns []core.Warning
	if len(dupIDs) > 0 {
		w := core.Warning{
			Kind:    core.WarnDuplicatePoints,
			Message: fmt.Sprintf("%d observations share a location with another observation", len(dupIDs)),
			IDs:     dupIDs,
		}
		warns = append(warns, w)
		o.Logger.Warn("duplicate points before voronoi", "count", len(dupIDs))
	}

	uniq := make([]geom.Point, len(reps))
	for u, id := range reps {
		uniq[u] = pts[id]
	}
	pairs := voronoiPairs(normalize(uniq), o.Rule)

	rows := make([][]int, n)
	link := func(a, b int) {
		rows[a] = append(rows[a], b)
		rows[b] = append(rows[b], a)
	}
	for e := range pairs {
		for _, x := range members[e.From] {
			for _, y := range members[e.To] {
				link(x, y)
			}
		}
	}
	for _, group := range members {
		for a := 0; a < len(group); a++ {
			for b := a + 1; b < len(group); b++ {
				link(group[a], group[b])
			}
		}
	}

	g := core.NewGraph(n, core.WithMeta(o.meta(true)))
	for i, row := range rows {
		sort.Ints(row)
		nb := make([]core.Neighbor, len(row))
		for k, j := range row {
			nb[k] = core.Neighbor{ID: j, Weight: 1}
		}
		if err := g.SetNeighbors(i, nb); err != nil {
			panic(fmt.Sprintf("contiguity: %v", err))
		}
	}
	g.MarkSymmetric(true)
	o.Logger.Debug("voronoi contiguity",
		"rule", o.Rule.String(),
		"obs", n,
		"unique", len(reps),
		"edges", g.TotalEdges(),
		"elapsed", time.Since(start),
	)

	g, more, err := finish(method, g, o)
	if err != nil {
		return nil, nil, err
	}

	return g, append(warns, more...), nil
}

// collapseDuplicates quantizes every point to a duplicateGrid lattice over
// the data extent. It returns the representative (first) id of each unique
// location, the members of each unique location, and the ascending ids of
// every observation that shares its location with another.
func collapseDuplicates(pts []geom.Point) (reps []int, members [][]int, dupIDs []int) {
	b, _ := geom.BoundsOf(pts)
	type cell struct{ x, y int64 }
	index := make(map[cell]int, len(pts))
	for i, p := range pts {
		c := cell{
			x: int64(math.Floor((p.X - b.MinX) / b.Width() * duplicateGrid)),
			y: int64(math.Floor((p.Y - b.MinY) / b.Height() * duplicateGrid)),
		}
		u, ok := index[c]
		if !ok {
			u = len(reps)
			index[c] = u
			reps = append(reps, i)
			members = append(members, nil)
		}
		members[u] = append(members[u], i)
	}
	for _, group := range members {
		if len(group) > 1 {
			dupIDs = append(dupIDs, group...)
		}
	}
	sort.Ints(dupIDs)

	return reps, members, dupIDs
}

// normalize maps pts into [0,1] along the longer axis, preserving aspect.
func normalize(pts []geom.Point) []geom.Point {
	b, _ := geom.BoundsOf(pts)
	scale := math.Max(b.Width(), b.Height())
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.Point{X: (p.X - b.MinX) / scale, Y: (p.Y - b.MinY) / scale}
	}

	return out
}

// voronoiPairs returns the unordered neighbor pairs among unique points.
func voronoiPairs(pts []geom.Point, rule Rule) map[edgeKey]struct{} {
	pairs := make(map[edgeKey]struct{})
	switch m := len(pts); {
	case m < 2:
		return pairs
	case m == 2:
		pairs[mkEdge(0, 1)] = struct{}{}
		return pairs
	}
	if chain, ok := collinearChain(pts); ok {
		for k := 1; k < len(chain); k++ {
			pairs[mkEdge(chain[k-1], chain[k])] = struct{}{}
		}
		return pairs
	}

	tris := triangulate(pts)
	if len(tris) == 0 {
		p0, dir := spanDirection(pts)
		chain := projectionOrder(pts, p0, dir)
		for k := 1; k < len(chain); k++ {
			pairs[mkEdge(chain[k-1], chain[k])] = struct{}{}
		}
		return pairs
	}

	b, _ := geom.BoundsOf(pts)
	box := geom.Rect{
		MinX: b.MinX - voronoiPad*b.Width(),
		MinY: b.MinY - voronoiPad*b.Height(),
		MaxX: b.MaxX + voronoiPad*b.Width(),
		MaxY: b.MaxY + voronoiPad*b.Height(),
	}

	// rook: dual Voronoi edge of every Delaunay edge, clipped to the box
	adj := make(map[edgeKey][]int)
	var order []edgeKey
	for ti, t := range tris {
		for k := 0; k < 3; k++ {
			e := mkEdge(t.v[k], t.v[(k+1)%3])
			if _, seen := adj[e]; !seen {
				order = append(order, e)
			}
			adj[e] = append(adj[e], ti)
		}
	}
	for _, e := range order {
		ts := adj[e]
		var length float64
		flat := -1
		for _, ti := range ts {
			if !tris[ti].ok {
				flat = ti
			}
		}
		switch {
		case flat >= 0 && spans(pts, e, tris[flat].third(e.From, e.To)):
			// the long side of a zero-area triangle: its middle vertex separates the ends
			length = 0
		case flat >= 0:
			length = math.Inf(1)
		case len(ts) >= 2:
			c1, c2 := tris[ts[0]].center(), tris[ts[1]].center()
			length = clipLength(c1, c2.X-c1.X, c2.Y-c1.Y, 0, 1, box)
		default:
			t := tris[ts[0]]
			a, bb, c := pts[e.From], pts[e.To], pts[t.third(e.From, e.To)]
			dx, dy := -(bb.Y - a.Y), bb.X-a.X
			if dx*(c.X-a.X)+dy*(c.Y-a.Y) > 0 {
				dx, dy = -dx, -dy
			}
			length = clipLength(t.center(), dx, dy, 0, math.Inf(1), box)
		}
		if length > voronoiTol {
			pairs[e] = struct{}{}
		}
	}
	if rule == Rook {
		attachOrphans(pts, tris, pairs)
		return pairs
	}

	// queen: cells meeting at a Voronoi vertex inside the box; cocircular
	// triangles share one vertex
	type centerKey struct{ x, y int64 }
	groups := make(map[centerKey]map[int]struct{})
	for _, t := range tris {
		if !t.ok || !box.Contains(t.center()) {
			continue
		}
		k := centerKey{x: int64(math.Round(t.cx / centerGrid)), y: int64(math.Round(t.cy / centerGrid))}
		set := groups[k]
		if set == nil {
			set = make(map[int]struct{}, 3)
			groups[k] = set
		}
		for _, v := range t.v {
			set[v] = struct{}{}
		}
	}
	for _, set := range groups {
		vs := make([]int, 0, len(set))
		for v := range set {
			vs = append(vs, v)
		}
		for a := 0; a < len(vs); a++ {
			for c := a + 1; c < len(vs); c++ {
				pairs[mkEdge(vs[a], vs[c])] = struct{}{}
			}
		}
	}
	attachOrphans(pts, tris, pairs)

	return pairs
}

// spans reports whether pts[k] projects strictly inside the segment e.
func spans(pts []geom.Point, e edgeKey, k int) bool {
	if k < 0 {
		return false
	}
	a, b, c := pts[e.From], pts[e.To], pts[k]
	dx, dy := b.X-a.X, b.Y-a.Y
	t := (dx*(c.X-a.X) + dy*(c.Y-a.Y)) / (dx*dx + dy*dy)

	return t > 0 && t < 1
}

// attachOrphans links points the triangulation skipped as near-duplicates
// to their nearest triangulated point and to that point's neighbors.
func attachOrphans(pts []geom.Point, tris []triangle, pairs map[edgeKey]struct{}) {
	used := make([]bool, len(pts))
	for _, t := range tris {
		for _, v := range t.v {
			used[v] = true
		}
	}
	var orphans []int
	for i, u := range used {
		if !u {
			orphans = append(orphans, i)
		}
	}
	if len(orphans) == 0 {
		return
	}

	adj := make(map[int][]int)
	for e := range pairs {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}
	for _, i := range orphans {
		host, best := -1, math.Inf(1)
		for j, p := range pts {
			if !used[j] {
				continue
			}
			if d := geom.Euclidean(pts[i], p); d < best {
				host, best = j, d
			}
		}
		if host < 0 {
			continue
		}
		pairs[mkEdge(i, host)] = struct{}{}
		for _, k := range adj[host] {
			pairs[mkEdge(i, k)] = struct{}{}
		}
	}
}

// collinearChain reports whether every point lies on one line and, if so,
// returns the ids ordered along it.
func collinearChain(pts []geom.Point) ([]int, bool) {
	p0, dir := spanDirection(pts)
	if dir.X == 0 && dir.Y == 0 {
		return nil, false
	}
	for _, p := range pts {
		cross := dir.X*(p.Y-p0.Y) - dir.Y*(p.X-p0.X)
		if math.Abs(cross) > voronoiTol {
			return nil, false
		}
	}

	return projectionOrder(pts, p0, dir), true
}

// spanDirection returns pts[0] and the unit direction towards the point
// farthest from it, or a zero direction when every point coincides.
func spanDirection(pts []geom.Point) (geom.Point, geom.Point) {
	p0 := pts[0]
	far, best := 0, 0.0
	for i, p := range pts {
		if d := geom.Euclidean(p0, p); d > best {
			far, best = i, d
		}
	}
	if best == 0 {
		return p0, geom.Point{}
	}

	return p0, geom.Point{X: (pts[far].X - p0.X) / best, Y: (pts[far].Y - p0.Y) / best}
}

// projectionOrder sorts ids by their projection onto the line p0 + t·dir.
func projectionOrder(pts []geom.Point, p0, dir geom.Point) []int {
	ids := make([]int, len(pts))
	proj := make([]float64, len(pts))
	for i, p := range pts {
		ids[i] = i
		proj[i] = dir.X*(p.X-p0.X) + dir.Y*(p.Y-p0.Y)
	}
	sort.SliceStable(ids, func(a, b int) bool { return proj[ids[a]] < proj[ids[b]] })

	return ids
}
