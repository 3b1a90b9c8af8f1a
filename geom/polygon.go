package geom

import "math"

// Ring is one closed boundary of a polygon. A trailing vertex equal to the
// first one (shapefile style closing vertex) is tolerated and ignored by
// Vertices.
type Ring []Point

// Polygon is a (possibly multi-part) polygon given as boundary rings.
// Holes are ordinary rings: contiguity only looks at boundary vertices.
type Polygon struct {
	Rings []Ring
}

// Vertices returns the ring without its closing duplicate vertex.
func (r Ring) Vertices() []Point {
	n := len(r)
	if n > 1 && r[0] == r[n-1] {
		return r[:n-1]
	}

	return r
}

// NumVertices counts distinct ring positions over all rings.
func (p Polygon) NumVertices() int {
	total := 0
	for _, r := range p.Rings {
		total += len(r.Vertices())
	}

	return total
}

// Bounds returns the bounding box of all rings. An empty polygon yields the
// zero Rect and false.
func (p Polygon) Bounds() (Rect, bool) {
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	found := false
	for _, ring := range p.Rings {
		for _, pt := range ring {
			found = true
			r.MinX = math.Min(r.MinX, pt.X)
			r.MinY = math.Min(r.MinY, pt.Y)
			r.MaxX = math.Max(r.MaxX, pt.X)
			r.MaxY = math.Max(r.MaxY, pt.Y)
		}
	}
	if !found {
		return Rect{}, false
	}

	return r, true
}

// Centroid returns the area-weighted centroid of the outer ring (the first
// ring). Degenerate rings fall back to the mean of their vertices.
func (p Polygon) Centroid() Point {
	if len(p.Rings) == 0 {
		return Point{}
	}
	vs := p.Rings[0].Vertices()
	if len(vs) == 0 {
		return Point{}
	}
	var a, cx, cy float64
	for i := range vs {
		j := (i + 1) % len(vs)
		cross := vs[i].X*vs[j].Y - vs[j].X*vs[i].Y
		a += cross
		cx += (vs[i].X + vs[j].X) * cross
		cy += (vs[i].Y + vs[j].Y) * cross
	}
	if math.Abs(a) < 1e-300 {
		var sx, sy float64
		for _, v := range vs {
			sx += v.X
			sy += v.Y
		}
		n := float64(len(vs))
		return Point{X: sx / n, Y: sy / n}
	}
	a *= 0.5

	return Point{X: cx / (6 * a), Y: cy / (6 * a)}
}

// Square returns the axis-aligned unit-free square polygon with lower-left
// corner (x, y) and side s, counter-clockwise and closed.
func Square(x, y, s float64) Polygon {
	return Polygon{Rings: []Ring{{
		{X: x, Y: y}, {X: x + s, Y: y}, {X: x + s, Y: y + s}, {X: x, Y: y + s}, {X: x, Y: y},
	}}}
}
