package contiguity

import (
	"math"

	"github.com/fogleman/delaunay"

	"github.com/katalvlaran/geoweights/geom"
)

// triangle is a Delaunay triangle with its circumcenter. ok is false for
// zero-area triangles, which have no finite circumcenter.
type triangle struct {
	v      [3]int
	cx, cy float64
	ok     bool
}

// newTriangle computes the circumcenter relative to the first vertex, which
// keeps thin triangles accurate.
func newTriangle(pts []geom.Point, a, b, c int) triangle {
	t := triangle{v: [3]int{a, b, c}}
	pa := pts[a]
	dx, dy := pts[b].X-pa.X, pts[b].Y-pa.Y
	ex, ey := pts[c].X-pa.X, pts[c].Y-pa.Y
	det := dx*ey - dy*ex
	if det == 0 {
		return t
	}
	bl, cl := dx*dx+dy*dy, ex*ex+ey*ey
	d := 0.5 / det
	t.cx = pa.X + (ey*bl-dy*cl)*d
	t.cy = pa.Y + (dx*cl-ex*bl)*d
	t.ok = !math.IsInf(t.cx, 0) && !math.IsInf(t.cy, 0) && !math.IsNaN(t.cx) && !math.IsNaN(t.cy)

	return t
}

func (t triangle) center() geom.Point { return geom.Point{X: t.cx, Y: t.cy} }

// third returns the vertex of t that is neither a nor b.
func (t triangle) third(a, b int) int {
	for _, v := range t.v {
		if v != a && v != b {
			return v
		}
	}

	return -1
}

// edgeKey is an undirected edge with From < To.
type edgeKey struct{ From, To int }

func mkEdge(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}

	return edgeKey{From: a, To: b}
}

// triangulate returns the Delaunay triangles of pts using a hull-based
// sweep. pts should be free of duplicates. The result is empty when no
// triangulation exists (fewer than three points, or every point on a line).
func triangulate(pts []geom.Point) []triangle {
	if len(pts) < 3 {
		return nil
	}
	in := make([]delaunay.Point, len(pts))
	for i, p := range pts {
		in[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	tr, err := delaunay.Triangulate(in)
	if err != nil || tr == nil {
		return nil
	}

	out := make([]triangle, 0, len(tr.Triangles)/3)
	for k := 0; k+2 < len(tr.Triangles); k += 3 {
		out = append(out, newTriangle(pts, tr.Triangles[k], tr.Triangles[k+1], tr.Triangles[k+2]))
	}

	return out
}

// clipLength returns the length of the part of p + t·d, t in [t0, t1],
// inside box (Liang-Barsky). t1 may be +Inf for rays.
func clipLength(p geom.Point, dx, dy, t0, t1 float64, box geom.Rect) float64 {
	if dx == 0 && dy == 0 {
		return 0
	}
	pk := [4]float64{-dx, dx, -dy, dy}
	qk := [4]float64{p.X - box.MinX, box.MaxX - p.X, p.Y - box.MinY, box.MaxY - p.Y}
	for k := 0; k < 4; k++ {
		if pk[k] == 0 {
			if qk[k] < 0 {
				return 0
			}
			continue
		}
		r := qk[k] / pk[k]
		if pk[k] < 0 {
			if r > t1 {
				return 0
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	if !(t1 > t0) || math.IsInf(t1, 1) {
		return 0
	}

	return (t1 - t0) * math.Hypot(dx, dy)
}
