package contiguity

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geoweights/core"
	"github.com/katalvlaran/geoweights/geom"
)

func lattice(n int) []geom.Point {
	pts := make([]geom.Point, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			pts = append(pts, geom.Point{X: float64(c), Y: float64(r)})
		}
	}
	return pts
}

func TestPoints_LatticeRookAndQueen(t *testing.T) {
	pts := lattice(3)

	rook, warns, err := Points(pts, WithRule(Rook))
	require.NoError(t, err)
	assert.Empty(t, warns)
	center, _ := rook.NeighborIDs(4)
	assert.Equal(t, []int{1, 3, 5, 7}, center)
	corner, _ := rook.NeighborIDs(0)
	assert.Equal(t, []int{1, 3}, corner)
	assert.True(t, rook.Meta().Voronoi)

	queen, _, err := Points(pts)
	require.NoError(t, err)
	center, _ = queen.NeighborIDs(4)
	assert.Equal(t, []int{0, 1, 2, 3, 5, 6, 7, 8}, center)
	corner, _ = queen.NeighborIDs(0)
	assert.Equal(t, []int{1, 3, 4}, corner)
}

// Every Delaunay triangle has an empty circumcircle.
func TestTriangulate_EmptyCircumcircle(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	pts := make([]geom.Point, 200)
	for i := range pts {
		pts[i] = geom.Point{X: rng.Float64(), Y: rng.Float64()}
	}
	tris := triangulate(pts)
	require.NotEmpty(t, tris)
	for _, tr := range tris {
		require.True(t, tr.ok)
		v := pts[tr.v[0]]
		r2 := (v.X-tr.cx)*(v.X-tr.cx) + (v.Y-tr.cy)*(v.Y-tr.cy)
		for i, p := range pts {
			if i == tr.v[0] || i == tr.v[1] || i == tr.v[2] {
				continue
			}
			dx, dy := p.X-tr.cx, p.Y-tr.cy
			assert.GreaterOrEqual(t, dx*dx+dy*dy, r2*(1-1e-9))
		}
	}
	// Euler: a triangulation of n points with h hull points has 2n-2-h triangles
	assert.LessOrEqual(t, len(tris), 2*len(pts)-5)
}

// bisectorLength clips the perpendicular bisector of pts[i] and pts[j] to
// box and to every half-plane closer to pts[i] than to another point. The
// result is the length of the shared Voronoi edge.
func bisectorLength(pts []geom.Point, i, j int, box geom.Rect) float64 {
	a, b := pts[i], pts[j]
	m := geom.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	dx, dy := -(b.Y - a.Y), b.X-a.X
	t0, t1 := math.Inf(-1), math.Inf(1)
	clip := func(p, q float64) bool { // p·t <= q
		switch {
		case p == 0:
			return q >= 0
		case p > 0:
			t1 = math.Min(t1, q/p)
		default:
			t0 = math.Max(t0, q/p)
		}
		return t0 < t1
	}
	ok := clip(-dx, m.X-box.MinX) && clip(dx, box.MaxX-m.X) &&
		clip(-dy, m.Y-box.MinY) && clip(dy, box.MaxY-m.Y)
	for k, c := range pts {
		if !ok {
			return 0
		}
		if k == i || k == j {
			continue
		}
		// |x-a|² <= |x-c|²  <=>  2(c-a)·x <= |c|²-|a|²
		ex, ey := 2*(c.X-a.X), 2*(c.Y-a.Y)
		rhs := c.X*c.X + c.Y*c.Y - a.X*a.X - a.Y*a.Y - (ex*m.X + ey*m.Y)
		ok = clip(ex*dx+ey*dy, rhs)
	}
	if !ok {
		return 0
	}

	return (t1 - t0) * math.Hypot(dx, dy)
}

// Points along a gently curved line, like stations on a road, keep every
// Voronoi edge a direct half-plane construction finds.
func TestVoronoiPairs_NearlyCollinearMatchesBruteForce(t *testing.T) {
	for _, c := range []float64{1e-3, 1e-4, 1e-5, 1e-6} {
		rng := rand.New(rand.NewSource(int64(1 / c)))
		raw := make([]geom.Point, 60)
		for i := range raw {
			x := rng.Float64()
			raw[i] = geom.Point{X: 1000 * x, Y: 1000 * c * x * x}
		}
		pts := normalize(raw)
		b, _ := geom.BoundsOf(pts)
		box := geom.Rect{
			MinX: b.MinX - voronoiPad*b.Width(),
			MinY: b.MinY - voronoiPad*b.Height(),
			MaxX: b.MaxX + voronoiPad*b.Width(),
			MaxY: b.MaxY + voronoiPad*b.Height(),
		}

		got := voronoiPairs(pts, Rook)
		for i := range pts {
			for j := i + 1; j < len(pts); j++ {
				length := bisectorLength(pts, i, j, box)
				_, have := got[mkEdge(i, j)]
				switch {
				case length > 1e-9:
					assert.True(t, have, "c=%g pair (%d,%d) %v-%v missing", c, i, j, raw[i], raw[j])
				case length == 0:
					assert.False(t, have, "c=%g pair (%d,%d) %v-%v spurious", c, i, j, raw[i], raw[j])
				}
			}
		}
	}
}

func TestPoints_DuplicatesWarnAndShareNeighbors(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}}
	g, warns, err := Points(pts, WithRule(Rook))
	require.NoError(t, err)
	require.NotEmpty(t, warns)
	assert.Equal(t, core.WarnDuplicatePoints, warns[0].Kind)
	assert.Equal(t, []int{3, 4}, warns[0].IDs)

	assert.True(t, g.HasEdge(3, 4))
	for _, j := range []int{1, 2} {
		assert.True(t, g.HasEdge(3, j))
		assert.True(t, g.HasEdge(4, j), "duplicate inherits neighbor %d", j)
		assert.True(t, g.HasEdge(j, 4))
	}
	assert.True(t, g.IsSymmetric())
}

func TestPoints_CollinearChain(t *testing.T) {
	pts := []geom.Point{{X: 3, Y: 3}, {X: 0, Y: 0}, {X: 2, Y: 2}, {X: 1, Y: 1}}
	g, _, err := Points(pts)
	require.NoError(t, err)
	assert.Equal(t, 6, g.TotalEdges())
	assert.True(t, g.HasEdge(1, 3))
	assert.True(t, g.HasEdge(3, 2))
	assert.True(t, g.HasEdge(2, 0))
	assert.False(t, g.HasEdge(1, 0))
}

func TestPoints_SmallInputs(t *testing.T) {
	g, warns, err := Points([]geom.Point{{X: 1, Y: 1}})
	require.NoError(t, err)
	assert.Zero(t, g.TotalEdges())
	assert.Empty(t, warns, "a single observation is not reported as an island")

	g, _, err = Points([]geom.Point{{X: 1, Y: 1}, {X: 5, Y: -2}})
	require.NoError(t, err)
	assert.True(t, g.HasEdge(0, 1))

	_, _, err = Points([]geom.Point{{X: math.NaN(), Y: 0}})
	assert.ErrorIs(t, err, ErrBadCoordinate)
}

func TestClipLength(t *testing.T) {
	box := geom.Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	assert.InDelta(t, 1.0, clipLength(geom.Point{X: -1, Y: 0.5}, 3, 0, 0, 1, box), 1e-12)
	assert.InDelta(t, 0.5, clipLength(geom.Point{X: 0.5, Y: 0.5}, 0, 1, 0, math.Inf(1), box), 1e-12)
	assert.Zero(t, clipLength(geom.Point{X: 2, Y: 2}, 1, 1, 0, 1, box))
	assert.Zero(t, clipLength(geom.Point{X: 0.5, Y: 0.5}, 0, 0, 0, 1, box))
}
