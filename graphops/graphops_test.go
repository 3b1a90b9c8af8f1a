package graphops_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geoweights/core"
	"github.com/katalvlaran/geoweights/graphops"
)

// chain returns the symmetric path 0-1-...-(n-1).
func chain(t *testing.T, n int) *core.Graph {
	t.Helper()
	g := core.NewGraph(n)
	for i := 0; i+1 < n; i++ {
		require.NoError(t, g.AddNeighbor(i, i+1, 1))
		require.NoError(t, g.AddNeighbor(i+1, i, 1))
	}
	g.MarkSymmetric(true)
	return g
}

// randomDirected returns a weighted directed graph with about deg entries per row.
func randomDirected(t *testing.T, seed int64, n, deg int) *core.Graph {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g := core.NewGraph(n, core.WithWeighted())
	for i := 0; i < n; i++ {
		for k := 0; k < deg; k++ {
			j := rng.Intn(n)
			if j == i || g.HasEdge(i, j) {
				continue
			}
			require.NoError(t, g.AddNeighbor(i, j, float64(rng.Intn(9)+1)))
		}
	}
	return g
}

func TestHigherOrder_Chain(t *testing.T) {
	g := chain(t, 6)

	tests := []struct {
		order        int
		includeLower bool
		src          int
		want         []int
	}{
		{1, false, 2, []int{1, 3}},
		{2, false, 2, []int{0, 4}},
		{2, true, 2, []int{0, 1, 3, 4}},
		{3, false, 0, []int{3}},
		{3, true, 0, []int{1, 2, 3}},
		{9, false, 0, nil},
	}
	for _, tc := range tests {
		h, err := graphops.HigherOrder(g, tc.order, tc.includeLower)
		require.NoError(t, err)
		got, _ := h.NeighborIDs(tc.src)
		if tc.want == nil {
			assert.Empty(t, got)
		} else {
			assert.Equal(t, tc.want, got, "order=%d lower=%v", tc.order, tc.includeLower)
		}
		assert.Equal(t, tc.order, h.Meta().Order)
		assert.True(t, h.SymmetryChecked())
	}

	_, err := graphops.HigherOrder(g, 0, false)
	assert.ErrorIs(t, err, graphops.ErrInvalidOrder)
	_, err = graphops.HigherOrder(nil, 1, false)
	assert.ErrorIs(t, err, graphops.ErrGraphNil)
}

// A node reachable at both order 1 and order 2 only counts at order 1.
func TestHigherOrder_ExcludesShorterPaths(t *testing.T) {
	g := core.NewGraph(3)
	for _, e := range [][2]int{{0, 1}, {1, 0}, {1, 2}, {2, 1}, {0, 2}, {2, 0}} {
		require.NoError(t, g.AddNeighbor(e[0], e[1], 1))
	}
	h, err := graphops.HigherOrder(g, 2, false)
	require.NoError(t, err)
	assert.Zero(t, h.TotalEdges())
}

func TestSymmetrize_Idempotent(t *testing.T) {
	g := randomDirected(t, 3, 40, 4)
	require.False(t, g.IsSymmetric())

	for _, p := range []core.Policy{core.PolicyUnion, core.PolicyIntersection} {
		once, err := graphops.Symmetrize(g, p)
		require.NoError(t, err)
		assert.True(t, once.IsSymmetric())
		assert.Empty(t, graphops.Asymmetries(once))
		assert.Equal(t, p, once.Meta().Symmetrize)

		twice, err := graphops.Symmetrize(once, p)
		require.NoError(t, err)
		assert.True(t, once.Equal(twice), "policy %s", p)
	}
}

func TestSymmetrize_Policies(t *testing.T) {
	g := core.NewGraph(3, core.WithWeighted())
	require.NoError(t, g.AddNeighbor(0, 1, 2))
	require.NoError(t, g.AddNeighbor(1, 0, 4))
	require.NoError(t, g.AddNeighbor(1, 2, 5))

	u, err := graphops.Symmetrize(g, core.PolicyUnion)
	require.NoError(t, err)
	w, _ := u.Weight(0, 1)
	assert.Equal(t, 3.0, w, "reciprocal weights are averaged")
	w, ok := u.Weight(2, 1)
	assert.True(t, ok)
	assert.Equal(t, 5.0, w)

	x, err := graphops.Symmetrize(g, core.PolicyIntersection)
	require.NoError(t, err)
	assert.False(t, x.HasEdge(1, 2))
	assert.Equal(t, 2, x.TotalEdges())

	_, err = graphops.Symmetrize(g, core.Policy(42))
	assert.ErrorIs(t, err, graphops.ErrUnknownPolicy)
	assert.Equal(t, [][2]int{{1, 2}}, graphops.Asymmetries(g))
}

func TestIntersectAndUnion(t *testing.T) {
	a := core.NewGraph(3)
	b := core.NewGraph(3)
	require.NoError(t, a.AddNeighbor(0, 1, 1))
	require.NoError(t, a.AddNeighbor(0, 2, 1))
	require.NoError(t, b.AddNeighbor(0, 2, 1))
	require.NoError(t, b.AddNeighbor(2, 1, 1))

	x, err := graphops.Intersect(a, b)
	require.NoError(t, err)
	ids, _ := x.NeighborIDs(0)
	assert.Equal(t, []int{2}, ids)
	assert.Equal(t, 1, x.TotalEdges())

	u, err := graphops.Union(a, b)
	require.NoError(t, err)
	ids, _ = u.NeighborIDs(0)
	assert.Equal(t, []int{1, 2}, ids)
	assert.True(t, u.HasEdge(2, 1))
	assert.Equal(t, 3, u.TotalEdges())

	_, err = graphops.Intersect()
	assert.ErrorIs(t, err, graphops.ErrNoGraphs)
	_, err = graphops.Union(a, core.NewGraph(4))
	assert.ErrorIs(t, err, graphops.ErrSizeMismatch)
}

func TestSummarize(t *testing.T) {
	g := chain(t, 4)
	s := graphops.Summarize(g)
	assert.Equal(t, 4, s.NumObs)
	assert.Equal(t, 6, s.TotalEdges)
	assert.Equal(t, 1, s.MinDegree)
	assert.Equal(t, 2, s.MaxDegree)
	assert.Equal(t, 1.5, s.MeanDegree)
	assert.Equal(t, 1.5, s.MedianDegree)
	assert.InDelta(t, 0.5, s.Density, 1e-12)
	assert.InDelta(t, 0.5, s.Sparsity, 1e-12)
	assert.InDelta(t, 37.5, s.PercentNonZero, 1e-12)
	assert.Empty(t, s.Islands)
	assert.True(t, s.Symmetric)
	assert.Contains(t, s.String(), "median neighbors:  1.5")

	e := graphops.Summarize(core.NewGraph(3))
	assert.Equal(t, []int{0, 1, 2}, e.Islands)
	assert.Equal(t, 1.0, e.Sparsity)
	assert.Equal(t, []int{0, 1, 2}, graphops.Islands(core.NewGraph(3)))
}

func TestComponents(t *testing.T) {
	g := core.NewGraph(6)
	require.NoError(t, g.AddNeighbor(0, 3, 1))
	require.NoError(t, g.AddNeighbor(4, 1, 1)) // one direction is enough
	require.NoError(t, g.AddNeighbor(1, 5, 1))

	labels, count := graphops.Components(g)
	assert.Equal(t, 3, count)
	assert.Equal(t, []int{0, 1, 2, 0, 1, 1}, labels)
	assert.Equal(t, [][]int{{0, 3}, {1, 4, 5}, {2}}, graphops.ComponentMembers(labels, count))
}

func TestSpatialLag(t *testing.T) {
	g := core.NewGraph(3, core.WithWeighted())
	require.NoError(t, g.AddNeighbor(0, 1, 1))
	require.NoError(t, g.AddNeighbor(0, 2, 3))
	x := []float64{10, 2, 6}

	lag, err := graphops.SpatialLag(g, x, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 0, 0}, lag)

	lag, err = graphops.SpatialLag(g, x, true)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 0, 0}, lag)

	_, err = graphops.SpatialLag(g, x[:2], true)
	assert.ErrorIs(t, err, graphops.ErrValuesLength)
}

func TestDenseAndRowStandardize(t *testing.T) {
	g := core.NewGraph(3, core.WithWeighted())
	require.NoError(t, g.AddNeighbor(0, 1, 1))
	require.NoError(t, g.AddNeighbor(0, 2, 3))
	require.NoError(t, g.AddNeighbor(1, 0, 2))
	require.NoError(t, g.SetDiagonal([]float64{1, 1, 1}))

	d, err := graphops.ToDense(g)
	require.NoError(t, err)
	assert.Equal(t, 3, d.N())
	w, err := d.At(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, w)
	assert.Equal(t, []float64{5, 3, 1}, d.RowSums())
	_, err = d.At(3, 0)
	assert.ErrorIs(t, err, graphops.ErrIndexOutOfBounds)

	r, err := graphops.RowStandardize(g)
	require.NoError(t, err)
	w, _ = r.Weight(0, 2)
	assert.Equal(t, 0.75, w)
	w, _ = r.Weight(1, 0)
	assert.Equal(t, 1.0, w)
	assert.Zero(t, r.Degree(2))
	assert.False(t, r.HasDiagonal())
	w, _ = g.Weight(0, 2)
	assert.Equal(t, 3.0, w, "input untouched")
}
