// SPDX-License-Identifier: MIT
// Package core_test verifies core.Graph method-level contracts.
//
// Purpose:
//   - Lock in neighbor-list invariants (no self-loops, no duplicates, unit weights).
//   - Validate lazy symmetry caching and its invalidation on mutation.
//   - Anchor Clone/Equal semantics used by the codec round-trip tests.

package core_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geoweights/core"
)

func TestAddNeighbor_Invariants(t *testing.T) {
	g := core.NewGraph(3)

	require.NoError(t, g.AddNeighbor(0, 1, 1))
	assert.ErrorIs(t, g.AddNeighbor(0, 1, 1), core.ErrDuplicateNeighbor)
	assert.ErrorIs(t, g.AddNeighbor(1, 1, 1), core.ErrSelfLoop)
	assert.ErrorIs(t, g.AddNeighbor(0, 3, 1), core.ErrObsOutOfRange)
	assert.ErrorIs(t, g.AddNeighbor(-1, 0, 1), core.ErrObsOutOfRange)
	assert.ErrorIs(t, g.AddNeighbor(0, 2, 0.5), core.ErrBadWeight)

	w := core.NewGraph(3, core.WithWeighted())
	require.NoError(t, w.AddNeighbor(0, 2, 0.5))
	got, ok := w.Weight(0, 2)
	assert.True(t, ok)
	assert.Equal(t, 0.5, got)
}

func TestNeighbors_KeepInsertionOrder(t *testing.T) {
	g := core.NewGraph(5)
	for _, j := range []int{4, 1, 3} {
		require.NoError(t, g.AddNeighbor(0, j, 1))
	}
	ids, err := g.NeighborIDs(0)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 1, 3}, ids)

	assert.True(t, g.RemoveNeighbor(0, 1))
	assert.False(t, g.RemoveNeighbor(0, 1))
	ids, _ = g.NeighborIDs(0)
	assert.Equal(t, []int{4, 3}, ids)
	assert.Equal(t, 2, g.TotalEdges())
}

// Rows longer than the index threshold switch to a map; lookups and
// duplicate detection must behave identically.
func TestAddNeighbor_LongRowsUseIndex(t *testing.T) {
	n := 100
	g := core.NewGraph(n, core.WithWeighted())
	for j := 1; j < n; j++ {
		require.NoError(t, g.AddNeighbor(0, j, float64(j)))
	}
	assert.ErrorIs(t, g.AddNeighbor(0, 50, 1), core.ErrDuplicateNeighbor)

	w, ok := g.Weight(0, 77)
	assert.True(t, ok)
	assert.Equal(t, 77.0, w)

	require.True(t, g.RemoveNeighbor(0, 20))
	w, ok = g.Weight(0, 21)
	assert.True(t, ok, "positions shift after removal")
	assert.Equal(t, 21.0, w)
	assert.False(t, g.HasEdge(0, 20))
}

func TestSetNeighbors_ValidatesBeforeReplacing(t *testing.T) {
	g := core.NewGraph(4)
	require.NoError(t, g.SetNeighbors(0, []core.Neighbor{{ID: 1, Weight: 1}, {ID: 2, Weight: 1}}))

	err := g.SetNeighbors(0, []core.Neighbor{{ID: 3, Weight: 1}, {ID: 3, Weight: 1}})
	assert.ErrorIs(t, err, core.ErrDuplicateNeighbor)
	ids, _ := g.NeighborIDs(0)
	assert.Equal(t, []int{1, 2}, ids, "failed SetNeighbors leaves the row untouched")

	assert.ErrorIs(t, g.SetNeighbors(0, []core.Neighbor{{ID: 0, Weight: 1}}), core.ErrSelfLoop)
}

func TestIsSymmetric_CachedUntilMutation(t *testing.T) {
	g := core.NewGraph(3)
	require.NoError(t, g.AddNeighbor(0, 1, 1))
	assert.False(t, g.SymmetryChecked())
	assert.False(t, g.IsSymmetric())
	assert.True(t, g.SymmetryChecked())

	require.NoError(t, g.AddNeighbor(1, 0, 1))
	assert.False(t, g.SymmetryChecked(), "mutation invalidates the cache")
	assert.True(t, g.IsSymmetric())

	g.MarkSymmetric(false)
	assert.False(t, g.IsSymmetric(), "explicit marks are trusted")
}

func TestIsolates(t *testing.T) {
	g := core.NewGraph(4)
	require.NoError(t, g.AddNeighbor(0, 1, 1))
	require.NoError(t, g.AddNeighbor(1, 0, 1))
	assert.Equal(t, []int{2, 3}, g.Isolates())
	assert.Equal(t, []int{1, 1, 0, 0}, g.Degrees())
	assert.Equal(t, 0, g.Degree(9))
}

func TestDiagonal(t *testing.T) {
	g := core.NewGraph(2, core.WithWeighted())
	assert.False(t, g.HasDiagonal())
	assert.ErrorIs(t, g.SetDiagonal([]float64{1}), core.ErrDiagonalLength)
	require.NoError(t, g.SetDiagonal([]float64{1, 0.5}))
	assert.Equal(t, []float64{1, 0.5}, g.Diagonal())
	require.NoError(t, g.SetDiagonal(nil))
	assert.Nil(t, g.Diagonal())
}

func TestCloneAndEqual(t *testing.T) {
	g := core.NewGraph(3, core.WithWeighted(), core.WithMeta(core.Meta{Method: core.MethodKNN, K: 1, BlockVars: []string{"a"}}))
	require.NoError(t, g.AddNeighbor(0, 1, 0.25))
	require.NoError(t, g.AddNeighbor(0, 2, math.Inf(1)))
	require.NoError(t, g.SetDiagonal([]float64{1, 1, 1}))

	c := g.Clone()
	assert.True(t, g.Equal(c))
	assert.Equal(t, g.Meta(), c.Meta())

	// same edges in another order are still equal
	h := core.NewGraph(3, core.WithWeighted())
	require.NoError(t, h.AddNeighbor(0, 2, math.Inf(1)))
	require.NoError(t, h.AddNeighbor(0, 1, 0.25))
	assert.False(t, g.Equal(h), "diagonal differs")
	require.NoError(t, h.SetDiagonal([]float64{1, 1, 1}))
	assert.True(t, g.Equal(h))

	require.NoError(t, c.AddNeighbor(2, 0, 1))
	assert.False(t, g.Equal(c), "clone is independent")
	assert.Equal(t, 2, g.TotalEdges())

	m := c.Meta()
	m.BlockVars[0] = "changed"
	assert.Equal(t, []string{"a"}, c.Meta().BlockVars, "Meta returns a copy")

	e := g.CloneEmpty()
	assert.Equal(t, 3, e.NumObs())
	assert.True(t, e.Weighted())
	assert.Zero(t, e.TotalEdges())
}

func TestForEachEdge_StopsEarly(t *testing.T) {
	g := core.NewGraph(3)
	require.NoError(t, g.AddNeighbor(0, 1, 1))
	require.NoError(t, g.AddNeighbor(1, 2, 1))
	require.NoError(t, g.AddNeighbor(2, 0, 1))

	var seen [][2]int
	g.ForEachEdge(func(i, j int, _ float64) bool {
		seen = append(seen, [2]int{i, j})
		return len(seen) < 2
	})
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, seen)
}

func TestConcurrentReaders(t *testing.T) {
	g := core.NewGraph(50)
	for i := 0; i < 50; i++ {
		require.NoError(t, g.AddNeighbor(i, (i+1)%50, 1))
		require.NoError(t, g.AddNeighbor((i+1)%50, i, 1))
	}
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				assert.Equal(t, 2, g.Degree(i))
				assert.True(t, g.IsSymmetric())
			}
		}()
	}
	wg.Wait()
}
