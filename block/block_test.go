package block_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geoweights/block"
	"github.com/katalvlaran/geoweights/core"
)

func TestBuild_SingleVariableCliques(t *testing.T) {
	// groups of sizes 3, 5 and 2, interleaved
	v := block.Variable{Name: "region", Values: []int64{7, 3, 7, 3, 9, 3, 7, 3, 9, 3}}
	g, warns, err := block.Build([]block.Variable{v})
	require.NoError(t, err)
	assert.Empty(t, warns)

	size := map[int64]int{7: 3, 3: 5, 9: 2}
	for i, code := range v.Values {
		assert.Equal(t, size[code]-1, g.Degree(i), "obs %d", i)
		ids, _ := g.NeighborIDs(i)
		for _, j := range ids {
			assert.Equal(t, code, v.Values[j], "edge (%d,%d) crosses blocks", i, j)
		}
	}
	assert.Equal(t, 3*2+5*4+2*1, g.TotalEdges())
	assert.True(t, g.IsSymmetric())
	assert.Equal(t, core.MethodBlock, g.Meta().Method)
	assert.Equal(t, []string{"region"}, g.Meta().BlockVars)

	ids, _ := g.NeighborIDs(1)
	assert.Equal(t, []int{3, 5, 7, 9}, ids)
}

func TestBuild_IntersectsVariables(t *testing.T) {
	a := block.Variable{Name: "state", Values: []int64{1, 1, 1, 1, 2, 2}}
	b := block.Variable{Name: "urban", Values: []int64{0, 0, 1, 1, 1, 1}}
	g, warns, err := block.Build([]block.Variable{a, b})
	require.NoError(t, err)
	assert.Empty(t, warns)
	assert.Equal(t, 6, g.TotalEdges())
	assert.True(t, g.HasEdge(0, 1))
	assert.True(t, g.HasEdge(2, 3))
	assert.True(t, g.HasEdge(4, 5))
	assert.False(t, g.HasEdge(1, 2))
	assert.Equal(t, []string{"state", "urban"}, g.Meta().BlockVars)
}

func TestBuild_IgnoredValuesAreIslands(t *testing.T) {
	v := block.Variable{Name: "zone", Values: []int64{0, 0, block.Ignored, 1, 1}}
	g, warns, err := block.Build([]block.Variable{v})
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, core.WarnIslands, warns[0].Kind)
	assert.Equal(t, []int{2}, warns[0].IDs)
	assert.Zero(t, g.Degree(2))
}

func TestBuild_Errors(t *testing.T) {
	_, _, err := block.Build(nil)
	assert.ErrorIs(t, err, block.ErrNoVariables)

	_, _, err = block.Build([]block.Variable{
		{Name: "a", Values: []int64{1, 1}},
		{Name: "b", Values: []int64{1}},
	})
	assert.ErrorIs(t, err, block.ErrLengthMismatch)

	_, _, err = block.Build([]block.Variable{{Name: "id", Values: []int64{4, 5, 6}}})
	assert.ErrorIs(t, err, block.ErrNotCategorical)

	// blank rows do not count towards the observations being grouped
	_, _, err = block.Build([]block.Variable{{Name: "id", Values: []int64{4, 5, 6, block.Ignored}}})
	assert.ErrorIs(t, err, block.ErrNotCategorical)
}

func TestBuild_DisjointVariablesGiveEmptyGraph(t *testing.T) {
	a := block.Variable{Name: "a", Values: []int64{1, 1, 2, 2}}
	b := block.Variable{Name: "b", Values: []int64{1, 2, 1, 2}}
	g, warns, err := block.Build([]block.Variable{a, b})
	require.NoError(t, err)
	assert.Zero(t, g.TotalEdges())
	require.Len(t, warns, 1)
	assert.Equal(t, core.WarnEmptyGraph, warns[0].Kind)
}

func TestCategorize(t *testing.T) {
	v := block.Categorize("county", []string{"b", "a", "", "b", "a"}, func(s string) bool { return s == "" })
	assert.Equal(t, "county", v.Name)
	assert.Equal(t, []int64{0, 1, block.Ignored, 0, 1}, v.Values)

	groups := block.Groups(v)
	assert.Equal(t, map[int64][]int{0: {0, 3}, 1: {1, 4}}, groups)
}

func TestClusters(t *testing.T) {
	v := block.Variable{Name: "g", Values: []int64{5, 8, 8, 5, 8, 9}}
	g, _, err := block.Build([]block.Variable{v})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 1, 1, 2, 1, 0}, block.Clusters(g, 2))
	assert.Equal(t, []int{2, 1, 1, 2, 1, 3}, block.Clusters(g, 1))
}
