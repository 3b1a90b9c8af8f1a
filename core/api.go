// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: constructor and read-only getters.
// Concurrency:
//   - Getters take the read lock and return copies; callers never alias rows.

package core

import "fmt"

// NewGraph returns an empty graph over n observations.
// It panics if n is negative.
//
// Complexity: O(n).
func NewGraph(n int, opts ...GraphOption) *Graph {
	if n < 0 {
		panic(fmt.Sprintf("core: NewGraph: negative observation count %d", n))
	}
	g := &Graph{
		n:    n,
		nbrs: make([][]Neighbor, n),
		pos:  make([]map[int]int, n),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// NumObs returns the fixed number of observations.
func (g *Graph) NumObs() int { return g.n }

// Weighted reports whether arbitrary weights are allowed.
func (g *Graph) Weighted() bool { return g.weighted }

// Meta returns a copy of the provenance metadata.
func (g *Graph) Meta() Meta {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.meta.clone()
}

// SetMeta replaces the provenance metadata.
func (g *Graph) SetMeta(m Meta) {
	g.mu.Lock()
	g.meta = m.clone()
	g.mu.Unlock()
}

// UpdateMeta applies fn to the metadata under the write lock.
func (g *Graph) UpdateMeta(fn func(*Meta)) {
	g.mu.Lock()
	fn(&g.meta)
	g.mu.Unlock()
}

// Neighbors returns a copy of i's neighbor list in insertion order.
func (g *Graph) Neighbors(i int) ([]Neighbor, error) {
	if err := g.checkObs("Neighbors", i); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]Neighbor(nil), g.nbrs[i]...), nil
}

// NeighborIDs returns i's neighbor ids in insertion order.
func (g *Graph) NeighborIDs(i int) ([]int, error) {
	if err := g.checkObs("NeighborIDs", i); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]int, len(g.nbrs[i]))
	for k, nb := range g.nbrs[i] {
		ids[k] = nb.ID
	}

	return ids, nil
}

// Rows returns a deep copy of every neighbor list.
//
// Complexity: O(V+E).
func (g *Graph) Rows() [][]Neighbor {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([][]Neighbor, g.n)
	for i, row := range g.nbrs {
		if len(row) > 0 {
			out[i] = append([]Neighbor(nil), row...)
		}
	}

	return out
}

// Degree returns the number of neighbors of i, or 0 for an invalid id.
func (g *Graph) Degree(i int) int {
	if i < 0 || i >= g.n {
		return 0
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nbrs[i])
}

// Degrees returns every observation's neighbor count.
func (g *Graph) Degrees() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]int, g.n)
	for i, row := range g.nbrs {
		out[i] = len(row)
	}

	return out
}

// TotalEdges returns the number of directed (i, j) entries over all lists.
func (g *Graph) TotalEdges() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	total := 0
	for _, row := range g.nbrs {
		total += len(row)
	}

	return total
}

// Isolates returns the ids with no neighbors, ascending.
func (g *Graph) Isolates() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []int
	for i, row := range g.nbrs {
		if len(row) == 0 {
			out = append(out, i)
		}
	}

	return out
}

// HasDiagonal reports whether self-weights were set.
func (g *Graph) HasDiagonal() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.diagonal != nil
}

// Diagonal returns a copy of the self-weights, or nil when none were set.
func (g *Graph) Diagonal() []float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.diagonal == nil {
		return nil
	}

	return append([]float64(nil), g.diagonal...)
}

// SymmetryChecked reports whether the symmetry flag is currently known.
func (g *Graph) SymmetryChecked() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.symmetryChecked
}

func (g *Graph) checkObs(method string, ids ...int) error {
	for _, id := range ids {
		if id < 0 || id >= g.n {
			return fmt.Errorf("%s: id %d not in [0,%d): %w", method, id, g.n, ErrObsOutOfRange)
		}
	}

	return nil
}
