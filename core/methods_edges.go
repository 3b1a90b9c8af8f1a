// File: methods_edges.go
// Role: neighbor-list mutation and lookup: AddNeighbor, SetNeighbors,
//       RemoveNeighbor, ClearNeighbors, Weight, HasEdge, ForEachEdge,
//       plus the diagonal and the lazily cached symmetry flag.
// Determinism:
//   - Rows keep insertion order; ForEachEdge walks i ascending, then row order.
// Concurrency:
//   - Mutations under the write lock, lookups under the read lock.
//   - Every mutation invalidates the cached symmetry flag.

package core

import "fmt"

// AddNeighbor appends (j, w) to i's list.
//
// Errors:
//   - ErrObsOutOfRange if i or j is not a valid id.
//   - ErrSelfLoop if i == j.
//   - ErrBadWeight if the graph is unweighted and w != 1.
//   - ErrDuplicateNeighbor if j is already listed for i.
func (g *Graph) AddNeighbor(i, j int, w float64) error {
	if err := g.checkObs("AddNeighbor", i, j); err != nil {
		return err
	}
	if i == j {
		return fmt.Errorf("AddNeighbor: %d: %w", i, ErrSelfLoop)
	}
	if !g.weighted && w != 1 {
		return fmt.Errorf("AddNeighbor: (%d,%d) weight %v: %w", i, j, w, ErrBadWeight)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.find(i, j) >= 0 {
		return fmt.Errorf("AddNeighbor: (%d,%d): %w", i, j, ErrDuplicateNeighbor)
	}
	g.appendLocked(i, Neighbor{ID: j, Weight: w})
	g.symmetryChecked = false

	return nil
}

// SetNeighbors replaces i's list with row, validating every entry the way
// AddNeighbor does. On error the previous list is left untouched.
func (g *Graph) SetNeighbors(i int, row []Neighbor) error {
	if err := g.checkObs("SetNeighbors", i); err != nil {
		return err
	}
	seen := make(map[int]struct{}, len(row))
	for _, nb := range row {
		switch {
		case nb.ID < 0 || nb.ID >= g.n:
			return fmt.Errorf("SetNeighbors: row %d: id %d not in [0,%d): %w", i, nb.ID, g.n, ErrObsOutOfRange)
		case nb.ID == i:
			return fmt.Errorf("SetNeighbors: row %d: %w", i, ErrSelfLoop)
		case !g.weighted && nb.Weight != 1:
			return fmt.Errorf("SetNeighbors: (%d,%d) weight %v: %w", i, nb.ID, nb.Weight, ErrBadWeight)
		}
		if _, dup := seen[nb.ID]; dup {
			return fmt.Errorf("SetNeighbors: (%d,%d): %w", i, nb.ID, ErrDuplicateNeighbor)
		}
		seen[nb.ID] = struct{}{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.nbrs[i] = append(make([]Neighbor, 0, len(row)), row...)
	g.pos[i] = nil
	g.reindexLocked(i)
	g.symmetryChecked = false

	return nil
}

// RemoveNeighbor deletes j from i's list, preserving the order of the
// remaining entries. It reports whether j was present.
func (g *Graph) RemoveNeighbor(i, j int) bool {
	if i < 0 || i >= g.n {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	k := g.find(i, j)
	if k < 0 {
		return false
	}
	row := g.nbrs[i]
	g.nbrs[i] = append(row[:k], row[k+1:]...)
	g.pos[i] = nil
	g.reindexLocked(i)
	g.symmetryChecked = false

	return true
}

// ClearNeighbors empties i's list.
func (g *Graph) ClearNeighbors(i int) {
	if i < 0 || i >= g.n {
		return
	}
	g.mu.Lock()
	g.nbrs[i] = nil
	g.pos[i] = nil
	g.symmetryChecked = false
	g.mu.Unlock()
}

// Weight returns w(i,j) and whether the edge exists.
func (g *Graph) Weight(i, j int) (float64, bool) {
	if i < 0 || i >= g.n {
		return 0, false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	k := g.find(i, j)
	if k < 0 {
		return 0, false
	}

	return g.nbrs[i][k].Weight, true
}

// HasEdge reports whether j is in i's list.
func (g *Graph) HasEdge(i, j int) bool {
	_, ok := g.Weight(i, j)
	return ok
}

// ForEachEdge calls fn for every directed entry (i, j, w) until fn returns
// false. fn runs under the read lock and must not call methods on g.
func (g *Graph) ForEachEdge(fn func(i, j int, w float64) bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for i, row := range g.nbrs {
		for _, nb := range row {
			if !fn(i, nb.ID, nb.Weight) {
				return
			}
		}
	}
}

// SetDiagonal stores self-weights; d must have NumObs entries. Passing nil
// removes the diagonal.
func (g *Graph) SetDiagonal(d []float64) error {
	if d != nil && len(d) != g.n {
		return fmt.Errorf("SetDiagonal: got %d values for %d observations: %w", len(d), g.n, ErrDiagonalLength)
	}
	g.mu.Lock()
	if d == nil {
		g.diagonal = nil
	} else {
		g.diagonal = append([]float64(nil), d...)
	}
	g.mu.Unlock()

	return nil
}

// IsSymmetric reports whether every (i, j) has a matching (j, i). The
// answer is computed once and cached until the next mutation.
//
// Complexity: O(V+E) uncached.
func (g *Graph) IsSymmetric() bool {
	g.mu.RLock()
	if g.symmetryChecked {
		s := g.symmetric
		g.mu.RUnlock()
		return s
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.symmetryChecked {
		g.symmetric = g.scanSymmetryLocked()
		g.symmetryChecked = true
	}

	return g.symmetric
}

// MarkSymmetric records a symmetry state known by construction, skipping
// the scan in IsSymmetric.
func (g *Graph) MarkSymmetric(symmetric bool) {
	g.mu.Lock()
	g.symmetric = symmetric
	g.symmetryChecked = true
	g.mu.Unlock()
}

func (g *Graph) scanSymmetryLocked() bool {
	for i, row := range g.nbrs {
		for _, nb := range row {
			if g.find(nb.ID, i) < 0 {
				return false
			}
		}
	}

	return true
}

// find returns the position of j in row i or -1. Caller holds a lock.
func (g *Graph) find(i, j int) int {
	if m := g.pos[i]; m != nil {
		if k, ok := m[j]; ok {
			return k
		}
		return -1
	}
	for k, nb := range g.nbrs[i] {
		if nb.ID == j {
			return k
		}
	}

	return -1
}

// appendLocked adds nb to row i and keeps the position map current.
func (g *Graph) appendLocked(i int, nb Neighbor) {
	g.nbrs[i] = append(g.nbrs[i], nb)
	if g.pos[i] != nil {
		g.pos[i][nb.ID] = len(g.nbrs[i]) - 1
		return
	}
	g.reindexLocked(i)
}

// reindexLocked builds the position map for long rows.
func (g *Graph) reindexLocked(i int) {
	row := g.nbrs[i]
	if len(row) <= indexThreshold {
		return
	}
	m := make(map[int]int, len(row))
	for k, nb := range row {
		m[nb.ID] = k
	}
	g.pos[i] = m
}
