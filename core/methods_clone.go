// File: methods_clone.go
// Role: deep copies and structural comparison.

package core

import "sort"

// CloneEmpty returns a graph with the same size, flags and metadata but no
// neighbors and no diagonal.
func (g *Graph) CloneEmpty() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := NewGraph(g.n)
	out.weighted = g.weighted
	out.meta = g.meta.clone()

	return out
}

// Clone returns a deep copy, including the cached symmetry state.
//
// Complexity: O(V+E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := NewGraph(g.n)
	out.weighted = g.weighted
	out.meta = g.meta.clone()
	out.symmetric = g.symmetric
	out.symmetryChecked = g.symmetryChecked
	for i, row := range g.nbrs {
		if len(row) == 0 {
			continue
		}
		out.nbrs[i] = append(make([]Neighbor, 0, len(row)), row...)
		out.reindexLocked(i)
	}
	if g.diagonal != nil {
		out.diagonal = append([]float64(nil), g.diagonal...)
	}

	return out
}

// Equal reports whether g and h have the same size, the same edge set with
// identical weights, and the same diagonal. Row order and metadata are
// ignored.
//
// Complexity: O(V + E log d).
func (g *Graph) Equal(h *Graph) bool {
	if g == h {
		return true
	}
	if h == nil || g.n != h.n {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i := 0; i < g.n; i++ {
		a, b := sortedRow(g.nbrs[i]), sortedRow(h.nbrs[i])
		if len(a) != len(b) {
			return false
		}
		for k := range a {
			if a[k] != b[k] {
				return false
			}
		}
	}
	if (g.diagonal == nil) != (h.diagonal == nil) {
		return false
	}
	for i := range g.diagonal {
		if g.diagonal[i] != h.diagonal[i] {
			return false
		}
	}

	return true
}

func sortedRow(row []Neighbor) []Neighbor {
	out := append([]Neighbor(nil), row...)
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })

	return out
}
