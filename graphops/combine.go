package graphops

import (
	"fmt"

	"github.com/katalvlaran/geoweights/core"
)

// Intersect returns the graph whose edges are present in every input. Row
// order, weights, weightedness and metadata come from the first graph.
//
// Errors: ErrNoGraphs, ErrGraphNil, ErrSizeMismatch.
func Intersect(gs ...*core.Graph) (*core.Graph, error) {
	const method = "Intersect"
	if err := sameSize(method, gs); err != nil {
		return nil, err
	}
	first, rest := gs[0], gs[1:]

	out := first.CloneEmpty()
	symmetric := allSymmetric(gs)
	for i, row := range first.Rows() {
		kept := row[:0]
		for _, nb := range row {
			inAll := true
			for _, h := range rest {
				if !h.HasEdge(i, nb.ID) {
					inAll = false
					break
				}
			}
			if inAll {
				kept = append(kept, nb)
			}
		}
		if err := out.SetNeighbors(i, kept); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
	}
	if symmetric {
		out.MarkSymmetric(true)
	}

	return out, nil
}

// Union returns the graph whose edges are present in any input. An edge
// takes its weight from the first graph that holds it; rows list the first
// graph's entries, then new entries in input order.
//
// Errors: ErrNoGraphs, ErrGraphNil, ErrSizeMismatch.
func Union(gs ...*core.Graph) (*core.Graph, error) {
	const method = "Union"
	if err := sameSize(method, gs); err != nil {
		return nil, err
	}
	weighted := false
	for _, g := range gs {
		weighted = weighted || g.Weighted()
	}
	opts := []core.GraphOption{core.WithMeta(gs[0].Meta())}
	if weighted {
		opts = append(opts, core.WithWeighted())
	}
	out := core.NewGraph(gs[0].NumObs(), opts...)

	rows := make([][]core.Neighbor, out.NumObs())
	seen := make([]map[int]struct{}, out.NumObs())
	for _, g := range gs {
		for i, row := range g.Rows() {
			for _, nb := range row {
				if seen[i] == nil {
					seen[i] = make(map[int]struct{}, len(row))
				}
				if _, dup := seen[i][nb.ID]; dup {
					continue
				}
				seen[i][nb.ID] = struct{}{}
				rows[i] = append(rows[i], nb)
			}
		}
	}
	for i, row := range rows {
		if err := out.SetNeighbors(i, row); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
	}
	if allSymmetric(gs) {
		out.MarkSymmetric(true)
	}

	return out, nil
}

func sameSize(method string, gs []*core.Graph) error {
	if len(gs) == 0 {
		return fmt.Errorf("%s: %w", method, ErrNoGraphs)
	}
	for k, g := range gs {
		if g == nil {
			return fmt.Errorf("%s: graph %d: %w", method, k, ErrGraphNil)
		}
		if g.NumObs() != gs[0].NumObs() {
			return fmt.Errorf("%s: graph %d has %d observations, want %d: %w",
				method, k, g.NumObs(), gs[0].NumObs(), ErrSizeMismatch)
		}
	}

	return nil
}

func allSymmetric(gs []*core.Graph) bool {
	for _, g := range gs {
		if !g.IsSymmetric() {
			return false
		}
	}

	return true
}
