package graphops

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/geoweights/core"
)

// queueItem pairs an observation with its BFS depth from the source.
type queueItem struct {
	id    int
	depth int
}

// walker holds reusable BFS state across sources. v is visited in the
// current round when stamp[v] == round, so nothing is cleared per source.
type walker struct {
	rows  [][]int
	queue []queueItem
	stamp []int
	round int
}

func newWalker(g *core.Graph) *walker {
	n := g.NumObs()
	rows := make([][]int, n)
	for i := range rows {
		rows[i], _ = g.NeighborIDs(i)
	}

	return &walker{
		rows:  rows,
		queue: make([]queueItem, 0, n),
		stamp: make([]int, n),
	}
}

// layer returns the ids at depth exactly maxDepth from src, or at depth
// 1..maxDepth when includeLower is set, ascending.
func (w *walker) layer(src, maxDepth int, includeLower bool) []int {
	w.round++
	w.queue = w.queue[:0]
	w.enqueue(src, 0)

	var out []int
	for qi := 0; qi < len(w.queue); qi++ {
		item := w.queue[qi]
		if item.depth == maxDepth {
			continue
		}
		for _, nbr := range w.rows[item.id] {
			if w.stamp[nbr] == w.round {
				continue
			}
			d := item.depth + 1
			w.enqueue(nbr, d)
			if d == maxDepth || includeLower {
				out = append(out, nbr)
			}
		}
	}
	sort.Ints(out)

	return out
}

func (w *walker) enqueue(id, d int) {
	w.stamp[id] = w.round
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// HigherOrder returns the order-k contiguity graph of g. Rows are sorted
// ascending and unweighted; symmetry known on g carries over.
//
// Errors: ErrGraphNil, ErrInvalidOrder.
func HigherOrder(g *core.Graph, order int, includeLower bool) (*core.Graph, error) {
	const method = "HigherOrder"
	if g == nil {
		return nil, fmt.Errorf("%s: %w", method, ErrGraphNil)
	}
	if order < 1 {
		return nil, fmt.Errorf("%s: order %d: %w", method, order, ErrInvalidOrder)
	}
	meta := g.Meta()
	meta.Order = order
	meta.IncludeLower = includeLower
	out := core.NewGraph(g.NumObs(), core.WithMeta(meta))

	w := newWalker(g)
	for i := 0; i < g.NumObs(); i++ {
		ids := w.layer(i, order, includeLower)
		row := make([]core.Neighbor, len(ids))
		for k, j := range ids {
			row[k] = core.Neighbor{ID: j, Weight: 1}
		}
		if err := out.SetNeighbors(i, row); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
	}
	if g.SymmetryChecked() && g.IsSymmetric() {
		out.MarkSymmetric(true)
	}

	return out, nil
}
