package graphops

import "github.com/katalvlaran/geoweights/core"

// Components labels the weakly connected components of g: edges are
// followed in both directions. Labels are 0..count-1, numbered in order of
// each component's smallest member, so islands get their own labels.
//
// Time:   O(V + E).
// Memory: O(V + E) for the undirected adjacency and the queue.
func Components(g *core.Graph) (labels []int, count int) {
	if g == nil {
		return nil, 0
	}
	n := g.NumObs()
	adj := make([][]int, n)
	for i, row := range g.Rows() {
		for _, nb := range row {
			adj[i] = append(adj[i], nb.ID)
			adj[nb.ID] = append(adj[nb.ID], i)
		}
	}

	labels = make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	queue := make([]int, 0, n)
	for i0 := 0; i0 < n; i0++ {
		if labels[i0] >= 0 {
			continue
		}
		labels[i0] = count
		queue = append(queue[:0], i0)
		for qi := 0; qi < len(queue); qi++ {
			for _, v := range adj[queue[qi]] {
				if labels[v] < 0 {
					labels[v] = count
					queue = append(queue, v)
				}
			}
		}
		count++
	}

	return labels, count
}

// ComponentMembers groups ids by component label, each group ascending.
func ComponentMembers(labels []int, count int) [][]int {
	out := make([][]int, count)
	for i, l := range labels {
		out[l] = append(out[l], i)
	}

	return out
}
