package graphops

import (
	"fmt"

	"github.com/katalvlaran/geoweights/core"
)

// Symmetrize returns a symmetric copy of g under policy.
//
//   - PolicyUnion: (i,j) survives if (i,j) or (j,i) exists; a missing
//     reverse entry copies the weight of the existing one.
//   - PolicyIntersection: (i,j) survives only if (j,i) also exists.
//   - PolicyNone: returns an unchanged clone.
//
// When both directions exist their weights are replaced by the mean, so
// Symmetrize(Symmetrize(g, p), p) equals Symmetrize(g, p). The policy is
// recorded in the metadata and the result is flagged symmetric.
//
// Errors: ErrGraphNil, ErrUnknownPolicy.
func Symmetrize(g *core.Graph, policy core.Policy) (*core.Graph, error) {
	const method = "Symmetrize"
	if g == nil {
		return nil, fmt.Errorf("%s: %w", method, ErrGraphNil)
	}
	switch policy {
	case core.PolicyNone:
		return g.Clone(), nil
	case core.PolicyUnion, core.PolicyIntersection:
	default:
		return nil, fmt.Errorf("%s: policy %d: %w", method, int(policy), ErrUnknownPolicy)
	}

	n := g.NumObs()
	rows := make([][]core.Neighbor, n)
	for i, row := range g.Rows() {
		for _, nb := range row {
			j, w := nb.ID, nb.Weight
			back, ok := g.Weight(j, i)
			switch {
			case ok:
				rows[i] = append(rows[i], core.Neighbor{ID: j, Weight: (w + back) / 2})
			case policy == core.PolicyUnion:
				rows[i] = append(rows[i], core.Neighbor{ID: j, Weight: w})
				rows[j] = append(rows[j], core.Neighbor{ID: i, Weight: w})
			}
		}
	}

	out := g.CloneEmpty()
	for i, row := range rows {
		if err := out.SetNeighbors(i, row); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
	}
	if d := g.Diagonal(); d != nil {
		_ = out.SetDiagonal(d)
	}
	out.UpdateMeta(func(m *core.Meta) { m.Symmetrize = policy })
	out.MarkSymmetric(true)

	return out, nil
}

// CheckSymmetry verifies and records g's symmetry flag.
func CheckSymmetry(g *core.Graph) bool {
	if g == nil {
		return false
	}

	return g.IsSymmetric()
}

// Asymmetries lists every (i, j) whose reverse (j, i) is missing, by
// ascending i and then row order.
func Asymmetries(g *core.Graph) [][2]int {
	if g == nil {
		return nil
	}
	var out [][2]int
	for i, row := range g.Rows() {
		for _, nb := range row {
			if !g.HasEdge(nb.ID, i) {
				out = append(out, [2]int{i, nb.ID})
			}
		}
	}

	return out
}
