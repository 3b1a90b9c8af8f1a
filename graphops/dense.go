package graphops

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/geoweights/core"
)

// ErrIndexOutOfBounds is returned by Dense.At for an invalid cell.
var ErrIndexOutOfBounds = errors.New("graphops: index out of bounds")

// Dense is the full N×N weights matrix in row-major order. It is meant for
// small graphs and tests; every builder works on neighbor lists.
type Dense struct {
	n    int
	data []float64
}

// ToDense expands g, diagonal included.
//
// Complexity: O(N² + E) time and O(N²) memory.
func ToDense(g *core.Graph) (*Dense, error) {
	if g == nil {
		return nil, fmt.Errorf("ToDense: %w", ErrGraphNil)
	}
	n := g.NumObs()
	d := &Dense{n: n, data: make([]float64, n*n)}
	for i, row := range g.Rows() {
		for _, nb := range row {
			d.data[i*n+nb.ID] = nb.Weight
		}
	}
	for i, w := range g.Diagonal() {
		d.data[i*n+i] = w
	}

	return d, nil
}

// N returns the matrix order.
func (d *Dense) N() int { return d.n }

// At returns cell (i, j).
func (d *Dense) At(i, j int) (float64, error) {
	if i < 0 || i >= d.n || j < 0 || j >= d.n {
		return 0, fmt.Errorf("Dense.At(%d,%d): %w", i, j, ErrIndexOutOfBounds)
	}

	return d.data[i*d.n+j], nil
}

// RowSums returns Σ_j w_ij per row.
func (d *Dense) RowSums() []float64 {
	out := make([]float64, d.n)
	for i := range out {
		for _, w := range d.data[i*d.n : (i+1)*d.n] {
			out[i] += w
		}
	}

	return out
}

// RowStandardize returns a weighted copy of g whose rows sum to 1. Islands
// and rows with a zero sum stay as they are. The diagonal is dropped, and
// the result's symmetry is left for IsSymmetric to compute.
func RowStandardize(g *core.Graph) (*core.Graph, error) {
	const method = "RowStandardize"
	if g == nil {
		return nil, fmt.Errorf("%s: %w", method, ErrGraphNil)
	}
	out := core.NewGraph(g.NumObs(), core.WithWeighted(), core.WithMeta(g.Meta()))
	for i, row := range g.Rows() {
		var sum float64
		for _, nb := range row {
			sum += nb.Weight
		}
		if sum != 0 {
			for k := range row {
				row[k].Weight /= sum
			}
		}
		if err := out.SetNeighbors(i, row); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
	}

	return out, nil
}
