package graphops

import (
	"fmt"

	"github.com/katalvlaran/geoweights/core"
)

// SpatialLag returns lag[i] = Σ_j w_ij · x_j over i's neighbors. With
// rowStandardize each row's weights are divided by their sum, so an
// unweighted lag is the neighbor mean. Islands get 0.
//
// Errors: ErrGraphNil, ErrValuesLength.
func SpatialLag(g *core.Graph, x []float64, rowStandardize bool) ([]float64, error) {
	const method = "SpatialLag"
	if g == nil {
		return nil, fmt.Errorf("%s: %w", method, ErrGraphNil)
	}
	if len(x) != g.NumObs() {
		return nil, fmt.Errorf("%s: %d values for %d observations: %w", method, len(x), g.NumObs(), ErrValuesLength)
	}
	lag := make([]float64, len(x))
	for i, row := range g.Rows() {
		var sum, wsum float64
		for _, nb := range row {
			sum += nb.Weight * x[nb.ID]
			wsum += nb.Weight
		}
		if rowStandardize && wsum != 0 {
			sum /= wsum
		}
		lag[i] = sum
	}

	return lag, nil
}
