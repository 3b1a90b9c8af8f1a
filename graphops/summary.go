package graphops

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/katalvlaran/geoweights/core"
)

// Summary is a diagnostic snapshot of a graph's degree distribution.
type Summary struct {
	NumObs     int
	TotalEdges int // directed (i, j) entries

	MinDegree    int
	MaxDegree    int
	MeanDegree   float64
	MedianDegree float64

	// Density is TotalEdges / (N·(N-1)); Sparsity is 1 - Density.
	Density  float64
	Sparsity float64
	// PercentNonZero is the share of non-zero cells in the full N×N matrix.
	PercentNonZero float64

	Islands   []int
	Symmetric bool
}

// Summarize computes the degree statistics of g. Nothing is cached: call it
// again after mutating g.
//
// Complexity: O(V log V + E).
func Summarize(g *core.Graph) Summary {
	if g == nil {
		return Summary{}
	}
	degs := g.Degrees()
	n := len(degs)
	s := Summary{
		NumObs:    n,
		Islands:   g.Isolates(),
		Symmetric: g.IsSymmetric(),
	}
	if n == 0 {
		s.Sparsity = 1
		return s
	}
	s.TotalEdges = lo.Sum(degs)
	s.MinDegree = lo.Min(degs)
	s.MaxDegree = lo.Max(degs)
	s.MeanDegree = float64(s.TotalEdges) / float64(n)

	sorted := append([]int(nil), degs...)
	sort.Ints(sorted)
	if n%2 == 1 {
		s.MedianDegree = float64(sorted[n/2])
	} else {
		s.MedianDegree = float64(sorted[n/2-1]+sorted[n/2]) / 2
	}
	if n > 1 {
		s.Density = float64(s.TotalEdges) / (float64(n) * float64(n-1))
	}
	s.Sparsity = 1 - s.Density
	s.PercentNonZero = 100 * float64(s.TotalEdges) / (float64(n) * float64(n))

	return s
}

// Islands returns the observations with no neighbors, ascending.
func Islands(g *core.Graph) []int {
	if g == nil {
		return nil
	}

	return g.Isolates()
}

// String renders the summary as aligned "key: value" lines.
func (s Summary) String() string {
	var b strings.Builder
	line := func(k string, v any) { fmt.Fprintf(&b, "%-18s %v\n", k+":", v) }
	line("observations", s.NumObs)
	line("edges", s.TotalEdges)
	line("symmetric", s.Symmetric)
	line("min neighbors", s.MinDegree)
	line("max neighbors", s.MaxDegree)
	line("mean neighbors", fmt.Sprintf("%.4f", s.MeanDegree))
	line("median neighbors", fmt.Sprintf("%.1f", s.MedianDegree))
	line("density", fmt.Sprintf("%.6f", s.Density))
	line("sparsity", fmt.Sprintf("%.6f", s.Sparsity))
	line("% non-zero", fmt.Sprintf("%.4f", s.PercentNonZero))
	line("islands", len(s.Islands))

	return b.String()
}
