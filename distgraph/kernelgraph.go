package distgraph

import (
	"fmt"
	"math"

	"github.com/katalvlaran/geoweights/core"
	"github.com/katalvlaran/geoweights/geom"
)

// KernelSpec selects the kernel function and its bandwidth mode.
//
// K > 0 selects the k-nearest-neighbor mode: each observation's neighbors
// are its K nearest others, and the bandwidth is either the distance to its
// own K-th neighbor (Adaptive) or the largest such distance over all
// observations. K == 0 selects the fixed mode: neighbors lie within
// Bandwidth, which must be > 0.
type KernelSpec struct {
	Func      Kernel
	Bandwidth float64
	K         int
	Adaptive  bool

	// ApplyToDiagonal sets the self-weight to Func(0); otherwise it is 1.
	ApplyToDiagonal bool
}

// KernelWeights builds a weighted graph with weight Func(d / bandwidth) per edge
// and the self-weights stored as the graph diagonal. A bandwidth of 0 (all
// k neighbors coincide) gives z = 0.
//
// Errors:
//   - ErrUnknownKernel for an out-of-range Func.
//   - ErrInvalidK, ErrKTooLarge as in KNN.
//   - ErrInvalidBandwidth for a fixed bandwidth <= 0, NaN or +Inf.
func KernelWeights(pts []geom.Point, spec KernelSpec, opts ...Option) (*core.Graph, []core.Warning, error) {
	const method = "KernelWeights"
	o, err := resolve(method, opts)
	if err != nil {
		return nil, nil, err
	}
	if !spec.Func.valid() {
		return nil, nil, fmt.Errorf("%s: %v: %w", method, spec.Func, ErrUnknownKernel)
	}
	switch {
	case spec.K < 0:
		return nil, nil, fmt.Errorf("%s: k=%d: %w", method, spec.K, ErrInvalidK)
	case spec.K == 0 && (!(spec.Bandwidth > 0) || math.IsInf(spec.Bandwidth, 1)):
		return nil, nil, fmt.Errorf("%s: bandwidth %v: %w", method, spec.Bandwidth, ErrInvalidBandwidth)
	}
	s, err := newSearcher(method, pts, o)
	if err != nil {
		return nil, nil, err
	}
	if spec.K > 0 && spec.K >= s.nValid {
		return nil, nil, fmt.Errorf("%s: k=%d with %d defined observations: %w", method, spec.K, s.nValid, ErrKTooLarge)
	}

	// Weights hold raw distances until the kernel is applied.
	rows := make([][]core.Neighbor, len(pts))
	bands := make([]float64, len(pts))
	err = s.each(func(i int) {
		var row []core.Neighbor
		if spec.K > 0 {
			hits := s.nearest(i, spec.K)
			row = make([]core.Neighbor, len(hits))
			for j, h := range hits {
				row[j] = core.Neighbor{ID: h.ID, Weight: h.Dist}
			}
			if len(hits) > 0 {
				bands[i] = hits[len(hits)-1].Dist
			}
		} else {
			hits := s.within(i, spec.Bandwidth)
			row = make([]core.Neighbor, 0, len(hits))
			for _, h := range hits {
				if s.defined[h.ID] {
					row = append(row, core.Neighbor{ID: h.ID, Weight: h.Dist})
				}
			}
			bands[i] = spec.Bandwidth
		}
		rows[i] = row
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", method, err)
	}

	bandwidth := spec.Bandwidth
	if spec.K > 0 && !spec.Adaptive {
		bandwidth = 0
		for i, b := range bands {
			if s.defined[i] && b > bandwidth {
				bandwidth = b
			}
		}
		for i := range bands {
			bands[i] = bandwidth
		}
	}

	diag := make([]float64, len(pts))
	self := 1.0
	if spec.ApplyToDiagonal {
		self = spec.Func.Weight(0)
	}
	for i, row := range rows {
		if !s.defined[i] {
			continue
		}
		diag[i] = self
		for j := range row {
			row[j].Weight = spec.Func.Weight(normalized(row[j].Weight, bands[i]))
		}
	}

	m := o.meta(core.MethodKernel)
	m.Kernel = spec.Func.String()
	m.K = spec.K
	m.Adaptive = spec.K > 0 && spec.Adaptive
	m.KernelDiagonal = spec.ApplyToDiagonal
	if !m.Adaptive {
		m.Bandwidth = bandwidth
	}
	// kernel weights replace inverse distance
	m.Inverse, m.Power = false, 0

	g := core.NewGraph(len(pts), core.WithWeighted(), core.WithMeta(m))
	fill(g, rows)
	if err := g.SetDiagonal(diag); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", method, err)
	}
	if spec.K == 0 {
		g.MarkSymmetric(true)
	}

	warns := warnings(g, nil)
	o.Logger.Debug("kernel weights built",
		"n", len(pts), "kernel", m.Kernel, "k", spec.K, "adaptive", m.Adaptive,
		"bandwidth", m.Bandwidth, "edges", g.TotalEdges())
	logWarnings(o, warns)

	return g, warns, nil
}

func normalized(d, bandwidth float64) float64 {
	if bandwidth <= 0 {
		return 0
	}

	return d / bandwidth
}
