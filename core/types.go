// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Neighbor, Graph, Meta and Warning declarations, sentinel errors,
//       and the enums describing provenance (Method, Symmetry, Policy).

package core

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrObsOutOfRange indicates an observation id outside [0, NumObs).
	ErrObsOutOfRange = errors.New("core: observation id out of range")

	// ErrSelfLoop indicates an attempt to list an observation as its own neighbor.
	ErrSelfLoop = errors.New("core: self-loop not allowed")

	// ErrDuplicateNeighbor indicates a neighbor id already present in the list.
	ErrDuplicateNeighbor = errors.New("core: duplicate neighbor")

	// ErrBadWeight indicates a weight other than 1 on an unweighted graph.
	ErrBadWeight = errors.New("core: bad weight for unweighted graph")

	// ErrDiagonalLength indicates a diagonal whose length differs from NumObs.
	ErrDiagonalLength = errors.New("core: diagonal length mismatch")

	// ErrUnknownMethod indicates a method name that ParseMethod does not know.
	ErrUnknownMethod = errors.New("core: unknown weights method")
)

// indexThreshold is the row length above which a per-row position map is
// kept for duplicate checks and weight lookups.
const indexThreshold = 16

// Neighbor is one entry of a neighbor list.
type Neighbor struct {
	// ID is the neighbor's observation index.
	ID int

	// Weight is 1 for unweighted graphs.
	Weight float64
}

// Method names the construction algorithm that produced a graph.
type Method int

const (
	MethodUnknown Method = iota
	MethodQueen
	MethodRook
	MethodBlock
	MethodDistanceBand
	MethodKNN
	MethodKernel
)

var methodNames = [...]string{
	MethodUnknown:      "unknown",
	MethodQueen:        "queen",
	MethodRook:         "rook",
	MethodBlock:        "block",
	MethodDistanceBand: "distance-band",
	MethodKNN:          "knn",
	MethodKernel:       "kernel",
}

// String returns the canonical lower-case name.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}

	return methodNames[m]
}

// Contiguity reports whether m is a polygon or Voronoi contiguity method.
func (m Method) Contiguity() bool { return m == MethodQueen || m == MethodRook }

// Weighted reports whether graphs built by m carry non-unit weights by default.
func (m Method) Weighted() bool { return m == MethodKernel }

// ParseMethod maps a configuration name onto a Method. Matching is
// case-insensitive; "distance", "band" and "k-nn" are accepted aliases.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "queen":
		return MethodQueen, nil
	case "rook":
		return MethodRook, nil
	case "block":
		return MethodBlock, nil
	case "distance-band", "distance", "band", "threshold":
		return MethodDistanceBand, nil
	case "knn", "k-nn", "k-nearest":
		return MethodKNN, nil
	case "kernel":
		return MethodKernel, nil
	}

	return MethodUnknown, fmt.Errorf("ParseMethod: %q: %w", name, ErrUnknownMethod)
}

// Policy is a symmetrization policy.
type Policy int

const (
	// PolicyNone means the graph was never symmetrized.
	PolicyNone Policy = iota
	// PolicyUnion keeps an edge if either direction exists.
	PolicyUnion
	// PolicyIntersection keeps an edge only if both directions exist.
	PolicyIntersection
)

// String returns "none", "union" or "intersection".
func (p Policy) String() string {
	switch p {
	case PolicyUnion:
		return "union"
	case PolicyIntersection:
		return "intersection"
	default:
		return "none"
	}
}

// Meta is the provenance of a graph: everything needed to rebuild it and to
// describe it to a user. Zero values mean "not applicable".
type Meta struct {
	Method     Method
	IDVariable string
	Layer      string

	// contiguity
	Order              int
	IncludeLower       bool
	PrecisionThreshold float64
	Voronoi            bool

	// distance
	Metric    string
	Units     string
	XVar      string
	YVar      string
	Period    int
	Threshold float64
	K         int
	Inverse   bool
	Power     float64

	// kernel
	Kernel         string
	Bandwidth      float64
	Adaptive       bool
	KernelDiagonal bool

	// block
	BlockVars []string

	Symmetrize Policy
}

// clone deep-copies the slice fields.
func (m Meta) clone() Meta {
	if m.BlockVars != nil {
		m.BlockVars = append([]string(nil), m.BlockVars...)
	}

	return m
}

// WarningKind classifies a non-fatal build condition.
type WarningKind int

const (
	// WarnIslands: one or more observations have no neighbors.
	WarnIslands WarningKind = iota + 1
	// WarnDuplicatePoints: coincident points found before Voronoi construction.
	WarnDuplicatePoints
	// WarnEmptyGraph: no observation has any neighbor.
	WarnEmptyGraph
	// WarnZeroDistance: inverse-distance weight over a zero distance.
	WarnZeroDistance
)

// String returns a short snake_case label.
func (k WarningKind) String() string {
	switch k {
	case WarnIslands:
		return "islands"
	case WarnDuplicatePoints:
		return "duplicate_points"
	case WarnEmptyGraph:
		return "empty_graph"
	case WarnZeroDistance:
		return "zero_distance"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning is a degenerate-input report returned alongside a usable graph.
// IDs lists the affected observations when that makes sense.
type Warning struct {
	Kind    WarningKind
	Message string
	IDs     []int
}

// String renders "kind: message".
func (w Warning) String() string { return w.Kind.String() + ": " + w.Message }

// Graph is a fixed-size spatial weights graph. See the package
// documentation for invariants.
type Graph struct {
	mu sync.RWMutex

	n        int
	weighted bool

	nbrs [][]Neighbor
	// pos[i] maps neighbor id → position in nbrs[i]; nil until the row
	// grows past indexThreshold.
	pos []map[int]int

	diagonal []float64

	symmetric       bool
	symmetryChecked bool

	meta Meta
}

// GraphOption configures a Graph at construction.
type GraphOption func(*Graph)

// WithWeighted allows arbitrary edge weights. Without it every weight is 1.
func WithWeighted() GraphOption {
	return func(g *Graph) { g.weighted = true }
}

// WithMeta attaches provenance metadata.
func WithMeta(m Meta) GraphOption {
	return func(g *Graph) { g.meta = m.clone() }
}
