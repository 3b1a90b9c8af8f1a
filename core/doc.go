// Package core defines the weights graph shared by every builder, graph
// operation and codec in this module: N observations indexed 0..N-1, one
// ordered neighbor list per observation, an optional diagonal of self-weights,
// a lazily verified symmetry flag, and provenance metadata.
//
// The Graph G = (V,E) is fixed in size at construction:
//
//   - NumObs never changes; there is no AddVertex or RemoveVertex.
//   - Each neighbor list keeps insertion order (builders decide the order).
//   - Self-loops are rejected (ErrSelfLoop); kernel self-weights live in the
//     separate Diagonal slice instead.
//   - A neighbor appears at most once per list (ErrDuplicateNeighbor).
//   - Unweighted graphs store weight 1 for every edge (ErrBadWeight otherwise).
//
// Symmetry
//
//	IsSymmetric verifies "j in N(i) ⇔ i in N(j)" on first call and caches the
//	answer until the next mutation. Builders that are symmetric by
//	construction (contiguity, block) record it with MarkSymmetric so the scan
//	is skipped. Symmetry here is structural: weights are not compared.
//
// Lifecycle
//
//	created with NewGraph(n) → populated once by exactly one builder →
//	optionally mutated by explicitly-named operations in package graphops →
//	handed to package codec for persistence.
//
// Warnings
//
//	Degenerate but usable results (islands, duplicate points, empty graphs,
//	zero distances) are reported as Warning values next to the graph rather
//	than as errors.
//
// Concurrency
//
//	All methods take the graph's RWMutex, so concurrent readers are safe and
//	mutations are serialized. Builders still populate a graph from a single
//	goroutine.
//
// Complexity
//
//   - AddNeighbor: O(deg) for short lists, O(1) amortized once a per-row index exists
//   - Weight / HasEdge: same as AddNeighbor
//   - IsSymmetric: O(V+E) on first call, O(1) cached
//   - Clone / Equal: O(V+E)
package core
