// Package graphops holds the operations that transform or summarize a
// finished core.Graph: higher-order expansion, symmetrization, intersection
// and union, symmetry checks, degree diagnostics, islands, connected
// components and spatial lags.
//
// What
//
//   - HigherOrder(g, k, includeLower): per-observation breadth-first layering
//     up to depth k. The k-th order neighbors of i are the observations at
//     exactly k hops, or within 1..k hops when includeLower is set.
//   - Symmetrize(g, policy): PolicyUnion keeps an edge present in either
//     direction, PolicyIntersection only edges present in both. Weights of
//     reciprocal pairs are averaged, so Symmetrize is idempotent.
//   - Intersect / Union: edge-set intersection and union of graphs over the
//     same observations. Weights come from the first graph holding the edge.
//   - Summarize: min / max / mean / median degree, density and sparsity,
//     islands. Recomputed on every call, never cached.
//   - Components: weakly connected component labels.
//   - SpatialLag: Σ w_ij x_j, optionally row-standardized.
//
// Determinism
//
//	Output rows are built in a fixed order (ascending ids for HigherOrder,
//	input row order elsewhere), so results are reproducible run to run.
//
// Ownership
//
//	Every operation returns a new graph and leaves its inputs untouched,
//	except that CheckSymmetry records the verified flag on g.
//
// Complexity (V observations, E directed entries)
//
//   - HigherOrder: O(V·(reach_k)) time, O(V) scratch per source
//   - Symmetrize, Intersect, Union, Summarize, Components: O(V + E)
package graphops
