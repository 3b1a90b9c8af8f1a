// SPDX-License-Identifier: MIT

// Package distgraph builds distance-based spatial weights over point
// coordinates: distance bands, k nearest neighbors and kernel weights.
//
// Every builder indexes the defined observations in a quadtree and asks it
// for exact neighbors under the chosen metric.Metric. Undefined
// observations (WithUndefined) are neither indexed nor searched and appear
// as islands.
//
//	Band           – all others within a threshold (symmetric)
//	KNN            – k nearest others, ties by ascending id (asymmetric)
//	KernelWeights  – kernel(d/bandwidth) over a band or a k-NN scope,
//	                 self-weights kept in the graph diagonal
//
// Builders return the graph together with warnings (islands, zero
// distances under inverse weighting); warnings never abort a build.
//
// Per-observation queries are independent, so WithWorkers(n) fans them out
// over an errgroup; results land in per-observation slots and the output
// does not depend on the worker count.
package distgraph
