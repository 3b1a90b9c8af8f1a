// Package quadtree is the spatial index behind every proximity-based weights
// builder: a point quad-tree with bounded node capacity, axis-aligned range
// queries, and k-nearest / within-distance searches driven by a metric.Metric.
//
// What
//
//   - Insert(p, id): stores the point in the first node on its root-to-leaf path
//     that still had spare capacity. Full nodes subdivide lazily into four
//     equal quadrants (NW, NE, SW, SE) the first time they overflow; points
//     already held by a node are never pushed down.
//   - QueryRange / QueryRangeIDs: every stored point inside a rectangle.
//     Because interior nodes keep points, queries visit every intersecting
//     node, not just leaves.
//   - Nearest: k nearest neighbors by true metric distance, ties broken by
//     ascending id, self excluded.
//   - Within: all neighbors within a distance, self excluded.
//
// Bounds
//
//	The root rectangle is fixed at construction. Build sizes it from the data
//	(with a degenerate-extent epsilon), so Insert never fails for a tree built
//	that way. Points outside the root make Insert return false.
//
// Concurrency
//
//	A Tree is not safe for concurrent Insert. Once loaded it is never mutated
//	by queries, so any number of goroutines may query it at the same time.
//
// Complexity (N points, clustered queries)
//
//   - Insert:     O(depth)
//   - QueryRange: O(visited nodes + hits)
//   - Nearest:    O(log N + k log k) expected for evenly spread data
package quadtree
