// Package contiguity builds rook and queen contiguity graphs.
//
// Polygons
//
//	Two polygons are queen neighbors when some boundary vertex of one lies
//	within the precision threshold, on both axes, of a boundary vertex of
//	the other. They
//	are rook neighbors when, in addition to such a vertex pair (v, u), a ring
//	neighbor of v matches a ring neighbor of u: succ(v)~prev(u),
//	succ(v)~succ(u), prev(v)~succ(u) or prev(v)~prev(u). This accepts shared
//	edges traversed in either ring orientation and ignores closing duplicate
//	vertices. Candidate pairs come from an R-tree over polygon bounding boxes
//	widened by the threshold; vertex matching queries a per-polygon quad-tree.
//
// Points
//
//	Point layers use the Voronoi diagram: rook neighbors share a Voronoi
//	edge of positive length inside the data bounding box padded by 2%, queen
//	neighbors additionally share a Voronoi vertex inside that box. The dual
//	Delaunay triangulation comes from a hull-based sweep, which stays exact
//	on nearly collinear layers such as stations along a road. Coincident
//	points are reported with a DuplicatePoints warning, collapsed onto one
//	representative for the triangulation, and re-expanded afterwards so that
//	duplicates are neighbors of each other and of the representative's
//	neighbors. Collinear input produces a chain.
//
// Output
//
//	Both builders return an unweighted graph flagged symmetric. Islands and
//	an entirely empty graph (usually a precision threshold problem) are
//	returned as warnings, never as errors. Order > 1 expands the result with
//	graphops.HigherOrder.
package contiguity
