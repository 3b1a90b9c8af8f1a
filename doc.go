// Package geoweights is a spatial weights construction engine: it turns
// polygons, point coordinates or categorical columns into neighbor graphs
// for spatial statistics, and reads and writes them as GAL, GWT and KWT.
//
// What is inside:
//
//	geom/      : points, rectangles, polygons with rings
//	quadtree/  : bounded point index with exact range and k-NN search
//	metric/    : planar and great-circle (miles, km) distances
//	core/      : the weights graph: neighbor lists, diagonal, metadata
//	contiguity/: queen and rook from polygons (precision threshold),
//	              Voronoi contiguity for points
//	distgraph/ : distance band, k nearest neighbors, kernel weights
//	block/     : cliques of shared categorical values
//	graphops/  : higher order, symmetrize, intersect, union, summary,
//	              components, spatial lag, row standardization
//	codec/     : GAL / GWT / KWT read and write
//	weights/   : TOML configuration and one-call builds
//	logging/   : slog setup with optional rotating file
//
// Quick example, a 2×2 block of unit squares:
//
//	2───3
//	│   │
//	0───1
//
//	g, _, _ := contiguity.Polygons(squares, contiguity.WithRule(contiguity.Rook))
//	// 0:[1 2] 1:[0 3] 2:[0 3] 3:[1 2]
//
// Builders return the graph, a list of warnings (islands, duplicate points,
// empty graphs, zero distances) and an error. Warnings never abort a build.
//
//	go install github.com/katalvlaran/geoweights/cmd/gdaweights@latest
package geoweights
