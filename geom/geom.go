// SPDX-License-Identifier: MIT
// Package: geoweights/geom
//
// geom.go - planar value types shared by the spatial index and every builder.
//
// Design:
//   - Point, Rect and Polygon are plain values; no hidden allocation or state.
//   - Rect bounds are inclusive on every side (Contains / Intersects).
//   - Coordinates are either planar (x, y) or angular (lon, lat in degrees);
//     the interpretation belongs to metric.Metric, never to geom.

package geom

import (
	"errors"
	"math"
)

// ErrEmptyInput indicates that a bounds computation received no points.
var ErrEmptyInput = errors.New("geom: empty input")

// DegenerateEpsilon is the half-width added to a degenerate extent (all points
// coincident or colinear) so that the resulting Rect has a nonzero area.
const DegenerateEpsilon = 1e-9

// Point is an observation's representative location.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle with inclusive bounds.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectAround returns the square of half-width r centered on p.
func RectAround(p Point, r float64) Rect {
	return Rect{MinX: p.X - r, MinY: p.Y - r, MaxX: p.X + r, MaxY: p.Y + r}
}

// Width of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Contains reports whether p lies inside r (borders included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Covers reports whether o lies entirely inside r.
func (r Rect) Covers(o Rect) bool {
	return o.MinX >= r.MinX && o.MaxX <= r.MaxX && o.MinY >= r.MinY && o.MaxY <= r.MaxY
}

// Intersects reports whether r and o overlap (touching borders count).
func (r Rect) Intersects(o Rect) bool {
	return r.MinX <= o.MaxX && o.MinX <= r.MaxX && r.MinY <= o.MaxY && o.MinY <= r.MaxY
}

// Expand grows r by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Union returns the smallest Rect covering r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Diagonal returns the planar length of r's diagonal.
func (r Rect) Diagonal() float64 {
	return math.Hypot(r.Width(), r.Height())
}

// BoundsOf returns the bounding box of pts. Degenerate extents (zero width or
// zero height) are widened by DegenerateEpsilon scaled to the magnitude of the
// coordinates, so the result always has a nonzero area.
// Complexity: O(n).
func BoundsOf(pts []Point) (Rect, error) {
	if len(pts) == 0 {
		return Rect{}, ErrEmptyInput
	}
	r := Rect{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}

	return widen(r), nil
}

// widen pads zero-length sides so subdivision always makes progress.
func widen(r Rect) Rect {
	scale := math.Max(math.Max(math.Abs(r.MinX), math.Abs(r.MaxX)), math.Max(math.Abs(r.MinY), math.Abs(r.MaxY)))
	eps := DegenerateEpsilon * math.Max(1, scale)
	if r.Width() <= 0 {
		r.MinX -= eps
		r.MaxX += eps
	}
	if r.Height() <= 0 {
		r.MinY -= eps
		r.MaxY += eps
	}

	return r
}

// Euclidean returns the planar distance between a and b.
func Euclidean(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
