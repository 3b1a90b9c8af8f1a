package quadtree

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/geoweights/geom"
)

// Capacity is the number of points a node holds before it subdivides.
const Capacity = 8

// MaxDepth stops subdivision. A node at this depth keeps accepting points
// beyond Capacity, which bounds recursion for coincident points.
const MaxDepth = 48

// ErrOutOfBounds is returned by Build when a point cannot be placed.
// With data-sized bounds this only happens for NaN coordinates.
var ErrOutOfBounds = errors.New("quadtree: point outside root bounds")

// Entry is a stored point together with its observation id.
type Entry struct {
	ID    int
	Point geom.Point
}

// node is one quadrant. children is nil until the first overflow; the
// order is NW, NE, SW, SE (y grows upward, so NW is low-x/high-y).
type node struct {
	bounds   geom.Rect
	depth    int
	entries  []Entry
	children *[4]*node
}

// Tree is a point quad-tree over a fixed root rectangle.
type Tree struct {
	root *node
	size int
}

// New returns an empty Tree covering bounds.
func New(bounds geom.Rect) *Tree {
	return &Tree{root: newNode(bounds, 0)}
}

// Build sizes the root from the bounding box of pts and inserts every point
// with its slice index as id.
// Complexity: O(N·depth).
func Build(pts []geom.Point) (*Tree, error) {
	bounds, err := geom.BoundsOf(pts)
	if err != nil {
		return nil, fmt.Errorf("quadtree: Build: %w", err)
	}
	t := New(bounds)
	for i, p := range pts {
		if !t.Insert(p, i) {
			return nil, fmt.Errorf("quadtree: Build: id %d at %v: %w", i, p, ErrOutOfBounds)
		}
	}

	return t, nil
}

func newNode(b geom.Rect, depth int) *node {
	return &node{bounds: b, depth: depth, entries: make([]Entry, 0, Capacity)}
}

// Bounds returns the root rectangle.
func (t *Tree) Bounds() geom.Rect { return t.root.bounds }

// Len returns the number of stored points.
func (t *Tree) Len() int { return t.size }

// Insert stores p under id. It returns false when p lies outside the root.
func (t *Tree) Insert(p geom.Point, id int) bool {
	if !t.root.insert(Entry{ID: id, Point: p}) {
		return false
	}
	t.size++

	return true
}

func (n *node) insert(e Entry) bool {
	if !n.bounds.Contains(e.Point) {
		return false
	}
	if len(n.entries) < Capacity || n.depth >= MaxDepth {
		n.entries = append(n.entries, e)
		return true
	}
	if n.children == nil {
		n.subdivide()
	}
	for _, c := range n.children {
		if c.insert(e) {
			return true
		}
	}

	// unreachable for in-bounds points: children tile the parent
	return false
}

// subdivide creates the four equal quadrants.
func (n *node) subdivide() {
	b := n.bounds
	mid := b.Center()
	d := n.depth + 1
	n.children = &[4]*node{
		newNode(geom.Rect{MinX: b.MinX, MinY: mid.Y, MaxX: mid.X, MaxY: b.MaxY}, d), // NW
		newNode(geom.Rect{MinX: mid.X, MinY: mid.Y, MaxX: b.MaxX, MaxY: b.MaxY}, d), // NE
		newNode(geom.Rect{MinX: b.MinX, MinY: b.MinY, MaxX: mid.X, MaxY: mid.Y}, d), // SW
		newNode(geom.Rect{MinX: mid.X, MinY: b.MinY, MaxX: b.MaxX, MaxY: mid.Y}, d), // SE
	}
}

// QueryRange returns every entry whose point lies in r.
func (t *Tree) QueryRange(r geom.Rect) []Entry {
	var out []Entry
	t.root.walk(r, func(e Entry) { out = append(out, e) })

	return out
}

// QueryRangeIDs adds the id of every point in r to into. Callers that query
// several overlapping rectangles share one set to de-duplicate.
func (t *Tree) QueryRangeIDs(r geom.Rect, into map[int]struct{}) {
	t.root.walk(r, func(e Entry) { into[e.ID] = struct{}{} })
}

// walk visits all entries in r, recursing into every intersecting child,
// including children that hold no points themselves.
func (n *node) walk(r geom.Rect, visit func(Entry)) {
	if !n.bounds.Intersects(r) {
		return
	}
	for _, e := range n.entries {
		if r.Contains(e.Point) {
			visit(e)
		}
	}
	if n.children == nil {
		return
	}
	for _, c := range n.children {
		c.walk(r, visit)
	}
}

// Depth returns the depth of the deepest node (root = 0).
func (t *Tree) Depth() int {
	var rec func(n *node) int
	rec = func(n *node) int {
		if n.children == nil {
			return n.depth
		}
		d := n.depth
		for _, c := range n.children {
			if cd := rec(c); cd > d {
				d = cd
			}
		}
		return d
	}

	return rec(t.root)
}
