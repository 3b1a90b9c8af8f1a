package weights

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/katalvlaran/geoweights/block"
	"github.com/katalvlaran/geoweights/codec"
	"github.com/katalvlaran/geoweights/geom"
)

// Table is the attribute source of a build: one row per observation.
type Table interface {
	NumRows() int
	// Column returns the raw values of a column for a time period. Period
	// 0 is the only period of a cross-sectional table.
	Column(name string, period int) ([]string, error)
}

// MemTable is an in-memory Table keyed by column name. Space-time columns
// are stored as "name@period" for periods other than 0.
type MemTable struct {
	n    int
	cols map[string][]string
}

// NewMemTable returns an empty table of n rows.
func NewMemTable(n int) *MemTable {
	return &MemTable{n: n, cols: make(map[string][]string)}
}

// Set stores a column; its length must be NumRows.
func (t *MemTable) Set(name string, period int, values []string) error {
	if len(values) != t.n {
		return fmt.Errorf("Set: column %q has %d values for %d rows: %w", name, len(values), t.n, ErrMissingInput)
	}
	t.cols[columnKey(name, period)] = values

	return nil
}

// NumRows returns the row count.
func (t *MemTable) NumRows() int { return t.n }

// Column returns the stored values.
func (t *MemTable) Column(name string, period int) ([]string, error) {
	v, ok := t.cols[columnKey(name, period)]
	if !ok {
		return nil, fmt.Errorf("Column: %q (period %d): %w", name, period, ErrMissingInput)
	}

	return v, nil
}

func columnKey(name string, period int) string {
	if period == 0 {
		return name
	}

	return name + "@" + strconv.Itoa(period)
}

// Coordinates reads the x and y columns of a period as points. Blank or
// non-numeric cells mark the observation undefined; its point is NaN.
func Coordinates(t Table, x, y string, period int) ([]geom.Point, []bool, error) {
	if x == "" || y == "" {
		return nil, nil, fmt.Errorf("Coordinates: x and y columns are required: %w", ErrMissingInput)
	}
	xs, err := t.Column(x, period)
	if err != nil {
		return nil, nil, fmt.Errorf("Coordinates: %w", err)
	}
	ys, err := t.Column(y, period)
	if err != nil {
		return nil, nil, fmt.Errorf("Coordinates: %w", err)
	}

	pts := make([]geom.Point, len(xs))
	undef := make([]bool, len(xs))
	missing := false
	for i := range xs {
		px, ex := strconv.ParseFloat(strings.TrimSpace(xs[i]), 64)
		py, ey := strconv.ParseFloat(strings.TrimSpace(ys[i]), 64)
		if ex != nil || ey != nil || math.IsNaN(px) || math.IsNaN(py) {
			pts[i] = geom.Point{X: math.NaN(), Y: math.NaN()}
			undef[i] = true
			missing = true
			continue
		}
		pts[i] = geom.Point{X: px, Y: py}
	}
	if !missing {
		undef = nil
	}

	return pts, undef, nil
}

// Centroids returns the centroid of every polygon. Polygons without
// vertices are undefined; the mask is nil when every polygon has one.
func Centroids(polys []geom.Polygon) ([]geom.Point, []bool) {
	undef := lo.Map(polys, func(p geom.Polygon, _ int) bool { return p.NumVertices() == 0 })
	pts := lo.Map(polys, func(p geom.Polygon, i int) geom.Point {
		if undef[i] {
			return geom.Point{X: math.NaN(), Y: math.NaN()}
		}
		return p.Centroid()
	})
	if !lo.Contains(undef, true) {
		undef = nil
	}

	return pts, undef
}

// BlockVariables reads grouping columns; blank cells are ignored.
func BlockVariables(t Table, names []string) ([]block.Variable, error) {
	out := make([]block.Variable, 0, len(names))
	for _, name := range names {
		vals, err := t.Column(name, 0)
		if err != nil {
			return nil, fmt.Errorf("BlockVariables: %w", err)
		}
		out = append(out, block.Categorize(name, vals, func(s string) bool { return strings.TrimSpace(s) == "" }))
	}

	return out, nil
}

// IDColumn reads the key column, or record order when name is empty.
func IDColumn(t Table, name string) (codec.IDColumn, error) {
	if name == "" {
		return codec.RecordOrder(t.NumRows()), nil
	}
	vals, err := t.Column(name, 0)
	if err != nil {
		return codec.IDColumn{}, fmt.Errorf("IDColumn: %w", err)
	}
	ids := codec.StringIDs(name, lo.Map(vals, func(s string, _ int) string { return strings.TrimSpace(s) }))
	if err := ids.Validate(t.NumRows()); err != nil {
		return codec.IDColumn{}, fmt.Errorf("IDColumn: %w", err)
	}

	return ids, nil
}
