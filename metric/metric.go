// SPDX-License-Identifier: MIT
// Package: geoweights/metric
//
// metric.go - planar and great-circle distance functions with matching
// search-box generation for the spatial index.
//
// Contract:
//   - One Metric value is used for BOTH the coarse index prefilter (SearchBoxes)
//     and the exact distance check (Distance). Mixing them loses neighbors.
//   - Arc metrics read Point.X as longitude and Point.Y as latitude, in degrees.
//   - Distances are reported in the metric's Unit (planar units, miles or km).

package metric

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/s2"

	"github.com/katalvlaran/geoweights/geom"
)

// Earth radius constants (spherical approximation).
const (
	EarthRadiusKm = 6371.0
	KmPerMile     = 1.609344
	EarthRadiusMi = EarthRadiusKm / KmPerMile
)

// ErrUnknownMetric is returned by Parse for unsupported names.
var ErrUnknownMetric = errors.New("metric: unknown metric")

// Kind enumerates the supported distance metrics.
type Kind int

const (
	// Planar is the Euclidean distance sqrt(dx²+dy²).
	Planar Kind = iota
	// ArcMiles is great-circle distance in statute miles.
	ArcMiles
	// ArcKm is great-circle distance in kilometers.
	ArcKm
)

// Unit names the unit a Metric reports distances in.
type Unit string

const (
	UnitPlanar     Unit = ""
	UnitMiles      Unit = "mile"
	UnitKilometers Unit = "km"
	UnitDegrees    Unit = "degree"
)

// Metric is a distance function selected once at configuration time.
type Metric struct {
	kind Kind
}

// New returns the Metric for kind.
func New(kind Kind) Metric { return Metric{kind: kind} }

// Euclidean is the planar metric.
func Euclidean() Metric { return Metric{kind: Planar} }

// Arc returns a great-circle metric in the given unit (miles or km).
func Arc(unit Unit) (Metric, error) {
	switch unit {
	case UnitMiles:
		return Metric{kind: ArcMiles}, nil
	case UnitKilometers:
		return Metric{kind: ArcKm}, nil
	}
	return Metric{}, fmt.Errorf("Arc(%q): %w", unit, ErrUnknownMetric)
}

// Parse maps a configuration name onto a Metric. Accepted names:
// "planar"/"euclidean", "arc-miles"/"arc-mi", "arc-km"/"arc-kilometers".
func Parse(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "planar", "euclidean":
		return Metric{kind: Planar}, nil
	case "arc-miles", "arc-mi", "arc-mile":
		return Metric{kind: ArcMiles}, nil
	case "arc-km", "arc-kilometers":
		return Metric{kind: ArcKm}, nil
	}
	return Metric{}, fmt.Errorf("Parse(%q): %w", name, ErrUnknownMetric)
}

// Kind reports the metric variant.
func (m Metric) Kind() Kind { return m.kind }

// IsArc reports whether coordinates are interpreted as lon/lat degrees.
func (m Metric) IsArc() bool { return m.kind != Planar }

// Unit reports the distance unit.
func (m Metric) Unit() Unit {
	switch m.kind {
	case ArcMiles:
		return UnitMiles
	case ArcKm:
		return UnitKilometers
	}
	return UnitPlanar
}

// String returns the configuration name of the metric.
func (m Metric) String() string {
	switch m.kind {
	case ArcMiles:
		return "arc-miles"
	case ArcKm:
		return "arc-km"
	}
	return "planar"
}

// radius returns the Earth radius in the metric's unit (0 for planar).
func (m Metric) radius() float64 {
	switch m.kind {
	case ArcMiles:
		return EarthRadiusMi
	case ArcKm:
		return EarthRadiusKm
	}
	return 0
}

// Distance returns the distance between a and b in the metric's unit.
func (m Metric) Distance(a, b geom.Point) float64 {
	if m.kind == Planar {
		return geom.Euclidean(a, b)
	}
	return ArcRadians(a, b) * m.radius()
}

// ArcRadians returns the great-circle angle between two lon/lat points.
// s2.LatLng.Distance uses the haversine form, which stays well conditioned
// for small separations.
func ArcRadians(a, b geom.Point) float64 {
	la := s2.LatLngFromDegrees(a.Y, a.X)
	lb := s2.LatLngFromDegrees(b.Y, b.X)
	return la.Distance(lb).Radians()
}

// MaxDistance bounds every distance between two points inside r. The k-NN
// search stops widening once its radius reaches this value.
func (m Metric) MaxDistance(r geom.Rect) float64 {
	if m.kind == Planar {
		return r.Diagonal()
	}
	return math.Pi * m.radius()
}

// SearchBoxes returns coordinate-space rectangles whose union covers every
// point within distance d of p under this metric. For planar metrics that is
// the single square of half-width d. For arc metrics the angular radius is
// converted into a latitude band plus a longitude half-width
// asin(sin θ / cos φ), widened to the full longitude range near the poles
// and replicated across the ±180° seam.
func (m Metric) SearchBoxes(p geom.Point, d float64) []geom.Rect {
	if m.kind == Planar {
		return []geom.Rect{geom.RectAround(p, d)}
	}
	// slight inflation keeps points that sit exactly on the bound
	theta := d / m.radius() * (1 + 1e-9)
	if theta >= math.Pi {
		return worldBoxes()
	}
	thetaDeg := theta * 180 / math.Pi
	latMin, latMax := p.Y-thetaDeg, p.Y+thetaDeg
	if latMax >= 90 || latMin <= -90 {
		return []geom.Rect{{MinX: -540, MinY: math.Max(latMin, -90), MaxX: 540, MaxY: math.Min(latMax, 90)}}
	}
	s := math.Sin(theta) / math.Cos(p.Y*math.Pi/180)
	if s >= 1 {
		return []geom.Rect{{MinX: -540, MinY: latMin, MaxX: 540, MaxY: latMax}}
	}
	half := math.Asin(s)*180/math.Pi + 1e-12
	box := geom.Rect{MinX: p.X - half, MinY: latMin, MaxX: p.X + half, MaxY: latMax}
	out := []geom.Rect{box}
	if box.MinX < -180 {
		out = append(out, geom.Rect{MinX: box.MinX + 360, MinY: latMin, MaxX: box.MaxX + 360, MaxY: latMax})
	}
	if box.MaxX > 180 {
		out = append(out, geom.Rect{MinX: box.MinX - 360, MinY: latMin, MaxX: box.MaxX - 360, MaxY: latMax})
	}

	return out
}

func worldBoxes() []geom.Rect {
	return []geom.Rect{{MinX: -540, MinY: -90, MaxX: 540, MaxY: 90}}
}
