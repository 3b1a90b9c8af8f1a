package metric_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geoweights/geom"
	"github.com/katalvlaran/geoweights/metric"
)

func TestParse(t *testing.T) {
	cases := map[string]metric.Kind{
		"":          metric.Planar,
		"euclidean": metric.Planar,
		"Arc-Miles": metric.ArcMiles,
		"arc-km":    metric.ArcKm,
	}
	for name, want := range cases {
		m, err := metric.Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, m.Kind(), name)
	}
	_, err := metric.Parse("manhattan")
	assert.ErrorIs(t, err, metric.ErrUnknownMetric)
}

func TestDistance_Planar(t *testing.T) {
	m := metric.Euclidean()
	assert.Equal(t, 5.0, m.Distance(geom.Point{X: 0, Y: 0}, geom.Point{X: 3, Y: 4}))
	assert.False(t, m.IsArc())
}

func TestDistance_ArcOneDegreeOfLatitude(t *testing.T) {
	km := metric.New(metric.ArcKm)
	mi := metric.New(metric.ArcMiles)
	a, b := geom.Point{X: 10, Y: 0}, geom.Point{X: 10, Y: 1}

	wantKm := metric.EarthRadiusKm * math.Pi / 180
	assert.InDelta(t, wantKm, km.Distance(a, b), 1e-9)
	assert.InDelta(t, wantKm/metric.KmPerMile, mi.Distance(a, b), 1e-9)
	assert.Equal(t, metric.UnitKilometers, km.Unit())
}

// Every point within distance d must fall inside at least one search box.
func TestSearchBoxes_AreSupersets(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, m := range []metric.Metric{metric.Euclidean(), metric.New(metric.ArcKm)} {
		for i := 0; i < 200; i++ {
			p := geom.Point{X: rng.Float64()*360 - 180, Y: rng.Float64()*170 - 85}
			q := geom.Point{X: rng.Float64()*360 - 180, Y: rng.Float64()*170 - 85}
			d := m.Distance(p, q)
			boxes := m.SearchBoxes(p, d)
			covered := false
			for _, b := range boxes {
				if b.Contains(q) {
					covered = true
					break
				}
			}
			assert.True(t, covered, "metric=%s p=%v q=%v d=%v", m, p, q, d)
		}
	}
}

func TestSearchBoxes_WrapsAntimeridian(t *testing.T) {
	m := metric.New(metric.ArcKm)
	p := geom.Point{X: 179.9, Y: 0}
	q := geom.Point{X: -179.9, Y: 0}
	d := m.Distance(p, q)
	assert.Less(t, d, 30.0)

	found := false
	for _, b := range m.SearchBoxes(p, d) {
		found = found || b.Contains(q)
	}
	assert.True(t, found)
}

func TestConvert(t *testing.T) {
	v, err := metric.Convert(1, metric.UnitMiles, metric.UnitKilometers)
	require.NoError(t, err)
	assert.InDelta(t, metric.KmPerMile, v, 1e-12)

	v, err = metric.Convert(180, metric.UnitDegrees, metric.UnitKilometers)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*metric.EarthRadiusKm, v, 1e-9)

	_, err = metric.Convert(1, metric.UnitPlanar, metric.UnitMiles)
	assert.ErrorIs(t, err, metric.ErrUnitConversion)
}
