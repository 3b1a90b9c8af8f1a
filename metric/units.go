package metric

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnitConversion is returned when two units cannot be converted.
var ErrUnitConversion = errors.New("metric: incompatible units")

// Convert re-expresses a great-circle distance d between miles, kilometers
// and arc degrees. Planar units only convert to themselves.
func Convert(d float64, from, to Unit) (float64, error) {
	if from == to {
		return d, nil
	}
	km, err := toKm(d, from)
	if err != nil {
		return 0, err
	}
	switch to {
	case UnitKilometers:
		return km, nil
	case UnitMiles:
		return km / KmPerMile, nil
	case UnitDegrees:
		return km / EarthRadiusKm * 180 / math.Pi, nil
	}
	return 0, fmt.Errorf("Convert(%s→%s): %w", from, to, ErrUnitConversion)
}

func toKm(d float64, u Unit) (float64, error) {
	switch u {
	case UnitKilometers:
		return d, nil
	case UnitMiles:
		return d * KmPerMile, nil
	case UnitDegrees:
		return d * math.Pi / 180 * EarthRadiusKm, nil
	}
	return 0, fmt.Errorf("Convert(from %q): %w", u, ErrUnitConversion)
}
