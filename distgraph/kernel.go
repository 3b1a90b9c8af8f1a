package distgraph

import (
	"fmt"
	"math"
	"strings"
)

// Kernel is a kernel function of the normalized distance z = d / bandwidth.
type Kernel int

const (
	Uniform Kernel = iota
	Triangular
	Epanechnikov
	Quartic
	Gaussian
)

var kernelNames = [...]string{
	Uniform:      "uniform",
	Triangular:   "triangular",
	Epanechnikov: "epanechnikov",
	Quartic:      "quartic",
	Gaussian:     "gaussian",
}

var gaussianConst = 1 / math.Sqrt(2*math.Pi)

// String returns the lower-case kernel name.
func (k Kernel) String() string {
	if k < 0 || int(k) >= len(kernelNames) {
		return fmt.Sprintf("Kernel(%d)", int(k))
	}

	return kernelNames[k]
}

// ParseKernel maps a name onto a Kernel, case-insensitively.
func ParseKernel(name string) (Kernel, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	for k, n := range kernelNames {
		if n == s {
			return Kernel(k), nil
		}
	}

	return 0, fmt.Errorf("ParseKernel: %q: %w", name, ErrUnknownKernel)
}

// Weight evaluates the kernel at z (Anselin & Rey, table 5.4):
//
//	uniform       0.5
//	triangular    1 - z
//	epanechnikov  3/4 · (1 - z²)
//	quartic       15/16 · (1 - z²)²
//	gaussian      (2π)^-½ · exp(-z²/2)
//
// Every kernel but the Gaussian is 0 for z > 1.
func (k Kernel) Weight(z float64) float64 {
	if k != Gaussian && z > 1 {
		return 0
	}
	switch k {
	case Uniform:
		return 0.5
	case Triangular:
		return 1 - z
	case Epanechnikov:
		return 0.75 * (1 - z*z)
	case Quartic:
		u := 1 - z*z
		return 15.0 / 16.0 * u * u
	case Gaussian:
		return gaussianConst * math.Exp(-z*z/2)
	}

	return 0
}

func (k Kernel) valid() bool { return k >= Uniform && k <= Gaussian }
