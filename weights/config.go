// File: config.go
// Role: TOML configuration of a weights build and its validation into one
//       builder variant.

package weights

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/geoweights/codec"
	"github.com/katalvlaran/geoweights/core"
	"github.com/katalvlaran/geoweights/logging"
)

// Sentinel errors for configuration and orchestration.
var (
	// ErrInvalidConfig is returned for contradictory or missing settings.
	ErrInvalidConfig = errors.New("weights: invalid configuration")

	// ErrUnknownKey is returned when a TOML file holds keys no field decodes.
	ErrUnknownKey = errors.New("weights: unknown configuration key")

	// ErrMissingInput is returned when the input lacks the data the method
	// needs (polygons, coordinate columns, block columns).
	ErrMissingInput = errors.New("weights: input lacks required data")

	// ErrUnknownPolicy is returned for a symmetrize policy other than
	// none, union or intersection.
	ErrUnknownPolicy = errors.New("weights: unknown symmetrize policy")
)

// Config is a complete weights build request.
type Config struct {
	Method  string `toml:"method"`
	IDField string `toml:"id_field"`
	Layer   string `toml:"layer"`

	Contiguity ContiguityConfig `toml:"contiguity"`
	Distance   DistanceConfig   `toml:"distance"`
	Kernel     KernelConfig     `toml:"kernel"`
	Block      BlockConfig      `toml:"block"`
	Symmetrize SymmetrizeConfig `toml:"symmetrize"`
	Output     OutputConfig     `toml:"output"`
	Logging    logging.Config   `toml:"logging"`
}

// ContiguityConfig parameterizes queen and rook weights.
type ContiguityConfig struct {
	Order              int     `toml:"order"`
	IncludeLower       bool    `toml:"include_lower"`
	PrecisionThreshold float64 `toml:"precision_threshold"`
}

// DistanceConfig parameterizes distance-band and k-NN weights, and names
// the coordinate columns every point-based method reads.
type DistanceConfig struct {
	Metric    string  `toml:"metric"`
	X         string  `toml:"x"`
	Y         string  `toml:"y"`
	Period    int     `toml:"period"`
	Threshold float64 `toml:"threshold"`
	K         int     `toml:"k"`
	Inverse   bool    `toml:"inverse"`
	Power     float64 `toml:"power"`
	Workers   int     `toml:"workers"`
}

// KernelConfig parameterizes kernel weights. K > 0 selects the k-NN mode.
type KernelConfig struct {
	Function        string  `toml:"function"`
	Bandwidth       float64 `toml:"bandwidth"`
	K               int     `toml:"k"`
	Adaptive        bool    `toml:"adaptive"`
	ApplyToDiagonal bool    `toml:"apply_to_diagonal"`
}

// BlockConfig names the grouping columns.
type BlockConfig struct {
	Variables []string `toml:"variables"`
}

// SymmetrizeConfig optionally symmetrizes the built graph.
type SymmetrizeConfig struct {
	Policy string `toml:"policy"`
}

// OutputConfig names the weights file. Format defaults to the path
// extension, then to the method's natural format.
type OutputConfig struct {
	Path   string `toml:"path"`
	Format string `toml:"format"`

	// RowStandardize divides every row by its sum before writing.
	RowStandardize bool `toml:"row_standardize"`
}

// DefaultConfig returns first-order queen contiguity on the planar metric.
func DefaultConfig() Config {
	return Config{
		Method:     "queen",
		Contiguity: ContiguityConfig{Order: 1},
		Distance:   DistanceConfig{Metric: "planar", Power: 1, Workers: 1},
		Kernel:     KernelConfig{Function: "triangular"},
	}
}

// LoadConfig decodes a TOML file over DefaultConfig. Keys that match no
// field are an error.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("LoadConfig: %s: %w", path, err)
	}

	return c, undecoded("LoadConfig", md)
}

// ParseConfig decodes TOML text over DefaultConfig.
func ParseConfig(data string) (Config, error) {
	c := DefaultConfig()
	md, err := toml.Decode(data, &c)
	if err != nil {
		return Config{}, fmt.Errorf("ParseConfig: %w", err)
	}

	return c, undecoded("ParseConfig", md)
}

func undecoded(method string, md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}

	return fmt.Errorf("%s: %s: %w", method, strings.Join(names, ", "), ErrUnknownKey)
}

// ParsePolicy maps "", "none", "union" or "intersection" onto a Policy.
func ParsePolicy(s string) (core.Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return core.PolicyNone, nil
	case "union":
		return core.PolicyUnion, nil
	case "intersection":
		return core.PolicyIntersection, nil
	}

	return core.PolicyNone, fmt.Errorf("ParsePolicy: %q: %w", s, ErrUnknownPolicy)
}

// OutputFormat resolves the output format: explicit, then by extension,
// then KWT for kernel, GWT for inverse distance or row-standardized
// weights, GAL otherwise.
func (c Config) OutputFormat(m core.Method) (codec.Format, error) {
	if c.Output.Format != "" {
		return codec.ParseFormat(c.Output.Format)
	}
	if c.Output.Path != "" {
		if f, err := codec.FormatOf(c.Output.Path); err == nil {
			return f, nil
		}
	}
	switch {
	case m == core.MethodKernel:
		return codec.KWT, nil
	case c.Output.RowStandardize,
		c.Distance.Inverse && (m == core.MethodDistanceBand || m == core.MethodKNN):
		return codec.GWT, nil
	}

	return codec.GAL, nil
}
