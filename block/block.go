// SPDX-License-Identifier: MIT

// Package block builds categorical "block" weights: observations sharing a
// value of a grouping variable become a clique. With several variables the
// cliques are intersected, so a pair is linked only when it shares every
// variable's value.
package block

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/samber/lo"

	"github.com/katalvlaran/geoweights/core"
	"github.com/katalvlaran/geoweights/graphops"
	"github.com/katalvlaran/geoweights/logging"
)

// Sentinel errors for block construction.
var (
	// ErrNoVariables is returned when no grouping variable is supplied.
	ErrNoVariables = errors.New("block: no grouping variables")

	// ErrLengthMismatch is returned when variables differ in length.
	ErrLengthMismatch = errors.New("block: variables have different lengths")

	// ErrNotCategorical is returned for a variable whose every value is unique.
	ErrNotCategorical = errors.New("block: variable is not categorical")
)

// Ignored is the code of an observation left out of every block.
const Ignored int64 = -1

// Variable is one grouping column. Negative codes are ignored: the
// observation joins no block of this variable.
type Variable struct {
	Name   string
	Values []int64
}

// Categorize encodes arbitrary comparable values as codes numbered by first
// appearance. Values for which missing returns true become Ignored; pass nil
// to keep every value.
func Categorize[T comparable](name string, values []T, missing func(T) bool) Variable {
	codes := make(map[T]int64)
	out := make([]int64, len(values))
	for i, v := range values {
		if missing != nil && missing(v) {
			out[i] = Ignored
			continue
		}
		c, ok := codes[v]
		if !ok {
			c = int64(len(codes))
			codes[v] = c
		}
		out[i] = c
	}

	return Variable{Name: name, Values: out}
}

// Option configures a block build.
type Option func(*options)

type options struct {
	layer, idVariable string
	logger            *slog.Logger
}

// WithLabels records the layer name and id variable in the metadata.
func WithLabels(layer, idVariable string) Option {
	return func(o *options) { o.layer, o.idVariable = layer, idVariable }
}

// WithLogger sets the debug/warn logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = logging.OrDiscard(l) }
}

// Groups returns the blocks of v keyed by code, each ascending. Ignored
// observations are left out.
func Groups(v Variable) map[int64][]int {
	idx := lo.Filter(lo.Range(len(v.Values)), func(i, _ int) bool { return v.Values[i] >= 0 })

	return lo.GroupBy(idx, func(i int) int64 { return v.Values[i] })
}

// Build returns the block weights of vars. Every variable must have the
// same length N and must group at least two observations together.
//
// The graph is unweighted and symmetric; rows are ascending. Observations
// alone in their block, or ignored, are islands and reported as a warning.
//
// Complexity: O(Σ group² · V) for V variables.
func Build(vars []Variable, opts ...Option) (*core.Graph, []core.Warning, error) {
	const method = "Build"
	o := options{logger: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	if len(vars) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", method, ErrNoVariables)
	}
	n := len(vars[0].Values)
	for _, v := range vars[1:] {
		if len(v.Values) != n {
			return nil, nil, fmt.Errorf("%s: %q has %d values, %q has %d: %w",
				method, vars[0].Name, n, v.Name, len(v.Values), ErrLengthMismatch)
		}
	}

	groups := make([]map[int64][]int, len(vars))
	for k, v := range vars {
		groups[k] = Groups(v)
		valid := lo.CountBy(v.Values, func(x int64) bool { return x >= 0 })
		if valid > 1 && len(groups[k]) == valid {
			return nil, nil, fmt.Errorf("%s: %q has %d distinct values for %d observations: %w",
				method, v.Name, valid, valid, ErrNotCategorical)
		}
	}

	meta := core.Meta{
		Method:     core.MethodBlock,
		Layer:      o.layer,
		IDVariable: o.idVariable,
		BlockVars:  lo.Map(vars, func(v Variable, _ int) string { return v.Name }),
	}
	gs := make([]*core.Graph, len(vars))
	for k := range vars {
		gs[k] = cliques(n, groups[k], meta)
	}
	g := gs[0]
	if len(gs) > 1 {
		var err error
		if g, err = graphops.Intersect(gs...); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", method, err)
		}
	}
	g.MarkSymmetric(true)

	var warns []core.Warning
	if iso := g.Isolates(); len(iso) > 0 && n > 1 {
		w := core.Warning{
			Kind:    core.WarnIslands,
			Message: fmt.Sprintf("%d of %d observations share no block", len(iso), n),
			IDs:     iso,
		}
		if len(iso) == n {
			w.Kind = core.WarnEmptyGraph
			w.Message = "no two observations share every block variable"
		}
		warns = append(warns, w)
		o.logger.Warn("block weights warning", "kind", w.Kind.String(), "msg", w.Message)
	}
	o.logger.Debug("block weights built", "n", n, "vars", meta.BlockVars, "edges", g.TotalEdges())

	return g, warns, nil
}

// cliques links every pair inside each group.
func cliques(n int, groups map[int64][]int, meta core.Meta) *core.Graph {
	g := core.NewGraph(n, core.WithMeta(meta))
	keys := lo.Keys(groups)
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })
	for _, key := range keys {
		members := groups[key]
		for _, i := range members {
			row := make([]core.Neighbor, 0, len(members)-1)
			for _, j := range members {
				if j != i {
					row = append(row, core.Neighbor{ID: j, Weight: 1})
				}
			}
			if err := g.SetNeighbors(i, row); err != nil {
				panic(fmt.Sprintf("block: %v", err))
			}
		}
	}

	return g
}

// Clusters labels the blocks of g. Clusters are the connected components
// ordered by descending size, ties by smallest member, and numbered from 1;
// components smaller than minSize (islands included when minSize > 1) get 0.
func Clusters(g *core.Graph, minSize int) []int {
	labels, count := graphops.Components(g)
	members := graphops.ComponentMembers(labels, count)
	sort.SliceStable(members, func(a, b int) bool {
		if len(members[a]) != len(members[b]) {
			return len(members[a]) > len(members[b])
		}
		return members[a][0] < members[b][0]
	})

	out := make([]int, len(labels))
	next := 1
	for _, m := range members {
		if len(m) < minSize {
			continue
		}
		for _, i := range m {
			out[i] = next
		}
		next++
	}

	return out
}
