// SPDX-License-Identifier: MIT

// Package weights runs a complete spatial weights build: a Config selects
// one builder variant, the builder reads polygons or table columns, the
// graph is optionally symmetrized and summarized, and Save writes it in
// GAL, GWT or KWT keyed by the configured ID column.
//
// Warnings (islands, duplicate points, empty graphs, zero distances) are
// returned with the result and never abort a build.
package weights

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/geoweights/codec"
	"github.com/katalvlaran/geoweights/core"
	"github.com/katalvlaran/geoweights/graphops"
	"github.com/katalvlaran/geoweights/logging"
)

// Result is a finished build.
type Result struct {
	Graph    *core.Graph
	Summary  graphops.Summary
	Warnings []core.Warning
	IDs      codec.IDColumn
	Format   codec.Format
}

// Build validates c, reads in and constructs the weights. Configuration
// and input errors surface before any construction work; no partial graph
// is returned. A nil logger discards.
func Build(ctx context.Context, c Config, in Input, l *slog.Logger) (Result, error) {
	const method = "Build"
	l = logging.OrDiscard(l)

	b, err := c.Builder()
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", method, err)
	}
	policy, err := ParsePolicy(c.Symmetrize.Policy)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", method, err)
	}
	format, err := c.OutputFormat(b.Method())
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", method, err)
	}
	ids := codec.RecordOrder(in.NumObs())
	if in.Table != nil {
		if ids, err = IDColumn(in.Table, c.IDField); err != nil {
			return Result{}, fmt.Errorf("%s: %w", method, err)
		}
	} else if c.IDField != "" {
		return Result{}, fmt.Errorf("%s: id field %q without a table: %w", method, c.IDField, ErrMissingInput)
	}

	start := time.Now()
	g, warns, err := b.Build(ctx, in, l)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", method, err)
	}
	if policy != core.PolicyNone {
		if g, err = graphops.Symmetrize(g, policy); err != nil {
			return Result{}, fmt.Errorf("%s: %w", method, err)
		}
	}

	if c.Output.RowStandardize {
		if g, err = graphops.RowStandardize(g); err != nil {
			return Result{}, fmt.Errorf("%s: %w", method, err)
		}
	}

	r := Result{
		Graph:    g,
		Summary:  graphops.Summarize(g),
		Warnings: warns,
		IDs:      ids,
		Format:   format,
	}
	l.Info("weights built",
		"method", b.Method().String(),
		"n", r.Summary.NumObs,
		"edges", r.Summary.TotalEdges,
		"islands", len(r.Summary.Islands),
		"warnings", len(warns),
		"elapsed", time.Since(start))

	return r, nil
}

// Save writes the result to path in r.Format, labeled with layer. A
// failed write leaves r.Graph untouched.
func (r Result) Save(path, layer string) error {
	if err := codec.SaveAs(path, r.Format, r.Graph, r.IDs, layer); err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	return nil
}
