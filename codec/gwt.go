package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/geoweights/core"
)

// WriteGWT writes one "from to weight" line per edge. Unweighted graphs
// get weight 1. The diagonal is not written.
func WriteGWT(w io.Writer, g *core.Graph, ids IDColumn, layer string) error {
	return writeWeighted("WriteGWT", w, g, ids, layer, false)
}

// WriteKWT writes GWT lines plus one "key key weight" line per observation
// when g carries a diagonal.
func WriteKWT(w io.Writer, g *core.Graph, ids IDColumn, layer string) error {
	return writeWeighted("WriteKWT", w, g, ids, layer, true)
}

func writeWeighted(method string, w io.Writer, g *core.Graph, ids IDColumn, layer string, diag bool) error {
	n := g.NumObs()
	if err := ids.Validate(n); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, writeHeader(n, ids, layer))
	var d []float64
	if diag {
		d = g.Diagonal()
	}
	for i, row := range g.Rows() {
		if d != nil {
			fmt.Fprintf(bw, "%s %s %s\n", ids.Keys[i], ids.Keys[i], formatWeight(d[i]))
		}
		for _, nb := range row {
			fmt.Fprintf(bw, "%s %s %s\n", ids.Keys[i], ids.Keys[nb.ID], formatWeight(nb.Weight))
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%s: %v: %w", method, err, ErrWrite)
	}

	return nil
}

// formatWeight prints the shortest representation that parses back exactly.
func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}

// ReadGWT reads a GWT or KWT file into a weighted graph. Lines with equal
// keys set the diagonal; observations without such a line get 0 there.
func ReadGWT(r io.Reader, ids *IDColumn) (*core.Graph, Header, error) {
	const method = "ReadGWT"
	h, lines, err := readLines(r)
	if err != nil {
		return nil, Header{}, fmt.Errorf("%s: %w", method, err)
	}

	keys := make([]string, 0, 2*len(lines))
	for _, l := range lines {
		if len(l.fields) != 3 {
			return nil, h, fmt.Errorf("%s: line %d: want \"from to weight\": %w", method, l.no, ErrFormat)
		}
		keys = append(keys, l.fields[0], l.fields[1])
	}
	res, err := newResolver(h, ids, recordBase(h, keys))
	if err != nil {
		return nil, h, fmt.Errorf("%s: %w", method, err)
	}

	g := core.NewGraph(h.N, core.WithWeighted(), core.WithMeta(core.Meta{Layer: h.Layer, IDVariable: h.Key}))
	var diag []float64
	for _, l := range lines {
		i, err := res.lookup(l.fields[0])
		if err != nil {
			return nil, h, fmt.Errorf("%s: line %d: %w", method, l.no, err)
		}
		j, err := res.lookup(l.fields[1])
		if err != nil {
			return nil, h, fmt.Errorf("%s: line %d: %w", method, l.no, err)
		}
		wt, err := strconv.ParseFloat(l.fields[2], 64)
		if err != nil {
			return nil, h, fmt.Errorf("%s: line %d: weight %q: %w", method, l.no, l.fields[2], ErrFormat)
		}
		if i == j {
			if diag == nil {
				diag = make([]float64, h.N)
			}
			diag[i] = wt
			continue
		}
		if err := g.AddNeighbor(i, j, wt); err != nil {
			return nil, h, fmt.Errorf("%s: line %d: %w", method, l.no, err)
		}
	}
	if diag != nil {
		if err := g.SetDiagonal(diag); err != nil {
			return nil, h, fmt.Errorf("%s: %w", method, err)
		}
	}

	return g, h, nil
}
