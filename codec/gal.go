package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/geoweights/core"
)

// WriteGAL writes g as GAL. Weights are dropped. Every observation gets a
// row, islands with count 0 and an empty neighbor line.
func WriteGAL(w io.Writer, g *core.Graph, ids IDColumn, layer string) error {
	const method = "WriteGAL"
	n := g.NumObs()
	if err := ids.Validate(n); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, writeHeader(n, ids, layer))
	var sb strings.Builder
	for i, row := range g.Rows() {
		fmt.Fprintf(bw, "%s %d\n", ids.Keys[i], len(row))
		sb.Reset()
		for k, nb := range row {
			if k > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(ids.Keys[nb.ID])
		}
		sb.WriteByte('\n')
		bw.WriteString(sb.String())
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%s: %v: %w", method, err, ErrWrite)
	}

	return nil
}

// ReadGAL reads a GAL file into an unweighted graph. ids may be nil for
// record-order files. Rows may be omitted, and a row with count 0 may be
// followed by a blank line.
func ReadGAL(r io.Reader, ids *IDColumn) (*core.Graph, Header, error) {
	const method = "ReadGAL"
	h, lines, err := readLines(r)
	if err != nil {
		return nil, Header{}, fmt.Errorf("%s: %w", method, err)
	}

	// pair up "key count" lines with their neighbor lines
	type entry struct {
		lineNo int
		key    string
		nbrs   []string
	}
	var entries []entry
	for k := 0; k < len(lines); k++ {
		f := lines[k].fields
		if len(f) != 2 {
			return nil, h, fmt.Errorf("%s: line %d: want \"id count\": %w", method, lines[k].no, ErrFormat)
		}
		cnt, err := strconv.Atoi(f[1])
		if err != nil || cnt < 0 {
			return nil, h, fmt.Errorf("%s: line %d: count %q: %w", method, lines[k].no, f[1], ErrFormat)
		}
		e := entry{lineNo: lines[k].no, key: f[0]}
		if cnt > 0 {
			if k+1 >= len(lines) {
				return nil, h, fmt.Errorf("%s: line %d: missing neighbor line: %w", method, e.lineNo, ErrCountMismatch)
			}
			k++
			e.nbrs = lines[k].fields
			if len(e.nbrs) != cnt {
				return nil, h, fmt.Errorf("%s: line %d: %d neighbors listed, count says %d: %w",
					method, lines[k].no, len(e.nbrs), cnt, ErrCountMismatch)
			}
		}
		entries = append(entries, e)
	}
	if len(entries) > h.N {
		return nil, h, fmt.Errorf("%s: %d rows for %d observations: %w", method, len(entries), h.N, ErrCountMismatch)
	}

	var keys []string
	for _, e := range entries {
		keys = append(keys, e.key)
		keys = append(keys, e.nbrs...)
	}
	res, err := newResolver(h, ids, recordBase(h, keys))
	if err != nil {
		return nil, h, fmt.Errorf("%s: %w", method, err)
	}

	g := core.NewGraph(h.N, core.WithMeta(core.Meta{Layer: h.Layer, IDVariable: h.Key}))
	seen := make([]bool, h.N)
	for _, e := range entries {
		i, err := res.lookup(e.key)
		if err != nil {
			return nil, h, fmt.Errorf("%s: line %d: %w", method, e.lineNo, err)
		}
		if seen[i] {
			return nil, h, fmt.Errorf("%s: line %d: row %q repeated: %w", method, e.lineNo, e.key, ErrDuplicateID)
		}
		seen[i] = true
		row := make([]core.Neighbor, 0, len(e.nbrs))
		for _, key := range e.nbrs {
			j, err := res.lookup(key)
			if err != nil {
				return nil, h, fmt.Errorf("%s: line %d: %w", method, e.lineNo+1, err)
			}
			row = append(row, core.Neighbor{ID: j, Weight: 1})
		}
		if err := g.SetNeighbors(i, row); err != nil {
			return nil, h, fmt.Errorf("%s: line %d: %w", method, e.lineNo+1, err)
		}
	}

	return g, h, nil
}
