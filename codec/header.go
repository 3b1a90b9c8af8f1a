package codec

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Format is a weights file format.
type Format int

const (
	GAL Format = iota
	GWT
	KWT
)

// String returns the lower-case extension without the dot.
func (f Format) String() string {
	switch f {
	case GAL:
		return "gal"
	case GWT:
		return "gwt"
	case KWT:
		return "kwt"
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps "gal", "gwt" or "kwt" (any case, optional dot) onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "gal":
		return GAL, nil
	case "gwt":
		return GWT, nil
	case "kwt":
		return KWT, nil
	}

	return 0, fmt.Errorf("ParseFormat: %q: %w", s, ErrUnknownFormat)
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Header is the first line of a weights file.
type Header struct {
	N     int
	Layer string
	Key   string

	// RecordOrder is set when keys are record numbers rather than values
	// of a named ID column.
	RecordOrder bool
}

// String renders the header line without the newline.
func (h Header) String() string {
	if h.RecordOrder && h.Key == "" && h.Layer == "" {
		return strconv.Itoa(h.N)
	}
	layer := quoteField(h.Layer)
	if h.Key == "" {
		return fmt.Sprintf("0 %d %s", h.N, layer)
	}

	return fmt.Sprintf("0 %d %s %s", h.N, layer, quoteField(h.Key))
}

// quoteField quotes header fields that are empty or would not survive
// whitespace splitting.
func quoteField(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"") {
		return strconv.Quote(s)
	}

	return s
}

// parseHeader accepts "N", "0 N", "0 N layer" and "0 N layer key".
func parseHeader(line string) (Header, error) {
	f, err := splitFields(line)
	if err != nil {
		return Header{}, err
	}
	if len(f) == 0 {
		return Header{}, fmt.Errorf("header: empty: %w", ErrFormat)
	}
	a, err := strconv.Atoi(f[0])
	if err != nil {
		return Header{}, fmt.Errorf("header: %q: %w", f[0], ErrFormat)
	}
	var h Header
	if len(f) == 1 {
		h = Header{N: a, RecordOrder: true}
	} else {
		b, err := strconv.Atoi(f[1])
		if err != nil {
			return Header{}, fmt.Errorf("header: %q: %w", f[1], ErrFormat)
		}
		if b == 0 {
			h = Header{N: a, RecordOrder: true}
		} else {
			h.N = b
			if len(f) > 2 {
				h.Layer = f[2]
			}
			if len(f) > 3 {
				h.Key = f[3]
			}
			h.RecordOrder = h.Key == ""
		}
	}
	if h.N < 0 {
		return Header{}, fmt.Errorf("header: %d observations: %w", h.N, ErrFormat)
	}

	return h, nil
}

// splitFields splits on whitespace, keeping double-quoted fields whole.
func splitFields(line string) ([]string, error) {
	var out []string
	s := strings.TrimSpace(line)
	for s != "" {
		if s[0] == '"' {
			q, err := strconv.QuotedPrefix(s)
			if err != nil {
				return nil, fmt.Errorf("header: %s: %w", s, ErrFormat)
			}
			v, _ := strconv.Unquote(q)
			out = append(out, v)
			s = strings.TrimLeft(s[len(q):], " \t")
			continue
		}
		end := strings.IndexAny(s, " \t")
		if end < 0 {
			end = len(s)
		}
		out = append(out, s[:end])
		s = strings.TrimLeft(s[end:], " \t")
	}

	return out, nil
}

// resolver maps file keys onto observation indices.
type resolver struct {
	byKey   map[string]int
	min     int64
	n       int
	ordered bool
}

func newResolver(h Header, ids *IDColumn, recordMin int64) (resolver, error) {
	if h.RecordOrder {
		return resolver{min: recordMin, n: h.N, ordered: true}, nil
	}
	if ids == nil {
		return resolver{}, fmt.Errorf("key %q: %w", h.Key, ErrMissingIDs)
	}
	if err := ids.Validate(h.N); err != nil {
		return resolver{}, err
	}

	return resolver{byKey: ids.index(), n: h.N}, nil
}

func (r resolver) lookup(key string) (int, error) {
	if r.ordered {
		v, err := strconv.ParseInt(key, 10, 64)
		if err != nil || v < r.min || v-r.min >= int64(r.n) {
			return 0, fmt.Errorf("record %q: %w", key, ErrUnknownID)
		}
		return int(v - r.min), nil
	}
	i, ok := r.byKey[key]
	if !ok {
		return 0, fmt.Errorf("key %q: %w", key, ErrUnknownID)
	}

	return i, nil
}

// writeHeader builds the header for g's size and the column.
func writeHeader(n int, ids IDColumn, layer string) Header {
	return Header{N: n, Layer: layer, Key: ids.Name, RecordOrder: ids.Name == ""}
}
