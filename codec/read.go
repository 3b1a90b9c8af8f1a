package codec

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

type line struct {
	no     int
	fields []string
}

// readLines parses the header and returns the remaining non-blank lines
// split on whitespace.
func readLines(r io.Reader) (Header, []line, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		h      Header
		lines  []line
		no     int
		header bool
	)
	for sc.Scan() {
		no++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if !header {
			var err error
			if h, err = parseHeader(text); err != nil {
				return h, nil, fmt.Errorf("line %d: %w", no, err)
			}
			header = true
			continue
		}
		lines = append(lines, line{no: no, fields: strings.Fields(text)})
	}
	if err := sc.Err(); err != nil {
		return h, nil, fmt.Errorf("read: %v: %w", err, ErrFormat)
	}
	if !header {
		return h, nil, fmt.Errorf("missing header: %w", ErrFormat)
	}

	return h, lines, nil
}

// recordBase picks the first record number of a record-order file: 1 when
// every key lies in 1..N, otherwise the smallest key seen.
func recordBase(h Header, keys []string) int64 {
	if !h.RecordOrder {
		return 0
	}
	lo, hi := int64(math.MaxInt64), int64(math.MinInt64)
	for _, k := range keys {
		v, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		lo, hi = min(lo, v), max(hi, v)
	}
	if lo > hi {
		return 1
	}
	if lo >= 1 && hi <= int64(h.N) {
		return 1
	}

	return lo
}
