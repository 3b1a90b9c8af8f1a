package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Sentinel errors for the codec.
var (
	// ErrIDLength is returned when the ID column length differs from N.
	ErrIDLength = errors.New("codec: id column length mismatch")

	// ErrDuplicateID is returned for repeated ID column values, and for a
	// GAL row listed twice.
	ErrDuplicateID = errors.New("codec: duplicate id")

	// ErrBadID is returned for an empty key or one containing whitespace.
	ErrBadID = errors.New("codec: id is empty or contains whitespace")

	// ErrUnknownID is returned when a file references a key not in the column.
	ErrUnknownID = errors.New("codec: unknown id")

	// ErrMissingIDs is returned when a keyed file is read without a column.
	ErrMissingIDs = errors.New("codec: keyed file needs an id column")

	// ErrFormat is returned for malformed lines.
	ErrFormat = errors.New("codec: malformed weights file")

	// ErrCountMismatch is returned when a header or row count disagrees with
	// the data that follows.
	ErrCountMismatch = errors.New("codec: count mismatch")

	// ErrUnknownFormat is returned for an unsupported format or extension.
	ErrUnknownFormat = errors.New("codec: unknown weights format")

	// ErrWrite wraps every failure to produce output.
	ErrWrite = errors.New("codec: write failed")
)

// IDColumn maps observation i onto the human-readable key Keys[i].
type IDColumn struct {
	// Name is the ID variable written in the header; empty means record order.
	Name string
	Keys []string
}

// StringIDs builds a column from string values.
func StringIDs(name string, keys []string) IDColumn {
	return IDColumn{Name: name, Keys: append([]string(nil), keys...)}
}

// IntIDs builds a column from integer values.
func IntIDs(name string, vals []int64) IDColumn {
	return IDColumn{Name: name, Keys: lo.Map(vals, func(v int64, _ int) string {
		return strconv.FormatInt(v, 10)
	})}
}

// RecordOrder returns the unnamed column 1..n.
func RecordOrder(n int) IDColumn {
	return IDColumn{Keys: lo.Map(lo.Range(n), func(i, _ int) string { return strconv.Itoa(i + 1) })}
}

// Validate checks that the column has n unique, non-blank keys.
func (c IDColumn) Validate(n int) error {
	if len(c.Keys) != n {
		return fmt.Errorf("Validate: %d keys for %d observations: %w", len(c.Keys), n, ErrIDLength)
	}
	seen := make(map[string]int, n)
	for i, k := range c.Keys {
		if k == "" || strings.ContainsAny(k, " \t\r\n") {
			return fmt.Errorf("Validate: row %d %q: %w", i, k, ErrBadID)
		}
		if j, dup := seen[k]; dup {
			return fmt.Errorf("Validate: %q at rows %d and %d: %w", k, j, i, ErrDuplicateID)
		}
		seen[k] = i
	}

	return nil
}

func (c IDColumn) index() map[string]int {
	m := make(map[string]int, len(c.Keys))
	for i, k := range c.Keys {
		m[k] = i
	}

	return m
}
