package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/katalvlaran/geoweights/logging"
	"github.com/katalvlaran/geoweights/weights"
)

// readTable loads a CSV whose header row names the columns. A column named
// "name@k" is stored as period k of "name".
func readTable(path string) (*weights.MemTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no header row", path)
	}

	header, rows := records[0], records[1:]
	tb := weights.NewMemTable(len(rows))
	for c, name := range header {
		col := make([]string, len(rows))
		for i, row := range rows {
			col[i] = row[c]
		}
		name, period := splitPeriod(strings.TrimSpace(name))
		if err := tb.Set(name, period, col); err != nil {
			return nil, err
		}
	}
	logging.L().Debug("table loaded", "path", path, "rows", tb.NumRows(), "columns", len(header))

	return tb, nil
}

func splitPeriod(name string) (string, int) {
	at := strings.LastIndexByte(name, '@')
	if at < 0 {
		return name, 0
	}
	var p int
	if _, err := fmt.Sscanf(name[at+1:], "%d", &p); err != nil {
		return name, 0
	}

	return name[:at], p
}
