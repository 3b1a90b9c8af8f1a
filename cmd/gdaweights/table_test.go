package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	require.NoError(t, os.WriteFile(path, []byte("ID,X,Y,X@2\na,0,0,9\nb, 1,2,8\n"), 0o644))

	tb, err := readTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tb.NumRows())

	x, err := tb.Column("X", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, x)
	x2, err := tb.Column("X", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"9", "8"}, x2)
}

func TestSplitPeriod(t *testing.T) {
	n, p := splitPeriod("POP@3")
	assert.Equal(t, "POP", n)
	assert.Equal(t, 3, p)
	n, p = splitPeriod("e@mail")
	assert.Equal(t, "e@mail", n)
	assert.Zero(t, p)
}

func TestCheckArgs(t *testing.T) {
	code, stop := checkArgs(true, nil)
	assert.True(t, stop)
	assert.Zero(t, code)

	code, stop = checkArgs(false, nil)
	assert.True(t, stop)
	assert.Equal(t, 2, code, "missing table is a usage error")

	code, stop = checkArgs(false, []string{"a.csv", "b.csv"})
	assert.True(t, stop)
	assert.Equal(t, 2, code)

	_, stop = checkArgs(false, []string{"a.csv"})
	assert.False(t, stop)
}
