package codec_test

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geoweights/codec"
	"github.com/katalvlaran/geoweights/core"
	"github.com/katalvlaran/geoweights/distgraph"
	"github.com/katalvlaran/geoweights/geom"
)

func sample(t *testing.T, weighted bool) *core.Graph {
	t.Helper()
	var opts []core.GraphOption
	if weighted {
		opts = append(opts, core.WithWeighted())
	}
	g := core.NewGraph(4, opts...)
	w := func(x float64) float64 {
		if weighted {
			return x
		}
		return 1
	}
	require.NoError(t, g.AddNeighbor(0, 2, w(0.5)))
	require.NoError(t, g.AddNeighbor(0, 1, w(1.0/3)))
	require.NoError(t, g.AddNeighbor(1, 0, w(2)))
	require.NoError(t, g.AddNeighbor(2, 0, w(math.Inf(1))))
	return g
}

var tracts = codec.StringIDs("TRACT", []string{"A1", "B2", "C3", "D4"})

func TestGAL_RoundTrip(t *testing.T) {
	g := sample(t, false)
	var buf bytes.Buffer
	require.NoError(t, codec.WriteGAL(&buf, g, tracts, "ohio tracts"))
	assert.True(t, strings.HasPrefix(buf.String(), "0 4 \"ohio tracts\" TRACT\nA1 2\nC3 B2\n"))

	back, h, err := codec.ReadGAL(&buf, &tracts)
	require.NoError(t, err)
	assert.Equal(t, codec.Header{N: 4, Layer: "ohio tracts", Key: "TRACT"}, h)
	assert.True(t, g.Equal(back))
	assert.Zero(t, back.Degree(3))
}

func TestHeader_KeyWithSpaceRoundTrips(t *testing.T) {
	g := sample(t, true)
	ids := codec.StringIDs("POLY ID", tracts.Keys)
	var buf bytes.Buffer
	require.NoError(t, codec.WriteGWT(&buf, g, ids, "tracts"))
	assert.True(t, strings.HasPrefix(buf.String(), "0 4 tracts \"POLY ID\"\n"))

	back, h, err := codec.ReadGWT(&buf, &ids)
	require.NoError(t, err)
	assert.Equal(t, "POLY ID", h.Key)
	assert.True(t, g.Equal(back))
	assert.Equal(t, `0 2 "" "a\"b"`, codec.Header{N: 2, Key: `a"b`}.String())
}

func TestGWT_RoundTrip(t *testing.T) {
	g := sample(t, true)
	var buf bytes.Buffer
	require.NoError(t, codec.WriteGWT(&buf, g, tracts, "tracts"))
	assert.Contains(t, buf.String(), "A1 B2 0.3333333333333333\n")
	assert.Contains(t, buf.String(), "C3 A1 +Inf\n")

	back, _, err := codec.ReadGWT(&buf, &tracts)
	require.NoError(t, err)
	assert.True(t, back.Weighted())
	assert.True(t, g.Equal(back))
}

func TestKWT_RoundTripKeepsDiagonal(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}}
	g, _, err := distgraph.KernelWeights(pts, distgraph.KernelSpec{
		Func: distgraph.Gaussian, K: 2, Adaptive: true, ApplyToDiagonal: true,
	})
	require.NoError(t, err)

	ids := codec.IntIDs("POLY_ID", []int64{10, 20, 30, 40})
	var buf bytes.Buffer
	require.NoError(t, codec.WriteKWT(&buf, g, ids, "pts"))
	assert.Contains(t, buf.String(), "10 10 0.3989422804014327\n")

	back, _, err := codec.ReadGWT(&buf, &ids)
	require.NoError(t, err)
	assert.True(t, g.Equal(back))
	assert.Equal(t, g.Diagonal(), back.Diagonal())
}

func TestRecordOrder(t *testing.T) {
	g := sample(t, false)
	var buf bytes.Buffer
	require.NoError(t, codec.WriteGAL(&buf, g, codec.RecordOrder(4), ""))
	assert.True(t, strings.HasPrefix(buf.String(), "4\n1 2\n3 2\n"))

	back, h, err := codec.ReadGAL(&buf, nil)
	require.NoError(t, err)
	assert.True(t, h.RecordOrder)
	assert.True(t, g.Equal(back))

	// zero-based record numbers
	zero := "0 3 layer\n0 1\n2\n2 1\n0\n"
	back, _, err = codec.ReadGAL(strings.NewReader(zero), nil)
	require.NoError(t, err)
	assert.True(t, back.HasEdge(0, 2))
	assert.True(t, back.HasEdge(2, 0))
	assert.Zero(t, back.Degree(1))
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ids  *codec.IDColumn
		want error
	}{
		{"count mismatch", "0 4 l TRACT\nA1 2\nB2\n", &tracts, codec.ErrCountMismatch},
		{"unknown id", "0 4 l TRACT\nA1 1\nZZ\n", &tracts, codec.ErrUnknownID},
		{"repeated row", "0 4 l TRACT\nA1 1\nB2\nA1 1\nC3\n", &tracts, codec.ErrDuplicateID},
		{"missing ids", "0 4 l TRACT\nA1 1\nB2\n", nil, codec.ErrMissingIDs},
		{"bad header", "x y\n", nil, codec.ErrFormat},
		{"empty", "", nil, codec.ErrFormat},
		{"self loop", "0 4 l TRACT\nA1 1\nA1\n", &tracts, core.ErrSelfLoop},
	}
	for _, tc := range tests {
		_, _, err := codec.ReadGAL(strings.NewReader(tc.in), tc.ids)
		assert.ErrorIs(t, err, tc.want, tc.name)
	}

	_, _, err := codec.ReadGWT(strings.NewReader("0 4 l TRACT\nA1 B2\n"), &tracts)
	assert.ErrorIs(t, err, codec.ErrFormat)
	_, _, err = codec.ReadGWT(strings.NewReader("0 4 l TRACT\nA1 B2 x\n"), &tracts)
	assert.ErrorIs(t, err, codec.ErrFormat)
	_, _, err = codec.ReadGWT(strings.NewReader("3\n1 9 1\n"), nil)
	assert.ErrorIs(t, err, codec.ErrUnknownID)
}

func TestIDColumn_Validate(t *testing.T) {
	assert.NoError(t, tracts.Validate(4))
	assert.ErrorIs(t, tracts.Validate(3), codec.ErrIDLength)
	assert.ErrorIs(t, codec.StringIDs("k", []string{"a", "b", "a"}).Validate(3), codec.ErrDuplicateID)
	assert.ErrorIs(t, codec.StringIDs("k", []string{"a", "b c"}).Validate(2), codec.ErrBadID)
	assert.ErrorIs(t, codec.IntIDs("k", []int64{7, 7}).Validate(2), codec.ErrDuplicateID)

	var buf bytes.Buffer
	err := codec.WriteGAL(&buf, sample(t, false), codec.StringIDs("k", []string{"a", "a", "b", "c"}), "")
	assert.ErrorIs(t, err, codec.ErrDuplicateID)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_FailureLeavesGraphIntact(t *testing.T) {
	g := sample(t, true)
	before := g.Clone()
	err := codec.WriteGWT(failingWriter{}, g, tracts, "")
	assert.ErrorIs(t, err, codec.ErrWrite)
	assert.True(t, before.Equal(g))
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	g := sample(t, true)

	path := filepath.Join(dir, "w.gwt")
	require.NoError(t, codec.Save(path, g, tracts, "layer"))
	back, h, err := codec.Load(path, &tracts)
	require.NoError(t, err)
	assert.Equal(t, "TRACT", h.Key)
	assert.True(t, g.Equal(back))

	err = codec.Save(filepath.Join(dir, "w.txt"), g, tracts, "")
	assert.ErrorIs(t, err, codec.ErrUnknownFormat)

	err = codec.Save(filepath.Join(dir, "missing", "w.gal"), g, tracts, "")
	assert.ErrorIs(t, err, codec.ErrWrite)
	_, statErr := os.Stat(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]codec.Format{"gal": codec.GAL, ".GWT": codec.GWT, "kwt": codec.KWT} {
		f, err := codec.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, f)
	}
	_, err := codec.ParseFormat("csv")
	assert.ErrorIs(t, err, codec.ErrUnknownFormat)
}
