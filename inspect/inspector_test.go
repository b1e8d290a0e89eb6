package inspect

import (
	"context"
	"path/filepath"
	"testing"

	"rconv/crypto"
	"rconv/rds"
	"rconv/rexp"
	"rconv/store"
	"rconv/testutil/testfs"

	"github.com/stretchr/testify/require"
)

func testFit() rexp.Node {
	return rexp.NewNamedList(rexp.Chain{
		rexp.Attr("coefficients", rexp.NewDoubleVector([]float64{1.5, -0.25})),
		rexp.Attr("rank", rexp.NewIntegerVector([]int32{2})),
	}, rexp.Attr("class", rexp.NewStringVector(rexp.NewStrings("glm", "lm"))))
}

func writeFixtures(t *testing.T, dir string) []string {
	fit := filepath.Join(dir, "fit.rds")
	require.NoError(t, rds.WriteFile(fit, testFit(), &rds.WriteOptions{Compression: rds.CompressionGzip}))
	copyOfFit := filepath.Join(dir, "copy.rds")
	require.NoError(t, rds.WriteFile(copyOfFit, testFit(), &rds.WriteOptions{Compression: rds.CompressionGzip}))
	ws := filepath.Join(dir, "ws.RData")
	require.NoError(t, rds.WriteFile(ws, rexp.NewPairlist(rexp.Chain{
		rexp.Attr("fit", testFit()),
		rexp.Attr("n", rexp.NewIntegerVector([]int32{10})),
	}), &rds.WriteOptions{Workspace: true}))
	bad := testfs.WriteFile(t, dir, "bad.rds", []byte("not an rds file"))
	return []string{fit, copyOfFit, ws, bad}
}

func TestInspector_Run(t *testing.T) {
	dir, done := testfs.NewTempDir(t)
	defer done()
	paths := writeFixtures(t, dir)

	db, err := store.Open(filepath.Join(dir, "db"))
	require.NoError(t, err)
	defer db.Close()

	ins := New(nil, db)
	results, err := ins.Run(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, results, 4)

	fit := results[0]
	require.NoError(t, fit.Err)
	require.Equal(t, paths[0], fit.Path)
	require.Equal(t, "list", fit.Summary.Kind)
	require.Equal(t, []string{"glm", "lm"}, fit.Summary.Class)
	require.Equal(t, "gzip", fit.Summary.Compression)
	require.Equal(t, "xdr", fit.Summary.Format)
	require.EqualValues(t, 3, fit.Summary.Version)
	require.Equal(t, "4.3.1", fit.Summary.WriterR)

	// identical bytes hash identically
	require.NoError(t, results[1].Err)
	require.Equal(t, fit.Summary.Hash, results[1].Summary.Hash)
	require.Equal(t, paths[1], results[1].Summary.Path)

	ws := results[2]
	require.NoError(t, ws.Err)
	require.True(t, ws.Summary.Workspace)
	require.Equal(t, []string{"fit", "n"}, ws.Summary.Objects)

	require.Error(t, results[3].Err)
	require.Nil(t, results[3].Summary)

	// a fresh inspector finds the summaries in the database
	again, cached, err := New(nil, db).File(paths[2])
	require.NoError(t, err)
	require.True(t, cached)
	require.Equal(t, ws.Summary.Hash, again.Hash)
	require.Equal(t, ws.Summary.Nodes, again.Nodes)

	stream, err := store.StreamSummaries(db, crypto.ZeroHash)
	require.NoError(t, err)
	var count int
	for {
		s, err := stream.Next()
		require.NoError(t, err)
		if s == nil {
			break
		}
		count++
	}
	require.NoError(t, stream.Close())
	require.Equal(t, 2, count)
}

func TestInspector_NoDB(t *testing.T) {
	dir, done := testfs.NewTempDir(t)
	defer done()
	paths := writeFixtures(t, dir)

	ins := New(&rds.Config{MaxInputBytes: 1 << 20}, nil)
	first, cached, err := ins.File(paths[0])
	require.NoError(t, err)
	require.False(t, cached)
	second, cached, err := ins.File(paths[1])
	require.NoError(t, err)
	require.True(t, cached)
	require.Equal(t, first.Nodes, second.Nodes)

	_, _, err = ins.File(filepath.Join(dir, "missing.rds"))
	require.Error(t, err)
}

func TestInspector_Canceled(t *testing.T) {
	dir, done := testfs.NewTempDir(t)
	defer done()
	paths := writeFixtures(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(nil, nil).Run(ctx, paths, 1)
	require.Equal(t, context.Canceled, err)
}

func TestCount(t *testing.T) {
	stats := Count(testFit())
	// list, class attr, names attr, two elements
	require.Equal(t, 5, stats.Nodes)
	require.Equal(t, 1, stats.Kinds[rexp.KindList])
	require.Equal(t, 2, stats.Kinds[rexp.KindString])
	require.Equal(t, 1, stats.Kinds[rexp.KindDouble])
	require.Equal(t, 1, stats.Kinds[rexp.KindInteger])
}
