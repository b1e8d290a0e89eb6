package rds

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"rconv/rexp"
	"rconv/rwire"
	"rconv/testutil/testflags"
	"rconv/testutil/testfs"
	"rconv/util"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// 1:3 as a version 3 XDR stream, compressed with bzip2
const bzip2Fixture = "425a6839314159265359d02da192000015de007e120002004001000640200022bdaa188621000018dea21dba25861c40b82c964cd5dc7c5dc914e1424340b68648"

func testObject() rexp.Node {
	return rexp.NewNamedList(rexp.Chain{
		rexp.Attr("x", rexp.NewDoubleVector([]float64{1, 2, rexp.NAReal()})),
		rexp.Attr("label", rexp.NewStringVector(rexp.NewStrings("a", "b"))),
	}, rexp.Attr("class", rexp.NewStringVector(rexp.NewStrings("data.frame"))))
}

func TestSniff(t *testing.T) {
	tests := []struct {
		data     []byte
		expected Compression
	}{
		{[]byte{0x1f, 0x8b, 0x08}, CompressionGzip},
		{[]byte("BZh91AY"), CompressionBzip2},
		{[]byte{0xfd, '7', 'z', 'X', 'Z', 0x00, 0x00}, CompressionXZ},
		{[]byte("X\n"), CompressionNone},
		{nil, CompressionNone},
	}
	for _, tt := range tests {
		comp, err := Sniff(bufio.NewReader(bytes.NewReader(tt.data)))
		require.NoError(t, err)
		require.Equal(t, tt.expected, comp)
	}
}

func TestEncodeDecode_Compression(t *testing.T) {
	obj := testObject()
	for _, comp := range []Compression{CompressionNone, CompressionGzip, CompressionXZ} {
		t.Run(comp.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(obj, &buf, &WriteOptions{Compression: comp}))
			f, err := Decode(&buf)
			require.NoError(t, err)
			require.Equal(t, comp, f.Compression)
			require.False(t, f.Workspace)
			require.EqualValues(t, 3, f.Header.Version)
			require.True(t, rexp.Equal(obj, f.Root))
		})
	}

	require.Error(t, Encode(obj, ioutil.Discard, &WriteOptions{Compression: CompressionBzip2}))
}

func TestDecode_Bzip2(t *testing.T) {
	data, err := hex.DecodeString(bzip2Fixture)
	require.NoError(t, err)
	f, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, CompressionBzip2, f.Compression)
	require.Equal(t, []int32{1, 2, 3}, f.Root.(*rexp.IntegerVector).Values)
}

func TestWorkspace(t *testing.T) {
	objects := rexp.NewPairlist(rexp.Chain{
		rexp.Attr("fit", testObject()),
		rexp.Attr("n", rexp.NewIntegerVector([]int32{42})),
	})
	for _, format := range []rwire.Format{rwire.FormatXDR, rwire.FormatASCII} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			opts := &WriteOptions{
				Compression: CompressionGzip,
				Workspace:   true,
			}
			opts.Format = format
			require.NoError(t, Encode(objects, &buf, opts))

			f, err := Decode(&buf)
			require.NoError(t, err)
			require.True(t, f.Workspace)
			require.Equal(t, format, f.Header.Format)
			require.Equal(t, []string{"fit", "n"}, f.Objects().Tags())
			require.True(t, rexp.Equal(objects, f.Root))
		})
	}

	err := Encode(testObject(), ioutil.Discard, &WriteOptions{Workspace: true})
	require.Error(t, err)
}

func TestWorkspace_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(rexp.Nil, &buf, &WriteOptions{Workspace: true}))
	f, err := Decode(&buf)
	require.NoError(t, err)
	require.True(t, f.Workspace)
	require.Equal(t, rexp.KindNull, f.Root.Kind())
	require.Empty(t, f.Objects())

	// what was read can be written back unchanged
	var again bytes.Buffer
	require.NoError(t, Encode(f.Root, &again, &WriteOptions{Workspace: f.Workspace}))
	require.Equal(t, "RDX3\n", again.String()[:5])
}

func TestWorkspaceMagic(t *testing.T) {
	require.Equal(t, "RDX3\n", string(workspaceMagic(0, 0)))
	require.Equal(t, "RDA2\n", string(workspaceMagic(rwire.FormatASCII, 2)))
	require.True(t, isWorkspaceMagic([]byte("RDB2\n")))
	require.False(t, isWorkspaceMagic([]byte("RDX4\n")))
	require.False(t, isWorkspaceMagic([]byte("X\n\x00\x00")))
}

func TestDecode_MaxInputBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(testObject(), &buf, &WriteOptions{Compression: CompressionGzip}))
	data := buf.Bytes()

	cfg := &Config{MaxInputBytes: 32}
	_, err := cfg.Decode(bytes.NewReader(data))
	require.Error(t, err)
	require.Equal(t, util.ErrReadLimitExceeded, errors.Cause(err))

	cfg.MaxInputBytes = 1 << 20
	_, err = cfg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestReadWriteFile(t *testing.T) {
	dir, done := testfs.NewTempDir(t)
	defer done()

	path := filepath.Join(dir, "obj.rds")
	require.NoError(t, WriteFile(path, testObject(), &WriteOptions{Compression: CompressionXZ}))
	f, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, CompressionXZ, f.Compression)
	require.True(t, rexp.Equal(testObject(), f.Root))

	bad := testfs.WriteFile(t, dir, "bad.rds", []byte("X\n\x00\x00\x00\x03\x00"))
	_, err = ReadFile(bad)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "bad.rds"))
	_, ok := errors.Cause(err).(*rwire.TruncatedStreamError)
	require.True(t, ok)

	_, err = ReadFile(filepath.Join(dir, "missing.rds"))
	require.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionGzip, CompressionBzip2, CompressionXZ} {
		parsed, err := ParseCompression(c.String())
		require.NoError(t, err)
		require.Equal(t, c, parsed)
	}
	_, err := ParseCompression("zstd")
	require.Error(t, err)
}

// TestRFixtures decodes files written by R itself and checks that they
// survive a round trip through the encoder.
func TestRFixtures(t *testing.T) {
	dir := testflags.FixtureDir(t)
	paths, err := filepath.Glob(filepath.Join(dir, "*.rds"))
	require.NoError(t, err)
	for _, path := range paths {
		f, err := ReadFile(path)
		require.NoError(t, err, path)

		var buf bytes.Buffer
		require.NoError(t, rwire.Encode(f.Root, &buf, false))
		again, err := rwire.Decode(&buf)
		require.NoError(t, err, path)
		require.True(t, rexp.Equal(f.Root, again), path)
	}
}
