package rds

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"rconv/rexp"
	"rconv/rwire"
	"rconv/util"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// Compression is the outer compression layer of a file.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionBzip2
	CompressionXZ
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	default:
		return "unknown"
	}
}

func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return CompressionNone, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "bzip2", "bz2":
		return CompressionBzip2, nil
	case "xz":
		return CompressionXZ, nil
	default:
		return 0, errors.Errorf("unknown compression %q", s)
	}
}

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// workspaceMagicLen is the length of the "RDX3\n" style prefix of .RData
// files.
const workspaceMagicLen = 5

// Sniff identifies the compression of the stream behind br without consuming
// anything.
func Sniff(br *bufio.Reader) (Compression, error) {
	head, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return CompressionNone, errors.Wrap(err, "error reading stream")
	}
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGzip, nil
	case bytes.HasPrefix(head, bzip2Magic):
		return CompressionBzip2, nil
	case bytes.HasPrefix(head, xzMagic):
		return CompressionXZ, nil
	default:
		return CompressionNone, nil
	}
}

func isWorkspaceMagic(b []byte) bool {
	if len(b) != workspaceMagicLen {
		return false
	}
	return b[0] == 'R' && b[1] == 'D' &&
		(b[2] == 'X' || b[2] == 'A' || b[2] == 'B') &&
		(b[3] == '2' || b[3] == '3') &&
		b[4] == '\n'
}

func workspaceMagic(format rwire.Format, version int32) []byte {
	if format == 0 {
		format = rwire.FormatXDR
	}
	if version == 0 {
		version = rwire.DefaultVersion
	}
	return []byte{'R', 'D', byte(format), byte('0' + version), '\n'}
}

// File is a decoded .rds or .RData file.
type File struct {
	Root        rexp.Node
	Header      *rwire.Header
	Compression Compression
	// Workspace is set for .RData files, whose root is a pairlist binding
	// each saved object to its name.
	Workspace bool
}

// Objects returns the named objects of a workspace, or the root as a single
// unnamed entry for a plain serialized object.
func (f *File) Objects() rexp.Chain {
	if !f.Workspace {
		return rexp.Chain{{Value: f.Root}}
	}
	if pl, ok := f.Root.(*rexp.Pairlist); ok {
		return pl.Entries
	}
	return nil
}

type Config struct {
	Decoder rwire.Config
	// MaxInputBytes bounds the decompressed size of the stream. Zero means no
	// limit.
	MaxInputBytes int64
}

var DefaultConfig = &Config{}

func Decode(r io.Reader) (*File, error) {
	return DefaultConfig.Decode(r)
}

func ReadFile(path string) (*File, error) {
	return DefaultConfig.ReadFile(path)
}

// Decode reads one file's worth of data from r. Unlike rwire.Decode it may
// read past the end of the serialized object.
func (c *Config) Decode(r io.Reader) (*File, error) {
	br := bufio.NewReader(r)
	comp, err := Sniff(br)
	if err != nil {
		return nil, err
	}

	var src io.Reader
	switch comp {
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "error opening gzip stream")
		}
		defer zr.Close()
		src = zr
	case CompressionBzip2:
		src = bzip2.NewReader(br)
	case CompressionXZ:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "error opening xz stream")
		}
		src = xr
	default:
		src = br
	}
	if c.MaxInputBytes > 0 {
		src = util.NewLimitedReader(src, c.MaxInputBytes)
	}

	in := bufio.NewReader(src)
	f := &File{
		Compression: comp,
	}
	head, err := in.Peek(workspaceMagicLen)
	if err == nil && isWorkspaceMagic(head) {
		if _, err := in.Discard(workspaceMagicLen); err != nil {
			return nil, errors.Wrap(err, "error reading workspace header")
		}
		f.Workspace = true
	}

	f.Root, f.Header, err = c.Decoder.DecodeWithHeader(in)
	if err != nil {
		return nil, err
	}
	if f.Workspace {
		if _, ok := f.Root.(*rexp.Pairlist); !ok && f.Root.Kind() != rexp.KindNull {
			return nil, errors.Errorf("workspace root is %s, not a pairlist", f.Root.Kind())
		}
	}
	return f, nil
}

func (c *Config) ReadFile(path string) (*File, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "error opening file")
	}
	defer fp.Close()
	f, err := c.Decode(fp)
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding %s", path)
	}
	return f, nil
}

type WriteOptions struct {
	rwire.EncodeOptions
	Compression Compression
	// Workspace writes the .RData prefix. The node must be a pairlist of
	// named objects, or NULL for an empty workspace.
	Workspace bool
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// Encode writes n to w with the requested compression. w is not closed.
func Encode(n rexp.Node, w io.Writer, opts *WriteOptions) error {
	if opts == nil {
		opts = &WriteOptions{}
	}
	if opts.Workspace {
		switch n.(type) {
		case *rexp.Pairlist, *rexp.Null:
		case nil:
			return errors.New("workspace root is missing")
		default:
			return errors.Errorf("workspace root must be a pairlist or NULL, got %s", n.Kind())
		}
	}

	var cw io.WriteCloser
	switch opts.Compression {
	case CompressionNone:
		cw = nopWriteCloser{w}
	case CompressionGzip:
		cw = gzip.NewWriter(w)
	case CompressionXZ:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return errors.Wrap(err, "error opening xz stream")
		}
		cw = xw
	case CompressionBzip2:
		return errors.New("bzip2 output is not supported")
	default:
		return errors.Errorf("unknown compression %d", opts.Compression)
	}

	if opts.Workspace {
		if _, err := cw.Write(workspaceMagic(opts.Format, opts.Version)); err != nil {
			return errors.Wrap(err, "error writing workspace header")
		}
	}
	if err := rwire.EncodeWithOptions(n, cw, &opts.EncodeOptions); err != nil {
		return err
	}
	return errors.Wrap(cw.Close(), "error finishing compressed stream")
}

func WriteFile(path string, n rexp.Node, opts *WriteOptions) error {
	fp, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "error opening file")
	}
	if err := Encode(n, fp, opts); err != nil {
		fp.Close()
		return errors.Wrapf(err, "error encoding %s", path)
	}
	return errors.Wrap(fp.Close(), "error closing file")
}
