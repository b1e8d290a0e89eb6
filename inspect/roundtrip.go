package inspect

import (
	"bytes"

	"rconv/rds"
	"rconv/rexp"
	"rconv/rwire"

	"github.com/pkg/errors"
)

var ErrRoundTripMismatch = errors.New("graph changed after re-encoding")

// RoundTrip re-encodes f with the preamble it was read with, decodes the
// result and compares the two graphs. It returns the size of the re-encoded
// stream.
func RoundTrip(f *rds.File) (int, error) {
	opts := &rwire.EncodeOptions{
		Format:         f.Header.Format,
		Version:        f.Header.Version,
		WriterVersion:  f.Header.WriterVersion,
		NativeEncoding: f.Header.NativeEncoding,
	}
	var buf bytes.Buffer
	if err := rwire.EncodeWithOptions(f.Root, &buf, opts); err != nil {
		return 0, errors.Wrap(err, "error re-encoding")
	}
	size := buf.Len()
	again, err := rwire.Decode(&buf)
	if err != nil {
		return size, errors.Wrap(err, "error decoding re-encoded stream")
	}
	if !rexp.Equal(f.Root, again) {
		return size, ErrRoundTripMismatch
	}
	return size, nil
}
