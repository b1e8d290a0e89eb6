package util

import (
	"io"

	"github.com/pkg/errors"
)

var ErrReadLimitExceeded = errors.New("read limit exceeded")

// LimitedReader fails with ErrReadLimitExceeded once more than limit bytes
// have been requested from it. Unlike io.LimitedReader it does not report the
// cut-off as a clean end of stream.
type LimitedReader struct {
	r         io.Reader
	remaining int64
}

func NewLimitedReader(r io.Reader, limit int64) *LimitedReader {
	return &LimitedReader{
		r:         r,
		remaining: limit,
	}
}

func (l *LimitedReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if l.remaining <= 0 {
		// a stream that ends exactly at the limit is fine
		var probe [1]byte
		n, err := l.r.Read(probe[:])
		if n > 0 {
			return 0, ErrReadLimitExceeded
		}
		return 0, err
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}
