package cli

import (
	"os"

	"rconv/rwire"
	"rconv/util"

	"github.com/pkg/errors"
)

// ErrorKind names the class of a decode failure for display.
func ErrorKind(err error) string {
	var truncated *rwire.TruncatedStreamError
	var corrupt *rwire.CorruptStreamError
	var unsupported *rwire.UnsupportedNodeError
	var limit *rwire.LengthLimitError
	var pathErr *os.PathError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, util.ErrReadLimitExceeded):
		return "too large"
	case errors.As(err, &limit):
		return "too large"
	case errors.As(err, &truncated):
		return "truncated"
	case errors.As(err, &corrupt):
		return "corrupt"
	case errors.As(err, &unsupported):
		return "unsupported"
	case errors.As(err, &pathErr):
		return "io"
	default:
		return "error"
	}
}
