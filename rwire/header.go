package rwire

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Format selects the wire encoding.
type Format byte

const (
	// FormatXDR is the big-endian binary format.
	FormatXDR Format = 'X'
	// FormatASCII is the line-oriented textual format.
	FormatASCII Format = 'A'
	// FormatNative is the little-endian binary format.
	FormatNative Format = 'B'
)

func (f Format) String() string {
	switch f {
	case FormatXDR:
		return "xdr"
	case FormatASCII:
		return "ascii"
	case FormatNative:
		return "native"
	default:
		return fmt.Sprintf("format(%q)", byte(f))
	}
}

// ParseFormat accepts the names returned by Format.String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "xdr", "binary":
		return FormatXDR, nil
	case "ascii", "text":
		return FormatASCII, nil
	case "native":
		return FormatNative, nil
	default:
		return 0, errors.Errorf("unknown wire format %q", s)
	}
}

// Textual reports whether f is the textual format.
func (f Format) Textual() bool {
	return f == FormatASCII
}

func (f Format) byteOrder() binary.ByteOrder {
	if f == FormatNative {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

const (
	// DefaultVersion is the serialization version written by default.
	DefaultVersion = 3
	// DefaultNativeEncoding is recorded in version 3 preambles.
	DefaultNativeEncoding = "UTF-8"

	// maxNativeEncodingLen bounds the encoding name of a version 3
	// preamble. R writes names such as "UTF-8" or "ISO-8859-1".
	maxNativeEncodingLen = 255
)

var (
	// DefaultWriterVersion is the R version recorded as the writer.
	DefaultWriterVersion = RVersion(4, 3, 1)

	minReaderV2 = RVersion(2, 3, 0)
	minReaderV3 = RVersion(3, 5, 0)
)

// Header is the stream preamble. The version fields are informational; only
// Version changes what follows the preamble.
type Header struct {
	Format           Format
	Version          int32
	WriterVersion    int32
	MinReaderVersion int32
	// NativeEncoding is only present in version 3 streams.
	NativeEncoding string
}

func readFormat(r io.Reader, off offsetFunc) (Format, error) {
	var magic [2]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return 0, truncated(off, err)
	}
	f := Format(magic[0])
	switch f {
	case FormatXDR, FormatASCII, FormatNative:
	default:
		return 0, &CorruptStreamError{
			Msg: fmt.Sprintf("unknown format marker %q", magic[:]),
		}
	}
	if magic[1] != '\n' {
		return 0, &CorruptStreamError{
			Offset: 1,
			Msg:    fmt.Sprintf("unknown format marker %q", magic[:]),
		}
	}
	return f, nil
}

func readHeaderFields(in primitiveReader, h *Header, off offsetFunc) error {
	var err error
	if h.Version, err = in.ReadInt(); err != nil {
		return err
	}
	if h.WriterVersion, err = in.ReadInt(); err != nil {
		return err
	}
	if h.MinReaderVersion, err = in.ReadInt(); err != nil {
		return err
	}
	switch h.Version {
	case 2:
	case 3:
		n, err := in.ReadInt()
		if err != nil {
			return err
		}
		if n < 0 || n > maxNativeEncodingLen {
			return &CorruptStreamError{
				Offset: off(),
				Msg:    fmt.Sprintf("invalid native encoding length %d", n),
			}
		}
		if h.NativeEncoding, err = in.ReadString(int(n)); err != nil {
			return err
		}
	default:
		return &CorruptStreamError{
			Offset: off(),
			Msg:    fmt.Sprintf("unsupported serialization version %d", h.Version),
		}
	}
	return nil
}

func writeHeader(raw io.Writer, out primitiveWriter, h *Header) error {
	if _, err := raw.Write([]byte{byte(h.Format), '\n'}); err != nil {
		return err
	}
	if err := out.WriteInt(h.Version); err != nil {
		return err
	}
	if err := out.WriteInt(h.WriterVersion); err != nil {
		return err
	}
	if err := out.WriteInt(h.MinReaderVersion); err != nil {
		return err
	}
	if h.Version == 3 {
		if err := out.WriteInt(int32(len(h.NativeEncoding))); err != nil {
			return err
		}
		if err := out.WriteString(h.NativeEncoding); err != nil {
			return err
		}
	}
	return nil
}
