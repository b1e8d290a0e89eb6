package rwire

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"

	"rconv/rexp"

	"github.com/pkg/errors"
)

// chunkElems bounds the scratch buffer used for bulk reads of numeric
// vectors.
const chunkElems = 4096

// primitiveReader reads the primitives of one wire format.
type primitiveReader interface {
	ReadInt() (int32, error)
	ReadInts(dst []int32) error
	ReadDouble() (float64, error)
	ReadDoubles(dst []float64) error
	// ReadString reads n bytes of string payload.
	ReadString(n int) (string, error)
	// ReadRaw reads n bytes of raw vector payload.
	ReadRaw(n int) ([]byte, error)
}

type primitiveWriter interface {
	WriteInt(i int32) error
	WriteDouble(d float64) error
	WriteString(s string) error
	WriteRaw(b []byte) error
}

// offsetFunc reports the number of bytes consumed so far.
type offsetFunc func() uint64

func truncated(off offsetFunc, err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &TruncatedStreamError{
			Offset: off(),
			Err:    io.ErrUnexpectedEOF,
		}
	}
	return errors.Wrap(err, "error reading stream")
}

type binaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	off   offsetFunc
	buf   [8]byte
}

func newBinaryReader(r io.Reader, order binary.ByteOrder, off offsetFunc) *binaryReader {
	return &binaryReader{
		r:     r,
		order: order,
		off:   off,
	}
}

func (b *binaryReader) ReadInt() (int32, error) {
	if _, err := io.ReadFull(b.r, b.buf[:4]); err != nil {
		return 0, truncated(b.off, err)
	}
	return int32(b.order.Uint32(b.buf[:4])), nil
}

func (b *binaryReader) ReadInts(dst []int32) error {
	buf := make([]byte, 4*minInt(len(dst), chunkElems))
	for done := 0; done < len(dst); {
		n := minInt(len(dst)-done, chunkElems)
		if _, err := io.ReadFull(b.r, buf[:4*n]); err != nil {
			return truncated(b.off, err)
		}
		for i := 0; i < n; i++ {
			dst[done+i] = int32(b.order.Uint32(buf[4*i:]))
		}
		done += n
	}
	return nil
}

func (b *binaryReader) ReadDouble() (float64, error) {
	if _, err := io.ReadFull(b.r, b.buf[:8]); err != nil {
		return 0, truncated(b.off, err)
	}
	return math.Float64frombits(b.order.Uint64(b.buf[:8])), nil
}

func (b *binaryReader) ReadDoubles(dst []float64) error {
	buf := make([]byte, 8*minInt(len(dst), chunkElems))
	for done := 0; done < len(dst); {
		n := minInt(len(dst)-done, chunkElems)
		if _, err := io.ReadFull(b.r, buf[:8*n]); err != nil {
			return truncated(b.off, err)
		}
		for i := 0; i < n; i++ {
			dst[done+i] = math.Float64frombits(b.order.Uint64(buf[8*i:]))
		}
		done += n
	}
	return nil
}

func (b *binaryReader) ReadString(n int) (string, error) {
	buf, err := b.ReadRaw(n)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// readChunk caps the buffer allocated ahead of string and raw payloads, so
// a declared length only costs memory once the bytes actually arrive.
const readChunk = 1 << 16

func (b *binaryReader) ReadRaw(n int) ([]byte, error) {
	if n <= readChunk {
		buf := make([]byte, n)
		if _, err := io.ReadFull(b.r, buf); err != nil {
			return nil, truncated(b.off, err)
		}
		return buf, nil
	}
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, b.r, int64(n)); err != nil {
		return nil, truncated(b.off, err)
	}
	return buf.Bytes(), nil
}

func initialCap(n int) int {
	if n > readChunk {
		return readChunk
	}
	return n
}

type binaryWriter struct {
	w     *bufio.Writer
	order binary.ByteOrder
	buf   [8]byte
}

func newBinaryWriter(w *bufio.Writer, order binary.ByteOrder) *binaryWriter {
	return &binaryWriter{
		w:     w,
		order: order,
	}
}

func (b *binaryWriter) WriteInt(i int32) error {
	b.order.PutUint32(b.buf[:4], uint32(i))
	_, err := b.w.Write(b.buf[:4])
	return err
}

func (b *binaryWriter) WriteDouble(d float64) error {
	b.order.PutUint64(b.buf[:8], math.Float64bits(d))
	_, err := b.w.Write(b.buf[:8])
	return err
}

func (b *binaryWriter) WriteString(s string) error {
	_, err := b.w.WriteString(s)
	return err
}

func (b *binaryWriter) WriteRaw(p []byte) error {
	_, err := b.w.Write(p)
	return err
}

// asciiReader reads the textual format: whitespace separated words for
// numbers and escaped text for strings.
type asciiReader struct {
	r   io.ByteReader
	off offsetFunc
	// pending holds a byte that was read past the end of a word
	pending    byte
	hasPending bool
}

func newASCIIReader(r io.Reader, off offsetFunc) *asciiReader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = newByteReader(r)
	}
	return &asciiReader{
		r:   br,
		off: off,
	}
}

func (a *asciiReader) readByte() (byte, error) {
	if a.hasPending {
		a.hasPending = false
		return a.pending, nil
	}
	return a.r.ReadByte()
}

func (a *asciiReader) unreadByte(c byte) {
	a.pending = c
	a.hasPending = true
}

func (a *asciiReader) skipSpace() error {
	for {
		c, err := a.readByte()
		if err != nil {
			return truncated(a.off, err)
		}
		if !isSpace(c) {
			a.unreadByte(c)
			return nil
		}
	}
}

func (a *asciiReader) readWord() (string, error) {
	if err := a.skipSpace(); err != nil {
		return "", err
	}
	var word []byte
	for {
		c, err := a.readByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", truncated(a.off, err)
		}
		if isSpace(c) {
			break
		}
		word = append(word, c)
	}
	return string(word), nil
}

func (a *asciiReader) corrupt(format string, args ...interface{}) error {
	return &CorruptStreamError{
		Offset: a.off(),
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (a *asciiReader) ReadInt() (int32, error) {
	word, err := a.readWord()
	if err != nil {
		return 0, err
	}
	if word == "NA" {
		return rexp.NAInteger, nil
	}
	i, err := strconv.ParseInt(word, 10, 32)
	if err != nil {
		return 0, a.corrupt("invalid integer %q", word)
	}
	return int32(i), nil
}

func (a *asciiReader) ReadInts(dst []int32) error {
	for i := range dst {
		v, err := a.ReadInt()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func (a *asciiReader) ReadDouble() (float64, error) {
	word, err := a.readWord()
	if err != nil {
		return 0, err
	}
	switch word {
	case "NA":
		return rexp.NAReal(), nil
	case "NaN":
		return math.NaN(), nil
	case "Inf":
		return math.Inf(1), nil
	case "-Inf":
		return math.Inf(-1), nil
	}
	d, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return 0, a.corrupt("invalid double %q", word)
	}
	return d, nil
}

func (a *asciiReader) ReadDoubles(dst []float64) error {
	for i := range dst {
		v, err := a.ReadDouble()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func (a *asciiReader) ReadString(n int) (string, error) {
	if n == 0 {
		return "", nil
	}
	if err := a.skipSpace(); err != nil {
		return "", err
	}
	buf := make([]byte, 0, initialCap(n))
	for len(buf) < n {
		c, err := a.readByte()
		if err != nil {
			return "", truncated(a.off, err)
		}
		if c != '\\' {
			buf = append(buf, c)
			continue
		}
		c, err = a.readByte()
		if err != nil {
			return "", truncated(a.off, err)
		}
		switch c {
		case 'n':
			buf = append(buf, '\n')
		case 't':
			buf = append(buf, '\t')
		case 'v':
			buf = append(buf, '\v')
		case 'b':
			buf = append(buf, '\b')
		case 'r':
			buf = append(buf, '\r')
		case 'f':
			buf = append(buf, '\f')
		case 'a':
			buf = append(buf, '\a')
		case '\\':
			buf = append(buf, '\\')
		case '?':
			buf = append(buf, '?')
		case '\'':
			buf = append(buf, '\'')
		case '"':
			buf = append(buf, '"')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			var d int
			for j := 0; j < 3 && c >= '0' && c <= '7'; j++ {
				d = d*8 + int(c-'0')
				c, err = a.readByte()
				if err == io.EOF {
					break
				}
				if err != nil {
					return "", truncated(a.off, err)
				}
			}
			if err == nil {
				a.unreadByte(c)
			}
			buf = append(buf, byte(d))
		default:
			buf = append(buf, c)
		}
	}
	return string(buf), nil
}

func (a *asciiReader) ReadRaw(n int) ([]byte, error) {
	out := make([]byte, 0, initialCap(n))
	for len(out) < n {
		word, err := a.readWord()
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseUint(word, 16, 8)
		if err != nil {
			return nil, a.corrupt("invalid raw byte %q", word)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

type asciiWriter struct {
	w *bufio.Writer
}

func (a *asciiWriter) WriteInt(i int32) error {
	var err error
	if i == rexp.NAInteger {
		_, err = a.w.WriteString("NA\n")
	} else {
		_, err = a.w.WriteString(strconv.FormatInt(int64(i), 10) + "\n")
	}
	return err
}

func (a *asciiWriter) WriteDouble(d float64) error {
	var s string
	switch {
	case rexp.IsNA(d):
		s = "NA"
	case math.IsNaN(d):
		s = "NaN"
	case math.IsInf(d, 1):
		s = "Inf"
	case math.IsInf(d, -1):
		s = "-Inf"
	default:
		s = strconv.FormatFloat(d, 'g', -1, 64)
	}
	_, err := a.w.WriteString(s + "\n")
	return err
}

func (a *asciiWriter) WriteString(s string) error {
	for i := 0; i < len(s); i++ {
		var err error
		switch c := s[i]; c {
		case '\n':
			_, err = a.w.WriteString(`\n`)
		case '\t':
			_, err = a.w.WriteString(`\t`)
		case '\v':
			_, err = a.w.WriteString(`\v`)
		case '\b':
			_, err = a.w.WriteString(`\b`)
		case '\r':
			_, err = a.w.WriteString(`\r`)
		case '\f':
			_, err = a.w.WriteString(`\f`)
		case '\a':
			_, err = a.w.WriteString(`\a`)
		case '\\':
			_, err = a.w.WriteString(`\\`)
		case '?':
			_, err = a.w.WriteString(`\?`)
		case '\'':
			_, err = a.w.WriteString(`\'`)
		case '"':
			_, err = a.w.WriteString(`\"`)
		default:
			if c <= 32 || c > 126 {
				_, err = fmt.Fprintf(a.w, "\\%03o", c)
			} else {
				err = a.w.WriteByte(c)
			}
		}
		if err != nil {
			return err
		}
	}
	return a.w.WriteByte('\n')
}

func (a *asciiWriter) WriteRaw(p []byte) error {
	for _, b := range p {
		if _, err := fmt.Fprintf(a.w, "%02x\n", b); err != nil {
			return err
		}
	}
	return nil
}

type byteReader struct {
	r   io.Reader
	buf []byte
}

func newByteReader(r io.Reader) *byteReader {
	return &byteReader{
		r:   r,
		buf: make([]byte, 1, 1),
	}
}

func (r *byteReader) ReadByte() (byte, error) {
	_, err := io.ReadFull(r.r, r.buf)
	if err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
