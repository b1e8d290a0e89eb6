package rwire

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"math"
	"strings"
	"testing"

	"rconv/rexp"

	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	require.NoError(t, err)
	return b
}

// xdrBuilder assembles big-endian streams word by word for fixtures that are
// easier to read as structure than as hex.
type xdrBuilder struct {
	bytes.Buffer
}

func newXDR() *xdrBuilder {
	b := &xdrBuilder{}
	b.WriteString("X\n")
	b.ints(3, RVersion(4, 3, 1), RVersion(3, 5, 0))
	b.str("UTF-8")
	return b
}

func (b *xdrBuilder) ints(vs ...int32) *xdrBuilder {
	for _, v := range vs {
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(v))
		b.Write(buf[:])
	}
	return b
}

func (b *xdrBuilder) doubles(vs ...float64) *xdrBuilder {
	for _, v := range vs {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
		b.Write(buf[:])
	}
	return b
}

func (b *xdrBuilder) str(s string) *xdrBuilder {
	b.ints(int32(len(s)))
	b.WriteString(s)
	return b
}

// char writes an ASCII-marked string element.
func (b *xdrBuilder) char(s string) *xdrBuilder {
	b.ints(0x00040009)
	return b.str(s)
}

func (b *xdrBuilder) sym(name string) *xdrBuilder {
	b.ints(symSXP)
	return b.char(name)
}

// altrepInfo writes the class/package/type pairlist that opens an ALTREP
// node.
func (b *xdrBuilder) altrepInfo(class string, typ int32) *xdrBuilder {
	b.ints(altrepSXP)
	b.ints(listSXP).sym(class)
	b.ints(listSXP).sym("base")
	b.ints(listSXP).ints(intSXP, 1, typ)
	return b.ints(nilValueSXP)
}

func roundTrip(t *testing.T, n rexp.Node, format Format) rexp.Node {
	var buf bytes.Buffer
	require.NoError(t, EncodeWithOptions(n, &buf, &EncodeOptions{Format: format}))
	out, err := Decode(&buf)
	require.NoError(t, err)
	if !format.Textual() {
		require.Equal(t, 0, buf.Len())
	}
	return out
}

var allFormats = []Format{FormatXDR, FormatNative, FormatASCII}
