package rwire

import (
	"bytes"
	"math"
	"testing"

	"rconv/rexp"

	"github.com/stretchr/testify/require"
)

func testModel() rexp.Node {
	coef := rexp.NewDoubleVector(
		[]float64{1.5, -0.25},
		rexp.Attr("names", rexp.NewStringVector(rexp.NewStrings("(Intercept)", "x"))),
	)
	terms := rexp.NewCall(rexp.NewSymbol("~"), rexp.Chain{
		{Value: rexp.NewSymbol("y")},
		{Value: rexp.NewSymbol("x")},
	}, rexp.Attr("class", rexp.NewStringVector(rexp.NewStrings("formula"))))
	return rexp.NewNamedList(rexp.Chain{
		rexp.Attr("coefficients", coef),
		rexp.Attr("residuals", rexp.NewDoubleVector([]float64{0.1, rexp.NAReal(), math.NaN(), math.Inf(-1)})),
		rexp.Attr("rank", rexp.NewIntegerVector([]int32{2})),
		rexp.Attr("converged", rexp.NewLogicalVector([]int32{rexp.LogicalTrue, rexp.NALogical})),
		rexp.Attr("labels", rexp.NewStringVector([]rexp.String{
			rexp.NewString("a b\n\"c\""),
			rexp.NAString,
			rexp.NewString(""),
			rexp.NewString("naïve"),
		})),
		rexp.Attr("group", rexp.NewFactor([]int32{1, 2, rexp.NAInteger, 1}, []string{"lo", "hi"})),
		rexp.Attr("roots", rexp.NewComplexVector([]complex128{complex(1, -1), complex(rexp.NAReal(), 0)})),
		rexp.Attr("blob", rexp.NewRawVector([]byte{0x00, 0x7f, 0xff})),
		rexp.Attr("terms", terms),
		rexp.Attr("nothing", rexp.Nil),
		rexp.Attr("exprs", &rexp.ExpressionVector{Elems: []rexp.Node{rexp.NewSymbol("x"), terms}}),
	}, rexp.Attr("class", rexp.NewStringVector(rexp.NewStrings("lm"))))
}

func TestEncode_RoundTrip(t *testing.T) {
	model := testModel()
	for _, format := range allFormats {
		t.Run(format.String(), func(t *testing.T) {
			out := roundTrip(t, model, format)
			require.True(t, rexp.Equal(model, out))

			v, err := rexp.Element(out, "group", false)
			require.NoError(t, err)
			level, ok, err := rexp.FactorValue(v, 1)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "hi", level)
		})
	}
}

func TestEncode_RoundTripLanguage(t *testing.T) {
	env := &rexp.Environment{
		Enclosure: &rexp.SpecialValue{Which: rexp.GlobalEnv},
		HashTable: rexp.Nil,
	}
	body := rexp.NewCall(rexp.NewSymbol("+"), rexp.Chain{
		{Value: rexp.NewSymbol("x")},
		{Value: rexp.NewDoubleVector([]float64{1})},
	})
	clo := &rexp.Closure{
		Env:     env,
		Formals: rexp.NewPairlist(rexp.Chain{rexp.Attr("x", &rexp.SpecialValue{Which: rexp.MissingArg})}),
		Body:    body,
	}
	env.Frame = rexp.NewPairlist(rexp.Chain{
		rexp.Attr("f", clo),
		rexp.Attr("self", env),
	})

	root := rexp.NewList([]rexp.Node{
		clo,
		&rexp.Promise{Env: rexp.Nil, Value: rexp.NewIntegerVector([]int32{2}), Expr: rexp.NewSymbol("y")},
		&rexp.Builtin{Name: "sum"},
		&rexp.Builtin{Special: true, Name: "if"},
		&rexp.Namespace{Info: rexp.NewStrings("stats", "4.3.1")},
		&rexp.SpecialValue{Which: rexp.BaseNamespace},
		&rexp.SpecialValue{Which: rexp.EmptyEnv},
		&rexp.SpecialValue{Which: rexp.BaseEnv},
		&rexp.SpecialValue{Which: rexp.UnboundValue},
		&rexp.S4Object{Object: rexp.Object{Attrs: rexp.Chain{
			rexp.Attr("slot", rexp.NewIntegerVector([]int32{1})),
			rexp.Attr("class", rexp.NewStringVector(rexp.NewStrings("Thing"))),
		}}},
	})

	for _, format := range allFormats {
		t.Run(format.String(), func(t *testing.T) {
			out := roundTrip(t, root, format)
			require.True(t, rexp.Equal(root, out))

			// the cycle survives: the frame binds the environment itself
			outClo := out.(*rexp.List).Elems[0].(*rexp.Closure)
			outEnv := outClo.Env.(*rexp.Environment)
			self, ok := outEnv.Frame.(*rexp.Pairlist).Entries.Get("self")
			require.True(t, ok)
			require.True(t, self == rexp.Node(outEnv))
		})
	}
}

func TestEncode_Textual(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(rexp.NewIntegerVector([]int32{1, rexp.NAInteger, -5}), &buf, true))
	require.Equal(t, "A\n3\n262913\n197888\n5\nUTF-8\n13\n3\n1\nNA\n-5\n", buf.String())

	buf.Reset()
	require.NoError(t, Encode(rexp.NewDoubleVector([]float64{0.1, rexp.NAReal(), math.NaN(), math.Inf(1), -2}), &buf, true))
	require.Equal(t, "A\n3\n262913\n197888\n5\nUTF-8\n14\n5\n0.1\nNA\nNaN\nInf\n-2\n", buf.String())

	buf.Reset()
	require.NoError(t, Encode(rexp.NewStringVector(rexp.NewStrings("a b\n\"é")), &buf, true))
	require.Equal(t, "A\n3\n262913\n197888\n5\nUTF-8\n16\n1\n32777\n7\na\\040b\\n\\\"\\303\\251\n", buf.String())

	buf.Reset()
	require.NoError(t, Encode(rexp.NewRawVector([]byte{0x01, 0xab}), &buf, true))
	require.Equal(t, "A\n3\n262913\n197888\n5\nUTF-8\n24\n2\n01\nab\n", buf.String())
}

func TestEncode_StringEncodings(t *testing.T) {
	v := rexp.NewStringVector([]rexp.String{
		rexp.NewString("plain"),
		rexp.NewString("é"),
		{Value: "\xe9", Valid: true, Encoding: rexp.EncodingLatin1},
		{Value: "\x00\x01", Valid: true, Encoding: rexp.EncodingBytes},
		{Value: "x", Valid: true, Encoding: rexp.EncodingNative},
		rexp.NAString,
	})
	var buf bytes.Buffer
	require.NoError(t, Encode(v, &buf, false))
	out, err := Decode(&buf)
	require.NoError(t, err)

	got := out.(*rexp.StringVector).Values
	require.Equal(t, rexp.EncodingASCII, got[0].Encoding)
	require.Equal(t, rexp.EncodingUTF8, got[1].Encoding)
	require.Equal(t, rexp.EncodingLatin1, got[2].Encoding)
	require.Equal(t, "\xe9", got[2].Value)
	require.Equal(t, rexp.EncodingBytes, got[3].Encoding)
	require.Equal(t, rexp.EncodingNative, got[4].Encoding)
	require.False(t, got[5].Valid)
}

func TestEncode_NAString(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(rexp.NewStringVector([]rexp.String{rexp.NewString("alpha"), rexp.NAString}), &buf, false))
	require.Equal(t, newXDR().ints(strSXP, 2).char("alpha").ints(0x00000009, -1).Bytes(), buf.Bytes())
}

func TestEncode_SharedSymbols(t *testing.T) {
	x := rexp.NewSymbol("x")
	root := rexp.NewList([]rexp.Node{x, rexp.NewSymbol("x"), x})
	var buf bytes.Buffer
	require.NoError(t, Encode(root, &buf, false))
	require.Equal(t, newXDR().ints(vecSXP, 3).sym("x").ints(0x000001ff, 0x000001ff).Bytes(), buf.Bytes())

	out, err := Decode(&buf)
	require.NoError(t, err)
	elems := out.(*rexp.List).Elems
	require.True(t, elems[0] == elems[1])
	require.True(t, elems[1] == elems[2])
}

func TestEncode_RepeatedStringsAreLiteral(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(rexp.NewStringVector(rexp.NewStrings("x", "x")), &buf, false))
	require.Equal(t, newXDR().ints(strSXP, 2).char("x").char("x").Bytes(), buf.Bytes())
}

func TestEncode_EmptyPairlist(t *testing.T) {
	out := roundTrip(t, rexp.NewPairlist(nil), FormatXDR)
	require.Equal(t, rexp.KindNull, out.Kind())

	var buf bytes.Buffer
	err := Encode(rexp.NewPairlist(nil, rexp.Attr("a", rexp.Nil)), &buf, false)
	require.Error(t, err)
}

func TestEncode_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Encode(testModel(), &a, false))
	require.NoError(t, Encode(testModel(), &b, false))
	require.Equal(t, a.Bytes(), b.Bytes())
}

func TestEncode_Options(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeWithOptions(rexp.Nil, &buf, &EncodeOptions{
		Format:        FormatNative,
		Version:       2,
		WriterVersion: RVersion(3, 6, 3),
	}))
	_, h, err := DecodeWithHeader(&buf)
	require.NoError(t, err)
	require.Equal(t, FormatNative, h.Format)
	require.EqualValues(t, 2, h.Version)
	require.Equal(t, "3.6.3", UnpackRVersion(h.WriterVersion))

	require.Error(t, EncodeWithOptions(rexp.Nil, &buf, &EncodeOptions{Version: 4}))
	require.Error(t, EncodeWithOptions(rexp.Nil, &buf, &EncodeOptions{Format: 'Q'}))
}

func TestParseFormat(t *testing.T) {
	for in, expected := range map[string]Format{
		"xdr":    FormatXDR,
		"Binary": FormatXDR,
		"ascii":  FormatASCII,
		"text":   FormatASCII,
		"native": FormatNative,
	} {
		f, err := ParseFormat(in)
		require.NoError(t, err)
		require.Equal(t, expected, f)
	}
	_, err := ParseFormat("yaml")
	require.Error(t, err)
}
