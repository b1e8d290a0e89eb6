package rexp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testModel() *List {
	return NewNamedList(Chain{
		Attr("coefficients", NewDoubleVector(
			[]float64{1.5, -0.25},
			Attr("names", NewStringVector(NewStrings("(Intercept)", "x"))),
		)),
		Attr("rank", NewIntegerVector([]int32{2})),
		Attr("method", NewStringVector(NewStrings("qr"))),
		Attr("species", NewFactor([]int32{1, 2, NAInteger, 2}, []string{"setosa", "virginica"})),
	}, Attr("class", NewStringVector(NewStrings("lm"))))
}

func TestAttribute(t *testing.T) {
	m := testModel()

	cls, err := Attribute(m, "class", false)
	require.NoError(t, err)
	require.Equal(t, []String{NewString("lm")}, cls.(*StringVector).Values)

	_, err = Attribute(m, "dim", false)
	require.Error(t, err)
	mae, ok := err.(*MissingAttributeError)
	require.True(t, ok)
	require.Equal(t, "dim", mae.Name)
	require.False(t, mae.Element)

	dim, err := Attribute(m, "dim", true)
	require.NoError(t, err)
	require.Nil(t, dim)
}

func TestAttribute_FirstMatchWins(t *testing.T) {
	v := NewIntegerVector([]int32{1},
		Attr("tag", NewStringVector(NewStrings("first"))),
		Attr("tag", NewStringVector(NewStrings("second"))),
	)
	a, err := Attribute(v, "tag", false)
	require.NoError(t, err)
	s, err := ScalarString(a)
	require.NoError(t, err)
	require.Equal(t, "first", s)
}

func TestElement(t *testing.T) {
	m := testModel()

	rank, err := Element(m, "rank", false)
	require.NoError(t, err)
	r, err := ScalarInt(rank)
	require.NoError(t, err)
	require.EqualValues(t, 2, r)

	_, err = Element(m, "missingName", false)
	require.Error(t, err)
	mae, ok := err.(*MissingAttributeError)
	require.True(t, ok)
	require.True(t, mae.Element)

	missing, err := Element(m, "missingName", true)
	require.NoError(t, err)
	require.Nil(t, missing)

	// no partial matching
	_, err = Element(m, "coef", false)
	require.Error(t, err)

	coefs, err := Element(m, "coefficients", false)
	require.NoError(t, err)
	slope, err := Element(coefs, "x", false)
	require.NoError(t, err)
	d, err := ScalarDouble(slope)
	require.NoError(t, err)
	require.Equal(t, -0.25, d)
	require.Nil(t, slope.Attributes())
}

func TestElementAt(t *testing.T) {
	m := testModel()
	e, err := ElementAt(m, 2)
	require.NoError(t, err)
	s, err := ScalarString(e)
	require.NoError(t, err)
	require.Equal(t, "qr", s)

	_, err = ElementAt(m, 4)
	require.Error(t, err)
	_, ok := err.(*IllegalStateError)
	require.True(t, ok)

	pl := NewPairlist(Chain{
		Attr("a", NewIntegerVector([]int32{1})),
		Attr("", NewIntegerVector([]int32{2})),
	})
	e, err = ElementAt(pl, 1)
	require.NoError(t, err)
	require.Equal(t, []int32{2}, e.(*IntegerVector).Values)
	e, err = Element(pl, "a", false)
	require.NoError(t, err)
	require.Equal(t, []int32{1}, e.(*IntegerVector).Values)
}

func TestFactorLevels(t *testing.T) {
	m := testModel()
	f, err := Element(m, "species", false)
	require.NoError(t, err)
	require.True(t, IsFactor(f))

	levels, err := FactorLevels(f)
	require.NoError(t, err)
	require.Equal(t, []string{"setosa", "virginica"}, levels)

	label, ok, err := FactorValue(f, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "virginica", label)

	_, ok, err = FactorValue(f, 2)
	require.NoError(t, err)
	require.False(t, ok)

	rank, err := Element(m, "rank", false)
	require.NoError(t, err)
	_, err = FactorLevels(rank)
	require.Error(t, err)
	_, ok = err.(*IllegalStateError)
	require.True(t, ok)
}

func TestScalar(t *testing.T) {
	v, err := Scalar(NewDoubleVector([]float64{3}))
	require.NoError(t, err)
	require.Equal(t, 3.0, v)

	_, err = Scalar(NewDoubleVector([]float64{1, 2}))
	require.Error(t, err)
	_, ok := err.(*IllegalStateError)
	require.True(t, ok)

	_, err = ScalarString(NewStringVector([]String{NAString}))
	require.Error(t, err)

	d, err := ScalarDouble(NewIntegerVector([]int32{NAInteger}))
	require.NoError(t, err)
	require.True(t, IsNA(d))

	b, valid, err := ScalarLogical(NewLogicalVector([]int32{NALogical}))
	require.NoError(t, err)
	require.False(t, valid)
	require.False(t, b)
}

func TestBulkValues(t *testing.T) {
	dv := NewDoubleVector([]float64{1, 2, 3})
	vals, err := DoubleValues(dv)
	require.NoError(t, err)
	vals[0] = 100
	require.Equal(t, 1.0, dv.Values[0])

	_, err = IntegerValues(dv)
	require.Error(t, err)

	raw, err := RawBytes(NewRawVector([]byte{0xca, 0xfe}))
	require.NoError(t, err)
	require.Equal(t, []byte{0xca, 0xfe}, raw)
}

func TestClassAndDim(t *testing.T) {
	mat := NewDoubleVector([]float64{1, 2, 3, 4, 5, 6},
		Attr("dim", NewIntegerVector([]int32{2, 3})),
		Attr("class", NewStringVector([]String{NewString("matrix"), NAString, NewString("array")})),
	)
	require.Equal(t, []int32{2, 3}, Dim(mat))
	require.Equal(t, []string{"matrix", "array"}, Class(mat))
	require.True(t, Inherits(mat, "array"))
	require.False(t, Inherits(mat, "data.frame"))
}

func TestNil_IgnoresAttributes(t *testing.T) {
	null := Nil.(*Null)
	null.Attrs = Chain{Attr("class", NewStringVector(NewStrings("oops")))}
	null.Level = 3
	defer func() {
		null.Attrs = nil
		null.Level = 0
	}()

	require.Nil(t, Nil.Attributes())
	require.Equal(t, 0, Nil.(*Null).Levels())
	require.Empty(t, Class(Nil))
	_, err := Attribute(Nil, "class", false)
	require.IsType(t, &MissingAttributeError{}, err)
}
