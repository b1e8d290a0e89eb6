package rexp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNA(t *testing.T) {
	require.True(t, IsNA(NAReal()))
	require.False(t, IsNaN(NAReal()))
	require.True(t, IsNaN(math.NaN()))
	require.False(t, IsNA(math.NaN()))
	require.False(t, IsNA(1954))
	// the quieted form of the missing value is still missing
	require.True(t, IsNA(math.Float64frombits(0x7FF80000000007A2)))
}

func TestDoubleEqual(t *testing.T) {
	require.True(t, DoubleEqual(NAReal(), NAReal()))
	require.False(t, DoubleEqual(NAReal(), math.NaN()))
	require.True(t, DoubleEqual(math.NaN(), math.Float64frombits(0x7FF8000000000001)))
	require.True(t, DoubleEqual(math.Inf(-1), math.Inf(-1)))
	require.False(t, DoubleEqual(0, math.Copysign(0, -1)))
}

func TestEqual(t *testing.T) {
	a := testModel()
	b := testModel()
	require.True(t, Equal(a, b))

	b.Elems[1] = NewIntegerVector([]int32{3})
	require.False(t, Equal(a, b))

	s1 := NewStringVector([]String{NewString("a"), NAString})
	s2 := NewStringVector([]String{{Value: "a", Valid: true, Encoding: EncodingUTF8}, NAString})
	s3 := NewStringVector(NewStrings("a", "NA"))
	require.True(t, Equal(s1, s2))
	require.False(t, Equal(s1, s3))

	withAttrs := NewIntegerVector([]int32{1}, Attr("names", NewStringVector(NewStrings("x"))))
	require.False(t, Equal(withAttrs, NewIntegerVector([]int32{1})))

	// attribute order matters
	x := NewIntegerVector(nil, Attr("a", Nil), Attr("b", Nil))
	y := NewIntegerVector(nil, Attr("b", Nil), Attr("a", Nil))
	require.False(t, Equal(x, y))
}

func TestEqual_CyclicEnvironment(t *testing.T) {
	build := func() *Environment {
		env := &Environment{Enclosure: &SpecialValue{Which: GlobalEnv}, HashTable: Nil}
		env.Frame = NewPairlist(Chain{Attr("self", env)})
		return env
	}
	require.True(t, Equal(build(), build()))
}
