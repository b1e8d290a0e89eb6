package rexp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	var paths []string
	require.NoError(t, Walk(testModel(), func(path string, n Node) error {
		paths = append(paths, path)
		return nil
	}))
	require.Equal(t, []string{
		"$",
		"$@names",
		"$@class",
		"$$coefficients",
		"$$coefficients@names",
		"$$rank",
		"$$method",
		"$$species",
		"$$species@levels",
		"$$species@class",
	}, paths)
}

func TestWalk_SkipChildren(t *testing.T) {
	var count int
	require.NoError(t, Walk(testModel(), func(path string, n Node) error {
		count++
		if path == "$" {
			return SkipChildren
		}
		return nil
	}))
	require.Equal(t, 1, count)
}

func TestWalk_CyclicEnvironment(t *testing.T) {
	env := &Environment{Enclosure: Nil, HashTable: Nil}
	env.Frame = NewPairlist(Chain{Attr("self", env)})
	var count int
	require.NoError(t, Walk(env, func(path string, n Node) error {
		count++
		return nil
	}))
	// env, frame, enclosure, hashtab
	require.Equal(t, 4, count)
}
