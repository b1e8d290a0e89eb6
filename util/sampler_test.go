package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleIndices(t *testing.T) {
	assert.Nil(t, SampleIndices(0, 10))
	assert.Nil(t, SampleIndices(10, 0))
	assert.Equal(t, []int{0, 1}, SampleIndices(2, 10))

	indices := SampleIndices(100, 10)
	assert.Equal(t, 10, len(indices))
	uniqMap := make(map[int]bool)
	for _, i := range indices {
		assert.True(t, i >= 0 && i < 100)
		uniqMap[i] = true
	}
	assert.Equal(t, 10, len(uniqMap))
}

func TestSampleStrings(t *testing.T) {
	in := []string{"a.rds", "b.rds", "c.rds", "d.rds"}
	assert.Equal(t, in, SampleStrings(in, 4))

	out := SampleStrings(in, 2)
	assert.Len(t, out, 2)
	pos := make(map[string]int)
	for i, s := range in {
		pos[s] = i
	}
	assert.True(t, pos[out[0]] < pos[out[1]])
}
