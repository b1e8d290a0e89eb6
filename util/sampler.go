package util

import "math/rand"

// SampleIndices returns count distinct indices into a slice of length
// sliceLen in random order. If count is at least sliceLen every index is
// returned in order.
func SampleIndices(sliceLen int, count int) []int {
	var out []int
	if sliceLen == 0 || count <= 0 {
		return out
	}

	if count >= sliceLen {
		for i := 0; i < sliceLen; i++ {
			out = append(out, i)
		}
		return out
	}

	return rand.Perm(sliceLen)[:count]
}

// SampleStrings picks count distinct entries of in, keeping their original
// relative order.
func SampleStrings(in []string, count int) []string {
	indices := SampleIndices(len(in), count)
	picked := make([]bool, len(in))
	for _, i := range indices {
		picked[i] = true
	}
	var out []string
	for i, s := range in {
		if picked[i] {
			out = append(out, s)
		}
	}
	return out
}
