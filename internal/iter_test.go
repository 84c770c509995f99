package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeqFilter(t *testing.T) {
	assert := assert.New(t)

	even := IterSeqFilter(slices.Values([]int{1, 2, 3, 4, 5, 6}), func(v int) bool { return v%2 == 0 })
	assert.Equal([]int{2, 4, 6}, slices.Collect(even))

	for v := range even {
		assert.Equal(2, v)
		break
	}
}

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeq2Concat(slices.All([]string{"a", "b"}), slices.All([]string{"c"}))
	got := map[int][]string{}
	for n, s := range seq {
		got[n] = append(got[n], s)
	}
	assert.Equal([]int{0, 1}, slices.Sorted(maps.Keys(got)))
	assert.Equal([]string{"a", "c"}, got[0])
	assert.Equal([]string{"b"}, got[1])

	count := 0
	for range seq {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}
