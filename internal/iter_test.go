package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"A": 1}
	b := map[string]int{"B": 2}

	got := map[string]int{}
	for key, val := range IterSeq2Concat(maps.All(a), maps.All(b)) {
		got[key] = val
	}
	assert.Equal(map[string]int{"A": 1, "B": 2}, got)

	count := 0
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestIterSeq2Sorted(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"C": 3, "A": 1}
	b := map[string]int{"B": 2, "A": 4}

	var keys []string
	var vals []int
	for key, val := range IterSeq2Sorted(IterSeq2Concat(maps.All(a), maps.All(b))) {
		keys = append(keys, key)
		vals = append(vals, val)
	}

	assert.Equal([]string{"A", "B", "C"}, keys)
	assert.Equal([]int{4, 2, 3}, vals)
}
