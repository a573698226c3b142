package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmptyLast(t *testing.T) {
	assert.True(t, IsEmpty([]int(nil)))
	assert.False(t, IsEmpty([]string{"a"}))

	v, ok := Last([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = Last([]int{})
	assert.False(t, ok)
}

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[string]int{"c": 1, "a": 2, "b": 3})
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Empty(t, SortedKeys(map[string]int{}))
}
