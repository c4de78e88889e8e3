package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueInts(t *testing.T) {
	assert.Equal(t, []int{1, 3, 7}, UniqueInts([]int{7, 3, 1, 3, 7, 7}))
	assert.Equal(t, []int{4}, UniqueInts([]int{4, 4}))
	assert.Nil(t, UniqueInts(nil))
	assert.Empty(t, UniqueInts([]int{}))
}
