package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapNilIsEmpty(t *testing.T) {
	out := Map([]int(nil), func(i int) int { return i })
	assert.NotNil(t, out)
	assert.Empty(t, out)

	assert.Equal(t, []string{"1", "2"}, Map([]int{1, 2}, func(i int) string { return string(rune('0' + i)) }))
}

func TestUniqueKeepsOrder(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, Unique([]uint{3, 1, 3, 2, 1}))
}

func TestDifference(t *testing.T) {
	assert.Equal(t, []uint{1, 4}, Difference([]uint{1, 2, 3, 4}, []uint{2, 3, 9}))
	assert.Empty(t, Difference([]uint{1}, []uint{1}))
}

func TestReduce(t *testing.T) {
	type p struct {
		ID  uint
		Qty int
	}
	items := []p{{1, 2}, {2, 3}}

	assert.Equal(t, 5, Reduce(items, 0, func(acc int, x p) int { return acc + x.Qty }))
}
