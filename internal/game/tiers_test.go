package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionSizes(t *testing.T) {
	tests := []struct {
		n, priority int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{5, 2},
		{9, 3},
		{10, 4},
		{11, 4},
		{1000, 400},
	}
	for _, tt := range tests {
		tiers := Partition(pool(tt.n), 0.4)
		assert.Len(t, tiers.Priority, tt.priority, "n=%d", tt.n)
		assert.Len(t, tiers.Other, tt.n-tt.priority, "n=%d", tt.n)
	}
}

func TestPartitionProperties(t *testing.T) {
	for n := 1; n <= 200; n++ {
		p := pool(n)
		tiers := Partition(p, 0.4)

		assert.Equal(t, n, tiers.Len())
		assert.GreaterOrEqual(t, len(tiers.Priority), 1)

		maxPriority := tiers.Priority[len(tiers.Priority)-1].Score
		for _, w := range tiers.Other {
			assert.LessOrEqual(t, maxPriority, w.Score, "n=%d", n)
		}
	}
}

func TestPartitionFractionIsConfigurable(t *testing.T) {
	tiers := Partition(pool(10), 0.25)
	assert.Len(t, tiers.Priority, 2)

	tiers = Partition(pool(10), 1)
	assert.Len(t, tiers.Priority, 10)
	assert.Empty(t, tiers.Other)
}
