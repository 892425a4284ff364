package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupplyAtRate(t *testing.T) {
	supply := SupplyAtRate(450, 180)
	assert.False(t, supply.Infinite)
	assert.InDelta(t, 2.5, supply.Days, 1e-6)
	assert.Equal(t, "2.5", supply.String())
}

func TestSupplyAtRateZeroConsumption(t *testing.T) {
	supply := SupplyAtRate(450, 0)
	assert.True(t, supply.Infinite, "zero consumption is an explicit marker, not an error")
	assert.Equal(t, "infinite", supply.String())
	assert.False(t, supply.Below(1e12), "infinite supply is never below a threshold")
}

func TestSupplyBelow(t *testing.T) {
	assert.True(t, SupplyAtRate(96, 30).Below(5))
	assert.False(t, SupplyAtRate(300, 30).Below(5))
	assert.False(t, SupplyAtRate(150, 30).Below(5), "exactly at threshold is not below")
}
