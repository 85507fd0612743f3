package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayoutFor(t *testing.T) {
	assert.Equal(t, 0, PayoutFor(0))
	assert.Equal(t, 600, PayoutFor(1))
	assert.Equal(t, 1200, PayoutFor(2))
	assert.Equal(t, 1800, PayoutFor(3))
	assert.Equal(t, 2800, PayoutFor(4))
}

func TestPayoutFor_ClampsUnknownTiers(t *testing.T) {
	assert.Equal(t, 0, PayoutFor(-3))
	assert.Equal(t, 2800, PayoutFor(99))
}

func TestValidAssignment(t *testing.T) {
	for tier := MinTier; tier <= MaxAssignableTier; tier++ {
		assert.True(t, ValidAssignment(tier))
	}
	assert.False(t, ValidAssignment(-1))
	// Tier 4 is reachable only through the payout table, not assignment.
	assert.False(t, ValidAssignment(4))
}
