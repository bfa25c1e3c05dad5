package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayoutHeadsUpWinnerTakesAll(t *testing.T) {
	pm := NewPayoutManager(100, 2)
	assert.Equal(t, Chips(200), pm.PrizePool())
	assert.Equal(t, Chips(200), pm.Payout(1))
	assert.Equal(t, Chips(0), pm.Payout(2))
}

func TestPayoutTopThreePlaces(t *testing.T) {
	pm := NewPayoutManager(100, 9)
	assert.Equal(t, Chips(900), pm.PrizePool())
	assert.Equal(t, Chips(540), pm.Payout(1))
	assert.Equal(t, Chips(270), pm.Payout(2))
	assert.Equal(t, Chips(90), pm.Payout(3))
	assert.Equal(t, Chips(0), pm.Payout(4))
	assert.Equal(t, Chips(0), pm.Payout(9))
}

func TestPayoutPoolPaysOutExactly(t *testing.T) {
	// 3 * 33 = 99 does not divide evenly into 60/30/10; the winner's
	// share absorbs the truncation remainder.
	pm := NewPayoutManager(33, 3)
	total := pm.Payout(1) + pm.Payout(2) + pm.Payout(3)
	assert.Equal(t, pm.PrizePool(), total)
}
