package game

// PayoutManager computes sit-and-go prize distribution from a fixed
// prize pool. The standard single-table structure pays the top three
// places 60/30/10; heads-up games are winner-take-all.
type PayoutManager struct {
	buyIn      Chips
	numPlayers int
}

func NewPayoutManager(buyIn Chips, numPlayers int) *PayoutManager {
	return &PayoutManager{buyIn: buyIn, numPlayers: numPlayers}
}

func (pm *PayoutManager) PrizePool() Chips {
	return pm.buyIn * Chips(pm.numPlayers)
}

// Payout returns the prize for a finishing place, 0 for places out of
// the money. Integer math truncates; the winner's share absorbs the
// remainder so the pool always pays out exactly.
func (pm *PayoutManager) Payout(place int) Chips {
	pool := pm.PrizePool()
	if pm.numPlayers <= 2 {
		if place == 1 {
			return pool
		}
		return 0
	}

	second := pool * 30 / 100
	third := pool * 10 / 100
	switch place {
	case 1:
		return pool - second - third
	case 2:
		return second
	case 3:
		return third
	}
	return 0
}
