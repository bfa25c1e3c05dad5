package game

import (
	"sort"
)

type aggregatedBet struct {
	index    int
	playerID string
	amount   Chips
}

// BetManager folds a betting round's turns into per-player running
// totals. It is constructed fresh from the turn history every time bet
// state is needed; the aggregates are derived, never stored. Given the
// same turn set the aggregation is idempotent and order-independent
// because AddTurns sorts by turn index first.
type BetManager struct {
	bets       map[string]Chips
	turns      []TurnWithSeat
	aggregated []aggregatedBet
	bigBlind   Chips
}

// NewBetManager aggregates the given turns. bigBlind is the floor used
// by RaisedAmount when no meaningful raise delta exists yet.
func NewBetManager(turns []TurnWithSeat, bigBlind Chips) *BetManager {
	bm := &BetManager{
		bets:     make(map[string]Chips),
		bigBlind: bigBlind,
	}
	bm.AddTurns(turns)
	return bm
}

// Add records one turn. JOIN and LEAVE turns are skipped: their
// amounts are buy-in/cash-out values, not wagers.
func (bm *BetManager) Add(turn TurnWithSeat) {
	if turn.PlayerID == "" {
		return
	}
	if turn.Action == ActionJoin || turn.Action == ActionLeave {
		return
	}

	bm.bets[turn.PlayerID] += turn.Amount
	bm.turns = append(bm.turns, turn)

	for i := range bm.aggregated {
		if bm.aggregated[i].playerID == turn.PlayerID {
			bm.aggregated[i].amount += turn.Amount
			return
		}
	}
	bm.aggregated = append(bm.aggregated, aggregatedBet{
		index:    len(bm.aggregated),
		playerID: turn.PlayerID,
		amount:   turn.Amount,
	})
}

// AddTurns sorts the turns by index ascending before adding, so replay
// order is consistent regardless of the input ordering.
func (bm *BetManager) AddTurns(turns []TurnWithSeat) {
	sorted := make([]TurnWithSeat, len(turns))
	copy(sorted, turns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})
	for _, turn := range sorted {
		bm.Add(turn)
	}
}

// Count returns the number of distinct players with aggregated bets.
func (bm *BetManager) Count() int {
	return len(bm.aggregated)
}

// Current returns the aggregate of the player who made the most recent
// turn, 0 if there are none.
func (bm *BetManager) Current() Chips {
	if len(bm.turns) == 0 {
		return 0
	}
	last := bm.turns[len(bm.turns)-1]
	return bm.bets[last.PlayerID]
}

// Previous returns the aggregate of the player who made the second
// most recent turn, 0 if fewer than two turns exist.
func (bm *BetManager) Previous() Chips {
	if len(bm.turns) < 2 || len(bm.aggregated) < 2 {
		return 0
	}
	secondLast := bm.turns[len(bm.turns)-2]
	return bm.bets[secondLast.PlayerID]
}

// Delta is the size of the most recent raise: current minus previous,
// 0 if either is 0.
func (bm *BetManager) Delta() Chips {
	current := bm.Current()
	previous := bm.Previous()
	if current == 0 || previous == 0 {
		return 0
	}
	if current < previous {
		return 0
	}
	return current - previous
}

// LargestBet is the maximum aggregate across all players; this is the
// bet to call.
func (bm *BetManager) LargestBet() Chips {
	largest := Chips(0)
	for _, amount := range bm.bets {
		if amount > largest {
			largest = amount
		}
	}
	return largest
}

// TotalForPlayer returns the player's aggregate total, 0 if none.
func (bm *BetManager) TotalForPlayer(playerID string) Chips {
	return bm.bets[playerID]
}

// LastAggressor returns the player whose most recent turn set the bet,
// or "" if the last action was passive (call/check), if the same
// player already held the aggression, or if no turns exist.
func (bm *BetManager) LastAggressor() string {
	if len(bm.turns) == 0 {
		return ""
	}

	last := bm.turns[len(bm.turns)-1]
	switch last.Action {
	case ActionCall, ActionCheck:
		return ""
	case ActionBet, ActionRaise, ActionAllIn, ActionSmallBlind, ActionBigBlind:
		// A player cannot be their own aggressor: if they already had a
		// bet/raise earlier in the round, aggression is unchanged.
		for i := len(bm.turns) - 2; i >= 0; i-- {
			turn := bm.turns[i]
			if turn.Action == ActionBet || turn.Action == ActionRaise {
				if turn.PlayerID == last.PlayerID {
					return ""
				}
				return last.PlayerID
			}
		}
		return last.PlayerID
	}
	return ""
}

// LastAggressorBet returns the aggregate total of the most recently
// added player, 0 when no bets exist.
func (bm *BetManager) LastAggressorBet() Chips {
	if len(bm.aggregated) == 0 {
		return 0
	}
	return bm.aggregated[len(bm.aggregated)-1].amount
}

// RaisedAmount is the magnitude of the most recent raise over the one
// before it: the minimum legal re-raise increment. It falls back to
// the big blind when fewer than two aggregated bets exist, when only
// blinds have been posted, or when the computed delta is smaller than
// the big blind.
func (bm *BetManager) RaisedAmount() Chips {
	if len(bm.aggregated) < 2 {
		return bm.bigBlind
	}

	hasNonBlindActions := false
	for _, turn := range bm.turns {
		if turn.Action == ActionBet || turn.Action == ActionRaise {
			hasNonBlindActions = true
			break
		}
	}
	if !hasNonBlindActions {
		return bm.bigBlind
	}

	amounts := make([]Chips, 0, len(bm.aggregated))
	for _, bet := range bm.aggregated {
		amounts = append(amounts, bet.amount)
	}
	sort.Slice(amounts, func(i, j int) bool { return amounts[i] > amounts[j] })

	delta := amounts[0] - amounts[1]
	if delta < bm.bigBlind {
		return bm.bigBlind
	}
	return delta
}
