package game

import (
	"github.com/tablerock/holdem/logging"
)

// PerformAction validates and applies one action. index must be the
// exact next sequence index (replay protection), timestamp is the
// ledger time of the action. On success the round advances as far as
// the closure rules allow; on failure the game state is untouched.
func (g *TexasHoldemGame) PerformAction(address string, actionType ActionType, index int, amount Chips, data string, timestamp int64) error {
	if expected := g.ActionIndex(); index != expected {
		return InvalidActionIndexError{Got: index, Want: expected}
	}
	if timestamp <= 0 {
		return MalformedDataError{Msg: "action timestamp is required"}
	}
	g.actionTimestamp = timestamp

	holdemLogger.Debug().
		Str(logging.TableKey, g.address).
		Str(logging.PlayerKey, address).
		Str(logging.ActionKey, string(actionType)).
		Str(logging.RoundKey, g.currentRound.String()).
		Int(logging.ActionIdxKey, index).
		Uint64("amount", amount).
		Msg("Performing action")

	// Table-management actions never advance the round.
	switch actionType {
	case ActionJoin:
		player := NewPlayer(address, 0, PlayerStatusSittingOut)
		return newJoinAction(g, data).Execute(player, index, amount)
	case ActionLeave:
		player, err := g.GetPlayer(address)
		if err != nil {
			return err
		}
		if err := newLeaveAction(g).Execute(player, index, amount); err != nil {
			return err
		}
		// A forfeited hand can leave a lone live player behind.
		g.advanceRounds()
		return nil
	case ActionSitIn:
		player, err := g.GetPlayer(address)
		if err != nil {
			return err
		}
		return newSitInAction(g).Execute(player, index, amount)
	case ActionSitOut:
		player, err := g.GetPlayer(address)
		if err != nil {
			return err
		}
		return newSitOutAction(g).Execute(player, index, amount)
	case ActionTopUp:
		player, err := g.GetPlayer(address)
		if err != nil {
			return err
		}
		return newTopUpAction(g).Execute(player, index, amount)
	case ActionDeal:
		player, err := g.GetPlayer(address)
		if err != nil {
			return err
		}
		return newDealAction(g).Execute(player, index, amount)
	case ActionNewHand:
		player, err := g.GetPlayer(address)
		if err != nil {
			return err
		}
		return newNewHandAction(g, data).Execute(player, index, amount)
	case ActionClaim:
		player, err := g.GetPlayer(address)
		if err != nil {
			return err
		}
		return newClaimAction(g).Execute(player, index, amount)
	}

	player, err := g.GetPlayer(address)
	if err != nil {
		return err
	}

	var action Action
	switch actionType {
	case ActionSmallBlind:
		action = newSmallBlindAction(g)
	case ActionBigBlind:
		action = newBigBlindAction(g)
	case ActionFold:
		action = newFoldAction(g)
	case ActionCheck:
		action = newCheckAction(g)
	case ActionBet:
		action = newBetAction(g)
	case ActionCall:
		action = newCallAction(g)
	case ActionRaise:
		action = newRaiseAction(g)
	case ActionAllIn:
		action = newAllInAction(g)
	case ActionShow:
		action = newShowAction(g)
	case ActionMuck:
		action = newMuckAction(g)
	default:
		return MalformedDataError{Msg: "unknown action type: " + string(actionType)}
	}

	if err := action.Execute(player, index, amount); err != nil {
		return err
	}

	g.advanceRounds()
	return nil
}

// advanceRounds pushes the round pointer forward while the closure
// rules say the current round is done. Bounded because a hand has a
// fixed number of rounds.
func (g *TexasHoldemGame) advanceRounds() {
	for i := 0; i < 6; i++ {
		if g.currentRound == RoundEnd {
			return
		}
		if !g.hasRoundEnded(g.currentRound) {
			return
		}
		g.nextRound()
	}
}

func (g *TexasHoldemGame) findResult(address string) *Result {
	for _, result := range g.results {
		if equalAddress(result.PlayerID, address) {
			return result
		}
	}
	return nil
}

// Results returns the sit-and-go finishing records, best place last.
func (g *TexasHoldemGame) Results() []*Result {
	out := make([]*Result, len(g.results))
	copy(out, g.results)
	return out
}

// GetLegalActions enumerates every action the address could perform
// right now, with the legal amount bounds and the sequence index each
// must carry.
func (g *TexasHoldemGame) GetLegalActions(address string) []LegalAction {
	index := g.ActionIndex()
	legal := []LegalAction{}

	probe := func(action Action, p *Player) {
		r, err := action.Verify(p)
		if err != nil {
			return
		}
		legal = append(legal, LegalAction{
			Action: action.Type(),
			Min:    r.MinAmount,
			Max:    r.MaxAmount,
			Index:  index,
		})
	}

	player, err := g.GetPlayer(address)
	if err != nil {
		probe(newJoinAction(g, ""), NewPlayer(address, 0, PlayerStatusSittingOut))
		return legal
	}

	actions := []Action{
		newSmallBlindAction(g),
		newBigBlindAction(g),
		newFoldAction(g),
		newCheckAction(g),
		newCallAction(g),
		newBetAction(g),
		newRaiseAction(g),
		newAllInAction(g),
		newShowAction(g),
		newMuckAction(g),
		newDealAction(g),
		newLeaveAction(g),
		newSitInAction(g),
		newSitOutAction(g),
		newTopUpAction(g),
		newNewHandAction(g, "deck="),
		newClaimAction(g),
	}
	for _, action := range actions {
		probe(action, player)
	}
	return legal
}
