package game

import (
	"strconv"
	"strings"

	"github.com/tablerock/holdem/poker"
)

// dealAction hands out the hole cards. Legal once both blinds are in
// and nothing else has happened in the hand.
type dealAction struct {
	baseAction
}

func newDealAction(g *TexasHoldemGame) *dealAction { return &dealAction{baseAction{game: g}} }

func (a *dealAction) Type() ActionType { return ActionDeal }

func (a *dealAction) Verify(p *Player) (Range, error) {
	if !a.game.Exists(p.Address) {
		return Range{}, PlayerNotFoundError{Address: p.Address}
	}
	if a.game.currentRound != RoundPreflop {
		return Range{}, WrongRoundError{Action: ActionDeal, Round: a.game.currentRound, Msg: "can only deal during the preflop round"}
	}
	// The ante history also carries bookkeeping turns (new-hand, joins),
	// so check blind presence rather than the exact list.
	ante := a.game.GetActionsForRound(RoundAnte)
	if !hasActionType(ante, ActionSmallBlind) || !hasActionType(ante, ActionBigBlind) {
		return Range{}, WrongRoundError{Action: ActionDeal, Round: a.game.currentRound, Msg: "both blinds must be posted before dealing"}
	}
	if hasActionType(a.game.GetActionsForRound(RoundPreflop), ActionDeal) || a.game.anyPlayerHasCards() {
		return Range{}, WrongRoundError{Action: ActionDeal, Round: a.game.currentRound, Msg: "cards have already been dealt"}
	}
	if a.game.PlayerCount() < 2 {
		return Range{}, SeatError{Msg: "not enough players to deal"}
	}
	return Range{}, nil
}

func (a *dealAction) Execute(p *Player, index int, amount Chips) error {
	if _, err := a.Verify(p); err != nil {
		return err
	}
	if err := a.game.deal(); err != nil {
		return err
	}
	a.record(p, ActionDeal, index, 0)
	return nil
}

// newHandAction resets the table for the next hand. The data payload
// must carry either a full deck ("deck=AC-2C-...") or 52 shuffle seeds
// ("seed=18-3-...").
type newHandAction struct {
	baseAction
	data string
}

func newNewHandAction(g *TexasHoldemGame, data string) *newHandAction {
	return &newHandAction{baseAction: baseAction{game: g}, data: data}
}

func (a *newHandAction) Type() ActionType { return ActionNewHand }

func (a *newHandAction) Verify(p *Player) (Range, error) {
	if a.game.currentRound != RoundEnd {
		return Range{}, WrongRoundError{Action: ActionNewHand, Round: a.game.currentRound, Msg: "hand has not finished"}
	}
	_, hasDeck := parseDataValue(a.data, "deck")
	_, hasSeed := parseDataValue(a.data, "seed")
	if !hasDeck && !hasSeed {
		return Range{}, MalformedDataError{Msg: "either 'deck' or 'seed' parameter is required in the data"}
	}
	return Range{}, nil
}

func (a *newHandAction) Execute(p *Player, index int, amount Chips) error {
	if _, err := a.Verify(p); err != nil {
		return err
	}

	deckStr, hasDeck := parseDataValue(a.data, "deck")
	if !hasDeck {
		seedStr, _ := parseDataValue(a.data, "seed")
		tokens := strings.Split(seedStr, "-")
		seeds := make([]int64, 0, len(tokens))
		for _, token := range tokens {
			n, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				return MalformedDataError{Msg: "seed must contain exactly 52 numbers separated by dashes"}
			}
			seeds = append(seeds, n)
		}
		if len(seeds) != 52 {
			return MalformedDataError{Msg: "seed must contain exactly 52 numbers separated by dashes"}
		}
		deck, err := poker.NewDeckFromSeeds(seeds)
		if err != nil {
			return MalformedDataError{Msg: err.Error()}
		}
		deckStr = deck.String()
	}

	if err := a.game.ReInit(deckStr); err != nil {
		return err
	}
	a.record(p, ActionNewHand, index, 0)
	return nil
}

// claimAction pays out a sit-and-go finishing place.
type claimAction struct {
	baseAction
}

func newClaimAction(g *TexasHoldemGame) *claimAction { return &claimAction{baseAction{game: g}} }

func (a *claimAction) Type() ActionType { return ActionClaim }

func (a *claimAction) Verify(p *Player) (Range, error) {
	if a.game.options.Type != GameTypeSitAndGo {
		return Range{}, WrongRoundError{Action: ActionClaim, Round: a.game.currentRound, Msg: "claim is not available for cash games"}
	}
	if a.game.currentRound != RoundEnd {
		return Range{}, WrongRoundError{Action: ActionClaim, Round: a.game.currentRound, Msg: "can only claim after the game ends"}
	}
	result := a.game.findResult(p.Address)
	if result == nil || result.Payout == 0 {
		return Range{}, MalformedDataError{Msg: "no winnings to claim for this player"}
	}
	if result.Claimed {
		return Range{}, MalformedDataError{Msg: "winnings already claimed"}
	}
	return Range{MinAmount: result.Payout, MaxAmount: result.Payout}, nil
}

func (a *claimAction) Execute(p *Player, index int, amount Chips) error {
	r, err := a.Verify(p)
	if err != nil {
		return err
	}
	result := a.game.findResult(p.Address)
	result.Claimed = true
	a.record(p, ActionClaim, index, r.MaxAmount)
	return nil
}
