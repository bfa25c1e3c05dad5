package game

import (
	"strconv"
	"strings"
)

// parseDataValue pulls "key=value" out of an action's data payload.
// Payloads are ampersand-delimited, query-string style.
func parseDataValue(data, key string) (string, bool) {
	for _, pair := range strings.Split(data, "&") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 && kv[0] == key {
			return kv[1], true
		}
	}
	return "", false
}

// joinAction seats a new player. The optional data payload requests a
// specific seat ("seat=3"); without it the lowest empty seat is used.
type joinAction struct {
	baseAction
	data string
}

func newJoinAction(g *TexasHoldemGame, data string) *joinAction {
	return &joinAction{baseAction: baseAction{game: g}, data: data}
}

func (a *joinAction) Type() ActionType { return ActionJoin }

func (a *joinAction) Verify(p *Player) (Range, error) {
	if a.game.Exists(p.Address) {
		return Range{}, DuplicatePlayerError{Address: p.Address}
	}
	if a.game.FindNextEmptySeat() == 0 {
		return Range{}, SeatError{Msg: "table is full"}
	}
	return Range{MinAmount: a.game.options.MinBuyIn, MaxAmount: a.game.options.MaxBuyIn}, nil
}

func (a *joinAction) Execute(p *Player, index int, amount Chips) error {
	r, err := a.Verify(p)
	if err != nil {
		return err
	}
	if amount < r.MinAmount || amount > r.MaxAmount {
		return BuyInError{Amount: amount, Min: r.MinAmount, Max: r.MaxAmount}
	}

	seat := a.game.FindNextEmptySeat()
	if value, ok := parseDataValue(a.data, "seat"); ok {
		requested, err := strconv.Atoi(value)
		if err != nil {
			return MalformedDataError{Msg: "seat must be a number"}
		}
		seat = requested
	}

	p.Chips = amount
	if err := a.game.joinAtSeat(p, seat); err != nil {
		return err
	}
	a.game.dealerManager.HandlePlayerJoin(seat)

	a.game.addTurnAtSeat(Turn{
		PlayerID: p.Address,
		Action:   ActionJoin,
		Amount:   amount,
		Index:    index,
	}, seat)
	return nil
}

// leaveAction removes a player and cashes out the stack. Leaving with
// a live hand forfeits it first, so the pot accounting and turn order
// stay coherent for the players who remain.
type leaveAction struct {
	baseAction
}

func newLeaveAction(g *TexasHoldemGame) *leaveAction { return &leaveAction{baseAction{game: g}} }

func (a *leaveAction) Type() ActionType { return ActionLeave }

func (a *leaveAction) Verify(p *Player) (Range, error) {
	if !a.game.Exists(p.Address) {
		return Range{}, PlayerNotFoundError{Address: p.Address}
	}
	return Range{MinAmount: p.Chips, MaxAmount: p.Chips}, nil
}

func (a *leaveAction) Execute(p *Player, index int, amount Chips) error {
	if _, err := a.Verify(p); err != nil {
		return err
	}
	seat := a.game.PlayerSeat(p.Address)

	inLiveHand := a.game.isHandInProgress() &&
		p.Status != PlayerStatusFolded &&
		p.Status != PlayerStatusSittingOut &&
		p.Status != PlayerStatusBusted
	if inLiveHand {
		p.UpdateStatus(PlayerStatusFolded)
		a.game.addTurnAtSeat(Turn{
			PlayerID: p.Address,
			Action:   ActionFold,
			Amount:   0,
			Index:    index,
		}, seat)
		index++
	}

	a.game.dealer = a.game.dealerManager.HandlePlayerLeave(seat)
	if err := a.game.removePlayer(p.Address); err != nil {
		return err
	}

	a.game.addTurnAtSeat(Turn{
		PlayerID: p.Address,
		Action:   ActionLeave,
		Amount:   p.Chips,
		Index:    index,
	}, seat)
	return nil
}

// sitInAction returns a sitting-out player to action for the next
// hand.
type sitInAction struct {
	baseAction
}

func newSitInAction(g *TexasHoldemGame) *sitInAction { return &sitInAction{baseAction{game: g}} }

func (a *sitInAction) Type() ActionType { return ActionSitIn }

func (a *sitInAction) Verify(p *Player) (Range, error) {
	if !a.game.Exists(p.Address) {
		return Range{}, PlayerNotFoundError{Address: p.Address}
	}
	if p.Status != PlayerStatusSittingOut {
		return Range{}, InvalidStatusError{PlayerID: p.Address, Status: p.Status, Action: ActionSitIn}
	}
	return Range{}, nil
}

func (a *sitInAction) Execute(p *Player, index int, amount Chips) error {
	if _, err := a.Verify(p); err != nil {
		return err
	}
	p.UpdateStatus(PlayerStatusActive)
	a.record(p, ActionSitIn, index, 0)
	return nil
}

// sitOutAction withdraws a player from future hands without giving up
// the seat. Not legal while holding a live hand; fold or leave first.
type sitOutAction struct {
	baseAction
}

func newSitOutAction(g *TexasHoldemGame) *sitOutAction { return &sitOutAction{baseAction{game: g}} }

func (a *sitOutAction) Type() ActionType { return ActionSitOut }

func (a *sitOutAction) Verify(p *Player) (Range, error) {
	if !a.game.Exists(p.Address) {
		return Range{}, PlayerNotFoundError{Address: p.Address}
	}
	if p.Status == PlayerStatusSittingOut {
		return Range{}, InvalidStatusError{PlayerID: p.Address, Status: p.Status, Action: ActionSitOut}
	}
	if a.game.isHandInProgress() && p.InHand() {
		return Range{}, InvalidStatusError{PlayerID: p.Address, Status: p.Status, Action: ActionSitOut}
	}
	return Range{}, nil
}

func (a *sitOutAction) Execute(p *Player, index int, amount Chips) error {
	if _, err := a.Verify(p); err != nil {
		return err
	}
	p.UpdateStatus(PlayerStatusSittingOut)
	a.record(p, ActionSitOut, index, 0)
	return nil
}

// topUpAction adds chips to a seated player's stack between hands, up
// to the table maximum. A busted player who tops up is back in as
// sitting out.
type topUpAction struct {
	baseAction
}

func newTopUpAction(g *TexasHoldemGame) *topUpAction { return &topUpAction{baseAction{game: g}} }

func (a *topUpAction) Type() ActionType { return ActionTopUp }

func (a *topUpAction) Verify(p *Player) (Range, error) {
	if !a.game.Exists(p.Address) {
		return Range{}, PlayerNotFoundError{Address: p.Address}
	}
	switch p.Status {
	case PlayerStatusActive, PlayerStatusAllIn, PlayerStatusShowing:
		if a.game.isHandInProgress() {
			return Range{}, InvalidStatusError{PlayerID: p.Address, Status: p.Status, Action: ActionTopUp}
		}
	}
	if p.Chips >= a.game.options.MaxBuyIn {
		return Range{}, BuyInError{Amount: 0, Min: 0, Max: 0}
	}
	maxTopUp := a.game.options.MaxBuyIn - p.Chips
	min := a.game.options.BigBlind
	if maxTopUp < min {
		min = 1
	}
	return Range{MinAmount: min, MaxAmount: maxTopUp}, nil
}

func (a *topUpAction) Execute(p *Player, index int, amount Chips) error {
	r, err := a.Verify(p)
	if err != nil {
		return err
	}
	if amount < r.MinAmount || amount > r.MaxAmount {
		return BuyInError{Amount: amount, Min: r.MinAmount, Max: r.MaxAmount}
	}
	p.Credit(amount)
	if p.Status == PlayerStatusBusted {
		p.UpdateStatus(PlayerStatusSittingOut)
	}
	a.record(p, ActionTopUp, index, amount)
	return nil
}
