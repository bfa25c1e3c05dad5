package game

// Action is one rule object of the engine. Verify answers "is this
// legal right now, and for what amounts" without mutating anything;
// Execute applies the state change and records the turn. Execute
// re-runs Verify so a rule object can never be driven into an illegal
// write.
type Action interface {
	Type() ActionType
	Verify(p *Player) (Range, error)
	Execute(p *Player, index int, amount Chips) error
}

// baseAction carries the checks shared by every in-turn player action:
// the hand must still be running, it must be the player's turn, and the
// player must be ACTIVE. Show and muck override pieces of this.
type baseAction struct {
	game *TexasHoldemGame
}

func (a *baseAction) verifyTurn(p *Player, t ActionType) error {
	if a.game.currentRound == RoundEnd {
		return HandEndedError{}
	}
	next := a.game.GetNextPlayerToAct()
	if next == nil || !equalAddress(next.Address, p.Address) {
		return WrongTurnError{PlayerID: p.Address}
	}
	if p.Status != PlayerStatusActive {
		return InvalidStatusError{PlayerID: p.Address, Status: p.Status, Action: t}
	}
	return nil
}

// recordWager deducts the amount (bounded by the stack) and records
// the turn. A wager that empties the stack converts the player to
// ALL_IN and rewrites the recorded action type.
func (a *baseAction) recordWager(p *Player, t ActionType, index int, amount Chips) {
	deducted := p.Deduct(amount)
	recorded := t
	if p.Chips == 0 && deducted > 0 {
		p.UpdateStatus(PlayerStatusAllIn)
		recorded = ActionAllIn
	}
	a.game.addTurn(Turn{
		PlayerID: p.Address,
		Action:   recorded,
		Amount:   deducted,
		Index:    index,
	})
}

func (a *baseAction) record(p *Player, t ActionType, index int, amount Chips) {
	a.game.addTurn(Turn{
		PlayerID: p.Address,
		Action:   t,
		Amount:   amount,
		Index:    index,
	})
}

// smallBlindAction posts the small blind during the ante round. A
// short stack posts what it has.
type smallBlindAction struct {
	baseAction
}

func newSmallBlindAction(g *TexasHoldemGame) *smallBlindAction {
	return &smallBlindAction{baseAction{game: g}}
}

func (a *smallBlindAction) Type() ActionType { return ActionSmallBlind }

func (a *smallBlindAction) Verify(p *Player) (Range, error) {
	if a.game.currentRound != RoundAnte {
		return Range{}, WrongRoundError{Action: ActionSmallBlind, Round: a.game.currentRound, Msg: "can only post small blind during ante round"}
	}
	if err := a.verifyTurn(p, ActionSmallBlind); err != nil {
		return Range{}, err
	}
	if a.game.PlayerSeat(p.Address) != a.game.dealerManager.GetSmallBlindPosition() {
		return Range{}, WrongTurnError{PlayerID: p.Address}
	}
	amount := a.game.options.SmallBlind
	if p.Chips < amount {
		amount = p.Chips
	}
	return Range{MinAmount: amount, MaxAmount: amount}, nil
}

func (a *smallBlindAction) Execute(p *Player, index int, amount Chips) error {
	r, err := a.Verify(p)
	if err != nil {
		return err
	}
	a.recordWager(p, ActionSmallBlind, index, r.MaxAmount)
	return nil
}

// bigBlindAction posts the big blind after the small blind is in.
type bigBlindAction struct {
	baseAction
}

func newBigBlindAction(g *TexasHoldemGame) *bigBlindAction {
	return &bigBlindAction{baseAction{game: g}}
}

func (a *bigBlindAction) Type() ActionType { return ActionBigBlind }

func (a *bigBlindAction) Verify(p *Player) (Range, error) {
	if a.game.currentRound != RoundAnte {
		return Range{}, WrongRoundError{Action: ActionBigBlind, Round: a.game.currentRound, Msg: "can only post big blind during ante round"}
	}
	if !hasActionType(a.game.GetActionsForRound(RoundAnte), ActionSmallBlind) {
		return Range{}, WrongRoundError{Action: ActionBigBlind, Round: a.game.currentRound, Msg: "small blind must be posted first"}
	}
	if err := a.verifyTurn(p, ActionBigBlind); err != nil {
		return Range{}, err
	}
	if a.game.PlayerSeat(p.Address) != a.game.dealerManager.GetBigBlindPosition() {
		return Range{}, WrongTurnError{PlayerID: p.Address}
	}
	amount := a.game.options.BigBlind
	if p.Chips < amount {
		amount = p.Chips
	}
	return Range{MinAmount: amount, MaxAmount: amount}, nil
}

func (a *bigBlindAction) Execute(p *Player, index int, amount Chips) error {
	r, err := a.Verify(p)
	if err != nil {
		return err
	}
	a.recordWager(p, ActionBigBlind, index, r.MaxAmount)
	return nil
}
