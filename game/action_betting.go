package game

// foldAction surrenders the hand. Legal for the acting player in any
// betting round; at showdown the equivalent move is muck.
type foldAction struct {
	baseAction
}

func newFoldAction(g *TexasHoldemGame) *foldAction { return &foldAction{baseAction{game: g}} }

func (a *foldAction) Type() ActionType { return ActionFold }

func (a *foldAction) Verify(p *Player) (Range, error) {
	switch a.game.currentRound {
	case RoundAnte:
		return Range{}, WrongRoundError{Action: ActionFold, Round: a.game.currentRound, Msg: "cannot fold in the ante round"}
	case RoundShowdown:
		return Range{}, WrongRoundError{Action: ActionFold, Round: a.game.currentRound, Msg: "cannot fold in the showdown round"}
	}
	if err := a.verifyTurn(p, ActionFold); err != nil {
		return Range{}, err
	}
	return Range{}, nil
}

func (a *foldAction) Execute(p *Player, index int, amount Chips) error {
	if _, err := a.Verify(p); err != nil {
		return err
	}
	p.UpdateStatus(PlayerStatusFolded)
	a.record(p, ActionFold, index, 0)
	return nil
}

// checkAction passes without wagering. Only legal when the player has
// already matched the largest bet of the round, which preflop lets the
// big blind close an unraised pot.
type checkAction struct {
	baseAction
}

func newCheckAction(g *TexasHoldemGame) *checkAction { return &checkAction{baseAction{game: g}} }

func (a *checkAction) Type() ActionType { return ActionCheck }

func (a *checkAction) Verify(p *Player) (Range, error) {
	switch a.game.currentRound {
	case RoundAnte:
		return Range{}, WrongRoundError{Action: ActionCheck, Round: a.game.currentRound, Msg: "cannot check in the ante round"}
	case RoundShowdown:
		return Range{}, WrongRoundError{Action: ActionCheck, Round: a.game.currentRound, Msg: "cannot check in the showdown round"}
	}
	if err := a.verifyTurn(p, ActionCheck); err != nil {
		return Range{}, err
	}
	bm := NewBetManager(a.game.betContextTurns(a.game.currentRound), a.game.options.BigBlind)
	if bm.TotalForPlayer(p.Address) < bm.LargestBet() {
		return Range{}, WrongRoundError{Action: ActionCheck, Round: a.game.currentRound, Msg: "player must call or raise"}
	}
	return Range{}, nil
}

func (a *checkAction) Execute(p *Player, index int, amount Chips) error {
	if _, err := a.Verify(p); err != nil {
		return err
	}
	a.record(p, ActionCheck, index, 0)
	return nil
}

// betAction opens the wagering on a street. Facing any outstanding bet
// the move is call or raise instead.
type betAction struct {
	baseAction
}

func newBetAction(g *TexasHoldemGame) *betAction { return &betAction{baseAction{game: g}} }

func (a *betAction) Type() ActionType { return ActionBet }

func (a *betAction) Verify(p *Player) (Range, error) {
	switch a.game.currentRound {
	case RoundAnte:
		return Range{}, WrongRoundError{Action: ActionBet, Round: a.game.currentRound, Msg: "cannot bet in the ante round"}
	case RoundShowdown:
		return Range{}, WrongRoundError{Action: ActionBet, Round: a.game.currentRound, Msg: "cannot bet in the showdown round"}
	}
	if err := a.verifyTurn(p, ActionBet); err != nil {
		return Range{}, err
	}
	bm := NewBetManager(a.game.betContextTurns(a.game.currentRound), a.game.options.BigBlind)
	if bm.LargestBet() > 0 {
		return Range{}, WrongRoundError{Action: ActionBet, Round: a.game.currentRound, Msg: "cannot bet, player must call or raise"}
	}
	min := a.game.options.BigBlind
	if p.Chips < min {
		min = p.Chips
	}
	return Range{MinAmount: min, MaxAmount: p.Chips}, nil
}

func (a *betAction) Execute(p *Player, index int, amount Chips) error {
	r, err := a.Verify(p)
	if err != nil {
		return err
	}
	if amount < r.MinAmount || amount > r.MaxAmount {
		return AmountOutOfRangeError{Amount: amount, Min: r.MinAmount, Max: r.MaxAmount}
	}
	a.recordWager(p, ActionBet, index, amount)
	return nil
}

// callAction matches the largest outstanding bet of the round. The
// amount is never chosen by the caller: it is exactly the deficit,
// bounded by the stack.
type callAction struct {
	baseAction
}

func newCallAction(g *TexasHoldemGame) *callAction { return &callAction{baseAction{game: g}} }

func (a *callAction) Type() ActionType { return ActionCall }

func (a *callAction) Verify(p *Player) (Range, error) {
	switch a.game.currentRound {
	case RoundAnte:
		return Range{}, WrongRoundError{Action: ActionCall, Round: a.game.currentRound, Msg: "cannot call in the ante round"}
	case RoundShowdown:
		return Range{}, WrongRoundError{Action: ActionCall, Round: a.game.currentRound, Msg: "cannot call in the showdown round"}
	}
	if err := a.verifyTurn(p, ActionCall); err != nil {
		return Range{}, err
	}
	bm := NewBetManager(a.game.betContextTurns(a.game.currentRound), a.game.options.BigBlind)
	largest := bm.LargestBet()
	if largest == 0 {
		return Range{}, WrongRoundError{Action: ActionCall, Round: a.game.currentRound, Msg: "no previous action to call"}
	}
	already := bm.TotalForPlayer(p.Address)
	if already >= largest {
		return Range{}, WrongRoundError{Action: ActionCall, Round: a.game.currentRound, Msg: "player has already met maximum, can check instead"}
	}
	amount := largest - already
	if amount > p.Chips {
		amount = p.Chips
	}
	return Range{MinAmount: amount, MaxAmount: amount}, nil
}

func (a *callAction) Execute(p *Player, index int, amount Chips) error {
	r, err := a.Verify(p)
	if err != nil {
		return err
	}
	a.recordWager(p, ActionCall, index, r.MaxAmount)
	return nil
}

// raiseAction raises TO a total. The amount argument is the player's
// target aggregate for the round, not an increment; the recorded turn
// carries only the chips moved now, so per-round aggregates always
// equal the announced totals.
type raiseAction struct {
	baseAction
}

func newRaiseAction(g *TexasHoldemGame) *raiseAction { return &raiseAction{baseAction{game: g}} }

func (a *raiseAction) Type() ActionType { return ActionRaise }

func (a *raiseAction) Verify(p *Player) (Range, error) {
	switch a.game.currentRound {
	case RoundAnte:
		return Range{}, WrongRoundError{Action: ActionRaise, Round: a.game.currentRound, Msg: "cannot raise in the ante round"}
	case RoundShowdown:
		return Range{}, WrongRoundError{Action: ActionRaise, Round: a.game.currentRound, Msg: "cannot raise in the showdown round"}
	}
	if err := a.verifyTurn(p, ActionRaise); err != nil {
		return Range{}, err
	}
	bm := NewBetManager(a.game.betContextTurns(a.game.currentRound), a.game.options.BigBlind)
	largest := bm.LargestBet()
	if largest == 0 {
		return Range{}, WrongRoundError{Action: ActionRaise, Round: a.game.currentRound, Msg: "no previous bet to raise"}
	}
	already := bm.TotalForPlayer(p.Address)
	minRaiseTo := (largest - already) + largest
	if p.Chips <= minRaiseTo {
		// A short stack may still raise, but only by moving in.
		return Range{MinAmount: p.Chips, MaxAmount: p.Chips}, nil
	}
	return Range{MinAmount: minRaiseTo, MaxAmount: p.Chips}, nil
}

func (a *raiseAction) Execute(p *Player, index int, amount Chips) error {
	r, err := a.Verify(p)
	if err != nil {
		return err
	}
	if amount < r.MinAmount || amount > r.MaxAmount {
		return AmountOutOfRangeError{Amount: amount, Min: r.MinAmount, Max: r.MaxAmount}
	}
	bm := NewBetManager(a.game.betContextTurns(a.game.currentRound), a.game.options.BigBlind)
	already := bm.TotalForPlayer(p.Address)
	if amount <= already {
		return AmountOutOfRangeError{Amount: amount, Min: r.MinAmount, Max: r.MaxAmount}
	}
	a.recordWager(p, ActionRaise, index, amount-already)
	return nil
}

// allInAction wagers the whole stack in one move.
type allInAction struct {
	baseAction
}

func newAllInAction(g *TexasHoldemGame) *allInAction { return &allInAction{baseAction{game: g}} }

func (a *allInAction) Type() ActionType { return ActionAllIn }

func (a *allInAction) Verify(p *Player) (Range, error) {
	switch a.game.currentRound {
	case RoundAnte:
		return Range{}, WrongRoundError{Action: ActionAllIn, Round: a.game.currentRound, Msg: "cannot go all-in in the ante round"}
	case RoundShowdown:
		return Range{}, WrongRoundError{Action: ActionAllIn, Round: a.game.currentRound, Msg: "cannot go all-in in the showdown round"}
	}
	if err := a.verifyTurn(p, ActionAllIn); err != nil {
		return Range{}, err
	}
	if p.Chips == 0 {
		return Range{}, InsufficientChipsError{PlayerID: p.Address, Need: 1, Have: 0}
	}
	return Range{MinAmount: p.Chips, MaxAmount: p.Chips}, nil
}

func (a *allInAction) Execute(p *Player, index int, amount Chips) error {
	r, err := a.Verify(p)
	if err != nil {
		return err
	}
	a.recordWager(p, ActionAllIn, index, r.MaxAmount)
	return nil
}
