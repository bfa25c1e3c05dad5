package game

// showAction reveals hole cards at showdown. Turn order is enforced
// only for the first show; once any player has shown, the rest may
// show in any order. A hand that everyone else folded out of may also
// be shown by the lone survivor regardless of round.
type showAction struct {
	baseAction
}

func newShowAction(g *TexasHoldemGame) *showAction { return &showAction{baseAction{game: g}} }

func (a *showAction) Type() ActionType { return ActionShow }

func (a *showAction) Verify(p *Player) (Range, error) {
	if live := a.game.FindLivePlayers(); len(live) == 1 && equalAddress(live[0].Address, p.Address) {
		return Range{}, nil
	}
	if a.game.currentRound != RoundShowdown {
		return Range{}, WrongRoundError{Action: ActionShow, Round: a.game.currentRound, Msg: "show can only be performed during the showdown round"}
	}
	if p.Status != PlayerStatusActive && p.Status != PlayerStatusAllIn {
		return Range{}, InvalidStatusError{PlayerID: p.Address, Status: p.Status, Action: ActionShow}
	}
	if err := a.verifyShowdownTurn(p); err != nil {
		return Range{}, err
	}
	return Range{}, nil
}

// verifyShowdownTurn relaxes the next-to-act rule once any show has
// happened.
func (a *showAction) verifyShowdownTurn(p *Player) error {
	if hasActionType(a.game.GetActionsForRound(RoundShowdown), ActionShow) {
		return nil
	}
	next := a.game.GetNextPlayerToAct()
	if next == nil || !equalAddress(next.Address, p.Address) {
		return WrongTurnError{PlayerID: p.Address}
	}
	return nil
}

func (a *showAction) Execute(p *Player, index int, amount Chips) error {
	if _, err := a.Verify(p); err != nil {
		return err
	}
	p.UpdateStatus(PlayerStatusShowing)
	a.record(p, ActionShow, index, 0)
	return nil
}

// muckAction folds at showdown without revealing. Requires a prior
// show to respond to, and a hand that would lose: winning hands must
// be tabled.
type muckAction struct {
	baseAction
}

func newMuckAction(g *TexasHoldemGame) *muckAction { return &muckAction{baseAction{game: g}} }

func (a *muckAction) Type() ActionType { return ActionMuck }

func (a *muckAction) Verify(p *Player) (Range, error) {
	if a.game.currentRound != RoundShowdown {
		return Range{}, WrongRoundError{Action: ActionMuck, Round: a.game.currentRound, Msg: "muck can only be performed during the showdown round"}
	}
	if !hasActionType(a.game.GetActionsForRound(RoundShowdown), ActionShow) {
		return Range{}, WrongRoundError{Action: ActionMuck, Round: a.game.currentRound, Msg: "a player must show first"}
	}
	if p.Status != PlayerStatusActive && p.Status != PlayerStatusAllIn {
		return Range{}, InvalidStatusError{PlayerID: p.Address, Status: p.Status, Action: ActionMuck}
	}
	if len(p.HoleCards) == 2 {
		wins, err := a.game.wouldWin(p)
		if err != nil {
			return Range{}, err
		}
		if wins {
			return Range{}, WrongRoundError{Action: ActionMuck, Round: a.game.currentRound, Msg: "cannot muck winning hand"}
		}
	}
	return Range{}, nil
}

func (a *muckAction) Execute(p *Player, index int, amount Chips) error {
	if _, err := a.Verify(p); err != nil {
		return err
	}
	p.UpdateStatus(PlayerStatusFolded)
	a.record(p, ActionMuck, index, 0)
	return nil
}
