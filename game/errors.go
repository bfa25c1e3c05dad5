package game

import "fmt"

// Verification failures are typed so the command layer can classify a
// rejection without string matching. They are synchronous rejections,
// never fatal: a failed verify leaves the game state untouched.

// WrongTurnError: the acting player is not the next to act.
type WrongTurnError struct {
	PlayerID string
}

func (e WrongTurnError) Error() string {
	return fmt.Sprintf("must be currently active player: %s", e.PlayerID)
}

// WrongRoundError: the action is not legal in the current round.
type WrongRoundError struct {
	Action ActionType
	Round  Round
	Msg    string
}

func (e WrongRoundError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("cannot %s in the %s round", e.Action, e.Round)
}

// HandEndedError: the hand is over; only new-hand (and claim) apply.
type HandEndedError struct{}

func (e HandEndedError) Error() string {
	return "hand has ended"
}

// InsufficientChipsError: the player's stack cannot cover the action.
type InsufficientChipsError struct {
	PlayerID string
	Need     Chips
	Have     Chips
}

func (e InsufficientChipsError) Error() string {
	return fmt.Sprintf("player %s has insufficient chips: need %d, have %d", e.PlayerID, e.Need, e.Have)
}

// AmountOutOfRangeError: the requested amount is outside the legal bounds.
type AmountOutOfRangeError struct {
	Amount Chips
	Min    Chips
	Max    Chips
}

func (e AmountOutOfRangeError) Error() string {
	return fmt.Sprintf("amount %d outside legal range [%d, %d]", e.Amount, e.Min, e.Max)
}

// BuyInError: a join or top-up amount violates the table limits.
type BuyInError struct {
	Amount Chips
	Min    Chips
	Max    Chips
}

func (e BuyInError) Error() string {
	return fmt.Sprintf("buy-in %d outside table limits [%d, %d]", e.Amount, e.Min, e.Max)
}

// DuplicatePlayerError: the address already occupies a seat.
type DuplicatePlayerError struct {
	Address string
}

func (e DuplicatePlayerError) Error() string {
	return fmt.Sprintf("player %s already exists in the game", e.Address)
}

// PlayerNotFoundError: the address does not occupy any seat.
type PlayerNotFoundError struct {
	Address string
}

func (e PlayerNotFoundError) Error() string {
	return fmt.Sprintf("player %s not found", e.Address)
}

// SeatError: the requested seat is invalid or taken, or the table is full.
type SeatError struct {
	Seat int
	Msg  string
}

func (e SeatError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("invalid seat [%d]", e.Seat)
}

// InvalidStatusError: the player's status does not permit the action.
type InvalidStatusError struct {
	PlayerID string
	Status   PlayerStatus
	Action   ActionType
}

func (e InvalidStatusError) Error() string {
	return fmt.Sprintf("player %s with status %s cannot %s", e.PlayerID, e.Status, e.Action)
}

// MalformedDataError: an action payload did not decode (bad deck
// string, missing deck/seed parameter, wrong card count).
type MalformedDataError struct {
	Msg string
}

func (e MalformedDataError) Error() string {
	return e.Msg
}

// InvalidActionIndexError: replay protection. Every action must carry
// the next expected sequence index.
type InvalidActionIndexError struct {
	Got  int
	Want int
}

func (e InvalidActionIndexError) Error() string {
	return fmt.Sprintf("invalid action index: got %d, want %d", e.Got, e.Want)
}
