package game

import (
	"encoding/json"
	"fmt"
)

/**
NOTE: Seat numbers are indexed from 1-maxPlayers like the real poker table.
Seat 0 is never a valid seat.
**/

// Round is a betting phase within a hand. Rounds are totally ordered
// and advance monotonically; the only way back to RoundAnte is a
// new-hand re-initialization.
type Round int

const (
	RoundAnte Round = iota
	RoundPreflop
	RoundFlop
	RoundTurn
	RoundRiver
	RoundShowdown
	RoundEnd
)

var roundNames = map[Round]string{
	RoundAnte:     "ante",
	RoundPreflop:  "preflop",
	RoundFlop:     "flop",
	RoundTurn:     "turn",
	RoundRiver:    "river",
	RoundShowdown: "showdown",
	RoundEnd:      "end",
}

var roundValues = map[string]Round{}

func init() {
	for round, name := range roundNames {
		roundValues[name] = round
	}
}

func (r Round) String() string {
	if name, ok := roundNames[r]; ok {
		return name
	}
	return fmt.Sprintf("round(%d)", int(r))
}

func ParseRound(s string) (Round, error) {
	if round, ok := roundValues[s]; ok {
		return round, nil
	}
	return 0, fmt.Errorf("unknown round [%s]", s)
}

func (r Round) Next() Round {
	if r >= RoundEnd {
		return RoundEnd
	}
	return r + 1
}

func (r Round) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Round) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	round, err := ParseRound(s)
	if err != nil {
		return err
	}
	*r = round
	return nil
}

// PlayerStatus tracks where a player is within the hand lifecycle.
// Within a hand, transitions are one-directional (ACTIVE -> ALL_IN
// stays ALL_IN until the next hand); a new hand returns sitting-out
// players to action.
type PlayerStatus string

const (
	PlayerStatusActive     PlayerStatus = "active"
	PlayerStatusFolded     PlayerStatus = "folded"
	PlayerStatusAllIn      PlayerStatus = "all-in"
	PlayerStatusSittingOut PlayerStatus = "sitting-out"
	PlayerStatusBusted     PlayerStatus = "busted"
	PlayerStatusShowing    PlayerStatus = "showing"
)

// ActionType is the closed set of actions the engine understands.
// Player actions are wagers or showdown moves made in turn order;
// non-player actions are table-management moves.
type ActionType string

const (
	// Player actions.
	ActionSmallBlind ActionType = "small-blind"
	ActionBigBlind   ActionType = "big-blind"
	ActionFold       ActionType = "fold"
	ActionCheck      ActionType = "check"
	ActionBet        ActionType = "bet"
	ActionCall       ActionType = "call"
	ActionRaise      ActionType = "raise"
	ActionAllIn      ActionType = "all-in"
	ActionShow       ActionType = "show"
	ActionMuck       ActionType = "muck"

	// Non-player actions.
	ActionJoin    ActionType = "join"
	ActionLeave   ActionType = "leave"
	ActionSitIn   ActionType = "sit-in"
	ActionSitOut  ActionType = "sit-out"
	ActionTopUp   ActionType = "top-up"
	ActionDeal    ActionType = "deal"
	ActionNewHand ActionType = "new-hand"
	ActionClaim   ActionType = "claim"
)

// IsNonPlayerAction reports whether the action is a table-management
// move rather than an in-turn wager or showdown move.
func (a ActionType) IsNonPlayerAction() bool {
	switch a {
	case ActionJoin, ActionLeave, ActionSitIn, ActionSitOut, ActionTopUp, ActionDeal, ActionNewHand, ActionClaim:
		return true
	}
	return false
}

// GameType distinguishes cash tables from single-table sit-and-gos.
type GameType string

const (
	GameTypeCash     GameType = "cash"
	GameTypeSitAndGo GameType = "sit-and-go"
)

// Chips are table chip units. They never go negative; every deduction
// is bounded by the player's stack before it is applied.
type Chips = uint64

// Turn is one recorded action. Immutable once appended to the hand's
// history; the ordered turn list per round is the sole input to the
// bet aggregation.
type Turn struct {
	PlayerID string     `json:"playerId"`
	Action   ActionType `json:"action"`
	Amount   Chips      `json:"amount"`
	Index    int        `json:"index"`
}

// TurnWithSeat is a Turn annotated with the seat that produced it and
// the caller-supplied timestamp (unix seconds).
type TurnWithSeat struct {
	Turn
	Seat      int   `json:"seat"`
	Timestamp int64 `json:"timestamp"`
}

// Range bounds the legal amount for an action. Fixed-cost actions
// (check, fold, show, muck, deal) report MinAmount == MaxAmount.
type Range struct {
	MinAmount Chips
	MaxAmount Chips
}

// RakeOptions configures the house cut taken from awarded pots.
type RakeOptions struct {
	RakeFreeThreshold Chips `yaml:"rake-free-threshold" json:"rakeFreeThreshold"`
	RakePercentage    int   `yaml:"rake-percentage" json:"rakePercentage"`
	RakeCap           Chips `yaml:"rake-cap" json:"rakeCap"`
}

// GameOptions is the immutable per-table configuration. Supplied at
// construction and never mutated by the engine.
type GameOptions struct {
	MinBuyIn   Chips        `yaml:"min-buyin" json:"minBuyIn"`
	MaxBuyIn   Chips        `yaml:"max-buyin" json:"maxBuyIn"`
	MinPlayers int          `yaml:"min-players" json:"minPlayers"`
	MaxPlayers int          `yaml:"max-players" json:"maxPlayers"`
	SmallBlind Chips        `yaml:"sb" json:"smallBlind"`
	BigBlind   Chips        `yaml:"bb" json:"bigBlind"`
	Timeout    int          `yaml:"timeout" json:"timeout"`
	Type       GameType     `yaml:"type" json:"type"`
	Rake       *RakeOptions `yaml:"rake,omitempty" json:"rake,omitempty"`
	Owner      string       `yaml:"owner,omitempty" json:"owner,omitempty"`
}

// Winner records one player's share of an awarded pot.
type Winner struct {
	Amount      Chips    `json:"amount"`
	Cards       []string `json:"cards,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

// Result is a finishing record for sit-and-go games: the place a
// player busted (or won) and the payout they may claim.
type Result struct {
	Place    int    `json:"place"`
	PlayerID string `json:"playerId"`
	Payout   Chips  `json:"payout"`
	Claimed  bool   `json:"claimed"`
}

// LegalAction is one currently-legal action for a player with its
// amount bounds, as enumerated by GetLegalActions.
type LegalAction struct {
	Action ActionType `json:"action"`
	Min    Chips      `json:"min"`
	Max    Chips      `json:"max"`
	Index  int        `json:"index"`
}
