package game

import (
	"github.com/tablerock/holdem/poker"
)

// Player is a seated player. The seat map owns the instance; actions
// receive it from the owning game and mutate it in place. Chips never
// go negative: every deduction is clamped by the stack beforehand.
type Player struct {
	Address   string
	Chips     Chips
	HoleCards []poker.Card // nil until dealt, then exactly two
	Status    PlayerStatus
}

func NewPlayer(address string, chips Chips, status PlayerStatus) *Player {
	return &Player{
		Address: address,
		Chips:   chips,
		Status:  status,
	}
}

// Deduct removes amount from the stack and reports the amount actually
// removed. A player can never be debited below zero; the clamped value
// is what gets recorded in the turn history.
func (p *Player) Deduct(amount Chips) Chips {
	if amount > p.Chips {
		amount = p.Chips
	}
	p.Chips -= amount
	return amount
}

func (p *Player) Credit(amount Chips) {
	p.Chips += amount
}

func (p *Player) UpdateStatus(status PlayerStatus) {
	p.Status = status
}

// Reinit resets per-hand state. Stack and seat survive across hands.
func (p *Player) Reinit() {
	p.HoleCards = nil
	switch p.Status {
	case PlayerStatusFolded, PlayerStatusAllIn, PlayerStatusShowing:
		p.Status = PlayerStatusActive
	}
}

// InHand reports whether the player can still win the current pot.
func (p *Player) InHand() bool {
	switch p.Status {
	case PlayerStatusFolded, PlayerStatusBusted, PlayerStatusSittingOut:
		return false
	}
	return true
}
