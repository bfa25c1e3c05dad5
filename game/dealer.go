package game

import (
	"github.com/rs/zerolog/log"
)

var dealerLogger = log.With().Str("logger_name", "game::dealer").Logger()

// DealerTable is the view of the table the dealer rotation needs. The
// orchestrator implements it; tests can supply a fixture.
type DealerTable interface {
	DealerPosition() int
	MinPlayers() int
	MaxPlayers() int
	PlayerAtSeat(seat int) *Player
	PlayerSeat(address string) int
	FindActivePlayers() []*Player
}

// DealerPositionManager computes the dealer, small-blind and big-blind
// seats from table occupancy. Exactly two active players triggers the
// heads-up rules: the dealer posts the small blind.
type DealerPositionManager struct {
	table DealerTable
}

func NewDealerPositionManager(table DealerTable) *DealerPositionManager {
	return &DealerPositionManager{table: table}
}

// GetDealerPosition returns the stored button seat as-is, whether or
// not that seat is currently occupied.
func (dm *DealerPositionManager) GetDealerPosition() int {
	return dm.table.DealerPosition()
}

// effectiveDealerPosition resolves the seat actually treated as dealer:
// the button seat when it holds an active player, otherwise the next
// active seat after it.
func (dm *DealerPositionManager) effectiveDealerPosition() int {
	dealerSeat := dm.table.DealerPosition()
	if player := dm.table.PlayerAtSeat(dealerSeat); player != nil && dm.isPlayerActive(player) {
		return dealerSeat
	}
	if next := dm.FindNextActivePlayer(dealerSeat); next != 0 {
		return next
	}
	return dealerSeat
}

// FindNextActivePlayer searches seat-by-seat from startSeat+1 to
// maxPlayers, then wraps from 1 to startSeat, returning the first seat
// holding an active player with chips. Returns 0 when no active
// players exist.
func (dm *DealerPositionManager) FindNextActivePlayer(startSeat int) int {
	maxSeats := dm.table.MaxPlayers()

	for seat := startSeat + 1; seat <= maxSeats; seat++ {
		if player := dm.table.PlayerAtSeat(seat); player != nil && dm.isPlayerActive(player) {
			return seat
		}
	}
	for seat := 1; seat <= startSeat && seat <= maxSeats; seat++ {
		if player := dm.table.PlayerAtSeat(seat); player != nil && dm.isPlayerActive(player) {
			return seat
		}
	}
	return 0
}

// GetSmallBlindPosition returns the seat that owes the small blind.
// Heads-up the dealer posts the small blind; with three or more active
// players it is the next active seat after the button.
func (dm *DealerPositionManager) GetSmallBlindPosition() int {
	if dm.isHeadsUp() {
		return dm.effectiveDealerPosition()
	}

	dealerSeat := dm.effectiveDealerPosition()
	if seat := dm.FindNextActivePlayer(dealerSeat); seat != 0 {
		return seat
	}
	// No active player found anywhere. Seat-number order matters here:
	// (seat % maxPlayers) + 1, never the reverse.
	return (dealerSeat % dm.table.MaxPlayers()) + 1
}

// GetBigBlindPosition returns the seat that owes the big blind: the
// non-dealer heads-up, otherwise the next active seat after the small
// blind.
func (dm *DealerPositionManager) GetBigBlindPosition() int {
	if dm.isHeadsUp() {
		dealerSeat := dm.effectiveDealerPosition()
		if seat := dm.FindNextActivePlayer(dealerSeat); seat != 0 {
			return seat
		}
		return (dealerSeat % dm.table.MaxPlayers()) + 1
	}

	sbSeat := dm.GetSmallBlindPosition()
	if seat := dm.FindNextActivePlayer(sbSeat); seat != 0 {
		return seat
	}
	return (sbSeat % dm.table.MaxPlayers()) + 1
}

// HandlePlayerLeave rotates the button forward when the departing seat
// holds it and enough players remain for another hand. When only one
// player remains the button stays put until the table refills.
func (dm *DealerPositionManager) HandlePlayerLeave(seat int) int {
	dealerSeat := dm.table.DealerPosition()
	if dealerSeat != seat {
		return dealerSeat
	}

	remaining := 0
	for _, player := range dm.table.FindActivePlayers() {
		if dm.table.PlayerSeat(player.Address) != seat {
			remaining++
		}
	}

	if remaining >= dm.table.MinPlayers() {
		return dm.rotateDealer()
	}
	return dealerSeat
}

// HandlePlayerJoin is called after a player takes a seat. Joining
// never moves an established button.
func (dm *DealerPositionManager) HandlePlayerJoin(seat int) int {
	return dm.table.DealerPosition()
}

// HandleNewHand rotates the button to the next active player, called
// once per hand start. Returns the new button seat.
func (dm *DealerPositionManager) HandleNewHand() int {
	return dm.rotateDealer()
}

// ValidateDealerPosition reports whether the button seat currently
// holds an active player.
func (dm *DealerPositionManager) ValidateDealerPosition() bool {
	player := dm.table.PlayerAtSeat(dm.table.DealerPosition())
	return player != nil && dm.isPlayerActive(player)
}

func (dm *DealerPositionManager) rotateDealer() int {
	current := dm.effectiveDealerPosition()
	next := dm.FindNextActivePlayer(current)
	if next != 0 {
		dealerLogger.Debug().
			Int("from", current).
			Int("to", next).
			Msg("Rotating dealer")
		return next
	}

	// No next active player: keep the button where it is.
	active := dm.table.FindActivePlayers()
	if len(active) > 0 {
		return dm.table.PlayerSeat(active[0].Address)
	}
	return current
}

func (dm *DealerPositionManager) isHeadsUp() bool {
	return len(dm.table.FindActivePlayers()) == 2
}

func (dm *DealerPositionManager) isPlayerActive(player *Player) bool {
	if player.Status != PlayerStatusActive && player.Status != PlayerStatusShowing {
		return false
	}
	return player.Chips > 0
}
