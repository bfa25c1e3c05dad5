package game

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablerock/holdem/poker"
)

func testOptions() GameOptions {
	return GameOptions{
		MinBuyIn:   100,
		MaxBuyIn:   2000,
		MinPlayers: 2,
		MaxPlayers: 9,
		SmallBlind: 10,
		BigBlind:   20,
		Type:       GameTypeCash,
	}
}

// handTable drives a game through PerformAction with auto-assigned
// indexes and monotonic timestamps.
type handTable struct {
	t  *testing.T
	g  *TexasHoldemGame
	ts int64
}

func newHandTable(t *testing.T, options GameOptions) *handTable {
	return &handTable{
		t: t,
		g: NewTexasHoldemGame("table-1", options, poker.NewEvaluator()),
	}
}

func (h *handTable) act(player string, action ActionType, amount Chips, data string) error {
	h.ts++
	return h.g.PerformAction(player, action, h.g.ActionIndex(), amount, data, h.ts)
}

func (h *handTable) mustAct(player string, action ActionType, amount Chips, data string) {
	h.t.Helper()
	require.NoError(h.t, h.act(player, action, amount, data))
}

// scriptedDeck builds a full 52-card deck string beginning with the
// given cards.
func scriptedDeck(leading ...string) string {
	used := make(map[string]bool, len(leading))
	order := make([]string, 0, 52)
	for _, m := range leading {
		order = append(order, m)
		used[m] = true
	}
	for _, suit := range []string{"C", "D", "H", "S"} {
		for _, rank := range []string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K", "A"} {
			m := rank + suit
			if !used[m] {
				order = append(order, m)
			}
		}
	}
	return strings.Join(order, "-")
}

// Deal order is one card per active player per pass, then the 5-card
// board. Heads-up with seats 1 and 2: seat 1 gets cards 0 and 2, seat
// 2 gets 1 and 3, board is 4-8.
func acesVersusKingsDeck() string {
	return scriptedDeck("AS", "KS", "AH", "KH", "2C", "7D", "9H", "4S", "JC")
}

func seatHeadsUp(h *handTable) {
	h.mustAct("alice", ActionJoin, 1000, "seat=1")
	h.mustAct("bob", ActionJoin, 1000, "seat=2")
}

// startHeadsUpHand runs join, new-hand, blinds and deal. After the
// first new-hand the button sits at seat 2, so bob posts the small
// blind and alice the big blind.
func startHeadsUpHand(h *handTable, deck string) {
	seatHeadsUp(h)
	h.mustAct("alice", ActionNewHand, 0, "deck="+deck)
	require.Equal(h.t, RoundAnte, h.g.CurrentRound())

	h.mustAct("bob", ActionSmallBlind, 0, "")
	h.mustAct("alice", ActionBigBlind, 0, "")
	require.Equal(h.t, RoundPreflop, h.g.CurrentRound())

	h.mustAct("alice", ActionDeal, 0, "")
}

func TestHeadsUpHandToShowdown(t *testing.T) {
	h := newHandTable(t, testOptions())
	startHeadsUpHand(h, acesVersusKingsDeck())

	alice, err := h.g.GetPlayer("alice")
	require.NoError(t, err)
	bob, err := h.g.GetPlayer("bob")
	require.NoError(t, err)
	assert.Equal(t, "AS-AH", poker.CardsToString(alice.HoleCards))
	assert.Equal(t, "KS-KH", poker.CardsToString(bob.HoleCards))

	// Dealer acts first preflop heads-up.
	next := h.g.GetNextPlayerToAct()
	require.NotNil(t, next)
	assert.Equal(t, "bob", next.Address)

	h.mustAct("bob", ActionCall, 0, "")
	h.mustAct("alice", ActionCheck, 0, "")
	require.Equal(t, RoundFlop, h.g.CurrentRound())
	assert.Equal(t, "2C-7D-9H", poker.CardsToString(h.g.CommunityCards()))

	// Big blind acts first on every later street.
	h.mustAct("alice", ActionCheck, 0, "")
	h.mustAct("bob", ActionCheck, 0, "")
	require.Equal(t, RoundTurn, h.g.CurrentRound())

	h.mustAct("alice", ActionCheck, 0, "")
	h.mustAct("bob", ActionCheck, 0, "")
	require.Equal(t, RoundRiver, h.g.CurrentRound())
	assert.Equal(t, "2C-7D-9H-4S-JC", poker.CardsToString(h.g.CommunityCards()))

	h.mustAct("alice", ActionCheck, 0, "")
	h.mustAct("bob", ActionCheck, 0, "")
	require.Equal(t, RoundShowdown, h.g.CurrentRound())

	h.mustAct("alice", ActionShow, 0, "")
	h.mustAct("bob", ActionShow, 0, "")
	require.Equal(t, RoundEnd, h.g.CurrentRound())

	winners := h.g.Winners()
	require.Len(t, winners, 1)
	winner, ok := winners["alice"]
	require.True(t, ok)
	assert.Equal(t, Chips(40), winner.Amount)
	assert.Equal(t, []string{"AS", "AH"}, winner.Cards)

	// alice: -20 blind, +40 pot. bob: -10 blind, -10 call.
	assert.Equal(t, Chips(1020), alice.Chips)
	assert.Equal(t, Chips(980), bob.Chips)
}

func TestMuckLosingHand(t *testing.T) {
	h := newHandTable(t, testOptions())
	startHeadsUpHand(h, acesVersusKingsDeck())

	h.mustAct("bob", ActionCall, 0, "")
	h.mustAct("alice", ActionCheck, 0, "")
	for i := 0; i < 3; i++ {
		h.mustAct("alice", ActionCheck, 0, "")
		h.mustAct("bob", ActionCheck, 0, "")
	}
	require.Equal(t, RoundShowdown, h.g.CurrentRound())

	h.mustAct("alice", ActionShow, 0, "")

	// Kings lose to aces, so the muck is allowed and ends the hand.
	h.mustAct("bob", ActionMuck, 0, "")
	require.Equal(t, RoundEnd, h.g.CurrentRound())

	winners := h.g.Winners()
	require.Len(t, winners, 1)
	assert.Equal(t, Chips(40), winners["alice"].Amount)

	alice, _ := h.g.GetPlayer("alice")
	assert.Equal(t, Chips(1020), alice.Chips)
}

func TestCannotMuckWinningHand(t *testing.T) {
	h := newHandTable(t, testOptions())
	// Reversed deal: bob gets the aces.
	startHeadsUpHand(h, scriptedDeck("KS", "AS", "KH", "AH", "2C", "7D", "9H", "4S", "JC"))

	h.mustAct("bob", ActionCall, 0, "")
	h.mustAct("alice", ActionCheck, 0, "")
	for i := 0; i < 3; i++ {
		h.mustAct("alice", ActionCheck, 0, "")
		h.mustAct("bob", ActionCheck, 0, "")
	}
	require.Equal(t, RoundShowdown, h.g.CurrentRound())

	h.mustAct("alice", ActionShow, 0, "")

	err := h.act("bob", ActionMuck, 0, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "muck")

	h.mustAct("bob", ActionShow, 0, "")
	require.Equal(t, RoundEnd, h.g.CurrentRound())
	assert.Equal(t, Chips(40), h.g.Winners()["bob"].Amount)
}

func TestUncontestedWinOnFold(t *testing.T) {
	h := newHandTable(t, testOptions())
	startHeadsUpHand(h, acesVersusKingsDeck())

	h.mustAct("bob", ActionFold, 0, "")
	require.Equal(t, RoundEnd, h.g.CurrentRound())

	winners := h.g.Winners()
	require.Len(t, winners, 1)
	// Pot is 30: bob's small blind plus alice's big blind.
	assert.Equal(t, Chips(30), winners["alice"].Amount)

	alice, _ := h.g.GetPlayer("alice")
	bob, _ := h.g.GetPlayer("bob")
	assert.Equal(t, Chips(1010), alice.Chips)
	assert.Equal(t, Chips(990), bob.Chips)
}

func TestBetAndRaiseSizing(t *testing.T) {
	h := newHandTable(t, testOptions())
	startHeadsUpHand(h, acesVersusKingsDeck())

	h.mustAct("bob", ActionCall, 0, "")
	h.mustAct("alice", ActionCheck, 0, "")
	require.Equal(t, RoundFlop, h.g.CurrentRound())

	// Bet below the big blind is rejected.
	err := h.act("alice", ActionBet, 5, "")
	require.Error(t, err)
	assert.IsType(t, AmountOutOfRangeError{}, err)

	h.mustAct("alice", ActionBet, 40, "")

	// Raise-to below (B - P) + B = 80 is rejected.
	err = h.act("bob", ActionRaise, 79, "")
	require.Error(t, err)
	assert.IsType(t, AmountOutOfRangeError{}, err)

	h.mustAct("bob", ActionRaise, 120, "")
	assert.Equal(t, Chips(120), h.g.GetPlayerTotalBets("bob", RoundFlop, false))

	// Call matches the deficit exactly.
	h.mustAct("alice", ActionCall, 0, "")
	assert.Equal(t, Chips(120), h.g.GetPlayerTotalBets("alice", RoundFlop, false))
	require.Equal(t, RoundTurn, h.g.CurrentRound())
}

func TestAllInConversionAndAutoRunout(t *testing.T) {
	h := newHandTable(t, testOptions())
	startHeadsUpHand(h, acesVersusKingsDeck())

	h.mustAct("bob", ActionAllIn, 0, "")
	bob, _ := h.g.GetPlayer("bob")
	assert.Equal(t, Chips(0), bob.Chips)
	assert.Equal(t, PlayerStatusAllIn, bob.Status)

	// Calling the all-in empties alice's stack too; the streets run
	// out automatically and stop at showdown.
	h.mustAct("alice", ActionCall, 0, "")
	alice, _ := h.g.GetPlayer("alice")
	assert.Equal(t, Chips(0), alice.Chips)
	require.Equal(t, RoundShowdown, h.g.CurrentRound())
	assert.Len(t, h.g.CommunityCards(), 5)

	h.mustAct("alice", ActionShow, 0, "")
	h.mustAct("bob", ActionShow, 0, "")
	require.Equal(t, RoundEnd, h.g.CurrentRound())

	assert.Equal(t, Chips(2000), alice.Chips)
	assert.Equal(t, Chips(0), bob.Chips)
	// Cash game: the busted stack sits out rather than busting.
	assert.Equal(t, PlayerStatusSittingOut, bob.Status)
}

func TestSitAndGoBustPaysPlaceAndClaim(t *testing.T) {
	options := GameOptions{
		MinBuyIn:   300,
		MaxBuyIn:   300,
		MinPlayers: 3,
		MaxPlayers: 9,
		SmallBlind: 10,
		BigBlind:   20,
		Type:       GameTypeSitAndGo,
	}
	h := newHandTable(t, options)
	h.mustAct("alice", ActionJoin, 300, "seat=1")
	h.mustAct("bob", ActionJoin, 300, "seat=2")
	h.mustAct("carol", ActionJoin, 300, "seat=3")

	// alice draws the aces, carol the kings.
	deck := scriptedDeck("AS", "QC", "KS", "AH", "QD", "KH", "2C", "7D", "9H", "4S", "JC")
	h.mustAct("alice", ActionNewHand, 0, "deck="+deck)
	h.mustAct("carol", ActionSmallBlind, 0, "")
	h.mustAct("alice", ActionBigBlind, 0, "")
	h.mustAct("alice", ActionDeal, 0, "")

	h.mustAct("bob", ActionFold, 0, "")
	h.mustAct("carol", ActionAllIn, 0, "")
	h.mustAct("alice", ActionCall, 0, "")
	require.Equal(t, RoundShowdown, h.g.CurrentRound())

	h.mustAct("carol", ActionShow, 0, "")
	h.mustAct("alice", ActionShow, 0, "")
	require.Equal(t, RoundEnd, h.g.CurrentRound())

	alice, _ := h.g.GetPlayer("alice")
	carol, _ := h.g.GetPlayer("carol")
	assert.Equal(t, Chips(600), alice.Chips)
	assert.Equal(t, Chips(0), carol.Chips)
	assert.Equal(t, PlayerStatusBusted, carol.Status)

	// Third place earns 10% of the 900 prize pool.
	results := h.g.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].Place)
	assert.Equal(t, "carol", results[0].PlayerID)
	assert.Equal(t, Chips(90), results[0].Payout)
	assert.False(t, results[0].Claimed)

	h.mustAct("carol", ActionClaim, 0, "")
	assert.True(t, h.g.Results()[0].Claimed)

	err := h.act("carol", ActionClaim, 0, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already claimed")

	// bob survived the hand and has no finishing place yet.
	err = h.act("bob", ActionClaim, 0, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no winnings")
}

func TestClaimRejectedInCashGame(t *testing.T) {
	h := newHandTable(t, testOptions())
	startHeadsUpHand(h, acesVersusKingsDeck())

	h.mustAct("bob", ActionFold, 0, "")
	require.Equal(t, RoundEnd, h.g.CurrentRound())

	err := h.act("alice", ActionClaim, 0, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cash")
}

func TestActionIndexReplayProtection(t *testing.T) {
	h := newHandTable(t, testOptions())
	seatHeadsUp(h)

	want := h.g.ActionIndex()
	err := h.g.PerformAction("alice", ActionNewHand, want+5, 0, "deck="+acesVersusKingsDeck(), 99)
	require.Error(t, err)
	assert.Equal(t, InvalidActionIndexError{Got: want + 5, Want: want}, err)

	// Replaying an already-used index is also rejected.
	h.mustAct("alice", ActionNewHand, 0, "deck="+acesVersusKingsDeck())
	err = h.g.PerformAction("bob", ActionSmallBlind, want, 0, "", 100)
	require.Error(t, err)
	assert.IsType(t, InvalidActionIndexError{}, err)
}

func TestTimestampRequired(t *testing.T) {
	h := newHandTable(t, testOptions())
	seatHeadsUp(h)
	err := h.g.PerformAction("alice", ActionNewHand, h.g.ActionIndex(), 0, "deck="+acesVersusKingsDeck(), 0)
	require.Error(t, err)
}

func TestWrongTurnRejected(t *testing.T) {
	h := newHandTable(t, testOptions())
	startHeadsUpHand(h, acesVersusKingsDeck())

	// alice is the big blind; bob acts first preflop.
	err := h.act("alice", ActionCheck, 0, "")
	require.Error(t, err)
	assert.IsType(t, WrongTurnError{}, err)
}

func TestGetLegalActionsPreflop(t *testing.T) {
	h := newHandTable(t, testOptions())
	startHeadsUpHand(h, acesVersusKingsDeck())

	legal := h.g.GetLegalActions("bob")
	byAction := make(map[ActionType]LegalAction, len(legal))
	for _, la := range legal {
		byAction[la.Action] = la
	}

	call, ok := byAction[ActionCall]
	require.True(t, ok)
	assert.Equal(t, Chips(10), call.Min)
	assert.Equal(t, Chips(10), call.Max)

	raise, ok := byAction[ActionRaise]
	require.True(t, ok)
	assert.Equal(t, Chips(30), raise.Min)
	assert.Equal(t, Chips(990), raise.Max)

	_, canCheck := byAction[ActionCheck]
	assert.False(t, canCheck)
	_, canFold := byAction[ActionFold]
	assert.True(t, canFold)
}

func TestSecondHandRotatesButton(t *testing.T) {
	h := newHandTable(t, testOptions())
	startHeadsUpHand(h, acesVersusKingsDeck())
	firstDealer := h.g.DealerPosition()
	assert.Equal(t, 2, firstDealer)

	h.mustAct("bob", ActionFold, 0, "")
	require.Equal(t, RoundEnd, h.g.CurrentRound())

	h.mustAct("alice", ActionNewHand, 0, "deck="+acesVersusKingsDeck())
	assert.Equal(t, 1, h.g.DealerPosition())
	assert.Equal(t, 2, h.g.HandNumber())

	// Now alice owes the small blind.
	next := h.g.GetNextPlayerToAct()
	require.NotNil(t, next)
	assert.Equal(t, "alice", next.Address)

	// The second hand deals and plays like the first.
	h.mustAct("alice", ActionSmallBlind, 0, "")
	h.mustAct("bob", ActionBigBlind, 0, "")
	h.mustAct("bob", ActionDeal, 0, "")
	require.Equal(t, RoundPreflop, h.g.CurrentRound())

	alice, _ := h.g.GetPlayer("alice")
	bob, _ := h.g.GetPlayer("bob")
	require.Len(t, alice.HoleCards, 2)
	require.Len(t, bob.HoleCards, 2)

	h.mustAct("alice", ActionFold, 0, "")
	require.Equal(t, RoundEnd, h.g.CurrentRound())
	assert.Equal(t, Chips(1000), alice.Chips)
	assert.Equal(t, Chips(1000), bob.Chips)
}

func TestThreeHandedTurnOrder(t *testing.T) {
	h := newHandTable(t, testOptions())
	h.mustAct("alice", ActionJoin, 1000, "seat=1")
	h.mustAct("bob", ActionJoin, 1000, "seat=2")
	h.mustAct("carol", ActionJoin, 1000, "seat=3")

	// Deal order three-handed (seats 1,2,3): first pass 0,1,2 then
	// 3,4,5; board 6-10.
	deck := scriptedDeck("AS", "KS", "QS", "AH", "KH", "QH", "2C", "7D", "9H", "4S", "JC")
	h.mustAct("alice", ActionNewHand, 0, "deck="+deck)

	// Button rotates to seat 2; small blind 3, big blind 1.
	assert.Equal(t, 2, h.g.DealerPosition())
	h.mustAct("carol", ActionSmallBlind, 0, "")
	h.mustAct("alice", ActionBigBlind, 0, "")
	h.mustAct("alice", ActionDeal, 0, "")

	// The button is under the gun three-handed.
	next := h.g.GetNextPlayerToAct()
	require.NotNil(t, next)
	assert.Equal(t, "bob", next.Address)

	h.mustAct("bob", ActionFold, 0, "")
	h.mustAct("carol", ActionCall, 0, "")
	h.mustAct("alice", ActionCheck, 0, "")
	require.Equal(t, RoundFlop, h.g.CurrentRound())

	// Small blind acts first postflop.
	next = h.g.GetNextPlayerToAct()
	require.NotNil(t, next)
	assert.Equal(t, "carol", next.Address)
}

func TestJoinValidation(t *testing.T) {
	h := newHandTable(t, testOptions())
	h.mustAct("alice", ActionJoin, 1000, "seat=1")

	err := h.act("alice", ActionJoin, 1000, "seat=2")
	require.Error(t, err)
	assert.IsType(t, DuplicatePlayerError{}, err)

	err = h.act("bob", ActionJoin, 1000, "seat=1")
	require.Error(t, err)
	assert.IsType(t, SeatError{}, err)

	err = h.act("bob", ActionJoin, 50, "seat=2")
	require.Error(t, err)
	assert.IsType(t, BuyInError{}, err)

	// Without a seat request the lowest empty seat is used.
	h.mustAct("bob", ActionJoin, 1000, "")
	assert.Equal(t, 2, h.g.PlayerSeat("bob"))
}

func TestLeaveForfeitsLiveHand(t *testing.T) {
	h := newHandTable(t, testOptions())
	startHeadsUpHand(h, acesVersusKingsDeck())

	h.mustAct("bob", ActionLeave, 0, "")
	assert.False(t, h.g.Exists("bob"))

	// bob's blind stays in the pot; alice wins uncontested.
	require.Equal(t, RoundEnd, h.g.CurrentRound())
	assert.Equal(t, Chips(30), h.g.Winners()["alice"].Amount)
}

func TestNewHandRequiresDeckOrSeed(t *testing.T) {
	h := newHandTable(t, testOptions())
	seatHeadsUp(h)

	err := h.act("alice", ActionNewHand, 0, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deck")

	err = h.act("alice", ActionNewHand, 0, "seed=1-2-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "52")

	seeds := make([]string, 52)
	for i := range seeds {
		seeds[i] = fmt.Sprintf("%d", i*3)
	}
	require.NoError(t, h.act("alice", ActionNewHand, 0, "seed="+strings.Join(seeds, "-")))
	assert.Equal(t, RoundAnte, h.g.CurrentRound())
}

func TestNewHandRejectedMidHand(t *testing.T) {
	h := newHandTable(t, testOptions())
	startHeadsUpHand(h, acesVersusKingsDeck())

	err := h.act("alice", ActionNewHand, 0, "deck="+acesVersusKingsDeck())
	require.Error(t, err)
	assert.IsType(t, WrongRoundError{}, err)
}

func TestRakeTakenFromPot(t *testing.T) {
	options := testOptions()
	options.Owner = "bob"
	options.Rake = &RakeOptions{
		RakeFreeThreshold: 10,
		RakePercentage:    10,
		RakeCap:           100,
	}

	h := newHandTable(t, options)
	startHeadsUpHand(h, acesVersusKingsDeck())
	h.mustAct("bob", ActionFold, 0, "")

	// Pot 30, rake 10% = 3; the winner takes 27, the owner the rest.
	assert.Equal(t, Chips(27), h.g.Winners()["alice"].Amount)
	alice, _ := h.g.GetPlayer("alice")
	bob, _ := h.g.GetPlayer("bob")
	assert.Equal(t, Chips(1007), alice.Chips)
	assert.Equal(t, Chips(993), bob.Chips)
}
