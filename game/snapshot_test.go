package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablerock/holdem/poker"
)

func midHandTable(t *testing.T) *handTable {
	h := newHandTable(t, testOptions())
	startHeadsUpHand(h, acesVersusKingsDeck())
	h.mustAct("bob", ActionCall, 0, "")
	h.mustAct("alice", ActionCheck, 0, "")
	require.Equal(t, RoundFlop, h.g.CurrentRound())
	return h
}

func TestTrustedSnapshotRoundTrip(t *testing.T) {
	h := midHandTable(t)

	first, err := h.g.ToJSON("")
	require.NoError(t, err)

	restored, err := FromJSON(first, poker.NewEvaluator())
	require.NoError(t, err)

	second, err := restored.ToJSON("")
	require.NoError(t, err)
	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Errorf("snapshot changed across restore (-first +second):\n%s", diff)
	}
}

func TestRestoredGameContinuesPlay(t *testing.T) {
	h := midHandTable(t)

	data, err := h.g.ToJSON("")
	require.NoError(t, err)
	restored, err := FromJSON(data, poker.NewEvaluator())
	require.NoError(t, err)

	assert.Equal(t, h.g.ActionIndex(), restored.ActionIndex())
	assert.Equal(t, h.g.GetPot(), restored.GetPot())

	next := restored.GetNextPlayerToAct()
	require.NotNil(t, next)
	assert.Equal(t, "alice", next.Address)

	require.NoError(t, restored.PerformAction("alice", ActionBet, restored.ActionIndex(), 40, "", 100))
	assert.Equal(t, Chips(80), restored.GetPot())
}

func TestSnapshotRedactsOtherHoleCards(t *testing.T) {
	h := midHandTable(t)

	data, err := h.g.ToJSON("bob")
	require.NoError(t, err)

	var snapshot gameSnapshot
	require.NoError(t, snapshotJSON.Unmarshal(data, &snapshot))

	assert.Empty(t, snapshot.Deck)
	assert.Empty(t, snapshot.Board)
	assert.NotEmpty(t, snapshot.DeckHash)

	byAddress := make(map[string]playerDTO, len(snapshot.Players))
	for _, p := range snapshot.Players {
		byAddress[p.Address] = p
	}
	assert.Equal(t, []string{"KS", "KH"}, byAddress["bob"].HoleCards)
	assert.Empty(t, byAddress["alice"].HoleCards)
}

func TestSnapshotRevealsShowingPlayers(t *testing.T) {
	h := newHandTable(t, testOptions())
	startHeadsUpHand(h, acesVersusKingsDeck())
	h.mustAct("bob", ActionCall, 0, "")
	h.mustAct("alice", ActionCheck, 0, "")
	for i := 0; i < 3; i++ {
		h.mustAct("alice", ActionCheck, 0, "")
		h.mustAct("bob", ActionCheck, 0, "")
	}
	h.mustAct("alice", ActionShow, 0, "")

	data, err := h.g.ToJSON("bob")
	require.NoError(t, err)

	var snapshot gameSnapshot
	require.NoError(t, snapshotJSON.Unmarshal(data, &snapshot))
	for _, p := range snapshot.Players {
		if p.Address == "alice" {
			assert.Equal(t, []string{"AS", "AH"}, p.HoleCards)
		}
	}
}

func TestSnapshotCarriesTurnHistoryInOrder(t *testing.T) {
	h := midHandTable(t)

	data, err := h.g.ToJSON("")
	require.NoError(t, err)

	var snapshot gameSnapshot
	require.NoError(t, snapshotJSON.Unmarshal(data, &snapshot))

	require.NotEmpty(t, snapshot.PreviousActions)
	last := 0
	for _, turn := range snapshot.PreviousActions {
		assert.Greater(t, turn.Index, last)
		last = turn.Index
	}
	assert.Equal(t, "texas-holdem", snapshot.Type)
	assert.Equal(t, "flop", snapshot.Round)
}

func TestFromJSONRejectsBadSnapshots(t *testing.T) {
	_, err := FromJSON([]byte("{not json"), poker.NewEvaluator())
	require.Error(t, err)

	// Duplicate seat.
	h := newHandTable(t, testOptions())
	seatHeadsUp(h)
	data, err := h.g.ToJSON("")
	require.NoError(t, err)

	var snapshot gameSnapshot
	require.NoError(t, snapshotJSON.Unmarshal(data, &snapshot))
	require.Len(t, snapshot.Players, 2)
	snapshot.Players[1].Seat = snapshot.Players[0].Seat
	mangled, err := snapshotJSON.Marshal(snapshot)
	require.NoError(t, err)
	_, err = FromJSON(mangled, poker.NewEvaluator())
	require.Error(t, err)
	assert.IsType(t, SeatError{}, err)
}
