package gamescript

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tablerock/holdem/game"
)

func TestReadGameScript(t *testing.T) {
	script, err := ReadGameScript("test_scripts/script1.yaml")
	if err != nil {
		t.Fatalf("ReadGameScript returned error [%s]", err)
	}
	if script == nil {
		t.Fatal("ReadGameScript returned nil data")
	}

	expectedOptions := game.GameOptions{
		MinBuyIn:   100,
		MaxBuyIn:   2000,
		MinPlayers: 2,
		MaxPlayers: 9,
		SmallBlind: 10,
		BigBlind:   20,
		Timeout:    30,
		Type:       game.GameTypeCash,
	}
	if !cmp.Equal(expectedOptions, script.Game) {
		t.Errorf("Game options do not match expected\n%s", cmp.Diff(expectedOptions, script.Game))
	}

	expectedSeats := []StartingSeat{
		{Seat: 1, Player: "alice", BuyIn: 1000},
		{Seat: 2, Player: "bob", BuyIn: 1000},
	}
	if !cmp.Equal(expectedSeats, script.StartingSeats) {
		t.Errorf("Starting seats do not match expected\n%s", cmp.Diff(expectedSeats, script.StartingSeats))
	}

	if len(script.Hands) != 1 {
		t.Fatalf("Expected 1 hand, got %d", len(script.Hands))
	}
	hand := script.Hands[0]
	if hand.Setup.Deck == "" {
		t.Error("Hand 1 setup deck is empty")
	}
	if len(hand.Actions) != 13 {
		t.Errorf("Expected 13 actions in hand 1, got %d", len(hand.Actions))
	}
	firstAction := ScriptAction{Player: "bob", Action: game.ActionSmallBlind}
	if !cmp.Equal(firstAction, hand.Actions[0]) {
		t.Errorf("First action does not match expected\n%s", cmp.Diff(firstAction, hand.Actions[0]))
	}
}

func TestReadGameScriptMissingFile(t *testing.T) {
	_, err := ReadGameScript("test_scripts/does-not-exist.yaml")
	if err == nil {
		t.Fatal("Expected error for missing script file")
	}
}

func TestValidateRejectsBadScripts(t *testing.T) {
	base := func() Script {
		return Script{
			Game: game.GameOptions{MinPlayers: 2, MaxPlayers: 9},
			StartingSeats: []StartingSeat{
				{Seat: 1, Player: "alice", BuyIn: 1000},
				{Seat: 2, Player: "bob", BuyIn: 1000},
			},
			Hands: []Hand{
				{Num: 1, Setup: HandSetup{Deck: "AS-KS"}},
			},
		}
	}

	script := base()
	if err := script.Validate(); err != nil {
		t.Fatalf("Base script should be valid, got [%s]", err)
	}

	script = base()
	script.Game.MaxPlayers = 1
	if err := script.Validate(); err == nil {
		t.Error("Expected error for max-players below 2")
	}

	script = base()
	script.StartingSeats[1].Seat = 1
	if err := script.Validate(); err == nil {
		t.Error("Expected error for duplicate seat")
	}

	script = base()
	script.StartingSeats[1].Player = "alice"
	if err := script.Validate(); err == nil {
		t.Error("Expected error for duplicate player name")
	}

	script = base()
	script.StartingSeats[0].Seat = 10
	if err := script.Validate(); err == nil {
		t.Error("Expected error for seat beyond max-players")
	}

	script = base()
	script.Hands[0].Setup = HandSetup{}
	if err := script.Validate(); err == nil {
		t.Error("Expected error for hand without deck or seed")
	}

	script = base()
	script.Hands[0].Actions = []ScriptAction{{Player: "mallory", Action: game.ActionCheck}}
	if err := script.Validate(); err == nil {
		t.Error("Expected error for action by unknown player")
	}
}

func TestSetupDeckPayload(t *testing.T) {
	hand := Hand{Setup: HandSetup{Deck: "AS-KS"}}
	if got := hand.SetupDeck(); got != "deck=AS-KS" {
		t.Errorf("SetupDeck returned [%s]", got)
	}
	hand = Hand{Setup: HandSetup{Seed: "1-2-3"}}
	if got := hand.SetupDeck(); got != "seed=1-2-3" {
		t.Errorf("SetupDeck returned [%s]", got)
	}
}

func TestRunnerPlaysScriptedHand(t *testing.T) {
	script, err := ReadGameScript("test_scripts/script1.yaml")
	if err != nil {
		t.Fatalf("ReadGameScript returned error [%s]", err)
	}

	runner, err := NewRunner(script)
	if err != nil {
		t.Fatalf("NewRunner returned error [%s]", err)
	}
	table, err := runner.Run()
	if err != nil {
		t.Fatalf("Run returned error [%s]", err)
	}

	if table.CurrentRound() != game.RoundEnd {
		t.Errorf("Expected hand to finish, round is [%s]", table.CurrentRound())
	}
	winners := table.Winners()
	winner, ok := winners["alice"]
	if !ok {
		t.Fatalf("Expected alice to win, winners: %v", winners)
	}
	if winner.Amount != 40 {
		t.Errorf("Expected pot of 40, got %d", winner.Amount)
	}

	alice, err := table.GetPlayer("alice")
	if err != nil {
		t.Fatalf("GetPlayer returned error [%s]", err)
	}
	if alice.Chips != 1020 {
		t.Errorf("Expected alice stack 1020, got %d", alice.Chips)
	}
}
