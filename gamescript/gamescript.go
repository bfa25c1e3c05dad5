package gamescript

import (
	"fmt"
	"io/ioutil"

	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tablerock/holdem/game"
)

// Script contains a scripted table YAML: the game options, the players
// seated before the first hand, and the hands to play out. Scripts
// drive the CLI runner and the scenario tests; every action still goes
// through full engine validation.
type Script struct {
	Game          game.GameOptions `yaml:"game"`
	StartingSeats []StartingSeat   `yaml:"starting-seats"`
	Hands         []Hand           `yaml:"hands"`
}

type StartingSeat struct {
	Seat   int    `yaml:"seat"`
	Player string `yaml:"player"`
	BuyIn  uint64 `yaml:"buy-in"`
}

type Hand struct {
	Num     int            `yaml:"num"`
	Setup   HandSetup      `yaml:"setup"`
	Actions []ScriptAction `yaml:"actions"`
}

// HandSetup pins the hand's deck. Exactly one of deck (52 dash-joined
// mnemonics) or seed (52 dash-joined numbers) must be given.
type HandSetup struct {
	Deck string `yaml:"deck"`
	Seed string `yaml:"seed"`
}

type ScriptAction struct {
	Player string          `yaml:"player"`
	Action game.ActionType `yaml:"action"`
	Amount uint64          `yaml:"amount"`
	Data   string          `yaml:"data"`
}

// ReadGameScript reads the game script YAML file.
func ReadGameScript(fileName string) (*Script, error) {
	bytes, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "Error reading game script file [%s]", fileName)
	}
	var script Script
	if err := yaml.Unmarshal(bytes, &script); err != nil {
		return nil, errors.Wrapf(err, "Error parsing YAML file [%s]", fileName)
	}
	if err := script.Validate(); err != nil {
		return nil, errors.Wrapf(err, "Error validating script [%s]", fileName)
	}
	return &script, nil
}

// Validate checks the script for internal consistency before any of
// it touches a table.
func (s *Script) Validate() error {
	if s.Game.MaxPlayers < 2 {
		return fmt.Errorf("Invalid max-players [%d]", s.Game.MaxPlayers)
	}

	startingSeats := mapset.NewSet()
	playerNames := mapset.NewSet()

	// Check starting seat numbers and player names are unique.
	for _, seat := range s.StartingSeats {
		if seat.Seat < 1 || seat.Seat > s.Game.MaxPlayers {
			return fmt.Errorf("Invalid seat number [%d] in starting-seats", seat.Seat)
		}
		if startingSeats.Contains(seat.Seat) {
			return fmt.Errorf("Duplicate seat number [%d] in starting-seats", seat.Seat)
		}
		startingSeats.Add(seat.Seat)
		if playerNames.Contains(seat.Player) {
			return fmt.Errorf("Duplicate player name [%s] in starting-seats", seat.Player)
		}
		playerNames.Add(seat.Player)
	}

	// Every scripted action must come from a seated player.
	for i, hand := range s.Hands {
		handNum := i + 1
		if hand.Setup.Deck == "" && hand.Setup.Seed == "" {
			return fmt.Errorf("Hand [%d] has no deck or seed in setup", handNum)
		}
		for _, action := range hand.Actions {
			if action.Action == game.ActionJoin {
				continue
			}
			if !playerNames.Contains(action.Player) {
				return fmt.Errorf("Unknown player [%s] in hand [%d]", action.Player, handNum)
			}
		}
	}
	return nil
}

// SetupDeck returns the hand's deck as the data payload a new-hand
// action expects.
func (h *Hand) SetupDeck() string {
	if h.Setup.Deck != "" {
		return "deck=" + h.Setup.Deck
	}
	return "seed=" + h.Setup.Seed
}
