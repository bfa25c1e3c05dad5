package gamescript

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	caches "github.com/tablerock/holdem/caching"
	"github.com/tablerock/holdem/game"
	"github.com/tablerock/holdem/logging"
	"github.com/tablerock/holdem/poker"
)

var runnerLogger = log.With().Str("logger_name", "gamescript::runner").Logger()

// Runner plays a script through a table manager, one action at a time.
// Every scripted action passes through the same validation path as a
// live one.
type Runner struct {
	script  *Script
	manager *game.Manager
	address string
	now     int64
}

func NewRunner(script *Script) (*Runner, error) {
	cache, err := caches.NewSnapshotCache(128)
	if err != nil {
		return nil, err
	}
	manager := game.NewManager(
		poker.NewEvaluator(),
		game.NewMemoryGameStateTracker(),
		game.NewMemoryBacklogTracker(),
		cache,
	)
	return NewRunnerWithManager(script, manager), nil
}

// NewRunnerWithManager plays the script through a caller-supplied
// manager, so scripts can run against non-default persistence.
func NewRunnerWithManager(script *Script, manager *game.Manager) *Runner {
	return &Runner{
		script:  script,
		manager: manager,
		now:     1,
	}
}

// Run seats the starting players and plays every scripted hand,
// returning the table in its final state.
func (r *Runner) Run() (*game.TexasHoldemGame, error) {
	address, err := r.manager.CreateTable(r.script.Game)
	if err != nil {
		return nil, err
	}
	r.address = address

	for _, seat := range r.script.StartingSeats {
		data := fmt.Sprintf("seat=%d", seat.Seat)
		if err := r.apply(seat.Player, game.ActionJoin, seat.BuyIn, data); err != nil {
			return nil, errors.Wrapf(err, "seating player [%s]", seat.Player)
		}
	}

	for i, hand := range r.script.Hands {
		handNum := i + 1
		runnerLogger.Info().
			Str(logging.TableKey, r.address).
			Int(logging.HandNumKey, handNum).
			Msg("Playing scripted hand")

		dealerPlayer := r.script.StartingSeats[0].Player
		if err := r.apply(dealerPlayer, game.ActionNewHand, 0, hand.SetupDeck()); err != nil {
			return nil, errors.Wrapf(err, "starting hand [%d]", handNum)
		}
		for _, action := range hand.Actions {
			if err := r.apply(action.Player, action.Action, action.Amount, action.Data); err != nil {
				return nil, errors.Wrapf(err, "hand [%d] action [%s %s]", handNum, action.Player, action.Action)
			}
		}
	}

	return r.manager.LoadTable(r.address)
}

func (r *Runner) apply(player string, action game.ActionType, amount uint64, data string) error {
	g, err := r.manager.LoadTable(r.address)
	if err != nil {
		return err
	}
	entry := game.BacklogAction{
		PlayerID:  player,
		Action:    action,
		Index:     g.ActionIndex(),
		Amount:    amount,
		Data:      data,
		Timestamp: r.now,
	}
	r.now++
	return r.manager.PerformAction(r.address, entry)
}
