package game

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/tablerock/holdem/logging"
)

var replayLogger = log.With().Str("logger_name", "game::replay").Logger()

// BacklogAction is one queued action awaiting application to a table:
// what a command ledger stores between snapshots.
type BacklogAction struct {
	PlayerID  string     `json:"playerId"`
	Action    ActionType `json:"action"`
	Index     int        `json:"index"`
	Amount    Chips      `json:"amount"`
	Data      string     `json:"data,omitempty"`
	Timestamp int64      `json:"timestamp"`
}

// ReplayActions applies a backlog to the game in ascending index
// order. A rejected action is logged and skipped, never fatal: the
// engine re-validates everything, so a stale or malicious backlog
// entry cannot corrupt the table. Returns the rejected actions.
func ReplayActions(g *TexasHoldemGame, backlog []BacklogAction) []BacklogAction {
	sorted := make([]BacklogAction, len(backlog))
	copy(sorted, backlog)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})

	var rejected []BacklogAction
	for _, entry := range sorted {
		err := g.PerformAction(entry.PlayerID, entry.Action, entry.Index, entry.Amount, entry.Data, entry.Timestamp)
		if err != nil {
			replayLogger.Warn().
				Str(logging.TableKey, g.Address()).
				Str(logging.PlayerKey, entry.PlayerID).
				Str(logging.ActionKey, string(entry.Action)).
				Int(logging.ActionIdxKey, entry.Index).
				Err(err).
				Msg("Skipping invalid backlog action")
			rejected = append(rejected, entry)
		}
	}
	return rejected
}
