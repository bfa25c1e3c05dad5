package game

import (
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"

	"github.com/tablerock/holdem/logging"
)

var timerLogger = log.With().Str("logger_name", "game::timer").Logger()

// TimeoutFunc is invoked when a player runs out of time to act. The
// table address and the player who stalled are passed so the callback
// can queue a forced fold or sit-out.
type TimeoutFunc func(tableAddress string, playerID string)

// TurnTimer tracks one pending turn per table and fires the timeout
// callback when the acting player takes too long. The clock is
// injected so tests can drive time manually.
type TurnTimer struct {
	clock     quartz.Clock
	timeout   time.Duration
	onTimeout TimeoutFunc

	mu      sync.Mutex
	pending map[string]*quartz.Timer
}

func NewTurnTimer(clock quartz.Clock, timeout time.Duration, onTimeout TimeoutFunc) *TurnTimer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &TurnTimer{
		clock:     clock,
		timeout:   timeout,
		onTimeout: onTimeout,
		pending:   make(map[string]*quartz.Timer),
	}
}

// Reset arms the timer for the player now expected to act, replacing
// any previous pending turn for the table.
func (t *TurnTimer) Reset(tableAddress string, playerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.pending[tableAddress]; ok {
		timer.Stop()
	}
	t.pending[tableAddress] = t.clock.AfterFunc(t.timeout, func() {
		timerLogger.Warn().
			Str(logging.TableKey, tableAddress).
			Str(logging.PlayerKey, playerID).
			Msg("Player turn timed out")
		t.mu.Lock()
		delete(t.pending, tableAddress)
		t.mu.Unlock()
		t.onTimeout(tableAddress, playerID)
	})
}

// Cancel drops the pending turn for the table, if any.
func (t *TurnTimer) Cancel(tableAddress string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.pending[tableAddress]; ok {
		timer.Stop()
		delete(t.pending, tableAddress)
	}
}
