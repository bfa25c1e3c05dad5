package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	caches "github.com/tablerock/holdem/caching"
	"github.com/tablerock/holdem/logging"
	"github.com/tablerock/holdem/util"
)

var managerLogger = log.With().Str("logger_name", "game::manager").Logger()

// Manager owns the lifecycle of tables: creating them, queueing
// actions against them, and the load -> replay backlog -> apply ->
// save cycle that keeps the persisted snapshot authoritative.
type Manager struct {
	evaluator HandEvaluator
	states    GameStateTracker
	backlogs  BacklogTracker
	cache     *caches.SnapshotCache
	timer     *TurnTimer

	mu           sync.Mutex
	activeTables map[string]*TexasHoldemGame
}

func NewManager(evaluator HandEvaluator, states GameStateTracker, backlogs BacklogTracker, cache *caches.SnapshotCache) *Manager {
	return &Manager{
		evaluator:    evaluator,
		states:       states,
		backlogs:     backlogs,
		cache:        cache,
		activeTables: make(map[string]*TexasHoldemGame),
	}
}

// SetTurnTimer attaches a turn timer that is re-armed after every
// applied action.
func (m *Manager) SetTurnTimer(timer *TurnTimer) {
	m.timer = timer
}

// CreateTable creates and persists a new empty table, returning its
// generated address.
func (m *Manager) CreateTable(options GameOptions) (string, error) {
	address := uuid.NewString()
	g := NewTexasHoldemGame(address, options, m.evaluator)
	if err := m.save(g); err != nil {
		return "", err
	}

	m.mu.Lock()
	m.activeTables[address] = g
	util.Metrics.SetActiveTablesCount(len(m.activeTables))
	m.mu.Unlock()

	managerLogger.Info().
		Str(logging.TableKey, address).
		Str("gameType", string(options.Type)).
		Msg("Created table")
	return address, nil
}

// LoadTable restores a table from cache or the state tracker and
// replays any backlog accumulated since the snapshot was taken.
func (m *Manager) LoadTable(address string) (*TexasHoldemGame, error) {
	m.mu.Lock()
	if g, ok := m.activeTables[address]; ok {
		m.mu.Unlock()
		return g, nil
	}
	m.mu.Unlock()

	snapshot, ok := []byte(nil), false
	if m.cache != nil {
		snapshot, ok = m.cache.Get(address)
	}
	if !ok {
		var err error
		snapshot, err = m.states.Load(address)
		if err != nil {
			return nil, err
		}
	}

	g, err := FromJSON(snapshot, m.evaluator)
	if err != nil {
		return nil, err
	}
	util.Metrics.SnapshotRestored()

	backlog, err := m.backlogs.Load(address)
	if err != nil {
		return nil, err
	}
	if len(backlog) > 0 {
		rejected := ReplayActions(g, backlog)
		for range backlog {
			util.Metrics.BacklogActionReplayed()
		}
		for range rejected {
			util.Metrics.ActionRejected()
		}
		if err := m.save(g); err != nil {
			return nil, err
		}
		if err := m.backlogs.Clear(address); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	m.activeTables[address] = g
	util.Metrics.SetActiveTablesCount(len(m.activeTables))
	m.mu.Unlock()
	return g, nil
}

// QueueAction records an action in the table's backlog without
// applying it. A later LoadTable replays it through full validation.
func (m *Manager) QueueAction(address string, action BacklogAction) error {
	if action.Timestamp == 0 {
		action.Timestamp = time.Now().Unix()
	}
	return m.backlogs.Append(address, action)
}

// PerformAction applies an action to a loaded table and persists the
// result.
func (m *Manager) PerformAction(address string, action BacklogAction) error {
	g, err := m.LoadTable(address)
	if err != nil {
		return err
	}

	timestamp := action.Timestamp
	if timestamp == 0 {
		timestamp = time.Now().Unix()
	}

	wasEnded := g.CurrentRound() == RoundEnd
	err = g.PerformAction(action.PlayerID, action.Action, action.Index, action.Amount, action.Data, timestamp)
	if err != nil {
		util.Metrics.ActionRejected()
		return err
	}
	util.Metrics.ActionApplied()
	if !wasEnded && g.CurrentRound() == RoundEnd {
		util.Metrics.HandCompleted()
	}

	if err := m.save(g); err != nil {
		return err
	}

	if m.timer != nil {
		if next := g.GetNextPlayerToAct(); next != nil {
			m.timer.Reset(address, next.Address)
		} else {
			m.timer.Cancel(address)
		}
	}
	return nil
}

// RemoveTable drops a table from memory, cache and persistence.
func (m *Manager) RemoveTable(address string) error {
	m.mu.Lock()
	delete(m.activeTables, address)
	util.Metrics.SetActiveTablesCount(len(m.activeTables))
	m.mu.Unlock()

	if m.cache != nil {
		m.cache.Remove(address)
	}
	if err := m.backlogs.Clear(address); err != nil {
		return err
	}
	return m.states.Remove(address)
}

func (m *Manager) save(g *TexasHoldemGame) error {
	snapshot, err := g.ToJSON("")
	if err != nil {
		return err
	}
	if err := m.states.Save(g.Address(), snapshot); err != nil {
		return err
	}
	if m.cache != nil {
		if err := m.cache.Add(g.Address(), snapshot); err != nil {
			managerLogger.Warn().
				Str(logging.TableKey, g.Address()).
				Err(err).
				Msg("Unable to cache snapshot")
		}
	}
	return nil
}
