package game

import (
	"sync"

	"github.com/pkg/errors"
)

// MemoryGameStateTracker keeps snapshots in process memory. Used by
// tests and single-node deployments.
type MemoryGameStateTracker struct {
	mu     sync.RWMutex
	tables map[string][]byte
}

func NewMemoryGameStateTracker() *MemoryGameStateTracker {
	return &MemoryGameStateTracker{
		tables: make(map[string][]byte),
	}
}

func (m *MemoryGameStateTracker) Load(tableAddress string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshot, ok := m.tables[tableAddress]
	if !ok {
		return nil, errors.Errorf("game state for table %s is not found", tableAddress)
	}
	out := make([]byte, len(snapshot))
	copy(out, snapshot)
	return out, nil
}

func (m *MemoryGameStateTracker) Save(tableAddress string, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(snapshot))
	copy(stored, snapshot)
	m.tables[tableAddress] = stored
	return nil
}

func (m *MemoryGameStateTracker) Remove(tableAddress string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, tableAddress)
	return nil
}

// MemoryBacklogTracker keeps per-table action backlogs in process
// memory.
type MemoryBacklogTracker struct {
	mu       sync.RWMutex
	backlogs map[string][]BacklogAction
}

func NewMemoryBacklogTracker() *MemoryBacklogTracker {
	return &MemoryBacklogTracker{
		backlogs: make(map[string][]BacklogAction),
	}
}

func (m *MemoryBacklogTracker) Load(tableAddress string) ([]BacklogAction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	backlog := m.backlogs[tableAddress]
	out := make([]BacklogAction, len(backlog))
	copy(out, backlog)
	return out, nil
}

func (m *MemoryBacklogTracker) Append(tableAddress string, action BacklogAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backlogs[tableAddress] = append(m.backlogs[tableAddress], action)
	return nil
}

func (m *MemoryBacklogTracker) Clear(tableAddress string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.backlogs, tableAddress)
	return nil
}
