package game

// GameStateTracker stores table snapshots (the trusted ToJSON form)
// keyed by table address.
type GameStateTracker interface {
	Load(tableAddress string) ([]byte, error)
	Save(tableAddress string, snapshot []byte) error
	Remove(tableAddress string) error
}

// BacklogTracker stores the actions queued against a table since its
// last snapshot.
type BacklogTracker interface {
	Load(tableAddress string) ([]BacklogAction, error)
	Append(tableAddress string, action BacklogAction) error
	Clear(tableAddress string) error
}
