package caches

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// SnapshotCache keeps recently used table snapshots in memory so hot
// tables skip the persistence round trip on every action.
type SnapshotCache struct {
	snapshots *lru.Cache
}

func NewSnapshotCache(size int) (*SnapshotCache, error) {
	snapshots, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to initialize snapshot cache")
	}
	return &SnapshotCache{
		snapshots: snapshots,
	}, nil
}

func (c *SnapshotCache) Add(tableAddress string, snapshot []byte) error {
	if tableAddress == "" {
		return fmt.Errorf("Invalid table address [%s]", tableAddress)
	}
	stored := make([]byte, len(snapshot))
	copy(stored, snapshot)
	c.snapshots.Add(tableAddress, stored)
	return nil
}

func (c *SnapshotCache) Get(tableAddress string) ([]byte, bool) {
	v, exists := c.snapshots.Get(tableAddress)
	if !exists {
		return nil, false
	}
	return v.([]byte), true
}

func (c *SnapshotCache) Remove(tableAddress string) {
	c.snapshots.Remove(tableAddress)
}

func (c *SnapshotCache) Len() int {
	return c.snapshots.Len()
}
