package game

import (
	"context"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// RedisGameStateTracker stores table snapshots in redis so multiple
// engine nodes can hand tables off to each other.
type RedisGameStateTracker struct {
	rdclient *redis.Client
}

func NewRedisGameStateTracker(redisURL string, redisPW string, redisDB int) *RedisGameStateTracker {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisGameStateTracker{
		rdclient: rdclient,
	}
}

func (r *RedisGameStateTracker) Load(tableAddress string) ([]byte, error) {
	snapshot, err := r.rdclient.Get(context.Background(), stateKey(tableAddress)).Result()
	if err == redis.Nil {
		return nil, errors.Errorf("game state for table %s is not found", tableAddress)
	} else if err != nil {
		return nil, err
	}
	return []byte(snapshot), nil
}

func (r *RedisGameStateTracker) Save(tableAddress string, snapshot []byte) error {
	return r.rdclient.Set(context.Background(), stateKey(tableAddress), snapshot, 0).Err()
}

func (r *RedisGameStateTracker) Remove(tableAddress string) error {
	return r.rdclient.Del(context.Background(), stateKey(tableAddress)).Err()
}

// RedisBacklogTracker stores per-table action backlogs as redis lists,
// appended in arrival order.
type RedisBacklogTracker struct {
	rdclient *redis.Client
}

func NewRedisBacklogTracker(redisURL string, redisPW string, redisDB int) *RedisBacklogTracker {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisBacklogTracker{
		rdclient: rdclient,
	}
}

func (r *RedisBacklogTracker) Load(tableAddress string) ([]BacklogAction, error) {
	entries, err := r.rdclient.LRange(context.Background(), backlogKey(tableAddress), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	backlog := make([]BacklogAction, 0, len(entries))
	for _, entry := range entries {
		var action BacklogAction
		if err := jsoniter.Unmarshal([]byte(entry), &action); err != nil {
			return nil, errors.Wrap(err, "decoding backlog entry")
		}
		backlog = append(backlog, action)
	}
	return backlog, nil
}

func (r *RedisBacklogTracker) Append(tableAddress string, action BacklogAction) error {
	encoded, err := jsoniter.Marshal(action)
	if err != nil {
		return errors.Wrap(err, "encoding backlog entry")
	}
	return r.rdclient.RPush(context.Background(), backlogKey(tableAddress), encoded).Err()
}

func (r *RedisBacklogTracker) Clear(tableAddress string) error {
	return r.rdclient.Del(context.Background(), backlogKey(tableAddress)).Err()
}

func stateKey(tableAddress string) string {
	return "holdem|state|" + tableAddress
}

func backlogKey(tableAddress string) string {
	return "holdem|backlog|" + tableAddress
}
