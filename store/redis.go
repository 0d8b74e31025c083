package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	personastate "github.com/cyberFlowTech/zapry-persona-state-go"
)

// RedisStateStore implements StateStore on Redis. Snapshots are stored as
// JSON values under "{prefix}:{persona_id}:{user_id}".
type RedisStateStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	ctx    context.Context
}

// RedisStoreConfig configures the Redis store.
type RedisStoreConfig struct {
	Prefix string        // key prefix, default "state"
	TTL    time.Duration // snapshot expiry, 0 = no expiry
}

// NewRedisStateStore creates a StateStore backed by Redis. Works with a
// Client, ClusterClient, or Ring.
func NewRedisStateStore(client redis.UniversalClient, config ...RedisStoreConfig) *RedisStateStore {
	cfg := RedisStoreConfig{Prefix: "state"}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "state"
	}
	return &RedisStateStore{
		client: client,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
		ctx:    context.Background(),
	}
}

func (r *RedisStateStore) key(personaID, userID string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, personaID, userID)
}

func (r *RedisStateStore) Save(personaID, userID string, snap *personastate.EngineSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return r.client.Set(r.ctx, r.key(personaID, userID), data, r.ttl).Err()
}

func (r *RedisStateStore) Load(personaID, userID string) (*personastate.EngineSnapshot, error) {
	data, err := r.client.Get(r.ctx, r.key(personaID, userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var snap personastate.EngineSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &snap, nil
}

func (r *RedisStateStore) Delete(personaID, userID string) error {
	return r.client.Del(r.ctx, r.key(personaID, userID)).Err()
}

func (r *RedisStateStore) ListUsers(personaID string) ([]string, error) {
	pattern := fmt.Sprintf("%s:%s:*", r.prefix, personaID)
	keys, err := r.client.Keys(r.ctx, pattern).Result()
	if err != nil {
		return nil, err
	}
	prefixLen := len(fmt.Sprintf("%s:%s:", r.prefix, personaID))
	users := make([]string, 0, len(keys))
	for _, k := range keys {
		if len(k) > prefixLen {
			users = append(users, k[prefixLen:])
		}
	}
	return users, nil
}

// Close closes the underlying client.
func (r *RedisStateStore) Close() error {
	return r.client.Close()
}

// Compile-time interface check.
var _ personastate.StateStore = (*RedisStateStore)(nil)
