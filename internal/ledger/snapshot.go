package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Snapshotter persists the whole ledger state as a single blob. Load
// returns nil without error when no snapshot exists yet.
type Snapshotter interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, state *State) error
}

// RedisSnapshotter stores the serialized state under one Redis key.
type RedisSnapshotter struct {
	client *redis.Client
	key    string
}

// NewRedisSnapshotter constructs a snapshotter bound to key.
func NewRedisSnapshotter(client *redis.Client, key string) *RedisSnapshotter {
	return &RedisSnapshotter{client: client, key: key}
}

// Load reads and decodes the snapshot blob.
func (s *RedisSnapshotter) Load(ctx context.Context) (*State, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: load snapshot: %w", err)
	}
	var state State
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("ledger: decode snapshot: %w", err)
	}
	return &state, nil
}

// Save writes the full state blob, replacing any previous snapshot.
func (s *RedisSnapshotter) Save(ctx context.Context, state *State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("ledger: encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("ledger: write snapshot: %w", err)
	}
	return nil
}
