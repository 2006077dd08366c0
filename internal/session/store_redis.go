package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store using go-redis/v9. State is one JSON value per
// user so reset drops every hand-off key atomically.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore from a Redis URL.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisStore{client: redis.NewClient(opts), ttl: DefaultTTL}, nil
}

// Ping verifies connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func stateKey(userID string) string {
	return fmt.Sprintf("session:%s:state", userID)
}

func (s *RedisStore) Load(ctx context.Context, userID string) (State, error) {
	val, err := s.client.Get(ctx, stateKey(userID)).Bytes()
	if err == redis.Nil {
		return State{}, nil
	}
	if err != nil {
		return State{}, err
	}
	var state State
	if err := json.Unmarshal(val, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

func (s *RedisStore) Save(ctx context.Context, userID string, state State) error {
	val, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, stateKey(userID), val, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, userID string) (State, error) {
	prev, err := s.Load(ctx, userID)
	if err != nil {
		return State{}, err
	}
	next := State{Generation: prev.Generation + 1}
	if err := s.Save(ctx, userID, next); err != nil {
		return State{}, err
	}
	return next, nil
}

var _ Store = (*RedisStore)(nil)
