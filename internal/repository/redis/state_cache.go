package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

// StateCache is a TTL'd bandit state store for hosts that checkpoint hot
// contexts between restarts without a SQL round-trip. It implements the
// same StateRepository interface as the postgres repository.
type StateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStateCache(client *redis.Client, ttl time.Duration) *StateCache {
	return &StateCache{
		client: client,
		ttl:    ttl,
	}
}

func stateKey(contextID string) string {
	return fmt.Sprintf("bandit:state:%s", contextID)
}

func (c *StateCache) GetState(ctx context.Context, contextID string) (*domain.ContextState, error) {
	val, err := c.client.Get(ctx, stateKey(contextID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bandit state from redis: %w", err)
	}

	var state domain.ContextState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bandit state: %w", err)
	}

	return &state, nil
}

func (c *StateCache) SaveState(ctx context.Context, contextID string, state *domain.ContextState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal bandit state: %w", err)
	}

	if err := c.client.Set(ctx, stateKey(contextID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store bandit state in redis: %w", err)
	}

	return nil
}
