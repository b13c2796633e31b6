package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"shadowwork-be/internal/entity"
	"shadowwork-be/internal/repository/contract"
)

type SessionStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStateRepository(client *redis.Client, ttl time.Duration) contract.SessionStateRepository {
	return &SessionStateRepository{
		client: client,
		ttl:    ttl,
	}
}

func stateKey(userId, sessionId uuid.UUID) string {
	return fmt.Sprintf("session_state:%s:%s", userId, sessionId)
}

func (r *SessionStateRepository) Load(ctx context.Context, userId, sessionId uuid.UUID) (*entity.SessionState, error) {
	raw, err := r.client.Get(ctx, stateKey(userId, sessionId)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get session state: %w", err)
	}
	var state entity.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return &state, nil
}

func (r *SessionStateRepository) Save(ctx context.Context, state *entity.SessionState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	if err := r.client.Set(ctx, stateKey(state.UserId, state.SessionId), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session state: %w", err)
	}
	return nil
}
