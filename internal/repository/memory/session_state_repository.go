package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"shadowwork-be/internal/entity"
	"shadowwork-be/internal/repository/contract"
)

type SessionStateRepository struct {
	cache *cache.Cache
}

// NewSessionStateRepository builds an in-process store. States expire after
// the given TTL; zero means they never expire.
func NewSessionStateRepository(ttl time.Duration) contract.SessionStateRepository {
	expiration := ttl
	if expiration <= 0 {
		expiration = cache.NoExpiration
	}
	return &SessionStateRepository{
		cache: cache.New(expiration, 10*time.Minute),
	}
}

func stateKey(userId, sessionId uuid.UUID) string {
	return fmt.Sprintf("%s:%s", userId, sessionId)
}

func (r *SessionStateRepository) Load(_ context.Context, userId, sessionId uuid.UUID) (*entity.SessionState, error) {
	x, found := r.cache.Get(stateKey(userId, sessionId))
	if !found {
		return nil, nil
	}
	stored := x.(entity.SessionState)
	return &stored, nil
}

func (r *SessionStateRepository) Save(_ context.Context, state *entity.SessionState) error {
	// Store by value so later mutations of the caller's copy do not leak in.
	r.cache.Set(stateKey(state.UserId, state.SessionId), *state, cache.DefaultExpiration)
	return nil
}
