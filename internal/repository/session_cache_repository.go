package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hangul-quiz/internal/cache"
	"hangul-quiz/internal/domain"
	"hangul-quiz/internal/session"
)

// SessionCacheRepository stores level test sessions as JSON in a domain.Cache.
// Every write refreshes the TTL.
type SessionCacheRepository struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewSessionCacheRepository creates a session store with the given TTL.
func NewSessionCacheRepository(c domain.Cache, ttl time.Duration) *SessionCacheRepository {
	return &SessionCacheRepository{cache: c, ttl: ttl}
}

// Get returns the stored session or a session-not-found DomainError.
func (r *SessionCacheRepository) Get(ctx context.Context, id string) (session.State, error) {
	raw, err := r.cache.Get(ctx, cache.SessionKey(id))
	if errors.Is(err, domain.ErrCacheMiss) {
		return session.State{}, domain.NewSessionNotFoundError(id)
	}
	if err != nil {
		return session.State{}, fmt.Errorf("failed to get session %s: %w", id, err)
	}

	var state session.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return session.State{}, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return state, nil
}

func (r *SessionCacheRepository) Save(ctx context.Context, state session.State) error {
	if state.ID == "" {
		return domain.NewInvalidInputError("session id is required")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", state.ID, err)
	}
	if err := r.cache.Set(ctx, cache.SessionKey(state.ID), string(raw), r.ttl); err != nil {
		return fmt.Errorf("failed to save session %s: %w", state.ID, err)
	}
	return nil
}

func (r *SessionCacheRepository) Delete(ctx context.Context, id string) error {
	return r.cache.Delete(ctx, cache.SessionKey(id))
}
