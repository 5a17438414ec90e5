// internal/domain/profile/store.go
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/smartshop-backend/internal/infrastructure/database/redis"
)

// ErrNotFound is returned when no profile has been saved yet
var ErrNotFound = errors.New("profile not found")

// Store persists user profiles. Profiles outlive sessions, so
// implementations must not expire entries.
type Store interface {
	Load(ctx context.Context, sessionID string) (*UserProfile, error)
	Save(ctx context.Context, sessionID string, p *UserProfile) error
}

// RedisStore keeps profiles in Redis without a TTL
type RedisStore struct {
	store redis.Store
}

// NewRedisStore creates a Redis-backed profile store
func NewRedisStore(store redis.Store) *RedisStore {
	return &RedisStore{store: store}
}

func profileKey(sessionID string) string {
	return fmt.Sprintf("profile:%s", sessionID)
}

// Load returns the saved profile, ErrNotFound when none exists
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*UserProfile, error) {
	var p UserProfile
	err := s.store.GetJSON(ctx, profileKey(sessionID), &p)
	if errors.Is(err, redis.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &p, nil
}

// Save persists the profile with no expiry
func (s *RedisStore) Save(ctx context.Context, sessionID string, p *UserProfile) error {
	if err := s.store.SetJSON(ctx, profileKey(sessionID), p, 0); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
