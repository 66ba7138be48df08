package redis

import (
	"context"
	"sync"
	"time"

	"learnpath-service/internal/quiz"
	"github.com/redis/go-redis/v9"
)

// AttemptStore is a Redis-aware implementation of app.AttemptRepository.
// Notes:
//   - Attempts stay in a local in-memory map; the state machine is driven by
//     a single connection and never needs to round-trip per transition.
//   - Redis marks attempt liveness so operators can see open attempts across
//     instances (and it could be extended to shed abandoned ones by TTL).
type AttemptStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	attempts map[string]*quiz.Attempt
}

func NewAttemptStore(client *redis.Client, ttl time.Duration) *AttemptStore {
	return &AttemptStore{
		client:   client,
		ttl:      ttl,
		attempts: make(map[string]*quiz.Attempt),
	}
}

func (s *AttemptStore) Put(userID, activityID string, attempt *quiz.Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[s.mapKey(userID, activityID)] = attempt
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(userID, activityID), "1", s.ttl).Err()
}

func (s *AttemptStore) Get(userID, activityID string) (*quiz.Attempt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.attempts[s.mapKey(userID, activityID)]
	return attempt, ok
}

func (s *AttemptStore) Delete(userID, activityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, s.mapKey(userID, activityID))
	_ = s.client.Del(context.Background(), s.key(userID, activityID)).Err()
}

func (s *AttemptStore) mapKey(userID, activityID string) string {
	return userID + "|" + activityID
}

func (s *AttemptStore) key(userID, activityID string) string {
	return "attempt:" + userID + ":" + activityID
}
