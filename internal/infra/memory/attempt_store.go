package memory

import (
	"sync"

	"learnpath-service/internal/quiz"
)

// AttemptStore is an in-memory implementation of app.AttemptRepository.
// Attempts are keyed per (user, activity); storing again replaces the open
// attempt, which is how re-opening a quiz discards the previous ledger.
type AttemptStore struct {
	mu       sync.RWMutex
	attempts map[string]*quiz.Attempt
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{
		attempts: make(map[string]*quiz.Attempt),
	}
}

func (s *AttemptStore) Put(userID, activityID string, attempt *quiz.Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[attemptKey(userID, activityID)] = attempt
}

func (s *AttemptStore) Get(userID, activityID string) (*quiz.Attempt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.attempts[attemptKey(userID, activityID)]
	return attempt, ok
}

func (s *AttemptStore) Delete(userID, activityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, attemptKey(userID, activityID))
}

func attemptKey(userID, activityID string) string {
	return userID + "|" + activityID
}
