package memory

import (
	"context"
	"sync"

	"learnpath-service/internal/domain"
)

// CompletionStore is an in-memory implementation of app.CompletionStore.
// Upsert overwrites on the (user, activity) key, so a retake never adds a
// second row.
type CompletionStore struct {
	mu          sync.RWMutex
	completions map[string]domain.UserCompletion
}

func NewCompletionStore() *CompletionStore {
	return &CompletionStore{
		completions: make(map[string]domain.UserCompletion),
	}
}

func (s *CompletionStore) Upsert(_ context.Context, completion domain.UserCompletion) (domain.UserCompletion, error) {
	if completion.UserID == "" {
		return domain.UserCompletion{}, domain.ErrUnauthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completions[completionKey(completion.UserID, completion.ActivityID)] = completion
	return completion, nil
}

func (s *CompletionStore) Completed(_ context.Context, userID string, activityIDs []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	done := make(map[string]bool, len(activityIDs))
	for _, id := range activityIDs {
		if _, ok := s.completions[completionKey(userID, id)]; ok {
			done[id] = true
		}
	}
	return done, nil
}

// Get returns the stored completion fact, if any.
func (s *CompletionStore) Get(userID, activityID string) (domain.UserCompletion, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	completion, ok := s.completions[completionKey(userID, activityID)]
	return completion, ok
}

func completionKey(userID, activityID string) string {
	return userID + "|" + activityID
}
