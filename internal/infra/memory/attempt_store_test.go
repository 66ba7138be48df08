package memory

import (
	"testing"

	"learnpath-service/internal/domain"
	"learnpath-service/internal/quiz"
)

func TestAttemptStoreLifecycle(t *testing.T) {
	store := NewAttemptStore()

	first := quiz.NewAttempt("a1", []domain.Question{{ID: "q1", Variant: domain.VariantText}})
	store.Put("u1", "a1", first)

	got, ok := store.Get("u1", "a1")
	if !ok || got != first {
		t.Fatalf("expected stored attempt back")
	}
	if _, ok := store.Get("u2", "a1"); ok {
		t.Fatalf("attempts must be scoped per user")
	}

	// Re-opening replaces the open attempt.
	second := quiz.NewAttempt("a1", []domain.Question{{ID: "q1", Variant: domain.VariantText}})
	store.Put("u1", "a1", second)
	if got, _ := store.Get("u1", "a1"); got != second {
		t.Fatalf("expected replacement attempt")
	}

	store.Delete("u1", "a1")
	if _, ok := store.Get("u1", "a1"); ok {
		t.Fatalf("expected attempt removed")
	}
}
