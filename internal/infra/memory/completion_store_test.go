package memory

import (
	"context"
	"testing"
	"time"

	"learnpath-service/internal/domain"
)

func TestCompletionUpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewCompletionStore()

	one, three := 1, 3
	first := domain.UserCompletion{
		UserID:         "u1",
		ActivityID:     "a1",
		CorrectAnswers: &one,
		TotalQuestions: &three,
		CompletedAt:    time.Date(2025, 6, 23, 10, 0, 0, 0, time.UTC),
	}
	if _, err := store.Upsert(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	two := 2
	second := first
	second.CorrectAnswers = &two
	second.CompletedAt = first.CompletedAt.Add(time.Hour)
	if _, err := store.Upsert(ctx, second); err != nil {
		t.Fatalf("upsert again: %v", err)
	}

	got, ok := store.Get("u1", "a1")
	if !ok {
		t.Fatalf("expected completion row")
	}
	if *got.CorrectAnswers != 2 || !got.CompletedAt.Equal(second.CompletedAt) {
		t.Fatalf("second upsert must win, got %+v", got)
	}

	done, err := store.Completed(ctx, "u1", []string{"a1", "a2"})
	if err != nil {
		t.Fatalf("completed: %v", err)
	}
	if !done["a1"] || done["a2"] {
		t.Fatalf("expected only a1 done, got %v", done)
	}
}

func TestUpsertRejectsAnonymousUser(t *testing.T) {
	store := NewCompletionStore()

	_, err := store.Upsert(context.Background(), domain.UserCompletion{ActivityID: "a1"})
	if err != domain.ErrUnauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}
