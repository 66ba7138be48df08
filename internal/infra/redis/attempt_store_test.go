package redis

import (
	"testing"
	"time"

	"learnpath-service/internal/domain"
	"learnpath-service/internal/quiz"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestAttemptStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewAttemptStore(client, time.Minute)

	attempt := quiz.NewAttempt("a2", []domain.Question{{ID: "q1", Variant: domain.VariantText}})
	store.Put("u1", "a2", attempt)
	if !mr.Exists("attempt:u1:a2") {
		t.Fatalf("expected liveness key to be set")
	}

	got, ok := store.Get("u1", "a2")
	if !ok || got != attempt {
		t.Fatalf("expected the stored attempt back")
	}

	store.Delete("u1", "a2")
	if mr.Exists("attempt:u1:a2") {
		t.Fatalf("expected liveness key to be removed")
	}
	if _, ok := store.Get("u1", "a2"); ok {
		t.Fatalf("expected attempt removed")
	}
}
