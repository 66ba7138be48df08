package postgres

import (
	"context"
	"fmt"

	"learnpath-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CompletionStore persists user completions in Postgres. The unique
// (user_id, activity_id) key plus ON CONFLICT DO UPDATE gives the
// last-writer-wins upsert that serializes concurrent finishes.
type CompletionStore struct {
	pool *pgxpool.Pool
}

func NewCompletionStore(pool *pgxpool.Pool) *CompletionStore {
	return &CompletionStore{pool: pool}
}

func (s *CompletionStore) Upsert(ctx context.Context, completion domain.UserCompletion) (domain.UserCompletion, error) {
	if completion.UserID == "" {
		return domain.UserCompletion{}, domain.ErrUnauthenticated
	}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO user_completions (user_id, activity_id, correct_answers, total_questions, completed_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, activity_id) DO UPDATE SET
			correct_answers=EXCLUDED.correct_answers,
			total_questions=EXCLUDED.total_questions,
			completed_at=EXCLUDED.completed_at
		 RETURNING user_id, activity_id, correct_answers, total_questions, completed_at`,
		completion.UserID,
		completion.ActivityID,
		completion.CorrectAnswers,
		completion.TotalQuestions,
		completion.CompletedAt,
	).Scan(
		&completion.UserID,
		&completion.ActivityID,
		&completion.CorrectAnswers,
		&completion.TotalQuestions,
		&completion.CompletedAt,
	)
	if err != nil {
		return domain.UserCompletion{}, fmt.Errorf("upsert completion: %w", err)
	}
	return completion, nil
}

func (s *CompletionStore) Completed(ctx context.Context, userID string, activityIDs []string) (map[string]bool, error) {
	done := make(map[string]bool, len(activityIDs))
	if len(activityIDs) == 0 {
		return done, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT activity_id FROM user_completions
		 WHERE user_id = $1 AND activity_id = ANY($2)`,
		userID, activityIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var activityID string
		if err := rows.Scan(&activityID); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		done[activityID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completions: %w", err)
	}
	return done, nil
}
