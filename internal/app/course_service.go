package app

import (
	"context"
	"time"

	"learnpath-service/internal/domain"
	"learnpath-service/internal/graph"
	"learnpath-service/internal/quiz"
)

// CourseRepository loads course content (from cache/backing store).
type CourseRepository interface {
	GetCourse(ctx context.Context, courseID string) (domain.Course, error)
}

// CompletionStore persists per-user completion facts. Upsert is
// last-writer-wins on the (user, activity) key, which is what makes
// re-finishing an activity idempotent.
type CompletionStore interface {
	Upsert(ctx context.Context, completion domain.UserCompletion) (domain.UserCompletion, error)
	Completed(ctx context.Context, userID string, activityIDs []string) (map[string]bool, error)
}

// AttemptRepository abstracts how open quiz attempts are stored
// (in-memory, Redis-marked, etc).
type AttemptRepository interface {
	Put(userID, activityID string, attempt *quiz.Attempt)
	Get(userID, activityID string) (*quiz.Attempt, bool)
	Delete(userID, activityID string)
}

// CourseService contains the navigation and assessment use cases.
type CourseService struct {
	courses     CourseRepository
	completions CompletionStore
	attempts    AttemptRepository
	now         func() time.Time
}

func NewCourseService(courses CourseRepository, completions CompletionStore, attempts AttemptRepository) *CourseService {
	return &CourseService{courses: courses, completions: completions, attempts: attempts, now: time.Now}
}

// NewCourseServiceWithClock is test-only for deterministic timestamps.
func NewCourseServiceWithClock(courses CourseRepository, completions CompletionStore, attempts AttemptRepository, now func() time.Time) *CourseService {
	return &CourseService{courses: courses, completions: completions, attempts: attempts, now: now}
}

func (s *CourseService) graphFor(ctx context.Context, courseID string) (*graph.Graph, error) {
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return graph.New(course), nil
}

// NextActivity resolves the activity after the given one in document order.
func (s *CourseService) NextActivity(ctx context.Context, courseID, activityID string) (graph.Target, error) {
	g, err := s.graphFor(ctx, courseID)
	if err != nil {
		return graph.Target{}, err
	}
	return g.NextActivity(activityID)
}

// PrevActivity resolves the activity before the given one in document order.
func (s *CourseService) PrevActivity(ctx context.Context, courseID, activityID string) (graph.Target, error) {
	g, err := s.graphFor(ctx, courseID)
	if err != nil {
		return graph.Target{}, err
	}
	return g.PrevActivity(activityID)
}

// NextLesson resolves the next non-empty lesson for sidebar navigation.
func (s *CourseService) NextLesson(ctx context.Context, courseID, lessonID string) (graph.Target, error) {
	g, err := s.graphFor(ctx, courseID)
	if err != nil {
		return graph.Target{}, err
	}
	return g.NextLesson(lessonID)
}

// PrevLesson resolves the previous non-empty lesson.
func (s *CourseService) PrevLesson(ctx context.Context, courseID, lessonID string) (graph.Target, error) {
	g, err := s.graphFor(ctx, courseID)
	if err != nil {
		return graph.Target{}, err
	}
	return g.PrevLesson(lessonID)
}

// Resume suggests where a learner should go next in a course: the first
// activity in document order they have not completed. Without a user ID it
// falls back to the first activity. When everything is complete it returns
// the terminal target.
func (s *CourseService) Resume(ctx context.Context, courseID, userID string) (graph.Target, error) {
	g, err := s.graphFor(ctx, courseID)
	if err != nil {
		return graph.Target{}, err
	}

	nodes := g.Activities()
	if len(nodes) == 0 {
		return graph.Target{Terminal: true, CourseID: g.CourseID()}, nil
	}
	first, _ := g.FirstActivity()
	if userID == "" {
		return first, nil
	}

	ids := make([]string, 0, len(nodes))
	for _, node := range nodes {
		ids = append(ids, node.Activity.ID)
	}
	done, err := s.completions.Completed(ctx, userID, ids)
	if err != nil {
		return graph.Target{}, err
	}
	for i, id := range ids {
		if !done[id] {
			if i == 0 {
				return first, nil
			}
			return g.NextActivity(ids[i-1])
		}
	}
	return graph.Target{Terminal: true, CourseID: g.CourseID()}, nil
}

// StartQuiz opens a fresh attempt for a quiz activity, replacing any prior
// attempt by the same user for the same activity (the old ledger is
// discarded; only the last finish's score is ever recorded).
func (s *CourseService) StartQuiz(ctx context.Context, courseID, activityID, userID string) (domain.AttemptSnapshot, error) {
	g, err := s.graphFor(ctx, courseID)
	if err != nil {
		return domain.AttemptSnapshot{}, err
	}
	node, err := g.Activity(activityID)
	if err != nil {
		return domain.AttemptSnapshot{}, err
	}
	if node.Activity.Kind != domain.KindQuiz {
		return domain.AttemptSnapshot{}, domain.ErrNotQuiz
	}

	attempt := quiz.NewAttempt(activityID, node.Activity.Questions)
	s.attempts.Put(userID, activityID, attempt)
	return attempt.Snapshot(), nil
}

// Respond buffers a response for the current question of an open attempt.
func (s *CourseService) Respond(ctx context.Context, userID, activityID string, response domain.Response) (domain.AttemptSnapshot, error) {
	attempt, ok := s.attempts.Get(userID, activityID)
	if !ok {
		return domain.AttemptSnapshot{}, domain.ErrAttemptNotFound
	}
	if err := attempt.SetResponse(response); err != nil {
		return attempt.Snapshot(), err
	}
	return attempt.Snapshot(), nil
}

// Check grades the buffered response of an open attempt.
func (s *CourseService) Check(ctx context.Context, userID, activityID string) (domain.AttemptSnapshot, error) {
	attempt, ok := s.attempts.Get(userID, activityID)
	if !ok {
		return domain.AttemptSnapshot{}, domain.ErrAttemptNotFound
	}
	if err := attempt.Check(); err != nil {
		return attempt.Snapshot(), err
	}
	return attempt.Snapshot(), nil
}

// Advance moves an attempt past a checked question. Reaching the end
// finishes the attempt and records the completion exactly once. The second
// return reports whether a completion was persisted; an anonymous attempt
// still finishes but records nothing.
func (s *CourseService) Advance(ctx context.Context, userID, activityID string) (domain.AttemptSnapshot, bool, error) {
	return s.move(ctx, userID, activityID, (*quiz.Attempt).Advance)
}

// Skip bypasses the current question without grading it and otherwise
// behaves like Advance, including finishing on the last question.
func (s *CourseService) Skip(ctx context.Context, userID, activityID string) (domain.AttemptSnapshot, bool, error) {
	return s.move(ctx, userID, activityID, (*quiz.Attempt).Skip)
}

func (s *CourseService) move(ctx context.Context, userID, activityID string, transition func(*quiz.Attempt) error) (domain.AttemptSnapshot, bool, error) {
	attempt, ok := s.attempts.Get(userID, activityID)
	if !ok {
		return domain.AttemptSnapshot{}, false, domain.ErrAttemptNotFound
	}
	if err := transition(attempt); err != nil {
		return attempt.Snapshot(), false, err
	}
	if !attempt.Finished() {
		return attempt.Snapshot(), false, nil
	}

	snapshot := attempt.Snapshot()
	s.attempts.Delete(userID, activityID)
	if userID == "" {
		// The quiz still reads as finished even though nothing is persisted.
		return snapshot, false, nil
	}

	correct, total := attempt.Score()
	_, err := s.completions.Upsert(ctx, domain.UserCompletion{
		UserID:         userID,
		ActivityID:     activityID,
		CorrectAnswers: &correct,
		TotalQuestions: &total,
		CompletedAt:    s.now(),
	})
	if err != nil {
		return snapshot, false, err
	}
	return snapshot, true, nil
}

// Attempt returns the current snapshot of an open attempt.
func (s *CourseService) Attempt(userID, activityID string) (domain.AttemptSnapshot, error) {
	attempt, ok := s.attempts.Get(userID, activityID)
	if !ok {
		return domain.AttemptSnapshot{}, domain.ErrAttemptNotFound
	}
	return attempt.Snapshot(), nil
}

// RecordArticleView upserts a scoreless completion for an article activity.
func (s *CourseService) RecordArticleView(ctx context.Context, courseID, activityID, userID string) (domain.UserCompletion, error) {
	if userID == "" {
		return domain.UserCompletion{}, domain.ErrUnauthenticated
	}
	g, err := s.graphFor(ctx, courseID)
	if err != nil {
		return domain.UserCompletion{}, err
	}
	node, err := g.Activity(activityID)
	if err != nil {
		return domain.UserCompletion{}, err
	}
	if node.Activity.Kind != domain.KindArticle {
		return domain.UserCompletion{}, domain.ErrNotArticle
	}
	return s.completions.Upsert(ctx, domain.UserCompletion{
		UserID:      userID,
		ActivityID:  activityID,
		CompletedAt: s.now(),
	})
}
