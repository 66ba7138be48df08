package domain

import "errors"

var (
	// ErrCourseNotFound indicates the course content could not be loaded.
	ErrCourseNotFound = errors.New("course not found")
	// ErrModuleNotFound is returned when a module ID is not in the loaded graph.
	ErrModuleNotFound = errors.New("module not found")
	// ErrLessonNotFound is returned when a lesson ID is not in the loaded graph.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrActivityNotFound is returned when an activity ID is not in the loaded graph.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAttemptNotFound is returned when a quiz attempt has not been started.
	ErrAttemptNotFound = errors.New("quiz attempt not found")
	// ErrInvalidTransition rejects a state-machine call that is not legal in
	// the current phase; the attempt is left unchanged.
	ErrInvalidTransition = errors.New("invalid attempt transition")
	// ErrResponseMismatch indicates a response variant paired with a question
	// of a different variant.
	ErrResponseMismatch = errors.New("response variant does not match question")
	// ErrUnauthenticated is returned by recording paths when no user ID is
	// available. It never affects in-memory attempt state.
	ErrUnauthenticated = errors.New("no authenticated user")
	// ErrNotQuiz rejects quiz operations on an article activity.
	ErrNotQuiz = errors.New("activity is not a quiz")
	// ErrNotArticle rejects article operations on a quiz activity.
	ErrNotArticle = errors.New("activity is not an article")
)
