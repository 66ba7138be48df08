package domain

import "time"

// ActivityKind distinguishes the two leaf content types a learner completes.
type ActivityKind string

const (
	KindArticle ActivityKind = "article"
	KindQuiz    ActivityKind = "quiz"
)

// QuestionVariant discriminates question payloads and their responses.
type QuestionVariant string

const (
	VariantRadio       QuestionVariant = "radio"
	VariantMultiselect QuestionVariant = "multiselect"
	VariantNumeric     QuestionVariant = "numeric"
	VariantText        QuestionVariant = "text"
	VariantMatching    QuestionVariant = "matching"
	VariantInfo        QuestionVariant = "info"
)

// Course is the root of one content tree. Module order values are unique
// within a course but not required to be contiguous.
type Course struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Modules []Module `json:"modules"`
}

// Module groups lessons under a course.
type Module struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Order   int      `json:"order"`
	Lessons []Lesson `json:"lessons"`
}

// Lesson groups activities under a module. A lesson with zero activities is
// degenerate content that navigation skips over.
type Lesson struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Order      int        `json:"order"`
	Activities []Activity `json:"activities"`
}

// Activity is the leaf unit of content: a read-only article or a graded quiz.
// Questions is populated for quizzes only.
type Activity struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Order     int          `json:"order"`
	Kind      ActivityKind `json:"kind"`
	Questions []Question   `json:"questions,omitempty"`
}

// Option represents a possible answer for a radio or multiselect question.
type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// MatchPair is one subquestion of a matching question: a prompt with its own
// option list and the designated correct option.
type MatchPair struct {
	ID              string   `json:"id"`
	Prompt          string   `json:"prompt"`
	Options         []Option `json:"options"`
	CorrectOptionID string   `json:"correctOptionId"`
}

// Question carries the data needed to evaluate one response. Which fields
// are meaningful depends on Variant: Options for radio/multiselect,
// NumericAnswer for numeric, Pairs for matching. AllowEmpty lets a
// multiselect question accept an empty selection as well-formed.
type Question struct {
	ID            string          `json:"id"`
	Variant       QuestionVariant `json:"variant"`
	Prompt        string          `json:"prompt"`
	Options       []Option        `json:"options,omitempty"`
	NumericAnswer float64         `json:"numericAnswer,omitempty"`
	AllowEmpty    bool            `json:"allowEmpty,omitempty"`
	Pairs         []MatchPair     `json:"pairs,omitempty"`
}

// Response is a learner's buffered answer, tagged with the same variant
// discriminator as the question it answers. One payload field is meaningful
// per variant; pairing a response with a question of a different variant is
// an explicit error, never a silent incorrect.
type Response struct {
	Variant   QuestionVariant   `json:"variant"`
	OptionID  string            `json:"optionId,omitempty"`
	OptionIDs []string          `json:"optionIds,omitempty"`
	Number    *float64          `json:"number,omitempty"`
	Text      string            `json:"text,omitempty"`
	Choices   map[string]string `json:"choices,omitempty"` // pair ID -> chosen option ID
}

// Grade is one ledger entry for a question within an attempt.
type Grade string

const (
	GradeUngraded  Grade = "ungraded"
	GradeCorrect   Grade = "correct"
	GradeIncorrect Grade = "incorrect"
)

// AttemptSnapshot is a read-only view of a quiz attempt for rendering.
type AttemptSnapshot struct {
	ActivityID     string   `json:"activityId"`
	Index          int      `json:"index"`
	Response       Response `json:"response"`
	Valid          bool     `json:"valid"`
	Revealed       bool     `json:"revealed"`
	Ledger         []Grade  `json:"ledger"`
	Finished       bool     `json:"finished"`
	CorrectCount   int      `json:"correctCount"`
	TotalQuestions int      `json:"totalQuestions"`
}

// UserCompletion is the per-user completion fact for one activity. At most
// one exists per (user, activity); finishing again overwrites the timestamp
// and scores. Articles carry no score fields, quizzes always carry both.
type UserCompletion struct {
	UserID         string    `json:"userId"`
	ActivityID     string    `json:"activityId"`
	CorrectAnswers *int      `json:"correctAnswers,omitempty"`
	TotalQuestions *int      `json:"totalQuestions,omitempty"`
	CompletedAt    time.Time `json:"completedAt"`
}
