package quiz

import (
	"learnpath-service/internal/domain"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseChecked
	phaseFinished
)

// Attempt drives one learner through one quiz activity:
// Answering(i) -> Checked(i) -> Answering(i+1) ... -> Finished.
// Not safe for concurrent use; the transport layer serializes calls per
// connection. Illegal transitions return ErrInvalidTransition and leave the
// attempt unchanged. Finished is terminal: re-opening the activity builds a
// fresh attempt and the old ledger is discarded.
type Attempt struct {
	activityID string
	questions  []domain.Question
	index      int
	response   domain.Response
	valid      bool
	revealed   bool
	ledger     []domain.Grade
	phase      phase
}

// NewAttempt starts an attempt at Answering(0) with a zeroed response and
// variant-seeded validity. A quiz with no questions starts Finished with a
// 0/0 score.
func NewAttempt(activityID string, questions []domain.Question) *Attempt {
	a := &Attempt{
		activityID: activityID,
		questions:  questions,
		ledger:     make([]domain.Grade, len(questions)),
	}
	for i := range a.ledger {
		a.ledger[i] = domain.GradeUngraded
	}
	if len(questions) == 0 {
		a.phase = phaseFinished
		return a
	}
	a.enter(0)
	return a
}

// enter resets the buffered response, validity, and reveal flag for a new
// question index.
func (a *Attempt) enter(i int) {
	a.index = i
	a.response = EmptyResponse(a.questions[i])
	a.valid = Valid(a.questions[i], a.response)
	a.revealed = false
	a.phase = phaseAnswering
}

// SetResponse buffers a response for the current question and recomputes
// validity. Only legal while answering.
func (a *Attempt) SetResponse(r domain.Response) error {
	if a.phase != phaseAnswering {
		return domain.ErrInvalidTransition
	}
	if r.Variant != a.questions[a.index].Variant {
		return domain.ErrResponseMismatch
	}
	a.response = r
	a.valid = Valid(a.questions[a.index], r)
	return nil
}

// Check grades the buffered response into the ledger and reveals the result.
// Rejected unless the attempt is answering with a valid response.
func (a *Attempt) Check() error {
	if a.phase != phaseAnswering || !a.valid {
		return domain.ErrInvalidTransition
	}
	correct, err := Evaluate(a.questions[a.index], a.response)
	if err != nil {
		return err
	}
	if correct {
		a.ledger[a.index] = domain.GradeCorrect
	} else {
		a.ledger[a.index] = domain.GradeIncorrect
	}
	a.revealed = true
	a.phase = phaseChecked
	return nil
}

// Advance moves past a checked question to the next one, or to Finished on
// the last. Rejected before Check.
func (a *Attempt) Advance() error {
	if a.phase != phaseChecked {
		return domain.ErrInvalidTransition
	}
	a.step()
	return nil
}

// Skip is the deliberate bypass: legal while answering regardless of
// validity, never invokes the evaluator, and leaves the ledger entry
// ungraded. A skipped question still counts toward the total.
func (a *Attempt) Skip() error {
	if a.phase != phaseAnswering {
		return domain.ErrInvalidTransition
	}
	a.step()
	return nil
}

func (a *Attempt) step() {
	if a.index+1 >= len(a.questions) {
		a.revealed = false
		a.phase = phaseFinished
		return
	}
	a.enter(a.index + 1)
}

// Finished reports whether the attempt has reached its terminal state.
func (a *Attempt) Finished() bool {
	return a.phase == phaseFinished
}

// ActivityID returns the quiz activity this attempt belongs to.
func (a *Attempt) ActivityID() string {
	return a.activityID
}

// Score returns the count of correctly graded questions over the question
// total. Skipped questions count in the total only.
func (a *Attempt) Score() (correct, total int) {
	for _, g := range a.ledger {
		if g == domain.GradeCorrect {
			correct++
		}
	}
	return correct, len(a.questions)
}

// Snapshot returns a read-only view of the attempt for rendering.
func (a *Attempt) Snapshot() domain.AttemptSnapshot {
	ledger := make([]domain.Grade, len(a.ledger))
	copy(ledger, a.ledger)
	correct, total := a.Score()
	return domain.AttemptSnapshot{
		ActivityID:     a.activityID,
		Index:          a.index,
		Response:       a.response,
		Valid:          a.valid,
		Revealed:       a.revealed,
		Ledger:         ledger,
		Finished:       a.phase == phaseFinished,
		CorrectCount:   correct,
		TotalQuestions: total,
	}
}

// Question returns the question at the current index. Meaningless once
// finished; the boolean guards that case.
func (a *Attempt) Question() (domain.Question, bool) {
	if a.phase == phaseFinished {
		return domain.Question{}, false
	}
	return a.questions[a.index], true
}
