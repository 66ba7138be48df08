package quiz

import (
	"learnpath-service/internal/domain"
)

// Evaluate decides whether a response answers a question correctly. It is a
// pure function: it never mutates the question and the same (question,
// response) pair always yields the same result. A response whose variant does
// not match the question's is rejected rather than graded incorrect.
func Evaluate(q domain.Question, r domain.Response) (bool, error) {
	if r.Variant != q.Variant {
		return false, domain.ErrResponseMismatch
	}

	switch q.Variant {
	case domain.VariantRadio:
		if r.OptionID == "" {
			return false, nil
		}
		for _, opt := range q.Options {
			if opt.ID == r.OptionID {
				return opt.Correct, nil
			}
		}
		return false, nil

	case domain.VariantMultiselect:
		// Set equality: every selected option is correct and every correct
		// option is selected.
		selected := make(map[string]bool, len(r.OptionIDs))
		for _, id := range r.OptionIDs {
			selected[id] = true
		}
		correctCount := 0
		for _, opt := range q.Options {
			if opt.Correct {
				correctCount++
				if !selected[opt.ID] {
					return false, nil
				}
			} else if selected[opt.ID] {
				return false, nil
			}
		}
		// Selections outside the option list show up as a size mismatch.
		return len(selected) == correctCount, nil

	case domain.VariantNumeric:
		// Exact equality, no tolerance band.
		return r.Number != nil && *r.Number == q.NumericAnswer, nil

	case domain.VariantText, domain.VariantInfo:
		// Free responses and informational slides are never graded.
		return true, nil

	case domain.VariantMatching:
		for _, pair := range q.Pairs {
			if r.Choices[pair.ID] != pair.CorrectOptionID {
				return false, nil
			}
		}
		return true, nil
	}

	return false, domain.ErrResponseMismatch
}

// Valid reports whether a response is well-formed enough to be checked.
// This is completeness, not correctness: a radio response needs any option
// chosen, numeric needs a number entered, matching needs every pair chosen.
// Text and info questions need no input and are always valid.
func Valid(q domain.Question, r domain.Response) bool {
	if r.Variant != q.Variant {
		return false
	}

	switch q.Variant {
	case domain.VariantRadio:
		return r.OptionID != ""
	case domain.VariantMultiselect:
		return q.AllowEmpty || len(r.OptionIDs) > 0
	case domain.VariantNumeric:
		return r.Number != nil
	case domain.VariantText, domain.VariantInfo:
		return true
	case domain.VariantMatching:
		for _, pair := range q.Pairs {
			if r.Choices[pair.ID] == "" {
				return false
			}
		}
		return true
	}
	return false
}

// EmptyResponse returns the zeroed response a fresh question starts with.
func EmptyResponse(q domain.Question) domain.Response {
	return domain.Response{Variant: q.Variant}
}
