package quizgen

import (
	"fmt"
	"strings"

	"github.com/quizhive/quizgen/internal/quiz"
)

// Validator checks one candidate question. Validators run as a chain;
// the first failure rejects the candidate.
type Validator interface {
	// Name identifies this validator for error reporting.
	Name() string

	// Validate returns nil if the question passes, or a *ValidationError.
	Validate(q quiz.Question) error
}

// ValidationError describes why a candidate question was rejected.
type ValidationError struct {
	// Validator is the Name() of the validator that rejected it.
	Validator string

	// Message describes what was wrong.
	Message string

	// Retryable indicates whether regenerating could plausibly help.
	// Structural defects in model output are retryable; a broken
	// validator configuration is not.
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Validator, e.Message)
}

const (
	maxPromptLen      = 500
	maxExplanationLen = 1000
	choiceCount       = 4
)

// StructuralValidator enforces the question shape: prompt and answer
// present and bounded, exactly four distinct choices with the answer
// among them, a recognized kind.
type StructuralValidator struct{}

func (StructuralValidator) Name() string { return "structural" }

func (v StructuralValidator) Validate(q quiz.Question) error {
	if strings.TrimSpace(q.Prompt) == "" {
		return v.fail("prompt is empty")
	}
	if len(q.Prompt) > maxPromptLen {
		return v.fail(fmt.Sprintf("prompt exceeds %d characters", maxPromptLen))
	}
	if strings.TrimSpace(q.Answer) == "" {
		return v.fail("answer is empty")
	}
	if len(q.Explanation) > maxExplanationLen {
		return v.fail(fmt.Sprintf("explanation exceeds %d characters", maxExplanationLen))
	}
	if len(q.Choices) != choiceCount {
		return v.fail(fmt.Sprintf("expected %d choices, got %d", choiceCount, len(q.Choices)))
	}

	seen := make(map[string]bool, choiceCount)
	answerPresent := false
	for _, c := range q.Choices {
		if strings.TrimSpace(c) == "" {
			return v.fail("choice is empty")
		}
		if seen[c] {
			return v.fail(fmt.Sprintf("duplicate choice %q", c))
		}
		seen[c] = true
		if c == q.Answer {
			answerPresent = true
		}
	}
	if !answerPresent {
		return v.fail("answer is not among the choices")
	}

	switch q.Kind {
	case quiz.KindRecall, quiz.KindApplied:
	default:
		return v.fail(fmt.Sprintf("unknown kind %q", q.Kind))
	}
	return nil
}

func (v StructuralValidator) fail(msg string) error {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}

// DefaultValidators is the chain applied to every AI-generated question.
func DefaultValidators() []Validator {
	return []Validator{StructuralValidator{}}
}
