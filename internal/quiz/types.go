// Package quiz defines the question model shared by the AI and template
// generation paths. Both paths return the same shape so callers never
// need to branch on where a question came from.
package quiz

import (
	"fmt"
	"strings"
)

// Difficulty is the requested difficulty of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists all difficulties in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty converts a user-supplied string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("%w: difficulty must be one of easy, medium, hard (got %q)", ErrInvalidRequest, s)
}

// Source records which generation path produced a question.
type Source string

const (
	SourceAI       Source = "ai"
	SourceTemplate Source = "template"
)

// Kind classifies what a question exercises: recall of a single concept
// or applied reasoning that combines concepts.
type Kind string

const (
	KindRecall  Kind = "recall"
	KindApplied Kind = "applied"
)

// Question is a single generated quiz question, ready for display.
// Field names and JSON tags are identical for both sources.
type Question struct {
	// ID is a unique identifier for this question.
	ID string `json:"id"`

	// Prompt is the question text shown to the learner. Never empty.
	Prompt string `json:"prompt"`

	// Answer is the text of the correct choice. Never empty and always
	// present in Choices.
	Answer string `json:"answer"`

	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`

	// Source truthfully reflects which generator produced the question.
	Source Source `json:"source"`

	Kind Kind `json:"kind"`

	// Choices holds exactly 4 options, one of which matches Answer.
	Choices []string `json:"choices"`

	// Explanation is a short justification of the correct answer.
	Explanation string `json:"explanation"`
}

// MaxCount is the largest batch a single request may ask for.
const MaxCount = 50

// Request describes one generation request.
type Request struct {
	Topic      string
	Difficulty Difficulty
	Count      int

	// Keywords optionally steer questions toward particular terms.
	// The AI path weaves them into the prompt; the template path
	// prefers concepts that mention them. Unknown keywords are ignored,
	// never an error.
	Keywords []string
}

// Validate rejects malformed requests. This is the only error class the
// orchestrator ever surfaces; everything network- or model-related is
// absorbed internally.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("%w: topic must not be empty", ErrInvalidRequest)
	}
	if r.Count < 1 {
		return fmt.Errorf("%w: count must be at least 1 (got %d)", ErrInvalidRequest, r.Count)
	}
	if r.Count > MaxCount {
		return fmt.Errorf("%w: count must be at most %d (got %d)", ErrInvalidRequest, MaxCount, r.Count)
	}
	switch r.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRequest, r.Difficulty)
	}
	return nil
}

// kindRecallRatio is the share of recall questions per difficulty.
// Harder batches lean toward applied questions.
var kindRecallRatio = map[Difficulty]float64{
	DifficultyEasy:   0.6,
	DifficultyMedium: 0.5,
	DifficultyHard:   0.4,
}

// KindFor returns the Kind for the question at position index in a batch
// of total questions: the first recall-share positions are recall, the
// rest applied.
func KindFor(d Difficulty, index, total int) Kind {
	ratio, ok := kindRecallRatio[d]
	if !ok {
		ratio = 0.5
	}
	if index < int(float64(total)*ratio) {
		return KindRecall
	}
	return KindApplied
}
