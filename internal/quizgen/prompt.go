package quizgen

import (
	"fmt"
	"strings"

	"github.com/quizhive/quizgen/internal/llm"
	"github.com/quizhive/quizgen/internal/quiz"
)

const systemPrompt = `You are a quiz author. You write one multiple-choice question at a time and respond with a single JSON object matching the provided schema, nothing else.

Rules:
- Exactly 4 choices, exactly one of which is correct.
- The "answer" field must be the full text of the correct choice.
- Distractors must be plausible but clearly wrong to someone who knows the material.
- The explanation must justify the correct answer in one or two sentences.
- Recall questions test a single fact or definition. Applied questions require reasoning about a scenario.`

// buildMessages assembles the conversation for one question. prompts
// already accepted in this batch are listed so the model avoids writing
// near-duplicates.
func buildMessages(req quiz.Request, kind quiz.Kind, accepted []string) []llm.Message {
	var b strings.Builder

	fmt.Fprintf(&b, "Write one %s %s question about %s.\n", req.Difficulty, kind, req.Topic)

	switch req.Difficulty {
	case quiz.DifficultyEasy:
		b.WriteString("Target a beginner: core definitions and first principles.\n")
	case quiz.DifficultyMedium:
		b.WriteString("Target an intermediate learner: mechanisms, common pitfalls, practical usage.\n")
	case quiz.DifficultyHard:
		b.WriteString("Target an advanced learner: edge cases, trade-offs, subtle behavior.\n")
	}

	if len(req.Keywords) > 0 {
		fmt.Fprintf(&b, "Where natural, involve these keywords: %s.\n", strings.Join(req.Keywords, ", "))
	}

	if len(accepted) > 0 {
		b.WriteString("\nDo not repeat or closely paraphrase any of these questions:\n")
		for _, p := range accepted {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	return []llm.Message{{Role: llm.RoleUser, Content: b.String()}}
}
