package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/quizhive/quizgen/internal/config"
	"github.com/quizhive/quizgen/internal/llm"
	"github.com/quizhive/quizgen/internal/quiz"
)

// GenerationError reports an AI batch that could not be completed within
// its attempt budget. The batch is all-or-nothing: callers discard any
// partial results and fall back to templates.
type GenerationError struct {
	Want    int
	Got     int
	LastErr error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("ai generation incomplete: %d of %d valid questions (last error: %v)", e.Got, e.Want, e.LastErr)
}

func (e *GenerationError) Unwrap() error { return e.LastErr }

// AIGenerator produces validated questions from a model provider. One
// model call per question; invalid or duplicate completions are discarded
// and retried out of a bounded attempt budget.
type AIGenerator struct {
	provider   llm.Provider
	cfg        config.Generation
	validators []Validator
	limiter    *rate.Limiter
}

// NewAIGenerator builds an AI generator around an acquired provider
// handle.
func NewAIGenerator(p llm.Provider, cfg config.Generation) *AIGenerator {
	g := &AIGenerator{
		provider:   p,
		cfg:        cfg,
		validators: DefaultValidators(),
	}
	if cfg.RequestsPerSecond > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return g
}

// completion is the wire shape of one model response.
type completion struct {
	Prompt      string   `json:"prompt"`
	Answer      string   `json:"answer"`
	Kind        string   `json:"kind"`
	Choices     []string `json:"choices"`
	Explanation string   `json:"explanation"`
}

// Generate returns exactly req.Count validated questions or an error.
// It never returns a short batch: if the attempt budget runs out before
// Count questions pass validation, the whole batch fails.
func (g *AIGenerator) Generate(ctx context.Context, req quiz.Request) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	budget := req.Count + g.cfg.Budget(req.Count)
	questions := make([]quiz.Question, 0, req.Count)
	accepted := make([]string, 0, req.Count)
	seen := make(map[string]bool, req.Count)

	var lastErr error
	for attempts := 0; len(questions) < req.Count; attempts++ {
		if attempts >= budget {
			return nil, &GenerationError{Want: req.Count, Got: len(questions), LastErr: lastErr}
		}

		q, err := g.one(ctx, req, len(questions), accepted)
		if err != nil {
			if ctx.Err() != nil {
				return nil, &GenerationError{Want: req.Count, Got: len(questions), LastErr: ctx.Err()}
			}
			lastErr = err
			continue
		}
		if seen[q.Prompt] {
			lastErr = fmt.Errorf("duplicate prompt %q", q.Prompt)
			continue
		}

		seen[q.Prompt] = true
		accepted = append(accepted, q.Prompt)
		questions = append(questions, q)
	}
	return questions, nil
}

// one makes a single model call and validates the completion.
func (g *AIGenerator) one(ctx context.Context, req quiz.Request, index int, accepted []string) (quiz.Question, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return quiz.Question{}, err
		}
	}

	kind := quiz.KindFor(req.Difficulty, index, req.Count)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    buildMessages(req, kind, accepted),
		Schema:      questionSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return quiz.Question{}, err
	}

	var c completion
	if err := json.Unmarshal(resp.Content, &c); err != nil {
		return quiz.Question{}, fmt.Errorf("decode completion: %w", err)
	}

	q := quiz.Question{
		ID:          uuid.NewString(),
		Prompt:      c.Prompt,
		Answer:      c.Answer,
		Topic:       req.Topic,
		Difficulty:  req.Difficulty,
		Source:      quiz.SourceAI,
		Kind:        quiz.Kind(c.Kind),
		Choices:     c.Choices,
		Explanation: c.Explanation,
	}

	for _, v := range g.validators {
		if err := v.Validate(q); err != nil {
			return quiz.Question{}, err
		}
	}
	return q, nil
}
