package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizhive/quizgen/internal/config"
	"github.com/quizhive/quizgen/internal/llm"
	"github.com/quizhive/quizgen/internal/quiz"
)

// validCompletion builds a canned model response with a distinct prompt.
func validCompletion(n int) llm.MockResponse {
	c := completion{
		Prompt:      fmt.Sprintf("What is concept %d?", n),
		Answer:      "The correct statement",
		Kind:        "recall",
		Choices:     []string{"The correct statement", "Wrong one", "Wrong two", "Wrong three"},
		Explanation: "Because it is.",
	}
	raw, _ := json.Marshal(c)
	return llm.MockResponse{Content: raw}
}

func testRequest(count int) quiz.Request {
	return quiz.Request{Topic: "docker", Difficulty: quiz.DifficultyMedium, Count: count}
}

func TestAIGenerator_FullBatch(t *testing.T) {
	mock := llm.NewMockProvider(validCompletion(1), validCompletion(2), validCompletion(3))
	g := NewAIGenerator(mock, config.Default().Generation)

	qs, err := g.Generate(context.Background(), testRequest(3))
	require.NoError(t, err)
	require.Len(t, qs, 3)

	for _, q := range qs {
		assert.Equal(t, quiz.SourceAI, q.Source)
		assert.Equal(t, "docker", q.Topic)
		assert.NotEmpty(t, q.ID)
		assert.Contains(t, q.Choices, q.Answer)
	}
	assert.Equal(t, 3, mock.CallCount())
}

func TestAIGenerator_DiscardsInvalidCompletion(t *testing.T) {
	bad := completion{
		Prompt:      "Which is right?",
		Answer:      "Not among the choices",
		Kind:        "recall",
		Choices:     []string{"a", "b", "c", "d"},
		Explanation: "",
	}
	badRaw, _ := json.Marshal(bad)

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: badRaw},
		validCompletion(1),
		validCompletion(2),
	)
	g := NewAIGenerator(mock, config.Default().Generation)

	qs, err := g.Generate(context.Background(), testRequest(2))
	require.NoError(t, err)
	assert.Len(t, qs, 2)
	assert.Equal(t, 3, mock.CallCount())
}

func TestAIGenerator_DiscardsDuplicatePrompt(t *testing.T) {
	mock := llm.NewMockProvider(
		validCompletion(1),
		validCompletion(1),
		validCompletion(2),
	)
	g := NewAIGenerator(mock, config.Default().Generation)

	qs, err := g.Generate(context.Background(), testRequest(2))
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.NotEqual(t, qs[0].Prompt, qs[1].Prompt)
}

func TestAIGenerator_BudgetExhausted(t *testing.T) {
	cfg := config.Default().Generation
	cfg.MaxExtraAttempts = 1

	// Count 2 plus 1 extra attempt: three calls, only one of which is
	// usable. The batch must fail rather than come back short.
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`not json`)},
		llm.MockResponse{Content: json.RawMessage(`{}`)},
		validCompletion(1),
	)
	g := NewAIGenerator(mock, cfg)

	qs, err := g.Generate(context.Background(), testRequest(2))
	assert.Nil(t, qs)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 2, genErr.Want)
	assert.Equal(t, 1, genErr.Got)
	assert.Equal(t, 3, mock.CallCount())
}

func TestAIGenerator_ProviderErrorCountsAgainstBudget(t *testing.T) {
	cfg := config.Default().Generation
	cfg.MaxExtraAttempts = 0

	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	g := NewAIGenerator(mock, cfg)

	_, err := g.Generate(context.Background(), testRequest(1))
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestAIGenerator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := llm.NewMockProvider(llm.MockResponse{Err: ctx.Err()})
	g := NewAIGenerator(mock, config.Default().Generation)

	_, err := g.Generate(ctx, testRequest(5))
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	// A dead context must short-circuit, not burn the whole budget.
	assert.LessOrEqual(t, mock.CallCount(), 1)
}

func TestStructuralValidator(t *testing.T) {
	good := quiz.Question{
		Prompt:  "What is a container?",
		Answer:  "An isolated process",
		Kind:    quiz.KindRecall,
		Choices: []string{"An isolated process", "A VM", "A kernel", "A file"},
	}

	cases := []struct {
		name    string
		mutate  func(*quiz.Question)
		message string
	}{
		{"valid", func(q *quiz.Question) {}, ""},
		{"empty prompt", func(q *quiz.Question) { q.Prompt = "  " }, "prompt is empty"},
		{"empty answer", func(q *quiz.Question) { q.Answer = "" }, "answer is empty"},
		{"answer not a choice", func(q *quiz.Question) { q.Answer = "Something else" }, "answer is not among the choices"},
		{"three choices", func(q *quiz.Question) { q.Choices = q.Choices[:3] }, "expected 4 choices, got 3"},
		{"duplicate choice", func(q *quiz.Question) { q.Choices[1] = q.Choices[2] }, `duplicate choice "A kernel"`},
		{"bad kind", func(q *quiz.Question) { q.Kind = "trivia" }, `unknown kind "trivia"`},
	}

	v := StructuralValidator{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := good
			q.Choices = append([]string(nil), good.Choices...)
			tc.mutate(&q)

			err := v.Validate(q)
			if tc.message == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "structural", ve.Validator)
			assert.Equal(t, tc.message, ve.Message)
			assert.True(t, ve.Retryable)
		})
	}
}

func TestBuildMessages_ListsAcceptedPrompts(t *testing.T) {
	msgs := buildMessages(testRequest(3), quiz.KindApplied, []string{"First question?", "Second question?"})

	require.Len(t, msgs, 1)
	assert.Equal(t, llm.RoleUser, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "applied")
	assert.Contains(t, msgs[0].Content, "docker")
	assert.Contains(t, msgs[0].Content, "First question?")
	assert.Contains(t, msgs[0].Content, "Second question?")
}

func TestBuildMessages_IncludesKeywords(t *testing.T) {
	req := testRequest(1)
	req.Keywords = []string{"volumes", "bind mounts"}

	msgs := buildMessages(req, quiz.KindRecall, nil)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Content, "volumes, bind mounts")
}
