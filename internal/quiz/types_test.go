package quiz

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"valid", Request{Topic: "algebra", Difficulty: DifficultyMedium, Count: 3}, false},
		{"empty topic", Request{Topic: "", Difficulty: DifficultyEasy, Count: 1}, true},
		{"whitespace topic", Request{Topic: "   ", Difficulty: DifficultyEasy, Count: 1}, true},
		{"zero count", Request{Topic: "python", Difficulty: DifficultyEasy, Count: 0}, true},
		{"negative count", Request{Topic: "python", Difficulty: DifficultyEasy, Count: -5}, true},
		{"count over max", Request{Topic: "python", Difficulty: DifficultyEasy, Count: MaxCount + 1}, true},
		{"unknown difficulty", Request{Topic: "python", Difficulty: "impossible", Count: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrInvalidRequest) {
					t.Fatalf("expected ErrInvalidRequest, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"easy", "Medium", " HARD "} {
		if _, err := ParseDifficulty(s); err != nil {
			t.Errorf("ParseDifficulty(%q): unexpected error: %v", s, err)
		}
	}
	if _, err := ParseDifficulty("expert"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestKindFor_Distribution(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		total      int
		wantRecall int
	}{
		{DifficultyEasy, 10, 6},
		{DifficultyMedium, 10, 5},
		{DifficultyHard, 10, 4},
		{DifficultyEasy, 1, 0}, // int(1*0.6) == 0, single question is applied
		{DifficultyMedium, 2, 1},
	}

	for _, tt := range tests {
		recall := 0
		for i := range tt.total {
			if KindFor(tt.difficulty, i, tt.total) == KindRecall {
				recall++
			}
		}
		if recall != tt.wantRecall {
			t.Errorf("KindFor(%s, total=%d): got %d recall, want %d",
				tt.difficulty, tt.total, recall, tt.wantRecall)
		}
	}
}

func TestKindFor_RecallComesFirst(t *testing.T) {
	// Recall positions precede applied positions within a batch.
	seenApplied := false
	for i := range 10 {
		k := KindFor(DifficultyMedium, i, 10)
		if k == KindApplied {
			seenApplied = true
		} else if seenApplied {
			t.Fatalf("recall question at index %d after applied", i)
		}
	}
}

func TestQuestionJSONFieldNames(t *testing.T) {
	base := Question{
		ID:          "q-1",
		Prompt:      "What is a variable?",
		Answer:      "A symbol that stands for an unknown value",
		Topic:       "algebra",
		Difficulty:  DifficultyEasy,
		Kind:        KindRecall,
		Choices:     []string{"a", "b", "c", "d"},
		Explanation: "Definitions anchor everything else.",
	}

	want := []string{
		"id", "prompt", "answer", "topic", "difficulty",
		"source", "kind", "choices", "explanation",
	}

	// Both sources serialize to the same field names.
	for _, source := range []Source{SourceAI, SourceTemplate} {
		q := base
		q.Source = source

		raw, err := json.Marshal(q)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(fields) != len(want) {
			t.Fatalf("expected %d fields, got %d: %v", len(want), len(fields), fields)
		}
		for _, name := range want {
			if _, ok := fields[name]; !ok {
				t.Fatalf("missing field %q in %s", name, raw)
			}
		}
		if fields["source"] != string(source) {
			t.Fatalf("expected source %q, got %v", source, fields["source"])
		}

		var back Question
		if err := json.Unmarshal(raw, &back); err != nil {
			t.Fatalf("unmarshal into Question: %v", err)
		}
		if back.ID != q.ID || back.Prompt != q.Prompt || back.Source != q.Source ||
			back.Kind != q.Kind || len(back.Choices) != len(q.Choices) {
			t.Fatalf("round trip changed the question: %+v", back)
		}
	}
}
