package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// cannedQuestion is a minimal question completion for retry tests.
var cannedQuestion = json.RawMessage(`{"prompt":"What is a container?","answer":"An isolated process"}`)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_CleanCompletionPassesThrough(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: cannedQuestion})
	p := WithRetry(mock, fastRetry())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != string(cannedQuestion) {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_OutageThenCompletion(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection refused")}},
		MockResponse{Content: cannedQuestion},
	)
	p := WithRetry(mock, fastRetry())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != string(cannedQuestion) {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_AttemptBoundHolds(t *testing.T) {
	outage := MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection refused")}}
	mock := NewMockProvider(outage, outage, outage, outage)
	p := WithRetry(mock, fastRetry())

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected exactly MaxAttempts calls, got %d", mock.CallCount())
	}
}

func TestRetry_NonRetryableFailures(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"truncated completion", &ErrMaxTokensExceeded{Content: json.RawMessage(`{"prompt":"What is`)}},
		{"cancelled context", context.Canceled},
		{"deadline exceeded", context.DeadlineExceeded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := NewMockProvider(
				MockResponse{Err: tc.err},
				MockResponse{Content: cannedQuestion},
			)
			p := WithRetry(mock, fastRetry())

			_, err := p.Generate(context.Background(), Request{})
			if err == nil {
				t.Fatal("expected error")
			}
			if mock.CallCount() != 1 {
				t.Fatalf("expected no retry, got %d calls", mock.CallCount())
			}
		})
	}
}

func TestRetry_SchemaMissRegeneratedOnce(t *testing.T) {
	schemaMiss := MockResponse{Err: &ErrInvalidResponse{
		Content: json.RawMessage(`{"question":"wrong field names"}`),
		Err:     errors.New("missing properties: prompt"),
	}}
	mock := NewMockProvider(schemaMiss, schemaMiss, MockResponse{Content: cannedQuestion})
	p := WithRetry(mock, fastRetry())

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	// One regeneration, then give up. The canned good completion must
	// never be reached.
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_SchemaMissAllowancePerRequest(t *testing.T) {
	schemaMiss := MockResponse{Err: &ErrInvalidResponse{
		Content: json.RawMessage(`{}`),
		Err:     errors.New("missing properties: prompt"),
	}}
	mock := NewMockProvider(
		schemaMiss, MockResponse{Content: cannedQuestion},
		schemaMiss, MockResponse{Content: cannedQuestion},
	)
	p := WithRetry(mock, fastRetry())

	// Both requests get their own regeneration allowance.
	for i := 0; i < 2; i++ {
		if _, err := p.Generate(context.Background(), Request{}); err != nil {
			t.Fatalf("request %d: unexpected error: %v", i, err)
		}
	}
	if mock.CallCount() != 4 {
		t.Fatalf("expected 4 calls, got %d", mock.CallCount())
	}
}

func TestRetry_DeadContextStopsWaiting(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection refused")}},
		MockResponse{Content: cannedQuestion},
	)
	p := WithRetry(mock, fastRetry())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call before the wait aborted, got %d", mock.CallCount())
	}
}

func TestRetry_RateLimitHonorsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
		MockResponse{Content: cannedQuestion},
	)
	p := WithRetry(mock, fastRetry())

	start := time.Now()
	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != string(cannedQuestion) {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if elapsed := time.Since(start); elapsed < time.Millisecond {
		t.Fatalf("expected to wait at least RetryAfter, waited %s", elapsed)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), fastRetry())
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}
