package backend

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quizhive/quizgen/internal/config"
	"github.com/quizhive/quizgen/internal/llm"
)

func testLadder(names ...string) []Strategy {
	ladder := make([]Strategy, len(names))
	for i, n := range names {
		ladder[i] = Strategy{Name: n, Timeout: 50 * time.Millisecond}
	}
	return ladder
}

// failThenSucceed returns a connector that fails for every strategy name
// in fails and succeeds otherwise, counting total attempts.
func failThenSucceed(calls *atomic.Int32, fails ...string) Connector {
	failSet := make(map[string]bool, len(fails))
	for _, f := range fails {
		failSet[f] = true
	}
	return func(_ context.Context, s Strategy) (llm.Provider, error) {
		calls.Add(1)
		if failSet[s.Name] {
			return nil, errors.New("unreachable")
		}
		return llm.NewMockProvider(), nil
	}
}

func TestInitialize_FirstSuccessWins(t *testing.T) {
	var calls atomic.Int32
	in := NewInitializer(config.Default(), nil,
		WithLadder(testLadder("A", "B", "C")),
		WithConnector(failThenSucceed(&calls, "A")),
	)

	out := in.Initialize(context.Background())
	if !out.Loaded {
		t.Fatal("expected loaded outcome")
	}
	if out.ActiveStrategy != "B" {
		t.Fatalf("expected active strategy B, got %q", out.ActiveStrategy)
	}
	if out.Provider == nil {
		t.Fatal("expected a provider handle")
	}
	// C must never be attempted once B succeeded.
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 connect attempts, got %d", got)
	}
}

func TestInitialize_AllStrategiesFail(t *testing.T) {
	var calls atomic.Int32
	in := NewInitializer(config.Default(), nil,
		WithLadder(testLadder("A", "B")),
		WithConnector(failThenSucceed(&calls, "A", "B")),
	)

	out := in.Initialize(context.Background())
	if out.Loaded {
		t.Fatal("expected unloaded outcome")
	}
	if out.ActiveStrategy != "" {
		t.Fatalf("expected no active strategy, got %q", out.ActiveStrategy)
	}
	if out.Provider != nil {
		t.Fatal("expected nil provider")
	}
}

func TestInitialize_CachedAfterFirstWalk(t *testing.T) {
	var calls atomic.Int32
	in := NewInitializer(config.Default(), nil,
		WithLadder(testLadder("A")),
		WithConnector(failThenSucceed(&calls)),
	)

	first := in.Initialize(context.Background())
	second := in.Initialize(context.Background())

	if first != second {
		t.Fatal("expected identical cached outcomes")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected ladder walked once, got %d connect attempts", got)
	}
}

func TestInitialize_FailureAlsoCached(t *testing.T) {
	var calls atomic.Int32
	in := NewInitializer(config.Default(), nil,
		WithLadder(testLadder("A", "B")),
		WithConnector(failThenSucceed(&calls, "A", "B")),
	)

	in.Initialize(context.Background())
	in.Initialize(context.Background())

	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 connect attempts total, got %d", got)
	}
}

func TestInitialize_ConcurrentCallersShareOneWalk(t *testing.T) {
	var calls atomic.Int32
	in := NewInitializer(config.Default(), nil,
		WithLadder(testLadder("A")),
		WithConnector(failThenSucceed(&calls)),
	)

	const goroutines = 16
	outcomes := make([]Outcome, goroutines)

	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = in.Initialize(context.Background())
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected exactly one ladder walk, got %d connect attempts", got)
	}
	for i, out := range outcomes {
		if out != outcomes[0] {
			t.Fatalf("goroutine %d observed a different outcome", i)
		}
	}
}

func TestInitialize_Peek(t *testing.T) {
	in := NewInitializer(config.Default(), nil,
		WithLadder(testLadder("A")),
		WithConnector(func(context.Context, Strategy) (llm.Provider, error) {
			return llm.NewMockProvider(), nil
		}),
	)

	if _, ok := in.Peek(); ok {
		t.Fatal("Peek must report not-done before Initialize")
	}

	in.Initialize(context.Background())

	out, ok := in.Peek()
	if !ok || !out.Loaded {
		t.Fatal("Peek must return the cached outcome after Initialize")
	}
}

func TestProbe_RejectsEmptyOutput(t *testing.T) {
	empty := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`  `)})
	if err := probe(context.Background(), empty); err == nil {
		t.Fatal("expected probe to reject empty output")
	}

	ok := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`ready`)})
	if err := probe(context.Background(), ok); err != nil {
		t.Fatalf("unexpected probe error: %v", err)
	}
}

func TestLadder_Order(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "anthropic"
	cfg.LLM.Local.ModelDir = "/models/quiz"
	cfg.CABundle = "/etc/ssl/corp-ca.pem"

	names := make([]string, 0, 4)
	for _, s := range Ladder(cfg) {
		names = append(names, s.Name)
	}

	want := []string{StrategyLocal, StrategyInsecure, StrategyDefault, StrategyCustomCA}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestLadder_SkipInsecureAndNoExtras(t *testing.T) {
	cfg := config.Default()
	cfg.Strategies.SkipInsecure = true

	ladder := Ladder(cfg)
	if len(ladder) != 1 || ladder[0].Name != StrategyDefault {
		t.Fatalf("expected only the default strategy, got %+v", ladder)
	}
}

func TestLadder_Mock(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "mock"

	ladder := Ladder(cfg)
	if len(ladder) != 1 || ladder[0].Name != StrategyMock {
		t.Fatalf("expected single mock strategy, got %+v", ladder)
	}
}
