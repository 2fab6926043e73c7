package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/quizhive/quizgen/internal/config"
	"github.com/quizhive/quizgen/internal/llm"
)

// Outcome is the cached result of walking the strategy ladder. Created at
// most once per process and read-only thereafter.
type Outcome struct {
	// Loaded reports whether any strategy produced a usable handle.
	Loaded bool

	// ActiveStrategy is the name of the winning strategy; empty when
	// nothing loaded.
	ActiveStrategy string

	// Provider is the acquired handle; nil when nothing loaded.
	Provider llm.Provider
}

// Connector attempts one strategy and returns a probed, ready-to-use
// provider. ctx carries the strategy's timeout.
type Connector func(ctx context.Context, s Strategy) (llm.Provider, error)

// Initializer walks the ladder exactly once per process, no matter how
// many goroutines ask. All callers observe the same Outcome; subsequent
// calls return the cached value without touching the network.
type Initializer struct {
	mu      sync.Mutex
	done    bool
	outcome Outcome

	ladder  []Strategy
	connect Connector
}

// Option customizes an Initializer.
type Option func(*Initializer)

// WithLadder replaces the configured ladder. Test hook.
func WithLadder(ladder []Strategy) Option {
	return func(in *Initializer) { in.ladder = ladder }
}

// WithConnector replaces the default connector. Test hook.
func WithConnector(c Connector) Option {
	return func(in *Initializer) { in.connect = c }
}

// NewInitializer builds an Initializer for the given configuration. sink
// receives request events from the providers the connector builds; nil
// disables event logging.
func NewInitializer(cfg config.Config, sink llm.EventSink, opts ...Option) *Initializer {
	in := &Initializer{
		ladder:  Ladder(cfg),
		connect: defaultConnector(cfg, sink),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Initialize walks the ladder on first call and caches the result.
// First success wins; once a strategy yields a probed handle no further
// strategies are attempted. Exhausting the ladder is not an error: the
// returned Outcome simply has Loaded=false.
func (in *Initializer) Initialize(ctx context.Context) Outcome {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.done {
		return in.outcome
	}

	for _, s := range in.ladder {
		provider, err := in.attempt(ctx, s)
		if err != nil {
			continue
		}

		in.outcome = Outcome{
			Loaded:         true,
			ActiveStrategy: s.Name,
			Provider:       provider,
		}
		break
	}

	in.done = true
	return in.outcome
}

// attempt runs one strategy under its own timeout.
func (in *Initializer) attempt(ctx context.Context, s Strategy) (llm.Provider, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	return in.connect(ctx, s)
}

// Peek returns the cached outcome without walking the ladder.
// ok is false when Initialize has not run yet.
func (in *Initializer) Peek() (outcome Outcome, ok bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.outcome, in.done
}

// defaultConnector builds a provider for one strategy and sanity-probes
// it before handing it out.
func defaultConnector(cfg config.Config, sink llm.EventSink) Connector {
	return func(ctx context.Context, s Strategy) (llm.Provider, error) {
		llmCfg := cfg.LLM

		switch s.Name {
		case StrategyLocal:
			llmCfg.Provider = "local"
		case StrategyMock:
			llmCfg.Provider = "mock"
		}

		var httpClient *http.Client
		if s.TLS != "" {
			var err error
			httpClient, err = llm.NewHTTPClient(s.TLS, cfg.CABundle, s.Timeout)
			if err != nil {
				return nil, fmt.Errorf("strategy %s: %w", s.Name, err)
			}
		}

		base, err := llm.NewProvider(ctx, llmCfg, httpClient)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", s.Name, err)
		}

		logged := llm.WithLogging(base, llmCfg.Provider, sink)

		if err := probe(ctx, logged); err != nil {
			return nil, fmt.Errorf("strategy %s: probe: %w", s.Name, err)
		}

		return llm.WithRetry(logged, llmCfg.Retry), nil
	}
}

// probe asks the handle to produce any output at all. A strategy that
// builds a client but cannot complete a tiny generation is a failure,
// not a success.
func probe(ctx context.Context, p llm.Provider) error {
	ctx = llm.WithPurpose(ctx, llm.PurposeProbe)

	resp, err := p.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Reply with the single word: ready"},
		},
		MaxTokens: 16,
	})
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(resp.Content)) == "" {
		return fmt.Errorf("handle produced no output")
	}
	return nil
}
