// Package quizgen orchestrates question generation. The AI path runs
// when a model handle is loaded; the template path covers everything
// else. For a well-formed request, generation never fails.
package quizgen

import (
	"context"
	"sync"

	"github.com/quizhive/quizgen/internal/backend"
	"github.com/quizhive/quizgen/internal/config"
	"github.com/quizhive/quizgen/internal/llm"
	"github.com/quizhive/quizgen/internal/quiz"
	"github.com/quizhive/quizgen/internal/templategen"
)

// Status reports the generator's model state.
type Status struct {
	// ModelsLoaded is true once a connection strategy has produced a
	// working handle. False before the first generation attempt and
	// false forever if the whole ladder failed.
	ModelsLoaded bool `json:"models_loaded"`

	// ActiveStrategy names the winning strategy; empty when no model
	// is loaded.
	ActiveStrategy string `json:"active_strategy"`
}

// Service is the generation orchestrator. Safe for concurrent use.
type Service struct {
	cfg  config.Config
	init *backend.Initializer
	tmpl *templategen.Generator

	// ai is built once from the first loaded outcome and shared across
	// calls, so its rate limiter throttles the whole process rather
	// than one batch.
	aiOnce sync.Once
	ai     *AIGenerator
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithInitializer replaces the default backend initializer. Test hook.
func WithInitializer(in *backend.Initializer) ServiceOption {
	return func(s *Service) { s.init = in }
}

// WithTemplateGenerator replaces the default template generator.
func WithTemplateGenerator(g *templategen.Generator) ServiceOption {
	return func(s *Service) { s.tmpl = g }
}

// New builds a Service from configuration. sink receives model request
// events; nil disables event logging.
func New(cfg config.Config, sink llm.EventSink, opts ...ServiceOption) *Service {
	var tmplOpts []templategen.Option
	if cfg.Templates.Seed != 0 {
		tmplOpts = append(tmplOpts, templategen.WithSeed(cfg.Templates.Seed))
	}

	s := &Service{
		cfg:  cfg,
		init: backend.NewInitializer(cfg, sink),
		tmpl: templategen.NewGenerator(tmplOpts...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate produces exactly req.Count questions. The only error it
// returns is request validation; model and network trouble of any kind
// falls back to the template path within this call.
func (s *Service) Generate(ctx context.Context, req quiz.Request) ([]quiz.Question, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	outcome := s.init.Initialize(ctx)
	if outcome.Loaded {
		if qs, err := s.aiGenerator(outcome.Provider).Generate(ctx, req); err == nil {
			return qs, nil
		}
		// Discard any partial AI batch. A batch is entirely AI or
		// entirely template, never a mix.
	}

	return s.tmpl.Generate(req), nil
}

// aiGenerator memoizes the AI generator for the acquired provider. The
// outcome's provider never changes after the first ladder walk, so once
// is enough.
func (s *Service) aiGenerator(p llm.Provider) *AIGenerator {
	s.aiOnce.Do(func() {
		s.ai = NewAIGenerator(p, s.cfg.Generation)
	})
	return s.ai
}

// Initialize walks the connection ladder (or returns the cached outcome)
// and reports the resulting status. Used by the status command, which
// wants a definitive answer rather than Peek's "not yet".
func (s *Service) Initialize(ctx context.Context) Status {
	outcome := s.init.Initialize(ctx)
	return Status{
		ModelsLoaded:   outcome.Loaded,
		ActiveStrategy: outcome.ActiveStrategy,
	}
}

// Status reports model state without triggering a ladder walk. Before
// the first generation attempt it reports not loaded.
func (s *Service) Status() Status {
	outcome, ok := s.init.Peek()
	if !ok {
		return Status{}
	}
	return Status{
		ModelsLoaded:   outcome.Loaded,
		ActiveStrategy: outcome.ActiveStrategy,
	}
}

// Topics lists the topics the template bank covers explicitly.
func (s *Service) Topics() []string {
	return s.tmpl.Topics()
}
