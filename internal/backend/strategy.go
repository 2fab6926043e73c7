// Package backend acquires a working model handle by walking an ordered
// ladder of connection strategies, falling out with a loaded=false outcome
// when none succeeds. Failure here is a normal, representable result, not
// an error: callers fall back to template generation.
package backend

import (
	"time"

	"github.com/quizhive/quizgen/internal/config"
	"github.com/quizhive/quizgen/internal/llm"
)

// Strategy names. The set is closed and order-sensitive; strategies are
// declared at startup and never discovered dynamically.
const (
	// StrategyLocal loads a previously fetched model from the local model
	// directory. No external network access; always tried first.
	StrategyLocal = "local"

	// StrategyInsecure connects with certificate verification disabled.
	// Tried before the default transport: on restricted networks the
	// blocking condition is usually certificate interception, not malice.
	StrategyInsecure = "insecure"

	// StrategyDefault connects with the system certificate pool.
	StrategyDefault = "default"

	// StrategyCustomCA trusts only the configured CA bundle. Last rung:
	// the most conservative policy, for networks with a corporate root.
	StrategyCustomCA = "custom-ca"

	// StrategyMock hands out the in-memory mock provider. Test use only.
	StrategyMock = "mock"
)

// Strategy is one rung of the connection ladder: a named recipe for
// acquiring a model handle with its own transport-security policy and
// timeout. Immutable once built.
type Strategy struct {
	Name    string
	TLS     llm.TLSMode // zero for local and mock
	Timeout time.Duration
}

// Ladder builds the strategy ladder from configuration, most permissive
// transport first. The local model directory, when configured, takes
// priority over every network strategy.
func Ladder(cfg config.Config) []Strategy {
	if cfg.LLM.Provider == "mock" {
		return []Strategy{{Name: StrategyMock, Timeout: cfg.Strategies.LocalTimeout.Duration}}
	}

	var ladder []Strategy

	if cfg.LLM.Local.ModelDir != "" {
		ladder = append(ladder, Strategy{
			Name:    StrategyLocal,
			Timeout: cfg.Strategies.LocalTimeout.Duration,
		})
	}

	netTimeout := cfg.Strategies.NetworkTimeout.Duration

	if !cfg.Strategies.SkipInsecure {
		ladder = append(ladder, Strategy{
			Name:    StrategyInsecure,
			TLS:     llm.TLSInsecure,
			Timeout: netTimeout,
		})
	}

	ladder = append(ladder, Strategy{
		Name:    StrategyDefault,
		TLS:     llm.TLSDefault,
		Timeout: netTimeout,
	})

	if cfg.CABundle != "" {
		ladder = append(ladder, Strategy{
			Name:    StrategyCustomCA,
			TLS:     llm.TLSCustomCA,
			Timeout: netTimeout,
		})
	}

	return ladder
}
