// Package config loads quizgen configuration from an optional TOML file
// with environment variable overrides. Retry bounds, strategy timeouts and
// the AI attempt budget are configuration, not hard-coded constants.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/quizhive/quizgen/internal/llm"
)

// Duration is a time.Duration that unmarshals from TOML strings like "8s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config is the full quizgen configuration.
type Config struct {
	// LLM is provider selection and credentials. Populated from the
	// environment, never from the config file (keys don't belong on disk).
	LLM llm.Config `toml:"-"`

	// CABundle is a PEM file path for the custom-ca connection strategy.
	CABundle string `toml:"ca_bundle"`

	// DBPath overrides the default location of the event database.
	DBPath string `toml:"db_path"`

	Strategies Strategies `toml:"strategies"`
	Generation Generation `toml:"generation"`
	Templates  Templates  `toml:"templates"`
}

// Strategies tunes the connection strategy ladder.
type Strategies struct {
	// LocalTimeout bounds the local-runtime probe. Short: the runtime
	// either answers on loopback quickly or isn't running.
	LocalTimeout Duration `toml:"local_timeout"`

	// NetworkTimeout bounds each network strategy's connect-and-probe.
	NetworkTimeout Duration `toml:"network_timeout"`

	// SkipInsecure removes the certificate-verification-disabled rung
	// from the ladder.
	SkipInsecure bool `toml:"skip_insecure"`
}

// Generation tunes the AI generation path.
type Generation struct {
	// MaxTokens is the token budget per model response.
	MaxTokens int `toml:"max_tokens"`

	// Temperature controls model output randomness (0.0-1.0).
	Temperature float64 `toml:"temperature"`

	// MaxExtraAttempts is how many additional model calls beyond Count
	// a batch may spend replacing invalid or duplicate completions
	// before the whole batch fails over to templates.
	MaxExtraAttempts int `toml:"max_extra_attempts"`

	// RequestsPerSecond rate-limits model calls. 0 disables limiting.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// Templates tunes the fallback generator.
type Templates struct {
	// Seed fixes the template generator's random source when non-zero.
	// Used for reproducible batches; 0 seeds from the clock.
	Seed int64 `toml:"seed"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: llm.DefaultConfig(),
		Strategies: Strategies{
			LocalTimeout:   Duration{3 * time.Second},
			NetworkTimeout: Duration{15 * time.Second},
		},
		Generation: Generation{
			MaxTokens:        512,
			Temperature:      0.8,
			MaxExtraAttempts: -1, // -1 means "derive from count", see Budget.
		},
	}
}

// Load reads the TOML file at path over the defaults, then applies
// environment overrides. An empty path skips the file entirely; a missing
// file at an explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0])
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// FromEnv returns the default configuration with environment overrides
// applied, without reading any file.
func FromEnv() Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	c.LLM = llm.ConfigFromEnv()

	if v := os.Getenv("QUIZGEN_CA_BUNDLE"); v != "" {
		c.CABundle = v
	}
	if v := os.Getenv("QUIZGEN_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("QUIZGEN_SKIP_INSECURE_TLS"); v == "1" || v == "true" {
		c.Strategies.SkipInsecure = true
	}
}

// Budget resolves the extra-attempt budget for a batch of count
// questions. The default is one extra attempt per requested question.
func (g Generation) Budget(count int) int {
	if g.MaxExtraAttempts >= 0 {
		return g.MaxExtraAttempts
	}
	return count
}
