package llm

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// localManifestName is the manifest file expected inside a model directory.
const localManifestName = "manifest.json"

// defaultLocalBaseURL is where a llama.cpp/ollama runtime listens when the
// manifest does not say otherwise.
const defaultLocalBaseURL = "http://127.0.0.1:8080/v1"

// LocalManifest describes a previously fetched model in a local model
// directory. The model is served by an OpenAI-compatible runtime, so
// generation needs no external network access at all.
type LocalManifest struct {
	// Model is the model identifier to request from the runtime.
	Model string `json:"model"`

	// BaseURL is the runtime's OpenAI-compatible endpoint.
	// Default: http://127.0.0.1:8080/v1
	BaseURL string `json:"base_url"`
}

// LoadLocalManifest reads and validates the manifest in dir.
func LoadLocalManifest(dir string) (*LocalManifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, localManifestName))
	if err != nil {
		return nil, fmt.Errorf("read model manifest: %w", err)
	}

	var m LocalManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model manifest: %w", err)
	}
	if m.Model == "" {
		return nil, fmt.Errorf("model manifest in %s has no model name", dir)
	}
	if m.BaseURL == "" {
		m.BaseURL = defaultLocalBaseURL
	}

	return &m, nil
}

// NewLocalProvider creates a provider for a locally served model described
// by the manifest in cfg.ModelDir. The runtime speaks the OpenAI chat API,
// so the OpenAI provider is reused with the manifest's base URL. Local
// runtimes ignore the API key but the SDK requires one.
func NewLocalProvider(cfg LocalConfig) (*OpenAIProvider, error) {
	if cfg.ModelDir == "" {
		return nil, fmt.Errorf("local model directory is required")
	}

	manifest, err := LoadLocalManifest(cfg.ModelDir)
	if err != nil {
		return nil, err
	}

	return NewOpenAIProvider(OpenAIConfig{
		APIKey:  "local",
		Model:   manifest.Model,
		BaseURL: manifest.BaseURL,
	}, nil)
}
