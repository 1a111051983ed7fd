// Package config holds the explicit configuration structs passed into models
// and example programs at construction time, plus fail-fast environment
// helpers. All validation happens once at startup; components can assume a
// validated configuration afterwards.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Model configures a chat-completion endpoint. Immutable after construction.
//
// ContextLength must be set explicitly by the caller. Local model runtimes
// default to small context windows (ollama defaults to 2048) which silently
// truncate conversations mid-episode; refusing to guess a value turns that
// foot-gun into a startup error.
type Model struct {
	// ModelID is the provider-side model identifier, e.g. "qwen2.5:7b".
	ModelID string
	// BaseURL is the endpoint root, e.g. "http://localhost:8080/v1".
	BaseURL string
	// APIKey authenticates against the endpoint. May be a placeholder for
	// local runtimes that ignore it.
	APIKey string
	// ContextLength is the context window size in tokens. Required.
	ContextLength int
}

// Validate reports the first configuration problem found.
func (m Model) Validate() error {
	if m.ModelID == "" {
		return errors.New("model config: ModelID is required")
	}
	if m.BaseURL == "" {
		return errors.New("model config: BaseURL is required")
	}
	if m.ContextLength <= 0 {
		return errors.New("model config: ContextLength must be set explicitly and positive")
	}
	return nil
}

// LoadEnv loads environment variables from the given dotenv files (default
// ".env"). A missing file is not an error; variables already present in the
// process environment win over file values.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

// RequireEnv returns the value of key or an error if it is unset or empty.
// Callers use this as a startup precondition so missing credentials fail
// before any agent or network work begins.
func RequireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("environment variable %s is not set: add it to your environment or .env file", key)
	}
	return v, nil
}
