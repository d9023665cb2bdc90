package app

import (
	"fmt"

	"github.com/heartmarshall/nova-backend/internal/auth"
	"github.com/heartmarshall/nova-backend/internal/config"
	"github.com/heartmarshall/nova-backend/internal/llm"
)

// NewVerifier selects the bearer token verifier for the configured mode.
func NewVerifier(cfg config.AuthConfig) (TokenVerifier, error) {
	switch cfg.Mode {
	case config.AuthModeJWT:
		return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, 0), nil
	case config.AuthModeRemote:
		return auth.NewRemoteVerifier(cfg.RemoteURL, cfg.RemoteAPIKey, cfg.RemoteTimeout), nil
	default:
		return nil, fmt.Errorf("auth: unknown mode %q", cfg.Mode)
	}
}

// NewGenerator selects the text generation backend. Unknown providers are
// rejected by config validation, so the stub is the fallthrough.
func NewGenerator(cfg config.LLMConfig) llm.Generator {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return llm.NewAnthropicGenerator(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens, cfg.MaxRetries)
	case config.ProviderOpenAI:
		return llm.NewOpenAIGenerator(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens, cfg.MaxRetries)
	default:
		return llm.StubGenerator{}
	}
}
