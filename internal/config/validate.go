package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if c.Database.ConnectAttempts < 1 {
		return fmt.Errorf("database: connect_attempts must be >= 1 (got %d)", c.Database.ConnectAttempts)
	}
	if c.Models.MaternalPath == "" || c.Models.FetalPath == "" {
		return fmt.Errorf("models: maternal_path and fetal_path are required")
	}
	if c.Chat.MaxMessageLength <= 0 {
		return fmt.Errorf("chat: max_message_length must be > 0 (got %d)", c.Chat.MaxMessageLength)
	}
	if c.Chat.AppendAttempts < 1 {
		return fmt.Errorf("chat: append_attempts must be >= 1 (got %d)", c.Chat.AppendAttempts)
	}
	if c.Chat.HistoryLimit < 0 {
		return fmt.Errorf("chat: history_limit must be >= 0 (got %d)", c.Chat.HistoryLimit)
	}
	if c.RateLimit.GenerationPerMinute < 0 {
		return fmt.Errorf("rate_limit: generation_per_minute must be >= 0 (got %d)", c.RateLimit.GenerationPerMinute)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit: cleanup_interval must be > 0 (got %s)", c.RateLimit.CleanupInterval)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server: max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics: path must start with / (got %q)", c.Metrics.Path)
	}
	return nil
}

func (a *AuthConfig) validate() error {
	switch a.Mode {
	case AuthModeJWT:
		if len(a.JWTSecret) < 32 {
			return fmt.Errorf("jwt_secret must be at least 32 characters (got %d)", len(a.JWTSecret))
		}
	case AuthModeRemote:
		if a.RemoteURL == "" || a.RemoteAPIKey == "" {
			return fmt.Errorf("remote mode requires remote_url and remote_api_key")
		}
		if a.RemoteTimeout <= 0 {
			return fmt.Errorf("remote_timeout must be > 0 (got %v)", a.RemoteTimeout)
		}
	default:
		return fmt.Errorf("unknown mode %q", a.Mode)
	}
	return nil
}

func (l *LLMConfig) validate() error {
	switch l.Provider {
	case ProviderAnthropic, ProviderOpenAI:
		if l.APIKey == "" {
			return fmt.Errorf("api_key is required for provider %q", l.Provider)
		}
	case ProviderStub:
	default:
		return fmt.Errorf("unknown provider %q", l.Provider)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", l.Timeout)
	}
	if l.TitleTimeout <= 0 {
		return fmt.Errorf("title_timeout must be > 0 (got %v)", l.TitleTimeout)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0 (got %d)", l.MaxRetries)
	}
	return nil
}
