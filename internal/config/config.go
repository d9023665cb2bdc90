package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	LLM       LLMConfig       `yaml:"llm"`
	Models    ModelsConfig    `yaml:"models"`
	Chat      ChatConfig      `yaml:"chat"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"1048576"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
	// ConnectAttempts bounds the startup ping loop; managed databases are
	// often still waking up when the container starts.
	ConnectAttempts int           `yaml:"connect_attempts"   env:"DATABASE_CONNECT_ATTEMPTS"   env-default:"5"`
	ConnectBackoff  time.Duration `yaml:"connect_backoff"    env:"DATABASE_CONNECT_BACKOFF"    env-default:"1s"`
	// SimpleProtocol disables prepared statements for transaction poolers
	// such as pgbouncer.
	SimpleProtocol bool `yaml:"simple_protocol" env:"DATABASE_SIMPLE_PROTOCOL" env-default:"false"`
}

// Auth modes.
const (
	AuthModeJWT    = "jwt"
	AuthModeRemote = "remote"
)

// AuthConfig selects how bearer tokens are verified.
// In jwt mode tokens are checked locally against the shared HS256 secret;
// in remote mode they are resolved by the identity provider's user endpoint.
type AuthConfig struct {
	Mode          string        `yaml:"mode"            env:"AUTH_MODE"            env-default:"jwt"`
	JWTSecret     string        `yaml:"jwt_secret"      env:"AUTH_JWT_SECRET"`
	JWTIssuer     string        `yaml:"jwt_issuer"      env:"AUTH_JWT_ISSUER"`
	JWTAudience   string        `yaml:"jwt_audience"    env:"AUTH_JWT_AUDIENCE"    env-default:"authenticated"`
	RemoteURL     string        `yaml:"remote_url"      env:"SUPABASE_URL"`
	RemoteAPIKey  string        `yaml:"remote_api_key"  env:"SUPABASE_KEY"`
	RemoteTimeout time.Duration `yaml:"remote_timeout"  env:"AUTH_REMOTE_TIMEOUT"  env-default:"5s"`
}

// LLM providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderStub      = "stub"
)

// LLMConfig configures the text generation backend.
type LLMConfig struct {
	Provider     string        `yaml:"provider"      env:"LLM_PROVIDER"      env-default:"anthropic"`
	APIKey       string        `yaml:"api_key"       env:"LLM_API_KEY"`
	Model        string        `yaml:"model"         env:"LLM_MODEL"`
	BaseURL      string        `yaml:"base_url"      env:"LLM_BASE_URL"`
	MaxTokens    int           `yaml:"max_tokens"    env:"LLM_MAX_TOKENS"    env-default:"2048"`
	MaxRetries   int           `yaml:"max_retries"   env:"LLM_MAX_RETRIES"   env-default:"2"`
	Timeout      time.Duration `yaml:"timeout"       env:"LLM_TIMEOUT"       env-default:"30s"`
	TitleTimeout time.Duration `yaml:"title_timeout" env:"LLM_TITLE_TIMEOUT" env-default:"5s"`
}

// ModelsConfig points at the classifier artifacts.
type ModelsConfig struct {
	MaternalPath string `yaml:"maternal_path" env:"MODELS_MATERNAL_PATH" env-default:"models/maternal_v1.json"`
	FetalPath    string `yaml:"fetal_path"    env:"MODELS_FETAL_PATH"    env-default:"models/fetal_v1.json"`
}

// ChatConfig holds conversation limits.
type ChatConfig struct {
	MaxMessageLength int `yaml:"max_message_length" env:"CHAT_MAX_MESSAGE_LENGTH" env-default:"4000"`
	AppendAttempts   int `yaml:"append_attempts"    env:"CHAT_APPEND_ATTEMPTS"    env-default:"3"`
	// HistoryLimit caps the number of prior turns sent to the generator. 0 sends everything.
	HistoryLimit int `yaml:"history_limit" env:"CHAT_HISTORY_LIMIT" env-default:"0"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// Origins returns the configured origins as a trimmed list.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// RateLimitConfig bounds the endpoints that call the generator.
type RateLimitConfig struct {
	GenerationPerMinute int           `yaml:"generation_per_minute" env:"RATE_LIMIT_GENERATION_PER_MINUTE" env-default:"30"`
	CleanupInterval     time.Duration `yaml:"cleanup_interval"      env:"RATE_LIMIT_CLEANUP_INTERVAL"      env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}
