package config

// Default values applied by Load when the environment does not override them.
const (
	// DefaultEndpoint is the OpenRouter chat-completions URL.
	DefaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"

	// DefaultModel is the baseline model used when none is configured.
	DefaultModel = "openai/gpt-4o-mini"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
}

// ServerConfig contains all process-level configuration settings.
type ServerConfig struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all LLM gateway related settings.
type LLMConfig struct {
	// APIKey authenticates against the completion endpoint. Required.
	APIKey string `mapstructure:"api_key" validate:"required"`

	// Endpoint is the completion URL requests are POSTed to.
	Endpoint string `mapstructure:"endpoint" validate:"required,url"`

	// Model is the default "provider/model" identifier.
	Model string `mapstructure:"model" validate:"required"`

	// SiteURL is sent as the HTTP-Referer header, identifying the calling
	// application to OpenRouter. Optional.
	SiteURL string `mapstructure:"site_url" validate:"omitempty,url"`

	// RequestTimeoutSeconds bounds each individual HTTP attempt.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gte=1"`

	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0"`

	// MaxContextTokens bounds the estimated size of chat history included
	// in a request.
	MaxContextTokens int `mapstructure:"max_context_tokens" validate:"gte=1"`

	// CacheTTLMinutes is how long a cached response stays valid.
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes" validate:"gte=1"`

	// PromptTemplatePath optionally overrides the built-in flashcard
	// prompt template.
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
}
