package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables with the TENX_ prefix.
// Nested keys map to underscores, e.g. llm.api_key reads TENX_LLM_API_KEY.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults double as key registrations so AutomaticEnv can see them.
	v.SetDefault("server.log_level", "info")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.endpoint", DefaultEndpoint)
	v.SetDefault("llm.model", DefaultModel)
	v.SetDefault("llm.site_url", "")
	v.SetDefault("llm.request_timeout_seconds", 60)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.max_context_tokens", 8000)
	v.SetDefault("llm.cache_ttl_minutes", 30)
	v.SetDefault("llm.prompt_template_path", "")

	v.SetEnvPrefix("TENX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
