package openrouter

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"text/template"
	"time"

	"github.com/abialobrodzki/10x-cards-sub001/internal/config"
	"github.com/abialobrodzki/10x-cards-sub001/internal/generation"
)

// Fallback values applied by NewClient when the corresponding configuration
// field is zero. They mirror the config package defaults so a Client built
// from a hand-rolled LLMConfig behaves like one built from the environment.
const (
	defaultRequestTimeout   = 60 * time.Second
	defaultMaxRetries       = 3
	defaultMaxContextTokens = 8000
	defaultCacheTTL         = 30 * time.Minute
)

// Client is the gateway to the OpenRouter chat-completions API. A Client is
// constructed once per logical session and holds mutable conversational
// state: the chat history grows with every exchange until ClearHistory, and
// the response cache grows per unique request until entries expire or
// ClearCache is called.
//
// All state mutation is mutex-guarded, so a Client is safe for concurrent
// use; the interleaving order of history appends from concurrent Chat calls
// is caller-visible but unspecified.
type Client struct {
	logger *slog.Logger
	hc     *http.Client

	apiKey   string
	endpoint string
	siteURL  string

	timeout          time.Duration
	maxRetries       int
	maxContextTokens int

	promptTemplate *template.Template

	// sleep waits between retry attempts; injectable for tests.
	sleep func(d time.Duration) <-chan time.Time

	mu         sync.Mutex
	model      string
	params     ModelParameters
	systemMsg  string
	userMsg    string
	history    []ChatMessage
	cache      ResponseCache
}

// Option customizes a Client beyond its configuration.
type Option func(*Client)

// WithCache replaces the default TTL cache, e.g. with a bounded
// implementation or a deterministic test double.
func WithCache(cache ResponseCache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithHTTPClient replaces the transport used for completion calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// NewClient validates the configuration, applies defaults for unset fields,
// and constructs a gateway client. It performs no network calls: an invalid
// configuration fails here with generation.ErrInvalidConfig before any
// request can be issued.
func NewClient(logger *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = config.DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = config.DefaultModel
	}
	if cfg.RequestTimeoutSeconds < 0 || cfg.MaxRetries < 0 ||
		cfg.MaxContextTokens < 0 || cfg.CacheTTLMinutes < 0 {
		return nil, fmt.Errorf("%w: timeouts, retries and budgets cannot be negative", generation.ErrInvalidConfig)
	}

	timeout := defaultRequestTimeout
	if cfg.RequestTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	}

	maxRetries := defaultMaxRetries
	if cfg.MaxRetries > 0 {
		maxRetries = cfg.MaxRetries
	}

	maxContextTokens := defaultMaxContextTokens
	if cfg.MaxContextTokens > 0 {
		maxContextTokens = cfg.MaxContextTokens
	}

	ttl := defaultCacheTTL
	if cfg.CacheTTLMinutes > 0 {
		ttl = time.Duration(cfg.CacheTTLMinutes) * time.Minute
	}

	promptTemplate, err := loadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	client := &Client{
		logger:           logger,
		hc:               &http.Client{},
		apiKey:           cfg.APIKey,
		endpoint:         cfg.Endpoint,
		siteURL:          cfg.SiteURL,
		timeout:          timeout,
		maxRetries:       maxRetries,
		maxContextTokens: maxContextTokens,
		promptTemplate:   promptTemplate,
		sleep:            time.After,
		model:            normalizeModel(cfg.Model),
		params:           ModelParameters{},
		cache:            newTTLCache(ttl),
	}

	for _, opt := range opts {
		opt(client)
	}

	logger.Info("OpenRouter client initialized",
		"endpoint", client.endpoint,
		"model", client.model,
		"request_timeout", timeout.String(),
		"max_retries", maxRetries,
		"max_context_tokens", maxContextTokens,
		"cache_ttl", ttl.String())

	return client, nil
}

// loadPromptTemplate parses the flashcard prompt template, reading it from
// path when set and falling back to the built-in template otherwise.
func loadPromptTemplate(path string) (*template.Template, error) {
	content := defaultPromptTemplate
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				generation.ErrInvalidConfig, path, err)
		}
		content = string(raw)
	}

	promptTemplate, err := template.New("flashcard").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	return promptTemplate, nil
}

// SetModel changes the model used for subsequent requests. Names without a
// provider part get the default provider prefix.
func (c *Client) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = normalizeModel(model)
}

// SetSystemMessage sets the system message prepended to chat requests.
// An empty string removes it.
func (c *Client) SetSystemMessage(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.systemMsg = msg
}

// SetUserMessage presets the user message used by Chat when it is called
// without an argument.
func (c *Client) SetUserMessage(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userMsg = msg
}

// SetParameters replaces the model parameters merged into every request.
func (c *Client) SetParameters(params ModelParameters) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if params == nil {
		params = ModelParameters{}
	}
	c.params = params
}

// History returns a copy of the conversation so far.
func (c *Client) History() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatMessage, len(c.history))
	copy(out, c.history)
	return out
}

// ClearHistory discards the conversation state.
func (c *Client) ClearHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
}

// ClearCache empties the response cache.
func (c *Client) ClearCache() {
	c.mu.Lock()
	cache := c.cache
	c.mu.Unlock()
	cache.Clear()
}
