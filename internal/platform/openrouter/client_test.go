package openrouter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abialobrodzki/10x-cards-sub001/internal/config"
	"github.com/abialobrodzki/10x-cards-sub001/internal/generation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewClientMissingAPIKey(t *testing.T) {
	t.Parallel()

	srv, calls := countingServer(t, func(w http.ResponseWriter, r *http.Request) {})

	client, err := NewClient(discardLogger(), config.LLMConfig{Endpoint: srv.URL})

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	assert.Nil(t, client)
	assert.EqualValues(t, 0, calls.Load(), "construction must perform zero network calls")
}

func TestNewClientNilLogger(t *testing.T) {
	t.Parallel()

	client, err := NewClient(nil, config.LLMConfig{APIKey: "key"})
	require.Error(t, err)
	assert.Nil(t, client)
}

func TestNewClientAppliesDefaults(t *testing.T) {
	t.Parallel()

	client, err := NewClient(discardLogger(), config.LLMConfig{APIKey: "key"})
	require.NoError(t, err)

	assert.Equal(t, config.DefaultEndpoint, client.endpoint)
	assert.Equal(t, config.DefaultModel, client.model)
	assert.Equal(t, 60*time.Second, client.timeout)
	assert.Equal(t, 3, client.maxRetries)
	assert.Equal(t, 8000, client.maxContextTokens)
}

func TestNewClientRejectsNegativeSettings(t *testing.T) {
	t.Parallel()

	_, err := NewClient(discardLogger(), config.LLMConfig{APIKey: "key", MaxRetries: -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestNewClientMissingPromptTemplateFile(t *testing.T) {
	t.Parallel()

	_, err := NewClient(discardLogger(), config.LLMConfig{
		APIKey:             "key",
		PromptTemplatePath: filepath.Join(t.TempDir(), "missing.tmpl"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestNewClientCustomPromptTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("Make a card about: {{.SourceText}}"), 0o600))

	client, err := NewClient(discardLogger(), config.LLMConfig{
		APIKey:             "key",
		PromptTemplatePath: path,
	})
	require.NoError(t, err)

	prompt, err := client.createPrompt(context.Background(), "gophers")
	require.NoError(t, err)
	assert.Equal(t, "Make a card about: gophers", prompt)
}

func TestSetModelNormalizes(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://localhost:0", 1)
	client.SetModel("gpt-4o")
	assert.Equal(t, "openai/gpt-4o", client.model)
}

func TestHistoryReturnsCopy(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://localhost:0", 1)
	client.appendHistory(
		ChatMessage{Role: RoleUser, Content: "hi"},
		ChatMessage{Role: RoleAssistant, Content: "hello"},
	)

	history := client.History()
	require.Len(t, history, 2)
	history[0].Content = "mutated"

	assert.Equal(t, "hi", client.History()[0].Content, "History must return a copy")

	client.ClearHistory()
	assert.Empty(t, client.History())
}
