package openrouter

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abialobrodzki/10x-cards-sub001/internal/config"
)

// newTestClient builds a client against the given endpoint with retry delays
// stubbed out so tests do not sleep.
func newTestClient(t *testing.T, endpoint string, maxRetries int, opts ...Option) *Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := NewClient(logger, config.LLMConfig{
		APIKey:                "test-api-key",
		Endpoint:              endpoint,
		Model:                 "openai/gpt-4o-mini",
		RequestTimeoutSeconds: 5,
		MaxRetries:            maxRetries,
	}, opts...)
	require.NoError(t, err)

	client.sleep = stubSleep(nil)
	return client
}

// stubSleep returns a sleep function that fires immediately, optionally
// recording the delays it was asked for.
func stubSleep(delays *[]time.Duration) func(time.Duration) <-chan time.Time {
	return func(d time.Duration) <-chan time.Time {
		if delays != nil {
			*delays = append(*delays, d)
		}
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}
}

// countingServer runs an httptest server whose handler is invoked for every
// attempt, exposing the request count.
func countingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

// completionBody renders a minimal valid chat-completions response.
func completionBody(content string) string {
	raw, _ := json.Marshal(map[string]any{
		"id":    "gen-test-1",
		"model": "openai/gpt-4o-mini",
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(raw)
}
