package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/abialobrodzki/10x-cards-sub001/internal/generation"
	"github.com/abialobrodzki/10x-cards-sub001/internal/redact"
)

// Backoff schedule: delay before attempt n (n >= 1) is min(2^n seconds,
// backoffCap). The schedule is deterministic and carries no jitter, so tests
// can assert the exact delays.
const (
	backoffBase = time.Second
	backoffCap  = 30 * time.Second
)

// backoffDelay returns the capped exponential delay preceding attempt.
func backoffDelay(attempt int) time.Duration {
	delay := backoffBase << attempt
	if delay > backoffCap || delay <= 0 {
		return backoffCap
	}
	return delay
}

// classifyStatus maps a non-2xx HTTP status to the error taxonomy.
// 401/403 mean the credentials are wrong and retrying would only leak them;
// 5xx is a remote fault worth retrying; anything else typically indicates a
// malformed request and is surfaced as a generic, non-retryable failure.
func classifyStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", generation.ErrAuthentication, status)
	case status >= 500:
		return fmt.Errorf("%w: status %d", generation.ErrTransientFailure, status)
	default:
		return fmt.Errorf("%w: unexpected status %d", generation.ErrGenerationFailed, status)
	}
}

// retryable reports whether another attempt could change the outcome.
func retryable(err error) bool {
	return errors.Is(err, generation.ErrTransientFailure)
}

// executeRequest performs the HTTP exchange with bounded retries. Attempts
// run 0..maxRetries; before attempt n > 0 the executor sleeps backoffDelay(n)
// or aborts when ctx is cancelled. Non-retryable errors (authentication,
// response shape, malformed request) end the loop immediately; after
// exhausting all attempts the last observed error is surfaced.
func (c *Client) executeRequest(ctx context.Context, payload *requestPayload) (*chatCompletionsResponse, json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to encode request payload: %v",
			generation.ErrInvalidConfig, err)
	}

	exchangeID := uuid.New().String()
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt)
			c.logger.InfoContext(ctx, "Retrying completion call after delay",
				"exchange_id", exchangeID,
				"attempt", attempt+1,
				"delay", delay.String())

			select {
			case <-c.sleep(delay):
			case <-ctx.Done():
				c.logger.WarnContext(ctx, "Completion call cancelled during retry delay",
					"exchange_id", exchangeID,
					"attempt", attempt+1,
					"ctx_err", ctx.Err())
				return nil, nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
			}
		}

		c.logger.InfoContext(ctx, "Making completion call",
			"exchange_id", exchangeID,
			"attempt", attempt+1,
			"max_attempts", c.maxRetries+1,
			"model", payload.Model)

		resp, raw, err := c.doAttempt(ctx, body)
		if err == nil {
			c.logger.InfoContext(ctx, "Completion call successful",
				"exchange_id", exchangeID,
				"attempt", attempt+1,
				"response_id", resp.ID)
			return resp, raw, nil
		}

		lastErr = err
		c.logger.ErrorContext(ctx, "Completion call failed",
			"exchange_id", exchangeID,
			"attempt", attempt+1,
			"error", redact.Error(err))

		if !retryable(err) {
			c.logger.WarnContext(ctx, "Permanent error, not retrying",
				"exchange_id", exchangeID)
			return nil, nil, err
		}
	}

	c.logger.WarnContext(ctx, "Maximum retry attempts reached",
		"exchange_id", exchangeID,
		"max_retries", c.maxRetries)
	return nil, nil, lastErr
}

// doAttempt issues a single HTTP POST bound to the per-attempt timeout and
// validates the transport shape of the result.
func (c *Client) doAttempt(ctx context.Context, body []byte) (*chatCompletionsResponse, json.RawMessage, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: creating HTTP request: %v", generation.ErrGenerationFailed, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.siteURL != "" {
		req.Header.Set("HTTP-Referer", c.siteURL)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		// Transport failures, including the per-attempt timeout, are
		// eligible for retry.
		return nil, nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading response body: %v", generation.ErrTransientFailure, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		c.logger.DebugContext(ctx, "Non-2xx completion response",
			"status", res.StatusCode,
			"body", redact.String(string(raw)))
		return nil, nil, classifyStatus(res.StatusCode)
	}

	var completion chatCompletionsResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return nil, nil, fmt.Errorf("%w: failed to decode completion response: %v",
			generation.ErrInvalidResponse, err)
	}

	if len(completion.Choices) == 0 {
		return nil, nil, fmt.Errorf("%w: no choices in response", generation.ErrInvalidResponse)
	}

	if completion.Choices[0].Message.Content == "" {
		return nil, nil, fmt.Errorf("%w: empty message content in response", generation.ErrInvalidResponse)
	}

	return &completion, raw, nil
}
