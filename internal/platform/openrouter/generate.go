package openrouter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/abialobrodzki/10x-cards-sub001/internal/domain"
	"github.com/abialobrodzki/10x-cards-sub001/internal/generation"
)

// Client implements the generation boundary interface.
var _ generation.Generator = (*Client)(nil)

// flashcardSystemPrompt is the fixed system instruction for structured
// flashcard generation.
const flashcardSystemPrompt = "You are an expert flashcard author. " +
	"You turn source text into a single high-quality flashcard for spaced repetition. " +
	"Answer only with JSON conforming to the provided schema."

// defaultPromptTemplate renders the user message for flashcard generation.
// It can be overridden through LLMConfig.PromptTemplatePath.
const defaultPromptTemplate = `Create one flashcard from the source text below.
The front must ask a focused question answerable from the text alone; the back must answer it
concisely. Add a short hint when it helps recall, estimate the difficulty, and tag the card
with up to three topics.

Source text:
{{.SourceText}}`

// promptData represents the data passed to the prompt template
type promptData struct {
	SourceText string
}

// flashcardResponseFormat declares the json_schema constraint for a
// FlashcardProposal.
func flashcardResponseFormat() *ResponseFormat {
	return &ResponseFormat{
		Type: "json_schema",
		JSONSchema: &JSONSchema{
			Name:   "flashcard_proposal",
			Strict: true,
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"front": map[string]any{"type": "string"},
					"back":  map[string]any{"type": "string"},
					"hint":  map[string]any{"type": "string"},
					"difficulty": map[string]any{
						"type": "string",
						"enum": []string{"easy", "medium", "hard"},
					},
					"tags": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
				"required":             []string{"front", "back", "difficulty"},
				"additionalProperties": false,
			},
		},
	}
}

// createPrompt renders the flashcard user prompt for the given source text.
func (c *Client) createPrompt(ctx context.Context, sourceText string) (string, error) {
	if sourceText == "" {
		return "", ErrEmptySourceText
	}

	c.logger.DebugContext(ctx, "Generating prompt from template",
		"source_length", len(sourceText),
		"template_name", c.promptTemplate.Name())

	var promptBuffer bytes.Buffer
	if err := c.promptTemplate.Execute(&promptBuffer, promptData{SourceText: sourceText}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return promptBuffer.String(), nil
}

// GenerateCard creates a flashcard proposal from the provided source text.
// The exchange is memoized: an identical request within the cache TTL is
// served without a network call. Generation does not touch chat history.
func (c *Client) GenerateCard(ctx context.Context, sourceText string) (*domain.FlashcardProposal, error) {
	prompt, err := c.createPrompt(ctx, sourceText)
	if err != nil {
		return nil, err
	}

	messages := []ChatMessage{
		{Role: RoleSystem, Content: flashcardSystemPrompt},
		{Role: RoleUser, Content: prompt},
	}

	c.mu.Lock()
	model := c.model
	params := c.params
	cache := c.cache
	c.mu.Unlock()

	payload, err := buildPayload(messages, flashcardResponseFormat(), model, params)
	if err != nil {
		return nil, err
	}

	key, err := cacheKey(messages, payload.Model, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	if cached, ok := cache.Get(key); ok {
		c.logger.InfoContext(ctx, "Serving flashcard from response cache",
			"model", cached.Model)
		return parseFlashcard(cached.Message)
	}

	completion, raw, err := c.executeRequest(ctx, payload)
	if err != nil {
		return nil, err
	}

	content := completion.Choices[0].Message.Content
	proposal, err := parseFlashcard(content)
	if err != nil {
		return nil, err
	}

	// Only a validated exchange is worth memoizing.
	cache.Set(key, &Response{
		ID:      completion.ID,
		Model:   completion.Model,
		Message: content,
		Raw:     raw,
	})

	c.logger.InfoContext(ctx, "Flashcard proposal generated",
		"response_id", completion.ID,
		"difficulty", proposal.Difficulty)

	return proposal, nil
}

// Chat sends a free-form message and returns the assistant's reply. When
// message is empty, the message preset via SetUserMessage is used. The
// request carries the system message (when set) and as much prior history as
// the context token budget allows; the user message and the assistant's
// reply are appended to history on both cache hits and fresh executions, so
// the conversation stays consistent regardless of cache state.
func (c *Client) Chat(ctx context.Context, message string) (*Response, error) {
	c.mu.Lock()
	if message == "" {
		message = c.userMsg
	}
	if message == "" {
		c.mu.Unlock()
		return nil, ErrEmptyMessage
	}

	userMessage := ChatMessage{Role: RoleUser, Content: message}

	var messages []ChatMessage
	if c.systemMsg != "" {
		messages = append(messages, ChatMessage{Role: RoleSystem, Content: c.systemMsg})
	}
	messages = append(messages, truncateHistory(c.history, c.maxContextTokens, defaultTokensPerWord)...)
	messages = append(messages, userMessage)

	model := c.model
	params := c.params
	cache := c.cache
	c.mu.Unlock()

	payload, err := buildPayload(messages, nil, model, params)
	if err != nil {
		return nil, err
	}

	key, err := cacheKey(messages, payload.Model, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	if cached, ok := cache.Get(key); ok {
		c.logger.InfoContext(ctx, "Serving chat reply from response cache",
			"model", cached.Model)
		c.appendHistory(userMessage, ChatMessage{Role: RoleAssistant, Content: cached.Message})
		return cached, nil
	}

	completion, raw, err := c.executeRequest(ctx, payload)
	if err != nil {
		return nil, err
	}

	assistantMessage := completion.Choices[0].Message
	response := &Response{
		ID:      completion.ID,
		Model:   completion.Model,
		Message: assistantMessage.Content,
		Raw:     raw,
	}

	cache.Set(key, response)
	c.appendHistory(userMessage, assistantMessage)

	return response, nil
}

func (c *Client) appendHistory(msgs ...ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, msgs...)
}
