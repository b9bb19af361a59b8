package openrouter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abialobrodzki/10x-cards-sub001/internal/generation"
)

func TestNormalizeModel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "openai/gpt-4o-mini", normalizeModel("gpt-4o-mini"),
		"bare model names get the default provider prefix")
	assert.Equal(t, "anthropic/claude-3-haiku", normalizeModel("anthropic/claude-3-haiku"),
		"provider-qualified names pass through unchanged")
}

func TestBuildPayloadValidation(t *testing.T) {
	t.Parallel()

	messages := []ChatMessage{{Role: RoleUser, Content: "hello"}}

	tests := []struct {
		name     string
		messages []ChatMessage
		model    string
		params   ModelParameters
	}{
		{
			name:     "empty messages",
			messages: nil,
			model:    "openai/gpt-4o-mini",
		},
		{
			name:     "unknown role",
			messages: []ChatMessage{{Role: "narrator", Content: "hi"}},
			model:    "openai/gpt-4o-mini",
		},
		{
			name:     "model with two separators",
			messages: messages,
			model:    "openai/gpt/4o",
		},
		{
			name:     "non-scalar parameter",
			messages: messages,
			model:    "openai/gpt-4o-mini",
			params:   ModelParameters{"logit_bias": map[string]int{"50256": -100}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := buildPayload(tc.messages, nil, tc.model, tc.params)
			require.Error(t, err)
			assert.ErrorIs(t, err, generation.ErrInvalidConfig,
				"static payload validation failures are configuration errors")
		})
	}
}

func TestBuildPayloadNormalizesModel(t *testing.T) {
	t.Parallel()

	payload, err := buildPayload([]ChatMessage{{Role: RoleUser, Content: "hi"}}, nil, "gpt-4o-mini", nil)
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o-mini", payload.Model)
}

func TestRequestPayloadMarshalFlattensParameters(t *testing.T) {
	t.Parallel()

	payload, err := buildPayload(
		[]ChatMessage{{Role: RoleUser, Content: "hello"}},
		flashcardResponseFormat(),
		"openai/gpt-4o-mini",
		ModelParameters{"temperature": 0.2, "max_tokens": 512},
	)
	require.NoError(t, err)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "openai/gpt-4o-mini", body["model"])
	assert.Equal(t, 0.2, body["temperature"], "parameters sit at the top level of the body")
	assert.Equal(t, float64(512), body["max_tokens"])

	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)

	format, ok := body["response_format"].(map[string]any)
	require.True(t, ok, "response_format must be attached when supplied")
	assert.Equal(t, "json_schema", format["type"])

	schema, ok := format["json_schema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "flashcard_proposal", schema["name"])
	assert.Equal(t, true, schema["strict"])
}

func TestRequestPayloadMarshalOmitsResponseFormat(t *testing.T) {
	t.Parallel()

	payload, err := buildPayload([]ChatMessage{{Role: RoleUser, Content: "hello"}}, nil, "openai/gpt-4o-mini", nil)
	require.NoError(t, err)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	_, present := body["response_format"]
	assert.False(t, present)
}
