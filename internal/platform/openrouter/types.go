package openrouter

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Message roles accepted by the chat-completions contract.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn in a conversation. A conversation is an
// ordered sequence of messages, oldest first.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModelParameters is an open mapping of request parameters (temperature,
// max_tokens, ...) passed through to the endpoint verbatim. Values must be
// scalars; buildPayload rejects anything else.
type ModelParameters map[string]any

// JSONSchema is the json_schema case of a response format. It declares that
// the endpoint must return JSON conforming to Schema.
type JSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

// ResponseFormat is the tagged response-format variant attached to a request.
type ResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

// requestPayload is the assembled request body. Model parameters are
// flattened into the top-level JSON object alongside the fixed fields, which
// is why marshaling goes through a map.
type requestPayload struct {
	Model          string
	Messages       []ChatMessage
	ResponseFormat *ResponseFormat
	Params         ModelParameters
}

func (p *requestPayload) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(p.Params)+3)
	for k, v := range p.Params {
		body[k] = v
	}
	body["model"] = p.Model
	body["messages"] = p.Messages
	if p.ResponseFormat != nil {
		body["response_format"] = p.ResponseFormat
	}
	return json.Marshal(body)
}

// validate performs the static shape checks on an assembled payload.
// Violations indicate caller misconfiguration, never a remote fault.
func (p *requestPayload) validate() error {
	if len(p.Messages) == 0 {
		return fmt.Errorf("messages cannot be empty")
	}

	for i, msg := range p.Messages {
		switch msg.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			return fmt.Errorf("message %d has unknown role %q", i, msg.Role)
		}
	}

	if strings.Count(p.Model, "/") != 1 {
		return fmt.Errorf("model %q must be of the form provider/model", p.Model)
	}

	for name, value := range p.Params {
		switch value.(type) {
		case string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64, json.Number:
		default:
			return fmt.Errorf("parameter %q must be a scalar, got %T", name, value)
		}
	}

	return nil
}

// chatCompletionsResponse is the transport shape of a completion response.
type chatCompletionsResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// Response is the normalized result of a completed exchange.
type Response struct {
	// ID is the exchange identifier assigned by the endpoint.
	ID string

	// Model is the model that actually served the request.
	Model string

	// Message is the assistant's reply content. For structured generation it
	// is the JSON text the proposal was decoded from.
	Message string

	// Raw is the original transport response body.
	Raw json.RawMessage
}
