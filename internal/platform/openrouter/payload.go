package openrouter

import (
	"fmt"
	"strings"

	"github.com/abialobrodzki/10x-cards-sub001/internal/generation"
)

// defaultProviderPrefix is injected when a configured model name carries no
// "provider/" part, per the OpenRouter naming convention.
const defaultProviderPrefix = "openai"

// normalizeModel ensures the model identifier follows the provider/model
// convention, prefixing the default provider when none is present.
func normalizeModel(model string) string {
	if strings.Contains(model, "/") {
		return model
	}
	return defaultProviderPrefix + "/" + model
}

// buildPayload assembles and statically validates an outbound request body.
// A structurally invalid payload is a configuration fault and is never
// retried.
func buildPayload(
	messages []ChatMessage,
	format *ResponseFormat,
	model string,
	params ModelParameters,
) (*requestPayload, error) {
	payload := &requestPayload{
		Model:          normalizeModel(model),
		Messages:       messages,
		ResponseFormat: format,
		Params:         params,
	}

	if err := payload.validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid request payload: %v", generation.ErrInvalidConfig, err)
	}

	return payload, nil
}
