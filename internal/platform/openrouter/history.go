package openrouter

import "strings"

// defaultTokensPerWord is the crude per-word token estimate used to bound
// chat history. This is a documented heuristic, not a tokenizer: the real
// token count depends on the serving model.
const defaultTokensPerWord = 4

// estimateTokens estimates the token cost of a message as its word count
// times tokensPerWord.
func estimateTokens(msg ChatMessage, tokensPerWord int) int {
	return len(strings.Fields(msg.Content)) * tokensPerWord
}

// truncateHistory bounds a conversation to an estimated token budget. It
// walks the history from newest to oldest, accumulating estimated cost, and
// stops before a message would exceed maxTokens; the retained messages are
// returned in their original chronological order, so the result is always a
// suffix of the input. The newest message is always retained, even when it
// alone overshoots the budget, so the result is empty only for empty input.
//
// truncateHistory is pure: it never mutates its input and is deterministic.
func truncateHistory(history []ChatMessage, maxTokens, tokensPerWord int) []ChatMessage {
	if tokensPerWord <= 0 {
		tokensPerWord = defaultTokensPerWord
	}

	total := 0
	cut := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		cost := estimateTokens(history[i], tokensPerWord)
		if i < len(history)-1 && total+cost > maxTokens {
			break
		}
		total += cost
		cut = i
	}

	return history[cut:]
}
