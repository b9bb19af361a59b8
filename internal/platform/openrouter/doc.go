// Package openrouter implements the generation interface against the
// OpenRouter chat-completions API. The client owns request construction,
// response-shape validation, a TTL response cache, and a bounded retry loop
// with capped exponential backoff and error-class-aware short-circuiting.
//
// The package deliberately speaks raw HTTP instead of a provider SDK: the
// wire contract (Bearer auth, HTTP-Referer attribution, the
// "provider/model" naming convention, json_schema response formats) is part
// of the behavior under test here.
package openrouter
