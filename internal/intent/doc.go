// Package intent turns natural-language requests into operation calls.
//
// A Resolver receives the query, the caller's context and the operation
// catalog, and returns either one resolved call or a free-text reply. It
// never executes anything.
//
// OllamaResolver talks to a local Ollama server over its tool-calling chat
// API. Requests go through resty with retries on 5xx, a pooled transport and
// a circuit breaker so a stopped model server fails fast. StaticResolver
// always answers with help text and is used when the model is disabled.
package intent
