// Package translation fills in missing halves of imported word pairs. It
// talks to OpenAI or Gemini, guards the remote calls with a circuit breaker
// and caches translations for the length of an import run.
package translation
