// Package summarize turns an assembled prompt into a one-sentence work summary
// through an external language-model service.
//
// Two backends are available: the DashScope native text-generation API and any
// OpenAI-compatible chat completion endpoint. Both retry rate limits and server
// errors with exponential backoff and never retry authentication failures.
package summarize
