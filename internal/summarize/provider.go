package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/worklog/schema"
)

// ErrMissingCredential is returned when no authorization value is configured.
var ErrMissingCredential = errors.New("authorization is not configured")

// maxRetries bounds the retries of a single summary request.
const maxRetries = 3

// Prompt is the input of a summary request.
type Prompt struct {
	System string // Instructions, with the target date already filled in
	User   string // Digest lines joined by ";"
}

// Summarizer is the summary backend abstraction.
type Summarizer interface {
	Summarize(ctx context.Context, prompt Prompt) (string, error)
	Name() string
}

// Options configures a backend.
type Options struct {
	Provider      schema.ProviderName
	Authorization string
	Model         string
	BaseURL       string        // Overrides the backend's default endpoint
	Timeout       time.Duration // Per request; zero means none
}

// Factory builds a Summarizer from options. New is the production factory.
type Factory func(opts Options) (Summarizer, error)

// New creates a backend by provider name.
func New(opts Options) (Summarizer, error) {
	if strings.TrimSpace(opts.Authorization) == "" {
		return nil, ErrMissingCredential
	}
	switch opts.Provider {
	case schema.DashScopeProvider, "":
		return NewDashScope(opts), nil
	case schema.OpenAIProvider:
		return NewOpenAI(opts), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", opts.Provider)
	}
}

// bearer returns the Authorization header value for a configured credential.
func bearer(credential string) string {
	credential = strings.TrimSpace(credential)
	if strings.HasPrefix(strings.ToLower(credential), "bearer ") {
		return credential
	}
	return "Bearer " + credential
}

// apiKey strips an optional "Bearer " prefix from a configured credential.
func apiKey(credential string) string {
	credential = strings.TrimSpace(credential)
	if strings.HasPrefix(strings.ToLower(credential), "bearer ") {
		return strings.TrimSpace(credential[len("bearer "):])
	}
	return credential
}
