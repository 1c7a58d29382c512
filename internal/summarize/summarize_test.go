package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/huangsam/worklog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastBackoff(t *testing.T) {
	t.Helper()
	prev := initialBackoff
	initialBackoff = time.Millisecond
	t.Cleanup(func() { initialBackoff = prev })
}

var testPrompt = Prompt{System: "write a log for 2024-3-15", User: "[2024-03-15 09:00] Fix bug"}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantName string
		wantErr  error
	}{
		{"dashscope", Options{Provider: schema.DashScopeProvider, Authorization: "k"}, "dashscope", nil},
		{"default provider", Options{Authorization: "k"}, "dashscope", nil},
		{"openai", Options{Provider: schema.OpenAIProvider, Authorization: "k"}, "openai", nil},
		{"missing credential", Options{Provider: schema.OpenAIProvider, Authorization: "  "}, "", ErrMissingCredential},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.opts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, s.Name())
		})
	}

	_, err := New(Options{Provider: "unknown", Authorization: "k"})
	assert.Error(t, err)
}

func TestBearerAndAPIKey(t *testing.T) {
	assert.Equal(t, "Bearer abc", bearer("abc"))
	assert.Equal(t, "Bearer abc", bearer("Bearer abc"))
	assert.Equal(t, "bearer abc", bearer(" bearer abc "))
	assert.Equal(t, "abc", apiKey("Bearer abc"))
	assert.Equal(t, "abc", apiKey("abc"))
}

func TestDashScope_Summarize(t *testing.T) {
	var got dashscopeRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"output":{"finish_reason":"stop","text":"Fixed the login bug."},"usage":{"total_tokens":10,"output_tokens":5,"input_tokens":5},"request_id":"r1"}`)
	}))
	defer srv.Close()

	d := NewDashScope(Options{Authorization: "sk-test", Model: "qwen-plus", BaseURL: srv.URL})
	text, err := d.Summarize(context.Background(), testPrompt)
	require.NoError(t, err)

	assert.Equal(t, "Fixed the login bug.", text)
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "qwen-plus", got.Model)
	assert.True(t, got.Parameters.EnableSearch)
	require.Len(t, got.Input.Messages, 2)
	assert.Equal(t, dashscopeMessage{Role: "system", Content: testPrompt.System}, got.Input.Messages[0])
	assert.Equal(t, dashscopeMessage{Role: "user", Content: testPrompt.User}, got.Input.Messages[1])
}

func TestDashScope_RetriesRateLimit(t *testing.T) {
	fastBackoff(t)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = io.WriteString(w, `{"output":{"text":"done"}}`)
	}))
	defer srv.Close()

	d := NewDashScope(Options{Authorization: "k", BaseURL: srv.URL})
	text, err := d.Summarize(context.Background(), testPrompt)
	require.NoError(t, err)
	assert.Equal(t, "done", text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDashScope_GivesUpAfterMaxRetries(t *testing.T) {
	fastBackoff(t)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewDashScope(Options{Authorization: "k", BaseURL: srv.URL})
	_, err := d.Summarize(context.Background(), testPrompt)
	var se *serverError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.statusCode)
	assert.Equal(t, int32(maxRetries+1), calls.Load())
}

func TestDashScope_DoesNotRetryAuth(t *testing.T) {
	fastBackoff(t)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"code":"InvalidApiKey"}`)
	}))
	defer srv.Close()

	d := NewDashScope(Options{Authorization: "bad", BaseURL: srv.URL})
	_, err := d.Summarize(context.Background(), testPrompt)
	assert.True(t, IsAuthError(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestDashScope_BadResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"malformed json", http.StatusOK, `{"output":`},
		{"empty text", http.StatusOK, `{"output":{"text":""}}`},
		{"client error", http.StatusBadRequest, `{"code":"InvalidParameter"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			d := NewDashScope(Options{Authorization: "k", BaseURL: srv.URL})
			_, err := d.Summarize(context.Background(), testPrompt)
			assert.Error(t, err)
		})
	}
}

func TestDashScope_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	d := NewDashScope(Options{Authorization: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := d.Summarize(context.Background(), testPrompt)
	assert.Error(t, err)
}

func openAIServer(t *testing.T, handler func(w http.ResponseWriter, req map[string]any)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		handler(w, req)
	}))
}

func TestOpenAI_Summarize(t *testing.T) {
	srv := openAIServer(t, func(w http.ResponseWriter, req map[string]any) {
		assert.Equal(t, "gpt-4o-mini", req["model"])
		messages, _ := req["messages"].([]any)
		assert.Len(t, messages, 2)
		_, _ = io.WriteString(w, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Refined the login flow."},"finish_reason":"stop"}]}`)
	})
	defer srv.Close()

	o := NewOpenAI(Options{Authorization: "Bearer sk-test", Model: "gpt-4o-mini", BaseURL: srv.URL})
	text, err := o.Summarize(context.Background(), testPrompt)
	require.NoError(t, err)
	assert.Equal(t, "Refined the login flow.", text)
}

func TestOpenAI_RetriesServerErrors(t *testing.T) {
	fastBackoff(t)
	var calls atomic.Int32
	srv := openAIServer(t, func(w http.ResponseWriter, _ map[string]any) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
			return
		}
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	})
	defer srv.Close()

	o := NewOpenAI(Options{Authorization: "sk-test", BaseURL: srv.URL})
	text, err := o.Summarize(context.Background(), testPrompt)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOpenAI_AuthError(t *testing.T) {
	fastBackoff(t)
	var calls atomic.Int32
	srv := openAIServer(t, func(w http.ResponseWriter, _ map[string]any) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"invalid api key","type":"invalid_request_error"}}`)
	})
	defer srv.Close()

	o := NewOpenAI(Options{Authorization: "sk-test", BaseURL: srv.URL})
	_, err := o.Summarize(context.Background(), testPrompt)
	assert.True(t, IsAuthError(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAI_NoChoices(t *testing.T) {
	srv := openAIServer(t, func(w http.ResponseWriter, _ map[string]any) {
		_, _ = io.WriteString(w, `{"choices":[]}`)
	})
	defer srv.Close()

	o := NewOpenAI(Options{Authorization: "sk-test", BaseURL: srv.URL})
	_, err := o.Summarize(context.Background(), testPrompt)
	assert.Error(t, err)
}

func TestRetryWithBackoff(t *testing.T) {
	fastBackoff(t)

	t.Run("plain errors are not retried", func(t *testing.T) {
		calls := 0
		err := retryWithBackoff(context.Background(), 3, func() error {
			calls++
			return errors.New("boom")
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled context stops retries", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := retryWithBackoff(ctx, 3, func() error {
			calls++
			cancel()
			return &rateLimitError{}
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestStatusError(t *testing.T) {
	assert.True(t, isRetryable(statusError(429, "")))
	assert.True(t, isRetryable(statusError(500, "")))
	assert.True(t, isRetryable(statusError(504, "")))
	assert.False(t, isRetryable(statusError(400, "")))
	assert.True(t, IsAuthError(statusError(403, "forbidden")))
	assert.False(t, IsAuthError(statusError(500, "")))
}
