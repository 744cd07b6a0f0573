package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func chatServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       time.Millisecond,
		BackoffMultiplier: 1.0,
		MaxBackoff:        time.Millisecond,
	}
}

func okResponse(content string) map[string]any {
	return map[string]any{
		"model": "test-model",
		"choices": []map[string]any{
			{
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]int{"prompt_tokens": 5, "completion_tokens": 7, "total_tokens": 12},
	}
}

func TestClientComplete(t *testing.T) {
	server := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(okResponse("hello"))
	})

	client := NewClient(server.URL, "test-model", WithRetryConfig(fastRetry()))
	resp, err := client.Complete(context.Background(), Request{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "hello" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 12 {
		t.Errorf("total tokens = %d", resp.Usage.TotalTokens)
	}
}

func TestClientRetriesTransientErrors(t *testing.T) {
	calls := 0
	server := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(okResponse("eventually"))
	})

	client := NewClient(server.URL, "test-model", WithRetryConfig(fastRetry()))
	resp, err := client.Complete(context.Background(), Request{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if resp.Content != "eventually" {
		t.Errorf("content = %q", resp.Content)
	}
}

func TestClientFatalErrorsDoNotRetry(t *testing.T) {
	calls := 0
	server := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := NewClient(server.URL, "test-model", WithRetryConfig(fastRetry()))
	_, err := client.Complete(context.Background(), Request{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsFatal(err) {
		t.Errorf("expected fatal error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestClientRequiresMessages(t *testing.T) {
	client := NewClient("http://localhost:1", "m")
	if _, err := client.Complete(context.Background(), Request{}); err == nil {
		t.Fatal("expected error for empty messages")
	}
}

func TestCompletionsURLVariants(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{"http://localhost:11434", "http://localhost:11434/v1/chat/completions"},
		{"http://localhost:11434/v1", "http://localhost:11434/v1/chat/completions"},
		{"http://localhost:11434/v1/chat/completions", "http://localhost:11434/v1/chat/completions"},
	}
	for _, tt := range tests {
		c := NewClient(tt.endpoint, "m")
		if got := c.completionsURL(); got != tt.want {
			t.Errorf("completionsURL(%q) = %q, want %q", tt.endpoint, got, tt.want)
		}
	}
}
