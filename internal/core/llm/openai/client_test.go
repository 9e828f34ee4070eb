package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joseph-ayodele/legal-docify/internal/core/llm"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL + "/", Timeout: 5 * time.Second}, quietLogger())
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var got chatRequest
	var auth, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"  S  "}}]}`)
	})

	reply, err := c.Complete(context.Background(), "sys", "user text")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "  S  " {
		t.Errorf("reply = %q, want the content unchanged", reply)
	}
	if auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", auth)
	}
	if path != "/chat/completions" {
		t.Errorf("path = %q", path)
	}
	if got.Model != c.Model() {
		t.Errorf("model = %q, want %q", got.Model, c.Model())
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[0].Content != "sys" ||
		got.Messages[1].Role != "user" || got.Messages[1].Content != "user text" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`},
		{"empty choices", http.StatusOK, `{"choices":[]}`},
		{"not json", http.StatusOK, `oops`},
		{"blank content", http.StatusOK, `{"choices":[{"message":{"content":""}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			if _, err := c.Complete(context.Background(), "s", "u"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCompleteStatusErrorIsExposed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err := c.Complete(context.Background(), "s", "u")
	var se *llm.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("error = %v, want StatusError 429", err)
	}
}

func TestCompleteMissingKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, quietLogger())
	if _, err := c.Complete(context.Background(), "s", "u"); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
	if called {
		t.Error("server was called without a key")
	}
}

func TestCompleteHonorsContext(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	// Cleanups run in reverse order: the handler is released before the server closes.
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Complete(ctx, "s", "u"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want deadline exceeded", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{APIKey: "k"}, nil)
	if c.cfg.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL = %q", c.cfg.BaseURL)
	}
	if c.Model() == "" || c.Provider() != "openai" {
		t.Errorf("Provider/Model = %q/%q", c.Provider(), c.Model())
	}
}
