package qwen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateContent(t *testing.T) {
	var got openAIRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" || r.Header.Get("Authorization") != "Bearer k" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"nope"}`))
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if got.Messages[len(got.Messages)-1].Content == "empty" {
			w.Write([]byte(`{"choices":[]}`))
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi there"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":4,"completion_tokens":2,"total_tokens":6}}`))
	}))
	defer ts.Close()

	c, err := New(Config{APIKey: "k", Model: "qwen-test", BaseURL: ts.URL, HTTPClient: ts.Client()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := c.GenerateContent(context.Background(), &Request{
		SystemInstruction: "be brief",
		Messages:          []Message{{Role: RoleUser, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "hi there" || resp.Usage.TotalTokens != 6 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if got.Model != "qwen-test" || len(got.Messages) != 2 || got.Messages[0].Role != RoleSystem {
		t.Errorf("unexpected request: %+v", got)
	}

	_, err = c.GenerateContent(context.Background(), &Request{Messages: []Message{{Role: RoleUser, Content: "empty"}}})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}

	bad, _ := New(Config{APIKey: "wrong", BaseURL: ts.URL, HTTPClient: ts.Client()})
	if _, err := bad.GenerateContent(context.Background(), &Request{}); err == nil {
		t.Error("expected API error")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error without API key")
	}

	cfg = Config{APIKey: "k"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model != DefaultModel || cfg.BaseURL != DefaultBaseURL {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}
