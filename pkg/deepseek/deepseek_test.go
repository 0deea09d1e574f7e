package deepseek

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_GenerateContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"bad key","type":"auth"}}`))
			return
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		switch req.Messages[len(req.Messages)-1].Content {
		case "empty":
			w.Write([]byte(`{"id":"1","choices":[]}`))
			return
		case "boom":
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`upstream down`))
			return
		}

		json.NewEncoder(w).Encode(Response{
			ID:    "1",
			Model: req.Model,
			Choices: []Choice{{
				Message:      Message{Role: RoleAssistant, Content: "hi from " + req.Model},
				FinishReason: "stop",
			}},
			Usage: Usage{PromptTokens: 4, CompletionTokens: 2, TotalTokens: 6},
		})
	}))
	defer ts.Close()

	client, err := New(Config{APIKey: "test-key", BaseURL: ts.URL, HTTPClient: ts.Client()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ask := func(content string) *Request {
		return &Request{Messages: []Message{{Role: RoleUser, Content: content}}}
	}

	t.Run("success uses default model", func(t *testing.T) {
		resp, err := client.GenerateContent(context.Background(), ask("hello"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := resp.Choices[0].Message.Content; got != "hi from "+DefaultModel {
			t.Errorf("unexpected content %q", got)
		}
		if resp.Usage.TotalTokens != 6 {
			t.Errorf("unexpected usage %+v", resp.Usage)
		}
	})

	t.Run("no choices", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), ask("empty"))
		if !errors.Is(err, ErrEmptyResponse) {
			t.Fatalf("expected ErrEmptyResponse, got %v", err)
		}
	})

	t.Run("non json error body", func(t *testing.T) {
		if _, err := client.GenerateContent(context.Background(), ask("boom")); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("auth error message", func(t *testing.T) {
		bad, _ := New(Config{APIKey: "wrong", BaseURL: ts.URL})
		_, err := bad.GenerateContent(context.Background(), ask("hello"))
		if err == nil || err.Error() != "deepseek: API error 401: bad key" {
			t.Fatalf("unexpected error %v", err)
		}
	})
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error")
	}
}
