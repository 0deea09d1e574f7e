package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"voice-ordering-kiosk/pkg/gemini"
)

// wireRequest mirrors the JSON body the client sends.
type wireRequest struct {
	SystemInstruction *struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"system_instruction"`
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

func TestClient_GenerateContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/models/test-model:generateContent" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var req wireRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		last := req.Contents[len(req.Contents)-1].Parts[0].Text
		switch last {
		case "cause_500":
			w.WriteHeader(http.StatusInternalServerError)
			return
		case "no_candidates":
			w.Write([]byte(`{"candidates": []}`))
			return
		case "blocked":
			w.Write([]byte(`{"promptFeedback": {"blockReason": "SAFETY"}}`))
			return
		case "echo_history":
			// Reply with the number of turns and whether a system instruction was present.
			sys := "no-system"
			if req.SystemInstruction != nil {
				sys = req.SystemInstruction.Parts[0].Text
			}
			resp := map[string]any{
				"candidates": []any{map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": sys}, map[string]any{"text": "|" + req.Contents[0].Role}},
					},
				}},
			}
			json.NewEncoder(w).Encode(resp)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"candidates": [
				{
					"content": {
						"parts": [
							{ "text": "mocked response string" }
						],
						"role": "model"
					},
					"finishReason": "STOP"
				}
			],
			"usageMetadata": {"promptTokenCount": 7, "candidatesTokenCount": 3, "totalTokenCount": 10}
		}`))
	}))
	defer ts.Close()

	client, err := gemini.New(gemini.Config{
		APIKey:     "test-api-key",
		Model:      "test-model",
		APIURL:     ts.URL,
		HTTPClient: ts.Client(),
	})
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}

	userTurn := func(text string) *gemini.Request {
		return &gemini.Request{
			Messages: []gemini.Content{
				{Role: gemini.RoleUser, Parts: []gemini.Part{{Text: text}}},
			},
		}
	}

	t.Run("Success Flow", func(t *testing.T) {
		resp, err := client.GenerateContent(context.Background(), userTurn("Hello world"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text() != "mocked response string" {
			t.Errorf("unexpected content response: %s", resp.Text())
		}
		if resp.FinishReason != "STOP" {
			t.Errorf("unexpected finish reason: %s", resp.FinishReason)
		}
		if resp.Usage.TotalTokens != 10 || resp.Usage.InputTokens != 7 {
			t.Errorf("unexpected usage: %+v", resp.Usage)
		}
	})

	t.Run("System instruction and roles", func(t *testing.T) {
		req := userTurn("echo_history")
		req.SystemInstruction = &gemini.Content{Parts: []gemini.Part{{Text: "be brief"}}}

		resp, err := client.GenerateContent(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text() != "be brief|user" {
			t.Errorf("unexpected echo: %s", resp.Text())
		}
	})

	t.Run("Server Error Flow", func(t *testing.T) {
		if _, err := client.GenerateContent(context.Background(), userTurn("cause_500")); err == nil {
			t.Fatalf("expected error from 500 response")
		}
	})

	t.Run("No candidates", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), userTurn("no_candidates"))
		if !errors.Is(err, gemini.ErrEmptyResponse) {
			t.Fatalf("expected ErrEmptyResponse, got %v", err)
		}
	})

	t.Run("Blocked prompt", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), userTurn("blocked"))
		if !errors.Is(err, gemini.ErrBlocked) {
			t.Fatalf("expected ErrBlocked, got %v", err)
		}
	})

	t.Run("Model", func(t *testing.T) {
		if client.Model() != "test-model" {
			t.Errorf("unexpected model %s", client.Model())
		}
	})
}

func TestNew_Validation(t *testing.T) {
	if _, err := gemini.New(gemini.Config{}); err == nil {
		t.Fatal("expected error without API key")
	}

	c, err := gemini.New(gemini.Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Model() != gemini.DefaultModel {
		t.Errorf("expected default model, got %s", c.Model())
	}
}
