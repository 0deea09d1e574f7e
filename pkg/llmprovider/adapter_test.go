package llmprovider

import (
	"context"
	"testing"

	"voice-ordering-kiosk/config"
	"voice-ordering-kiosk/pkg/deepseek"
	"voice-ordering-kiosk/pkg/gemini"
	"voice-ordering-kiosk/pkg/qwen"
)

type fakeGemini struct {
	got *gemini.Request
}

func (f *fakeGemini) GenerateContent(ctx context.Context, req *gemini.Request) (*gemini.Response, error) {
	f.got = req
	return &gemini.Response{
		Content: gemini.Content{Role: gemini.RoleModel, Parts: []gemini.Part{{Text: "Hi"}}},
	}, nil
}
func (f *fakeGemini) Model() string { return "fake-gemini" }

type fakeDeepSeek struct {
	got *deepseek.Request
}

func (f *fakeDeepSeek) GenerateContent(ctx context.Context, req *deepseek.Request) (*deepseek.Response, error) {
	f.got = req
	return &deepseek.Response{
		Model:   "fake-deepseek",
		Choices: []deepseek.Choice{{Message: deepseek.Message{Role: deepseek.RoleAssistant, Content: "Hello"}}},
		Usage:   deepseek.Usage{TotalTokens: 3},
	}, nil
}
func (f *fakeDeepSeek) Model() string { return "fake-deepseek" }

func dialogue() *Request {
	return &Request{
		SystemInstruction: &Message{Role: RoleSystem, Parts: []Part{{Text: "sys"}}},
		Messages: []Message{
			TextMessage(RoleUser, "prime"),
			TextMessage(RoleAssistant, "ok"),
			TextMessage(RoleUser, "coffee"),
		},
	}
}

func TestGeminiAdapter_MapsRoles(t *testing.T) {
	fake := &fakeGemini{}
	resp, err := NewGeminiAdapter(fake).GenerateContent(context.Background(), dialogue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantRoles := []string{gemini.RoleUser, gemini.RoleModel, gemini.RoleUser}
	for i, c := range fake.got.Messages {
		if c.Role != wantRoles[i] {
			t.Errorf("message %d: role %q, want %q", i, c.Role, wantRoles[i])
		}
	}
	if fake.got.SystemInstruction == nil || fake.got.SystemInstruction.Parts[0].Text != "sys" {
		t.Errorf("system instruction not forwarded")
	}
	if resp.Content.Role != RoleAssistant || resp.Content.Text() != "Hi" {
		t.Errorf("unexpected content %+v", resp.Content)
	}
	if resp.Usage == nil {
		t.Errorf("usage must never be nil")
	}
}

func TestDeepSeekAdapter_PrependsSystemMessage(t *testing.T) {
	fake := &fakeDeepSeek{}
	a := NewDeepSeekAdapter(fake)
	resp, err := a.GenerateContent(context.Background(), dialogue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := fake.got.Messages
	if len(got) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(got))
	}
	want := []deepseek.Message{
		{Role: deepseek.RoleSystem, Content: "sys"},
		{Role: deepseek.RoleUser, Content: "prime"},
		{Role: deepseek.RoleAssistant, Content: "ok"},
		{Role: deepseek.RoleUser, Content: "coffee"},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d: %+v, want %+v", i, got[i], want[i])
		}
	}
	if resp.Content.Text() != "Hello" || resp.Usage.TotalTokens != 3 {
		t.Errorf("unexpected response %+v", resp)
	}
	if a.Model() != "fake-deepseek" {
		t.Errorf("unexpected model %s", a.Model())
	}
}

type fakeQwen struct {
	got *qwen.Request
}

func (f *fakeQwen) GenerateContent(ctx context.Context, req *qwen.Request) (*qwen.Response, error) {
	f.got = req
	return &qwen.Response{Text: "ok", Usage: qwen.Usage{InputTokens: 3, OutputTokens: 1, TotalTokens: 4}}, nil
}

func (f *fakeQwen) Model() string { return "fake-qwen" }

func TestQwenAdapter(t *testing.T) {
	fake := &fakeQwen{}
	resp, err := NewQwenAdapter(fake).GenerateContent(context.Background(), dialogue())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.got.SystemInstruction != "sys" {
		t.Errorf("system instruction not forwarded: %q", fake.got.SystemInstruction)
	}
	for i, m := range fake.got.Messages {
		want := qwen.RoleUser
		if i%2 == 1 {
			want = qwen.RoleAssistant
		}
		if m.Role != want {
			t.Errorf("message %d: role %s, want %s", i, m.Role, want)
		}
	}
	if resp.Content.Text() != "ok" || resp.ProviderName != "qwen" || resp.Usage.TotalTokens != 4 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestMessage_TextJoinsParts(t *testing.T) {
	m := Message{Parts: []Part{{Text: "a"}, {Text: "b"}}}
	if m.Text() != "ab" {
		t.Errorf("got %q", m.Text())
	}
}

func TestInitializeProviders(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "deepseek", Enabled: true, Priority: 2, APIKey: "k2", Model: "deepseek-chat", Timeout: "5s"},
			{Name: "gemini", Enabled: true, Priority: 1, APIKey: "k1", Model: "gemini-2.5-flash-lite"},
			{Name: "gemini", Enabled: false, Priority: 3, APIKey: "k3", Model: "unused"},
			{Name: "mystery", Enabled: true, Priority: 4, APIKey: "k4", Model: "m"},
			{Name: "qwen", Enabled: true, Priority: 5, APIKey: "k5", Model: "qwen-plus"},
		},
	}

	providers, err := InitializeProviders(context.Background(), cfg, &mockLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(providers) != 3 {
		t.Fatalf("expected 3 providers, got %d", len(providers))
	}
	if providers[0].Name() != "gemini" || providers[1].Name() != "deepseek" || providers[2].Name() != "qwen" {
		t.Errorf("providers not sorted by priority: %s, %s, %s",
			providers[0].Name(), providers[1].Name(), providers[2].Name())
	}
}

func TestInitializeProviders_Errors(t *testing.T) {
	if _, err := InitializeProviders(context.Background(), nil, &mockLogger{}); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := InitializeProviders(context.Background(), &config.LLMConfig{}, &mockLogger{}); err != ErrNoProvidersConfigured {
		t.Errorf("expected ErrNoProvidersConfigured, got %v", err)
	}
	bad := &config.LLMConfig{Providers: []config.ProviderConfig{
		{Name: "gemini", Enabled: true, Priority: 1, Model: "m"},
	}}
	if _, err := InitializeProviders(context.Background(), bad, &mockLogger{}); err == nil {
		t.Error("expected error when every provider fails")
	}
}

func TestNewManagerConfig(t *testing.T) {
	mc, err := NewManagerConfig(&config.LLMConfig{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      "500ms",
		MaxTotalTimeout: "15s",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mc.RetryDelay.Milliseconds() != 500 || mc.MaxTotalTimeout.Seconds() != 15 {
		t.Errorf("unexpected durations %+v", mc)
	}

	if _, err := NewManagerConfig(&config.LLMConfig{RetryDelay: "soon"}); err == nil {
		t.Error("expected parse error")
	}
}
