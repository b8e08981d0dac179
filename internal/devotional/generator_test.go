package devotional

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/talitapaixao/terapia-com-deus-api/pkg/config"
)

// completionJSON builds a chat-completions response whose message content is
// the given string.
func completionJSON(content string) []byte {
	body := map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 0,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
	b, _ := json.Marshal(body)
	return b
}

func newTestGenerator(baseURL string) *OpenAIGenerator {
	return NewOpenAIGenerator(&config.Config{
		OpenAIAPIKey:  "test-key",
		OpenAIBaseURL: baseURL,
		OpenAIModel:   "gpt-4o-mini",
	})
}

func TestGenerateParsesStructuredResponse(t *testing.T) {
	devotional, _ := json.Marshal(testContent("Manhã de Paz"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionJSON(string(devotional)))
	}))
	defer srv.Close()

	got := newTestGenerator(srv.URL).Generate(context.Background(), "")

	if got.IsFallback {
		t.Fatalf("Generate() returned fallback: %q", got.Reflection)
	}
	if got.Title != "Manhã de Paz" {
		t.Errorf("Title = %q, want %q", got.Title, "Manhã de Paz")
	}
}

func TestGenerateSendsTopicPrompt(t *testing.T) {
	var gotBody struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	devotional, _ := json.Marshal(testContent("Sobre o Medo"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionJSON(string(devotional)))
	}))
	defer srv.Close()

	newTestGenerator(srv.URL).Generate(context.Background(), "Medo")

	if len(gotBody.Messages) != 2 {
		t.Fatalf("got %d messages, want system + user", len(gotBody.Messages))
	}
	if gotBody.Messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", gotBody.Messages[0].Role)
	}
	if !strings.Contains(gotBody.Messages[1].Content, "Medo") {
		t.Errorf("user prompt %q does not carry the topic", gotBody.Messages[1].Content)
	}
}

func TestGenerateMalformedResponseFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionJSON("this is not json"))
	}))
	defer srv.Close()

	got := newTestGenerator(srv.URL).Generate(context.Background(), "")

	if !got.IsFallback {
		t.Fatal("Generate() on malformed response did not fall back")
	}
	if got.Title != "Deus está no Controle" {
		t.Errorf("fallback Title = %q", got.Title)
	}
}

func TestGenerateIncompleteContentFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionJSON(`{"title":"Só Título"}`))
	}))
	defer srv.Close()

	got := newTestGenerator(srv.URL).Generate(context.Background(), "")

	if !got.IsFallback {
		t.Fatal("Generate() on incomplete content did not fall back")
	}
	if !strings.Contains(got.Reflection, "Resposta incompleta") {
		t.Errorf("fallback reason missing from reflection: %q", got.Reflection)
	}
}

func TestGenerateRateLimitFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limited","type":"rate_limit_error"}}`)
	}))
	defer srv.Close()

	got := newTestGenerator(srv.URL).Generate(context.Background(), "")

	if !got.IsFallback {
		t.Fatal("Generate() on 429 did not fall back")
	}
	if !strings.Contains(got.Reflection, "Muitos acessos") {
		t.Errorf("fallback reason = %q, want rate-limit wording", got.Reflection)
	}
}

func TestGenerateDeadlineFallsBack(t *testing.T) {
	devotional, _ := json.Marshal(testContent("Tarde Demais"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionJSON(string(devotional)))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	got := newTestGenerator(srv.URL).Generate(ctx, "")

	if !got.IsFallback {
		t.Fatal("Generate() past the deadline did not fall back")
	}
	if !strings.Contains(got.Reflection, "Timeout") {
		t.Errorf("fallback reason = %q, want timeout wording", got.Reflection)
	}
}
