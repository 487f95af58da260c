package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meetmind-team/meetmind/pkg/config"
)

func newTestClient(baseURL string) *GroqClient {
	return NewGroqClient(&config.GroqConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "test-model",
	})
}

func TestAnalyzeTranscript(t *testing.T) {
	var gotAuth string
	var gotReq ChatRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"summary": "hi"}`}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	content, err := client.AnalyzeTranscript(context.Background(), "Alice: hello")
	if err != nil {
		t.Fatalf("AnalyzeTranscript failed: %v", err)
	}
	if content != `{"summary": "hi"}` {
		t.Errorf("unexpected content: %s", content)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("unexpected Authorization header: %s", gotAuth)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("unexpected model: %s", gotReq.Model)
	}

	// The transcript must end up inside the prompt
	messages, ok := gotReq.Messages.([]interface{})
	if !ok || len(messages) != 1 {
		t.Fatalf("expected one message, got %v", gotReq.Messages)
	}
	message := messages[0].(map[string]interface{})
	if !strings.Contains(message["content"].(string), "Alice: hello") {
		t.Error("prompt does not contain the transcript")
	}
}

func TestAnalyzeTranscriptUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	_, err := client.AnalyzeTranscript(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for upstream 429")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the status code, got: %v", err)
	}
}

func TestAnalyzeTranscriptEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	_, err := client.AnalyzeTranscript(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestAnalyzeTranscriptContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(ts.URL)
	_, err := client.AnalyzeTranscript(ctx, "hello")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
