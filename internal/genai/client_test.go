package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateObjectDecodesStructuredOutput(t *testing.T) {
	var gotPath, gotKey string
	var gotRequest map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotRequest)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]string{{"text": `{"totalScore": 72}`}},
				},
				"finishReason": "STOP",
			}},
		})
	}))
	defer server.Close()

	client := NewClient("api-key", "gemini-2.0-flash-001", server.Client(), WithEndpoint(server.URL))

	var out struct {
		TotalScore int `json:"totalScore"`
	}
	err := client.GenerateObject(context.Background(), Request{
		System: "You are a professional interviewer.",
		Prompt: "Score this transcript.",
		Schema: &Schema{Type: "object"},
	}, &out)
	if err != nil {
		t.Fatalf("GenerateObject returned error: %v", err)
	}

	if out.TotalScore != 72 {
		t.Fatalf("expected totalScore 72, got %d", out.TotalScore)
	}
	if gotPath != "/models/gemini-2.0-flash-001:generateContent" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "api-key" {
		t.Fatalf("expected api key header, got %q", gotKey)
	}

	config, ok := gotRequest["generationConfig"].(map[string]any)
	if !ok || config["responseMimeType"] != "application/json" {
		t.Fatalf("expected JSON response mime type, got %v", gotRequest["generationConfig"])
	}
	if _, ok := gotRequest["systemInstruction"]; !ok {
		t.Fatal("expected system instruction to be sent")
	}
}

func TestGenerateObjectEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer server.Close()

	client := NewClient("api-key", "gemini-2.0-flash-001", server.Client(), WithEndpoint(server.URL))

	var out map[string]any
	err := client.GenerateObject(context.Background(), Request{Prompt: "p"}, &out)
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGenerateObjectMalformedOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]string{{"text": "not json"}},
				},
			}},
		})
	}))
	defer server.Close()

	client := NewClient("api-key", "gemini-2.0-flash-001", server.Client(), WithEndpoint(server.URL))

	var out map[string]any
	if err := client.GenerateObject(context.Background(), Request{Prompt: "p"}, &out); err == nil {
		t.Fatal("expected error for malformed model output")
	}
}

func TestGenerateObjectUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient("api-key", "gemini-2.0-flash-001", server.Client(), WithEndpoint(server.URL))

	var out map[string]any
	if err := client.GenerateObject(context.Background(), Request{Prompt: "p"}, &out); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}
