package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// ErrEmptyResponse is returned when the model produced no usable candidate.
var ErrEmptyResponse = errors.New("genai: model returned no content")

// Schema is a subset of the OpenAPI schema accepted by the generateContent API
// to constrain structured output.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty"`
	Maximum     *float64           `json:"maximum,omitempty"`
}

// Request describes one structured-output generation call.
type Request struct {
	System string
	Prompt string
	Schema *Schema
}

// Generator produces a JSON document conforming to a fixed schema.
type Generator interface {
	GenerateObject(ctx context.Context, req Request, out any) error
}

// Client calls the Gemini generateContent REST API. It implements Generator.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	endpoint   string
}

// Option configures the Client during construction.
type Option func(*Client)

// WithEndpoint overrides the generateContent base URL.
func WithEndpoint(baseURL string) Option {
	return func(c *Client) {
		c.endpoint = strings.TrimRight(baseURL, "/")
	}
}

// NewClient constructs a Client for the given model.
func NewClient(apiKey, model string, client *http.Client, opts ...Option) *Client {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	c := &Client{
		httpClient: client,
		apiKey:     apiKey,
		model:      model,
		endpoint:   defaultEndpoint,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type generateContentRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// GenerateObject asks the model for a document conforming to req.Schema and
// decodes it into out.
func (c *Client) GenerateObject(ctx context.Context, req Request, out any) error {
	payload := generateContentRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   req.Schema,
		},
	}
	if req.System != "" {
		payload.SystemInstruction = &content{Parts: []part{{Text: req.System}}}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("genai: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("genai: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("genai: call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("genai: model returned status %d", resp.StatusCode)
	}

	var decoded generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("genai: decode response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return ErrEmptyResponse
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("genai: model output does not match schema: %w", err)
	}
	return nil
}
