// Package assist is the REST client for the hosted language-model endpoint
// that backs the voice assistant. It supplies free-text intent extraction
// and speech synthesis; negotiation logic never depends on it.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// Config holds the endpoint parameters for the assistant API.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.omnidimension.ai/v1".
	BaseURL string
	// APIKey is sent as a Bearer token.
	APIKey string
	// ChatModel is the completion model used for intent extraction.
	ChatModel string
	// TTSModel and Voice select the speech synthesis output.
	TTSModel string
	Voice    string
}

// Client calls the hosted assistant endpoint over HTTPS.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new assistant API client.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

const systemPrompt = `You are an AI assistant for a sneaker marketplace called SneakDeal. Your job is to help users find sneakers based on their voice commands.

Parse the user's request and return a JSON response with:
- "intent": "search" | "info" | "negotiate"
- "filters": object with brand, size, condition, maxPrice if mentioned
- "response": friendly response to the user
- "productRecommendations": array of product IDs if specific products match`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// assistPayload is the JSON shape the model is prompted to return.
type assistPayload struct {
	Intent  string `json:"intent"`
	Filters struct {
		Brand     string  `json:"brand"`
		Size      string  `json:"size"`
		Condition string  `json:"condition"`
		MaxPrice  float64 `json:"maxPrice"`
	} `json:"filters"`
	Response        string   `json:"response"`
	Recommendations []string `json:"productRecommendations"`
}

// Interpret sends the query through the chat-completions endpoint and
// decodes the model's structured reply. When the model answers with
// unstructured text, the result degrades to a search intent carrying the
// raw text, mirroring how the storefront treats a failed extraction.
func (c *Client) Interpret(ctx context.Context, query string) (domain.AssistResult, error) {
	reqBody := chatRequest{
		Model: c.cfg.ChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: query},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	}

	body, err := c.doPost(ctx, "/chat/completions", reqBody)
	if err != nil {
		return domain.AssistResult{}, fmt.Errorf("assist: interpret: %w", err)
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.AssistResult{}, fmt.Errorf("assist: decode completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.AssistResult{}, fmt.Errorf("assist: completion returned no choices")
	}

	content := resp.Choices[0].Message.Content

	var payload assistPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		// Model didn't return valid JSON; degrade to a plain search.
		return domain.AssistResult{
			Intent:   domain.IntentSearch,
			Response: content,
		}, nil
	}

	result := domain.AssistResult{
		Intent:          domain.AssistIntent(payload.Intent),
		Response:        payload.Response,
		Recommendations: payload.Recommendations,
		Filters: domain.ListingFilter{
			Brand:     payload.Filters.Brand,
			Size:      payload.Filters.Size,
			Condition: domain.Condition(payload.Filters.Condition),
			MaxPrice:  payload.Filters.MaxPrice,
		},
	}
	if result.Intent == "" {
		result.Intent = domain.IntentSearch
	}
	return result, nil
}

type speechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

// SynthesizeSpeech converts text to spoken audio and returns the MP3 bytes.
func (c *Client) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	audio, err := c.doPost(ctx, "/audio/speech", speechRequest{
		Model: c.cfg.TTSModel,
		Input: text,
		Voice: c.cfg.Voice,
	})
	if err != nil {
		return nil, fmt.Errorf("assist: synthesize speech: %w", err)
	}
	return audio, nil
}

// doPost sends a JSON POST to the given path and returns the raw response
// body. Non-2xx statuses are errors.
func (c *Client) doPost(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// Compile-time interface checks.
var (
	_ domain.Interpreter       = (*Client)(nil)
	_ domain.SpeechSynthesizer = (*Client)(nil)
)
