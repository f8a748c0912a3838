package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	// Low temperature for factualness; answers are bounded in length.
	remoteTemperature = 0.3
	remoteMaxTokens   = 300
)

// RemoteBackend calls a hosted OpenAI-compatible chat completions API.
type RemoteBackend struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

// NewRemoteBackend creates a remote generation backend.
func NewRemoteBackend(baseURL, apiKey, model string) *RemoteBackend {
	return &RemoteBackend{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  http.DefaultClient,
	}
}

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents the request payload for chat completions.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatChoice represents a single choice in the chat response.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatResponse represents the response from the chat completions API.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Choices []ChatChoice `json:"choices"`
}

// Complete sends the system instruction plus the full retrieved context to
// the chat completions API and returns the generated answer.
func (b *RemoteBackend) Complete(ctx context.Context, genReq Request) (string, error) {
	url := fmt.Sprintf("%s/v1/chat/completions", b.BaseURL)

	var user bytes.Buffer
	user.WriteString("Context:\n")
	for i, passage := range genReq.Passages {
		user.WriteString(passage)
		if i < len(genReq.Passages)-1 {
			user.WriteString("\n\n")
		}
	}
	user.WriteString("\n\nQuestion: ")
	user.WriteString(genReq.Query)

	payload := ChatRequest{
		Model: b.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: genReq.System},
			{Role: "user", Content: user.String()},
		},
		Temperature: remoteTemperature,
		MaxTokens:   remoteMaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", b.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}
