package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// localContextLimit is the character budget for the single passage fed to the
// local model, keeping the prompt inside a small context window.
const localContextLimit = 1500

// LocalBackend runs generation against a local Ollama server. It is the
// fallback when no remote credential is configured. Because the local model
// has a small context window it is fed only the highest-ranked passage,
// truncated to a fixed character budget.
type LocalBackend struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewLocalBackend creates a local generation backend and probes the Ollama
// server once. A probe failure is reported to the caller, which should fall
// back to a degraded engine rather than crash the process.
func NewLocalBackend(baseURL, model string) (*LocalBackend, error) {
	b := &LocalBackend{
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 300 * time.Second,
		},
	}

	probeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := b.probe(probeCtx); err != nil {
		return nil, fmt.Errorf("local model unavailable: %w", err)
	}

	return b, nil
}

// probe checks that the Ollama server is reachable.
func (b *LocalBackend) probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", b.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("creating probe request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("probing server: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}

// generateRequest is the Ollama generate API request.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the Ollama generate API response.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Complete generates an answer from the top-ranked passage only.
func (b *LocalBackend) Complete(ctx context.Context, genReq Request) (string, error) {
	shortContext := ""
	if len(genReq.Passages) > 0 {
		shortContext = truncate(genReq.Passages[0], localContextLimit)
	}

	prompt := fmt.Sprintf(
		"%s\n\nAnswer the question based on the context provided. Context: %s Question: %s",
		genReq.System, shortContext, genReq.Query,
	)

	reqBody := generateRequest{
		Model:  b.model,
		Prompt: prompt,
		Stream: false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", b.baseURL+"/api/generate", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling local model: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("local model returned status %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	return genResp.Response, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
