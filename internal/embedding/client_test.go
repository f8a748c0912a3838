package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8081", "test-key", "test-model", 384)
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.BaseURL != "http://localhost:8081" {
		t.Errorf("NewClient() BaseURL = %v, want http://localhost:8081", client.BaseURL)
	}
	if client.ExpectedSize != 384 {
		t.Errorf("NewClient() ExpectedSize = %v, want 384", client.ExpectedSize)
	}
}

func TestClient_EmbedTexts(t *testing.T) {
	tests := []struct {
		name         string
		texts        []string
		expectedSize int
		serverResp   func(w http.ResponseWriter, r *http.Request)
		wantErr      bool
		wantCount    int
	}{
		{
			name:         "successful embedding",
			texts:        []string{"downward dog", "child's pose"},
			expectedSize: 384,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/v1/embeddings" {
					t.Errorf("expected /v1/embeddings, got %s", r.URL.Path)
				}

				resp := Response{
					Data: []Data{
						{Embedding: make([]float64, 384)},
						{Embedding: make([]float64, 384)},
					},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr:   false,
			wantCount: 2,
		},
		{
			name:         "empty input",
			texts:        []string{},
			expectedSize: 384,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				t.Error("server should not be called for empty input")
			},
			wantErr: true,
		},
		{
			name:         "wrong embedding count",
			texts:        []string{"a", "b"},
			expectedSize: 384,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				resp := Response{
					Data: []Data{{Embedding: make([]float64, 384)}},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr: true,
		},
		{
			name:         "wrong vector size",
			texts:        []string{"a"},
			expectedSize: 384,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				resp := Response{
					Data: []Data{{Embedding: make([]float64, 768)}},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr: true,
		},
		{
			name:         "server error",
			texts:        []string{"a"},
			expectedSize: 384,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("internal server error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResp))
			defer server.Close()

			client := NewClient(server.URL, "test-key", "test-model", tt.expectedSize)
			embeddings, err := client.EmbedTexts(context.Background(), tt.texts)

			if tt.wantErr {
				if err == nil {
					t.Errorf("EmbedTexts() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("EmbedTexts() unexpected error: %v", err)
				return
			}

			if len(embeddings) != tt.wantCount {
				t.Errorf("EmbedTexts() returned %d embeddings, want %d", len(embeddings), tt.wantCount)
			}

			for i, emb := range embeddings {
				if len(emb) != tt.expectedSize {
					t.Errorf("EmbedTexts() embedding[%d] size = %d, want %d", i, len(emb), tt.expectedSize)
				}
			}
		})
	}
}

func TestClient_EmbedTexts_PreservesOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		// Encode each input's position into its vector so the caller can
		// verify order is preserved.
		resp := Response{Data: make([]Data, len(req.Input))}
		for i := range req.Input {
			resp.Data[i] = Data{Embedding: []float64{float64(i), 0, 0}}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model", 3)
	embeddings, err := client.EmbedTexts(context.Background(), []string{"first", "second", "third"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}

	for i, emb := range embeddings {
		if emb[0] != float32(i) {
			t.Errorf("embedding %d out of order: marker = %v", i, emb[0])
		}
	}
}
