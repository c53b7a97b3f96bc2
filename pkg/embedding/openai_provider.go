package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const openaiEmbeddingURL = "https://api.openai.com/v1/embeddings"

// maxInputRunes keeps requests under the embedding model's context window.
const maxInputRunes = 8000

// OpenAIProvider implements EmbeddingProvider via the OpenAI embeddings API
// (text-embedding-3-small, 1536 dimensions).
type OpenAIProvider struct {
	APIKey string
	Model  string
	Client *http.Client
}

func NewOpenAIProvider(apiKey string, model string) EmbeddingProvider {
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &OpenAIProvider{
		APIKey: apiKey,
		Model:  model,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type openaiEmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openaiEmbeddingData struct {
	Embedding []float32 `json:"embedding"`
}

type openaiEmbeddingResponse struct {
	Data []openaiEmbeddingData `json:"data"`
}

func (p *OpenAIProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	// OpenAI embeddings have no task-type knob; kept for interface compatibility

	runes := []rune(text)
	if len(runes) > maxInputRunes {
		text = string(runes[:maxInputRunes])
	}

	reqBody := openaiEmbeddingRequest{
		Model: p.Model,
		Input: text,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, openaiEmbeddingURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai embedding error: %s", string(bodyBytes))
	}

	var parsed openaiEmbeddingResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("openai embedding response contained no data")
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: parsed.Data[0].Embedding,
		},
	}, nil
}
