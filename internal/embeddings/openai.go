package embeddings

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// openAIBatchSize is how many inputs go into one embeddings call.
const openAIBatchSize = 100

// OpenAIModel is an OpenAI embedding model name.
type OpenAIModel string

const (
	ModelTextEmbedding3Small OpenAIModel = "text-embedding-3-small"
	ModelTextEmbedding3Large OpenAIModel = "text-embedding-3-large"
)

// nativeDimensions is the full vector length of the known models.
var nativeDimensions = map[OpenAIModel]int{
	ModelTextEmbedding3Small: 1536,
	ModelTextEmbedding3Large: 3072,
}

// OpenAIEmbedder embeds text through the OpenAI embeddings API or any
// OpenAI-compatible host.
type OpenAIEmbedder struct {
	client     *openai.Client
	model      OpenAIModel
	dimensions int // 0 keeps the model's native length
}

// NewOpenAIEmbedder creates an embedder for model. An empty model selects
// text-embedding-3-small; an empty baseURL selects api.openai.com.
func NewOpenAIEmbedder(apiKey string, model OpenAIModel, baseURL string) *OpenAIEmbedder {
	if model == "" {
		model = ModelTextEmbedding3Small
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// WithDimensions shortens the vectors; text-embedding-3 models support it.
func (e *OpenAIEmbedder) WithDimensions(n int) *OpenAIEmbedder {
	e.dimensions = n
	return e
}

func (e *OpenAIEmbedder) Name() string { return string(e.model) }

func (e *OpenAIEmbedder) Dimensions() int {
	if e.dimensions > 0 {
		return e.dimensions
	}
	if n, ok := nativeDimensions[e.model]; ok {
		return n
	}
	return nativeDimensions[ModelTextEmbedding3Small]
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += openAIBatchSize {
		batch := texts[start:min(start+openAIBatchSize, len(texts))]

		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input:          batch,
			Model:          openai.EmbeddingModel(e.model),
			EncodingFormat: openai.EmbeddingEncodingFormatFloat,
			Dimensions:     e.dimensions,
		})
		if err != nil {
			return nil, fmt.Errorf("embedding %d text(s) with %s: %w", len(batch), e.model, err)
		}
		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("%s returned %d embeddings for %d inputs", e.model, len(resp.Data), len(batch))
		}
		// The API may reorder; Index is the input position.
		vecs := make([][]float32, len(batch))
		for _, emb := range resp.Data {
			if emb.Index < 0 || emb.Index >= len(batch) {
				return nil, fmt.Errorf("%s returned embedding index %d out of range", e.model, emb.Index)
			}
			vecs[emb.Index] = emb.Embedding
		}
		out = append(out, vecs...)
	}
	return out, nil
}
