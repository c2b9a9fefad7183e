package embeddings

import "context"

// Embedder turns text into dense vectors for the vector store.
type Embedder interface {
	// Embed generates one vector per input text.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the vector length.
	Dimensions() int

	// Name identifies the model.
	Name() string
}
