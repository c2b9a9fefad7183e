package vectordb

import "context"

// VectorStore stores knowledge base documents and searches them by similarity.
type VectorStore interface {
	// AddDocuments adds or replaces documents.
	AddDocuments(ctx context.Context, docs []Document) error

	// Search returns up to limit documents most similar to query.
	Search(ctx context.Context, query string, limit int, filter *SearchFilter) ([]SearchResult, error)

	// Persist saves the store to dir.
	Persist(ctx context.Context, dir string) error

	// Load restores the store from dir.
	Load(ctx context.Context, dir string) error

	// Count returns the number of documents.
	Count() int
}
