package vectordb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	chromem "github.com/philippgille/chromem-go"

	"github.com/ziadkadry99/robobook/internal/embeddings"
)

const (
	collectionName = "book"
	exportFile     = "chromem.gob.gz"
	manifestFile   = "index.json"
)

// ErrEmbedderMismatch is returned by Load when the index on disk was built
// with a different embedder than the store's.
var ErrEmbedderMismatch = errors.New("index was built with a different embedder")

// manifest records how a persisted index was embedded.
type manifest struct {
	Embedder   string `json:"embedder"`
	Dimensions int    `json:"dimensions,omitempty"`
}

// ChromemStore implements VectorStore with an in-memory chromem-go database.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
	embedder   embeddings.Embedder
}

// NewChromemStore creates an empty store that embeds with embedder.
func NewChromemStore(embedder embeddings.Embedder) (*ChromemStore, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, map[string]string{"embedder": embedder.Name()}, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &ChromemStore{db: db, collection: col, embedFunc: ef, embedder: embedder}, nil
}

func (s *ChromemStore) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromDocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: metadataToMap(doc.Metadata),
		}
	}
	return s.collection.AddDocuments(ctx, chromDocs, runtime.NumCPU())
}

func (s *ChromemStore) Search(ctx context.Context, query string, limit int, filter *SearchFilter) ([]SearchResult, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	// chromem-go rejects nResults larger than the collection.
	if limit > count {
		limit = count
	}

	results, err := s.collection.Query(ctx, query, limit, buildWhereClause(filter), nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{
			Document: Document{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: mapToMetadata(r.Metadata),
			},
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

// Persist writes the collection and a manifest naming its embedder to dir.
func (s *ChromemStore) Persist(_ context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating index dir: %w", err)
	}
	if err := s.db.ExportToFile(filepath.Join(dir, exportFile), true, ""); err != nil {
		return fmt.Errorf("export to file: %w", err)
	}
	m := manifest{Embedder: s.embedder.Name(), Dimensions: s.embedder.Dimensions()}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), data, 0o644); err != nil {
		return fmt.Errorf("write index manifest: %w", err)
	}
	return nil
}

// Load restores an index written by Persist. It fails with
// ErrEmbedderMismatch, leaving the store untouched, when the index was built
// by another embedder; its vectors could not be compared with queries.
func (s *ChromemStore) Load(_ context.Context, dir string) error {
	if err := s.checkManifest(dir); err != nil {
		return err
	}
	if err := s.db.ImportFromFile(filepath.Join(dir, exportFile), ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// The import replaces the collection object.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.collection = col
	return nil
}

func (s *ChromemStore) checkManifest(dir string) error {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return fmt.Errorf("read index manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse index manifest: %w", err)
	}
	if m.Embedder != s.embedder.Name() {
		return fmt.Errorf("%w: index has %q, configured %q", ErrEmbedderMismatch, m.Embedder, s.embedder.Name())
	}
	// Ollama learns its dimensions on first use; only compare known lengths.
	if want := s.embedder.Dimensions(); m.Dimensions > 0 && want > 0 && m.Dimensions != want {
		return fmt.Errorf("%w: index has %d dimensions, configured %d", ErrEmbedderMismatch, m.Dimensions, want)
	}
	return nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

func metadataToMap(m DocumentMetadata) map[string]string {
	return map[string]string{
		"kind":     string(m.Kind),
		"source":   m.Source,
		"title":    m.Title,
		"question": m.Question,
		"answer":   m.Answer,
	}
}

func mapToMetadata(m map[string]string) DocumentMetadata {
	return DocumentMetadata{
		Kind:     DocumentKind(m["kind"]),
		Source:   m["source"],
		Title:    m["title"],
		Question: m["question"],
		Answer:   m["answer"],
	}
}

func buildWhereClause(filter *SearchFilter) map[string]string {
	if filter == nil || filter.Kind == nil {
		return nil
	}
	return map[string]string{"kind": string(*filter.Kind)}
}
