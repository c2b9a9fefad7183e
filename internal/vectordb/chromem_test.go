package vectordb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/robobook/internal/embeddings"
)

func sampleDocs() []Document {
	return []Document{
		{
			ID:      "chapter:04-perception-systems",
			Content: "Perception systems combine cameras, lidar and tactile sensors so the robot can understand its environment.",
			Metadata: DocumentMetadata{
				Kind:   KindChapter,
				Source: "04-perception-systems.md",
				Title:  "Perception Systems",
			},
		},
		{
			ID:      "chapter:06-locomotion-and-manipulation",
			Content: "Bipedal locomotion relies on balance control, gait planning and whole body manipulation.",
			Metadata: DocumentMetadata{
				Kind:   KindChapter,
				Source: "06-locomotion-and-manipulation.md",
				Title:  "Locomotion and Manipulation",
			},
		},
		{
			ID:      "faq:1003",
			Content: "What topics does this book cover? The book covers six main topics.",
			Metadata: DocumentMetadata{
				Kind:     KindFAQ,
				Source:   "book_topics",
				Question: "What topics does this book cover?",
				Answer:   "The book covers six main topics.",
			},
		},
	}
}

func newStore(t *testing.T) *ChromemStore {
	t.Helper()
	store, err := NewChromemStore(embeddings.NewKeywordEmbedder(1024))
	require.NoError(t, err)
	require.NoError(t, store.AddDocuments(context.Background(), sampleDocs()))
	return store
}

func TestChromemStoreAddAndSearch(t *testing.T) {
	store := newStore(t)
	assert.Equal(t, 3, store.Count())

	results, err := store.Search(context.Background(), "how does balance control help locomotion", 2, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 2)

	top := results[0]
	assert.Equal(t, "chapter:06-locomotion-and-manipulation", top.Document.ID)
	assert.Equal(t, KindChapter, top.Document.Metadata.Kind)
	assert.Equal(t, "Locomotion and Manipulation", top.Document.Metadata.Title)
	assert.Greater(t, top.Similarity, float32(0.05))
}

func TestChromemStoreLimitClampedToCount(t *testing.T) {
	store := newStore(t)
	results, err := store.Search(context.Background(), "robot sensors", 50, nil)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestChromemStoreSearchWithFilter(t *testing.T) {
	store := newStore(t)
	kind := KindFAQ
	results, err := store.Search(context.Background(), "topics", 10, &SearchFilter{Kind: &kind})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "The book covers six main topics.", results[0].Document.Metadata.Answer)
}

func TestChromemStoreEmptySearch(t *testing.T) {
	store, err := NewChromemStore(embeddings.NewKeywordEmbedder(64))
	require.NoError(t, err)

	results, err := store.Search(context.Background(), "anything", 3, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestChromemStorePersistAndLoad(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	dir := t.TempDir()
	require.NoError(t, store.Persist(ctx, dir))

	loaded, err := NewChromemStore(embeddings.NewKeywordEmbedder(1024))
	require.NoError(t, err)
	require.NoError(t, loaded.Load(ctx, dir))
	assert.Equal(t, 3, loaded.Count())

	results, err := loaded.Search(ctx, "cameras lidar tactile sensors", 1, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "04-perception-systems.md", results[0].Document.Metadata.Source)
}

func TestChromemStoreLoadMissing(t *testing.T) {
	store, err := NewChromemStore(embeddings.NewKeywordEmbedder(64))
	require.NoError(t, err)
	assert.Error(t, store.Load(context.Background(), t.TempDir()))
}

// namedEmbedder is a keyword embedder reporting another model's identity.
type namedEmbedder struct {
	*embeddings.KeywordEmbedder
	name string
}

func (e namedEmbedder) Name() string { return e.name }

func TestChromemStoreLoadRejectsOtherEmbedder(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, newStore(t).Persist(ctx, dir))
	assert.FileExists(t, filepath.Join(dir, manifestFile))

	other, err := NewChromemStore(namedEmbedder{embeddings.NewKeywordEmbedder(64), "openai/text-embedding-3-small"})
	require.NoError(t, err)
	err = other.Load(ctx, dir)
	require.ErrorIs(t, err, ErrEmbedderMismatch)
	assert.Zero(t, other.Count())

	// Same name, different vector length.
	resized, err := NewChromemStore(embeddings.NewKeywordEmbedder(64))
	require.NoError(t, err)
	assert.ErrorIs(t, resized.Load(ctx, dir), ErrEmbedderMismatch)
	assert.Zero(t, resized.Count())

	// The store still works after a rejected load.
	require.NoError(t, other.AddDocuments(ctx, sampleDocs()))
	results, err := other.Search(ctx, "balance control", 1, nil)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestChromemStoreLoadWithoutManifest(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, newStore(t).Persist(ctx, dir))
	require.NoError(t, os.Remove(filepath.Join(dir, manifestFile)))

	store, err := NewChromemStore(embeddings.NewKeywordEmbedder(1024))
	require.NoError(t, err)
	assert.Error(t, store.Load(ctx, dir))
	assert.Zero(t, store.Count())
}

func TestFormatResults(t *testing.T) {
	out := FormatResults([]SearchResult{{
		Document: Document{
			Content:  "Balance matters.",
			Metadata: DocumentMetadata{Title: "Locomotion", Source: "06.md"},
		},
		Similarity: 0.9512,
	}})
	assert.Contains(t, out, "Title: Locomotion")
	assert.Contains(t, out, "Source: 06.md")
	assert.Contains(t, out, "0.9512")
	assert.Contains(t, out, "Balance matters.")

	assert.Equal(t, "No results found.", FormatResults(nil))
}
