package embeddings

import (
	"context"
	"hash/fnv"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultKeywordDimensions is the hashed vocabulary size.
const DefaultKeywordDimensions = 4096

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// KeywordEmbedder is a local, dependency-free embedder: lowercase words longer
// than two characters are counted into hashed buckets, so cosine similarity
// between two vectors approximates term-frequency cosine similarity of the
// texts. Bucket 0 is reserved for texts without any keyword, which keeps every
// vector non-zero.
type KeywordEmbedder struct {
	dims int
}

// NewKeywordEmbedder creates a keyword embedder. dims <= 1 selects the default.
func NewKeywordEmbedder(dims int) *KeywordEmbedder {
	if dims <= 1 {
		dims = DefaultKeywordDimensions
	}
	return &KeywordEmbedder{dims: dims}
}

func (e *KeywordEmbedder) Name() string    { return "keyword" }
func (e *KeywordEmbedder) Dimensions() int { return e.dims }

func (e *KeywordEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.vector(text)
	}
	return out, nil
}

func (e *KeywordEmbedder) vector(text string) []float32 {
	vec := make([]float32, e.dims)
	empty := true
	for word, n := range Keywords(text) {
		vec[e.bucket(word)] += float32(n)
		empty = false
	}
	if empty {
		vec[0] = 1
	}
	return vec
}

func (e *KeywordEmbedder) bucket(word string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(word))
	return 1 + int(h.Sum32()%uint32(e.dims-1))
}

// Keywords returns the frequency of each lowercase word longer than two
// characters.
func Keywords(text string) map[string]int {
	counts := make(map[string]int)
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if utf8.RuneCountInString(word) > 2 {
			counts[word]++
		}
	}
	return counts
}
