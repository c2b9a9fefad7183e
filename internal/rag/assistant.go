// Package rag answers questions about the book from a keyword knowledge base,
// optionally handing the retrieved context to an LLM.
package rag

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ziadkadry99/robobook/internal/book"
	"github.com/ziadkadry99/robobook/internal/embeddings"
	"github.com/ziadkadry99/robobook/internal/llm"
	"github.com/ziadkadry99/robobook/internal/vectordb"
)

// Answer sources.
const (
	SourceRAG      = "RAG"
	SourceLLM      = "LLM"
	SourceFallback = "fallback"
)

// Fixed replies.
const (
	PromptMessage   = "Please ask a question about the humanoid robotics book."
	GreetingMessage = "Hello! I'm a RAG chatbot specialized in the Humanoid Robotics Book. " +
		"Ask me about the book's content, chapters, or specific topics!"
	ChapterCountMessage = "The book is structured into six comprehensive chapters."
)

const (
	DefaultTopK          = 3
	DefaultMinSimilarity = 0.05

	excerptLimit = 300
)

var (
	greetings       = map[string]bool{"hello": true, "hi": true, "hey": true, "greetings": true}
	chapterPhrases  = []string{"how many chapters", "chapters", "number of chapters", "chapter count"}
	overviewPhrases = []string{"intro", "introduction", "about this book", "what is this book", "chapters", "topics"}
	countPhrases    = []string{"chapters", "chapter", "how many"}

	wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// Answer is a reply with where it came from.
type Answer struct {
	Text   string
	Source string
}

// Assistant answers questions about a book.
type Assistant struct {
	book          *book.Book
	store         vectordb.VectorStore
	provider      llm.Provider
	model         string
	topK          int
	minSimilarity float32
	logger        *zap.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLLM enables answer synthesis with provider.
func WithLLM(provider llm.Provider, model string) Option {
	return func(a *Assistant) {
		a.provider = provider
		a.model = model
	}
}

// WithTopK sets how many knowledge base entries are retrieved.
func WithTopK(k int) Option {
	return func(a *Assistant) {
		if k > 0 {
			a.topK = k
		}
	}
}

// WithMinSimilarity sets the similarity an entry must exceed to be used.
func WithMinSimilarity(s float32) Option {
	return func(a *Assistant) { a.minSimilarity = s }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Assistant) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAssistant creates an assistant over b whose knowledge base lives in
// store. store must already hold the documents from Documents(b).
func NewAssistant(b *book.Book, store vectordb.VectorStore, opts ...Option) *Assistant {
	a := &Assistant{
		book:          b,
		store:         store,
		topK:          DefaultTopK,
		minSimilarity: DefaultMinSimilarity,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ask returns the answer text only.
func (a *Assistant) Ask(ctx context.Context, query string) (string, error) {
	ans, err := a.Answer(ctx, query)
	if err != nil {
		return "", err
	}
	return ans.Text, nil
}

// Answer replies to query. Short queries, greetings and chapter-count
// questions get fixed replies; everything else is answered from retrieval.
func (a *Assistant) Answer(ctx context.Context, query string) (Answer, error) {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < 2 {
		return Answer{Text: PromptMessage, Source: SourceRAG}, nil
	}

	lower := strings.ToLower(q)
	if isGreeting(lower) {
		return Answer{Text: GreetingMessage, Source: SourceRAG}, nil
	}
	if containsAny(lower, chapterPhrases) {
		return Answer{Text: ChapterCountMessage, Source: SourceRAG}, nil
	}

	contexts, err := a.Retrieve(ctx, q)
	if err != nil {
		return Answer{}, err
	}
	text := a.compose(q, contexts)

	if a.provider != nil && len(contexts) > 0 {
		if synthesized := a.synthesize(ctx, q, contexts); synthesized != "" {
			return Answer{Text: synthesized, Source: SourceLLM}, nil
		}
	}
	return Answer{Text: text, Source: SourceRAG}, nil
}

// Retrieve returns up to topK entries more similar to query than the
// threshold, most similar first.
func (a *Assistant) Retrieve(ctx context.Context, query string) ([]vectordb.SearchResult, error) {
	if a.store == nil || a.store.Count() == 0 {
		return nil, nil
	}
	// A query without keywords matches nothing.
	if len(embeddings.Keywords(query)) == 0 {
		return nil, nil
	}

	results, err := a.store.Search(ctx, query, a.topK, nil)
	if err != nil {
		return nil, fmt.Errorf("searching knowledge base: %w", err)
	}

	relevant := results[:0]
	for _, r := range results {
		if r.Similarity > a.minSimilarity {
			relevant = append(relevant, r)
		}
	}
	a.logger.Debug("retrieved context",
		zap.String("query", query),
		zap.Int("candidates", len(results)),
		zap.Int("relevant", len(relevant)))
	return relevant, nil
}

func (a *Assistant) compose(query string, contexts []vectordb.SearchResult) string {
	if len(contexts) == 0 {
		return NotFoundMessage(query)
	}

	lower := strings.ToLower(query)
	if containsAny(lower, overviewPhrases) {
		for _, c := range contexts {
			if c.Document.Metadata.Kind == vectordb.KindFAQ {
				return c.Document.Metadata.Answer
			}
		}
	}

	first := contexts[0].Document
	if first.Metadata.Kind == vectordb.KindFAQ {
		return first.Metadata.Answer
	}
	content := a.chapterContent(first)
	if para, ok := relevantParagraph(content, lower); ok {
		return para
	}
	return truncateRunes(content, excerptLimit)
}

// chapterContent returns the full chapter text for an indexed chapter, or the
// indexed text when the chapter is no longer in the book.
func (a *Assistant) chapterContent(doc vectordb.Document) string {
	if a.book != nil {
		for _, ch := range a.book.Chapters {
			if ch.File == doc.Metadata.Source {
				return ch.Content
			}
		}
	}
	return doc.Content
}

// relevantParagraph returns the first paragraph of content that mentions a
// query word. Counting questions only accept the paragraph naming the six
// chapters.
func relevantParagraph(content, lowerQuery string) (string, bool) {
	var words []string
	for _, w := range strings.Fields(lowerQuery) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return "", false
	}
	counting := containsAny(lowerQuery, countPhrases)

	for _, para := range strings.Split(content, "\n\n") {
		lowerPara := strings.ToLower(para)
		if !containsAny(lowerPara, words) {
			continue
		}
		if counting && !(strings.Contains(lowerPara, "six") && strings.Contains(lowerPara, "chapter")) {
			continue
		}
		if trimmed := strings.TrimSpace(para); trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}

// NotFoundMessage is the reply when nothing relevant was retrieved.
func NotFoundMessage(query string) string {
	return fmt.Sprintf("I don't have specific information about '%s' in the book. "+
		"The book covers topics like physical AI, robot foundations, human-inspired design, "+
		"perception systems, AI & control, and locomotion. Try asking about these topics!", query)
}

func isGreeting(lower string) bool {
	for _, w := range wordPattern.FindAllString(lower, -1) {
		if greetings[w] {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
