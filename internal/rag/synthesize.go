package rag

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/robobook/internal/llm"
	"github.com/ziadkadry99/robobook/internal/vectordb"
)

const synthesisSystemPrompt = "You are a helpful assistant for a book on humanoid robotics. " +
	"Answer only from the provided book excerpts. If the excerpts do not contain the answer, say so briefly. " +
	"Keep answers under 150 words."

// synthesize asks the LLM to answer from the retrieved context. It returns ""
// on failure so the caller keeps the retrieval answer.
func (a *Assistant) synthesize(ctx context.Context, query string, contexts []vectordb.SearchResult) string {
	prompt := fmt.Sprintf(`A reader of the Humanoid Robotics Book asked: "%s"

Here are the most relevant excerpts from the book:

%s
Answer the question directly and factually, grounded in these excerpts.`, query, vectordb.FormatResults(a.expand(contexts)))

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Model: a.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: synthesisSystemPrompt},
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   512,
		Temperature: 0.3,
	})
	if err != nil {
		a.logger.Warn("llm synthesis failed, using retrieval answer",
			zap.String("provider", a.provider.Name()),
			zap.Error(err))
		return ""
	}
	return strings.TrimSpace(resp.Content)
}

// expand replaces indexed text with what the model should read: the FAQ
// answer, or the full chapter.
func (a *Assistant) expand(contexts []vectordb.SearchResult) []vectordb.SearchResult {
	out := make([]vectordb.SearchResult, len(contexts))
	for i, c := range contexts {
		out[i] = c
		switch c.Document.Metadata.Kind {
		case vectordb.KindFAQ:
			out[i].Document.Content = c.Document.Metadata.Answer
		case vectordb.KindChapter:
			out[i].Document.Content = a.chapterContent(c.Document)
		}
	}
	return out
}
