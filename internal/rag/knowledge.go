package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/ziadkadry99/robobook/internal/book"
	"github.com/ziadkadry99/robobook/internal/progress"
	"github.com/ziadkadry99/robobook/internal/vectordb"
)

// Category labels mixed into the indexed text of each entry.
const (
	categoryBookContent  = "book_content"
	categoryBookIntro    = "book_intro"
	categoryBookOverview = "book_overview"
	categoryBookTopics   = "book_topics"
)

// chapterIndexPrefix is how much of a chapter is indexed. Answers are composed
// from the full chapter text, which the assistant reads from the book.
const chapterIndexPrefix = 500

const (
	bookSummary = "This book is a comprehensive guide on humanoid robotics that takes you on a journey " +
		"through the fascinating world of physical artificial intelligence and humanoid robot development. " +
		"It covers topics from basic concepts to advanced applications in humanoid robotics."

	bookTopics = "The book covers six main topics: 1) Introduction to Physical AI, 2) Foundations of Robotics, " +
		"3) Human-Inspired Design Principles, 4) Perception Systems, 5) AI, Deep Learning & Control Systems, " +
		"and 6) Humanoid Locomotion and Manipulation."

	introLead = "This book is a comprehensive guide on humanoid robotics that takes you on a journey " +
		"through the fascinating world of physical artificial intelligence and humanoid robot development."

	introMissing = "This book is a comprehensive guide on humanoid robotics that covers the fundamentals of " +
		"physical AI, robot design, perception systems, and control mechanisms."

	introUnstructured = "This book is an introduction to humanoid robotics and physical AI."
)

// FAQEntry is a canned question with its answer.
type FAQEntry struct {
	ID       int
	Question string
	Answer   string
	Category string
}

// FAQ returns the canned entries for b. The intro summary is read from the
// book's intro chapter.
func FAQ(b *book.Book) []FAQEntry {
	return []FAQEntry{
		{ID: 1000, Question: "What is the intro about this book?", Answer: IntroSummary(b), Category: categoryBookIntro},
		{ID: 1001, Question: "What is this book about?", Answer: bookSummary, Category: categoryBookOverview},
		{ID: 1002, Question: "Tell me about this book", Answer: bookSummary, Category: categoryBookOverview},
		{ID: 1003, Question: "What topics does this book cover?", Answer: bookTopics, Category: categoryBookTopics},
	}
}

// IntroSummary summarises the intro chapter: a fixed lead sentence followed by
// the first paragraph of its "About This Book" section.
func IntroSummary(b *book.Book) string {
	intro, ok := introChapter(b)
	if !ok {
		return introMissing
	}

	lines := strings.Split(intro.Content, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "## About This Book") {
			continue
		}
		var para []string
		for _, next := range lines[i+1:] {
			next = strings.TrimSpace(next)
			if strings.HasPrefix(next, "#") {
				break
			}
			if next == "" {
				if len(para) > 0 {
					break
				}
				continue
			}
			para = append(para, next)
		}
		if len(para) == 0 {
			return introLead
		}
		return introLead + " " + strings.Join(para, " ")
	}
	return introUnstructured
}

func introChapter(b *book.Book) (book.Chapter, bool) {
	if b == nil {
		return book.Chapter{}, false
	}
	for _, ch := range b.Chapters {
		if ch.Slug == "intro" || strings.HasSuffix(ch.Slug, "/intro") {
			return ch, true
		}
	}
	return book.Chapter{}, false
}

// Documents returns the knowledge base entries for b: one per chapter, then
// the FAQ entries.
func Documents(b *book.Book) []vectordb.Document {
	var docs []vectordb.Document
	if b != nil {
		for _, ch := range b.Chapters {
			docs = append(docs, vectordb.Document{
				ID:      "chapter:" + ch.Slug,
				Content: fmt.Sprintf("%s %s %s", ch.File, truncateRunes(ch.Content, chapterIndexPrefix), categoryBookContent),
				Metadata: vectordb.DocumentMetadata{
					Kind:   vectordb.KindChapter,
					Source: ch.File,
					Title:  ch.Title,
				},
			})
		}
	}
	for _, f := range FAQ(b) {
		docs = append(docs, vectordb.Document{
			ID:      fmt.Sprintf("faq:%d", f.ID),
			Content: fmt.Sprintf("%s %s %s", f.Question, f.Answer, f.Category),
			Metadata: vectordb.DocumentMetadata{
				Kind:     vectordb.KindFAQ,
				Source:   f.Category,
				Title:    f.Question,
				Question: f.Question,
				Answer:   f.Answer,
			},
		})
	}
	return docs
}

// BuildIndex embeds the knowledge base for b into store, one document at a
// time so reporter can follow along. reporter may be nil.
func BuildIndex(ctx context.Context, b *book.Book, store vectordb.VectorStore, reporter progress.Reporter) error {
	reporter = progress.OrNop(reporter)
	docs := Documents(b)

	reporter.Start(len(docs))
	defer reporter.Finish()
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := store.AddDocuments(ctx, []vectordb.Document{doc}); err != nil {
			return fmt.Errorf("indexing %s: %w", doc.ID, err)
		}
		reporter.Update(i+1, doc.ID)
	}
	return nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
