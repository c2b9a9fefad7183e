package vectordb

// DocumentKind separates book chapters from canned question/answer entries.
type DocumentKind string

const (
	KindChapter DocumentKind = "chapter"
	KindFAQ     DocumentKind = "faq"
)

// Document is one knowledge base entry.
type Document struct {
	ID       string
	Content  string
	Metadata DocumentMetadata
}

// DocumentMetadata holds the fields the assistant needs to compose answers.
// Question and Answer are only set on FAQ entries.
type DocumentMetadata struct {
	Kind     DocumentKind
	Source   string // chapter file, or the FAQ category
	Title    string
	Question string
	Answer   string
}

// SearchResult pairs a document with its cosine similarity to the query.
type SearchResult struct {
	Document   Document
	Similarity float32
}

// SearchFilter narrows a search by metadata.
type SearchFilter struct {
	Kind *DocumentKind
}
