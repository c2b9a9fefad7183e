package vectordb

import (
	"fmt"
	"strings"
)

// FormatResults renders search results as prompt context.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&sb, "--- Result %d (similarity: %.4f) ---\n", i+1, r.Similarity)
		if r.Document.Metadata.Title != "" {
			fmt.Fprintf(&sb, "Title: %s\n", r.Document.Metadata.Title)
		}
		if r.Document.Metadata.Source != "" {
			fmt.Fprintf(&sb, "Source: %s\n", r.Document.Metadata.Source)
		}
		sb.WriteString("\n")
		sb.WriteString(r.Document.Content)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
