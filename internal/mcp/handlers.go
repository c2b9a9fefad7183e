package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/robobook/internal/vectordb"
)

func (s *Server) handleAskBook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	if s.assistant == nil {
		return mcp.NewToolResultError("The book is not indexed. Run `robobook index` first."), nil
	}

	ans, err := s.assistant.Answer(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answering failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n(source: %s)", ans.Text, ans.Source)), nil
}

func (s *Server) handleSearchBook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	if s.store == nil {
		return mcp.NewToolResultError("The book is not indexed. Run `robobook index` first."), nil
	}

	limit := request.GetInt("limit", 3)
	if limit <= 0 {
		limit = 3
	}

	var filter *vectordb.SearchFilter
	if kind := request.GetString("kind", ""); kind != "" {
		k := vectordb.DocumentKind(kind)
		filter = &vectordb.SearchFilter{Kind: &k}
	}

	results, err := s.store.Search(ctx, query, limit, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No results found."), nil
	}
	return mcp.NewToolResultText(vectordb.FormatResults(results)), nil
}

func (s *Server) handleListChapters(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.book.Len() == 0 {
		return mcp.NewToolResultText("The book has no chapters."), nil
	}
	var sb strings.Builder
	for i, ch := range s.book.Chapters {
		fmt.Fprintf(&sb, "%d. %s (slug: %s)\n", i+1, ch.Title, ch.Slug)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleGetChapter(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := request.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: slug"), nil
	}
	ch, err := s.book.Chapter(slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("No chapter %q. Use list_chapters to see the available slugs.", slug)), nil
	}
	return mcp.NewToolResultText(ch.Content), nil
}
