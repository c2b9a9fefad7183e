package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/robobook/internal/book"
	"github.com/ziadkadry99/robobook/internal/rag"
	"github.com/ziadkadry99/robobook/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Answerer replies to questions about the book.
type Answerer interface {
	Answer(ctx context.Context, query string) (rag.Answer, error)
}

// Server wraps an MCP server that exposes the book to agents.
type Server struct {
	book      *book.Book
	store     vectordb.VectorStore
	assistant Answerer
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(b *book.Book, store vectordb.VectorStore, assistant Answerer) *Server {
	if b == nil {
		b = &book.Book{}
	}
	s := &Server{
		book:      b,
		store:     store,
		assistant: assistant,
	}

	s.mcp = server.NewMCPServer(
		"robobook",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(askBookTool, s.handleAskBook)
	s.mcp.AddTool(searchBookTool, s.handleSearchBook)
	s.mcp.AddTool(listChaptersTool, s.handleListChapters)
	s.mcp.AddTool(getChapterTool, s.handleGetChapter)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
