package mcp

import "github.com/mark3labs/mcp-go/mcp"

var askBookTool = mcp.NewTool("ask_book",
	mcp.WithDescription("Ask a question about the Humanoid Robotics Book. Returns the same answer the chat widget shows."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language question"),
	),
)

var searchBookTool = mcp.NewTool("search_book",
	mcp.WithDescription("Search the book knowledge base. Returns the most similar chapters and canned answers."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 3)"),
	),
	mcp.WithString("kind",
		mcp.Description("Only return entries of this kind"),
		mcp.Enum("chapter", "faq"),
	),
)

var listChaptersTool = mcp.NewTool("list_chapters",
	mcp.WithDescription("List the chapters of the book in reading order."),
)

var getChapterTool = mcp.NewTool("get_chapter",
	mcp.WithDescription("Get the markdown of one chapter."),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Chapter slug as returned by list_chapters"),
	),
)
