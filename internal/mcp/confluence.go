package mcp

import (
	"context"
	"fmt"

	"github.com/atlmcp/mcp-atlassian/internal/confluence"
	"github.com/atlmcp/mcp-atlassian/internal/markup"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// confluenceToolNames lists the tools NewConfluenceTools registers.
var confluenceToolNames = []string{
	"confluence_search",
	"confluence_get_page",
	"split_page",
	"confluence_get_comments",
	"get_page_by_title",
	"get_space_pages",
}

// ConfluenceTools wires the Confluence service into MCP tools.
type ConfluenceTools struct {
	service *confluence.Service
}

// NewConfluenceTools registers the Confluence tools on the server. The
// service may be nil; handlers then answer with a configuration error.
func NewConfluenceTools(s *server.MCPServer, service *confluence.Service) *ConfluenceTools {
	ct := &ConfluenceTools{service: service}

	s.AddTool(
		mcp.NewTool(
			"confluence_search",
			mcp.WithDescription("Search Confluence content using CQL"),
			mcp.WithInputSchema[ConfluenceSearchArgs](),
			mcp.WithOutputSchema[ConfluenceSearchResult](),
		),
		mcp.NewTypedToolHandler(ct.handleSearch),
	)

	s.AddTool(
		mcp.NewTool(
			"confluence_get_page",
			mcp.WithDescription("Read a Confluence page by its ID"),
			mcp.WithInputSchema[ConfluenceGetPageArgs](),
			mcp.WithOutputSchema[ConfluencePageResult](),
		),
		mcp.NewTypedToolHandler(ct.handleGetPage),
	)

	s.AddTool(
		mcp.NewTool(
			"split_page",
			mcp.WithDescription("Split a Confluence page into markdown chunks"),
			mcp.WithInputSchema[SplitPageArgs](),
			mcp.WithOutputSchema[SplitPageResult](),
		),
		mcp.NewTypedToolHandler(ct.handleSplitPage),
	)

	s.AddTool(
		mcp.NewTool(
			"confluence_get_comments",
			mcp.WithDescription("Get comments for a specific Confluence page"),
			mcp.WithInputSchema[ConfluenceCommentsArgs](),
			mcp.WithOutputSchema[ConfluenceCommentsResult](),
		),
		mcp.NewTypedToolHandler(ct.handleGetComments),
	)

	s.AddTool(
		mcp.NewTool(
			"get_page_by_title",
			mcp.WithDescription("Read a Confluence page by space key and title"),
			mcp.WithInputSchema[PageByTitleArgs](),
			mcp.WithOutputSchema[ConfluencePageResult](),
		),
		mcp.NewTypedToolHandler(ct.handleGetPageByTitle),
	)

	s.AddTool(
		mcp.NewTool(
			"get_space_pages",
			mcp.WithDescription("Get all pages from a specific space"),
			mcp.WithInputSchema[SpacePagesArgs](),
			mcp.WithOutputSchema[SpacePagesResult](),
		),
		mcp.NewTypedToolHandler(ct.handleGetSpacePages),
	)

	return ct
}

// ConfluenceSearchArgs parameters for CQL search.
type ConfluenceSearchArgs struct {
	Query string `json:"query" jsonschema:"required" jsonschema_description:"CQL query string (e.g. 'type=page AND space=DEV')"`
	Limit int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=50" jsonschema_description:"Maximum number of results (1-50)"`
}

// ConfluenceSearchResult wraps search hits.
type ConfluenceSearchResult struct {
	Results []confluence.SearchResult `json:"results"`
}

func (ct *ConfluenceTools) handleSearch(ctx context.Context, _ mcp.CallToolRequest, args ConfluenceSearchArgs) (*mcp.CallToolResult, error) {
	if ct.service == nil {
		return mcp.NewToolResultError(confluenceNotConfigured), nil
	}

	limit := clampLimit(args.Limit, 50)
	results, err := ct.service.Search(ctx, args.Query, limit)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("confluence search failed", err), nil
	}

	fallback := fmt.Sprintf("Found %d pages matching the query", len(results))
	return mcp.NewToolResultStructured(ConfluenceSearchResult{Results: results}, fallback), nil
}

// ConfluenceGetPageArgs parameters for fetching a page by ID.
type ConfluenceGetPageArgs struct {
	PageID          string `json:"page_id" jsonschema:"required" jsonschema_description:"Confluence page ID"`
	IncludeMetadata *bool  `json:"include_metadata,omitempty" jsonschema_description:"Whether to include page metadata (default true)"`
}

// ConfluencePageResult carries rendered page content plus optional metadata.
type ConfluencePageResult struct {
	Content  string                   `json:"content"`
	Metadata *confluence.PageMetadata `json:"metadata,omitempty"`
}

func (ct *ConfluenceTools) handleGetPage(ctx context.Context, _ mcp.CallToolRequest, args ConfluenceGetPageArgs) (*mcp.CallToolResult, error) {
	if ct.service == nil {
		return mcp.NewToolResultError(confluenceNotConfigured), nil
	}

	doc, err := ct.service.GetPage(ctx, args.PageID)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("confluence get page failed", err), nil
	}

	result := ConfluencePageResult{Content: doc.Content}
	if args.IncludeMetadata == nil || *args.IncludeMetadata {
		meta := doc.Metadata
		result.Metadata = &meta
	}

	fallback := fmt.Sprintf("Page %s (%s)", doc.Metadata.Title, doc.Metadata.PageID)
	return mcp.NewToolResultStructured(result, fallback), nil
}

// SplitPageArgs parameters for splitting a page.
type SplitPageArgs struct {
	PageID string `json:"page_id" jsonschema:"required" jsonschema_description:"Confluence page ID"`
	Start  int    `json:"start,omitempty" jsonschema:"minimum=0" jsonschema_description:"Start index of parts"`
	Limit  int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100" jsonschema_description:"Maximum number of parts (1-100)"`
}

// SplitPart is one chunk of a split page.
type SplitPart struct {
	Content string `json:"content"`
}

// SplitPageResult describes the requested window of chunks.
type SplitPageResult struct {
	PageID string      `json:"page_id"`
	Start  int         `json:"start"`
	Limit  int         `json:"limit"`
	Count  int         `json:"count"`
	Parts  []SplitPart `json:"parts"`
}

func (ct *ConfluenceTools) handleSplitPage(ctx context.Context, _ mcp.CallToolRequest, args SplitPageArgs) (*mcp.CallToolResult, error) {
	if ct.service == nil {
		return mcp.NewToolResultError(confluenceNotConfigured), nil
	}

	start := args.Start
	if start < 0 {
		start = 0
	}
	limit := clampLimit(args.Limit, 100)

	doc, err := ct.service.GetPage(ctx, args.PageID)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("confluence split page failed", err), nil
	}

	chunks := markup.SplitMarkdown(doc.Content, markup.DefaultChunkSize)

	parts := make([]SplitPart, 0, limit)
	for i := start; i < len(chunks) && i < start+limit; i++ {
		parts = append(parts, SplitPart{Content: chunks[i]})
	}

	result := SplitPageResult{
		PageID: args.PageID,
		Start:  start,
		Limit:  limit,
		Count:  len(chunks),
		Parts:  parts,
	}

	fallback := fmt.Sprintf("Page %s split into %d parts, returning %d", args.PageID, result.Count, len(parts))
	return mcp.NewToolResultStructured(result, fallback), nil
}

// ConfluenceCommentsArgs parameters for fetching page comments.
type ConfluenceCommentsArgs struct {
	PageID string `json:"page_id" jsonschema:"required" jsonschema_description:"Confluence page ID"`
}

// ConfluenceCommentsResult wraps page comments.
type ConfluenceCommentsResult struct {
	Comments []confluence.Comment `json:"comments"`
}

func (ct *ConfluenceTools) handleGetComments(ctx context.Context, _ mcp.CallToolRequest, args ConfluenceCommentsArgs) (*mcp.CallToolResult, error) {
	if ct.service == nil {
		return mcp.NewToolResultError(confluenceNotConfigured), nil
	}

	comments, err := ct.service.PageComments(ctx, args.PageID)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("confluence get comments failed", err), nil
	}

	fallback := fmt.Sprintf("Found %d comments", len(comments))
	return mcp.NewToolResultStructured(ConfluenceCommentsResult{Comments: comments}, fallback), nil
}

// PageByTitleArgs parameters for the title lookup.
type PageByTitleArgs struct {
	SpaceKey        string `json:"space_key" jsonschema:"required" jsonschema_description:"Confluence space key"`
	Title           string `json:"title" jsonschema:"required" jsonschema_description:"Exact page title"`
	IncludeMetadata *bool  `json:"include_metadata,omitempty" jsonschema_description:"Whether to include page metadata (default true)"`
}

func (ct *ConfluenceTools) handleGetPageByTitle(ctx context.Context, _ mcp.CallToolRequest, args PageByTitleArgs) (*mcp.CallToolResult, error) {
	if ct.service == nil {
		return mcp.NewToolResultError(confluenceNotConfigured), nil
	}

	doc, err := ct.service.GetPageByTitle(ctx, args.SpaceKey, args.Title)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("confluence get page by title failed", err), nil
	}

	result := ConfluencePageResult{Content: doc.Content}
	if args.IncludeMetadata == nil || *args.IncludeMetadata {
		meta := doc.Metadata
		result.Metadata = &meta
	}

	fallback := fmt.Sprintf("Page %s (%s)", doc.Metadata.Title, doc.Metadata.PageID)
	return mcp.NewToolResultStructured(result, fallback), nil
}

// SpacePagesArgs parameters for listing pages in a space.
type SpacePagesArgs struct {
	SpaceKey string `json:"space_key" jsonschema:"required" jsonschema_description:"Confluence space key"`
	Start    int    `json:"start,omitempty" jsonschema:"minimum=0" jsonschema_description:"Start index of results"`
	Limit    int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=50" jsonschema_description:"Maximum number of results (1-50)"`
}

// SpacePageSummary is one page row in a space listing.
type SpacePageSummary struct {
	PageID   string `json:"page_id"`
	Title    string `json:"title"`
	SpaceKey string `json:"space_key"`
	Version  int    `json:"version"`
	URL      string `json:"url"`
	Excerpt  string `json:"excerpt"`
}

// SpacePagesResult wraps a space listing.
type SpacePagesResult struct {
	Pages []SpacePageSummary `json:"pages"`
}

func (ct *ConfluenceTools) handleGetSpacePages(ctx context.Context, _ mcp.CallToolRequest, args SpacePagesArgs) (*mcp.CallToolResult, error) {
	if ct.service == nil {
		return mcp.NewToolResultError(confluenceNotConfigured), nil
	}

	start := args.Start
	if start < 0 {
		start = 0
	}
	limit := clampLimit(args.Limit, 50)

	docs, err := ct.service.SpacePages(ctx, args.SpaceKey, start, limit)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("confluence get space pages failed", err), nil
	}

	result := SpacePagesResult{Pages: make([]SpacePageSummary, 0, len(docs))}
	for _, doc := range docs {
		result.Pages = append(result.Pages, SpacePageSummary{
			PageID:   doc.Metadata.PageID,
			Title:    doc.Metadata.Title,
			SpaceKey: doc.Metadata.SpaceKey,
			Version:  doc.Metadata.Version,
			URL:      doc.Metadata.URL,
			Excerpt:  doc.Content,
		})
	}

	fallback := fmt.Sprintf("Found %d pages in space %s", len(result.Pages), args.SpaceKey)
	return mcp.NewToolResultStructured(result, fallback), nil
}
