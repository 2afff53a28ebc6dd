// Package mcp exposes Confluence and Jira operations as MCP tools and
// resources.
package mcp

import (
	"context"
	"log/slog"

	"github.com/atlmcp/mcp-atlassian/internal/confluence"
	"github.com/atlmcp/mcp-atlassian/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const serverName = "mcp-atlassian"

const (
	confluenceNotConfigured = "Confluence is not configured. Please provide Confluence credentials."
	jiraNotConfigured       = "Jira is not configured. Please provide Jira credentials."

	defaultLimit = 10
)

// Dependencies bundles the services required for MCP server construction.
// A nil service means that backend is not configured: its tools stay
// registered but are hidden from listings and answer with a configuration
// error, and its resources are not registered at all.
type Dependencies struct {
	Confluence *confluence.Service
	Jira       *jira.Service
	Logger     *slog.Logger
}

// NewServer builds an MCP server with all Atlassian tools registered.
// Resources are registered separately via RegisterResources because listing
// spaces and projects talks to the backends.
func NewServer(version string, deps Dependencies) *server.MCPServer {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	srv := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("Tools and resources for searching and reading Confluence pages and for querying, creating, and linking Jira issues."),
		server.WithRecovery(),
		server.WithToolFilter(filterConfiguredTools(deps)),
	)

	NewConfluenceTools(srv, deps.Confluence)
	NewJiraTools(srv, deps.Jira)

	return srv
}

// filterConfiguredTools hides an unconfigured backend's tools from tool
// listings. The handlers stay registered, so calling a hidden tool still
// returns a configuration error instead of an unknown-tool failure.
func filterConfiguredTools(deps Dependencies) server.ToolFilterFunc {
	hidden := make(map[string]bool)
	if deps.Confluence == nil {
		for _, name := range confluenceToolNames {
			hidden[name] = true
		}
	}
	if deps.Jira == nil {
		for _, name := range jiraToolNames {
			hidden[name] = true
		}
	}

	return func(_ context.Context, tools []mcp.Tool) []mcp.Tool {
		if len(hidden) == 0 {
			return tools
		}
		filtered := make([]mcp.Tool, 0, len(tools))
		for _, tool := range tools {
			if !hidden[tool.Name] {
				filtered = append(filtered, tool)
			}
		}
		return filtered
	}
}

// clampLimit bounds a requested result count to [1, upper]. Zero means the
// caller did not ask, which falls back to the default page size.
func clampLimit(limit, upper int) int {
	switch {
	case limit == 0:
		return defaultLimit
	case limit < 1:
		return 1
	case limit > upper:
		return upper
	}
	return limit
}
