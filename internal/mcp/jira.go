package mcp

import (
	"context"
	"fmt"

	"github.com/atlmcp/mcp-atlassian/internal/jira"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// jiraToolNames lists the tools NewJiraTools registers.
var jiraToolNames = []string{
	"jira_get_issue",
	"jira_search",
	"jira_get_project_issues",
	"create_issue",
	"create_issue_link",
	"get_issue_link_types",
}

// JiraTools wires the Jira service into MCP tools.
type JiraTools struct {
	service *jira.Service
}

// NewJiraTools registers the Jira tools on the server. The service may be
// nil; handlers then answer with a configuration error.
func NewJiraTools(s *server.MCPServer, service *jira.Service) *JiraTools {
	jt := &JiraTools{service: service}

	s.AddTool(
		mcp.NewTool(
			"jira_get_issue",
			mcp.WithDescription("Get details of a specific Jira issue"),
			mcp.WithInputSchema[JiraGetIssueArgs](),
			mcp.WithOutputSchema[JiraIssueResult](),
		),
		mcp.NewTypedToolHandler(jt.handleGetIssue),
	)

	s.AddTool(
		mcp.NewTool(
			"jira_search",
			mcp.WithDescription("Search Jira issues using JQL"),
			mcp.WithInputSchema[JiraSearchArgs](),
			mcp.WithOutputSchema[JiraSearchResult](),
		),
		mcp.NewTypedToolHandler(jt.handleSearch),
	)

	s.AddTool(
		mcp.NewTool(
			"jira_get_project_issues",
			mcp.WithDescription("Get all issues for a specific Jira project"),
			mcp.WithInputSchema[JiraProjectIssuesArgs](),
			mcp.WithOutputSchema[JiraProjectIssuesResult](),
		),
		mcp.NewTypedToolHandler(jt.handleGetProjectIssues),
	)

	s.AddTool(
		mcp.NewTool(
			"create_issue",
			mcp.WithDescription("Create a new Jira issue"),
			mcp.WithInputSchema[CreateIssueArgs](),
			mcp.WithOutputSchema[CreateIssueResult](),
		),
		mcp.NewTypedToolHandler(jt.handleCreateIssue),
	)

	s.AddTool(
		mcp.NewTool(
			"create_issue_link",
			mcp.WithDescription("Create a link between two issues"),
			mcp.WithInputSchema[CreateIssueLinkArgs](),
			mcp.WithOutputSchema[CreateIssueLinkResult](),
		),
		mcp.NewTypedToolHandler(jt.handleCreateIssueLink),
	)

	s.AddTool(
		mcp.NewTool(
			"get_issue_link_types",
			mcp.WithDescription("Get issue link types"),
			mcp.WithInputSchema[IssueLinkTypesArgs](),
			mcp.WithOutputSchema[IssueLinkTypesResult](),
		),
		mcp.NewTypedToolHandler(jt.handleGetIssueLinkTypes),
	)

	return jt
}

// JiraGetIssueArgs parameters for fetching one issue.
type JiraGetIssueArgs struct {
	IssueKey string `json:"issue_key" jsonschema:"required" jsonschema_description:"Jira issue key (e.g., 'PROJ-123')"`
	Expand   string `json:"expand,omitempty" jsonschema_description:"Optional fields to expand"`
}

// JiraIssueResult carries a rendered issue plus its metadata.
type JiraIssueResult struct {
	Content  string             `json:"content"`
	Metadata jira.IssueMetadata `json:"metadata"`
}

func (jt *JiraTools) handleGetIssue(ctx context.Context, _ mcp.CallToolRequest, args JiraGetIssueArgs) (*mcp.CallToolResult, error) {
	if jt.service == nil {
		return mcp.NewToolResultError(jiraNotConfigured), nil
	}

	doc, err := jt.service.GetIssue(ctx, args.IssueKey, args.Expand)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira get issue failed", err), nil
	}

	result := JiraIssueResult{Content: doc.Content, Metadata: doc.Metadata}
	fallback := fmt.Sprintf("Issue %s: %s", doc.Metadata.Key, doc.Metadata.Title)
	return mcp.NewToolResultStructured(result, fallback), nil
}

// JiraSearchArgs parameters for JQL search.
type JiraSearchArgs struct {
	JQL    string `json:"jql" jsonschema:"required" jsonschema_description:"JQL query string"`
	Fields string `json:"fields,omitempty" jsonschema_description:"Comma-separated fields to return (default *all)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=50" jsonschema_description:"Maximum number of results (1-50)"`
}

// JiraSearchResult wraps JQL hits.
type JiraSearchResult struct {
	Results []jira.SearchResult `json:"results"`
}

func (jt *JiraTools) handleSearch(ctx context.Context, _ mcp.CallToolRequest, args JiraSearchArgs) (*mcp.CallToolResult, error) {
	if jt.service == nil {
		return mcp.NewToolResultError(jiraNotConfigured), nil
	}

	limit := clampLimit(args.Limit, 50)
	results, err := jt.service.Search(ctx, args.JQL, args.Fields, limit)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira search failed", err), nil
	}

	fallback := fmt.Sprintf("Found %d issues matching the query", len(results))
	return mcp.NewToolResultStructured(JiraSearchResult{Results: results}, fallback), nil
}

// JiraProjectIssuesArgs parameters for listing a project's issues.
type JiraProjectIssuesArgs struct {
	ProjectKey string `json:"project_key" jsonschema:"required" jsonschema_description:"The project key"`
	Limit      int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=50" jsonschema_description:"Maximum number of results (1-50)"`
}

// JiraProjectIssuesResult wraps a project listing.
type JiraProjectIssuesResult struct {
	Issues []jira.ProjectIssue `json:"issues"`
}

func (jt *JiraTools) handleGetProjectIssues(ctx context.Context, _ mcp.CallToolRequest, args JiraProjectIssuesArgs) (*mcp.CallToolResult, error) {
	if jt.service == nil {
		return mcp.NewToolResultError(jiraNotConfigured), nil
	}

	limit := clampLimit(args.Limit, 50)
	issues, err := jt.service.ProjectIssues(ctx, args.ProjectKey, limit)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira get project issues failed", err), nil
	}

	fallback := fmt.Sprintf("Found %d issues in project %s", len(issues), args.ProjectKey)
	return mcp.NewToolResultStructured(JiraProjectIssuesResult{Issues: issues}, fallback), nil
}

// CreateIssueArgs parameters for creating an issue.
type CreateIssueArgs struct {
	ProjectKey string         `json:"projectKey" jsonschema:"required" jsonschema_description:"The project key where the issue will be created"`
	IssueType  string         `json:"issueType" jsonschema:"required" jsonschema_description:"The type of issue to create (e.g., Bug, Story, Task)"`
	Summary    string         `json:"summary" jsonschema:"required" jsonschema_description:"The issue summary/title"`
	Descr      string         `json:"descr" jsonschema:"required" jsonschema_description:"The issue description"`
	Fields     map[string]any `json:"fields,omitempty" jsonschema_description:"Additional fields to set on the issue"`
}

// CreateIssueResult reports the created issue.
type CreateIssueResult struct {
	Issue jira.CreateIssueResult `json:"issue"`
}

func (jt *JiraTools) handleCreateIssue(ctx context.Context, _ mcp.CallToolRequest, args CreateIssueArgs) (*mcp.CallToolResult, error) {
	if jt.service == nil {
		return mcp.NewToolResultError(jiraNotConfigured), nil
	}

	created, err := jt.service.CreateIssue(ctx, jira.CreateIssueRequest{
		ProjectKey:  args.ProjectKey,
		IssueType:   args.IssueType,
		Summary:     args.Summary,
		Description: args.Descr,
		Fields:      args.Fields,
	})
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira create issue failed", err), nil
	}

	fallback := fmt.Sprintf("Created issue %s", created.Key)
	return mcp.NewToolResultStructured(CreateIssueResult{Issue: *created}, fallback), nil
}

// CreateIssueLinkArgs parameters for linking two issues.
type CreateIssueLinkArgs struct {
	LinkType     string `json:"linkType" jsonschema:"required" jsonschema_description:"The type of link between the issues"`
	InwardIssue  string `json:"inwardIssue" jsonschema:"required" jsonschema_description:"Link from issue key"`
	OutwardIssue string `json:"outwardIssue" jsonschema:"required" jsonschema_description:"Link to issue key"`
	Comment      string `json:"comment,omitempty" jsonschema_description:"Comment to attach to the link"`
}

// CreateIssueLinkResult reports the created link.
type CreateIssueLinkResult struct {
	Status       string `json:"status"`
	LinkType     string `json:"link_type"`
	InwardIssue  string `json:"inward_issue"`
	OutwardIssue string `json:"outward_issue"`
}

func (jt *JiraTools) handleCreateIssueLink(ctx context.Context, _ mcp.CallToolRequest, args CreateIssueLinkArgs) (*mcp.CallToolResult, error) {
	if jt.service == nil {
		return mcp.NewToolResultError(jiraNotConfigured), nil
	}

	err := jt.service.CreateIssueLink(ctx, jira.CreateIssueLinkRequest{
		LinkType:     args.LinkType,
		InwardIssue:  args.InwardIssue,
		OutwardIssue: args.OutwardIssue,
		Comment:      args.Comment,
	})
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira create issue link failed", err), nil
	}

	result := CreateIssueLinkResult{
		Status:       "created",
		LinkType:     args.LinkType,
		InwardIssue:  args.InwardIssue,
		OutwardIssue: args.OutwardIssue,
	}
	fallback := fmt.Sprintf("Linked %s to %s", args.InwardIssue, args.OutwardIssue)
	return mcp.NewToolResultStructured(result, fallback), nil
}

// IssueLinkTypesArgs has no parameters.
type IssueLinkTypesArgs struct{}

// IssueLinkTypesResult wraps the available link relationships.
type IssueLinkTypesResult struct {
	LinkTypes []jira.IssueLinkType `json:"link_types"`
}

func (jt *JiraTools) handleGetIssueLinkTypes(ctx context.Context, _ mcp.CallToolRequest, _ IssueLinkTypesArgs) (*mcp.CallToolResult, error) {
	if jt.service == nil {
		return mcp.NewToolResultError(jiraNotConfigured), nil
	}

	types, err := jt.service.IssueLinkTypes(ctx)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira get issue link types failed", err), nil
	}

	fallback := fmt.Sprintf("Found %d issue link types", len(types))
	return mcp.NewToolResultStructured(IssueLinkTypesResult{LinkTypes: types}, fallback), nil
}
