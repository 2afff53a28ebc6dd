package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs come in four forms:
//
//	confluence://{space_key}                 pages in a space
//	confluence://{space_key}/pages/{title}   one page by title
//	jira://{project_key}                     issues in a project
//	jira://{project_key}/issues/{issue_key}  one issue by key
const (
	confluenceScheme = "confluence://"
	jiraScheme       = "jira://"

	resourceMIMEType = "text/plain"
)

type resourceKind int

const (
	resourceInvalid resourceKind = iota
	resourceSpace
	resourcePage
	resourceProject
	resourceIssue
)

// resourceRef identifies the target of a parsed resource URI.
type resourceRef struct {
	kind     resourceKind
	space    string
	title    string
	project  string
	issueKey string
}

// parseResourceURI classifies a confluence:// or jira:// URI. Path segments
// arrive percent-encoded when clients expand URI templates, so titles and
// keys are unescaped here.
func parseResourceURI(uri string) (resourceRef, error) {
	switch {
	case strings.HasPrefix(uri, confluenceScheme):
		parts := strings.Split(strings.TrimPrefix(uri, confluenceScheme), "/")
		switch {
		case len(parts) == 1 && parts[0] != "":
			return resourceRef{kind: resourceSpace, space: unescapeSegment(parts[0])}, nil
		case len(parts) >= 3 && parts[1] == "pages" && parts[2] != "":
			return resourceRef{
				kind:  resourcePage,
				space: unescapeSegment(parts[0]),
				title: unescapeSegment(parts[2]),
			}, nil
		}
	case strings.HasPrefix(uri, jiraScheme):
		parts := strings.Split(strings.TrimPrefix(uri, jiraScheme), "/")
		switch {
		case len(parts) == 1 && parts[0] != "":
			return resourceRef{kind: resourceProject, project: unescapeSegment(parts[0])}, nil
		case len(parts) >= 3 && parts[1] == "issues" && parts[2] != "":
			return resourceRef{
				kind:     resourceIssue,
				project:  unescapeSegment(parts[0]),
				issueKey: unescapeSegment(parts[2]),
			}, nil
		}
	}
	return resourceRef{}, fmt.Errorf("invalid resource URI: %s", uri)
}

func unescapeSegment(s string) string {
	unescaped, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return unescaped
}

// resourceHandler serves reads for all atlassian resource URIs.
type resourceHandler struct {
	deps Dependencies
}

// RegisterResources lists Confluence spaces and Jira projects, registers
// each as a static resource, and adds URI templates for pages and issues.
// Listing failures are logged rather than fatal so one slow backend cannot
// keep the server from starting.
func RegisterResources(ctx context.Context, srv *server.MCPServer, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler := &resourceHandler{deps: deps}

	if deps.Confluence != nil {
		spaces, err := deps.Confluence.Spaces(ctx, 0, 0)
		if err != nil {
			logger.Error("listing confluence spaces for resources", "error", err)
		}
		for _, space := range spaces {
			srv.AddResource(mcp.NewResource(
				confluenceScheme+space.Key,
				"Confluence Space: "+space.Name,
				mcp.WithResourceDescription(strings.TrimSpace(space.Description.Plain.Value)),
				mcp.WithMIMEType(resourceMIMEType),
			), handler.read)
		}

		srv.AddResourceTemplate(mcp.NewResourceTemplate(
			confluenceScheme+"{space_key}",
			"Confluence Space Pages",
			mcp.WithTemplateDescription("Pages in a Confluence space, rendered as markdown"),
			mcp.WithTemplateMIMEType(resourceMIMEType),
		), handler.read)

		srv.AddResourceTemplate(mcp.NewResourceTemplate(
			confluenceScheme+"{space_key}/pages/{title}",
			"Confluence Page",
			mcp.WithTemplateDescription("A Confluence page fetched by space key and title"),
			mcp.WithTemplateMIMEType(resourceMIMEType),
		), handler.read)
	}

	if deps.Jira != nil {
		projects, err := deps.Jira.Projects(ctx)
		if err != nil {
			logger.Error("listing jira projects for resources", "error", err)
		}
		for _, project := range projects {
			srv.AddResource(mcp.NewResource(
				jiraScheme+project.Key,
				"Jira Project: "+project.Name,
				mcp.WithResourceDescription(project.Description),
				mcp.WithMIMEType(resourceMIMEType),
			), handler.read)
		}

		srv.AddResourceTemplate(mcp.NewResourceTemplate(
			jiraScheme+"{project_key}",
			"Jira Project Issues",
			mcp.WithTemplateDescription("Issues in a Jira project, newest first"),
			mcp.WithTemplateMIMEType(resourceMIMEType),
		), handler.read)

		srv.AddResourceTemplate(mcp.NewResourceTemplate(
			jiraScheme+"{project_key}/issues/{issue_key}",
			"Jira Issue",
			mcp.WithTemplateDescription("A Jira issue fetched by key"),
			mcp.WithTemplateMIMEType(resourceMIMEType),
		), handler.read)
	}
}

func (r *resourceHandler) read(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI

	ref, err := parseResourceURI(uri)
	if err != nil {
		return nil, err
	}

	var text string
	switch ref.kind {
	case resourceSpace, resourcePage:
		if r.deps.Confluence == nil {
			return nil, errors.New(confluenceNotConfigured)
		}
		if ref.kind == resourceSpace {
			text, err = r.readSpace(ctx, ref.space)
		} else {
			text, err = r.readPage(ctx, ref.space, ref.title)
		}
	case resourceProject, resourceIssue:
		if r.deps.Jira == nil {
			return nil, errors.New(jiraNotConfigured)
		}
		if ref.kind == resourceProject {
			text, err = r.readProject(ctx, ref.project)
		} else {
			text, err = r.readIssue(ctx, ref.issueKey)
		}
	default:
		return nil, fmt.Errorf("invalid resource URI: %s", uri)
	}
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: resourceMIMEType,
			Text:     text,
		},
	}, nil
}

// readSpace renders a space's pages as one document, each page introduced
// by its title and closed with a rule.
func (r *resourceHandler) readSpace(ctx context.Context, spaceKey string) (string, error) {
	docs, err := r.deps.Confluence.SpacePages(ctx, spaceKey, 0, 0)
	if err != nil {
		return "", err
	}

	sections := make([]string, 0, len(docs))
	for _, doc := range docs {
		sections = append(sections, fmt.Sprintf("# %s\n\n%s\n---", doc.Metadata.Title, doc.Content))
	}
	return strings.Join(sections, "\n\n"), nil
}

func (r *resourceHandler) readPage(ctx context.Context, spaceKey, title string) (string, error) {
	doc, err := r.deps.Confluence.GetPageByTitle(ctx, spaceKey, title)
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}

// readProject renders a project's issues as one document, each issue
// introduced by its key and title and closed with a rule.
func (r *resourceHandler) readProject(ctx context.Context, projectKey string) (string, error) {
	docs, err := r.deps.Jira.ProjectDocuments(ctx, projectKey, 0)
	if err != nil {
		return "", err
	}

	sections := make([]string, 0, len(docs))
	for _, doc := range docs {
		sections = append(sections, fmt.Sprintf("# %s: %s\n\n%s\n---", doc.Metadata.Key, doc.Metadata.Title, doc.Content))
	}
	return strings.Join(sections, "\n\n"), nil
}

func (r *resourceHandler) readIssue(ctx context.Context, issueKey string) (string, error) {
	doc, err := r.deps.Jira.GetIssue(ctx, issueKey, "")
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}
