package jira

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/atlmcp/mcp-atlassian/internal/markup"
)

// projectListLimit bounds how many issues a project resource renders.
const projectListLimit = 50

// Search runs a JQL query and returns hits with a bounded content excerpt.
func (s *Service) Search(ctx context.Context, jql, fields string, limit int) ([]SearchResult, error) {
	docs, err := s.searchDocuments(ctx, jql, fields, limit)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, SearchResult{
			Key:         doc.Metadata.Key,
			Title:       doc.Metadata.Title,
			Type:        doc.Metadata.Type,
			Status:      doc.Metadata.Status,
			CreatedDate: doc.Metadata.CreatedDate,
			Priority:    doc.Metadata.Priority,
			Link:        doc.Metadata.Link,
			Excerpt:     markup.Excerpt(doc.Content, excerptLimit),
		})
	}
	return results, nil
}

// ProjectIssues lists a project's issues, newest first.
func (s *Service) ProjectIssues(ctx context.Context, projectKey string, limit int) ([]ProjectIssue, error) {
	docs, err := s.ProjectDocuments(ctx, projectKey, limit)
	if err != nil {
		return nil, err
	}

	issues := make([]ProjectIssue, 0, len(docs))
	for _, doc := range docs {
		issues = append(issues, ProjectIssue{
			Key:         doc.Metadata.Key,
			Title:       doc.Metadata.Title,
			Type:        doc.Metadata.Type,
			Status:      doc.Metadata.Status,
			CreatedDate: doc.Metadata.CreatedDate,
			Link:        doc.Metadata.Link,
		})
	}
	return issues, nil
}

// ProjectDocuments fetches a project's issues, newest first, as fully
// rendered documents. Resource reads use this to show whole issues.
func (s *Service) ProjectDocuments(ctx context.Context, projectKey string, limit int) ([]Document, error) {
	if projectKey == "" {
		return nil, fmt.Errorf("jira: project key required")
	}
	if limit <= 0 {
		limit = projectListLimit
	}

	jql := fmt.Sprintf("project = %s ORDER BY created DESC", projectKey)
	return s.searchDocuments(ctx, jql, "*all", limit)
}

// searchDocuments runs a JQL query and refetches each hit in full, so the
// rendered documents cover description, links, and comments regardless of
// which fields the query selected.
func (s *Service) searchDocuments(ctx context.Context, jql, fields string, limit int) ([]Document, error) {
	if strings.TrimSpace(jql) == "" {
		return nil, fmt.Errorf("jira: jql query required")
	}
	if fields == "" {
		fields = "*all"
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{}
	params.Set("jql", jql)
	params.Set("fields", fields)
	params.Set("maxResults", strconv.Itoa(limit))

	var response struct {
		Issues []struct {
			Key string `json:"key"`
		} `json:"issues"`
	}
	if err := s.client.Get(ctx, apiPath("search"), params, &response); err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(response.Issues))
	for _, hit := range response.Issues {
		doc, err := s.GetIssue(ctx, hit.Key, "")
		if err != nil {
			return nil, fmt.Errorf("jira: fetch search hit %s: %w", hit.Key, err)
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}
