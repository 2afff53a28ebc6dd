package jira

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/atlmcp/mcp-atlassian/internal/markup"
)

// GetIssue fetches an issue and renders it as a structured text block with
// description, links, and comments inline.
func (s *Service) GetIssue(ctx context.Context, issueKey, expand string) (*Document, error) {
	if issueKey == "" {
		return nil, fmt.Errorf("jira: issue key required")
	}

	var params url.Values
	if expand != "" {
		params = url.Values{}
		params.Set("expand", expand)
	}

	var issue Issue
	if err := s.client.Get(ctx, apiPath("issue", url.PathEscape(issueKey)), params, &issue); err != nil {
		return nil, err
	}
	if issue.Key == "" {
		issue.Key = issueKey
	}

	doc := s.issueDocument(issue)
	return &doc, nil
}

// CreateIssue creates an issue. The identity fields are validated before any
// request goes out.
func (s *Service) CreateIssue(ctx context.Context, req CreateIssueRequest) (*CreateIssueResult, error) {
	if req.ProjectKey == "" {
		return nil, fmt.Errorf("jira: project key required")
	}
	if req.IssueType == "" {
		return nil, fmt.Errorf("jira: issue type required")
	}
	if req.Summary == "" {
		return nil, fmt.Errorf("jira: summary required")
	}

	fields := make(map[string]any, len(req.Fields)+4)
	for k, v := range req.Fields {
		fields[k] = v
	}
	fields["project"] = map[string]string{"key": req.ProjectKey}
	fields["summary"] = req.Summary
	fields["issuetype"] = map[string]string{"name": req.IssueType}
	fields["description"] = req.Description

	var created CreateIssueResult
	if err := s.client.Post(ctx, apiPath("issue"), map[string]any{"fields": fields}, &created); err != nil {
		return nil, err
	}

	created.Link = s.baseURL() + "/browse/" + created.Key
	return &created, nil
}

// issueDocument renders an issue payload into a document.
func (s *Service) issueDocument(issue Issue) Document {
	fields := issue.Fields
	createdDate := markup.NormalizeDate(fields.Created)

	commentLines := make([]string, 0, len(fields.Comment.Comments))
	for _, c := range fields.Comment.Comments {
		author := c.Author.DisplayName
		if author == "" {
			author = "Unknown"
		}
		line := fmt.Sprintf("%s - %s: %s", markup.NormalizeDate(c.Created), author, markup.CleanJiraText(c.Body))
		commentLines = append(commentLines, line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Issue: %s\n", issue.Key)
	fmt.Fprintf(&b, "Title: %s\n", fields.Summary)
	fmt.Fprintf(&b, "Type: %s\n", fields.IssueType.Name)
	fmt.Fprintf(&b, "Status: %s\n", fields.Status.Name)
	fmt.Fprintf(&b, "Created: %s\n\n", createdDate)
	fmt.Fprintf(&b, "Description:\n%s\n\n", markup.CleanJiraText(fields.Description))
	fmt.Fprintf(&b, "Links: \n%s\n\n", formatIssueLinks(fields.IssueLinks))
	b.WriteString("Comments:\n")
	b.WriteString(strings.Join(commentLines, "\n"))

	priority := "None"
	if fields.Priority != nil && fields.Priority.Name != "" {
		priority = fields.Priority.Name
	}

	return Document{
		Content: b.String(),
		Metadata: IssueMetadata{
			Key:         issue.Key,
			Title:       fields.Summary,
			Type:        fields.IssueType.Name,
			Status:      fields.Status.Name,
			CreatedDate: createdDate,
			Priority:    priority,
			Link:        s.baseURL() + "/browse/" + issue.Key,
		},
	}
}

// formatIssueLinks groups links by their inward relation name, keeping the
// order relations first appear in.
func formatIssueLinks(links []IssueLink) string {
	if len(links) == 0 {
		return ""
	}

	order := make([]string, 0, len(links))
	grouped := make(map[string][]string)
	for _, link := range links {
		relation := link.Type.Inward
		if relation == "" {
			relation = "Unknown"
		}
		key := "UNKNOWN"
		if link.InwardIssue != nil && link.InwardIssue.Key != "" {
			key = link.InwardIssue.Key
		}
		if _, seen := grouped[relation]; !seen {
			order = append(order, relation)
		}
		grouped[relation] = append(grouped[relation], key)
	}

	lines := make([]string, 0, len(order))
	for _, relation := range order {
		lines = append(lines, relation+": "+strings.Join(grouped[relation], ", "))
	}
	return "\n" + strings.Join(lines, "\n")
}
