package mcp

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/atlmcp/mcp-atlassian/internal/confluence"
	"github.com/atlmcp/mcp-atlassian/internal/jira"
)

func readRequest(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func resourceText(t *testing.T, contents []mcp.ResourceContents) string {
	t.Helper()
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("unexpected contents type %T", contents[0])
	}
	return text.Text
}

func TestParseResourceURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		uri  string
		want resourceRef
	}{
		{"confluence://ENG", resourceRef{kind: resourceSpace, space: "ENG"}},
		{"confluence://ENG/pages/Runbook", resourceRef{kind: resourcePage, space: "ENG", title: "Runbook"}},
		{"confluence://ENG/pages/Release%20Plan", resourceRef{kind: resourcePage, space: "ENG", title: "Release Plan"}},
		{"jira://PROJ", resourceRef{kind: resourceProject, project: "PROJ"}},
		{"jira://PROJ/issues/PROJ-123", resourceRef{kind: resourceIssue, project: "PROJ", issueKey: "PROJ-123"}},
	}

	for _, tc := range tests {
		t.Run(tc.uri, func(t *testing.T) {
			t.Parallel()
			got, err := parseResourceURI(tc.uri)
			if err != nil {
				t.Fatalf("parseResourceURI(%q) error: %v", tc.uri, err)
			}
			if got != tc.want {
				t.Errorf("parseResourceURI(%q) = %+v, want %+v", tc.uri, got, tc.want)
			}
		})
	}

	invalid := []string{
		"confluence://",
		"confluence://ENG/pages",
		"confluence://ENG/pages/",
		"jira://",
		"jira://PROJ/wrong/PROJ-1",
		"jira://PROJ/issues/",
		"https://example.com/page",
		"",
	}
	for _, uri := range invalid {
		if _, err := parseResourceURI(uri); err == nil {
			t.Errorf("parseResourceURI(%q) should fail", uri)
		}
	}
}

func TestReadResourceUnconfiguredBackend(t *testing.T) {
	t.Parallel()

	handler := &resourceHandler{}

	_, err := handler.read(context.Background(), readRequest("confluence://ENG"))
	if err == nil || err.Error() != confluenceNotConfigured {
		t.Errorf("confluence read error = %v, want %q", err, confluenceNotConfigured)
	}

	_, err = handler.read(context.Background(), readRequest("jira://PROJ"))
	if err == nil || err.Error() != jiraNotConfigured {
		t.Errorf("jira read error = %v, want %q", err, jiraNotConfigured)
	}
}

func TestReadSpaceRendersPageSections(t *testing.T) {
	t.Parallel()

	svc := newConfluenceService(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusOK, map[string]any{
			"results": []map[string]any{
				{
					"id":      "1",
					"title":   "Home",
					"version": map[string]any{"number": 1},
					"body":    map[string]any{"storage": map[string]any{"value": "<p>welcome</p>"}},
				},
				{
					"id":      "2",
					"title":   "FAQ",
					"version": map[string]any{"number": 4},
					"body":    map[string]any{"storage": map[string]any{"value": "<p>answers</p>"}},
				},
			},
		}), nil
	})
	handler := &resourceHandler{deps: Dependencies{Confluence: svc}}

	contents, err := handler.read(context.Background(), readRequest("confluence://ENG"))
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	want := "# Home\n\nwelcome\n---\n\n# FAQ\n\nanswers\n---"
	if got := resourceText(t, contents); got != want {
		t.Errorf("space text = %q, want %q", got, want)
	}
}

func TestReadPageByTitleResource(t *testing.T) {
	t.Parallel()

	svc := newConfluenceService(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("title") != "Release Plan" {
			t.Errorf("title = %q, want unescaped", req.URL.Query().Get("title"))
		}
		return jsonResponse(t, http.StatusOK, map[string]any{
			"results": []map[string]any{
				{
					"id":      "777",
					"title":   "Release Plan",
					"version": map[string]any{"number": 3},
					"body":    map[string]any{"storage": map[string]any{"value": "<p>ship in june</p>"}},
				},
			},
		}), nil
	})
	handler := &resourceHandler{deps: Dependencies{Confluence: svc}}

	contents, err := handler.read(context.Background(), readRequest("confluence://ENG/pages/Release%20Plan"))
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if got := resourceText(t, contents); !strings.Contains(got, "ship in june") {
		t.Errorf("page text = %q", got)
	}
}

func TestReadPageByTitleNotFound(t *testing.T) {
	t.Parallel()

	svc := newConfluenceService(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusOK, map[string]any{"results": []any{}}), nil
	})
	handler := &resourceHandler{deps: Dependencies{Confluence: svc}}

	_, err := handler.read(context.Background(), readRequest("confluence://ENG/pages/Missing"))
	if err == nil || !strings.Contains(err.Error(), "page not found") {
		t.Errorf("err = %v, want page not found", err)
	}
}

func TestReadProjectRendersIssueSections(t *testing.T) {
	t.Parallel()

	svc := newJiraService(t, func(req *http.Request) (*http.Response, error) {
		switch {
		case req.URL.Path == "/rest/api/2/search":
			return jsonResponse(t, http.StatusOK, map[string]any{
				"issues": []map[string]any{{"key": "PROJ-1"}},
			}), nil
		default:
			return jsonResponse(t, http.StatusOK, map[string]any{
				"key": "PROJ-1",
				"fields": map[string]any{
					"summary":   "First issue",
					"created":   "2024-03-05T10:00:00.000+0000",
					"issuetype": map[string]any{"name": "Task"},
					"status":    map[string]any{"name": "Open"},
				},
			}), nil
		}
	})
	handler := &resourceHandler{deps: Dependencies{Jira: svc}}

	contents, err := handler.read(context.Background(), readRequest("jira://PROJ"))
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	got := resourceText(t, contents)
	if !strings.HasPrefix(got, "# PROJ-1: First issue\n\n") {
		t.Errorf("project text should open with the issue heading, got %q", got)
	}
	if !strings.HasSuffix(got, "\n---") {
		t.Errorf("project text should close each section with a rule, got %q", got)
	}
}

func TestIssueReadsSameThroughToolAndResource(t *testing.T) {
	t.Parallel()

	fn := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusOK, issueFixture()), nil
	})

	svc := newJiraService(t, fn)
	handler := &resourceHandler{deps: Dependencies{Jira: svc}}
	jt := &JiraTools{service: svc}

	contents, err := handler.read(context.Background(), readRequest("jira://PROJ/issues/PROJ-123"))
	if err != nil {
		t.Fatalf("resource read error: %v", err)
	}
	viaResource := resourceText(t, contents)

	res, err := jt.handleGetIssue(context.Background(), mcp.CallToolRequest{}, JiraGetIssueArgs{IssueKey: "PROJ-123"})
	if err != nil {
		t.Fatalf("tool call error: %v", err)
	}
	result, ok := res.StructuredContent.(JiraIssueResult)
	if !ok {
		t.Fatalf("unexpected structured content type %T", res.StructuredContent)
	}

	if viaResource != result.Content {
		t.Errorf("resource and tool render differently:\nresource: %q\ntool:     %q", viaResource, result.Content)
	}
}

func TestRegisterResourcesFetchesBackends(t *testing.T) {
	t.Parallel()

	var spacesListed, projectsListed bool
	confluenceSvc := newConfluenceService(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == "/rest/api/space" {
			spacesListed = true
		}
		return jsonResponse(t, http.StatusOK, map[string]any{
			"results": []map[string]any{{"key": "ENG", "name": "Engineering"}},
		}), nil
	})
	jiraSvc := newJiraService(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == "/rest/api/2/project" {
			projectsListed = true
		}
		return jsonResponse(t, http.StatusOK, []map[string]any{
			{"id": "1", "key": "PROJ", "name": "Platform"},
		}), nil
	})

	srv := NewServer("0.1.0", Dependencies{Confluence: confluenceSvc, Jira: jiraSvc})
	RegisterResources(context.Background(), srv, Dependencies{Confluence: confluenceSvc, Jira: jiraSvc})

	if !spacesListed {
		t.Error("expected confluence spaces to be listed during registration")
	}
	if !projectsListed {
		t.Error("expected jira projects to be listed during registration")
	}
}

func issueFixture() map[string]any {
	return map[string]any{
		"key": "PROJ-123",
		"fields": map[string]any{
			"summary":     "Fix the flaky test",
			"description": "It fails on slow runners.",
			"created":     "2024-03-05T10:00:00.000+0000",
			"issuetype":   map[string]any{"name": "Bug"},
			"status":      map[string]any{"name": "Open"},
			"priority":    map[string]any{"name": "High"},
		},
	}
}
