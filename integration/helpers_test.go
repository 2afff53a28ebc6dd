//go:build integration
// +build integration

package integration

import (
	"os"
	"testing"

	"github.com/atlmcp/mcp-atlassian/internal/atlassian"
	"github.com/atlmcp/mcp-atlassian/internal/config"
	"github.com/atlmcp/mcp-atlassian/internal/confluence"
	"github.com/atlmcp/mcp-atlassian/internal/jira"
)

// requireIntegration skips the test unless MCP_INTEGRATION is set.
func requireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("MCP_INTEGRATION") == "" {
		t.Skip("MCP_INTEGRATION not set; skipping integration tests")
	}
}

// setupConfluence builds a Confluence service from CONFLUENCE_URL and
// CONFLUENCE_API_TOKEN, skipping the test when either is missing.
func setupConfluence(t *testing.T) (*confluence.Service, string) {
	t.Helper()

	site := config.NormalizeURL(os.Getenv("CONFLUENCE_URL"))
	if site == "" {
		t.Skip("CONFLUENCE_URL not set")
	}

	token := os.Getenv("CONFLUENCE_API_TOKEN")
	if token == "" {
		t.Skip("CONFLUENCE_API_TOKEN not set")
	}

	client, err := atlassian.NewClient(site, token, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	return confluence.NewService(client), site
}

// setupJira builds a Jira service from JIRA_URL and JIRA_API_TOKEN, skipping
// the test when either is missing.
func setupJira(t *testing.T) (*jira.Service, string) {
	t.Helper()

	site := config.NormalizeURL(os.Getenv("JIRA_URL"))
	if site == "" {
		t.Skip("JIRA_URL not set")
	}

	token := os.Getenv("JIRA_API_TOKEN")
	if token == "" {
		t.Skip("JIRA_API_TOKEN not set")
	}

	client, err := atlassian.NewClient(site, token, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	return jira.NewService(client), site
}

// skipIfEmpty skips the test when the site returned nothing to work with.
func skipIfEmpty[T any](t *testing.T, items []T, itemType string) {
	t.Helper()
	if len(items) == 0 {
		t.Skipf("no %s found; cannot proceed with test", itemType)
	}
}
