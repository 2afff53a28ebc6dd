// Package jira wraps the Jira Server REST API and shapes issues for MCP tool
// and resource output.
package jira

import (
	"strings"

	"github.com/atlmcp/mcp-atlassian/internal/atlassian"
)

const (
	apiPrefix = "/rest/api/2"

	defaultLimit = 10

	// excerptLimit bounds the content preview attached to search hits.
	excerptLimit = 500
)

// Service exposes the Jira operations backing the MCP tools and resources.
// A nil Service means Jira was not configured.
type Service struct {
	client *atlassian.Client
}

// NewService wraps an authenticated client.
func NewService(client *atlassian.Client) *Service {
	return &Service{client: client}
}

// baseURL returns the site base for building browse links.
func (s *Service) baseURL() string {
	if s.client == nil {
		return ""
	}
	return s.client.BaseURL()
}

// apiPath joins path segments under the Jira v2 REST prefix.
func apiPath(parts ...string) string {
	if len(parts) == 0 {
		return apiPrefix
	}
	return apiPrefix + "/" + strings.Join(parts, "/")
}
