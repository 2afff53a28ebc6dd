// Package confluence wraps the Confluence Server REST API and shapes page
// content for MCP tool and resource output.
package confluence

import (
	"strings"

	"github.com/atlmcp/mcp-atlassian/internal/atlassian"
)

const (
	apiPrefix = "/rest/api"

	defaultLimit = 10
)

// Service exposes the Confluence operations backing the MCP tools and
// resources. A nil Service means Confluence was not configured.
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

// apiPath joins path segments under the Confluence REST prefix.
func apiPath(parts ...string) string {
	if len(parts) == 0 {
		return apiPrefix
	}
	return apiPrefix + "/" + strings.Join(parts, "/")
}
