package confluence

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/atlmcp/mcp-atlassian/internal/markup"
)

// Search runs a CQL query and returns page hits. Non-page results are
// filtered out. Backend failures are returned to the caller rather than
// collapsed into an empty list.
func (s *Service) Search(ctx context.Context, cql string, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(cql) == "" {
		return nil, fmt.Errorf("confluence: cql query required")
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{}
	params.Set("cql", cql)
	params.Set("limit", strconv.Itoa(limit))

	var response struct {
		Results []searchItem `json:"results"`
	}
	if err := s.client.Get(ctx, apiPath("search"), params, &response); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(response.Results))
	for _, item := range response.Results {
		if item.Content.Type != "page" {
			continue
		}
		results = append(results, SearchResult{
			PageID:       item.Content.ID,
			Title:        item.Title,
			Space:        item.ResultGlobalContainer.Title,
			URL:          s.baseURL() + item.URL,
			LastModified: markup.NormalizeDate(item.LastModified),
			Type:         item.Content.Type,
			Excerpt:      item.Excerpt,
		})
	}
	return results, nil
}
