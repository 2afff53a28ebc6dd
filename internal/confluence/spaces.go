package confluence

import (
	"context"
	"net/url"
	"strconv"
)

// Spaces lists spaces visible to the configured token. Resource listing
// uses this to enumerate confluence:// URIs.
func (s *Service) Spaces(ctx context.Context, start, limit int) ([]Space, error) {
	if start < 0 {
		start = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{}
	params.Set("start", strconv.Itoa(start))
	params.Set("limit", strconv.Itoa(limit))

	var response struct {
		Results []Space `json:"results"`
	}
	if err := s.client.Get(ctx, apiPath("space"), params, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}
