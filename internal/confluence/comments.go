package confluence

import (
	"context"
	"fmt"
	"net/url"

	"github.com/atlmcp/mcp-atlassian/internal/markup"
)

// PageComments fetches all comments on a page, including nested replies,
// with each body rendered as markdown.
func (s *Service) PageComments(ctx context.Context, pageID string) ([]Comment, error) {
	if pageID == "" {
		return nil, fmt.Errorf("confluence: page id required")
	}

	params := url.Values{}
	params.Set("expand", "body.view,version")
	params.Set("depth", "all")

	var response struct {
		Results []Content `json:"results"`
	}
	path := apiPath("content", url.PathEscape(pageID), "child", "comment")
	if err := s.client.Get(ctx, path, params, &response); err != nil {
		return nil, err
	}

	comments := make([]Comment, 0, len(response.Results))
	for _, c := range response.Results {
		comments = append(comments, Comment{
			Author:  c.Version.By.DisplayName,
			Created: markup.NormalizeDate(c.Version.When),
			Content: markup.ToMarkdown(c.Body.View.Value, s.baseURL()),
		})
	}
	return comments, nil
}
