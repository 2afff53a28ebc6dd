package confluence

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/atlmcp/mcp-atlassian/internal/markup"
)

// ErrPageNotFound reports a title lookup that matched no page.
var ErrPageNotFound = errors.New("page not found")

// GetPage fetches a page by ID and renders its storage body as markdown.
func (s *Service) GetPage(ctx context.Context, pageID string) (*Document, error) {
	if pageID == "" {
		return nil, fmt.Errorf("confluence: page id required")
	}

	params := url.Values{}
	params.Set("expand", "body.storage,version,space")

	var page Content
	if err := s.client.Get(ctx, apiPath("content", url.PathEscape(pageID)), params, &page); err != nil {
		return nil, err
	}

	doc := s.pageDocument(page, page.Space.Key)
	doc.Metadata.AuthorName = page.Version.By.DisplayName
	doc.Metadata.SpaceName = page.Space.Name
	doc.Metadata.LastModified = markup.NormalizeDate(page.Version.When)
	return &doc, nil
}

// GetPageByTitle looks a page up by space key and exact title. Returns
// ErrPageNotFound when no page matches.
func (s *Service) GetPageByTitle(ctx context.Context, spaceKey, title string) (*Document, error) {
	if spaceKey == "" {
		return nil, fmt.Errorf("confluence: space key required")
	}
	if title == "" {
		return nil, fmt.Errorf("confluence: title required")
	}

	params := url.Values{}
	params.Set("spaceKey", spaceKey)
	params.Set("title", title)
	params.Set("expand", "body.storage,version")

	var response struct {
		Results []Content `json:"results"`
	}
	if err := s.client.Get(ctx, apiPath("content"), params, &response); err != nil {
		return nil, err
	}
	if len(response.Results) == 0 {
		return nil, fmt.Errorf("confluence: %w: %s", ErrPageNotFound, title)
	}

	doc := s.pageDocument(response.Results[0], spaceKey)
	return &doc, nil
}

// SpacePages lists pages in a space with their rendered bodies.
func (s *Service) SpacePages(ctx context.Context, spaceKey string, start, limit int) ([]Document, error) {
	if spaceKey == "" {
		return nil, fmt.Errorf("confluence: space key required")
	}
	if start < 0 {
		start = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{}
	params.Set("spaceKey", spaceKey)
	params.Set("type", "page")
	params.Set("start", strconv.Itoa(start))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("expand", "body.storage,version")

	var response struct {
		Results []Content `json:"results"`
	}
	if err := s.client.Get(ctx, apiPath("content"), params, &response); err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(response.Results))
	for _, page := range response.Results {
		docs = append(docs, s.pageDocument(page, spaceKey))
	}
	return docs, nil
}

// pageDocument renders a content payload into a document.
func (s *Service) pageDocument(page Content, spaceKey string) Document {
	return Document{
		Content: markup.ToMarkdown(page.Body.Storage.Value, s.baseURL()),
		Metadata: PageMetadata{
			PageID:   page.ID,
			Title:    page.Title,
			Version:  page.Version.Number,
			URL:      fmt.Sprintf("%s/wiki/spaces/%s/pages/%s", s.baseURL(), spaceKey, page.ID),
			SpaceKey: spaceKey,
		},
	}
}
