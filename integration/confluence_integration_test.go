//go:build integration
// +build integration

package integration

import (
	"context"
	"strings"
	"testing"
)

func TestConfluenceSpaces(t *testing.T) {
	requireIntegration(t)

	svc, site := setupConfluence(t)

	spaces, err := svc.Spaces(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("Spaces failed: %v", err)
	}

	if len(spaces) == 0 {
		t.Logf("no spaces returned from Confluence site %s", site)
		return
	}

	t.Logf("Found %d spaces on %s", len(spaces), site)
	for i, space := range spaces {
		desc := space.Description.Plain.Value
		if desc == "" {
			desc = "(no description)"
		}
		t.Logf("  [%d] %s - %s: %s", i+1, space.Key, space.Name, desc)
	}
}

func TestConfluenceSearch(t *testing.T) {
	requireIntegration(t)

	svc, site := setupConfluence(t)

	cql := "type=page ORDER BY lastmodified DESC"
	results, err := svc.Search(context.Background(), cql, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) == 0 {
		t.Logf("no pages found on %s with CQL: %s", site, cql)
		return
	}

	t.Logf("Found %d pages on %s", len(results), site)
	for i, result := range results {
		t.Logf("  [%d] %s (ID: %s) in %s, modified %s",
			i+1,
			result.Title,
			result.PageID,
			result.Space,
			result.LastModified,
		)
		if result.PageID == "" {
			t.Errorf("result %d has no page ID", i+1)
		}
	}
}

func TestConfluenceSearchAndGetPage(t *testing.T) {
	requireIntegration(t)

	svc, site := setupConfluence(t)

	results, err := svc.Search(context.Background(), "type=page ORDER BY lastmodified DESC", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	skipIfEmpty(t, results, "pages")

	pageID := results[0].PageID
	t.Logf("Retrieving page '%s' (ID: %s) from %s", results[0].Title, pageID, site)

	doc, err := svc.GetPage(context.Background(), pageID)
	if err != nil {
		t.Fatalf("GetPage failed for ID %s: %v", pageID, err)
	}

	t.Logf("  Title: %s", doc.Metadata.Title)
	t.Logf("  Version: %d", doc.Metadata.Version)
	t.Logf("  URL: %s", doc.Metadata.URL)
	t.Logf("  Content length: %d characters", len(doc.Content))

	if doc.Metadata.PageID != pageID {
		t.Errorf("metadata page ID = %s, want %s", doc.Metadata.PageID, pageID)
	}
	if doc.Content == "" {
		t.Logf("  Warning: page content is empty")
	}
}

func TestConfluenceSpacePagesAndTitleLookup(t *testing.T) {
	requireIntegration(t)

	svc, site := setupConfluence(t)

	spaces, err := svc.Spaces(context.Background(), 0, 1)
	if err != nil {
		t.Fatalf("Spaces failed: %v", err)
	}
	skipIfEmpty(t, spaces, "spaces")

	spaceKey := spaces[0].Key
	t.Logf("Listing pages in space %s on %s", spaceKey, site)

	docs, err := svc.SpacePages(context.Background(), spaceKey, 0, 5)
	if err != nil {
		t.Fatalf("SpacePages failed for space %s: %v", spaceKey, err)
	}
	skipIfEmpty(t, docs, "pages")

	for i, doc := range docs {
		t.Logf("  [%d] %s (ID: %s) v%d", i+1, doc.Metadata.Title, doc.Metadata.PageID, doc.Metadata.Version)
	}

	// The same page should be reachable by title.
	title := docs[0].Metadata.Title
	byTitle, err := svc.GetPageByTitle(context.Background(), spaceKey, title)
	if err != nil {
		t.Fatalf("GetPageByTitle failed for %q in %s: %v", title, spaceKey, err)
	}

	if byTitle.Metadata.PageID != docs[0].Metadata.PageID {
		t.Errorf("title lookup returned page %s, want %s", byTitle.Metadata.PageID, docs[0].Metadata.PageID)
	}
}

func TestConfluencePageComments(t *testing.T) {
	requireIntegration(t)

	svc, site := setupConfluence(t)

	results, err := svc.Search(context.Background(), "type=page ORDER BY lastmodified DESC", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	skipIfEmpty(t, results, "pages")

	pageID := results[0].PageID
	comments, err := svc.PageComments(context.Background(), pageID)
	if err != nil {
		t.Fatalf("PageComments failed for ID %s: %v", pageID, err)
	}

	t.Logf("Found %d comments on page %s at %s", len(comments), pageID, site)
	for i, comment := range comments {
		excerpt := comment.Content
		if len(excerpt) > 80 {
			excerpt = excerpt[:80] + "..."
		}
		t.Logf("  [%d] %s (%s): %s", i+1, comment.Author, comment.Created, strings.TrimSpace(excerpt))
	}
}
