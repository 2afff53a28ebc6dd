package jira

import (
	"context"
	"fmt"
)

// CreateIssueLink links two issues. The comment, when provided, is attached
// to the link.
func (s *Service) CreateIssueLink(ctx context.Context, req CreateIssueLinkRequest) error {
	if req.LinkType == "" {
		return fmt.Errorf("jira: link type required")
	}
	if req.InwardIssue == "" {
		return fmt.Errorf("jira: inward issue key required")
	}
	if req.OutwardIssue == "" {
		return fmt.Errorf("jira: outward issue key required")
	}

	payload := map[string]any{
		"type":         map[string]string{"name": req.LinkType},
		"inwardIssue":  map[string]string{"key": req.InwardIssue},
		"outwardIssue": map[string]string{"key": req.OutwardIssue},
	}
	if req.Comment != "" {
		payload["comment"] = map[string]string{"body": req.Comment}
	}

	return s.client.Post(ctx, apiPath("issueLink"), payload, nil)
}

// IssueLinkTypes returns the link relationships available on the server.
func (s *Service) IssueLinkTypes(ctx context.Context) ([]IssueLinkType, error) {
	var response struct {
		IssueLinkTypes []IssueLinkType `json:"issueLinkTypes"`
	}
	if err := s.client.Get(ctx, apiPath("issueLinkType"), nil, &response); err != nil {
		return nil, err
	}
	return response.IssueLinkTypes, nil
}
