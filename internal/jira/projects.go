package jira

import "context"

// Projects lists projects visible to the configured token. Resource listing
// uses this to enumerate jira:// URIs.
func (s *Service) Projects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := s.client.Get(ctx, apiPath("project"), nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
