package jira

// Issue is the wire shape of GET /rest/api/2/issue/{key}.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Self   string      `json:"self"`
	Fields IssueFields `json:"fields"`
}

// IssueFields holds the subset of issue fields the server renders.
type IssueFields struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Created     string `json:"created"`
	IssueType   struct {
		Name string `json:"name"`
	} `json:"issuetype"`
	Status struct {
		Name string `json:"name"`
	} `json:"status"`
	Priority *struct {
		Name string `json:"name"`
	} `json:"priority"`
	Comment struct {
		Comments []IssueComment `json:"comments"`
	} `json:"comment"`
	IssueLinks []IssueLink `json:"issuelinks"`
}

// IssueComment is one comment on an issue.
type IssueComment struct {
	Body    string `json:"body"`
	Created string `json:"created"`
	Author  struct {
		DisplayName string `json:"displayName"`
	} `json:"author"`
}

// IssueLink is one link between two issues.
type IssueLink struct {
	Type struct {
		Name    string `json:"name"`
		Inward  string `json:"inward"`
		Outward string `json:"outward"`
	} `json:"type"`
	InwardIssue  *LinkedIssue `json:"inwardIssue"`
	OutwardIssue *LinkedIssue `json:"outwardIssue"`
}

// LinkedIssue identifies the far side of an issue link.
type LinkedIssue struct {
	Key string `json:"key"`
}

// IssueMetadata describes a fetched issue.
type IssueMetadata struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	CreatedDate string `json:"created_date"`
	Priority    string `json:"priority"`
	Link        string `json:"link"`
}

// Document pairs a rendered issue body with its metadata. Tools and
// resources both consume this shape, so an issue reads identically through
// either surface.
type Document struct {
	Content  string        `json:"content"`
	Metadata IssueMetadata `json:"metadata"`
}

// SearchResult is one JQL hit shaped for tool output.
type SearchResult struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	CreatedDate string `json:"created_date"`
	Priority    string `json:"priority"`
	Link        string `json:"link"`
	Excerpt     string `json:"excerpt"`
}

// ProjectIssue is one row of a project listing. It carries less than a
// search hit: no priority and no excerpt.
type ProjectIssue struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	CreatedDate string `json:"created_date"`
	Link        string `json:"link"`
}

// Project is the wire shape of a project summary.
type Project struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// IssueLinkType describes one available link relationship.
type IssueLinkType struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Inward  string `json:"inward"`
	Outward string `json:"outward"`
}

// CreateIssueRequest carries the fields for a new issue. Extra fields merge
// into the payload before the named ones, so the named ones always win.
type CreateIssueRequest struct {
	ProjectKey  string
	IssueType   string
	Summary     string
	Description string
	Fields      map[string]any
}

// CreateIssueResult reports a created issue.
type CreateIssueResult struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
	Link string `json:"link"`
}

// CreateIssueLinkRequest carries the fields for a new issue link.
type CreateIssueLinkRequest struct {
	LinkType     string
	InwardIssue  string
	OutwardIssue string
	Comment      string
}
