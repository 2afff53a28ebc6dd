package confluence

// Content is the wire shape of a Confluence content payload. Pages and
// comments share it; which nested fields are populated depends on the
// expand parameter sent with the request.
type Content struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Title  string `json:"title"`
	Space  struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"space"`
	Version struct {
		Number int    `json:"number"`
		When   string `json:"when"`
		By     struct {
			DisplayName string `json:"displayName"`
		} `json:"by"`
	} `json:"version"`
	Body struct {
		Storage struct {
			Value string `json:"value"`
		} `json:"storage"`
		View struct {
			Value string `json:"value"`
		} `json:"view"`
	} `json:"body"`
}

// Space is the wire shape of a space summary.
type Space struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description struct {
		Plain struct {
			Value string `json:"value"`
		} `json:"plain"`
	} `json:"description"`
}

// searchItem is the wire shape of one /rest/api/search result.
type searchItem struct {
	Content struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"content"`
	Title                 string `json:"title"`
	Excerpt               string `json:"excerpt"`
	URL                   string `json:"url"`
	LastModified          string `json:"lastModified"`
	ResultGlobalContainer struct {
		Title string `json:"title"`
	} `json:"resultGlobalContainer"`
}

// SearchResult is one CQL page hit shaped for tool output.
type SearchResult struct {
	PageID       string `json:"page_id"`
	Title        string `json:"title"`
	Space        string `json:"space"`
	URL          string `json:"url"`
	LastModified string `json:"last_modified"`
	Type         string `json:"type"`
	Excerpt      string `json:"excerpt"`
}

// PageMetadata describes a fetched page. The optional fields are filled
// only when the underlying request expanded them.
type PageMetadata struct {
	PageID       string `json:"page_id"`
	Title        string `json:"title"`
	Version      int    `json:"version"`
	URL          string `json:"url"`
	SpaceKey     string `json:"space_key"`
	AuthorName   string `json:"author_name,omitempty"`
	SpaceName    string `json:"space_name,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

// Document pairs rendered markdown content with page metadata. Tools and
// resources both consume this shape, so a page reads identically through
// either surface.
type Document struct {
	Content  string       `json:"content"`
	Metadata PageMetadata `json:"metadata"`
}

// Comment is one page comment shaped for tool output.
type Comment struct {
	Author  string `json:"author"`
	Created string `json:"created"`
	Content string `json:"content"`
}
