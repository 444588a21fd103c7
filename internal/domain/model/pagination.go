package model

// IssuePageSize is the number of issues shown per page in the detail view.
const IssuePageSize = 5

// IssuePage is one page of an issue collection. Page 0 means the collection
// has not loaded yet; such a page has no issues and no navigation.
type IssuePage struct {
	Page        int
	PageSize    int
	Total       int
	PrevEnabled bool
	NextEnabled bool
	Issues      []Issue
}

// PaginateIssues derives the page view purely from page, pageSize and the
// collection length. A page past the end yields an empty Issues slice.
func PaginateIssues(issues []Issue, page, pageSize int) IssuePage {
	p := IssuePage{
		Page:     page,
		PageSize: pageSize,
		Total:    len(issues),
		Issues:   []Issue{},
	}
	if page < 1 || pageSize < 1 {
		return p
	}

	start := (page - 1) * pageSize
	end := page * pageSize
	if end > len(issues) {
		end = len(issues)
	}
	if start < end {
		p.Issues = append(p.Issues, issues[start:end]...)
	}

	p.PrevEnabled = page > 1
	p.NextEnabled = page*pageSize < len(issues)

	return p
}
