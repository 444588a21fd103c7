package model

// Owner identifies the account that owns a repository.
type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// RepositoryRecord is a GitHub repository as tracked on the dashboard. Its JSON
// form is the persisted form, so field tags must stay stable.
type RepositoryRecord struct {
	FullName    string `json:"full_name"`
	Owner       Owner  `json:"owner"`
	Description string `json:"description"`
}

// RepositoryDetail is a repository record plus the counters shown in the detail header.
type RepositoryDetail struct {
	RepositoryRecord
	StargazersCount int `json:"stargazers_count"`
	ForksCount      int `json:"forks_count"`
	OpenIssuesCount int `json:"open_issues_count"`
}

// Record returns the trackable part of the detail.
func (d RepositoryDetail) Record() RepositoryRecord {
	return d.RepositoryRecord
}
