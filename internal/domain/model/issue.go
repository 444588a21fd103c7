package model

// IssueAuthor is the user who opened an issue.
type IssueAuthor struct {
	Login string `json:"login"`
}

// Issue is a single issue of a repository. The GitHub issues endpoint also
// returns pull requests; they are kept as-is.
type Issue struct {
	ID      int64       `json:"id"`
	Title   string      `json:"title"`
	HTMLURL string      `json:"html_url"`
	User    IssueAuthor `json:"user"`
}
