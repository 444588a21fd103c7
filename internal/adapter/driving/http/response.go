package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/gitexplorer/internal/application"
	"github.com/ericfisherdev/gitexplorer/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// OwnerResponse is the JSON representation of a repository owner.
type OwnerResponse struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// RepositoryResponse is the JSON representation of a tracked repository.
type RepositoryResponse struct {
	FullName    string        `json:"full_name"`
	Owner       OwnerResponse `json:"owner"`
	Description string        `json:"description"`
}

// RepositoryDetailResponse adds the detail header counters to a repository.
type RepositoryDetailResponse struct {
	RepositoryResponse
	StargazersCount int `json:"stargazers_count"`
	ForksCount      int `json:"forks_count"`
	OpenIssuesCount int `json:"open_issues_count"`
}

// IssueResponse is the JSON representation of a single issue.
type IssueResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
	Author  string `json:"author"`
}

// IssuePageResponse is one page of a repository's issues.
type IssuePageResponse struct {
	Page        int             `json:"page"`
	PageSize    int             `json:"page_size"`
	Total       int             `json:"total"`
	PrevEnabled bool            `json:"prev_enabled"`
	NextEnabled bool            `json:"next_enabled"`
	Issues      []IssueResponse `json:"issues"`
}

// DetailResponse is the JSON representation of the repository detail view.
// Repository is null and IssuesLoaded false when the respective fetch failed.
type DetailResponse struct {
	Identifier   string                    `json:"identifier"`
	Repository   *RepositoryDetailResponse `json:"repository"`
	IssuesLoaded bool                      `json:"issues_loaded"`
	Page         IssuePageResponse         `json:"page"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// AddRepositoryRequest is the JSON body for the add repository endpoint.
type AddRepositoryRequest struct {
	FullName string `json:"full_name"`
}

func toRepositoryResponse(r model.RepositoryRecord) RepositoryResponse {
	return RepositoryResponse{
		FullName:    r.FullName,
		Owner:       OwnerResponse{Login: r.Owner.Login, AvatarURL: r.Owner.AvatarURL},
		Description: r.Description,
	}
}

func toIssueResponse(i model.Issue) IssueResponse {
	return IssueResponse{
		ID:      i.ID,
		Title:   i.Title,
		HTMLURL: i.HTMLURL,
		Author:  i.User.Login,
	}
}

func toIssuePageResponse(p model.IssuePage) IssuePageResponse {
	issues := make([]IssueResponse, 0, len(p.Issues))
	for _, i := range p.Issues {
		issues = append(issues, toIssueResponse(i))
	}

	return IssuePageResponse{
		Page:        p.Page,
		PageSize:    p.PageSize,
		Total:       p.Total,
		PrevEnabled: p.PrevEnabled,
		NextEnabled: p.NextEnabled,
		Issues:      issues,
	}
}

// toDetailResponse renders state with page replacing the viewer's own page.
func toDetailResponse(state application.DetailState, page model.IssuePage) DetailResponse {
	resp := DetailResponse{
		Identifier:   state.Identifier,
		IssuesLoaded: state.IssuesLoaded,
		Page:         toIssuePageResponse(page),
	}

	if state.Repository != nil {
		resp.Repository = &RepositoryDetailResponse{
			RepositoryResponse: toRepositoryResponse(state.Repository.Record()),
			StargazersCount:    state.Repository.StargazersCount,
			ForksCount:         state.Repository.ForksCount,
			OpenIssuesCount:    state.Repository.OpenIssuesCount,
		}
	}

	return resp
}
