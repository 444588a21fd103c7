package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ericfisherdev/gitexplorer/internal/application"
	"github.com/ericfisherdev/gitexplorer/internal/domain/model"
	"github.com/ericfisherdev/gitexplorer/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the JSON API.
type Handler struct {
	list   *application.RepositoryList
	api    driven.RepositoryAPI
	msgs   application.Messages
	logger *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. The tracked list
// is shared by every request; detail views are built per request.
func NewHandler(
	list *application.RepositoryList,
	api driven.RepositoryAPI,
	msgs application.Messages,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		list:   list,
		api:    api,
		msgs:   msgs,
		logger: logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/repos", h.ListRepositories)
	mux.HandleFunc("POST /api/v1/repos", h.AddRepository)
	mux.HandleFunc("GET /api/v1/repository/{identifier...}", h.GetRepository)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// ListRepositories returns the tracked repositories in insertion order.
func (h *Handler) ListRepositories(w http.ResponseWriter, _ *http.Request) {
	repos := h.list.Repositories()

	resp := make([]RepositoryResponse, 0, len(repos))
	for _, repo := range repos {
		resp = append(resp, toRepositoryResponse(repo))
	}

	writeJSON(w, http.StatusOK, resp)
}

// AddRepository resolves full_name through GitHub and appends it to the tracked list.
func (h *Handler) AddRepository(w http.ResponseWriter, r *http.Request) {
	var req AddRepositoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.list.Add(r.Context(), req.FullName)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, application.ErrEmptyIdentifier) {
			status = http.StatusBadRequest
		}
		writeError(w, status, application.ErrorMessage(err, h.msgs))
		return
	}

	writeJSON(w, http.StatusCreated, toRepositoryResponse(record))
}

// GetRepository returns metadata and one page of issues for the repository named
// by the trailing path. Fetch failures leave the respective part empty.
func (h *Handler) GetRepository(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("identifier")
	if identifier == "" {
		writeError(w, http.StatusBadRequest, h.msgs.EmptyIdentifier)
		return
	}

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid page: expected an integer >= 1")
			return
		}
		page = parsed
	}

	viewer := application.NewDetailViewer(h.api, h.logger)
	viewer.Open(r.Context(), identifier)
	state := viewer.Snapshot()

	annotate(r.Context(),
		"identifier", identifier,
		"repository_loaded", state.Repository != nil,
		"issues_loaded", state.IssuesLoaded,
	)

	issuePage := state.Page
	if state.IssuesLoaded {
		issuePage = model.PaginateIssues(state.Issues, page, model.IssuePageSize)
	}

	writeJSON(w, http.StatusOK, toDetailResponse(state, issuePage))
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
