package driven

import (
	"context"

	"github.com/ericfisherdev/gitexplorer/internal/domain/model"
)

// RepositoryAPI defines the driven port for the read-only GitHub REST calls the
// dashboard and detail view need. fullName is always "owner/name".
type RepositoryAPI interface {
	// GetRepository fetches repository metadata.
	GetRepository(ctx context.Context, fullName string) (*model.RepositoryDetail, error)
	// ListIssues fetches the repository's issue collection in a single request.
	ListIssues(ctx context.Context, fullName string) ([]model.Issue, error)
}
