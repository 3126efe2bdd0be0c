// Package posts provides PostgreSQL-backed persistence for quotes and the
// visibility scope applied to every listing and aggregate query.
package posts

import (
	"context"

	"github.com/dkowalski/quoteshelf/internal/server/models"
)

// Scope restricts queries to what a viewer may see. A nil Viewer is a guest.
// Every query that lists, searches, or counts posts must go through the same
// scope so listings and facet counts never disagree.
type Scope struct {
	Viewer *int64
}

// Repository is the storage surface consumed by the post service.
type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	SoftDelete(ctx context.Context, id int64) error
	List(ctx context.Context, scope Scope) ([]*models.Post, error)
	CountByAuthor(ctx context.Context, scope Scope) ([]*models.AuthorCount, error)
	CountBySource(ctx context.Context, scope Scope) ([]*models.SourceCount, error)
	UpsertAuthor(ctx context.Context, name string) (int64, error)
	UpsertSource(ctx context.Context, title string) (int64, error)
}
