// Package favorites provides persistence for user/post favorite pairs.
package favorites

import (
	"context"

	"github.com/dkowalski/quoteshelf/internal/server/models"
)

// Repository is the storage surface consumed by the favorites service.
// Create returns common.ErrConflict for a duplicate pair; Delete returns
// common.ErrNotFound when the pair does not exist.
type Repository interface {
	Create(ctx context.Context, userID, postID int64) error
	Delete(ctx context.Context, userID, postID int64) error
	ListPosts(ctx context.Context, userID int64) ([]*models.Post, error)
}
