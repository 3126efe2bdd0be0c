// Package users provides persistence for registered identities.
package users

import (
	"context"

	"github.com/dkowalski/quoteshelf/internal/server/models"
)

// Repository is the storage surface consumed by the user service.
// Implementations return common.ErrNotFound for missing rows and
// common.ErrConflict for duplicate emails.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
