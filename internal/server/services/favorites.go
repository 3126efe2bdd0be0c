package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkowalski/quoteshelf/internal/common"
	"github.com/dkowalski/quoteshelf/internal/server/models"
	"github.com/dkowalski/quoteshelf/internal/server/repositories/favorites"
	"github.com/dkowalski/quoteshelf/internal/server/repositories/posts"
)

// FavoriteService implements the authenticated favorite association.
// Guest favorites never reach the server; the client keeps them locally and
// re-submits them through Add when the guest logs in.
type FavoriteService struct {
	repo  favorites.Repository
	posts posts.Repository
}

func NewFavoriteService(repo favorites.Repository, postsRepo posts.Repository) *FavoriteService {
	return &FavoriteService{repo: repo, posts: postsRepo}
}

// List returns the user's favorited quotes.
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]*models.Post, error) {
	result, err := s.repo.ListPosts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return result, nil
}

// Add creates the (user, post) pair. A pair that already exists is reported
// as common.ErrConflict; idempotent callers may treat that as success.
func (s *FavoriteService) Add(ctx context.Context, userID, postID int64) error {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	if err := s.repo.Create(ctx, userID, postID); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return common.ErrConflict
		}
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	return nil
}

// Remove deletes the pair; a missing pair is common.ErrNotFound.
func (s *FavoriteService) Remove(ctx context.Context, userID, postID int64) error {
	if err := s.repo.Delete(ctx, userID, postID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return nil
}
