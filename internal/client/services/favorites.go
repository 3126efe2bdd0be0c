package services

import (
	"context"
	"errors"

	"github.com/dkowalski/quoteshelf/internal/client/api"
	"github.com/dkowalski/quoteshelf/internal/client/session"
	"github.com/dkowalski/quoteshelf/internal/client/storage"
	"github.com/dkowalski/quoteshelf/internal/common"
)

// FavoriteService keeps favorites in two modes. Authenticated, it talks to
// the server. As a guest, favorites live only in the local guest slot and
// are merged into the account at login (see AuthService).
type FavoriteService struct {
	client  api.Client
	session *session.Manager
	store   storage.Repository
}

func NewFavoriteService(client api.Client, sess *session.Manager, store storage.Repository) *FavoriteService {
	return &FavoriteService{client: client, session: sess, store: store}
}

// Add marks a post favorite. Adding a post that is already favorite is
// treated as success in both modes.
func (s *FavoriteService) Add(ctx context.Context, postID int64) error {
	if token := s.session.Token(); token != "" {
		err := s.client.AddFavorite(ctx, token, postID)
		if errors.Is(err, common.ErrConflict) {
			return nil
		}
		return err
	}

	ids, err := loadGuestFavorites(ctx, s.store)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == postID {
			return nil
		}
	}
	return saveGuestFavorites(ctx, s.store, append(ids, postID))
}

// Remove unmarks a post. Removing a post that was never favorite reports
// common.ErrNotFound in both modes.
func (s *FavoriteService) Remove(ctx context.Context, postID int64) error {
	if token := s.session.Token(); token != "" {
		return s.client.RemoveFavorite(ctx, token, postID)
	}

	ids, err := loadGuestFavorites(ctx, s.store)
	if err != nil {
		return err
	}

	kept := ids[:0]
	found := false
	for _, id := range ids {
		if id == postID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return common.ErrNotFound
	}
	if len(kept) == 0 {
		return s.store.Delete(ctx, storage.SlotGuestFavorites)
	}
	return saveGuestFavorites(ctx, s.store, kept)
}

// List returns the favorite posts. Guest mode resolves each locally stored
// id against the public view; posts that vanished or turned private are
// silently dropped.
func (s *FavoriteService) List(ctx context.Context) ([]api.Post, error) {
	if token := s.session.Token(); token != "" {
		return s.client.ListFavorites(ctx, token)
	}

	ids, err := loadGuestFavorites(ctx, s.store)
	if err != nil {
		return nil, err
	}

	posts := []api.Post{}
	for _, id := range ids {
		post, err := s.client.GetPost(ctx, "", id)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrForbidden) {
				continue
			}
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, nil
}
