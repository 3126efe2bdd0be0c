// Package services contains the application services behind the CLI:
// authentication (with guest-favorite reconciliation), quote browsing and
// editing, and favorites in both guest and authenticated modes.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkowalski/quoteshelf/internal/client/api"
	"github.com/dkowalski/quoteshelf/internal/client/session"
	"github.com/dkowalski/quoteshelf/internal/client/storage"
	"github.com/dkowalski/quoteshelf/internal/common"
)

// AuthService drives login, registration, and logout, and reconciles
// favorites collected while browsing as a guest into the account at the
// moment of authentication.
type AuthService struct {
	client  api.Client
	session *session.Manager
	store   storage.Repository
}

func NewAuthService(client api.Client, sess *session.Manager, store storage.Repository) *AuthService {
	return &AuthService{client: client, session: sess, store: store}
}

// Register creates an account and opens a session with the returned
// credential.
func (s *AuthService) Register(ctx context.Context, email, name, password string) error {
	res, err := s.client.Register(ctx, email, name, password)
	if err != nil {
		return err
	}
	return s.establish(ctx, res)
}

// Login authenticates and opens a session with the returned credential.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.establish(ctx, res)
}

// Logout ends the session and clears the cached credential.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.session.End(ctx)
}

// Restore resumes a persisted session at startup, if one survives.
func (s *AuthService) Restore(ctx context.Context) error {
	return s.session.Restore(ctx)
}

func (s *AuthService) establish(ctx context.Context, res *api.AuthResult) error {
	identity := session.Identity{ID: res.User.ID, Email: res.User.Email, Name: res.User.Name}
	if err := s.session.Begin(ctx, res.Token, identity); err != nil {
		return err
	}
	return s.mergeGuestFavorites(ctx, res.Token)
}

// mergeGuestFavorites re-submits every locally stored guest favorite as a
// server-side create. A duplicate pair answers conflict, which counts as
// success. The local slot is cleared only after every id went through, so a
// partial failure leaves the remainder for the next login.
func (s *AuthService) mergeGuestFavorites(ctx context.Context, token string) error {
	ids, err := loadGuestFavorites(ctx, s.store)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	for _, id := range ids {
		err := s.client.AddFavorite(ctx, token, id)
		if err != nil && !errors.Is(err, common.ErrConflict) && !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("merging guest favorites: %w", err)
		}
	}

	return s.store.Delete(ctx, storage.SlotGuestFavorites)
}

// loadGuestFavorites reads the locally stored favorite ids of an
// unauthenticated session. An empty slot reads as an empty list.
func loadGuestFavorites(ctx context.Context, store storage.Repository) ([]int64, error) {
	raw, err := store.Get(ctx, storage.SlotGuestFavorites)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func saveGuestFavorites(ctx context.Context, store storage.Repository, ids []int64) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return store.Set(ctx, storage.SlotGuestFavorites, raw)
}
