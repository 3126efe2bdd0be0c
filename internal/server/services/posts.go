package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dkowalski/quoteshelf/internal/common"
	"github.com/dkowalski/quoteshelf/internal/dbx"
	"github.com/dkowalski/quoteshelf/internal/server/auth"
	"github.com/dkowalski/quoteshelf/internal/server/models"
	"github.com/dkowalski/quoteshelf/internal/server/repositories/posts"
)

// PostInput carries the writable fields of a quote.
type PostInput struct {
	Content string
	Author  string
	Source  *string
	Private bool
}

// Filters is the facet response for the browse UI: authors and sources with
// per-viewer post counts.
type Filters struct {
	Authors []*models.AuthorCount
	Sources []*models.SourceCount
}

// PostService implements quote creation, mutation, listing, and facets.
type PostService struct {
	conn    *sql.DB
	repo    posts.Repository
	repoFor func(dbx.DBTX) posts.Repository
}

// NewPostService binds the service to the shared connection and a
// repository factory. The factory is called with the connection for plain
// reads and with the open transaction inside mutations, so author/source
// upserts commit atomically with the post row.
func NewPostService(conn *sql.DB, repoFor func(dbx.DBTX) posts.Repository) *PostService {
	return &PostService{
		conn:    conn,
		repo:    repoFor(conn),
		repoFor: repoFor,
	}
}

func (s *PostService) validate(in PostInput) error {
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content is required", common.ErrValidation)
	}
	if strings.TrimSpace(in.Author) == "" {
		return fmt.Errorf("%w: author is required", common.ErrValidation)
	}
	if in.Source != nil && strings.TrimSpace(*in.Source) == "" {
		return fmt.Errorf("%w: source must not be blank", common.ErrValidation)
	}
	return nil
}

// Create stores a new quote owned by creatorID. The author and optional
// source are upserted by name/title in the same transaction as the post row.
func (s *PostService) Create(ctx context.Context, creatorID int64, in PostInput) (*models.Post, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	var created *models.Post

	err := dbx.WithTx(ctx, s.conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repoFor(tx)

		authorID, err := repo.UpsertAuthor(ctx, strings.TrimSpace(in.Author))
		if err != nil {
			return err
		}

		var sourceID *int64
		if in.Source != nil {
			id, err := repo.UpsertSource(ctx, strings.TrimSpace(*in.Source))
			if err != nil {
				return err
			}
			sourceID = &id
		}

		created, err = repo.Create(ctx, &models.Post{
			Content:   strings.TrimSpace(in.Content),
			AuthorID:  authorID,
			SourceID:  sourceID,
			CreatorID: &creatorID,
			Private:   in.Private,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	created.Author = strings.TrimSpace(in.Author)
	if in.Source != nil {
		source := strings.TrimSpace(*in.Source)
		created.Source = &source
	}

	return created, nil
}

// Get returns one quote if the viewer may read it.
func (s *PostService) Get(ctx context.Context, viewer *int64, id int64) (*models.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	if !auth.CanRead(viewer, post) {
		return nil, common.ErrForbidden
	}

	return post, nil
}

// Update rewrites a quote's content, author/source references, and
// visibility. Only the owner may; everyone else gets common.ErrForbidden.
func (s *PostService) Update(ctx context.Context, viewerID, id int64, in PostInput) (*models.Post, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	if !auth.CanMutate(viewerID, post) {
		return nil, common.ErrForbidden
	}

	err = dbx.WithTx(ctx, s.conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repoFor(tx)

		authorID, err := repo.UpsertAuthor(ctx, strings.TrimSpace(in.Author))
		if err != nil {
			return err
		}

		var sourceID *int64
		if in.Source != nil {
			id, err := repo.UpsertSource(ctx, strings.TrimSpace(*in.Source))
			if err != nil {
				return err
			}
			sourceID = &id
		}

		post.Content = strings.TrimSpace(in.Content)
		post.AuthorID = authorID
		post.SourceID = sourceID
		post.Private = in.Private

		return repo.Update(ctx, post)
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	post.Author = strings.TrimSpace(in.Author)
	if in.Source != nil {
		source := strings.TrimSpace(*in.Source)
		post.Source = &source
	} else {
		post.Source = nil
	}

	return post, nil
}

// Delete soft-deletes a quote. Owner only. The row persists but is excluded
// from every listing and count from now on.
func (s *PostService) Delete(ctx context.Context, viewerID, id int64) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	if !auth.CanMutate(viewerID, post) {
		return common.ErrForbidden
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	return nil
}

// List returns every quote the viewer may see, newest first.
func (s *PostService) List(ctx context.Context, viewer *int64) ([]*models.Post, error) {
	result, err := s.repo.List(ctx, posts.Scope{Viewer: viewer})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return result, nil
}

// Facets returns author and source counts under the same visibility scope
// as List, so the filter sidebar always agrees with the listing.
func (s *PostService) Facets(ctx context.Context, viewer *int64) (*Filters, error) {
	scope := posts.Scope{Viewer: viewer}

	authors, err := s.repo.CountByAuthor(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	sources, err := s.repo.CountBySource(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	return &Filters{Authors: authors, Sources: sources}, nil
}
