package services

import (
	"context"

	"github.com/dkowalski/quoteshelf/internal/client/api"
	"github.com/dkowalski/quoteshelf/internal/client/session"
)

// PostService proxies quote operations to the server, attaching the live
// credential when one exists. Browsing works logged out; mutations are
// refused server-side without a credential.
type PostService struct {
	client  api.Client
	session *session.Manager
}

func NewPostService(client api.Client, sess *session.Manager) *PostService {
	return &PostService{client: client, session: sess}
}

func (s *PostService) List(ctx context.Context) ([]api.Post, error) {
	return s.client.ListPosts(ctx, s.session.Token())
}

func (s *PostService) Get(ctx context.Context, id int64) (*api.Post, error) {
	return s.client.GetPost(ctx, s.session.Token(), id)
}

func (s *PostService) Create(ctx context.Context, in api.PostInput) (*api.Post, error) {
	return s.client.CreatePost(ctx, s.session.Token(), in)
}

func (s *PostService) Update(ctx context.Context, id int64, in api.PostInput) (*api.Post, error) {
	return s.client.UpdatePost(ctx, s.session.Token(), id, in)
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	return s.client.DeletePost(ctx, s.session.Token(), id)
}

func (s *PostService) Filters(ctx context.Context) (*api.Filters, error) {
	return s.client.Filters(ctx, s.session.Token())
}
