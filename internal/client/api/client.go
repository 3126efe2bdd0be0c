// Package api implements the HTTP client for the Quoteshelf backend.
// Response statuses are folded back into the shared error taxonomy so the
// rest of the client never inspects HTTP codes.
package api

import (
	"context"
)

// User is the identity returned by the auth endpoints.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResult carries the issued credential and the identity it names.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Post mirrors the server's quote DTO.
type Post struct {
	ID        int64   `json:"id"`
	Content   string  `json:"content"`
	Author    string  `json:"author"`
	Source    *string `json:"source,omitempty"`
	CreatorID *int64  `json:"creatorId,omitempty"`
	Private   bool    `json:"private"`
}

// PostInput carries the writable fields of a quote.
type PostInput struct {
	Content string  `json:"content"`
	Author  string  `json:"author"`
	Source  *string `json:"source,omitempty"`
	Private bool    `json:"private"`
}

// Facet is one author or source entry with its per-viewer post count.
type Facet struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Filters is the facet sidebar payload.
type Filters struct {
	Authors []Facet `json:"authors"`
	Sources []Facet `json:"sources"`
}

// Client is the remote surface consumed by the client services. The token
// argument is "" for unauthenticated calls. Errors are sentinels from
// internal/common.
type Client interface {
	Register(ctx context.Context, email, name, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	ListPosts(ctx context.Context, token string) ([]Post, error)
	GetPost(ctx context.Context, token string, id int64) (*Post, error)
	CreatePost(ctx context.Context, token string, in PostInput) (*Post, error)
	UpdatePost(ctx context.Context, token string, id int64, in PostInput) (*Post, error)
	DeletePost(ctx context.Context, token string, id int64) error

	ListFavorites(ctx context.Context, token string) ([]Post, error)
	AddFavorite(ctx context.Context, token string, postID int64) error
	RemoveFavorite(ctx context.Context, token string, postID int64) error

	Filters(ctx context.Context, token string) (*Filters, error)
	Ping(ctx context.Context) error
}
