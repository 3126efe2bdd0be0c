// Package cli implements the interactive Quoteshelf client: a small REPL
// over the client services, with the session countdown surfaced in the
// prompt.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dkowalski/quoteshelf/internal/client/api"
	"github.com/dkowalski/quoteshelf/internal/client/config"
	"github.com/dkowalski/quoteshelf/internal/client/services"
	"github.com/dkowalski/quoteshelf/internal/client/session"
	"github.com/dkowalski/quoteshelf/internal/client/storage"

	_ "modernc.org/sqlite"
)

type App struct {
	config          *config.Config
	api             api.Client
	store           storage.Repository
	session         *session.Manager
	authService     *services.AuthService
	postService     *services.PostService
	favoriteService *services.FavoriteService
	reader          *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := storage.NewSQLiteRepository(db)
	apiClient := api.NewHTTPClient(c.ServerURL)

	sess := session.NewManager(store, c.TickInterval, func() {
		printlnFn("\nSession expired, please log in again.")
	})

	return &App{
		config:          c,
		api:             apiClient,
		store:           store,
		session:         sess,
		authService:     services.NewAuthService(apiClient, sess, store),
		postService:     services.NewPostService(apiClient, sess),
		favoriteService: services.NewFavoriteService(apiClient, sess, store),
		reader:          bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateActive
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
