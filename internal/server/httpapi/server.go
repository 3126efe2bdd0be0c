// Package httpapi exposes the application services over HTTP. It owns
// transport concerns only: routing, credential extraction, request logging,
// and the single translation from domain errors to status codes.
package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/dkowalski/quoteshelf/internal/logging"
	"github.com/dkowalski/quoteshelf/internal/server/auth"
	"github.com/dkowalski/quoteshelf/internal/server/ratelimit"
	"github.com/dkowalski/quoteshelf/internal/server/services"
)

type Server struct {
	app       *fiber.App
	address   string
	logger    logging.Logger
	verifier  *auth.Verifier
	users     *services.UserService
	posts     *services.PostService
	favorites *services.FavoriteService
	limiter   *ratelimit.Limiter
}

func NewServer(
	address string,
	logger logging.Logger,
	verifier *auth.Verifier,
	users *services.UserService,
	posts *services.PostService,
	favorites *services.FavoriteService,
	limiter *ratelimit.Limiter,
) *Server {
	s := &Server{
		address:   address,
		logger:    logger.With("module", "http_server"),
		verifier:  verifier,
		users:     users,
		posts:     posts,
		favorites: favorites,
		limiter:   limiter,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(s.requestLogger())

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)

	api.Post("/register", s.handleRegister)
	api.Post("/login", s.handleLogin)

	api.Get("/posts", s.handleListPosts)
	api.Post("/posts", s.handleCreatePost)
	api.Get("/posts/:id", s.handleGetPost)
	api.Put("/posts/:id", s.handleUpdatePost)
	api.Delete("/posts/:id", s.handleDeletePost)

	api.Get("/favorites", s.handleListFavorites)
	api.Post("/favorites", s.handleAddFavorite)
	api.Delete("/favorites/:postID", s.handleRemoveFavorite)

	api.Get("/filters", s.handleFilters)

	s.app = app
	return s
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = s.app.Shutdown()
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
