// Package server initializes and runs the Quoteshelf server: storage,
// rate-limit counter store, services, and the HTTP endpoint, with graceful
// shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dkowalski/quoteshelf/internal/dbx"
	"github.com/dkowalski/quoteshelf/internal/logging"
	"github.com/dkowalski/quoteshelf/internal/server/auth"
	"github.com/dkowalski/quoteshelf/internal/server/config"
	"github.com/dkowalski/quoteshelf/internal/server/httpapi"
	"github.com/dkowalski/quoteshelf/internal/server/ratelimit"
	"github.com/dkowalski/quoteshelf/internal/server/repositories/posts"
	"github.com/dkowalski/quoteshelf/internal/server/repositories/repomanager"
	"github.com/dkowalski/quoteshelf/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rm, err := repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	limiter := ratelimit.New(
		ratelimit.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB),
		cfg.RegisterLimit,
		cfg.RegisterWindow,
	)

	userService := services.NewUserService(rm.Users(), cfg)
	postService := services.NewPostService(rm.Conn(), func(db dbx.DBTX) posts.Repository {
		return posts.NewPostgresRepository(db)
	})
	favoriteService := services.NewFavoriteService(rm.Favorites(), rm.Posts())

	server := httpapi.NewServer(
		cfg.EndpointAddr,
		logger,
		auth.NewVerifier([]byte(cfg.SecretKey)),
		userService,
		postService,
		favoriteService,
		limiter,
	)

	return &App{config: cfg, logger: logger, repos: rm, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
