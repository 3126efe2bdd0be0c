package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dkowalski/quoteshelf/internal/server/migrations"
	"github.com/dkowalski/quoteshelf/internal/server/repositories/favorites"
	"github.com/dkowalski/quoteshelf/internal/server/repositories/posts"
	"github.com/dkowalski/quoteshelf/internal/server/repositories/users"
)

type PostgresRepositoryManager struct {
	db        *sql.DB
	users     users.Repository
	posts     posts.Repository
	favorites favorites.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Posts() posts.Repository {
	return m.posts
}

func (m *PostgresRepositoryManager) Favorites() favorites.Repository {
	return m.favorites
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:        db,
		users:     users.NewPostgresRepository(db),
		posts:     posts.NewPostgresRepository(db),
		favorites: favorites.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
