package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkowalski/quoteshelf/internal/common"
	"github.com/dkowalski/quoteshelf/internal/dbx"
	"github.com/dkowalski/quoteshelf/internal/server/models"
)

// PostgresRepository implements post storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// predicate renders the visibility scope as SQL. Soft-deleted rows are
// excluded unconditionally; private rows are visible to their owner only.
// startArg is the first free $n placeholder of the enclosing query.
func (s Scope) predicate(startArg int) (string, []any) {
	if s.Viewer == nil {
		return "p.is_deleted = FALSE AND p.private = FALSE", nil
	}
	cond := fmt.Sprintf("p.is_deleted = FALSE AND (p.private = FALSE OR p.creator_id = $%d)", startArg)
	return cond, []any{*s.Viewer}
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `
		INSERT INTO posts (content, author_id, source_id, creator_id, private)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		post.Content, post.AuthorID, post.SourceID, post.CreatorID, post.Private).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

// GetByID returns the post row regardless of visibility; soft-deleted rows
// are reported as missing. Authorization is the caller's job.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT p.id, p.content, p.author_id, a.name, p.source_id, s.title,
		       p.creator_id, p.private, p.is_deleted, p.created_at, p.updated_at
		FROM posts p
		JOIN authors a ON a.id = p.author_id
		LEFT JOIN sources s ON s.id = p.source_id
		WHERE p.id = $1 AND p.is_deleted = FALSE
	`

	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Content, &post.AuthorID, &post.Author, &post.SourceID, &post.Source,
		&post.CreatorID, &post.Private, &post.Deleted, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET content = $2, author_id = $3, source_id = $4, private = $5, updated_at = now()
		WHERE id = $1 AND is_deleted = FALSE
	`

	res, err := r.db.ExecContext(ctx, query,
		post.ID, post.Content, post.AuthorID, post.SourceID, post.Private)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

// SoftDelete flags the row; it persists but disappears from every listing.
func (r *PostgresRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE posts
		SET is_deleted = TRUE, updated_at = now()
		WHERE id = $1 AND is_deleted = FALSE
	`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, scope Scope) ([]*models.Post, error) {
	cond, args := scope.predicate(1)

	query := fmt.Sprintf(`
		SELECT p.id, p.content, p.author_id, a.name, p.source_id, s.title,
		       p.creator_id, p.private, p.is_deleted, p.created_at, p.updated_at
		FROM posts p
		JOIN authors a ON a.id = p.author_id
		LEFT JOIN sources s ON s.id = p.source_id
		WHERE %s
		ORDER BY p.created_at DESC, p.id DESC
	`, cond)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select posts: %w", err)
	}
	defer rows.Close()

	var result []*models.Post
	for rows.Next() {
		var item models.Post
		if err := rows.Scan(
			&item.ID, &item.Content, &item.AuthorID, &item.Author, &item.SourceID, &item.Source,
			&item.CreatorID, &item.Private, &item.Deleted, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return result, nil
}

// CountByAuthor returns the author facet. The WHERE clause is the same
// predicate List uses, so the counts always match what the viewer can list.
func (r *PostgresRepository) CountByAuthor(ctx context.Context, scope Scope) ([]*models.AuthorCount, error) {
	cond, args := scope.predicate(1)

	query := fmt.Sprintf(`
		SELECT a.id, a.name, COUNT(p.id)
		FROM authors a
		JOIN posts p ON p.author_id = a.id
		WHERE %s
		GROUP BY a.id, a.name
		ORDER BY a.name ASC
	`, cond)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count by author: %w", err)
	}
	defer rows.Close()

	var result []*models.AuthorCount
	for rows.Next() {
		var item models.AuthorCount
		if err := rows.Scan(&item.ID, &item.Name, &item.Count); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate author counts: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) CountBySource(ctx context.Context, scope Scope) ([]*models.SourceCount, error) {
	cond, args := scope.predicate(1)

	query := fmt.Sprintf(`
		SELECT s.id, s.title, COUNT(p.id)
		FROM sources s
		JOIN posts p ON p.source_id = s.id
		WHERE %s
		GROUP BY s.id, s.title
		ORDER BY s.title ASC
	`, cond)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count by source: %w", err)
	}
	defer rows.Close()

	var result []*models.SourceCount
	for rows.Next() {
		var item models.SourceCount
		if err := rows.Scan(&item.ID, &item.Title, &item.Count); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate source counts: %w", err)
	}

	return result, nil
}

// UpsertAuthor returns the id for the author name, creating it if needed.
func (r *PostgresRepository) UpsertAuthor(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO authors (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// UpsertSource returns the id for the source title, creating it if needed.
func (r *PostgresRepository) UpsertSource(ctx context.Context, title string) (int64, error) {
	query := `
		INSERT INTO sources (title) VALUES ($1)
		ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, title).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}
