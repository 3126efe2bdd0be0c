package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dkowalski/quoteshelf/internal/common"
	"github.com/dkowalski/quoteshelf/internal/dbx"
	"github.com/dkowalski/quoteshelf/internal/server/models"
)

// PostgresRepository implements favorite storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const uniqueViolation = "23505"

func (r *PostgresRepository) Create(ctx context.Context, userID, postID int64) error {
	query := `
		INSERT INTO user_favorites (user_id, post_id)
		VALUES ($1, $2)
	`

	if _, err := r.db.ExecContext(ctx, query, userID, postID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrConflict
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, postID int64) error {
	query := `
		DELETE FROM user_favorites
		WHERE user_id = $1 AND post_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, userID, postID)
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

// ListPosts returns the user's favorited posts. Soft-deleted posts are
// excluded here like everywhere else; the pair itself remains until the
// user removes it.
func (r *PostgresRepository) ListPosts(ctx context.Context, userID int64) ([]*models.Post, error) {
	query := `
		SELECT p.id, p.content, p.author_id, a.name, p.source_id, s.title,
		       p.creator_id, p.private, p.is_deleted, p.created_at, p.updated_at
		FROM user_favorites f
		JOIN posts p ON p.id = f.post_id
		JOIN authors a ON a.id = p.author_id
		LEFT JOIN sources s ON s.id = p.source_id
		WHERE f.user_id = $1 AND p.is_deleted = FALSE
		ORDER BY p.created_at DESC, p.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select favorites: %w", err)
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
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}

	return result, nil
}
