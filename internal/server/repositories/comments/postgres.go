package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clinic/internal/common"
	"github.com/dmitrijs2005/clinic/internal/dbx"
	"github.com/dmitrijs2005/clinic/internal/server/models"
)

const columns = `id, post_id, parent_id, author, content, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(row scanner) (*models.Comment, error) {
	var (
		c      models.Comment
		parent sql.NullString
	)
	if err := row.Scan(&c.ID, &c.PostID, &parent, &c.Author, &c.Content, &c.CreatedAt); err != nil {
		return nil, err
	}
	if parent.Valid {
		p := parent.String
		c.ParentID = &p
	}
	return &c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, in *models.NewComment) (*models.Comment, error) {
	query :=
		`INSERT INTO comments (post_id, parent_id, author, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING ` + columns

	c, err := scanComment(r.db.QueryRowContext(ctx, query, in.PostID, in.ParentID, in.Author, in.Content))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	query :=
		`SELECT ` + columns + ` FROM comments
		 WHERE post_id = $1
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) FindForShare(ctx context.Context, id string) (*models.Comment, error) {
	return r.find(ctx, `SELECT `+columns+` FROM comments WHERE id = $1 FOR SHARE`, id)
}

func (r *PostgresRepository) FindForUpdate(ctx context.Context, id string) (*models.Comment, error) {
	return r.find(ctx, `SELECT `+columns+` FROM comments WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresRepository) find(ctx context.Context, query, id string) (*models.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) ChildIDs(ctx context.Context, parentID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM comments WHERE parent_id = $1 FOR UPDATE`, parentID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ids, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
