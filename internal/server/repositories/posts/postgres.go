// Package posts stores blog articles.
package posts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/clinic/internal/dbx"
	"github.com/dmitrijs2005/clinic/internal/server/models"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/content"
)

type Repository interface {
	content.Repository[models.BlogPost, models.BlogPostPatch]
	// Exists reports whether a post with id is present.
	Exists(ctx context.Context, id string) (bool, error)
}

const columns = `id, title, content, author, image_key, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scan(row content.Scanner) (*models.BlogPost, error) {
	var p models.BlogPost
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.ImageKey, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.BlogPost) (*models.BlogPost, error) {
	query :=
		`INSERT INTO blog_posts (title, content, author, image_key)
		 VALUES ($1, $2, $3, $4)
		 RETURNING ` + columns

	return content.QueryOne(ctx, r.db, scan, query, p.Title, p.Content, p.Author, p.ImageKey)
}

// List returns posts newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]models.BlogPost, error) {
	return content.QueryAll(ctx, r.db, scan, `SELECT `+columns+` FROM blog_posts ORDER BY created_at DESC, id`)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	return content.QueryOne(ctx, r.db, scan, `SELECT `+columns+` FROM blog_posts WHERE id = $1`, id)
}

func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	row := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM blog_posts WHERE id = $1)`, id)
	if err := row.Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, p *models.BlogPostPatch) (*models.BlogPost, error) {
	query :=
		`UPDATE blog_posts SET
		   title = COALESCE($2, title),
		   content = COALESCE($3, content),
		   author = COALESCE($4, author),
		   image_key = COALESCE($5, image_key),
		   updated_at = NOW()
		 WHERE id = $1
		 RETURNING ` + columns

	return content.QueryOne(ctx, r.db, scan, query, id, p.Title, p.Content, p.Author, p.ImageKey)
}

// Delete removes the post. Its comments go with it through the foreign key.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	return content.DeleteByID(ctx, r.db, "blog_posts", id)
}
