// Package clinicservices stores the treatments a clinic offers. The name
// avoids a clash with the application service layer.
package clinicservices

import (
	"context"

	"github.com/dmitrijs2005/clinic/internal/dbx"
	"github.com/dmitrijs2005/clinic/internal/server/models"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/content"
)

type Repository = content.Repository[models.Service, models.ServicePatch]

const columns = `id, title, description, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scan(row content.Scanner) (*models.Service, error) {
	var s models.Service
	if err := row.Scan(&s.ID, &s.Title, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Service) (*models.Service, error) {
	query :=
		`INSERT INTO services (title, description)
		 VALUES ($1, $2)
		 RETURNING ` + columns

	return content.QueryOne(ctx, r.db, scan, query, s.Title, s.Description)
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Service, error) {
	return content.QueryAll(ctx, r.db, scan, `SELECT `+columns+` FROM services ORDER BY title, id`)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Service, error) {
	return content.QueryOne(ctx, r.db, scan, `SELECT `+columns+` FROM services WHERE id = $1`, id)
}

func (r *PostgresRepository) Update(ctx context.Context, id string, p *models.ServicePatch) (*models.Service, error) {
	query :=
		`UPDATE services SET
		   title = COALESCE($2, title),
		   description = COALESCE($3, description),
		   updated_at = NOW()
		 WHERE id = $1
		 RETURNING ` + columns

	return content.QueryOne(ctx, r.db, scan, query, id, p.Title, p.Description)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	return content.DeleteByID(ctx, r.db, "services", id)
}
