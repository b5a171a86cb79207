// Package doctors stores the clinic's physician roster.
package doctors

import (
	"context"

	"github.com/dmitrijs2005/clinic/internal/dbx"
	"github.com/dmitrijs2005/clinic/internal/server/models"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/content"
)

type Repository = content.Repository[models.Doctor, models.DoctorPatch]

const columns = `id, name, specialty, bio, photo_key, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scan(row content.Scanner) (*models.Doctor, error) {
	var d models.Doctor
	if err := row.Scan(&d.ID, &d.Name, &d.Specialty, &d.Bio, &d.PhotoKey, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresRepository) Create(ctx context.Context, d *models.Doctor) (*models.Doctor, error) {
	query :=
		`INSERT INTO doctors (name, specialty, bio, photo_key)
		 VALUES ($1, $2, $3, $4)
		 RETURNING ` + columns

	return content.QueryOne(ctx, r.db, scan, query, d.Name, d.Specialty, d.Bio, d.PhotoKey)
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Doctor, error) {
	return content.QueryAll(ctx, r.db, scan, `SELECT `+columns+` FROM doctors ORDER BY name, id`)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Doctor, error) {
	return content.QueryOne(ctx, r.db, scan, `SELECT `+columns+` FROM doctors WHERE id = $1`, id)
}

func (r *PostgresRepository) Update(ctx context.Context, id string, p *models.DoctorPatch) (*models.Doctor, error) {
	query :=
		`UPDATE doctors SET
		   name = COALESCE($2, name),
		   specialty = COALESCE($3, specialty),
		   bio = COALESCE($4, bio),
		   photo_key = COALESCE($5, photo_key),
		   updated_at = NOW()
		 WHERE id = $1
		 RETURNING ` + columns

	return content.QueryOne(ctx, r.db, scan, query, id, p.Name, p.Specialty, p.Bio, p.PhotoKey)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	return content.DeleteByID(ctx, r.db, "doctors", id)
}
