// Package appointments stores visit requests from the public site.
package appointments

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/clinic/internal/dbx"
	"github.com/dmitrijs2005/clinic/internal/server/models"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/content"
)

type Repository = content.Repository[models.Appointment, models.AppointmentPatch]

const columns = `id, patient_name, email, phone, doctor_id, service_id, preferred_date, message, status, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scan(row content.Scanner) (*models.Appointment, error) {
	var (
		a               models.Appointment
		doctor, service sql.NullString
		preferred       sql.NullTime
	)
	err := row.Scan(&a.ID, &a.PatientName, &a.Email, &a.Phone, &doctor, &service,
		&preferred, &a.Message, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if doctor.Valid {
		a.DoctorID = &doctor.String
	}
	if service.Valid {
		a.ServiceID = &service.String
	}
	if preferred.Valid {
		a.PreferredDate = &preferred.Time
	}
	return &a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Appointment) (*models.Appointment, error) {
	query :=
		`INSERT INTO appointments (patient_name, email, phone, doctor_id, service_id, preferred_date, message, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING ` + columns

	return content.QueryOne(ctx, r.db, scan, query,
		a.PatientName, a.Email, a.Phone, a.DoctorID, a.ServiceID, a.PreferredDate, a.Message, a.Status)
}

// List returns appointments newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Appointment, error) {
	return content.QueryAll(ctx, r.db, scan, `SELECT `+columns+` FROM appointments ORDER BY created_at DESC, id`)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Appointment, error) {
	return content.QueryOne(ctx, r.db, scan, `SELECT `+columns+` FROM appointments WHERE id = $1`, id)
}

func (r *PostgresRepository) Update(ctx context.Context, id string, p *models.AppointmentPatch) (*models.Appointment, error) {
	query :=
		`UPDATE appointments SET
		   preferred_date = COALESCE($2, preferred_date),
		   message = COALESCE($3, message),
		   status = COALESCE($4, status),
		   updated_at = NOW()
		 WHERE id = $1
		 RETURNING ` + columns

	return content.QueryOne(ctx, r.db, scan, query, id, p.PreferredDate, p.Message, p.Status)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	return content.DeleteByID(ctx, r.db, "appointments", id)
}
