package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/clinic/internal/dbx"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/admins"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/appointments"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/clinicservices"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/comments"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/doctors"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/posts"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code
// path works against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Admins(db dbx.DBTX) admins.Repository
	Comments(db dbx.DBTX) comments.Repository
	Doctors(db dbx.DBTX) doctors.Repository
	Services(db dbx.DBTX) clinicservices.Repository
	Posts(db dbx.DBTX) posts.Repository
	Appointments(db dbx.DBTX) appointments.Repository
}
