package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/clinic/internal/common"
	"github.com/dmitrijs2005/clinic/internal/dbx"
	"github.com/dmitrijs2005/clinic/internal/server/models"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/admins"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/appointments"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/clinicservices"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/comments"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/doctors"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/posts"
	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// --- admins ---

type fakeAdminsRepo struct {
	byName    map[string]*models.Admin
	getErr    error
	count     int
	countErr  error
	createErr error
	created   []*models.Admin
}

func (f *fakeAdminsRepo) Create(_ context.Context, a *models.Admin) (*models.Admin, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	f.created = append(f.created, a)
	return a, nil
}

func (f *fakeAdminsRepo) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if a, ok := f.byName[username]; ok {
		return a, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeAdminsRepo) GetByID(_ context.Context, id string) (*models.Admin, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, a := range f.byName {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeAdminsRepo) Count(context.Context) (int, error) {
	return f.count, f.countErr
}

// --- comments ---

// memComments is an in-memory comment table keyed by id with insertion order.
type memComments struct {
	rows     []models.Comment
	childErr error
	delErr   error
	locked   []string
}

func (m *memComments) add(id, postID string, parent *string) {
	m.rows = append(m.rows, models.Comment{ID: id, PostID: postID, ParentID: parent, Author: "a", Content: "c"})
}

func (m *memComments) ids() []string {
	out := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r.ID)
	}
	return out
}

func (m *memComments) Create(_ context.Context, in *models.NewComment) (*models.Comment, error) {
	c := models.Comment{ID: uuid.NewString(), PostID: in.PostID, ParentID: in.ParentID, Author: in.Author, Content: in.Content, CreatedAt: time.Now()}
	m.rows = append(m.rows, c)
	return &c, nil
}

func (m *memComments) ListByPost(_ context.Context, postID string) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, r := range m.rows {
		if r.PostID == postID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memComments) find(id string) (*models.Comment, error) {
	for _, r := range m.rows {
		if r.ID == id {
			c := r
			return &c, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memComments) FindForShare(_ context.Context, id string) (*models.Comment, error) {
	m.locked = append(m.locked, "share:"+id)
	return m.find(id)
}

func (m *memComments) FindForUpdate(_ context.Context, id string) (*models.Comment, error) {
	m.locked = append(m.locked, "update:"+id)
	return m.find(id)
}

func (m *memComments) ChildIDs(_ context.Context, parentID string) ([]string, error) {
	if m.childErr != nil {
		return nil, m.childErr
	}
	var out []string
	for _, r := range m.rows {
		if r.ParentID != nil && *r.ParentID == parentID {
			out = append(out, r.ID)
		}
	}
	return out, nil
}

func (m *memComments) Delete(_ context.Context, id string) (bool, error) {
	if m.delErr != nil {
		return false, m.delErr
	}
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// --- posts ---

type fakePostsRepo struct {
	posts.Repository
	existing  map[string]bool
	existsErr error
}

func (f *fakePostsRepo) Exists(_ context.Context, id string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.existing[id], nil
}

// --- doctors ---

type memDoctors struct {
	rows    map[string]models.Doctor
	listErr error
}

func (m *memDoctors) Create(_ context.Context, d *models.Doctor) (*models.Doctor, error) {
	d.ID = uuid.NewString()
	m.rows[d.ID] = *d
	return d, nil
}

func (m *memDoctors) List(context.Context) ([]models.Doctor, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []models.Doctor{}
	for _, d := range m.rows {
		out = append(out, d)
	}
	return out, nil
}

func (m *memDoctors) Get(_ context.Context, id string) (*models.Doctor, error) {
	d, ok := m.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &d, nil
}

func (m *memDoctors) Update(_ context.Context, id string, p *models.DoctorPatch) (*models.Doctor, error) {
	d, ok := m.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Bio != nil {
		d.Bio = *p.Bio
	}
	m.rows[id] = d
	return &d, nil
}

func (m *memDoctors) Delete(_ context.Context, id string) (bool, error) {
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

// --- manager ---

type fakeRepoManager struct {
	admins   *fakeAdminsRepo
	comments *memComments
	posts    *fakePostsRepo
	doctors  *memDoctors
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Admins(dbx.DBTX) admins.Repository             { return m.admins }
func (m *fakeRepoManager) Comments(dbx.DBTX) comments.Repository         { return m.comments }
func (m *fakeRepoManager) Doctors(dbx.DBTX) doctors.Repository           { return m.doctors }
func (m *fakeRepoManager) Services(dbx.DBTX) clinicservices.Repository   { return nil }
func (m *fakeRepoManager) Posts(dbx.DBTX) posts.Repository               { return m.posts }
func (m *fakeRepoManager) Appointments(dbx.DBTX) appointments.Repository { return nil }
