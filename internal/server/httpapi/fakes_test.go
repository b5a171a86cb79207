package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/clinic/internal/common"
	"github.com/dmitrijs2005/clinic/internal/logging"
	"github.com/dmitrijs2005/clinic/internal/server/auth"
	"github.com/dmitrijs2005/clinic/internal/server/config"
	"github.com/dmitrijs2005/clinic/internal/server/models"
	"github.com/dmitrijs2005/clinic/internal/server/services"
)

const goodToken = "good-token"

var testIdentity = auth.Identity{AdminID: "6b1f2f5e-1c2d-4e3f-8a9b-0c1d2e3f4a5b", Username: "admin"}

type fakeVerifier struct{}

func (fakeVerifier) Verify(token string) (auth.Identity, error) {
	switch token {
	case goodToken:
		return testIdentity, nil
	case "expired":
		return auth.Identity{}, common.ErrTokenExpired
	default:
		return auth.Identity{}, common.ErrInvalidToken
	}
}

type fakeAdmins struct{}

func (fakeAdmins) Login(_ context.Context, username, password string) (*services.Session, error) {
	if username == "admin" && password == "pw" {
		return &services.Session{Token: goodToken, ExpiresAt: time.Now().Add(8 * time.Hour), Admin: testIdentity}, nil
	}
	if username == "broken" {
		return nil, common.ErrStoreFailure
	}
	return nil, common.ErrInvalidCredentials
}

func (fakeAdmins) Me(_ context.Context, id auth.Identity) (*models.Admin, error) {
	return &models.Admin{ID: id.AdminID, Username: id.Username}, nil
}

type fakeComments struct {
	created *models.NewComment
	deleted []string
}

func (f *fakeComments) Tree(_ context.Context, postID string) ([]*models.CommentNode, error) {
	if postID != "p1" {
		return nil, common.ErrNotFound
	}
	root := &models.CommentNode{Comment: models.Comment{ID: "c1", PostID: "p1", Author: "a", Content: "root"}}
	reply := &models.CommentNode{Comment: models.Comment{ID: "c2", PostID: "p1", Author: "b", Content: "reply"}, Replies: []*models.CommentNode{}}
	root.Replies = []*models.CommentNode{reply}
	return []*models.CommentNode{root}, nil
}

func (f *fakeComments) Create(_ context.Context, in *models.NewComment) (*models.Comment, error) {
	f.created = in
	if in.ParentID != nil && *in.ParentID == "elsewhere" {
		return nil, common.ErrInvalidParent
	}
	return &models.Comment{ID: "c9", PostID: in.PostID, ParentID: in.ParentID, Author: in.Author, Content: in.Content}, nil
}

func (f *fakeComments) Delete(_ context.Context, id string) (int, error) {
	f.deleted = append(f.deleted, id)
	if id == "c1" {
		return 3, nil
	}
	return 0, nil
}

// fakeCRUD keeps records in insertion order.
type fakeCRUD[T any, P any] struct {
	items   map[string]*T
	created []*T
	listErr error
}

func newFakeCRUD[T any, P any]() *fakeCRUD[T, P] {
	return &fakeCRUD[T, P]{items: map[string]*T{}}
}

func (f *fakeCRUD[T, P]) Create(_ context.Context, item *T) (*T, error) {
	f.created = append(f.created, item)
	return item, nil
}

func (f *fakeCRUD[T, P]) List(context.Context) ([]T, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []T{}
	for _, v := range f.items {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeCRUD[T, P]) Get(_ context.Context, id string) (*T, error) {
	if v, ok := f.items[id]; ok {
		return v, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeCRUD[T, P]) Update(_ context.Context, id string, _ *P) (*T, error) {
	if v, ok := f.items[id]; ok {
		return v, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeCRUD[T, P]) Delete(_ context.Context, id string) (bool, error) {
	_, ok := f.items[id]
	delete(f.items, id)
	return ok, nil
}

type fakeMedia struct{}

func (fakeMedia) PresignUpload(_ context.Context, kind string) (string, string, error) {
	if kind != "doctors" && kind != "posts" {
		return "", "", fmt.Errorf("%w: kind must be doctors or posts", common.ErrValidation)
	}
	return kind + "/2026/1/1/k", "http://s3/put", nil
}

func (fakeMedia) PresignDownload(_ context.Context, key string) (string, error) {
	if key == "posts/2026/1/1/k" {
		return "http://s3/get/" + key, nil
	}
	return "", common.ErrNotFound
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type testEnv struct {
	handler      http.Handler
	comments     *fakeComments
	doctors      *fakeCRUD[models.Doctor, models.DoctorPatch]
	appointments *fakeCRUD[models.Appointment, models.AppointmentPatch]
}

func newTestEnv(t *testing.T, mutate ...func(*Deps)) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.PagesDir = t.TempDir()
	writePages(t, cfg.PagesDir)

	env := &testEnv{
		comments:     &fakeComments{},
		doctors:      newFakeCRUD[models.Doctor, models.DoctorPatch](),
		appointments: newFakeCRUD[models.Appointment, models.AppointmentPatch](),
	}
	env.doctors.items["d1"] = &models.Doctor{ID: "d1", Name: "Dr. One"}

	d := Deps{
		Config:       cfg,
		Logger:       logging.Nop(),
		Tokens:       fakeVerifier{},
		Admins:       fakeAdmins{},
		Comments:     env.comments,
		Doctors:      env.doctors,
		Services:     newFakeCRUD[models.Service, models.ServicePatch](),
		Posts:        newFakeCRUD[models.BlogPost, models.BlogPostPatch](),
		Appointments: env.appointments,
		Media:        fakeMedia{},
		DB:           fakePinger{},
	}
	for _, m := range mutate {
		m(&d)
	}
	env.handler = NewRouter(d)
	return env
}
