package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/clinic/internal/common"
	"github.com/dmitrijs2005/clinic/internal/server/auth"
	"github.com/dmitrijs2005/clinic/internal/server/models"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/repomanager"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Admin     auth.Identity
}

// dummyHash is compared against when the username is unknown, so a miss
// costs the same bcrypt work as a wrong password.
var dummyHash = sync.OnceValue(func() string {
	h, err := auth.HashPassword("clinic-dummy-password")
	if err != nil {
		panic(err)
	}
	return h
})

// AdminService authenticates administrators and mints their session tokens.
type AdminService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
}

func NewAdminService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService) *AdminService {
	return &AdminService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
	}
}

// Login verifies username and password. Unknown users and wrong passwords
// both yield common.ErrInvalidCredentials.
func (s *AdminService) Login(ctx context.Context, username, password string) (*Session, error) {
	repo := s.repomanager.Admins(s.db)

	admin, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			auth.CheckPassword(dummyHash(), password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, storeError("find admin", err)
	}

	if !auth.CheckPassword(admin.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	identity := auth.Identity{AdminID: admin.ID, Username: admin.Username}
	token, expires, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, ExpiresAt: expires, Admin: identity}, nil
}

// Me returns the stored record behind an authenticated identity.
func (s *AdminService) Me(ctx context.Context, id auth.Identity) (*models.Admin, error) {
	if !validID(id.AdminID) {
		return nil, common.ErrNotFound
	}
	admin, err := s.repomanager.Admins(s.db).GetByID(ctx, id.AdminID)
	if err != nil {
		return nil, storeError("find admin", err)
	}
	return admin, nil
}

// CreateAdmin stores a new administrator with a bcrypt hash of password.
func (s *AdminService) CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationError("username is required")
	}
	if password == "" {
		return nil, validationError("password is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin, err := s.repomanager.Admins(s.db).Create(ctx, &models.Admin{Username: username, PasswordHash: hash})
	if err != nil {
		return nil, storeError("create admin", err)
	}
	return admin, nil
}

// EnsureSeedAdmin creates the first administrator when none exists yet. It
// reports whether an account was created. Empty credentials skip seeding.
func (s *AdminService) EnsureSeedAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	n, err := s.repomanager.Admins(s.db).Count(ctx)
	if err != nil {
		return false, storeError("count admins", err)
	}
	if n > 0 {
		return false, nil
	}

	if _, err := s.CreateAdmin(ctx, username, password); err != nil {
		// another instance seeded first
		if errors.Is(err, common.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
