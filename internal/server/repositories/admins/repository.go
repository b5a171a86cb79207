// Package admins declares the credential store: administrator identities
// with their salted password hashes.
package admins

import (
	"context"

	"github.com/dmitrijs2005/clinic/internal/server/models"
)

type Repository interface {
	// Create stores admin and fills in ID and CreatedAt. A taken username
	// yields common.ErrAlreadyExists.
	Create(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	Count(ctx context.Context) (int, error)
}
