// Package comments declares storage for blog comments. Records are flat;
// the reply tree is assembled by the caller.
package comments

import (
	"context"

	"github.com/dmitrijs2005/clinic/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.NewComment) (*models.Comment, error)
	// ListByPost returns every comment of postID ordered by creation time.
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
	// FindForShare loads a comment and holds a share lock on it until the
	// surrounding transaction ends, so it cannot be deleted meanwhile.
	FindForShare(ctx context.Context, id string) (*models.Comment, error)
	// FindForUpdate loads a comment under an exclusive row lock.
	FindForUpdate(ctx context.Context, id string) (*models.Comment, error)
	// ChildIDs returns the ids of direct replies to parentID, locking them.
	ChildIDs(ctx context.Context, parentID string) ([]string, error)
	// Delete removes one comment. It reports false when nothing matched.
	Delete(ctx context.Context, id string) (bool, error)
}
