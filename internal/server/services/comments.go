package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/clinic/internal/common"
	"github.com/dmitrijs2005/clinic/internal/dbx"
	"github.com/dmitrijs2005/clinic/internal/server/commenttree"
	"github.com/dmitrijs2005/clinic/internal/server/models"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/repomanager"
)

// CommentService creates, lists and deletes blog comments. Creation and
// deletion each run in a single transaction and take row locks, so a reply
// can never be attached to a comment that is being removed.
type CommentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCommentService(db *sql.DB, m repomanager.RepositoryManager) *CommentService {
	return &CommentService{
		db:          db,
		repomanager: m,
	}
}

// Tree returns the reply forest of postID. An unknown post yields
// common.ErrNotFound.
func (s *CommentService) Tree(ctx context.Context, postID string) ([]*models.CommentNode, error) {
	if !validID(postID) {
		return nil, common.ErrNotFound
	}

	exists, err := s.repomanager.Posts(s.db).Exists(ctx, postID)
	if err != nil {
		return nil, storeError("find post", err)
	}
	if !exists {
		return nil, common.ErrNotFound
	}

	flat, err := s.repomanager.Comments(s.db).ListByPost(ctx, postID)
	if err != nil {
		return nil, storeError("list comments", err)
	}

	return commenttree.Build(flat), nil
}

// Create stores a comment or a reply. A parent must exist on the same post;
// it stays share-locked until the insert commits.
func (s *CommentService) Create(ctx context.Context, in *models.NewComment) (*models.Comment, error) {
	in.Author = strings.TrimSpace(in.Author)
	in.Content = strings.TrimSpace(in.Content)
	if in.Author == "" {
		return nil, validationError("author is required")
	}
	if in.Content == "" {
		return nil, validationError("content is required")
	}
	if !validID(in.PostID) {
		return nil, common.ErrNotFound
	}
	if in.ParentID != nil && !validID(*in.ParentID) {
		return nil, common.ErrInvalidParent
	}

	var created *models.Comment
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		exists, err := s.repomanager.Posts(tx).Exists(ctx, in.PostID)
		if err != nil {
			return err
		}
		if !exists {
			return common.ErrNotFound
		}

		repo := s.repomanager.Comments(tx)

		if in.ParentID != nil {
			parent, err := repo.FindForShare(ctx, *in.ParentID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.ErrInvalidParent
				}
				return err
			}
			if parent.PostID != in.PostID {
				return common.ErrInvalidParent
			}
		}

		created, err = repo.Create(ctx, in)
		return err
	})
	if err != nil {
		return nil, storeError("create comment", err)
	}

	return created, nil
}

// Delete removes the comment id together with every reply beneath it and
// returns how many records went away. A missing id is not an error.
func (s *CommentService) Delete(ctx context.Context, id string) (int, error) {
	if !validID(id) {
		return 0, nil
	}

	removed := 0
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Comments(tx)

		if _, err := repo.FindForUpdate(ctx, id); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil
			}
			return err
		}

		ids, err := commenttree.CollectSubtree(ctx, id, repo.ChildIDs)
		if err != nil {
			return err
		}

		// leaves first, the root last
		for i := len(ids) - 1; i >= 0; i-- {
			ok, err := repo.Delete(ctx, ids[i])
			if err != nil {
				return err
			}
			if ok {
				removed++
			}
		}
		return nil
	})
	if err != nil {
		return 0, storeError("delete comment", err)
	}

	return removed, nil
}
