package services

import (
	"context"

	"github.com/dmitrijs2005/clinic/internal/common"
	"github.com/dmitrijs2005/clinic/internal/dbx"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/content"
)

type validator interface {
	Validate() error
}

// Catalog is plain CRUD over one content kind. Records and patches that
// implement Validate are checked before they reach the store.
type Catalog[T any, P any] struct {
	db   dbx.DBTX
	repo func(dbx.DBTX) content.Repository[T, P]
	name string
}

// NewCatalog binds repo to db. name labels store failures.
func NewCatalog[T any, P any](db dbx.DBTX, name string, repo func(dbx.DBTX) content.Repository[T, P]) *Catalog[T, P] {
	return &Catalog[T, P]{db: db, repo: repo, name: name}
}

func (c *Catalog[T, P]) Create(ctx context.Context, item *T) (*T, error) {
	if err := validate(item); err != nil {
		return nil, err
	}
	out, err := c.repo(c.db).Create(ctx, item)
	if err != nil {
		return nil, storeError("create "+c.name, err)
	}
	return out, nil
}

func (c *Catalog[T, P]) List(ctx context.Context) ([]T, error) {
	out, err := c.repo(c.db).List(ctx)
	if err != nil {
		return nil, storeError("list "+c.name, err)
	}
	return out, nil
}

func (c *Catalog[T, P]) Get(ctx context.Context, id string) (*T, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	out, err := c.repo(c.db).Get(ctx, id)
	if err != nil {
		return nil, storeError("get "+c.name, err)
	}
	return out, nil
}

func (c *Catalog[T, P]) Update(ctx context.Context, id string, patch *P) (*T, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	if err := validate(patch); err != nil {
		return nil, err
	}
	out, err := c.repo(c.db).Update(ctx, id, patch)
	if err != nil {
		return nil, storeError("update "+c.name, err)
	}
	return out, nil
}

// Delete reports whether a record was removed.
func (c *Catalog[T, P]) Delete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	ok, err := c.repo(c.db).Delete(ctx, id)
	if err != nil {
		return false, storeError("delete "+c.name, err)
	}
	return ok, nil
}

func validate(v any) error {
	if val, ok := v.(validator); ok {
		if err := val.Validate(); err != nil {
			return validationError(err.Error())
		}
	}
	return nil
}
