// Package content declares the shape shared by the catalog stores
// (doctors, services, blog posts and appointments).
package content

import "context"

// Repository is CRUD storage for one entity kind. T is the stored record and
// P its partial update, where nil fields are left unchanged. Get and Update
// return common.ErrNotFound for an unknown id; Delete reports false instead.
type Repository[T any, P any] interface {
	Create(ctx context.Context, item *T) (*T, error)
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, id string, patch *P) (*T, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}
