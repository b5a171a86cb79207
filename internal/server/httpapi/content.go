package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/clinic/internal/logging"
	"github.com/go-chi/chi/v5"
)

// CRUD is one catalog collection. services.Catalog implements it.
type CRUD[T any, P any] interface {
	Create(ctx context.Context, item *T) (*T, error)
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, id string, patch *P) (*T, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// access says which operations skip the session gate.
type access struct {
	publicRead   bool
	publicCreate bool
}

type crudHandlers[T any, P any] struct {
	svc    CRUD[T, P]
	logger logging.Logger
	// prepare adjusts a decoded record before Create, if set.
	prepare func(*T)
}

func (h *crudHandlers[T, P]) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *crudHandlers[T, P]) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *crudHandlers[T, P]) create(w http.ResponseWriter, r *http.Request) {
	item := new(T)
	if !decodeJSON(w, r, item) {
		return
	}
	if h.prepare != nil {
		h.prepare(item)
	}

	out, err := h.svc.Create(r.Context(), item)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *crudHandlers[T, P]) update(w http.ResponseWriter, r *http.Request) {
	patch := new(P)
	if !decodeJSON(w, r, patch) {
		return
	}

	out, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *crudHandlers[T, P]) delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}
	writeMessage(w, http.StatusOK, "Deleted")
}

// routes mounts the collection, wrapping the non-public operations in gate.
func (h *crudHandlers[T, P]) routes(gate func(http.Handler) http.Handler, a access) http.Handler {
	r := chi.NewRouter()

	read := r.With()
	if !a.publicRead {
		read = r.With(gate)
	}
	read.Get("/", h.list)
	read.Get("/{id}", h.get)

	create := r.With()
	if !a.publicCreate {
		create = r.With(gate)
	}
	create.Post("/", h.create)

	r.Group(func(r chi.Router) {
		r.Use(gate)
		r.Put("/{id}", h.update)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})

	return r
}
