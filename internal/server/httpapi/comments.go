package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/clinic/internal/logging"
	"github.com/dmitrijs2005/clinic/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// Comments is the comment subsystem as seen by the handlers.
type Comments interface {
	Tree(ctx context.Context, postID string) ([]*models.CommentNode, error)
	Create(ctx context.Context, in *models.NewComment) (*models.Comment, error)
	Delete(ctx context.Context, id string) (int, error)
}

type commentHandlers struct {
	comments Comments
	logger   logging.Logger
}

type deleteCommentResponse struct {
	Message string `json:"message"`
	Removed int    `json:"removed"`
}

func (h *commentHandlers) tree(w http.ResponseWriter, r *http.Request) {
	forest, err := h.comments.Tree(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, forest)
}

func (h *commentHandlers) create(w http.ResponseWriter, r *http.Request) {
	var in models.NewComment
	if !decodeJSON(w, r, &in) {
		return
	}
	in.PostID = chi.URLParam(r, "postID")

	c, err := h.comments.Create(r.Context(), &in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// delete always acknowledges; an unknown id simply removes nothing.
func (h *commentHandlers) delete(w http.ResponseWriter, r *http.Request) {
	n, err := h.comments.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.logger.Info(r.Context(), "comments deleted", "root", chi.URLParam(r, "id"), "removed", n)
	writeJSON(w, http.StatusOK, deleteCommentResponse{Message: "Comment deleted", Removed: n})
}
