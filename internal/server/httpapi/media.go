package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/clinic/internal/logging"
	"github.com/go-chi/chi/v5"
)

// Media presigns object storage URLs. services.MediaService implements it.
type Media interface {
	PresignUpload(ctx context.Context, kind string) (string, string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

type mediaHandlers struct {
	media  Media
	logger logging.Logger
}

type uploadRequest struct {
	Kind string `json:"kind"`
}

type uploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	MediaURL  string `json:"media_url"`
}

// upload hands the admin UI a URL to PUT the file to directly. The key is
// what gets stored in photo_key or image_key afterwards.
func (h *mediaHandlers) upload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	key, url, err := h.media.PresignUpload(r.Context(), req.Kind)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{Key: key, UploadURL: url, MediaURL: "/media/" + key})
}

func (h *mediaHandlers) download(w http.ResponseWriter, r *http.Request) {
	url, err := h.media.PresignDownload(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}
