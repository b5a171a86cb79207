package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/clinic/internal/common"
	"github.com/dmitrijs2005/clinic/internal/logging"
	"github.com/dmitrijs2005/clinic/internal/server/auth"
	"github.com/dmitrijs2005/clinic/internal/server/models"
	"github.com/dmitrijs2005/clinic/internal/server/services"
)

// AdminAuth is the part of services.AdminService the handlers use.
type AdminAuth interface {
	Login(ctx context.Context, username, password string) (*services.Session, error)
	Me(ctx context.Context, id auth.Identity) (*models.Admin, error)
}

type authHandlers struct {
	admins       AdminAuth
	logger       logging.Logger
	cookieSecure bool
	validity     time.Duration
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type meResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// readCredentials accepts a JSON body or a classic HTML form post.
func readCredentials(w http.ResponseWriter, r *http.Request) (loginRequest, bool) {
	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return req, false
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
		return req, true
	}
	return req, decodeJSON(w, r, &req)
}

func (h *authHandlers) login(w http.ResponseWriter, r *http.Request) {
	req, ok := readCredentials(w, r)
	if !ok {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	sess, err := h.admins.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(sess.Token, int(h.validity.Seconds()), sess.ExpiresAt))
	h.logger.Info(r.Context(), "admin logged in", "admin_id", sess.Admin.AdminID)

	writeJSON(w, http.StatusOK, loginResponse{Token: sess.Token, ExpiresAt: sess.ExpiresAt})
}

func (h *authHandlers) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1, time.Unix(0, 0)))
	writeMessage(w, http.StatusOK, "Logged out")
}

func (h *authHandlers) me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, common.ErrTokenMissing)
		return
	}

	admin, err := h.admins.Me(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{ID: admin.ID, Username: admin.Username, CreatedAt: admin.CreatedAt})
}

// sessionCookie builds the admin_token cookie. SameSite=None requires
// Secure, so an insecure cookie is sent as Lax instead.
func (h *authHandlers) sessionCookie(value string, maxAge int, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteNoneMode,
	}
	if !h.cookieSecure {
		c.SameSite = http.SameSiteLaxMode
	}
	return c
}
