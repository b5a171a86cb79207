package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/clinic/internal/common"
	"github.com/dmitrijs2005/clinic/internal/server/auth"
)

// LoginPage is where page requests without a valid session are sent.
const LoginPage = "/admin-login.html"

// TokenVerifier resolves a session token to an identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// wantsHTML reports whether the client is a browser loading a page rather
// than a script calling the API.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// SessionGate admits requests carrying a valid session token and attaches
// the resolved identity to the request context. Without one, page requests
// are redirected to the login page; API requests get 403 when no token was
// sent and 401 when the token did not verify.
func SessionGate(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.TokenFromRequest(r)
			if !ok {
				deny(w, r, common.ErrTokenMissing)
				return
			}

			id, err := tokens.Verify(token)
			if err != nil {
				deny(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

func deny(w http.ResponseWriter, r *http.Request, err error) {
	if wantsHTML(r) {
		http.Redirect(w, r, LoginPage, http.StatusFound)
		return
	}
	if !errors.Is(err, common.ErrTokenMissing) && !errors.Is(err, common.ErrTokenExpired) {
		// anything else the verifier reports is a bad token
		err = common.ErrInvalidToken
	}
	status, msg := errorStatus(err)
	writeMessage(w, status, msg)
}
