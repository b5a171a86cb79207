package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/clinic/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		cookie    string
		header    string
		wantToken string
		wantOK    bool
	}{
		{name: "nothing", wantOK: false},
		{name: "cookie only", cookie: "c-tok", wantToken: "c-tok", wantOK: true},
		{name: "bearer only", header: "Bearer h-tok", wantToken: "h-tok", wantOK: true},
		{name: "lowercase scheme", header: "bearer h-tok", wantToken: "h-tok", wantOK: true},
		{name: "cookie preferred over header", cookie: "c-tok", header: "Bearer h-tok", wantToken: "c-tok", wantOK: true},
		{name: "basic scheme ignored", header: "Basic dXNlcjpwYXNz", wantOK: false},
		{name: "bearer without token", header: "Bearer ", wantOK: false},
		{name: "bare token without scheme", header: "h-tok", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/x", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			tok, ok := TokenFromRequest(r)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, tok)
		})
	}
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), testIdentity)
	got, ok := IdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, testIdentity, got)
}
