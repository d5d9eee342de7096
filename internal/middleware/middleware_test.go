package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/petpawtner/petpawtner/internal/ctxkeys"
	"github.com/petpawtner/petpawtner/internal/middleware"
	"github.com/petpawtner/petpawtner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequireAuthRedirectsAnonymousWithNext(t *testing.T) {
	req := httptest.NewRequest("GET", "/profile/kira", nil)
	rec := httptest.NewRecorder()

	middleware.RequireAuth(okHandler)(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/signin?next="+url.QueryEscape("/profile/kira"), rec.Header().Get("Location"))
}

func TestRequireAuthPassesAuthenticatedRequests(t *testing.T) {
	req := httptest.NewRequest("GET", "/home", nil)
	ctx := ctxkeys.WithUser(req.Context(), &model.User{ID: "u1", Username: "kira"})
	rec := httptest.NewRecorder()

	middleware.RequireAuth(okHandler)(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireGuestRedirectsSignedInUsers(t *testing.T) {
	req := httptest.NewRequest("GET", "/signin", nil)
	ctx := ctxkeys.WithUser(req.Context(), &model.User{ID: "u1", Username: "kira"})
	rec := httptest.NewRecorder()

	middleware.RequireGuest(okHandler)(rec, req.WithContext(ctx))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/home", rec.Header().Get("Location"))
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"/profile/kira", "/profile/kira"},
		{"/add_pets", "/add_pets"},
		{"", "/home"},
		{"https://evil.example/", "/home"},
		{"//evil.example/", "/home"},
		{"home", "/home"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, middleware.SafeNext(tt.next), "next %q", tt.next)
	}
}

func TestCSRFProtection(t *testing.T) {
	handler := middleware.CSRFProtection(http.HandlerFunc(okHandler))

	// A GET issues the token cookie.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/signup", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var token string
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "csrf_token" {
			token = cookie.Value
		}
	}
	require.NotEmpty(t, token)

	// A POST without the token is rejected.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/signup", strings.NewReader("username=kira"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: token})
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Echoing the cookie token in the form passes.
	rec = httptest.NewRecorder()
	form := url.Values{"username": {"kira"}, "csrf_token": {token}}
	req = httptest.NewRequest("POST", "/signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: token})
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A mismatched token fails even with a cookie present.
	rec = httptest.NewRecorder()
	form = url.Values{"csrf_token": {"not-the-token"}}
	req = httptest.NewRequest("POST", "/signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: token})
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		require.True(t, limiter.Allow("10.0.0.1"))
	}
	assert.False(t, limiter.Allow("10.0.0.1"))

	// Another client is unaffected.
	assert.True(t, limiter.Allow("10.0.0.2"))
}
