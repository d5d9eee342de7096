package routes_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/petpawtner/petpawtner/internal/app"
	"github.com/petpawtner/petpawtner/internal/config"
	"github.com/petpawtner/petpawtner/internal/db"
	"github.com/petpawtner/petpawtner/internal/repository"
	"github.com/petpawtner/petpawtner/internal/routes"
	"github.com/petpawtner/petpawtner/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type fakeStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (s *fakeStorage) Save(path string, file io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *fakeStorage) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}

func (s *fakeStorage) URL(path string) string {
	return "https://blobs.test/" + path
}

// newTestApp wires the full application against an in-memory database and an
// in-memory blob store.
func newTestApp(t *testing.T) http.Handler {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	cfg := &config.Config{
		AppName:      "petpawtner",
		AppEnv:       "test",
		JWTSecret:    "test-secret",
		JWTExpiry:    time.Hour,
		DBDriver:     "sqlite",
		DBConnection: ":memory:",
	}

	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	store := &fakeStorage{files: map[string][]byte{}}

	a := &app.App{
		Cfg:            cfg,
		DB:             database,
		AuthService:    service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry, false),
		UserService:    service.NewUserService(userRepository),
		ProfileService: service.NewProfileService(profileRepository),
		PetService:     service.NewPetService(repository.NewPetRepository(database), profileRepository),
		PostService:    service.NewPostService(repository.NewPostRepository(database), store),
		SearchService:  service.NewSearchService(repository.NewPetRepository(database), repository.NewVetRepository(database)),
		MessageService: service.NewMessageService(repository.NewMessageRepository(database)),
		UploadService:  service.NewUploadService(store),
	}

	return routes.SetupRoutes(a)
}

// session carries the cookies a browser would across requests.
type session struct {
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newSession(handler http.Handler) *session {
	return &session{handler: handler, cookies: map[string]*http.Cookie{}}
}

func (s *session) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, cookie := range s.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(s.cookies, cookie.Name)
			continue
		}
		s.cookies[cookie.Name] = cookie
	}
	return rec
}

func (s *session) csrfToken(t *testing.T) string {
	t.Helper()
	cookie := s.cookies["csrf_token"]
	require.NotNil(t, cookie, "csrf token cookie not set")
	return cookie.Value
}

func TestSignupFlow(t *testing.T) {
	handler := newTestApp(t)
	browser := newSession(handler)

	rec := browser.do(t, "GET", "/signup", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = browser.do(t, "POST", "/signup", url.Values{
		"username":   {"kira"},
		"email":      {"kira@example.com"},
		"password":   {"sunny-meadow-42"},
		"password2":  {"sunny-meadow-42"},
		"csrf_token": {browser.csrfToken(t)},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/settings", rec.Header().Get("Location"))
	require.NotNil(t, browser.cookies["auth_token"], "session cookie not set")

	// The session now reaches authenticated pages.
	rec = browser.do(t, "GET", "/home", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// And guest-only pages bounce back home.
	rec = browser.do(t, "GET", "/signin", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/home", rec.Header().Get("Location"))
}

func TestSignupMismatchRendersFormAgain(t *testing.T) {
	handler := newTestApp(t)
	browser := newSession(handler)

	browser.do(t, "GET", "/signup", nil)
	rec := browser.do(t, "POST", "/signup", url.Values{
		"username":   {"kira"},
		"email":      {"kira@example.com"},
		"password":   {"sunny-meadow-42"},
		"password2":  {"different-pass-42"},
		"csrf_token": {browser.csrfToken(t)},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "passwords do not match")
	assert.Nil(t, browser.cookies["auth_token"])
}

func TestSignupWeakPasswordShowsSpecificMessage(t *testing.T) {
	handler := newTestApp(t)
	browser := newSession(handler)

	browser.do(t, "GET", "/signup", nil)
	rec := browser.do(t, "POST", "/signup", url.Values{
		"username":   {"kira"},
		"email":      {"kira@example.com"},
		"password":   {"short"},
		"password2":  {"short"},
		"csrf_token": {browser.csrfToken(t)},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "password must be at least 8 characters")
	assert.Nil(t, browser.cookies["auth_token"])
}

func TestLandingIsSessionGated(t *testing.T) {
	handler := newTestApp(t)
	browser := newSession(handler)

	rec := browser.do(t, "GET", "/", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/signin", rec.Header().Get("Location"))
}

func TestAnonymousUserIsRedirectedToSignin(t *testing.T) {
	handler := newTestApp(t)
	browser := newSession(handler)

	rec := browser.do(t, "GET", "/home", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/signin?next=%2Fhome", rec.Header().Get("Location"))
}

func TestSigninFollowsNextParameter(t *testing.T) {
	handler := newTestApp(t)

	// Create the account with one browser, sign in with another.
	signup := newSession(handler)
	signup.do(t, "GET", "/signup", nil)
	rec := signup.do(t, "POST", "/signup", url.Values{
		"username":   {"kira"},
		"email":      {"kira@example.com"},
		"password":   {"sunny-meadow-42"},
		"password2":  {"sunny-meadow-42"},
		"csrf_token": {signup.csrfToken(t)},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	browser := newSession(handler)
	browser.do(t, "GET", "/signin", nil)
	rec = browser.do(t, "POST", "/signin?next=%2Fadd_pets", url.Values{
		"username":   {"kira"},
		"password":   {"sunny-meadow-42"},
		"csrf_token": {browser.csrfToken(t)},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/add_pets", rec.Header().Get("Location"))

	// An off-site next target is not followed.
	evil := newSession(handler)
	evil.do(t, "GET", "/signin", nil)
	rec = evil.do(t, "POST", "/signin?next="+url.QueryEscape("https://evil.example/"), url.Values{
		"username":   {"kira"},
		"password":   {"sunny-meadow-42"},
		"csrf_token": {evil.csrfToken(t)},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/home", rec.Header().Get("Location"))
}

func TestUnknownPathRenders404(t *testing.T) {
	handler := newTestApp(t)
	browser := newSession(handler)

	rec := browser.do(t, "GET", "/no/such/page", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSecurityHeadersAreSet(t *testing.T) {
	handler := newTestApp(t)
	browser := newSession(handler)

	rec := browser.do(t, "GET", "/signup", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}
