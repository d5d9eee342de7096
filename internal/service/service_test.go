package service_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/petpawtner/petpawtner/internal/db"
	"github.com/petpawtner/petpawtner/internal/model"
	"github.com/petpawtner/petpawtner/internal/repository"
	"github.com/petpawtner/petpawtner/internal/service"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// newTestDB opens an in-memory SQLite database with the real schema applied.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	return database
}

// memStorage is an in-memory blob store for tests.
type memStorage struct {
	mu       sync.Mutex
	files    map[string][]byte
	failSave bool
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (s *memStorage) Save(path string, file io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return errors.New("storage unavailable")
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *memStorage) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}

func (s *memStorage) URL(path string) string {
	return "https://blobs.test/" + path
}

func (s *memStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

func newAuthService(database *sqlx.DB) *service.AuthService {
	return service.NewAuthService(repository.NewUserRepository(database), "test-secret", time.Hour, false)
}

// signupUser creates a user through the real signup path.
func signupUser(t *testing.T, database *sqlx.DB, username string) *model.User {
	t.Helper()
	auth := newAuthService(database)
	user, err := auth.Signup(username, username+"@example.com", "sunny-meadow-42", "sunny-meadow-42")
	require.NoError(t, err)
	return user
}

// createPost inserts a post authored by username and returns it.
func createPost(t *testing.T, database *sqlx.DB, username string) *model.Post {
	t.Helper()
	posts := repository.NewPostRepository(database)
	post := &model.Post{
		Username: username,
		Caption:  fmt.Sprintf("%s's pet pic", username),
		Image:    "post_images/test.jpg",
	}
	require.NoError(t, posts.Create(post))
	return post
}

func imageReader() io.Reader {
	return bytes.NewReader([]byte("fake image bytes"))
}
