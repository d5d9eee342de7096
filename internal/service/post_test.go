package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/petpawtner/petpawtner/internal/model"
	"github.com/petpawtner/petpawtner/internal/repository"
	"github.com/petpawtner/petpawtner/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostStoresImageAndRow(t *testing.T) {
	database := newTestDB(t)
	signupUser(t, database, "kira")
	store := newMemStorage()
	posts := service.NewPostService(repository.NewPostRepository(database), store)

	post, err := posts.Create("kira", "Bingo at the beach", "beach.jpg", imageReader())
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, 0, post.LikeCount)
	assert.True(t, strings.HasSuffix(post.Image, ".jpg"))
	assert.Equal(t, 1, store.count())

	feed, err := posts.All()
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, post.ID, feed[0].ID)
}

func TestCreatePostRequiresCaptionAndImage(t *testing.T) {
	database := newTestDB(t)
	store := newMemStorage()
	posts := service.NewPostService(repository.NewPostRepository(database), store)

	_, err := posts.Create("kira", "   ", "beach.jpg", imageReader())
	require.ErrorIs(t, err, service.ErrImageRequired)

	_, err = posts.Create("kira", "caption", "beach.jpg", nil)
	require.ErrorIs(t, err, service.ErrImageRequired)

	_, err = posts.Create("kira", strings.Repeat("x", model.MaxCaptionLen+1), "beach.jpg", imageReader())
	require.ErrorIs(t, err, service.ErrCaptionTooLong)

	assert.Zero(t, store.count())
}

func TestCreatePostStorageFailureWritesNoRow(t *testing.T) {
	database := newTestDB(t)
	store := newMemStorage()
	store.failSave = true
	posts := service.NewPostService(repository.NewPostRepository(database), store)

	_, err := posts.Create("kira", "caption", "beach.jpg", imageReader())
	require.Error(t, err)

	var count int
	require.NoError(t, database.Get(&count, `SELECT COUNT(1) FROM posts`))
	assert.Zero(t, count)
}

// failingPostRepo simulates the row insert failing after the image was stored.
type failingPostRepo struct {
	repository.PostRepository
}

func (r failingPostRepo) Create(post *model.Post) error {
	return errors.New("database gone")
}

func TestCreatePostRemovesImageWhenInsertFails(t *testing.T) {
	database := newTestDB(t)
	store := newMemStorage()
	repo := failingPostRepo{PostRepository: repository.NewPostRepository(database)}
	posts := service.NewPostService(repo, store)

	_, err := posts.Create("kira", "caption", "beach.jpg", imageReader())
	require.Error(t, err)
	assert.Zero(t, store.count())
}

func TestToggleLikeRoundTrip(t *testing.T) {
	database := newTestDB(t)
	signupUser(t, database, "kira")
	post := createPost(t, database, "kira")
	posts := service.NewPostService(repository.NewPostRepository(database), newMemStorage())

	liked, count, err := posts.ToggleLike(post.ID, "kira")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	liked, count, err = posts.ToggleLike(post.ID, "kira")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, count)

	repo := repository.NewPostRepository(database)
	likes, err := repo.Likes(post.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)
}

// The test database runs on a single connection, so the two toggles execute
// sequentially here. Under real concurrency the same outcome is enforced by
// the transaction around the row flip, the atomic SQL counter update, and the
// unique (post_id, username) index.
func TestToggleLikeTwoUsers(t *testing.T) {
	database := newTestDB(t)
	signupUser(t, database, "kira")
	signupUser(t, database, "niko")
	post := createPost(t, database, "kira")
	posts := service.NewPostService(repository.NewPostRepository(database), newMemStorage())

	_, _, err := posts.ToggleLike(post.ID, "kira")
	require.NoError(t, err)
	liked, count, err := posts.ToggleLike(post.ID, "niko")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 2, count)

	repo := repository.NewPostRepository(database)
	likes, err := repo.Likes(post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 2)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	database := newTestDB(t)
	signupUser(t, database, "kira")
	posts := service.NewPostService(repository.NewPostRepository(database), newMemStorage())

	_, _, err := posts.ToggleLike("no-such-post", "kira")
	require.ErrorIs(t, err, repository.ErrPostNotFound)

	var count int
	require.NoError(t, database.Get(&count, `SELECT COUNT(1) FROM likes`))
	assert.Zero(t, count)
}

func TestToggleLikeClampsDriftedCounterAtZero(t *testing.T) {
	database := newTestDB(t)
	signupUser(t, database, "kira")
	post := createPost(t, database, "kira")
	posts := service.NewPostService(repository.NewPostRepository(database), newMemStorage())

	// Inject drift: a like row exists but the counter was never incremented.
	_, err := database.Exec(
		`INSERT INTO likes (id, post_id, username, created_at) VALUES ($1, $2, $3, CURRENT_TIMESTAMP)`,
		"drifted-like", post.ID, "kira")
	require.NoError(t, err)

	liked, count, err := posts.ToggleLike(post.ID, "kira")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, count)
}

func TestFeedOrdersNewestFirst(t *testing.T) {
	database := newTestDB(t)
	signupUser(t, database, "kira")
	repo := repository.NewPostRepository(database)

	for _, caption := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(&model.Post{
			Username: "kira",
			Caption:  caption,
			Image:    "post_images/x.jpg",
		}))
	}

	feed, err := repo.All()
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "third", feed[0].Caption)
	assert.Equal(t, "first", feed[2].Caption)
}
