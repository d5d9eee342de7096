package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/petpawtner/petpawtner/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository interface {
	Create(post *model.Post) error
	Delete(id string) error
	ByID(id string) (*model.Post, error)
	All() ([]*model.Post, error)
	ByUsername(username string) ([]*model.Post, error)
	ToggleLike(postID, username string) (liked bool, likeCount int, err error)
	Likes(postID string) ([]*model.Like, error)
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO posts (id, username, caption, image, like_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, post.ID, post.Username, post.Caption, post.Image, post.LikeCount, post.CreatedAt)

	return err
}

func (r *postRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *postRepository) ByID(id string) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.Get(post, `SELECT * FROM posts WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}
	return post, err
}

func (r *postRepository) All() ([]*model.Post, error) {
	posts := []*model.Post{}
	err := r.db.Select(&posts, `SELECT * FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ByUsername(username string) ([]*model.Post, error) {
	posts := []*model.Post{}
	err := r.db.Select(&posts, `SELECT * FROM posts WHERE username = $1 ORDER BY created_at DESC, id DESC`, username)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ToggleLike flips the (post, username) like row and adjusts the denormalized
// counter in the same transaction. The counter moves via an atomic SQL update,
// never a read-modify-write in application memory, so concurrent likes from
// different users cannot lose updates. The unique (post_id, username) index
// keeps concurrent toggles by the same user from double-creating the row.
func (r *postRepository) ToggleLike(postID, username string) (bool, int, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var exists int
	err = tx.Get(&exists, `SELECT COUNT(1) FROM posts WHERE id = $1`, postID)
	if err != nil {
		return false, 0, err
	}
	if exists == 0 {
		return false, 0, ErrPostNotFound
	}

	result, err := tx.Exec(`DELETE FROM likes WHERE post_id = $1 AND username = $2`, postID, username)
	if err != nil {
		return false, 0, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return false, 0, err
	}

	liked := deleted == 0
	if liked {
		_, err = tx.Exec(`INSERT INTO likes (id, post_id, username, created_at) VALUES ($1, $2, $3, $4)`,
			uuid.New().String(), postID, username, time.Now())
		if err != nil {
			return false, 0, err
		}
		_, err = tx.Exec(`UPDATE posts SET like_count = like_count + 1 WHERE id = $1`, postID)
	} else {
		// Clamp at zero; the counter must never go negative even if it drifted.
		_, err = tx.Exec(`
			UPDATE posts
			SET like_count = CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END
			WHERE id = $1
		`, postID)
	}
	if err != nil {
		return false, 0, err
	}

	var count int
	err = tx.Get(&count, `SELECT like_count FROM posts WHERE id = $1`, postID)
	if err != nil {
		return false, 0, err
	}

	err = tx.Commit()
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (r *postRepository) Likes(postID string) ([]*model.Like, error) {
	likes := []*model.Like{}
	err := r.db.Select(&likes, `SELECT * FROM likes WHERE post_id = $1`, postID)
	if err != nil {
		return nil, err
	}
	return likes, nil
}
