package model

import "time"

// MaxCaptionLen caps post captions.
const MaxCaptionLen = 300

// Post ids are random UUIDs so the like endpoint cannot be walked by
// guessing sequential numbers.
type Post struct {
	ID        string    `db:"id"`
	Username  string    `db:"username"`
	Caption   string    `db:"caption"`
	Image     string    `db:"image"` // blob storage path
	LikeCount int       `db:"like_count"`
	CreatedAt time.Time `db:"created_at"`
}

// Like is the (post, username) join row. The pair is unique at the storage
// layer; toggling creates or removes the row.
type Like struct {
	ID        string    `db:"id"`
	PostID    string    `db:"post_id"`
	Username  string    `db:"username"`
	CreatedAt time.Time `db:"created_at"`
}
