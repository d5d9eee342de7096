package model

import "time"

type Pet struct {
	ID        string    `db:"id"`
	ProfileID string    `db:"profile_id"`
	Name      string    `db:"name"`
	Breed     string    `db:"breed"`
	Age       string    `db:"age"` // free-form ("3", "6 months")
	Sex       string    `db:"sex"`
	Bio       string    `db:"bio"`
	Avatar    string    `db:"avatar"`
	Location  string    `db:"location"`
	CreatedAt time.Time `db:"created_at"`
}
