package model

import "time"

// Message is a directed profile-to-profile message. Append-only, no edit or
// delete; delivery is plain polling over the conversation.
type Message struct {
	ID                string    `db:"id"`
	SenderProfileID   string    `db:"sender_profile_id"`
	ReceiverProfileID string    `db:"receiver_profile_id"`
	Content           string    `db:"content"`
	IsRead            bool      `db:"is_read"`
	CreatedAt         time.Time `db:"created_at"`
}
