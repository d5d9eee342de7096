package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/petpawtner/petpawtner/internal/model"
)

type MessageRepository interface {
	Create(message *model.Message) error
	Conversation(profileA, profileB string) ([]*model.Message, error)
	MarkRead(receiverProfileID, senderProfileID string) error
	UnreadCount(receiverProfileID string) (int, error)
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *model.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO messages (id, sender_profile_id, receiver_profile_id, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, message.ID, message.SenderProfileID, message.ReceiverProfileID, message.Content, message.IsRead, message.CreatedAt)

	return err
}

// Conversation returns both directions of the exchange between two profiles,
// oldest first.
func (r *messageRepository) Conversation(profileA, profileB string) ([]*model.Message, error) {
	messages := []*model.Message{}
	err := r.db.Select(&messages, `
		SELECT * FROM messages
		WHERE (sender_profile_id = $1 AND receiver_profile_id = $2)
		   OR (sender_profile_id = $2 AND receiver_profile_id = $1)
		ORDER BY created_at
	`, profileA, profileB)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(receiverProfileID, senderProfileID string) error {
	_, err := r.db.Exec(`
		UPDATE messages SET is_read = TRUE
		WHERE receiver_profile_id = $1 AND sender_profile_id = $2 AND is_read = FALSE
	`, receiverProfileID, senderProfileID)
	return err
}

func (r *messageRepository) UnreadCount(receiverProfileID string) (int, error) {
	var count int
	err := r.db.Get(&count, `
		SELECT COUNT(1) FROM messages
		WHERE receiver_profile_id = $1 AND is_read = FALSE
	`, receiverProfileID)
	return count, err
}
