package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/petpawtner/petpawtner/internal/model"
	"github.com/petpawtner/petpawtner/internal/repository"
)

var ErrEmptyMessage = errors.New("message content is required")

// MessageService implements direct messaging between profiles. Messages are
// plain polled records; there is no push transport.
type MessageService struct {
	messageRepository repository.MessageRepository
}

func NewMessageService(messageRepository repository.MessageRepository) *MessageService {
	return &MessageService{
		messageRepository: messageRepository,
	}
}

func (s *MessageService) Send(senderProfileID, receiverProfileID, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	message := &model.Message{
		SenderProfileID:   senderProfileID,
		ReceiverProfileID: receiverProfileID,
		Content:           content,
	}

	err := s.messageRepository.Create(message)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	return message, nil
}

// Conversation returns the full exchange between two profiles, oldest first,
// and marks the other side's messages to the reader as read.
func (s *MessageService) Conversation(readerProfileID, otherProfileID string) ([]*model.Message, error) {
	messages, err := s.messageRepository.Conversation(readerProfileID, otherProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	err = s.messageRepository.MarkRead(readerProfileID, otherProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark messages read: %w", err)
	}

	return messages, nil
}

func (s *MessageService) UnreadCount(profileID string) (int, error) {
	return s.messageRepository.UnreadCount(profileID)
}
