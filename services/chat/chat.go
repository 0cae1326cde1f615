package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	chatRepo "obrafacil/database/repository/chat"
	"obrafacil/models"
	"obrafacil/utils"

	"github.com/google/uuid"
)

// ChatService defines business logic for conversations.
type ChatService interface {
	// EnsureChat creates (if needed) and returns the chat between two participants.
	EnsureChat(ctx context.Context, callerID, otherID string) (*models.Chat, error)
	// SendMessage appends a message to a chat the caller participates in.
	SendMessage(ctx context.Context, callerID, chatID, text string) (*models.ChatMessage, error)
	// ListChats returns the caller's chats, most recently active first.
	ListChats(ctx context.Context, callerID string) ([]models.Chat, error)
	// ListMessages returns a chat's messages in send order.
	ListMessages(ctx context.Context, callerID, chatID string) ([]models.ChatMessage, error)
}

// DefaultChatService is the production implementation.
type DefaultChatService struct {
	Repo chatRepo.ChatRepository
}

// EnsureChat upserts the chat keyed by the sorted participant pair, so both
// sides always resolve to the same conversation.
func (s *DefaultChatService) EnsureChat(ctx context.Context, callerID, otherID string) (*models.Chat, error) {
	if otherID == "" || otherID == callerID {
		return nil, fmt.Errorf("participante inválido")
	}

	now := time.Now()
	chat := &models.Chat{
		ID:           models.ChatKey(callerID, otherID),
		Participants: []string{callerID, otherID},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Upsert(chat); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(chat.ID)
}

// SendMessage validates membership and appends the message, refreshing the
// denormalized last-message summary.
func (s *DefaultChatService) SendMessage(ctx context.Context, callerID, chatID, text string) (*models.ChatMessage, error) {
	if text == "" {
		return nil, fmt.Errorf("mensagem vazia")
	}

	chat, err := s.Repo.GetByID(chatID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(chat, callerID) {
		return nil, utils.ErrNotOwner
	}

	msg := &models.ChatMessage{
		ID:       uuid.New().String(),
		ChatID:   chatID,
		SenderID: callerID,
		Text:     text,
		SentAt:   time.Now(),
	}
	if err := s.Repo.AppendMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListChats returns the caller's chats.
func (s *DefaultChatService) ListChats(ctx context.Context, callerID string) ([]models.Chat, error) {
	return s.Repo.ListByParticipant(callerID)
}

// ListMessages returns the messages of a chat the caller participates in.
func (s *DefaultChatService) ListMessages(ctx context.Context, callerID, chatID string) ([]models.ChatMessage, error) {
	chat, err := s.Repo.GetByID(chatID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if !isParticipant(chat, callerID) {
		return nil, utils.ErrNotOwner
	}
	return s.Repo.ListMessages(chatID, 0)
}

func isParticipant(chat *models.Chat, id string) bool {
	for _, p := range chat.Participants {
		if p == id {
			return true
		}
	}
	return false
}
