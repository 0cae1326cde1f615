package chat

import (
	"context"
	"testing"

	"obrafacil/models"
	"obrafacil/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatRepo struct {
	chats    map[string]*models.Chat
	messages map[string][]models.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    map[string]*models.Chat{},
		messages: map[string][]models.ChatMessage{},
	}
}

func (f *fakeChatRepo) GetByID(id string) (*models.Chat, error) {
	c, ok := f.chats[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeChatRepo) Upsert(chat *models.Chat) error {
	if _, ok := f.chats[chat.ID]; !ok {
		copied := *chat
		f.chats[chat.ID] = &copied
	}
	return nil
}

func (f *fakeChatRepo) ListByParticipant(participantID string) ([]models.Chat, error) {
	var out []models.Chat
	for _, c := range f.chats {
		for _, p := range c.Participants {
			if p == participantID {
				out = append(out, *c)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeChatRepo) AppendMessage(msg *models.ChatMessage) error {
	f.messages[msg.ChatID] = append(f.messages[msg.ChatID], *msg)
	if c, ok := f.chats[msg.ChatID]; ok {
		c.LastMessage = models.LastMessage{Text: msg.Text, SenderID: msg.SenderID, SentAt: msg.SentAt}
		c.UpdatedAt = msg.SentAt
	}
	return nil
}

func (f *fakeChatRepo) ListMessages(chatID string, limit int64) ([]models.ChatMessage, error) {
	return f.messages[chatID], nil
}

func TestEnsureChat(t *testing.T) {
	svc := &DefaultChatService{Repo: newFakeChatRepo()}

	first, err := svc.EnsureChat(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, models.ChatKey("alice", "bob"), first.ID)

	// The other side reaches the same conversation.
	second, err := svc.EnsureChat(context.Background(), "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestEnsureChatRejectsSelf(t *testing.T) {
	svc := &DefaultChatService{Repo: newFakeChatRepo()}
	_, err := svc.EnsureChat(context.Background(), "alice", "alice")
	assert.Error(t, err)
}

func TestSendMessage(t *testing.T) {
	repo := newFakeChatRepo()
	svc := &DefaultChatService{Repo: repo}

	conv, err := svc.EnsureChat(context.Background(), "alice", "bob")
	require.NoError(t, err)

	t.Run("participant can send and read back", func(t *testing.T) {
		msg, err := svc.SendMessage(context.Background(), "alice", conv.ID, "Olá, tudo bem?")
		require.NoError(t, err)
		assert.Equal(t, "alice", msg.SenderID)

		msgs, err := svc.ListMessages(context.Background(), "bob", conv.ID)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "Olá, tudo bem?", msgs[0].Text)

		// The denormalized summary follows the latest message.
		assert.Equal(t, "Olá, tudo bem?", repo.chats[conv.ID].LastMessage.Text)
	})

	t.Run("outsider cannot send", func(t *testing.T) {
		_, err := svc.SendMessage(context.Background(), "mallory", conv.ID, "oi")
		assert.ErrorIs(t, err, utils.ErrNotOwner)
	})

	t.Run("outsider cannot read", func(t *testing.T) {
		_, err := svc.ListMessages(context.Background(), "mallory", conv.ID)
		assert.ErrorIs(t, err, utils.ErrNotOwner)
	})
}
