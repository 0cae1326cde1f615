package chatRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"obrafacil/models"
	"obrafacil/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatRepository defines data access for chats and their messages.
type ChatRepository interface {
	// GetByID retrieves a chat by its deterministic pair key.
	GetByID(id string) (*models.Chat, error)
	// Upsert creates the chat if it does not exist yet.
	Upsert(chat *models.Chat) error
	// ListByParticipant returns the chats a participant belongs to, most
	// recently updated first.
	ListByParticipant(participantID string) ([]models.Chat, error)
	// AppendMessage inserts a message and refreshes the chat's denormalized
	// last-message summary.
	AppendMessage(msg *models.ChatMessage) error
	// ListMessages returns a chat's messages ordered by send time, ascending.
	ListMessages(chatID string, limit int64) ([]models.ChatMessage, error)
}

// MongoChatRepo implements ChatRepository using MongoDB.
type MongoChatRepo struct {
	chats    *mongo.Collection
	messages *mongo.Collection
}

// NewMongoChatRepo creates a ChatRepository backed by the "chats" and
// "chat_messages" collections.
func NewMongoChatRepo(db *mongo.Database) ChatRepository {
	return &MongoChatRepo{
		chats:    db.Collection("chats"),
		messages: db.Collection("chat_messages"),
	}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoChatRepo) GetByID(id string) (*models.Chat, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var chat models.Chat
	if err := r.chats.FindOne(ctx, bson.M{"id": id}).Decode(&chat); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch chat with id %s: %w", id, err)
	}
	return &chat, nil
}

func (r *MongoChatRepo) Upsert(chat *models.Chat) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	update := bson.M{
		"$setOnInsert": chat,
	}
	if _, err := r.chats.UpdateOne(ctx, bson.M{"id": chat.ID}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert chat %s: %w", chat.ID, err)
	}
	return nil
}

func (r *MongoChatRepo) ListByParticipant(participantID string) ([]models.Chat, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.chats.Find(ctx, bson.M{"participants": participantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer cursor.Close(ctx)

	var chats []models.Chat
	for cursor.Next(ctx) {
		var c models.Chat
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode chat: %w", err)
		}
		chats = append(chats, c)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return chats, nil
}

func (r *MongoChatRepo) AppendMessage(msg *models.ChatMessage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"lastMessage": models.LastMessage{
			Text:     msg.Text,
			SenderID: msg.SenderID,
			SentAt:   msg.SentAt,
		},
		"updatedAt": msg.SentAt,
	}}
	result, err := r.chats.UpdateOne(ctx, bson.M{"id": msg.ChatID}, update)
	if err != nil {
		return fmt.Errorf("failed to update chat summary for %s: %w", msg.ChatID, err)
	}
	if result.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *MongoChatRepo) ListMessages(chatID string, limit int64) ([]models.ChatMessage, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if limit <= 0 || limit > 500 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "sentAt", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.messages.Find(ctx, bson.M{"chatId": chatID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for chat %s: %w", chatID, err)
	}
	defer cursor.Close(ctx)

	var msgs []models.ChatMessage
	for cursor.Next(ctx) {
		var m models.ChatMessage
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode chat message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return msgs, nil
}
