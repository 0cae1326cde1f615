package chatRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the chat queries depend on.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chatIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "participants", Value: 1}, {Key: "updatedAt", Value: -1}}},
	}
	if _, err := db.Collection("chats").Indexes().CreateMany(ctx, chatIdx); err != nil {
		return fmt.Errorf("failed to create chat indexes: %w", err)
	}

	msgIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "chatId", Value: 1}, {Key: "sentAt", Value: 1}}},
	}
	if _, err := db.Collection("chat_messages").Indexes().CreateMany(ctx, msgIdx); err != nil {
		return fmt.Errorf("failed to create chat message indexes: %w", err)
	}
	return nil
}
