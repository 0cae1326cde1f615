package models

import (
	"sort"
	"strings"
	"time"
)

// LastMessage is the denormalized summary kept on the chat document.
type LastMessage struct {
	Text     string    `bson:"text" json:"text"`
	SenderID string    `bson:"senderId" json:"senderId"`
	SentAt   time.Time `bson:"sentAt" json:"sentAt"`
}

// Chat is a conversation between two participants, keyed by their sorted id pair.
type Chat struct {
	ID           string      `bson:"id" json:"id"`
	Participants []string    `bson:"participants" json:"participants"`
	LastMessage  LastMessage `bson:"lastMessage" json:"lastMessage"`
	CreatedAt    time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// ChatMessage is one message inside a chat, ordered by SentAt.
type ChatMessage struct {
	ID       string    `bson:"id" json:"id"`
	ChatID   string    `bson:"chatId" json:"chatId"`
	SenderID string    `bson:"senderId" json:"senderId"`
	Text     string    `bson:"text" json:"text"`
	SentAt   time.Time `bson:"sentAt" json:"sentAt"`
}

// ChatKey derives the deterministic chat id for a participant pair.
func ChatKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}
