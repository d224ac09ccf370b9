package models

import "time"

// Chat is a conversation between a set of member profiles
type Chat struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Members []Profile `json:"members,omitempty"`

	// Last message and the requester's unread count, filled by the chat list query
	LastMessage       *Message `json:"lastMessage,omitempty"`
	UnvisualizedCount int64    `json:"unvisualizedCount"`
}

// Message belongs to a chat. SenderID is nil when the sender's profile was
// deleted. VisualizedBy is the read-receipt set.
type Message struct {
	ID        int64     `json:"id" db:"id"`
	ChatID    int64     `json:"chatId" db:"chat_id"`
	SenderID  *int64    `json:"senderId,omitempty" db:"sender_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Sender       *Profile `json:"sender,omitempty"`
	VisualizedBy []int64  `json:"visualizedBy,omitempty"`
}
