package dto

// CreateChatRequest carries the other members' usernames for POST /api/chats/create-chat
type CreateChatRequest struct {
	Members []string `json:"members"`
}

// CreateMessageRequest is the payload for POST /api/chats/create-message/{chatID}
type CreateMessageRequest struct {
	Content string `json:"content"`
}

// MessageResponse is a single chat message
type MessageResponse struct {
	ID           int64                 `json:"id"`
	Sender       *ProfileBasicResponse `json:"sender,omitempty"`
	Content      string                `json:"content"`
	VisualizedBy []int64               `json:"visualizedBy"`
	CreatedAt    string                `json:"createdAt"`
}

// ChatResponse is a chat with its members, last message and the
// requester's unread count
type ChatResponse struct {
	ID                int64                  `json:"id"`
	Members           []ProfileBasicResponse `json:"members"`
	LastMessage       *MessageResponse       `json:"lastMessage,omitempty"`
	UnvisualizedCount int64                  `json:"unvisualizedCount"`
}
