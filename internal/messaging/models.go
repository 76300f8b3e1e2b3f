package messaging

import "time"

// TypeText is the message type used when the sender does not name one.
const TypeText = "text"

const (
	DefaultLimit  = 50
	DefaultOffset = 0
)

type Message struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"room_id"`
	SenderID    string    `json:"sender_id"`
	Content     string    `json:"content"`
	MessageType string    `json:"message_type"`
	ReplyToID   *string   `json:"reply_to_id"`
	SentAt      time.Time `json:"sent_at"`
	Edited      bool      `json:"edited"`
}

type SendMessageInput struct {
	RoomID      string  `json:"room_id"`
	SenderID    string  `json:"sender_id"`
	Content     string  `json:"content"`
	MessageType string  `json:"message_type"`
	ReplyToID   *string `json:"reply_to_id"`
}

type EditMessageInput struct {
	Content string `json:"content"`
}
