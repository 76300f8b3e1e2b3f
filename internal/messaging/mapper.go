package messaging

import (
	"database/sql"

	"webtalk/internal/storage"
)

func ConvertDBMessageToMessage(dbMsg *storage.Message) *Message {
	var replyTo *string
	if dbMsg.ReplyToID.Valid {
		id := dbMsg.ReplyToID.String
		replyTo = &id
	}

	return &Message{
		ID:          dbMsg.ID,
		RoomID:      dbMsg.RoomID,
		SenderID:    dbMsg.SenderID,
		Content:     dbMsg.Content,
		MessageType: dbMsg.MessageType,
		ReplyToID:   replyTo,
		SentAt:      dbMsg.SentAt,
		Edited:      dbMsg.Edited,
	}
}

func convertInputToDBMessage(input SendMessageInput) *storage.Message {
	msgType := input.MessageType
	if msgType == "" {
		msgType = TypeText
	}

	var replyTo sql.NullString
	if input.ReplyToID != nil && *input.ReplyToID != "" {
		replyTo = sql.NullString{String: *input.ReplyToID, Valid: true}
	}

	return &storage.Message{
		RoomID:      input.RoomID,
		SenderID:    input.SenderID,
		Content:     input.Content,
		MessageType: msgType,
		ReplyToID:   replyTo,
	}
}
