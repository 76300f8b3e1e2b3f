package messaging

import (
	"context"

	"go.uber.org/zap"

	"webtalk/infrastructure"
	"webtalk/internal/policy"
	"webtalk/internal/storage"
)

type Service struct {
	messages   storage.MessageGateway
	authorizer policy.Authorizer
	logger     *zap.Logger
}

func NewService(messages storage.MessageGateway, authorizer policy.Authorizer, logger *zap.Logger) *Service {
	return &Service{
		messages:   messages,
		authorizer: authorizer,
		logger:     logger.Named("messaging"),
	}
}

// SendMessage stores a message and returns its id. The store assigns sent_at.
func (s *Service) SendMessage(ctx context.Context, input SendMessageInput) (string, error) {
	return infrastructure.ExecuteValue(ctx, s.logger, "SendMessage", func(ctx context.Context) (string, error) {
		if input.RoomID == "" || input.SenderID == "" || input.Content == "" {
			return "", infrastructure.Invalid("Room ID, sender ID, and content are required.")
		}
		if err := s.authorizer.Authorize(ctx, policy.SendMessage, input.RoomID); err != nil {
			return "", infrastructure.Denied(err.Error())
		}

		dbMsg := convertInputToDBMessage(input)
		if err := s.messages.SaveMessage(ctx, dbMsg); err != nil {
			return "", infrastructure.StorageFailure(err)
		}
		return dbMsg.ID, nil
	})
}

// GetMessagesForRoom pages through a room's messages newest first.
func (s *Service) GetMessagesForRoom(ctx context.Context, roomID string, limit, offset int) ([]*Message, error) {
	return infrastructure.ExecuteValue(ctx, s.logger, "GetMessagesForRoom", func(ctx context.Context) ([]*Message, error) {
		if roomID == "" {
			return nil, infrastructure.Invalid("Room ID is required.")
		}
		if limit < 1 {
			return nil, infrastructure.Invalid("Limit must be at least 1.")
		}
		if offset < 0 {
			return nil, infrastructure.Invalid("Offset must not be negative.")
		}

		dbMsgs, err := s.messages.RoomMessages(ctx, roomID, limit, offset)
		if err != nil {
			return nil, infrastructure.StorageFailure(err)
		}

		msgs := make([]*Message, len(dbMsgs))
		for i, dbMsg := range dbMsgs {
			msgs[i] = ConvertDBMessageToMessage(dbMsg)
		}
		return msgs, nil
	})
}

// EditMessage replaces the content and marks the message edited.
func (s *Service) EditMessage(ctx context.Context, id, content string) error {
	return infrastructure.Execute(ctx, s.logger, "EditMessage", func(ctx context.Context) error {
		if id == "" || content == "" {
			return infrastructure.Invalid("Message ID and content are required.")
		}
		if err := s.authorizer.Authorize(ctx, policy.EditMessage, id); err != nil {
			return infrastructure.Denied(err.Error())
		}

		if err := s.messages.EditMessage(ctx, id, content); err != nil {
			return infrastructure.StorageFailure(err)
		}
		return nil
	})
}

func (s *Service) DeleteMessage(ctx context.Context, id string) error {
	return infrastructure.Execute(ctx, s.logger, "DeleteMessage", func(ctx context.Context) error {
		if id == "" {
			return infrastructure.Invalid("Message ID is required.")
		}
		if err := s.authorizer.Authorize(ctx, policy.DeleteMessage, id); err != nil {
			return infrastructure.Denied(err.Error())
		}

		if err := s.messages.DeleteMessage(ctx, id); err != nil {
			return infrastructure.StorageFailure(err)
		}
		return nil
	})
}
