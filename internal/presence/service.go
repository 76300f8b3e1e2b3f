package presence

import (
	"context"

	"go.uber.org/zap"

	"webtalk/infrastructure"
	"webtalk/internal/policy"
	"webtalk/internal/storage"
)

type Service struct {
	statuses   storage.StatusGateway
	authorizer policy.Authorizer
	logger     *zap.Logger
}

func NewService(statuses storage.StatusGateway, authorizer policy.Authorizer, logger *zap.Logger) *Service {
	return &Service{
		statuses:   statuses,
		authorizer: authorizer,
		logger:     logger.Named("presence"),
	}
}

// UpdateUserStatus sets the user's single status row; concurrent updates are last-write-wins.
func (s *Service) UpdateUserStatus(ctx context.Context, userID, status string) error {
	return infrastructure.Execute(ctx, s.logger, "UpdateUserStatus", func(ctx context.Context) error {
		if userID == "" || status == "" {
			return infrastructure.Invalid("User ID and status are required.")
		}
		if err := s.authorizer.Authorize(ctx, policy.UpdateStatus, userID); err != nil {
			return infrastructure.Denied(err.Error())
		}

		if err := s.statuses.UpsertStatus(ctx, userID, status); err != nil {
			return infrastructure.StorageFailure(err)
		}
		return nil
	})
}

func (s *Service) GetUserStatus(ctx context.Context, userID string) (*Status, error) {
	return infrastructure.ExecuteValue(ctx, s.logger, "GetUserStatus", func(ctx context.Context) (*Status, error) {
		if userID == "" {
			return nil, infrastructure.Invalid("User ID is required.")
		}

		st, err := s.statuses.StatusByUserID(ctx, userID)
		if err != nil {
			return nil, infrastructure.StorageFailure(err)
		}
		if st == nil {
			return nil, infrastructure.NotFound("User status not found")
		}
		return &Status{UserID: st.UserID, Status: st.Status, UpdatedAt: st.UpdatedAt}, nil
	})
}
