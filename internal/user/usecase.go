package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"webtalk/infrastructure"
	"webtalk/internal/policy"
	"webtalk/internal/storage"
)

type UseCase struct {
	users      storage.UserGateway
	authorizer policy.Authorizer
	logger     *zap.Logger
}

func NewUseCase(users storage.UserGateway, authorizer policy.Authorizer, logger *zap.Logger) *UseCase {
	return &UseCase{
		users:      users,
		authorizer: authorizer,
		logger:     logger.Named("user"),
	}
}

// CreateUser stores a new user under a freshly generated id and returns it.
func (uc *UseCase) CreateUser(ctx context.Context, input CreateUserInput) (string, error) {
	return infrastructure.ExecuteValue(ctx, uc.logger, "CreateUser", func(ctx context.Context) (string, error) {
		if input.Username == "" || input.FullName == "" {
			return "", infrastructure.Invalid("Username and full name are required.")
		}

		dbUser := &storage.User{
			ID:        uuid.New().String(),
			Username:  input.Username,
			FullName:  input.FullName,
			Email:     toNullString(input.Email),
			AvatarURL: toNullString(input.AvatarURL),
		}
		if err := uc.users.SaveUser(ctx, dbUser); err != nil {
			return "", infrastructure.StorageFailure(err)
		}
		return dbUser.ID, nil
	})
}

func (uc *UseCase) GetUserByID(ctx context.Context, id string) (*User, error) {
	return infrastructure.ExecuteValue(ctx, uc.logger, "GetUserByID", func(ctx context.Context) (*User, error) {
		if id == "" {
			return nil, infrastructure.Invalid("User ID is required.")
		}

		dbUser, err := uc.users.UserByID(ctx, id)
		if err != nil {
			return nil, infrastructure.StorageFailure(err)
		}
		if dbUser == nil {
			return nil, infrastructure.NotFound("User not found")
		}
		return ConvertDBUserToUser(dbUser), nil
	})
}

func (uc *UseCase) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return infrastructure.ExecuteValue(ctx, uc.logger, "GetUserByUsername", func(ctx context.Context) (*User, error) {
		if username == "" {
			return nil, infrastructure.Invalid("Username is required.")
		}

		dbUser, err := uc.users.UserByUsername(ctx, username)
		if err != nil {
			return nil, infrastructure.StorageFailure(err)
		}
		if dbUser == nil {
			return nil, infrastructure.NotFound("User not found")
		}
		return ConvertDBUserToUser(dbUser), nil
	})
}

func (uc *UseCase) ListUsers(ctx context.Context) ([]*User, error) {
	return infrastructure.ExecuteValue(ctx, uc.logger, "ListUsers", func(ctx context.Context) ([]*User, error) {
		dbUsers, err := uc.users.Users(ctx)
		if err != nil {
			return nil, infrastructure.StorageFailure(err)
		}

		users := make([]*User, len(dbUsers))
		for i, dbUser := range dbUsers {
			users[i] = ConvertDBUserToUser(dbUser)
		}
		return users, nil
	})
}

// UpdateUser writes only the fields present in patch. Updating an unknown id succeeds.
func (uc *UseCase) UpdateUser(ctx context.Context, id string, patch Patch) error {
	return infrastructure.Execute(ctx, uc.logger, "UpdateUser", func(ctx context.Context) error {
		if id == "" {
			return infrastructure.Invalid("User ID is required.")
		}
		if err := uc.authorizer.Authorize(ctx, policy.UpdateUser, id); err != nil {
			return infrastructure.Denied(err.Error())
		}

		if err := uc.users.UpdateUser(ctx, id, ConvertPatchToDBPatch(patch)); err != nil {
			return infrastructure.StorageFailure(err)
		}
		return nil
	})
}

// DeleteUser removes the user row only; memberships and messages are left as they are.
func (uc *UseCase) DeleteUser(ctx context.Context, id string) error {
	return infrastructure.Execute(ctx, uc.logger, "DeleteUser", func(ctx context.Context) error {
		if id == "" {
			return infrastructure.Invalid("User ID is required.")
		}
		if err := uc.authorizer.Authorize(ctx, policy.DeleteUser, id); err != nil {
			return infrastructure.Denied(err.Error())
		}

		if err := uc.users.DeleteUser(ctx, id); err != nil {
			return infrastructure.StorageFailure(err)
		}
		return nil
	})
}
