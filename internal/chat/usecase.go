package chat

import (
	"context"

	"go.uber.org/zap"

	"webtalk/infrastructure"
	"webtalk/internal/policy"
	"webtalk/internal/storage"
)

// Store is the part of the gateway chat rooms need.
type Store interface {
	storage.RoomGateway
	storage.MembershipGateway
}

type UseCase struct {
	store      Store
	authorizer policy.Authorizer
	logger     *zap.Logger
}

func NewUseCase(store Store, authorizer policy.Authorizer, logger *zap.Logger) *UseCase {
	return &UseCase{
		store:      store,
		authorizer: authorizer,
		logger:     logger.Named("chat"),
	}
}

func (uc *UseCase) CreateChatRoom(ctx context.Context, input CreateRoomInput) (string, error) {
	return infrastructure.ExecuteValue(ctx, uc.logger, "CreateChatRoom", func(ctx context.Context) (string, error) {
		if input.Name == "" || input.CreatedBy == "" {
			return "", infrastructure.Invalid("Room name and creator are required.")
		}

		dbRoom := &storage.Room{
			Name:      input.Name,
			CreatedBy: input.CreatedBy,
			IsPrivate: input.IsPrivate,
		}
		if err := uc.store.SaveRoom(ctx, dbRoom); err != nil {
			return "", infrastructure.StorageFailure(err)
		}
		return dbRoom.ID, nil
	})
}

func (uc *UseCase) ListChatRooms(ctx context.Context) ([]*Room, error) {
	return infrastructure.ExecuteValue(ctx, uc.logger, "ListChatRooms", func(ctx context.Context) ([]*Room, error) {
		dbRooms, err := uc.store.Rooms(ctx)
		if err != nil {
			return nil, infrastructure.StorageFailure(err)
		}

		rooms := make([]*Room, len(dbRooms))
		for i, dbRoom := range dbRooms {
			rooms[i] = ConvertDBRoomToRoom(dbRoom)
		}
		return rooms, nil
	})
}

func (uc *UseCase) GetChatRoomByID(ctx context.Context, id string) (*Room, error) {
	return infrastructure.ExecuteValue(ctx, uc.logger, "GetChatRoomByID", func(ctx context.Context) (*Room, error) {
		if id == "" {
			return nil, infrastructure.Invalid("Room ID is required.")
		}

		dbRoom, err := uc.store.RoomByID(ctx, id)
		if err != nil {
			return nil, infrastructure.StorageFailure(err)
		}
		if dbRoom == nil {
			return nil, infrastructure.NotFound("Chat room not found")
		}
		return ConvertDBRoomToRoom(dbRoom), nil
	})
}

// DeleteChatRoom removes the room row. Memberships and messages of the room stay.
func (uc *UseCase) DeleteChatRoom(ctx context.Context, id string) error {
	return infrastructure.Execute(ctx, uc.logger, "DeleteChatRoom", func(ctx context.Context) error {
		if id == "" {
			return infrastructure.Invalid("Room ID is required.")
		}
		if err := uc.authorizer.Authorize(ctx, policy.DeleteRoom, id); err != nil {
			return infrastructure.Denied(err.Error())
		}

		if err := uc.store.DeleteRoom(ctx, id); err != nil {
			return infrastructure.StorageFailure(err)
		}
		return nil
	})
}

// AddUserToRoom does not check that the user or the room exists. Adding an
// existing member again succeeds without creating a second row.
func (uc *UseCase) AddUserToRoom(ctx context.Context, userID, roomID string) error {
	return infrastructure.Execute(ctx, uc.logger, "AddUserToRoom", func(ctx context.Context) error {
		if userID == "" || roomID == "" {
			return infrastructure.Invalid("User ID and room ID are required.")
		}
		if err := uc.authorizer.Authorize(ctx, policy.AddMember, roomID); err != nil {
			return infrastructure.Denied(err.Error())
		}

		if err := uc.store.AddMember(ctx, userID, roomID); err != nil {
			return infrastructure.StorageFailure(err)
		}
		return nil
	})
}

// RemoveUserFromRoom is idempotent: removing a pair that is not present succeeds.
func (uc *UseCase) RemoveUserFromRoom(ctx context.Context, userID, roomID string) error {
	return infrastructure.Execute(ctx, uc.logger, "RemoveUserFromRoom", func(ctx context.Context) error {
		if userID == "" || roomID == "" {
			return infrastructure.Invalid("User ID and room ID are required.")
		}
		if err := uc.authorizer.Authorize(ctx, policy.RemoveMember, roomID); err != nil {
			return infrastructure.Denied(err.Error())
		}

		if err := uc.store.RemoveMember(ctx, userID, roomID); err != nil {
			return infrastructure.StorageFailure(err)
		}
		return nil
	})
}

func (uc *UseCase) GetUsersInRoom(ctx context.Context, roomID string) ([]string, error) {
	return infrastructure.ExecuteValue(ctx, uc.logger, "GetUsersInRoom", func(ctx context.Context) ([]string, error) {
		if roomID == "" {
			return nil, infrastructure.Invalid("Room ID is required.")
		}

		ids, err := uc.store.RoomMembers(ctx, roomID)
		if err != nil {
			return nil, infrastructure.StorageFailure(err)
		}
		return ids, nil
	})
}

func (uc *UseCase) GetRoomsForUser(ctx context.Context, userID string) ([]string, error) {
	return infrastructure.ExecuteValue(ctx, uc.logger, "GetRoomsForUser", func(ctx context.Context) ([]string, error) {
		if userID == "" {
			return nil, infrastructure.Invalid("User ID is required.")
		}

		ids, err := uc.store.UserRooms(ctx, userID)
		if err != nil {
			return nil, infrastructure.StorageFailure(err)
		}
		return ids, nil
	})
}
