package chat

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"webtalk/infrastructure"
	"webtalk/internal/policy"
	"webtalk/internal/storage/storagetest"
)

func newTestUseCase(t *testing.T) (*UseCase, *storagetest.Spy) {
	t.Helper()
	spy := storagetest.NewSpy(storagetest.NewSQLite(t))
	return NewUseCase(spy, policy.AllowAll{}, zap.NewNop()), spy
}

func TestCreateChatRoomRoundTrip(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	id, err := uc.CreateChatRoom(ctx, CreateRoomInput{Name: "general", CreatedBy: "userA"})
	if err != nil {
		t.Fatalf("CreateChatRoom: %v", err)
	}

	room, err := uc.GetChatRoomByID(ctx, id)
	if err != nil {
		t.Fatalf("GetChatRoomByID: %v", err)
	}
	if room.Name != "general" || room.CreatedBy != "userA" || room.IsPrivate {
		t.Errorf("room = %+v, want general by userA, public", room)
	}

	rooms, err := uc.ListChatRooms(ctx)
	if err != nil || len(rooms) != 1 || rooms[0].ID != id {
		t.Errorf("ListChatRooms = (%v, %v)", rooms, err)
	}
}

func TestCreateChatRoomValidation(t *testing.T) {
	for _, input := range []CreateRoomInput{
		{CreatedBy: "userA"},
		{Name: "general"},
	} {
		uc, spy := newTestUseCase(t)

		_, err := uc.CreateChatRoom(context.Background(), input)
		if !errors.Is(err, infrastructure.ErrValidation) {
			t.Errorf("CreateChatRoom(%+v) err = %v, want validation failure", input, err)
		}
		if len(spy.Calls()) != 0 {
			t.Errorf("gateway calls = %v, want none", spy.Calls())
		}
	}
}

func TestDeleteChatRoom(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	id, _ := uc.CreateChatRoom(ctx, CreateRoomInput{Name: "temp", CreatedBy: "u", IsPrivate: true})
	if err := uc.DeleteChatRoom(ctx, id); err != nil {
		t.Fatalf("DeleteChatRoom: %v", err)
	}
	if _, err := uc.GetChatRoomByID(ctx, id); !errors.Is(err, infrastructure.ErrNotFound) {
		t.Errorf("GetChatRoomByID after delete: %v, want not found", err)
	}
}

func TestMembershipSymmetry(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	if err := uc.AddUserToRoom(ctx, "u", "r"); err != nil {
		t.Fatalf("AddUserToRoom: %v", err)
	}
	if err := uc.AddUserToRoom(ctx, "u", "r"); err != nil {
		t.Fatalf("second AddUserToRoom: %v", err)
	}

	users, _ := uc.GetUsersInRoom(ctx, "r")
	rooms, _ := uc.GetRoomsForUser(ctx, "u")
	if len(users) != 1 || users[0] != "u" {
		t.Errorf("GetUsersInRoom = %v, want [u]", users)
	}
	if len(rooms) != 1 || rooms[0] != "r" {
		t.Errorf("GetRoomsForUser = %v, want [r]", rooms)
	}

	if err := uc.RemoveUserFromRoom(ctx, "u", "r"); err != nil {
		t.Fatalf("RemoveUserFromRoom: %v", err)
	}

	users, _ = uc.GetUsersInRoom(ctx, "r")
	rooms, _ = uc.GetRoomsForUser(ctx, "u")
	if len(users) != 0 || len(rooms) != 0 {
		t.Errorf("after remove users=%v rooms=%v, want both empty", users, rooms)
	}
}

func TestRemoveUserFromRoomIsIdempotent(t *testing.T) {
	uc, _ := newTestUseCase(t)

	for i := 0; i < 2; i++ {
		if err := uc.RemoveUserFromRoom(context.Background(), "ghost", "nowhere"); err != nil {
			t.Fatalf("RemoveUserFromRoom #%d: %v", i+1, err)
		}
	}
}

func TestMembershipValidation(t *testing.T) {
	uc, spy := newTestUseCase(t)

	if err := uc.AddUserToRoom(context.Background(), "", "r"); !errors.Is(err, infrastructure.ErrValidation) {
		t.Errorf("AddUserToRoom err = %v, want validation failure", err)
	}
	if _, err := uc.GetUsersInRoom(context.Background(), ""); !errors.Is(err, infrastructure.ErrValidation) {
		t.Errorf("GetUsersInRoom err = %v, want validation failure", err)
	}
	if len(spy.Calls()) != 0 {
		t.Errorf("gateway calls = %v, want none", spy.Calls())
	}
}

func TestStorageFailure(t *testing.T) {
	uc, spy := newTestUseCase(t)
	spy.FailWith(nil)

	if err := uc.AddUserToRoom(context.Background(), "u", "r"); !errors.Is(err, infrastructure.ErrStorage) {
		t.Errorf("err = %v, want storage failure", err)
	}
}
