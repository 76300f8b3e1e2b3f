// Package storage is the only code that talks to the relational store.
//
// Lookups of a single row return (nil, nil) when nothing matches; callers
// decide whether that is an error. Updates and deletes that match no row
// succeed.
package storage

import "context"

type UserGateway interface {
	SaveUser(ctx context.Context, user *User) error
	UserByID(ctx context.Context, id string) (*User, error)
	UserByUsername(ctx context.Context, username string) (*User, error)
	Users(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) error
	DeleteUser(ctx context.Context, id string) error
}

type RoomGateway interface {
	// SaveRoom inserts room and fills in its generated ID and CreatedAt.
	SaveRoom(ctx context.Context, room *Room) error
	RoomByID(ctx context.Context, id string) (*Room, error)
	Rooms(ctx context.Context) ([]*Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

type MembershipGateway interface {
	// AddMember is a no-op when the pair already exists.
	AddMember(ctx context.Context, userID, roomID string) error
	RemoveMember(ctx context.Context, userID, roomID string) error
	RoomMembers(ctx context.Context, roomID string) ([]string, error)
	UserRooms(ctx context.Context, userID string) ([]string, error)
}

type MessageGateway interface {
	// SaveMessage inserts msg and fills in its generated ID and SentAt.
	SaveMessage(ctx context.Context, msg *Message) error
	// RoomMessages returns messages newest first.
	RoomMessages(ctx context.Context, roomID string, limit, offset int) ([]*Message, error)
	EditMessage(ctx context.Context, id, content string) error
	DeleteMessage(ctx context.Context, id string) error
}

type StatusGateway interface {
	// UpsertStatus replaces the single status row of userID, creating it if absent.
	UpsertStatus(ctx context.Context, userID, status string) error
	StatusByUserID(ctx context.Context, userID string) (*Status, error)
}

type Gateway interface {
	UserGateway
	RoomGateway
	MembershipGateway
	MessageGateway
	StatusGateway
}

var (
	_ Gateway = (*PostgresStorage)(nil)
	_ Gateway = (*SQLiteStorage)(nil)
)
