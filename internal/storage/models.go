package storage

import (
	"database/sql"
	"time"
)

type User struct {
	ID        string
	Username  string
	FullName  string
	Email     sql.NullString
	AvatarURL sql.NullString
}

// UserPatch holds the user columns to overwrite. Nil fields are left untouched;
// a non-nil invalid NullString writes NULL.
type UserPatch struct {
	Username  *string
	FullName  *string
	Email     *sql.NullString
	AvatarURL *sql.NullString
}

func (p UserPatch) Empty() bool {
	return p.Username == nil && p.FullName == nil && p.Email == nil && p.AvatarURL == nil
}

type Room struct {
	ID        string
	Name      string
	CreatedBy string
	IsPrivate bool
	CreatedAt time.Time
}

type Message struct {
	ID          string
	RoomID      string
	SenderID    string
	Content     string
	MessageType string
	ReplyToID   sql.NullString
	SentAt      time.Time
	Edited      bool
}

type Status struct {
	UserID    string
	Status    string
	UpdatedAt time.Time
}
