package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func newMockStorage(t *testing.T) (*PostgresStorage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		db.Close()
	})

	return NewPostgresStorage(db), mock
}

var userColumns = []string{"id", "username", "full_name", "email", "avatar_url"}

func TestPostgresSaveUserDuplicate(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id, username, full_name, email, avatar_url)")).
		WithArgs("u1", "alice", "Alice", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505", Message: `duplicate key value violates unique constraint "idx_users_username"`})

	err := s.SaveUser(context.Background(), &User{ID: "u1", Username: "alice", FullName: "Alice"})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}
}

func TestPostgresUserByID(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u1", "alice", "Alice", "a@example.com", nil))

	user, err := s.UserByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if user.Username != "alice" || user.Email.String != "a@example.com" || user.AvatarURL.Valid {
		t.Errorf("user = %+v", user)
	}
}

func TestPostgresUserByIDMissing(t *testing.T) {
	tests := []struct {
		name  string
		setup func(sqlmock.Sqlmock)
	}{
		{
			name: "no rows",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
					WithArgs("u1").
					WillReturnRows(sqlmock.NewRows(userColumns))
			},
		},
		{
			name: "malformed uuid",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
					WithArgs("u1").
					WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStorage(t)
			tt.setup(mock)

			user, err := s.UserByID(context.Background(), "u1")
			if user != nil || err != nil {
				t.Errorf("UserByID = (%v, %v), want (nil, nil)", user, err)
			}
		})
	}
}

func TestPostgresUserByIDConnectionError(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("u1").
		WillReturnError(sql.ErrConnDone)

	if _, err := s.UserByID(context.Background(), "u1"); !errors.Is(err, sql.ErrConnDone) {
		t.Errorf("err = %v, want sql.ErrConnDone", err)
	}
}

func TestPostgresUpdateUserPatch(t *testing.T) {
	s, mock := newMockStorage(t)

	fullName := "Alice L."
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET full_name = $1, email = $2, avatar_url = $3 WHERE id = $4")).
		WithArgs(fullName, "alice@example.com", nil, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdateUser(context.Background(), "u1", UserPatch{
		FullName:  &fullName,
		Email:     &sql.NullString{String: "alice@example.com", Valid: true},
		AvatarURL: &sql.NullString{},
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
}

func TestPostgresUpdateUserEmptyPatch(t *testing.T) {
	s, _ := newMockStorage(t)

	if err := s.UpdateUser(context.Background(), "u1", UserPatch{}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
}

func TestPostgresSaveRoomReturnsID(t *testing.T) {
	s, mock := newMockStorage(t)
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO chat_rooms (name, created_by, is_private)")).
		WithArgs("general", "userA", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("r1", createdAt))

	room := &Room{Name: "general", CreatedBy: "userA"}
	if err := s.SaveRoom(context.Background(), room); err != nil {
		t.Fatalf("SaveRoom: %v", err)
	}
	if room.ID != "r1" || !room.CreatedAt.Equal(createdAt) {
		t.Errorf("room = %+v, want id r1", room)
	}
}

func TestPostgresAddMemberIsIdempotent(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id, room_id) DO NOTHING")).
		WithArgs("u", "r").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.AddMember(context.Background(), "u", "r"); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
}

func TestPostgresRemoveMemberMalformedID(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM room_members WHERE user_id = $1 AND room_id = $2")).
		WithArgs("u", "r").
		WillReturnError(&pq.Error{Code: "22P02"})

	if err := s.RemoveMember(context.Background(), "u", "r"); err != nil {
		t.Errorf("RemoveMember = %v, want nil", err)
	}
}

func TestPostgresRoomMembers(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM room_members WHERE room_id = $1")).
		WithArgs("r").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1").AddRow("u2"))

	ids, err := s.RoomMembers(context.Background(), "r")
	if err != nil {
		t.Fatalf("RoomMembers: %v", err)
	}
	if len(ids) != 2 || ids[0] != "u1" || ids[1] != "u2" {
		t.Errorf("ids = %v, want [u1 u2]", ids)
	}
}

// Messages sharing a sent_at come back newest insert first via seq.
func TestPostgresRoomMessages(t *testing.T) {
	s, mock := newMockStorage(t)
	t3 := time.Date(2024, 5, 1, 12, 3, 0, 0, time.UTC)
	t2 := t3

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY sent_at DESC, seq DESC LIMIT $2 OFFSET $3")).
		WithArgs("R", 2, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "sender_id", "content", "message_type", "reply_to_id", "sent_at", "edited"}).
			AddRow("m3", "R", "u", "third", "text", nil, t3, false).
			AddRow("m2", "R", "u", "second", "text", "m1", t2, true))

	msgs, err := s.RoomMessages(context.Background(), "R", 2, 0)
	if err != nil {
		t.Fatalf("RoomMessages: %v", err)
	}
	if len(msgs) != 2 || msgs[0].ID != "m3" || msgs[1].ReplyToID.String != "m1" || !msgs[1].Edited {
		t.Errorf("msgs = %+v %+v", msgs[0], msgs[1])
	}
}

func TestPostgresSaveMessage(t *testing.T) {
	s, mock := newMockStorage(t)
	sentAt := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("RETURNING id, sent_at, edited")).
		WithArgs("R", "u", "hello", "text", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sent_at", "edited"}).AddRow("m1", sentAt, false))

	msg := &Message{RoomID: "R", SenderID: "u", Content: "hello", MessageType: "text"}
	if err := s.SaveMessage(context.Background(), msg); err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}
	if msg.ID != "m1" || !msg.SentAt.Equal(sentAt) {
		t.Errorf("msg = %+v", msg)
	}
}

func TestPostgresEditMessage(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE messages SET content = $1, edited = TRUE WHERE id = $2")).
		WithArgs("new text", "m1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.EditMessage(context.Background(), "m1", "new text"); err != nil {
		t.Fatalf("EditMessage: %v", err)
	}
}

func TestPostgresUpsertStatus(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id) DO UPDATE SET status = EXCLUDED.status")).
		WithArgs("u", "busy").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.UpsertStatus(context.Background(), "u", "busy"); err != nil {
		t.Fatalf("UpsertStatus: %v", err)
	}
}

func TestHandlePQError(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"23505", ErrDuplicateKey},
		{"23503", ErrForeignKeyViolation},
		{"22P02", ErrInvalidIdentifier},
	}
	for _, tt := range tests {
		if err := handlePQError(&pq.Error{Code: pq.ErrorCode(tt.code)}); !errors.Is(err, tt.want) {
			t.Errorf("handlePQError(%s) = %v, want %v", tt.code, err, tt.want)
		}
	}

	other := &pq.Error{Code: "08006"}
	if err := handlePQError(other); err != other {
		t.Errorf("handlePQError(08006) = %v, want it unchanged", err)
	}
	if handlePQError(nil) != nil {
		t.Error("handlePQError(nil) != nil")
	}
}
