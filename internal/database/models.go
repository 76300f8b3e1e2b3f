package database

import "time"

type User struct {
	ID        string  `gorm:"type:uuid;primaryKey"`
	Username  string  `gorm:"type:text;not null;uniqueIndex"`
	FullName  string  `gorm:"type:text;not null"`
	Email     *string `gorm:"type:text"`
	AvatarURL *string `gorm:"type:text"`
}

func (User) TableName() string { return "users" }

type ChatRoom struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:text;not null"`
	CreatedBy string    `gorm:"type:uuid;not null"`
	IsPrivate bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (ChatRoom) TableName() string { return "chat_rooms" }

type RoomMember struct {
	UserID string `gorm:"type:uuid;primaryKey"`
	RoomID string `gorm:"type:uuid;primaryKey;index"`
}

func (RoomMember) TableName() string { return "room_members" }

type Message struct {
	ID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomID      string    `gorm:"type:uuid;not null;index:idx_messages_room_sent,priority:1"`
	SenderID    string    `gorm:"type:uuid;not null"`
	Content     string    `gorm:"type:text;not null"`
	MessageType string    `gorm:"type:text;not null;default:'text'"`
	ReplyToID   *string   `gorm:"type:uuid"`
	SentAt      time.Time `gorm:"type:timestamptz;not null;default:clock_timestamp();index:idx_messages_room_sent,priority:2,sort:desc"`
	Edited      bool      `gorm:"not null;default:false"`
	// Seq breaks sent_at ties in insertion order.
	Seq         int64     `gorm:"type:bigserial;not null"`
}

func (Message) TableName() string { return "messages" }

type UserStatus struct {
	UserID    string    `gorm:"type:uuid;primaryKey"`
	Status    string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (UserStatus) TableName() string { return "user_status" }
