package chat

import "time"

type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	IsPrivate bool      `json:"is_private"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateRoomInput struct {
	Name      string `json:"name"`
	CreatedBy string `json:"created_by"`
	IsPrivate bool   `json:"is_private"`
}

type Member struct {
	UserID string `json:"user_id"`
}

type Membership struct {
	RoomID string `json:"room_id"`
}
