package presence

import "time"

// Conventional status values. Any non-empty token is accepted.
const (
	Online  = "online"
	Offline = "offline"
	Busy    = "busy"
	Away    = "away"
)

type Status struct {
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateStatusInput struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}
