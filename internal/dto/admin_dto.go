package dto

import "time"

type ClearContextRequest struct {
	UserId string `json:"user_id"` // empty clears every tracked user
}

type ContextUserResponse struct {
	UserId              string    `json:"user_id"`
	LastActivity        time.Time `json:"last_activity"`
	Interactions        int       `json:"interactions"`
	PendingConfirmation bool      `json:"pending_confirmation"`
}

type ContextSnapshotResponse struct {
	TotalUsers int                   `json:"total_users"`
	Users      []ContextUserResponse `json:"users"`
}
