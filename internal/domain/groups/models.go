package groups

import "time"

type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type GroupUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Membership is keyed by (userId, groupId).
type Membership struct {
	UserID    string    `json:"userId"`
	GroupID   string    `json:"groupId"`
	CreatedAt time.Time `json:"createdAt"`
}
