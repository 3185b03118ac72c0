package events

import "time"

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"eventDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Location    string    `json:"location"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type EventUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	EventDate   *time.Time `json:"eventDate"`
	StartTime   *string    `json:"startTime"`
	EndTime     *string    `json:"endTime"`
	Location    *string    `json:"location"`
}

// Participation is keyed by (userId, eventId); joining twice never creates
// a second row.
type Participation struct {
	UserID    string    `json:"userId"`
	EventID   string    `json:"eventId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Attendee is the de-duplicated projection returned for an event's roster.
type Attendee struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type Review struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

const ParticipationRegistered = "registered"
