package events

import (
	"context"
	"time"
)

type StoreAPI interface {
	CreateEvent(ctx context.Context, event Event) (Event, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	UpdateEvent(ctx context.Context, event Event) error
	DeleteEvent(ctx context.Context, id string) (bool, error)

	GetParticipation(ctx context.Context, userID, eventID string) (Participation, error)
	CreateParticipation(ctx context.Context, p Participation) (Participation, error)
	DeleteParticipation(ctx context.Context, userID, eventID string) (bool, error)
	HasParticipationAt(ctx context.Context, userID string, date time.Time, startTime string) (bool, error)
	ListAttendees(ctx context.Context, eventID string) ([]Attendee, error)

	CreateReview(ctx context.Context, review Review) (Review, error)
	GetReview(ctx context.Context, id string) (Review, error)
	ListReviews(ctx context.Context, eventID string) ([]Review, error)
	DeleteReview(ctx context.Context, id string) (bool, error)
}
