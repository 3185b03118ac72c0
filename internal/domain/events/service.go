package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("event not found")
	ErrAlreadyJoined = errors.New("already participating in this event")
	ErrEventInPast   = errors.New("event has already taken place")
	ErrScheduleClash = errors.New("already attending another event at that time")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type Service struct {
	Store StoreAPI
	Now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store, Now: time.Now}
}

func (s *Service) Create(ctx context.Context, event Event) (Event, error) {
	event.Title = strings.TrimSpace(event.Title)
	return s.Store.CreateEvent(ctx, event)
}

func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	return s.Store.GetEvent(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.Store.ListEvents(ctx)
}

func (s *Service) Update(ctx context.Context, id string, patch EventUpdate) (Event, error) {
	event, err := s.Store.GetEvent(ctx, id)
	if err != nil {
		return Event{}, err
	}
	mergeEvent(&event, patch)
	if err := s.Store.UpdateEvent(ctx, event); err != nil {
		return Event{}, err
	}
	return event, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.Store.DeleteEvent(ctx, id)
}

// JoinOrGetExisting registers the user for the event. If the user already
// joined it returns the existing participation instead of failing; the
// duplicate-tolerant variant of the two join behaviors the API exposes.
func (s *Service) JoinOrGetExisting(ctx context.Context, userID, eventID string) (Participation, bool, error) {
	event, err := s.Store.GetEvent(ctx, eventID)
	if err != nil {
		return Participation{}, false, err
	}

	existing, err := s.Store.GetParticipation(ctx, userID, eventID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Participation{}, false, err
	}

	if err := s.joinChecks(ctx, userID, event); err != nil {
		return Participation{}, false, err
	}

	created, err := s.Store.CreateParticipation(ctx, Participation{UserID: userID, EventID: eventID, Status: ParticipationRegistered})
	if errors.Is(err, ErrAlreadyJoined) {
		// Lost a race with a concurrent join; the row exists now.
		existing, getErr := s.Store.GetParticipation(ctx, userID, eventID)
		if getErr != nil {
			return Participation{}, false, getErr
		}
		return existing, false, nil
	}
	if err != nil {
		return Participation{}, false, err
	}
	return created, true, nil
}

// JoinOrReject is the strict variant: a duplicate join is an error.
func (s *Service) JoinOrReject(ctx context.Context, userID, eventID string) (Participation, error) {
	event, err := s.Store.GetEvent(ctx, eventID)
	if err != nil {
		return Participation{}, err
	}

	if _, err := s.Store.GetParticipation(ctx, userID, eventID); err == nil {
		return Participation{}, ErrAlreadyJoined
	} else if !errors.Is(err, ErrNotFound) {
		return Participation{}, err
	}

	if err := s.joinChecks(ctx, userID, event); err != nil {
		return Participation{}, err
	}

	return s.Store.CreateParticipation(ctx, Participation{UserID: userID, EventID: eventID, Status: ParticipationRegistered})
}

func (s *Service) Cancel(ctx context.Context, userID, eventID string) (bool, error) {
	return s.Store.DeleteParticipation(ctx, userID, eventID)
}

func (s *Service) Attendees(ctx context.Context, eventID string) ([]Attendee, error) {
	if _, err := s.Store.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.Store.ListAttendees(ctx, eventID)
}

func (s *Service) AddReview(ctx context.Context, eventID, userID string, rating int, comment string) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, ErrInvalidRating
	}
	if _, err := s.Store.GetEvent(ctx, eventID); err != nil {
		return Review{}, err
	}
	return s.Store.CreateReview(ctx, Review{EventID: eventID, UserID: userID, Rating: rating, Comment: strings.TrimSpace(comment)})
}

func (s *Service) ListReviews(ctx context.Context, eventID string) ([]Review, error) {
	if _, err := s.Store.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.Store.ListReviews(ctx, eventID)
}

func (s *Service) GetReview(ctx context.Context, id string) (Review, error) {
	return s.Store.GetReview(ctx, id)
}

func (s *Service) DeleteReview(ctx context.Context, id string) (bool, error) {
	return s.Store.DeleteReview(ctx, id)
}

func (s *Service) joinChecks(ctx context.Context, userID string, event Event) error {
	start, err := StartInstant(event)
	if err != nil {
		return err
	}
	if start.Before(s.Now().UTC()) {
		return ErrEventInPast
	}

	clash, err := s.Store.HasParticipationAt(ctx, userID, event.EventDate, event.StartTime)
	if err != nil {
		return err
	}
	if clash {
		return ErrScheduleClash
	}
	return nil
}

// StartInstant combines the event date with its wall-clock start time.
func StartInstant(event Event) (time.Time, error) {
	clock, err := time.Parse("15:04", strings.TrimSpace(event.StartTime))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q: %w", event.StartTime, err)
	}
	date := event.EventDate.UTC()
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}

func mergeEvent(event *Event, patch EventUpdate) {
	if patch.Title != nil {
		event.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.EventDate != nil {
		event.EventDate = *patch.EventDate
	}
	if patch.StartTime != nil {
		event.StartTime = strings.TrimSpace(*patch.StartTime)
	}
	if patch.EndTime != nil {
		event.EndTime = strings.TrimSpace(*patch.EndTime)
	}
	if patch.Location != nil {
		event.Location = strings.TrimSpace(*patch.Location)
	}
}
