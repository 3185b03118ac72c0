package events

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeStore struct {
	events         map[string]Event
	participations map[string]Participation
	reviews        map[string]Review
	nextID         int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:         make(map[string]Event),
		participations: make(map[string]Participation),
		reviews:        make(map[string]Review),
	}
}

func (f *fakeStore) id() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func participationKey(userID, eventID string) string {
	return userID + "/" + eventID
}

func (f *fakeStore) CreateEvent(_ context.Context, event Event) (Event, error) {
	event.ID = f.id()
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeStore) GetEvent(_ context.Context, id string) (Event, error) {
	event, ok := f.events[id]
	if !ok {
		return Event{}, ErrNotFound
	}
	return event, nil
}

func (f *fakeStore) ListEvents(_ context.Context) ([]Event, error) {
	out := make([]Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStore) UpdateEvent(_ context.Context, event Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return ErrNotFound
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeStore) DeleteEvent(_ context.Context, id string) (bool, error) {
	if _, ok := f.events[id]; !ok {
		return false, nil
	}
	delete(f.events, id)
	return true, nil
}

func (f *fakeStore) GetParticipation(_ context.Context, userID, eventID string) (Participation, error) {
	p, ok := f.participations[participationKey(userID, eventID)]
	if !ok {
		return Participation{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) CreateParticipation(_ context.Context, p Participation) (Participation, error) {
	key := participationKey(p.UserID, p.EventID)
	if _, ok := f.participations[key]; ok {
		return Participation{}, ErrAlreadyJoined
	}
	p.CreatedAt = time.Now().UTC()
	f.participations[key] = p
	return p, nil
}

func (f *fakeStore) DeleteParticipation(_ context.Context, userID, eventID string) (bool, error) {
	key := participationKey(userID, eventID)
	if _, ok := f.participations[key]; !ok {
		return false, nil
	}
	delete(f.participations, key)
	return true, nil
}

func (f *fakeStore) HasParticipationAt(_ context.Context, userID string, date time.Time, startTime string) (bool, error) {
	for _, p := range f.participations {
		if p.UserID != userID {
			continue
		}
		event, ok := f.events[p.EventID]
		if !ok {
			continue
		}
		sameDay := event.EventDate.UTC().Truncate(24*time.Hour) == date.UTC().Truncate(24*time.Hour)
		if sameDay && event.StartTime == startTime {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListAttendees(_ context.Context, eventID string) ([]Attendee, error) {
	var out []Attendee
	for _, p := range f.participations {
		if p.EventID == eventID {
			out = append(out, Attendee{UserID: p.UserID})
		}
	}
	return out, nil
}

func (f *fakeStore) CreateReview(_ context.Context, review Review) (Review, error) {
	review.ID = f.id()
	f.reviews[review.ID] = review
	return review, nil
}

func (f *fakeStore) GetReview(_ context.Context, id string) (Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return Review{}, ErrNotFound
	}
	return r, nil
}

func (f *fakeStore) ListReviews(_ context.Context, eventID string) ([]Review, error) {
	var out []Review
	for _, r := range f.reviews {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteReview(_ context.Context, id string) (bool, error) {
	if _, ok := f.reviews[id]; !ok {
		return false, nil
	}
	delete(f.reviews, id)
	return true, nil
}

func newTestService(store *fakeStore, now time.Time) *Service {
	return &Service{Store: store, Now: func() time.Time { return now }}
}

func futureEvent(t *testing.T, store *fakeStore, date time.Time, startTime string) Event {
	t.Helper()
	event, err := store.CreateEvent(context.Background(), Event{
		Title:     "Town Hall",
		EventDate: date,
		StartTime: startTime,
		EndTime:   "15:00",
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

func TestJoinOrGetExistingIsIdempotent(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(store, now)
	event := futureEvent(t, store, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "14:00")

	first, created, err := svc.JoinOrGetExisting(context.Background(), "u1", event.ID)
	if err != nil {
		t.Fatalf("first join: %v", err)
	}
	if !created {
		t.Fatal("expected first join to create a participation")
	}

	second, created, err := svc.JoinOrGetExisting(context.Background(), "u1", event.ID)
	if err != nil {
		t.Fatalf("second join: %v", err)
	}
	if created {
		t.Fatal("expected second join to return the existing participation")
	}
	if first.UserID != second.UserID || first.EventID != second.EventID {
		t.Fatalf("expected the same participation, got %+v and %+v", first, second)
	}
	if len(store.participations) != 1 {
		t.Fatalf("expected 1 participation, got %d", len(store.participations))
	}
}

func TestJoinOrRejectFailsOnDuplicate(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(store, now)
	event := futureEvent(t, store, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "14:00")

	if _, err := svc.JoinOrReject(context.Background(), "u1", event.ID); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := svc.JoinOrReject(context.Background(), "u1", event.ID); !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}
}

func TestJoinRejectsPastEvent(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := newTestService(store, now)
	event := futureEvent(t, store, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "14:00")

	if _, _, err := svc.JoinOrGetExisting(context.Background(), "u1", event.ID); !errors.Is(err, ErrEventInPast) {
		t.Fatalf("expected ErrEventInPast, got %v", err)
	}
	if _, err := svc.JoinOrReject(context.Background(), "u1", event.ID); !errors.Is(err, ErrEventInPast) {
		t.Fatalf("expected ErrEventInPast, got %v", err)
	}
}

func TestJoinRejectsScheduleClash(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(store, now)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	first := futureEvent(t, store, date, "14:00")
	clashing := futureEvent(t, store, date, "14:00")
	other := futureEvent(t, store, date, "16:00")

	if _, _, err := svc.JoinOrGetExisting(context.Background(), "u1", first.ID); err != nil {
		t.Fatalf("join first: %v", err)
	}
	if _, err := svc.JoinOrReject(context.Background(), "u1", clashing.ID); !errors.Is(err, ErrScheduleClash) {
		t.Fatalf("expected ErrScheduleClash, got %v", err)
	}
	if _, err := svc.JoinOrReject(context.Background(), "u1", other.ID); err != nil {
		t.Fatalf("joining a non-clashing slot: %v", err)
	}
}

func TestCancelThenRejoin(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(store, now)
	event := futureEvent(t, store, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "14:00")

	if _, err := svc.JoinOrReject(context.Background(), "u1", event.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	removed, err := svc.Cancel(context.Background(), "u1", event.ID)
	if err != nil || !removed {
		t.Fatalf("cancel: removed=%v err=%v", removed, err)
	}
	removed, err = svc.Cancel(context.Background(), "u1", event.ID)
	if err != nil {
		t.Fatalf("second cancel: %v", err)
	}
	if removed {
		t.Fatal("expected second cancel to report nothing removed")
	}
	if _, err := svc.JoinOrReject(context.Background(), "u1", event.ID); err != nil {
		t.Fatalf("rejoin after cancel: %v", err)
	}
}

func TestAddReviewValidatesRating(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	event := futureEvent(t, store, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "14:00")

	tests := []struct {
		name    string
		rating  int
		wantErr error
	}{
		{name: "below range", rating: 0, wantErr: ErrInvalidRating},
		{name: "above range", rating: 6, wantErr: ErrInvalidRating},
		{name: "lower bound", rating: 1},
		{name: "upper bound", rating: 5},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddReview(context.Background(), event.ID, "u1", tc.rating, "fine")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("rating %d: got err %v, want %v", tc.rating, err, tc.wantErr)
			}
		})
	}
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	event := futureEvent(t, store, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "14:00")

	title := "All Hands"
	updated, err := svc.Update(context.Background(), event.ID, EventUpdate{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "All Hands" {
		t.Fatalf("title = %q, want %q", updated.Title, "All Hands")
	}
	if updated.StartTime != "14:00" || updated.EndTime != "15:00" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}
