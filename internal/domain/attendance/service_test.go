package attendance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeStore struct {
	records map[string]Attendance
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]Attendance)}
}

func (f *fakeStore) Create(_ context.Context, a Attendance) (Attendance, error) {
	for _, existing := range f.records {
		if existing.UserID == a.UserID && existing.Date.Equal(a.Date) {
			return Attendance{}, ErrAlreadyLogged
		}
	}
	f.nextID++
	a.ID = fmt.Sprintf("att-%d", f.nextID)
	a.CreatedAt = time.Now().UTC()
	f.records[a.ID] = a
	return a, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (Attendance, error) {
	a, ok := f.records[id]
	if !ok {
		return Attendance{}, ErrNotFound
	}
	return a, nil
}

func (f *fakeStore) List(_ context.Context, userID string, date *time.Time) ([]Attendance, error) {
	var out []Attendance
	for _, a := range f.records {
		if userID != "" && a.UserID != userID {
			continue
		}
		if date != nil && !a.Date.Equal(*date) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, a Attendance) error {
	if _, ok := f.records[a.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range f.records {
		if id != a.ID && existing.UserID == a.UserID && existing.Date.Equal(a.Date) {
			return ErrAlreadyLogged
		}
	}
	f.records[a.ID] = a
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.records[id]; !ok {
		return false, nil
	}
	delete(f.records, id)
	return true, nil
}

func TestLogRejectsSecondEntrySameDay(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	morning := time.Date(2026, 4, 2, 8, 15, 0, 0, time.UTC)
	evening := time.Date(2026, 4, 2, 18, 45, 0, 0, time.UTC)

	if _, err := svc.Log(ctx, "u1", morning, StatusPresent); err != nil {
		t.Fatalf("first log: %v", err)
	}
	if _, err := svc.Log(ctx, "u1", evening, StatusPresent); !errors.Is(err, ErrAlreadyLogged) {
		t.Fatalf("expected ErrAlreadyLogged for same UTC day, got %v", err)
	}
}

func TestLogDifferentDaysAndUsers(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()
	day := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	if _, err := svc.Log(ctx, "u1", day, StatusPresent); err != nil {
		t.Fatalf("u1 log: %v", err)
	}
	if _, err := svc.Log(ctx, "u2", day, StatusRemote); err != nil {
		t.Fatalf("u2 same day: %v", err)
	}
	if _, err := svc.Log(ctx, "u1", day.AddDate(0, 0, 1), StatusPresent); err != nil {
		t.Fatalf("u1 next day: %v", err)
	}
}

func TestLogNormalizesDateToMidnight(t *testing.T) {
	svc := NewService(newFakeStore())
	a, err := svc.Log(context.Background(), "u1", time.Date(2026, 4, 2, 13, 37, 11, 0, time.UTC), "")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	want := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	if !a.Date.Equal(want) {
		t.Fatalf("date = %v, want %v", a.Date, want)
	}
	if a.Status != StatusPresent {
		t.Fatalf("empty status should default to %q, got %q", StatusPresent, a.Status)
	}
}

func TestLogRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newFakeStore())
	if _, err := svc.Log(context.Background(), "u1", time.Now(), "teleworking"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateAndDeleteEnforceOwnership(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()
	a, err := svc.Log(ctx, "u1", time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), StatusPresent)
	if err != nil {
		t.Fatalf("log: %v", err)
	}

	status := StatusRemote
	if _, err := svc.Update(ctx, a.ID, "u2", AttendanceUpdate{Status: &status}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on update, got %v", err)
	}
	if _, err := svc.Delete(ctx, a.ID, "u2"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on delete, got %v", err)
	}

	updated, err := svc.Update(ctx, a.ID, "u1", AttendanceUpdate{Status: &status})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Status != StatusRemote {
		t.Fatalf("status = %q, want %q", updated.Status, StatusRemote)
	}

	removed, err := svc.Delete(ctx, a.ID, "u1")
	if err != nil || !removed {
		t.Fatalf("owner delete: removed=%v err=%v", removed, err)
	}
}

func TestUpdateCannotMoveOntoLoggedDay(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()
	day1 := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	if _, err := svc.Log(ctx, "u1", day1, StatusPresent); err != nil {
		t.Fatalf("log day1: %v", err)
	}
	second, err := svc.Log(ctx, "u1", day2, StatusPresent)
	if err != nil {
		t.Fatalf("log day2: %v", err)
	}

	if _, err := svc.Update(ctx, second.ID, "u1", AttendanceUpdate{Date: &day1}); !errors.Is(err, ErrAlreadyLogged) {
		t.Fatalf("expected ErrAlreadyLogged, got %v", err)
	}
}
